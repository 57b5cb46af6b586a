// Package harness runs YAML-defined contract scenarios against
// expression units.
//
// A scenario loads one CUE unit file and walks a list of steps: fold a
// named expression and compare the literal, expect an eval error code
// or a value-contract panic, compare two roots for node or tree
// equality, clone a root, or assert the purity/width/clean surface of
// a node. Step verdicts aggregate into a Result, and results across
// scenario files into a Report, which the test command renders.
//
// # Scenario Format
//
//	name: fold_masks
//	description: "Masking folds to the overlapping bits"
//	unit: alu.cue
//	steps:
//	  - fold: mask
//	    expect: "8'h20"
//	  - fold: blended
//	    error: NOT_CONSTANT
//	  - fold: mixed
//	    panics: true
//	  - same: [lhs, rhs]
//	    want: true
//	  - tree_equal: [lhs, rhs]
//	    want: true
//	  - clone: mask
//	  - flags: mask
//	    pure: true
//	    width: 8
//
// Golden snapshots of unit dumps and scenario results live under
// testdata/golden and compare through sebdah/goldie.
package harness
