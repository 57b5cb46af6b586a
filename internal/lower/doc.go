// Package lower builds expression trees from CUE unit files.
//
// A unit file names the unit, declares the variables its expressions
// read and write, and lists named expression roots:
//
//	unit: "alu"
//
//	var: {
//		a: {width: 8}
//		b: {width: 8, signed: true}
//	}
//
//	expr: {
//		sum:  {op: "Add", width: 8, args: [{ref: "a"}, {ref: "b"}]}
//		mask: {const: "8'hf0"}
//		both: {op: "And", args: [{use: "sum"}, {use: "mask"}]}
//	}
//
// Every root lands in one arena, so a {use: "name"} edge shares the
// named root's subtree instead of copying it. References bind to the
// declared variables at load time; scoped and hierarchical references
// are produced by later passes, never by unit files.
package lower
