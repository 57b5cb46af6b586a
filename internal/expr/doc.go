// Package expr provides the expression IR: a typed, four-state-aware
// operator tree with per-operator behavior descriptors.
//
// Nodes live in an Arena and reference each other through stable integer
// Refs rather than pointers. Arena indices survive cloning and make weak
// references (variable bindings, enum items, C function targets) cheap to
// remap. All other internal packages import expr; expr imports only num.
//
// Each operator kind carries a descriptor row in the catalog: code
// generation templates, operand cleanliness contracts, cost weights, and
// optimizer eligibility. Behavior that varies per node instance (a handful
// of kinds) is layered on top of the catalog in contracts.go.
//
// Key design constraints:
//   - Refs are never reused within an Arena; NilRef (0) means absent
//   - Structural equality (Same / TreeEqual) and the structural hash
//     must agree: equal trees hash equal
//   - Constant folding panics on kinds with no fold rule; callers gate
//     on HasFold first
package expr
