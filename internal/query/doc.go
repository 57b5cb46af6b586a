// Package query defines an abstract query IR over stored expression
// nodes.
//
// The query IR is the boundary between the CLI's query surface and the
// storage backend: a query describes which stored nodes to select, and
// the backend compiles it to whatever its engine runs (the SQLite store
// compiles it to parameterized SQL). Queries never load trees back into
// arenas; they answer from the per-node columns the store indexes.
//
// SEALED INTERFACES:
//
// Query and Predicate are sealed with the marker method pattern. Only
// types in this package implement them, so backends can type-switch
// exhaustively:
//
//	switch p := pred.(type) {
//	case query.KindIs:
//		...
//	case query.And:
//		...
//	}
//
// PREDICATES:
//
// Filters cover what the node columns can answer without decoding local
// state: kind and family by catalog name, result flavor, width bounds
// and purity. Conjunction is the only combinator; there is no Or and no
// negation beyond PureIs{Pure: false}.
package query
