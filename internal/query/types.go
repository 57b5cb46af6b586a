package query

// Query represents an abstract query over stored nodes.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and lets
// backend compilers type-switch exhaustively.
type Query interface {
	queryNode() // Marker method - seals interface to this package
}

// Predicate represents a filter condition over one stored node.
//
// This is a sealed interface - only types in this package implement it.
type Predicate interface {
	predicateNode() // Marker method - seals interface to this package
}

// Select picks stored nodes matching Where.
//
// Semantics:
//
//	every stored node, restricted to one unit when Unit is set,
//	filtered by Where, capped at Limit rows
//
// A nil Where selects every node. Limit zero means unlimited.
type Select struct {
	Unit  string    // unit name; "" selects across every stored unit
	Where Predicate // nil = no filter
	Limit int       // 0 = no cap
}

func (Select) queryNode() {}

// KindIs matches nodes of one operator kind, by catalog name ("Add",
// "ShiftRS", "VarRef").
type KindIs struct {
	Name string
}

func (KindIs) predicateNode() {}

// FamilyIs matches nodes whose operator belongs to one arity family, by
// family name ("binary-com", "unary", "leaf").
type FamilyIs struct {
	Name string
}

func (FamilyIs) predicateNode() {}

// FlavorIs matches nodes by result flavor: "logic", "double" or
// "string".
type FlavorIs struct {
	Name string
}

func (FlavorIs) predicateNode() {}

// WidthBetween matches nodes whose result width lies in [Min, Max],
// inclusive. Max zero means no upper bound.
type WidthBetween struct {
	Min int
	Max int
}

func (WidthBetween) predicateNode() {}

// PureIs matches nodes by purity: Pure true selects side-effect-free
// nodes, false selects the impure ones.
type PureIs struct {
	Pure bool
}

func (PureIs) predicateNode() {}

// And represents a conjunction of predicates (all must be true).
// An empty Predicates slice is always true.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}
