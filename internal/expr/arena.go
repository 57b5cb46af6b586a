package expr

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jmerdich/verilator/internal/num"
)

// Ref is the stable index of a node within its Arena. Refs are handed
// out in creation order and never reused, so they survive passes that
// rewrite other parts of the arena. NilRef marks an absent optional
// child.
type Ref uint32

// NilRef is the zero Ref; no node.
const NilRef Ref = 0

// Typed declaration ids. Zero means unbound. Declarations live beside
// the node table so weak references stay valid across tree clones.
type (
	VarID   uint32
	ScopeID uint32
	ItemID  uint32
	PkgID   uint32
	FuncID  uint32
)

// Var is a variable declaration.
type Var struct {
	Name  string
	DType DType
}

// VarScope is one elaborated instance of a Var under a scope path.
type VarScope struct {
	Var  VarID
	Path string
}

// EnumItem is a named enum member with its resolved value.
type EnumItem struct {
	Name  string
	Value *num.Num
	DType DType
}

// Package is a declaration container for package-qualified references.
type Package struct {
	Name string
}

// CFunc is an emitted C function; AddrOfCFunc nodes target these.
type CFunc struct {
	Name string
}

// Arena owns every node and declaration of one expression unit. Index 0
// of each table is reserved so the zero id means "none".
type Arena struct {
	id   uuid.UUID
	name string

	nodes  []Node
	vars   []Var
	scopes []VarScope
	items  []EnumItem
	pkgs   []Package
	funcs  []CFunc
}

// NewArena creates an empty arena with a fresh identity.
func NewArena(name string) *Arena {
	return &Arena{
		id:     uuid.New(),
		name:   name,
		nodes:  make([]Node, 1),
		vars:   make([]Var, 1),
		scopes: make([]VarScope, 1),
		items:  make([]EnumItem, 1),
		pkgs:   make([]Package, 1),
		funcs:  make([]CFunc, 1),
	}
}

func (a *Arena) ID() uuid.UUID { return a.id }
func (a *Arena) Name() string  { return a.name }

// Add stores a node and returns its Ref.
func (a *Arena) Add(n Node) Ref {
	if n == nil {
		panic("expr: Add nil node")
	}
	a.nodes = append(a.nodes, n)
	return Ref(len(a.nodes) - 1)
}

// Node returns the node behind r, or nil for NilRef. An out-of-range
// Ref is a caller bug.
func (a *Arena) Node(r Ref) Node {
	if r == NilRef {
		return nil
	}
	if int(r) >= len(a.nodes) {
		panic(fmt.Sprintf("expr: ref %d out of range (arena %q holds %d nodes)", r, a.name, len(a.nodes)-1))
	}
	return a.nodes[r]
}

// Len is the number of nodes in the arena.
func (a *Arena) Len() int { return len(a.nodes) - 1 }

// All returns every Ref in creation order.
func (a *Arena) All() []Ref {
	refs := make([]Ref, 0, a.Len())
	for i := 1; i < len(a.nodes); i++ {
		refs = append(refs, Ref(i))
	}
	return refs
}

func (a *Arena) AddVar(v Var) VarID {
	a.vars = append(a.vars, v)
	return VarID(len(a.vars) - 1)
}

// Var returns the declaration behind id. Looking up the zero id is a
// caller bug; guard on id != 0 first.
func (a *Arena) Var(id VarID) Var {
	if id == 0 || int(id) >= len(a.vars) {
		panic(fmt.Sprintf("expr: var id %d out of range", id))
	}
	return a.vars[id]
}

func (a *Arena) NumVars() int { return len(a.vars) - 1 }

func (a *Arena) AddScope(s VarScope) ScopeID {
	a.scopes = append(a.scopes, s)
	return ScopeID(len(a.scopes) - 1)
}

func (a *Arena) Scope(id ScopeID) VarScope {
	if id == 0 || int(id) >= len(a.scopes) {
		panic(fmt.Sprintf("expr: scope id %d out of range", id))
	}
	return a.scopes[id]
}

func (a *Arena) NumScopes() int { return len(a.scopes) - 1 }

func (a *Arena) AddEnumItem(it EnumItem) ItemID {
	a.items = append(a.items, it)
	return ItemID(len(a.items) - 1)
}

func (a *Arena) EnumItem(id ItemID) EnumItem {
	if id == 0 || int(id) >= len(a.items) {
		panic(fmt.Sprintf("expr: enum item id %d out of range", id))
	}
	return a.items[id]
}

func (a *Arena) NumEnumItems() int { return len(a.items) - 1 }

func (a *Arena) AddPackage(p Package) PkgID {
	a.pkgs = append(a.pkgs, p)
	return PkgID(len(a.pkgs) - 1)
}

func (a *Arena) Package(id PkgID) Package {
	if id == 0 || int(id) >= len(a.pkgs) {
		panic(fmt.Sprintf("expr: package id %d out of range", id))
	}
	return a.pkgs[id]
}

func (a *Arena) NumPackages() int { return len(a.pkgs) - 1 }

func (a *Arena) AddCFunc(f CFunc) FuncID {
	a.funcs = append(a.funcs, f)
	return FuncID(len(a.funcs) - 1)
}

func (a *Arena) CFunc(id FuncID) CFunc {
	if id == 0 || int(id) >= len(a.funcs) {
		panic(fmt.Sprintf("expr: cfunc id %d out of range", id))
	}
	return a.funcs[id]
}

func (a *Arena) NumCFuncs() int { return len(a.funcs) - 1 }
