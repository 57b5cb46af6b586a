package expr

import "fmt"

// WithChildren returns a copy of n with its child slots replaced by
// kids, given in Children() order. Everything else - op, location,
// dtype, kind-specific state - carries over unchanged, so the copy is
// Same as the original. Constant values are immutable and shared.
func WithChildren(n Node, kids ...Ref) Node {
	if want := len(n.Children()); len(kids) != want {
		panic(fmt.Sprintf("expr: WithChildren %s: %d children, want %d", n.Op(), len(kids), want))
	}
	switch x := n.(type) {
	case *Leaf:
		c := *x
		return &c
	case *Unop:
		c := *x
		c.Lhs = kids[0]
		return &c
	case *Binop:
		c := *x
		c.Lhs, c.Rhs = kids[0], kids[1]
		return &c
	case *Triop:
		c := *x
		c.Lhs, c.Rhs, c.Ths = kids[0], kids[1], kids[2]
		return &c
	case *Quadop:
		c := *x
		c.Lhs, c.Rhs, c.Ths, c.Fhs = kids[0], kids[1], kids[2], kids[3]
		return &c
	case *Cond:
		c := *x
		c.Pred, c.Then, c.Else = kids[0], kids[1], kids[2]
		return &c
	case *Sel:
		c := *x
		c.From, c.Lsb, c.Width = kids[0], kids[1], kids[2]
		return &c
	case *SliceSel:
		c := *x
		c.From, c.Lo, c.Elems = kids[0], kids[1], kids[2]
		return &c
	case *Const:
		c := *x
		return &c
	case *VarRef:
		c := *x
		return &c
	case *VarXRef:
		c := *x
		return &c
	case *MemberSel:
		c := *x
		c.From = kids[0]
		return &c
	case *EnumItemRef:
		c := *x
		return &c
	case *LambdaArgRef:
		c := *x
		return &c
	case *ScopeName:
		c := *x
		c.Attrs = append([]string(nil), x.Attrs...)
		c.Entries = append([]string(nil), x.Entries...)
		return &c
	case *Time:
		c := *x
		return &c
	case *TimeImport:
		c := *x
		c.Lhs = kids[0]
		return &c
	case *Rand:
		c := *x
		c.Seed = kids[0]
		return &c
	case *AddrOfCFunc:
		c := *x
		return &c
	case *CCast:
		c := *x
		c.Lhs = kids[0]
		return &c
	case *AtoN:
		c := *x
		c.Lhs = kids[0]
		return &c
	case *CompareNN:
		c := *x
		c.Lhs, c.Rhs = kids[0], kids[1]
		return &c
	case *LogOr:
		c := *x
		c.Lhs, c.Rhs = kids[0], kids[1]
		return &c
	case *CMath:
		c := *x
		c.Exprs = append([]Ref(nil), kids...)
		return &c
	case *UCFunc:
		c := *x
		c.Exprs = append([]Ref(nil), kids...)
		return &c
	case *ScanF:
		c := *x
		c.Exprs = append([]Ref(nil), kids[:len(kids)-1]...)
		c.Src = kids[len(kids)-1]
		return &c
	case *Inside:
		c := *x
		c.Expr = kids[0]
		c.Items = append([]Ref(nil), kids[1:]...)
		return &c
	case *Pattern:
		c := *x
		c.Items = append([]Ref(nil), kids...)
		return &c
	case *PatMember:
		c := *x
		nl := len(x.Lhss)
		c.Lhss = append([]Ref(nil), kids[:nl]...)
		c.Key, c.Rep = kids[nl], kids[nl+1]
		return &c
	case *ExprStmt:
		c := *x
		ns := len(x.Stmts)
		c.Stmts = append([]Ref(nil), kids[:ns]...)
		c.Result = kids[ns]
		return &c
	case *ConsAssoc:
		c := *x
		c.Default = kids[0]
		return &c
	case *ConsDyn:
		c := *x
		c.Lhs, c.Rhs = kids[0], kids[1]
		return &c
	case *GatePin:
		c := *x
		c.Expr = kids[0]
		return &c
	}
	panic(fmt.Sprintf("expr: WithChildren: unhandled node %T", n))
}

// Cloner copies subtrees between arenas, or within one. Copies made
// through the same Cloner share a ref map, so a subtree cloned twice
// yields one copy and cross-tree sharing survives. Declarations are
// carried into the destination once per id; within a single arena they
// are shared untouched.
type Cloner struct {
	src, dst *Arena

	refs   map[Ref]Ref
	vars   map[VarID]VarID
	scopes map[ScopeID]ScopeID
	items  map[ItemID]ItemID
	pkgs   map[PkgID]PkgID
	funcs  map[FuncID]FuncID
}

// NewCloner prepares copying from src to dst. The two may be the same
// arena; then declaration ids pass through unchanged.
func NewCloner(src, dst *Arena) *Cloner {
	return &Cloner{
		src:    src,
		dst:    dst,
		refs:   make(map[Ref]Ref),
		vars:   make(map[VarID]VarID),
		scopes: make(map[ScopeID]ScopeID),
		items:  make(map[ItemID]ItemID),
		pkgs:   make(map[PkgID]PkgID),
		funcs:  make(map[FuncID]FuncID),
	}
}

// Clone copies the subtree under root and returns the copy's root.
// Children are copied before the parent that links them, so every
// reference between nodes inside the subtree lands on a copy, never on
// an original. Nodes outside the subtree are not touched.
func (c *Cloner) Clone(root Ref) Ref {
	if root == NilRef {
		return NilRef
	}
	if r, ok := c.refs[root]; ok {
		return r
	}
	n := c.src.Node(root)
	kids := n.Children()
	for i, k := range kids {
		kids[i] = c.Clone(k)
	}
	cp := WithChildren(n, kids...)
	if c.src != c.dst {
		c.carryDecls(cp)
	}
	r := c.dst.Add(cp)
	c.refs[root] = r
	return r
}

// Mapped reports where an already-cloned ref landed.
func (c *Cloner) Mapped(r Ref) (Ref, bool) {
	nr, ok := c.refs[r]
	return nr, ok
}

// carryDecls rewrites the copy's declaration links to destination ids.
func (c *Cloner) carryDecls(n Node) {
	switch x := n.(type) {
	case *VarRef:
		x.Var = c.varID(x.Var)
		x.Scope = c.scopeID(x.Scope)
		x.Pkg = c.pkgID(x.Pkg)
	case *VarXRef:
		x.Var = c.varID(x.Var)
	case *MemberSel:
		x.Var = c.varID(x.Var)
	case *EnumItemRef:
		x.Item = c.itemID(x.Item)
		x.Pkg = c.pkgID(x.Pkg)
	case *AddrOfCFunc:
		x.Func = c.funcID(x.Func)
	}
}

func (c *Cloner) varID(id VarID) VarID {
	if id == 0 {
		return 0
	}
	nid, ok := c.vars[id]
	if !ok {
		nid = c.dst.AddVar(c.src.Var(id))
		c.vars[id] = nid
	}
	return nid
}

func (c *Cloner) scopeID(id ScopeID) ScopeID {
	if id == 0 {
		return 0
	}
	nid, ok := c.scopes[id]
	if !ok {
		s := c.src.Scope(id)
		s.Var = c.varID(s.Var)
		nid = c.dst.AddScope(s)
		c.scopes[id] = nid
	}
	return nid
}

func (c *Cloner) itemID(id ItemID) ItemID {
	if id == 0 {
		return 0
	}
	nid, ok := c.items[id]
	if !ok {
		nid = c.dst.AddEnumItem(c.src.EnumItem(id))
		c.items[id] = nid
	}
	return nid
}

func (c *Cloner) pkgID(id PkgID) PkgID {
	if id == 0 {
		return 0
	}
	nid, ok := c.pkgs[id]
	if !ok {
		nid = c.dst.AddPackage(c.src.Package(id))
		c.pkgs[id] = nid
	}
	return nid
}

func (c *Cloner) funcID(id FuncID) FuncID {
	if id == 0 {
		return 0
	}
	nid, ok := c.funcs[id]
	if !ok {
		nid = c.dst.AddCFunc(c.src.CFunc(id))
		c.funcs[id] = nid
	}
	return nid
}

// CloneTree copies the subtree under root within a single arena.
func CloneTree(a *Arena, root Ref) Ref {
	return NewCloner(a, a).Clone(root)
}
