package expr

// Node equivalence. Same compares operator and per-node state without
// looking at children; TreeEqual extends it over whole trees. Most
// stateful kinds deliberately ignore their state here: two $random
// calls are interchangeable whatever their flags, and duplicate
// merging depends on that.

// Same reports whether x and y are interchangeable node for node.
// Children are not compared.
func Same(x, y Node) bool {
	if x.Op() != y.Op() {
		return false
	}
	switch a := x.(type) {
	case *Const:
		return a.Num.CaseEqual(y.(*Const).Num)
	case *VarRef:
		b := y.(*VarRef)
		if a.Scope != 0 {
			return a.Scope == b.Scope && a.Access == b.Access
		}
		return a.SelfPointer == b.SelfPointer && a.Var == b.Var &&
			a.Name == b.Name && a.Access == b.Access
	case *VarXRef:
		b := y.(*VarXRef)
		return a.SelfPointer == b.SelfPointer && a.Var == b.Var &&
			a.Name == b.Name && a.Dotted == b.Dotted
	case *EnumItemRef:
		return a.Item == y.(*EnumItemRef).Item
	case *CCast:
		return a.Size == y.(*CCast).Size
	case *LogOr:
		return a.SideEffect == y.(*LogOr).SideEffect
	case *ScopeName:
		b := y.(*ScopeName)
		return a.DPIExport == b.DPIExport && a.ForFormat == b.ForFormat
	case *ScanF:
		return a.Text == y.(*ScanF).Text
	case *Unop:
		if a.Op() == OpNullCheck {
			// Two checks are redundant only at the same source
			// position.
			return a.Loc() == y.Loc()
		}
	}
	return true
}

// SameIgnoringAccess is Same for variable references with the access
// direction left out; substitution uses it to match reads against the
// write that produced them.
func SameIgnoringAccess(x, y *VarRef) bool {
	if x.Scope != 0 {
		return x.Scope == y.Scope
	}
	return x.SelfPointer == y.SelfPointer && x.Var == y.Var && x.Name == y.Name
}

// Combinable reports whether two unseeded random generators draw from
// the same stream and may merge into one call.
func Combinable(x, y *Rand) bool {
	return x.Seed == NilRef && y.Seed == NilRef &&
		x.Reset == y.Reset && x.Urandom == y.Urandom
}

// TreeEqual reports whether the trees rooted at x and y match node for
// node: operator, result type, per-node state, and children
// recursively. Two nil references match.
func TreeEqual(a *Arena, x, y Ref) bool {
	nx, ny := a.Node(x), a.Node(y)
	if nx == nil || ny == nil {
		return nx == nil && ny == nil
	}
	if nx.DType() != ny.DType() || !Same(nx, ny) {
		return false
	}
	cx, cy := nx.Children(), ny.Children()
	if len(cx) != len(cy) {
		return false
	}
	for i := range cx {
		if !TreeEqual(a, cx[i], cy[i]) {
			return false
		}
	}
	return true
}
