package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmerdich/verilator/internal/num"
)

func TestSameComparesOperator(t *testing.T) {
	x := NewBinop(OpAdd, tLoc(1), Ref(1), Ref(2))
	y := NewBinop(OpSub, tLoc(1), Ref(1), Ref(2))
	assert.False(t, Same(x, y))
	assert.True(t, Same(x, x))
}

func TestSameConst(t *testing.T) {
	a := NewConst(tLoc(1), num.NewLogic(8, 5))
	b := NewConst(tLoc(9), num.NewLogic(8, 5))
	c := NewConst(tLoc(1), num.NewLogic(8, 6))
	assert.True(t, Same(a, b), "location does not matter")
	assert.False(t, Same(a, c))

	// Case equality: X positions must match X positions.
	x1 := NewConst(tLoc(1), num.MustParse("4'b1x0z"))
	x2 := NewConst(tLoc(1), num.MustParse("4'b1x0z"))
	x3 := NewConst(tLoc(1), num.MustParse("4'b1100"))
	assert.True(t, Same(x1, x2))
	assert.False(t, Same(x1, x3))
}

func TestSameVarRefUnscoped(t *testing.T) {
	mk := func(name string, acc Access) *VarRef {
		v := NewVarRef(tLoc(1), name, acc)
		v.Var = VarID(7)
		return v
	}
	assert.True(t, Same(mk("clk", AccessRead), mk("clk", AccessRead)))
	assert.False(t, Same(mk("clk", AccessRead), mk("clk", AccessWrite)))
	assert.False(t, Same(mk("clk", AccessRead), mk("rst", AccessRead)))

	p := mk("clk", AccessRead)
	p.SelfPointer = "this"
	assert.False(t, Same(p, mk("clk", AccessRead)))
}

func TestSameVarRefScopedIgnoresName(t *testing.T) {
	mk := func(name string, scope ScopeID) *VarRef {
		v := NewVarRef(tLoc(1), name, AccessRead)
		v.Scope = scope
		return v
	}
	// Once a reference is bound to a scope slot the name is redundant.
	assert.True(t, Same(mk("clk", ScopeID(3)), mk("clock", ScopeID(3))))
	assert.False(t, Same(mk("clk", ScopeID(3)), mk("clk", ScopeID(4))))
}

func TestSameVarRefIsReceiverDriven(t *testing.T) {
	bound := NewVarRef(tLoc(1), "clk", AccessRead)
	bound.Var = VarID(7)
	bound.Scope = ScopeID(3)

	free := NewVarRef(tLoc(1), "clk", AccessRead)
	free.Var = VarID(7)

	// The receiver picks the comparison: an unbound receiver never
	// looks at the scope slot, a bound one compares nothing else.
	assert.True(t, Same(free, bound))
	assert.False(t, Same(bound, free))
}

func TestSameIgnoringAccess(t *testing.T) {
	rd := NewVarRef(tLoc(1), "q", AccessRead)
	rd.Var = VarID(2)
	wr := NewVarRef(tLoc(5), "q", AccessWrite)
	wr.Var = VarID(2)

	assert.False(t, Same(rd, wr))
	assert.True(t, SameIgnoringAccess(rd, wr))

	other := NewVarRef(tLoc(1), "q", AccessWrite)
	other.Var = VarID(9)
	assert.False(t, SameIgnoringAccess(rd, other))

	srd := NewVarRef(tLoc(1), "q", AccessRead)
	srd.Scope = ScopeID(4)
	swr := NewVarRef(tLoc(1), "renamed", AccessWrite)
	swr.Scope = ScopeID(4)
	assert.True(t, SameIgnoringAccess(srd, swr))
}

func TestSameNullCheckNeedsSamePosition(t *testing.T) {
	x := NewUnop(OpNullCheck, tLoc(10), Ref(1))
	y := NewUnop(OpNullCheck, tLoc(10), Ref(2))
	z := NewUnop(OpNullCheck, tLoc(11), Ref(1))
	assert.True(t, Same(x, y))
	assert.False(t, Same(x, z), "checks at different positions must both fire")

	// Other unary kinds do not carry the position into equivalence.
	assert.True(t, Same(NewUnop(OpNot, tLoc(10), Ref(1)), NewUnop(OpNot, tLoc(11), Ref(1))))
}

func TestSameIsEquivalence(t *testing.T) {
	mkConst := func() Node { return NewConst(tLoc(1), num.MustParse("8'hf3")) }
	mkVarRef := func() Node {
		v := NewVarRef(tLoc(1), "clk", AccessRead)
		v.Var = VarID(7)
		return v
	}
	mkCast := func() Node { return NewCCast(tLoc(1), Ref(1), 32) }

	for _, tc := range []struct {
		name string
		mk   func() Node
	}{
		{"const", mkConst},
		{"varref", mkVarRef},
		{"ccast", mkCast},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a, b, c := tc.mk(), tc.mk(), tc.mk()
			assert.True(t, Same(a, a), "reflexive")
			assert.True(t, Same(a, b), "a ~ b")
			assert.True(t, Same(b, a), "symmetric")
			assert.True(t, Same(b, c), "b ~ c")
			assert.True(t, Same(a, c), "transitive")
		})
	}
}

func TestSameIgnoresStateOnStatelessKinds(t *testing.T) {
	loc := tLoc(1)

	// Member selection: the dtype comparison carries the burden.
	assert.True(t, Same(NewMemberSel(loc, Ref(1), "re"), NewMemberSel(loc, Ref(1), "im")))

	// String-to-number conversions with different radixes.
	assert.True(t, Same(NewAtoN(loc, Ref(1), AtoFmtHex), NewAtoN(loc, Ref(1), AtoFmtDec)))

	// Case-sensitive and insensitive string compares.
	assert.True(t, Same(NewCompareNN(loc, Ref(1), Ref(2), true), NewCompareNN(loc, Ref(1), Ref(2), false)))

	// Random generators, whatever their flags.
	assert.True(t, Same(NewRand(loc, NilRef, true), NewRandReset(loc, LogicDType(32, false))))

	// Time reads in different units.
	assert.True(t, Same(NewTime(OpTime, loc, TS1NS), NewTime(OpTime, loc, TS1PS)))
}

func TestSameStatefulKinds(t *testing.T) {
	loc := tLoc(1)

	assert.True(t, Same(NewCCast(loc, Ref(1), 32), NewCCast(loc, Ref(1), 32)))
	assert.False(t, Same(NewCCast(loc, Ref(1), 32), NewCCast(loc, Ref(1), 64)))

	so := NewLogOr(loc, Ref(1), Ref(2))
	so.SideEffect = true
	assert.False(t, Same(NewLogOr(loc, Ref(1), Ref(2)), so))

	sn := NewScopeName(loc, true)
	assert.False(t, Same(NewScopeName(loc, false), sn))

	f1 := NewScanF(OpFScanF, loc, "%d", []Ref{Ref(2)}, Ref(1))
	f2 := NewScanF(OpFScanF, loc, "%x", []Ref{Ref(2)}, Ref(1))
	assert.False(t, Same(f1, f2))

	assert.True(t, Same(NewEnumItemRef(loc, ItemID(1)), NewEnumItemRef(loc, ItemID(1))))
	assert.False(t, Same(NewEnumItemRef(loc, ItemID(1)), NewEnumItemRef(loc, ItemID(2))))

	x1 := NewVarXRef(loc, "v", "top.sub", AccessRead)
	x2 := NewVarXRef(loc, "v", "top.other", AccessRead)
	assert.False(t, Same(x1, x2))
}

func TestCombinable(t *testing.T) {
	loc := tLoc(1)
	u1 := NewRand(loc, NilRef, true)
	u2 := NewRand(loc, NilRef, true)
	assert.True(t, Combinable(u1, u2))

	plain := NewRand(loc, NilRef, false)
	assert.False(t, Combinable(u1, plain), "different streams")

	seeded := NewRand(loc, Ref(1), true)
	assert.False(t, Combinable(u1, seeded), "seeded draws are ordered")
	assert.False(t, Combinable(seeded, seeded))

	reset := NewRandReset(loc, LogicDType(32, false))
	assert.False(t, Combinable(u1, reset))
}

func TestTreeEqual(t *testing.T) {
	a := NewArena("unit")

	mkAdd := func(w int, lv, rv uint64) Ref {
		return addBin(a, OpAdd, w, addConstU(a, w, lv), addConstU(a, w, rv))
	}

	x := mkAdd(8, 1, 2)
	y := mkAdd(8, 1, 2)
	z := mkAdd(8, 1, 3)
	require.NotEqual(t, x, y, "distinct trees")

	assert.True(t, TreeEqual(a, x, x))
	assert.True(t, TreeEqual(a, x, y))
	assert.False(t, TreeEqual(a, x, z), "leaf value differs")

	// Same shape, different result type.
	w := mkAdd(16, 1, 2)
	assert.False(t, TreeEqual(a, x, w))

	// Nil references match each other and nothing else.
	assert.True(t, TreeEqual(a, NilRef, NilRef))
	assert.False(t, TreeEqual(a, x, NilRef))
	assert.False(t, TreeEqual(a, NilRef, x))
}

func TestTreeEqualOptionalSlots(t *testing.T) {
	a := NewArena("unit")
	loc := tLoc(1)

	mk := func(key Ref) Ref {
		n := NewPatMember(loc, []Ref{addConstU(a, 8, 1)}, key, NilRef)
		n.SetDType(BitSizedDType(8))
		return a.Add(n)
	}

	keyed := mk(addConstU(a, 32, 0))
	bare1 := mk(NilRef)
	bare2 := mk(NilRef)

	assert.True(t, TreeEqual(a, bare1, bare2))
	assert.False(t, TreeEqual(a, keyed, bare1))
	assert.False(t, TreeEqual(a, bare1, keyed))
}

func TestTreeEqualDescendsSharedSubtrees(t *testing.T) {
	a := NewArena("unit")
	shared := addRead(a, "x", 8)

	l := addBin(a, OpAnd, 8, shared, addConstU(a, 8, 0xF))
	r := addBin(a, OpAnd, 8, shared, addConstU(a, 8, 0xF))
	assert.True(t, TreeEqual(a, l, r))

	// Same var, different direction: not interchangeable.
	wr := NewVarRef(tLoc(3), "x", AccessWrite)
	wr.SetDType(LogicDType(8, false))
	r2 := addBin(a, OpAnd, 8, a.Add(wr), addConstU(a, 8, 0xF))
	assert.False(t, TreeEqual(a, l, r2))
}
