package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmerdich/verilator/internal/num"
)

func TestTreeHashShape(t *testing.T) {
	a := NewArena("unit")
	r := addBin(a, OpAdd, 8, addConstU(a, 8, 1), addConstU(a, 8, 2))

	h := TreeHash(a, r)
	assert.Len(t, h, 64, "sha-256 hex")
	assert.Equal(t, h, TreeHash(a, r), "stable across hashers")

	assert.Equal(t, "", TreeHash(a, NilRef))
}

func TestTreeHashConstant(t *testing.T) {
	assert.Equal(t, "vexpr/tree/v1", DomainTree)
}

func TestTreeHashFollowsTreeEquality(t *testing.T) {
	a := NewArena("unit")

	x := addBin(a, OpAdd, 8, addConstU(a, 8, 1), addConstU(a, 8, 2))
	y := addBin(a, OpAdd, 8, addConstU(a, 8, 1), addConstU(a, 8, 2))
	require.True(t, TreeEqual(a, x, y))
	assert.Equal(t, TreeHash(a, x), TreeHash(a, y))

	// Hash separates what TreeEqual separates.
	for name, other := range map[string]Ref{
		"operator":    addBin(a, OpSub, 8, addConstU(a, 8, 1), addConstU(a, 8, 2)),
		"value":       addBin(a, OpAdd, 8, addConstU(a, 8, 1), addConstU(a, 8, 3)),
		"width":       addBin(a, OpAdd, 16, addConstU(a, 8, 1), addConstU(a, 8, 2)),
		"child order": addBin(a, OpAdd, 8, addConstU(a, 8, 2), addConstU(a, 8, 1)),
	} {
		assert.NotEqual(t, TreeHash(a, x), TreeHash(a, other), name)
	}
}

func TestTreeHashSignedness(t *testing.T) {
	a := NewArena("unit")
	l := addConstU(a, 8, 1)

	u := NewUnop(OpNot, tLoc(2), l)
	u.SetDType(LogicDType(8, false))
	s := NewUnop(OpNot, tLoc(2), l)
	s.SetDType(LogicDType(8, true))

	assert.NotEqual(t, TreeHash(a, a.Add(u)), TreeHash(a, a.Add(s)))
}

func TestTreeHashScopedVarRefIgnoresName(t *testing.T) {
	a := NewArena("unit")

	mk := func(name string) Ref {
		v := NewVarRef(tLoc(1), name, AccessRead)
		v.Scope = ScopeID(3)
		v.SetDType(LogicDType(8, false))
		return a.Add(v)
	}
	assert.Equal(t, TreeHash(a, mk("clk")), TreeHash(a, mk("clock")))

	unbound := NewVarRef(tLoc(1), "clk", AccessRead)
	unbound.SetDType(LogicDType(8, false))
	assert.NotEqual(t, TreeHash(a, mk("clk")), TreeHash(a, a.Add(unbound)))
}

func TestTreeHashNullCheckPosition(t *testing.T) {
	a := NewArena("unit")
	obj := addRead(a, "h", 64)

	mk := func(line int) Ref {
		n := NewUnop(OpNullCheck, tLoc(line), obj)
		n.SetDType(LogicDType(64, false))
		return a.Add(n)
	}
	assert.Equal(t, TreeHash(a, mk(5)), TreeHash(a, mk(5)))
	assert.NotEqual(t, TreeHash(a, mk(5)), TreeHash(a, mk(6)))
}

func TestTreeHashStateEquivalentKindsCollapse(t *testing.T) {
	a := NewArena("unit")
	s := a.Add(NewConst(tLoc(1), num.NewString("ff")))

	// AtoN radix is not part of equivalence, so the hash drops it too.
	hex := NewAtoN(tLoc(2), s, AtoFmtHex)
	dec := NewAtoN(tLoc(2), s, AtoFmtDec)
	dec.SetDType(hex.DType())
	assert.Equal(t, TreeHash(a, a.Add(hex)), TreeHash(a, a.Add(dec)))
}

func TestTreeHashOptionalSlots(t *testing.T) {
	a := NewArena("unit")
	loc := tLoc(1)

	mk := func(key Ref) Ref {
		n := NewPatMember(loc, []Ref{addConstU(a, 8, 1)}, key, NilRef)
		n.SetDType(BitSizedDType(8))
		return a.Add(n)
	}
	keyed := mk(addConstU(a, 32, 0))
	bare := mk(NilRef)
	assert.NotEqual(t, TreeHash(a, keyed), TreeHash(a, bare))
	assert.Equal(t, TreeHash(a, bare), TreeHash(a, mk(NilRef)))
}

func TestTreeHashNormalizesNames(t *testing.T) {
	a := NewArena("unit")

	mk := func(name string) Ref {
		v := NewVarRef(tLoc(1), name, AccessRead)
		v.SetDType(LogicDType(8, false))
		return a.Add(v)
	}
	composed := mk("café")
	decomposed := mk("café")
	assert.Equal(t, TreeHash(a, composed), TreeHash(a, decomposed))
}

func TestHasherMemoizes(t *testing.T) {
	a := NewArena("unit")
	shared := addRead(a, "x", 8)
	root := addBin(a, OpAnd, 8, shared, addConstU(a, 8, 0xF))

	h := NewHasher(a)
	want := h.Hash(root)

	assert.Contains(t, h.memo, shared, "subtree hashed along the way")
	assert.Equal(t, want, h.Hash(root))

	// Fresh hasher, same answer.
	assert.Equal(t, want, NewHasher(a).Hash(root))
}
