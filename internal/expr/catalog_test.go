package expr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogEveryOpHasARow(t *testing.T) {
	seen := make(map[string]Op, NumOps)
	for _, op := range AllOps() {
		info := Info(op)
		require.NotNil(t, info)
		require.NotEmpty(t, info.Name, "op %d has no name", uint16(op))

		prev, dup := seen[info.Name]
		require.False(t, dup, "name %q used by both %d and %d", info.Name, uint16(prev), uint16(op))
		seen[info.Name] = op

		assert.Equal(t, op, OpByName(info.Name), "name %q does not resolve back", info.Name)
		assert.Equal(t, info.Name, op.String())
	}
	assert.Len(t, seen, NumOps)
}

func TestCatalogInvalidOp(t *testing.T) {
	assert.False(t, OpInvalid.Valid())
	assert.Equal(t, "Op(0)", OpInvalid.String())
	assert.Equal(t, OpInvalid, OpByName("NoSuchOp"))
	assert.Panics(t, func() { Info(OpInvalid) })
	assert.Panics(t, func() { Info(Op(NumOps + 1)) })
}

func TestCatalogMathCallFamilies(t *testing.T) {
	// The libm-style call kinds share one profile: real-valued, plain
	// operand shapes, fixed trig-call cost.
	for _, op := range AllOps() {
		info := Info(op)
		switch info.Family {
		case FamilySysUnary:
			assert.Equal(t, ShapeUnary, info.Shape, "%s", op)
			assert.True(t, info.FlavorDbl, "%s not flagged real", op)
			assert.Equal(t, instrCountDblTrig, info.Cost.Flat, "%s", op)
			assert.Negative(t, info.Cost.W, "%s cost should not scale with width", op)
		case FamilySysBinary:
			assert.Equal(t, ShapeBinary, info.Shape, "%s", op)
			assert.True(t, info.FlavorDbl, "%s not flagged real", op)
			assert.Equal(t, instrCountDblTrig, info.Cost.Flat, "%s", op)
		}
	}
}

func TestCatalogCommutativeFamilies(t *testing.T) {
	assert.True(t, FamilyBinaryCom.IsCommutative())
	assert.True(t, FamilyBinaryComAsv.IsCommutative())
	assert.False(t, FamilyBinary.IsCommutative())

	for _, op := range AllOps() {
		if f := Info(op).Family; f.IsCommutative() {
			assert.Equal(t, ShapeBinary, Info(op).Shape, "%s", op)
		}
	}
}

func TestCatalogFamilyNames(t *testing.T) {
	for _, op := range AllOps() {
		f := Info(op).Family
		name := f.String()
		assert.False(t, strings.HasPrefix(name, "Family("), "%s family unnamed", op)
		got, ok := FamilyByName(name)
		require.True(t, ok, "family name %q does not resolve", name)
		assert.Equal(t, f, got)
	}
	_, ok := FamilyByName("no-such-family")
	assert.False(t, ok)
}

func TestCatalogFlavorBases(t *testing.T) {
	tests := []struct {
		op   Op
		base string
	}{
		{OpAdd, "Add"},
		{OpAddD, "Add"},
		{OpGtN, "Gt"},
		{OpGtS, "Gt"},
		{OpDivS, "Div"},
		{OpPowSS, "Pow"},
		{OpPowSU, "Pow"},
		{OpPowUS, "Pow"},
		{OpPowD, "Pow"},
		{OpTimeD, "Time"},
		{OpShiftRS, "ShiftR"},
		{OpConst, "Const"},
		{OpRand, "Rand"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.base, BaseName(tt.op), "%s", tt.op)
	}
}

func TestCatalogFlavorVariants(t *testing.T) {
	assert.Equal(t, []Op{OpGt, OpGtD, OpGtN, OpGtS}, FlavorVariants("Gt"))
	assert.Equal(t, []Op{OpPow, OpPowD, OpPowSS, OpPowSU, OpPowUS}, FlavorVariants("Pow"))
	assert.Equal(t, []Op{OpTime, OpTimeD}, FlavorVariants("Time"))
	assert.Equal(t, []Op{OpConst}, FlavorVariants("Const"))
	assert.Empty(t, FlavorVariants("NoSuchBase"))

	// Flavor flags imply a base distinct from the own name; bases
	// themselves carry no flag.
	for _, op := range AllOps() {
		info := Info(op)
		flavored := info.FlavorDbl || info.FlavorSgn || info.FlavorStr
		if flavored {
			assert.NotEqual(t, info.Name, BaseName(op), "%s flagged but base is itself", op)
		} else {
			assert.Equal(t, info.Name, BaseName(op))
		}
	}
}

func TestCatalogResultTypes(t *testing.T) {
	tests := []struct {
		op   Op
		want DType
	}{
		{OpEqD, BitDType()},
		{OpLogNot, BitDType()},
		{OpLenN, Signed32DType()},
		{OpCompareNN, UInt32DType()},
		{OpTime, UInt64DType()},
		{OpAddD, DoubleDType()},
		{OpCvtPackString, StringDType()},
		{OpGetcN, BitSizedDType(8)},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, selfDType(tt.op))
		})
	}

	// Width-from-operands kinds start untyped; widthing fills them in.
	assert.Equal(t, DType{}, selfDType(OpAdd))
	assert.Equal(t, DType{}, selfDType(OpCond))
	assert.Equal(t, "untyped", selfDType(OpAdd).String())
}

func TestCatalogCostRows(t *testing.T) {
	// Width-scaled rows carry the per-word factor in W; flat rows put
	// everything in Flat with W negative.
	tests := []struct {
		op   Op
		w    int
		flat int
	}{
		{OpAdd, 0, 0},
		{OpDiv, instrCountIntDiv, 0},
		{OpMulS, instrCountIntMul, 0},
		{OpDivD, -1, instrCountDblDiv},
		{OpSinD, -1, instrCountDblTrig},
		{OpTime, -1, instrCountTime},
		{OpRand, -1, instrCountPli},
		{OpCompareNN, 0, 0},
		{OpNullCheck, -1, 1},
		{OpConcatN, -1, instrCountStr},
		{OpGtN, -1, instrCountStr},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			c := Info(tt.op).Cost
			if tt.w < 0 {
				assert.Negative(t, c.W)
			} else {
				assert.Equal(t, tt.w, c.W)
			}
			assert.Equal(t, tt.flat, c.Flat)
		})
	}
}

func TestCatalogOpaqueIsTheStringCast(t *testing.T) {
	// Folding must not look through the pack-to-string cast; nothing
	// else is opaque.
	var opaque []Op
	for _, op := range AllOps() {
		if Info(op).Opaque {
			opaque = append(opaque, op)
		}
	}
	assert.Equal(t, []Op{OpCvtPackString}, opaque)
}

func TestCatalogOutputters(t *testing.T) {
	for _, op := range []Op{OpUCFunc, OpSystemF} {
		assert.True(t, IsOutputter(op), "%s", op)
		assert.True(t, Info(op).Impure, "%s output implies impure", op)
	}
	assert.False(t, IsOutputter(OpAdd))
}

func TestCatalogTemplateSentinel(t *testing.T) {
	// The empty template is a valid "emit nothing" answer and must stay
	// distinct from not-applicable.
	require.NotEqual(t, "", naTmpl)

	cb := Info(OpCountBits)
	assert.Equal(t, "", cb.EmitC)
	assert.Equal(t, "%f$countbits(%l, %r, %f, %o)", cb.EmitV)
}
