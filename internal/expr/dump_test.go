package expr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmerdich/verilator/internal/num"
)

func TestDumpTree(t *testing.T) {
	a := NewArena("unit")
	x := addRead(a, "x", 8)
	root := addBin(a, OpAnd, 8, x, addConstU(a, 8, 0xF))

	want := strings.Join([]string{
		`And (logic [7:0])`,
		`  VarRef "x" RD (logic [7:0])`,
		`  Const 8'hf (logic [7:0])`,
		``,
	}, "\n")
	assert.Equal(t, want, DumpString(a, root))
}

func TestDumpNesting(t *testing.T) {
	a := NewArena("unit")
	pred := addRead(a, "sel", 1)
	inner := addBin(a, OpAdd, 8, addRead(a, "x", 8), addConstU(a, 8, 1))

	n := NewCond(OpCond, tLoc(2), pred, inner, addConstU(a, 8, 0))
	n.SetDType(LogicDType(8, false))
	root := a.Add(n)

	want := strings.Join([]string{
		`Cond (logic [7:0])`,
		`  VarRef "sel" RD (logic)`,
		`  Add (logic [7:0])`,
		`    VarRef "x" RD (logic [7:0])`,
		`    Const 8'h1 (logic [7:0])`,
		`  Const 8'h0 (logic [7:0])`,
		``,
	}, "\n")
	assert.Equal(t, want, DumpString(a, root))
}

func TestDumpAbsentSlots(t *testing.T) {
	a := NewArena("unit")
	n := NewPatMember(tLoc(1), []Ref{addConstU(a, 8, 1)}, NilRef, NilRef)
	n.SetDType(BitSizedDType(8))

	want := strings.Join([]string{
		`PatMember (logic [7:0])`,
		`  Const 8'h1 (logic [7:0])`,
		`  -`,
		`  -`,
		``,
	}, "\n")
	assert.Equal(t, want, DumpString(a, a.Add(n)))
}

func TestDumpXBits(t *testing.T) {
	a := NewArena("unit")
	r := a.Add(NewConst(tLoc(1), num.MustParse("4'b1x0z")))
	assert.Equal(t, "Const 4'b1x0z (logic [3:0])\n", DumpString(a, r))
}

func TestSummary(t *testing.T) {
	a := NewArena("unit")
	sid := a.AddScope(VarScope{Path: "top.u0"})

	scoped := NewVarRef(tLoc(1), "clk", AccessRead)
	scoped.Scope = sid
	scoped.SetDType(LogicDType(1, false))

	cast := NewCCast(tLoc(1), Ref(1), 32)
	cast.SetDType(LogicDType(32, false))

	rnd := NewRand(tLoc(1), NilRef, true)
	rnd.SetDType(LogicDType(32, false))

	tests := []struct {
		name string
		ref  Ref
		want string
	}{
		{"nil", NilRef, "-"},
		{"plain", addConstU(a, 8, 5), "Const 8'h5 (logic [7:0])"},
		{"scoped ref", a.Add(scoped), `VarRef "clk" RD @top.u0 (logic)`},
		{"cast", a.Add(cast), "CCast sz32 (logic [31:0])"},
		{"rand", a.Add(rnd), "Rand urandom (logic [31:0])"},
		{"time", a.Add(NewTime(OpTime, tLoc(1), TS1NS)), "Time 1ns (logic [63:0])"},
		{"member", a.Add(NewMemberSel(tLoc(1), Ref(1), "re")), "MemberSel .re (untyped)"},
		{"compare", a.Add(NewCompareNN(tLoc(1), Ref(1), Ref(2), true)), "CompareNN icompare (logic [31:0])"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(a, tt.ref))
		})
	}
}

func TestDumpReportsWriteErrors(t *testing.T) {
	a := NewArena("unit")
	r := addConstU(a, 8, 1)
	err := Dump(failWriter{}, a, r)
	assert.Error(t, err)
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, assert.AnError
}
