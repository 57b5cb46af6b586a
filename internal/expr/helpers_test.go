package expr

import "github.com/jmerdich/verilator/internal/num"

// Tree-building shorthand shared by the tests in this package.

func tLoc(line int) Loc { return Loc{File: "t.v", Line: line, Col: 3} }

func addConstU(a *Arena, width int, val uint64) Ref {
	return a.Add(NewConst(tLoc(1), num.NewLogic(width, val)))
}

func addBin(a *Arena, op Op, width int, lhs, rhs Ref) Ref {
	n := NewBinop(op, tLoc(2), lhs, rhs)
	n.SetDType(LogicDType(width, false))
	return a.Add(n)
}

func addRead(a *Arena, name string, width int) Ref {
	n := NewVarRef(tLoc(3), name, AccessRead)
	n.SetDType(LogicDType(width, false))
	return a.Add(n)
}
