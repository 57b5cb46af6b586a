// Package exprtest provides compact tree builders shared by tests
// across packages. Builders panic on misuse (unknown literal, wrong
// shape) instead of returning errors; in a test that is the failure.
package exprtest

import (
	"github.com/jmerdich/verilator/internal/expr"
	"github.com/jmerdich/verilator/internal/num"
)

// Builder accumulates nodes in one arena. The zero value is not
// usable; call New.
type Builder struct {
	Arena *expr.Arena

	line int
}

// New creates a builder over a fresh arena.
func New(unit string) *Builder {
	return &Builder{Arena: expr.NewArena(unit)}
}

// loc fabricates a distinct source position per node so location-aware
// behavior (null-check identity) is observable in tests.
func (b *Builder) loc() expr.Loc {
	b.line++
	return expr.Loc{File: "test.v", Line: b.line}
}

// Const parses a Verilog literal ("8'hff", "'1", "3.14") into a
// constant node.
func (b *Builder) Const(lit string) expr.Ref {
	return b.Arena.Add(expr.NewConst(b.loc(), num.MustParse(lit)))
}

// ConstU adds a sized unsigned constant.
func (b *Builder) ConstU(width int, v uint64) expr.Ref {
	return b.Arena.Add(expr.NewConst(b.loc(), num.NewLogic(width, v)))
}

// ConstStr adds a string constant.
func (b *Builder) ConstStr(s string) expr.Ref {
	return b.Arena.Add(expr.NewConst(b.loc(), num.NewString(s)))
}

// Read declares a fresh variable and adds a read of it.
func (b *Builder) Read(name string, width int) expr.Ref {
	return b.ReadOf(b.Decl(name, width))
}

// Write declares a fresh variable and adds a write of it.
func (b *Builder) Write(name string, width int) expr.Ref {
	return b.refOf(b.Decl(name, width), expr.AccessWrite)
}

// Decl declares a variable without referencing it.
func (b *Builder) Decl(name string, width int) expr.VarID {
	return b.Arena.AddVar(expr.Var{Name: name, DType: expr.LogicDType(width, false)})
}

// ReadOf adds a read of an already-declared variable. Reads of the
// same declaration are interchangeable under Same.
func (b *Builder) ReadOf(id expr.VarID) expr.Ref {
	return b.refOf(id, expr.AccessRead)
}

func (b *Builder) refOf(id expr.VarID, acc expr.Access) expr.Ref {
	decl := b.Arena.Var(id)
	v := expr.NewVarRef(b.loc(), decl.Name, acc)
	v.Var = id
	v.SetDType(decl.DType)
	return b.Arena.Add(v)
}

// Un adds a unary node with an explicit result width.
func (b *Builder) Un(op expr.Op, width int, lhs expr.Ref) expr.Ref {
	n := expr.NewUnop(op, b.loc(), lhs)
	if width > 0 {
		n.SetDType(expr.LogicDType(width, false))
	}
	return b.Arena.Add(n)
}

// Bin adds a binary node with an explicit result width.
func (b *Builder) Bin(op expr.Op, width int, lhs, rhs expr.Ref) expr.Ref {
	n := expr.NewBinop(op, b.loc(), lhs, rhs)
	if width > 0 {
		n.SetDType(expr.LogicDType(width, false))
	}
	return b.Arena.Add(n)
}

// Cond adds a conditional with an explicit result width.
func (b *Builder) Cond(width int, pred, then, els expr.Ref) expr.Ref {
	n := expr.NewCond(expr.OpCond, b.loc(), pred, then, els)
	n.SetDType(expr.LogicDType(width, false))
	return b.Arena.Add(n)
}

// Sel adds a constant-index part select.
func (b *Builder) Sel(width int, from expr.Ref, lsb int) expr.Ref {
	n := expr.NewSel(b.loc(), from,
		b.ConstU(32, uint64(lsb)), b.ConstU(32, uint64(width)))
	n.SetDType(expr.BitSizedDType(width))
	return b.Arena.Add(n)
}

// Rand adds an unseeded $random/$urandom draw.
func (b *Builder) Rand(urandom bool) expr.Ref {
	n := expr.NewRand(b.loc(), expr.NilRef, urandom)
	n.SetDType(expr.UInt32DType())
	return b.Arena.Add(n)
}
