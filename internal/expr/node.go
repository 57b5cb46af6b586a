package expr

import (
	"fmt"

	"github.com/jmerdich/verilator/internal/num"
)

// Node is the sealed interface over every expression node. Concrete
// implementations live in this package only; the op tag, not the Go
// type, identifies the operator. Children are arena Refs in slot order,
// with NilRef marking an absent optional slot.
type Node interface {
	Op() Op
	Loc() Loc
	DType() DType
	SetDType(DType)
	Children() []Ref

	exprNode()
}

// meta carries the fields every node has. Embedding it implements the
// sealed marker.
type meta struct {
	op    Op
	loc   Loc
	dtype DType
}

func (m *meta) Op() Op           { return m.op }
func (m *meta) Loc() Loc         { return m.loc }
func (m *meta) DType() DType     { return m.dtype }
func (m *meta) SetDType(t DType) { m.dtype = t }
func (*meta) exprNode()          {}

func newMeta(op Op, loc Loc) meta {
	return meta{op: op, loc: loc, dtype: selfDType(op)}
}

func mustShape(op Op, want Shape) {
	if !op.Valid() {
		panic(fmt.Sprintf("expr: invalid op %d", uint16(op)))
	}
	if got := opTab[op].Shape; got != want {
		panic(fmt.Sprintf("expr: op %s built with wrong node shape", op))
	}
}

// Leaf is the shape for kinds with no children and no per-node state.
type Leaf struct{ meta }

func NewLeaf(op Op, loc Loc) *Leaf {
	mustShape(op, ShapeLeaf)
	return &Leaf{meta: newMeta(op, loc)}
}

func (*Leaf) Children() []Ref { return nil }

// Unop holds any single-operand kind.
type Unop struct {
	meta
	Lhs Ref
}

func NewUnop(op Op, loc Loc, lhs Ref) *Unop {
	mustShape(op, ShapeUnary)
	return &Unop{meta: newMeta(op, loc), Lhs: lhs}
}

func (n *Unop) Children() []Ref { return []Ref{n.Lhs} }

// Binop holds any two-operand kind without extra state.
type Binop struct {
	meta
	Lhs, Rhs Ref
}

func NewBinop(op Op, loc Loc, lhs, rhs Ref) *Binop {
	mustShape(op, ShapeBinary)
	return &Binop{meta: newMeta(op, loc), Lhs: lhs, Rhs: rhs}
}

func (n *Binop) Children() []Ref { return []Ref{n.Lhs, n.Rhs} }

// Triop holds any three-operand kind without extra state. Optional
// slots (catalog-dependent) hold NilRef.
type Triop struct {
	meta
	Lhs, Rhs, Ths Ref
}

func NewTriop(op Op, loc Loc, lhs, rhs, ths Ref) *Triop {
	mustShape(op, ShapeTernary)
	return &Triop{meta: newMeta(op, loc), Lhs: lhs, Rhs: rhs, Ths: ths}
}

func (n *Triop) Children() []Ref { return []Ref{n.Lhs, n.Rhs, n.Ths} }

// Quadop holds the four-operand kinds.
type Quadop struct {
	meta
	Lhs, Rhs, Ths, Fhs Ref
}

func NewQuadop(op Op, loc Loc, lhs, rhs, ths, fhs Ref) *Quadop {
	mustShape(op, ShapeQuad)
	return &Quadop{meta: newMeta(op, loc), Lhs: lhs, Rhs: rhs, Ths: ths, Fhs: fhs}
}

func (n *Quadop) Children() []Ref { return []Ref{n.Lhs, n.Rhs, n.Ths, n.Fhs} }

// Cond is the ternary conditional. OpCondBound shares the shape; it is
// the variant guarded against unbounded operands.
type Cond struct {
	meta
	Pred, Then, Else Ref
}

func NewCond(op Op, loc Loc, pred, then, els Ref) *Cond {
	mustShape(op, ShapeCond)
	return &Cond{meta: newMeta(op, loc), Pred: pred, Then: then, Else: els}
}

func (n *Cond) Children() []Ref { return []Ref{n.Pred, n.Then, n.Else} }

// Sel extracts a bit range: From[Lsb +: Width]. DeclRange and
// DeclElWidth carry the declared range of the source when it was an
// array, for diagnostics and slice lowering.
type Sel struct {
	meta
	From, Lsb, Width Ref
	DeclRange        Range
	DeclElWidth      int
}

func NewSel(loc Loc, from, lsb, width Ref) *Sel {
	return &Sel{meta: newMeta(OpSel, loc), From: from, Lsb: lsb, Width: width, DeclElWidth: 1}
}

func (n *Sel) Children() []Ref { return []Ref{n.From, n.Lsb, n.Width} }

// SliceSel extracts a run of array elements. Lo and Elems are constant
// children derived from the declared range at creation.
type SliceSel struct {
	meta
	From, Lo, Elems Ref
	DeclRange       Range
}

func NewSliceSel(loc Loc, from, lo, elems Ref, declRange Range) *SliceSel {
	return &SliceSel{meta: newMeta(OpSliceSel, loc), From: from, Lo: lo, Elems: elems, DeclRange: declRange}
}

func (n *SliceSel) Children() []Ref { return []Ref{n.From, n.Lo, n.Elems} }

// Const is a literal value.
type Const struct {
	meta
	Num *num.Num
}

func NewConst(loc Loc, v *num.Num) *Const {
	n := &Const{meta: newMeta(OpConst, loc), Num: v}
	n.dtype = constDType(v)
	return n
}

func (*Const) Children() []Ref { return nil }

func constDType(v *num.Num) DType {
	switch {
	case v.IsDouble():
		return DoubleDType()
	case v.IsString():
		return StringDType()
	case v.IsNull():
		return BitDType()
	}
	t := DType{Width: v.Width(), Signed: v.Signed()}
	if !v.Sized() {
		t.WidthMin = v.WidthMin()
	}
	return t
}

// VarRef is a reference to a variable in the current scope. Var and
// Scope are zero until binding resolves them.
type VarRef struct {
	meta
	Name        string
	Access      Access
	Var         VarID
	Scope       ScopeID
	Pkg         PkgID
	SelfPointer string
}

func NewVarRef(loc Loc, name string, access Access) *VarRef {
	return &VarRef{meta: newMeta(OpVarRef, loc), Name: name, Access: access}
}

func (*VarRef) Children() []Ref { return nil }

// VarXRef is a cross-hierarchy variable reference: the name is looked
// up under the Dotted scope path rather than the current scope.
type VarXRef struct {
	meta
	Name        string
	Dotted      string
	InlinedDots string
	Access      Access
	Var         VarID
	SelfPointer string
}

func NewVarXRef(loc Loc, name, dotted string, access Access) *VarXRef {
	return &VarXRef{meta: newMeta(OpVarXRef, loc), Name: name, Dotted: dotted, Access: access}
}

func (*VarXRef) Children() []Ref { return nil }

// MemberSel selects a named member of a class or struct value.
type MemberSel struct {
	meta
	From Ref
	Name string
	Var  VarID
}

func NewMemberSel(loc Loc, from Ref, name string) *MemberSel {
	return &MemberSel{meta: newMeta(OpMemberSel, loc), From: from, Name: name}
}

func (n *MemberSel) Children() []Ref { return []Ref{n.From} }

// EnumItemRef refers to one item of an enum declaration.
type EnumItemRef struct {
	meta
	Item ItemID
	Pkg  PkgID
}

func NewEnumItemRef(loc Loc, item ItemID) *EnumItemRef {
	return &EnumItemRef{meta: newMeta(OpEnumItemRef, loc), Item: item}
}

func (*EnumItemRef) Children() []Ref { return nil }

// LambdaArgRef refers to the value or index argument of an enclosing
// array-method lambda.
type LambdaArgRef struct {
	meta
	Name  string
	Index bool
}

func NewLambdaArgRef(loc Loc, name string, index bool) *LambdaArgRef {
	return &LambdaArgRef{meta: newMeta(OpLambdaArgRef, loc), Name: name, Index: index}
}

func (*LambdaArgRef) Children() []Ref { return nil }

// ScopeName evaluates to the formatted name of the enclosing scope.
type ScopeName struct {
	meta
	DPIExport bool
	ForFormat bool
	Attrs     []string
	Entries   []string
}

func NewScopeName(loc Loc, forFormat bool) *ScopeName {
	return &ScopeName{meta: newMeta(OpScopeName, loc), ForFormat: forFormat}
}

func (*ScopeName) Children() []Ref { return nil }

// Time reads the current simulation time, scaled to Timeunit. OpTimeD
// shares the shape for the real-valued variant.
type Time struct {
	meta
	Timeunit Timescale
}

func NewTime(op Op, loc Loc, unit Timescale) *Time {
	mustShape(op, ShapeTime)
	return &Time{meta: newMeta(op, loc), Timeunit: unit}
}

func (*Time) Children() []Ref { return nil }

// TimeImport rescales a time value from the Timeunit of its origin
// into the consuming unit.
type TimeImport struct {
	meta
	Lhs      Ref
	Timeunit Timescale
}

func NewTimeImport(loc Loc, lhs Ref, unit Timescale) *TimeImport {
	return &TimeImport{meta: newMeta(OpTimeImport, loc), Lhs: lhs, Timeunit: unit}
}

func (n *TimeImport) Children() []Ref { return []Ref{n.Lhs} }

// Rand is $random/$urandom, optionally seeded. Reset selects the
// deterministic reset-randomization variant.
type Rand struct {
	meta
	Seed    Ref
	Urandom bool
	Reset   bool
}

func NewRand(loc Loc, seed Ref, urandom bool) *Rand {
	return &Rand{meta: newMeta(OpRand, loc), Seed: seed, Urandom: urandom}
}

func NewRandReset(loc Loc, dtype DType) *Rand {
	n := &Rand{meta: newMeta(OpRand, loc), Reset: true}
	n.dtype = dtype
	return n
}

func (n *Rand) Children() []Ref { return []Ref{n.Seed} }

// AddrOfCFunc takes the address of a generated C function.
type AddrOfCFunc struct {
	meta
	Func FuncID
}

func NewAddrOfCFunc(loc Loc, fn FuncID) *AddrOfCFunc {
	return &AddrOfCFunc{meta: newMeta(OpAddrOfCFunc, loc), Func: fn}
}

func (*AddrOfCFunc) Children() []Ref { return nil }

// CCast is a C-style width cast emitted directly into generated code.
type CCast struct {
	meta
	Lhs  Ref
	Size int
}

func NewCCast(loc Loc, lhs Ref, size int) *CCast {
	return &CCast{meta: newMeta(OpCCast, loc), Lhs: lhs, Size: size}
}

func (n *CCast) Children() []Ref { return []Ref{n.Lhs} }

// AtoN converts string contents to a number per Fmt.
type AtoN struct {
	meta
	Lhs Ref
	Fmt AtoFmt
}

func NewAtoN(loc Loc, lhs Ref, fmt AtoFmt) *AtoN {
	n := &AtoN{meta: newMeta(OpAtoN, loc), Lhs: lhs, Fmt: fmt}
	if fmt == AtoFmtReal {
		n.dtype = DoubleDType()
	} else {
		n.dtype = Signed32DType()
	}
	return n
}

func (n *AtoN) Children() []Ref { return []Ref{n.Lhs} }

// CompareNN is string compare/icompare returning the usual three-way
// integer.
type CompareNN struct {
	meta
	Lhs, Rhs   Ref
	IgnoreCase bool
}

func NewCompareNN(loc Loc, lhs, rhs Ref, ignoreCase bool) *CompareNN {
	return &CompareNN{meta: newMeta(OpCompareNN, loc), Lhs: lhs, Rhs: rhs, IgnoreCase: ignoreCase}
}

func (n *CompareNN) Children() []Ref { return []Ref{n.Lhs, n.Rhs} }

// LogOr is logical or. SideEffect marks trees that rely on
// short-circuit evaluation for correctness; those are not pure.
type LogOr struct {
	meta
	Lhs, Rhs   Ref
	SideEffect bool
}

func NewLogOr(loc Loc, lhs, rhs Ref) *LogOr {
	return &LogOr{meta: newMeta(OpLogOr, loc), Lhs: lhs, Rhs: rhs}
}

func (n *LogOr) Children() []Ref { return []Ref{n.Lhs, n.Rhs} }

// CMath is an opaque C expression pasted into output. Clean and Pure
// are declared by the creator, not derived.
type CMath struct {
	meta
	Text  string
	Exprs []Ref
	Clean bool
	Pure  bool
}

func NewCMath(loc Loc, text string, exprs []Ref) *CMath {
	return &CMath{meta: newMeta(OpCMath, loc), Text: text, Exprs: exprs, Clean: true}
}

func (n *CMath) Children() []Ref { return append([]Ref(nil), n.Exprs...) }

// UCFunc is a $c(...) user call whose pieces are ordered text and
// expression children.
type UCFunc struct {
	meta
	Exprs []Ref
}

func NewUCFunc(loc Loc, exprs []Ref) *UCFunc {
	return &UCFunc{meta: newMeta(OpUCFunc, loc), Exprs: exprs}
}

func (n *UCFunc) Children() []Ref { return append([]Ref(nil), n.Exprs...) }

// ScanF is $fscanf/$sscanf: a format, output targets, and the source
// (file handle or string).
type ScanF struct {
	meta
	Text  string
	Exprs []Ref
	Src   Ref
}

func NewScanF(op Op, loc Loc, text string, exprs []Ref, src Ref) *ScanF {
	mustShape(op, ShapeScanF)
	return &ScanF{meta: newMeta(op, loc), Text: text, Exprs: exprs, Src: src}
}

func (n *ScanF) Children() []Ref {
	return append(append([]Ref(nil), n.Exprs...), n.Src)
}

// Inside is the set-membership test: Expr inside {Items...}.
type Inside struct {
	meta
	Expr  Ref
	Items []Ref
}

func NewInside(loc Loc, expr Ref, items []Ref) *Inside {
	return &Inside{meta: newMeta(OpInside, loc), Expr: expr, Items: items}
}

func (n *Inside) Children() []Ref {
	return append([]Ref{n.Expr}, n.Items...)
}

// Pattern is an assignment pattern '{...} before lowering.
type Pattern struct {
	meta
	Items []Ref
}

func NewPattern(loc Loc, items []Ref) *Pattern {
	return &Pattern{meta: newMeta(OpPattern, loc), Items: items}
}

func (n *Pattern) Children() []Ref { return append([]Ref(nil), n.Items...) }

// PatMember is one entry of a Pattern: values, an optional key, and an
// optional replication count. Default marks the `default:` entry.
type PatMember struct {
	meta
	Lhss    []Ref
	Key     Ref
	Rep     Ref
	Default bool
}

func NewPatMember(loc Loc, lhss []Ref, key, rep Ref) *PatMember {
	return &PatMember{meta: newMeta(OpPatMember, loc), Lhss: lhss, Key: key, Rep: rep}
}

func (n *PatMember) Children() []Ref {
	return append(append([]Ref(nil), n.Lhss...), n.Key, n.Rep)
}

// ExprStmt runs statements for their effects, then yields Result.
type ExprStmt struct {
	meta
	Stmts  []Ref
	Result Ref
}

func NewExprStmt(loc Loc, stmts []Ref, result Ref) *ExprStmt {
	return &ExprStmt{meta: newMeta(OpExprStmt, loc), Stmts: stmts, Result: result}
}

func (n *ExprStmt) Children() []Ref {
	return append(append([]Ref(nil), n.Stmts...), n.Result)
}

// ConsAssoc constructs an associative-array value with an optional
// default. OpConsWildcard shares the shape.
type ConsAssoc struct {
	meta
	Default Ref
}

func NewConsAssoc(op Op, loc Loc, deflt Ref) *ConsAssoc {
	mustShape(op, ShapeConsAssoc)
	return &ConsAssoc{meta: newMeta(op, loc), Default: deflt}
}

func (n *ConsAssoc) Children() []Ref { return []Ref{n.Default} }

// ConsDyn constructs a dynamic array or queue from up to two parts,
// either of which may be absent. OpConsDynArray and OpConsQueue share
// the shape.
type ConsDyn struct {
	meta
	Lhs, Rhs Ref
}

func NewConsDyn(op Op, loc Loc, lhs, rhs Ref) *ConsDyn {
	mustShape(op, ShapeConsDyn)
	return &ConsDyn{meta: newMeta(op, loc), Lhs: lhs, Rhs: rhs}
}

func (n *ConsDyn) Children() []Ref { return []Ref{n.Lhs, n.Rhs} }

// GatePin adapts an expression connected to a primitive gate pin,
// remembering the pin's declared range.
type GatePin struct {
	meta
	Expr     Ref
	PinRange Range
}

func NewGatePin(loc Loc, expr Ref, pinRange Range) *GatePin {
	return &GatePin{meta: newMeta(OpGatePin, loc), Expr: expr, PinRange: pinRange}
}

func (n *GatePin) Children() []Ref { return []Ref{n.Expr} }
