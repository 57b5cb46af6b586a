package lower

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/jmerdich/verilator/internal/expr"
	"github.com/jmerdich/verilator/internal/num"
)

// compileNode builds one expression node from its CUE value. A node is
// one of four forms: {const: ...}, {ref: ...}, {use: ...} or {op: ...}.
func (b *builder) compileNode(v cue.Value) (expr.Ref, error) {
	if err := v.Err(); err != nil {
		return expr.NilRef, formatCUEError(err)
	}
	if cv := v.LookupPath(cue.ParsePath("const")); cv.Exists() {
		return b.compileConst(cv)
	}
	if rv := v.LookupPath(cue.ParsePath("ref")); rv.Exists() {
		return b.compileRef(v, rv)
	}
	if uv := v.LookupPath(cue.ParsePath("use")); uv.Exists() {
		return b.compileUse(uv)
	}
	if ov := v.LookupPath(cue.ParsePath("op")); ov.Exists() {
		return b.compileOp(v, ov)
	}
	return expr.NilRef, &LoadError{Code: ErrCodeBadNode,
		Message: "node needs one of const, ref, use or op", Pos: v.Pos()}
}

func (b *builder) compileConst(cv cue.Value) (expr.Ref, error) {
	text, err := cv.String()
	if err != nil {
		return expr.NilRef, formatCUEError(err)
	}
	val, err := num.Parse(text)
	if err != nil {
		return expr.NilRef, &LoadError{Code: ErrCodeLiteral, Message: err.Error(), Pos: cv.Pos()}
	}
	return b.unit.Arena.Add(expr.NewConst(locOf(cv), val)), nil
}

func (b *builder) compileRef(v, rv cue.Value) (expr.Ref, error) {
	name, err := rv.String()
	if err != nil {
		return expr.NilRef, formatCUEError(err)
	}
	id, ok := b.vars[name]
	if !ok {
		return expr.NilRef, &LoadError{Code: ErrCodeUnknownRef,
			Message: fmt.Sprintf("variable %q is not declared", name), Pos: rv.Pos()}
	}
	access := expr.AccessRead
	if av := v.LookupPath(cue.ParsePath("access")); av.Exists() {
		s, err := av.String()
		if err != nil {
			return expr.NilRef, formatCUEError(err)
		}
		switch s {
		case "read":
		case "write":
			access = expr.AccessWrite
		case "rw":
			access = expr.AccessReadWrite
		default:
			return expr.NilRef, &LoadError{Code: ErrCodeBadNode,
				Message: fmt.Sprintf("access must be read, write or rw, got %q", s), Pos: av.Pos()}
		}
	}
	ref := expr.NewVarRef(locOf(v), name, access)
	ref.Var = id
	ref.SetDType(b.unit.Arena.Var(id).DType)
	return b.unit.Arena.Add(ref), nil
}

func (b *builder) compileUse(uv cue.Value) (expr.Ref, error) {
	name, err := uv.String()
	if err != nil {
		return expr.NilRef, formatCUEError(err)
	}
	if _, ok := b.rootVals[name]; !ok {
		return expr.NilRef, &LoadError{Code: ErrCodeUnknownRef,
			Message: fmt.Sprintf("expression %q is not declared", name), Pos: uv.Pos()}
	}
	return b.buildRoot(name)
}

func (b *builder) compileOp(v, ov cue.Value) (expr.Ref, error) {
	name, err := ov.String()
	if err != nil {
		return expr.NilRef, formatCUEError(err)
	}
	op := expr.OpByName(name)
	if op == expr.OpInvalid {
		return expr.NilRef, &LoadError{Code: ErrCodeUnknownOp,
			Message: fmt.Sprintf("unknown operator %q", name), Pos: ov.Pos()}
	}
	args, err := b.compileArgs(v)
	if err != nil {
		return expr.NilRef, err
	}

	loc := locOf(v)
	info := expr.Info(op)
	var n expr.Node
	switch info.Shape {
	case expr.ShapeLeaf:
		if err := needArgs(v, op, args, 0); err != nil {
			return expr.NilRef, err
		}
		n = expr.NewLeaf(op, loc)
	case expr.ShapeUnary:
		if err := needArgs(v, op, args, 1); err != nil {
			return expr.NilRef, err
		}
		n = expr.NewUnop(op, loc, args[0])
	case expr.ShapeBinary:
		if err := needArgs(v, op, args, 2); err != nil {
			return expr.NilRef, err
		}
		n = expr.NewBinop(op, loc, args[0], args[1])
	case expr.ShapeTernary:
		if err := needArgs(v, op, args, 3); err != nil {
			return expr.NilRef, err
		}
		n = expr.NewTriop(op, loc, args[0], args[1], args[2])
	case expr.ShapeQuad:
		if err := needArgs(v, op, args, 4); err != nil {
			return expr.NilRef, err
		}
		n = expr.NewQuadop(op, loc, args[0], args[1], args[2], args[3])
	case expr.ShapeCond:
		if err := needArgs(v, op, args, 3); err != nil {
			return expr.NilRef, err
		}
		n = expr.NewCond(op, loc, args[0], args[1], args[2])
	case expr.ShapeSel:
		if err := needArgs(v, op, args, 3); err != nil {
			return expr.NilRef, err
		}
		n = expr.NewSel(loc, args[0], args[1], args[2])
	case expr.ShapeRand:
		n, err = b.compileRand(v, args, loc)
	case expr.ShapeCCast:
		n, err = b.compileCCast(v, op, args, loc)
	case expr.ShapeAtoN:
		n, err = b.compileAtoN(v, op, args, loc)
	case expr.ShapeCompareNN:
		n, err = b.compileCompareNN(v, op, args, loc)
	case expr.ShapeLogOr:
		n, err = b.compileLogOr(v, op, args, loc)
	case expr.ShapeTime:
		n, err = b.compileTime(v, op, args, loc)
	case expr.ShapeMemberSel:
		n, err = b.compileMemberSel(v, op, args, loc)
	case expr.ShapeScopeName:
		if err := needArgs(v, op, args, 0); err != nil {
			return expr.NilRef, err
		}
		forFormat, ferr := boolField(v, "forFormat")
		if ferr != nil {
			return expr.NilRef, ferr
		}
		n = expr.NewScopeName(loc, forFormat)
	case expr.ShapeUCFunc:
		n = expr.NewUCFunc(loc, args)
	case expr.ShapeInside:
		if len(args) < 1 {
			return expr.NilRef, &LoadError{Code: ErrCodeArity,
				Message: fmt.Sprintf("%s needs an expression and at least one item", op), Pos: v.Pos()}
		}
		n = expr.NewInside(loc, args[0], args[1:])
	case expr.ShapePattern:
		n = expr.NewPattern(loc, args)
	case expr.ShapeCMath:
		text, terr := stringField(v, "text")
		if terr != nil {
			return expr.NilRef, terr
		}
		if text == "" {
			return expr.NilRef, &LoadError{Code: ErrCodeBadNode,
				Message: fmt.Sprintf("%s needs a text field", op), Pos: v.Pos()}
		}
		n = expr.NewCMath(loc, text, args)
	case expr.ShapeConsAssoc:
		if err := needArgs(v, op, args, 1); err != nil {
			return expr.NilRef, err
		}
		n = expr.NewConsAssoc(op, loc, args[0])
	case expr.ShapeConsDyn:
		if err := needArgs(v, op, args, 2); err != nil {
			return expr.NilRef, err
		}
		n = expr.NewConsDyn(op, loc, args[0], args[1])
	case expr.ShapeConst:
		return expr.NilRef, &LoadError{Code: ErrCodeBadNode,
			Message: "write constants with the const form", Pos: v.Pos()}
	case expr.ShapeVarRef:
		return expr.NilRef, &LoadError{Code: ErrCodeBadNode,
			Message: "write variable references with the ref form", Pos: v.Pos()}
	default:
		return expr.NilRef, &LoadError{Code: ErrCodeShape,
			Message: fmt.Sprintf("%s carries state a unit file cannot express", op), Pos: v.Pos()}
	}
	if err != nil {
		return expr.NilRef, err
	}

	if err := b.applyDType(v, n); err != nil {
		return expr.NilRef, err
	}
	return b.unit.Arena.Add(n), nil
}

func (b *builder) compileArgs(v cue.Value) ([]expr.Ref, error) {
	av := v.LookupPath(cue.ParsePath("args"))
	if !av.Exists() {
		return nil, nil
	}
	iter, err := av.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var args []expr.Ref
	for iter.Next() {
		ref, err := b.compileNode(iter.Value())
		if err != nil {
			return nil, err
		}
		args = append(args, ref)
	}
	return args, nil
}

func (b *builder) compileRand(v cue.Value, args []expr.Ref, loc expr.Loc) (expr.Node, error) {
	reset, err := boolField(v, "reset")
	if err != nil {
		return nil, err
	}
	if reset {
		if len(args) != 0 {
			return nil, &LoadError{Code: ErrCodeArity,
				Message: "reset randomization takes no operands", Pos: v.Pos()}
		}
		w, err := intField(v, "width")
		if err != nil {
			return nil, err
		}
		if w <= 0 {
			return nil, &LoadError{Code: ErrCodeBadNode,
				Message: "reset randomization needs a width", Pos: v.Pos()}
		}
		return expr.NewRandReset(loc, expr.BitSizedDType(int(w))), nil
	}
	urandom, err := boolField(v, "urandom")
	if err != nil {
		return nil, err
	}
	seed := expr.NilRef
	switch len(args) {
	case 0:
	case 1:
		seed = args[0]
	default:
		return nil, &LoadError{Code: ErrCodeArity,
			Message: fmt.Sprintf("Rand takes at most one seed operand, got %d", len(args)), Pos: v.Pos()}
	}
	return expr.NewRand(loc, seed, urandom), nil
}

func (b *builder) compileCCast(v cue.Value, op expr.Op, args []expr.Ref, loc expr.Loc) (expr.Node, error) {
	if err := needArgs(v, op, args, 1); err != nil {
		return nil, err
	}
	size, err := intField(v, "size")
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, &LoadError{Code: ErrCodeBadNode,
			Message: fmt.Sprintf("%s needs a positive size field", op), Pos: v.Pos()}
	}
	return expr.NewCCast(loc, args[0], int(size)), nil
}

func (b *builder) compileAtoN(v cue.Value, op expr.Op, args []expr.Ref, loc expr.Loc) (expr.Node, error) {
	if err := needArgs(v, op, args, 1); err != nil {
		return nil, err
	}
	s, err := stringField(v, "fmt")
	if err != nil {
		return nil, err
	}
	var f expr.AtoFmt
	switch s {
	case "bin":
		f = expr.AtoFmtBin
	case "oct":
		f = expr.AtoFmtOct
	case "dec":
		f = expr.AtoFmtDec
	case "hex":
		f = expr.AtoFmtHex
	case "real":
		f = expr.AtoFmtReal
	default:
		return nil, &LoadError{Code: ErrCodeBadNode,
			Message: fmt.Sprintf("fmt must be bin, oct, dec, hex or real, got %q", s), Pos: v.Pos()}
	}
	return expr.NewAtoN(loc, args[0], f), nil
}

func (b *builder) compileCompareNN(v cue.Value, op expr.Op, args []expr.Ref, loc expr.Loc) (expr.Node, error) {
	if err := needArgs(v, op, args, 2); err != nil {
		return nil, err
	}
	ignoreCase, err := boolField(v, "ignoreCase")
	if err != nil {
		return nil, err
	}
	return expr.NewCompareNN(loc, args[0], args[1], ignoreCase), nil
}

func (b *builder) compileLogOr(v cue.Value, op expr.Op, args []expr.Ref, loc expr.Loc) (expr.Node, error) {
	if err := needArgs(v, op, args, 2); err != nil {
		return nil, err
	}
	sideEffect, err := boolField(v, "sideEffect")
	if err != nil {
		return nil, err
	}
	n := expr.NewLogOr(loc, args[0], args[1])
	n.SideEffect = sideEffect
	return n, nil
}

func (b *builder) compileTime(v cue.Value, op expr.Op, args []expr.Ref, loc expr.Loc) (expr.Node, error) {
	if err := needArgs(v, op, args, 0); err != nil {
		return nil, err
	}
	unit := expr.NoTimescale
	if s, err := stringField(v, "timeunit"); err != nil {
		return nil, err
	} else if s != "" {
		unit = expr.ParseTimescale(s)
		if unit == expr.NoTimescale {
			return nil, &LoadError{Code: ErrCodeBadNode,
				Message: fmt.Sprintf("unknown timeunit %q", s), Pos: v.Pos()}
		}
	}
	return expr.NewTime(op, loc, unit), nil
}

func (b *builder) compileMemberSel(v cue.Value, op expr.Op, args []expr.Ref, loc expr.Loc) (expr.Node, error) {
	if err := needArgs(v, op, args, 1); err != nil {
		return nil, err
	}
	member, err := stringField(v, "member")
	if err != nil {
		return nil, err
	}
	if member == "" {
		return nil, &LoadError{Code: ErrCodeBadNode,
			Message: fmt.Sprintf("%s needs a member field", op), Pos: v.Pos()}
	}
	return expr.NewMemberSel(loc, args[0], member), nil
}

// applyDType overrides the node's self-selected dtype with an explicit
// width, or inherits the first operand's dtype for kinds whose result
// type follows their input.
func (b *builder) applyDType(v cue.Value, n expr.Node) error {
	w, err := intField(v, "width")
	if err != nil {
		return err
	}
	if w > 0 {
		signed, err := boolField(v, "signed")
		if err != nil {
			return err
		}
		n.SetDType(expr.LogicDType(int(w), signed))
		return nil
	}
	// Fixed rules (bit, signed-32, double, ...) were already resolved
	// at construction; only the follows-lhs rule needs the operand.
	if expr.Info(n.Op()).DType == expr.DTFromLhs {
		if children := n.Children(); len(children) > 0 && children[0] != expr.NilRef {
			n.SetDType(b.unit.Arena.Node(children[0]).DType())
		}
	}
	return nil
}

func needArgs(v cue.Value, op expr.Op, args []expr.Ref, want int) error {
	if len(args) != want {
		return &LoadError{Code: ErrCodeArity,
			Message: fmt.Sprintf("%s takes %d operands, got %d", op, want, len(args)), Pos: v.Pos()}
	}
	return nil
}

// stringField reads an optional string field, defaulting to "".
func stringField(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

// intField reads an optional integer field, defaulting to 0.
func intField(v cue.Value, field string) (int64, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return 0, nil
	}
	n, err := fv.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return n, nil
}

func locOf(v cue.Value) expr.Loc {
	pos := v.Pos()
	if !pos.IsValid() {
		return expr.Loc{}
	}
	return expr.Loc{File: pos.Filename(), Line: pos.Line(), Col: pos.Column()}
}
