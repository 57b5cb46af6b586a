package lower

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/jmerdich/verilator/internal/expr"
)

// Unit is one loaded unit file: an arena holding every tree plus the
// named roots. Order lists the root names sorted, so walking a unit is
// deterministic regardless of how CUE iterated the source.
type Unit struct {
	Name  string
	Arena *expr.Arena
	Roots map[string]expr.Ref
	Order []string
}

// Root returns the named root, or NilRef when the unit has no such
// expression.
func (u *Unit) Root(name string) expr.Ref {
	return u.Roots[name]
}

// DumpString renders every root in order, each under a "name:" header.
// The dump command and golden tests both print this form.
func (u *Unit) DumpString() string {
	var sb strings.Builder
	for _, name := range u.Order {
		sb.WriteString(name)
		sb.WriteString(":\n")
		sb.WriteString(expr.DumpString(u.Arena, u.Roots[name]))
	}
	return sb.String()
}

// LoadError is a unit-file problem, carrying the CUE position when one
// is available.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants, shared with the CLI's diagnostics output.
const (
	ErrCodeRead       = "L001" // file read error
	ErrCodeCUE        = "L002" // CUE compile or evaluation error
	ErrCodeNoUnit     = "L003" // missing or non-string unit name
	ErrCodeNoExprs    = "L004" // unit declares no expressions
	ErrCodeBadVar     = "L005" // malformed variable declaration
	ErrCodeBadNode    = "L006" // malformed expression node
	ErrCodeUnknownOp  = "L007" // operator name not in the catalog
	ErrCodeArity      = "L008" // operand count does not fit the operator
	ErrCodeLiteral    = "L009" // unparsable constant literal
	ErrCodeUnknownRef = "L010" // reference to an undeclared variable or root
	ErrCodeCycle      = "L011" // expression roots use each other cyclically
	ErrCodeShape      = "L012" // operator carries state a unit file cannot express
)

// LoadFile reads and builds a single unit file.
func LoadFile(path string) (*Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("reading unit file: %v", err)}
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	return Build(v)
}

// LoadString builds a unit from CUE source held in memory. Positions in
// errors carry no file name.
func LoadString(src string) (*Unit, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	return Build(v)
}

// Build turns an evaluated CUE value into a Unit.
func Build(v cue.Value) (*Unit, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	nameVal := v.LookupPath(cue.ParsePath("unit"))
	if !nameVal.Exists() {
		return nil, &LoadError{Code: ErrCodeNoUnit, Message: "unit name is required", Pos: v.Pos()}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}

	b := &builder{
		unit: &Unit{
			Name:  name,
			Arena: expr.NewArena(name),
			Roots: make(map[string]expr.Ref),
		},
		vars:     make(map[string]expr.VarID),
		rootVals: make(map[string]cue.Value),
		building: make(map[string]bool),
	}

	if err := b.declareVars(v.LookupPath(cue.ParsePath("var"))); err != nil {
		return nil, err
	}
	if err := b.collectRoots(v.LookupPath(cue.ParsePath("expr"))); err != nil {
		return nil, err
	}
	if len(b.rootVals) == 0 {
		return nil, &LoadError{Code: ErrCodeNoExprs, Message: "unit declares no expressions", Pos: v.Pos()}
	}

	for _, rootName := range b.unit.Order {
		if _, err := b.buildRoot(rootName); err != nil {
			return nil, err
		}
	}
	return b.unit, nil
}

// builder carries the load in progress. Roots build on demand so a
// {use: ...} edge can reach a root declared anywhere in the file;
// building tracks in-progress roots to reject cycles.
type builder struct {
	unit     *Unit
	vars     map[string]expr.VarID
	rootVals map[string]cue.Value
	building map[string]bool
}

func (b *builder) declareVars(v cue.Value) error {
	if !v.Exists() {
		return nil
	}
	iter, err := v.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		dtype, err := varDType(iter.Value())
		if err != nil {
			return err
		}
		name := iter.Label()
		b.vars[name] = b.unit.Arena.AddVar(expr.Var{Name: name, DType: dtype})
	}
	return nil
}

func varDType(v cue.Value) (expr.DType, error) {
	if fv := v.LookupPath(cue.ParsePath("flavor")); fv.Exists() {
		s, err := fv.String()
		if err != nil {
			return expr.DType{}, formatCUEError(err)
		}
		switch s {
		case "real":
			return expr.DoubleDType(), nil
		case "string":
			return expr.StringDType(), nil
		default:
			return expr.DType{}, &LoadError{Code: ErrCodeBadVar,
				Message: fmt.Sprintf("flavor must be real or string, got %q", s), Pos: fv.Pos()}
		}
	}
	wv := v.LookupPath(cue.ParsePath("width"))
	if !wv.Exists() {
		return expr.DType{}, &LoadError{Code: ErrCodeBadVar, Message: "variable needs a width or a flavor", Pos: v.Pos()}
	}
	w, err := wv.Int64()
	if err != nil {
		return expr.DType{}, formatCUEError(err)
	}
	if w <= 0 {
		return expr.DType{}, &LoadError{Code: ErrCodeBadVar,
			Message: fmt.Sprintf("width must be positive, got %d", w), Pos: wv.Pos()}
	}
	signed, err := boolField(v, "signed")
	if err != nil {
		return expr.DType{}, err
	}
	return expr.LogicDType(int(w), signed), nil
}

func (b *builder) collectRoots(v cue.Value) error {
	if !v.Exists() {
		return nil
	}
	iter, err := v.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		name := iter.Label()
		b.rootVals[name] = iter.Value()
		b.unit.Order = append(b.unit.Order, name)
	}
	sort.Strings(b.unit.Order)
	return nil
}

// buildRoot compiles the named root once, memoizing the result so later
// uses share the subtree.
func (b *builder) buildRoot(name string) (expr.Ref, error) {
	if ref, ok := b.unit.Roots[name]; ok {
		return ref, nil
	}
	v, ok := b.rootVals[name]
	if !ok {
		return expr.NilRef, &LoadError{Code: ErrCodeUnknownRef,
			Message: fmt.Sprintf("expression %q is not declared", name)}
	}
	if b.building[name] {
		return expr.NilRef, &LoadError{Code: ErrCodeCycle,
			Message: fmt.Sprintf("expression %q depends on itself", name), Pos: v.Pos()}
	}
	b.building[name] = true
	ref, err := b.compileNode(v)
	delete(b.building, name)
	if err != nil {
		return expr.NilRef, err
	}
	b.unit.Roots[name] = ref
	return ref, nil
}

// boolField reads an optional bool field, defaulting to false.
func boolField(v cue.Value, field string) (bool, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return false, nil
	}
	val, err := fv.Bool()
	if err != nil {
		return false, formatCUEError(err)
	}
	return val, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		return &LoadError{Code: ErrCodeCUE, Message: first.Error(), Pos: positions[0]}
	}
	return &LoadError{Code: ErrCodeCUE, Message: first.Error()}
}
