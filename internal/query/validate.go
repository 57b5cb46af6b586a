package query

import (
	"fmt"
	"strings"

	"github.com/jmerdich/verilator/internal/expr"
)

// ValidationError lists everything wrong with a query. Backends run
// Validate before compiling, so compile code may assume a valid tree.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid query: " + strings.Join(e.Problems, "; ")
}

// Validate checks a query structurally: known kind and family names,
// known flavors, sane width bounds and limits, no nil nodes. It returns
// nil for a valid query and a *ValidationError listing every problem
// otherwise.
//
// Validate is a pure function with no side effects.
func Validate(q Query) error {
	v := &validator{}
	v.validateQuery(q)
	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: v.problems}
}

// validator accumulates problems during traversal.
type validator struct {
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) validateQuery(q Query) {
	if q == nil {
		v.addProblem("nil query")
		return
	}
	switch query := q.(type) {
	case Select:
		v.validateSelect(query)
	case *Select:
		v.validateSelect(*query)
	default:
		v.addProblem("unknown query type %T", q)
	}
}

func (v *validator) validateSelect(sel Select) {
	if sel.Limit < 0 {
		v.addProblem("negative limit %d", sel.Limit)
	}
	if sel.Where != nil {
		v.validatePredicate(sel.Where)
	}
}

func (v *validator) validatePredicate(p Predicate) {
	if p == nil {
		v.addProblem("nil predicate")
		return
	}
	switch pred := p.(type) {
	case KindIs:
		v.validateKind(pred)
	case *KindIs:
		v.validateKind(*pred)
	case FamilyIs:
		v.validateFamily(pred)
	case *FamilyIs:
		v.validateFamily(*pred)
	case FlavorIs:
		v.validateFlavor(pred)
	case *FlavorIs:
		v.validateFlavor(*pred)
	case WidthBetween:
		v.validateWidth(pred)
	case *WidthBetween:
		v.validateWidth(*pred)
	case PureIs, *PureIs:
		// Both polarities are valid.
	case And:
		v.validateAnd(pred)
	case *And:
		v.validateAnd(*pred)
	default:
		v.addProblem("unknown predicate type %T", p)
	}
}

func (v *validator) validateKind(pred KindIs) {
	if pred.Name == "" {
		v.addProblem("kind name is empty")
		return
	}
	if expr.OpByName(pred.Name) == expr.OpInvalid {
		v.addProblem("unknown kind %q", pred.Name)
	}
}

func (v *validator) validateFamily(pred FamilyIs) {
	if pred.Name == "" {
		v.addProblem("family name is empty")
		return
	}
	if _, ok := expr.FamilyByName(pred.Name); !ok {
		v.addProblem("unknown family %q", pred.Name)
	}
}

func (v *validator) validateFlavor(pred FlavorIs) {
	switch pred.Name {
	case "logic", "double", "string":
	default:
		v.addProblem("unknown flavor %q, want logic, double or string", pred.Name)
	}
}

func (v *validator) validateWidth(pred WidthBetween) {
	if pred.Min < 0 {
		v.addProblem("negative width bound %d", pred.Min)
	}
	if pred.Max != 0 && pred.Max < pred.Min {
		v.addProblem("width bounds [%d, %d] are empty", pred.Min, pred.Max)
	}
}

func (v *validator) validateAnd(and And) {
	for _, pred := range and.Predicates {
		v.validatePredicate(pred)
	}
}
