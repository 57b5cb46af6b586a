package harness

import (
	"errors"
	"fmt"

	"github.com/jmerdich/verilator/internal/expr"
	"github.com/jmerdich/verilator/internal/lower"
	"github.com/jmerdich/verilator/internal/num"
	"github.com/jmerdich/verilator/internal/passes"
)

// Run loads the scenario's unit and executes every step. Step failures
// land in the result; the error return is reserved for infrastructure
// problems (an unloadable unit file).
func Run(scenario *Scenario) (*Result, error) {
	unit, err := lower.LoadFile(scenario.Unit)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := NewResult(scenario.Name)
	for i := range scenario.Steps {
		runStep(unit, &scenario.Steps[i], result)
	}
	return result, nil
}

// RunFiles loads and runs each scenario file in order.
func RunFiles(paths ...string) (*Report, error) {
	report := NewReport()
	for _, path := range paths {
		scenario, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		result, err := Run(scenario)
		if err != nil {
			return nil, err
		}
		report.Add(result)
	}
	return report, nil
}

func runStep(u *lower.Unit, st *Step, result *Result) {
	desc := stepDesc(st)

	resolve := func(name string) (expr.Ref, bool) {
		r := u.Root(name)
		if r == expr.NilRef {
			result.AddStep(desc, false, fmt.Sprintf("unit has no expression %q", name))
			return expr.NilRef, false
		}
		return r, true
	}

	switch {
	case st.Fold != "":
		root, ok := resolve(st.Fold)
		if !ok {
			return
		}
		runFold(u, st, root, desc, result)

	case len(st.Same) == 2:
		x, ok := resolve(st.Same[0])
		if !ok {
			return
		}
		y, ok := resolve(st.Same[1])
		if !ok {
			return
		}
		got := expr.Same(u.Arena.Node(x), u.Arena.Node(y))
		reportVerdict(result, desc, got, *st.Want)

	case len(st.TreeEqual) == 2:
		x, ok := resolve(st.TreeEqual[0])
		if !ok {
			return
		}
		y, ok := resolve(st.TreeEqual[1])
		if !ok {
			return
		}
		got := expr.TreeEqual(u.Arena, x, y)
		reportVerdict(result, desc, got, *st.Want)

	case st.Clone != "":
		root, ok := resolve(st.Clone)
		if !ok {
			return
		}
		copied := expr.CloneTree(u.Arena, root)
		switch {
		case copied == root:
			result.AddStep(desc, false, "clone returned the original root")
		case !expr.TreeEqual(u.Arena, root, copied):
			result.AddStep(desc, false, "clone is not structurally equal to the original")
		default:
			result.AddStep(desc, true, "")
		}

	case st.Flags != "":
		root, ok := resolve(st.Flags)
		if !ok {
			return
		}
		runFlags(u, st, root, desc, result)

	default:
		result.AddStep(desc, false, "step selects no directive")
	}
}

func runFold(u *lower.Unit, st *Step, root expr.Ref, desc string, result *Result) {
	v, err, panicMsg := safeEvaluate(u.Arena, root)

	if st.Panics {
		if panicMsg == "" {
			result.AddStep(desc, false, "evaluation did not panic")
			return
		}
		result.AddStep(desc, true, panicMsg)
		return
	}
	if panicMsg != "" {
		result.AddStep(desc, false, "evaluation panicked: "+panicMsg)
		return
	}

	if st.Error != "" {
		var evalErr *passes.EvalError
		if err == nil {
			result.AddStep(desc, false, fmt.Sprintf("folded to %s, expected error %s", v.Ascii(), st.Error))
			return
		}
		if !errors.As(err, &evalErr) {
			result.AddStep(desc, false, "unexpected error: "+err.Error())
			return
		}
		if string(evalErr.Code) != st.Error {
			result.AddStep(desc, false, fmt.Sprintf("error code %s, expected %s", evalErr.Code, st.Error))
			return
		}
		result.AddStep(desc, true, "")
		return
	}

	// Expect a folded literal.
	if err != nil {
		result.AddStep(desc, false, "did not fold: "+err.Error())
		return
	}
	if got := v.Ascii(); got != st.Expect {
		result.AddStep(desc, false, fmt.Sprintf("folded to %s, expected %s", got, st.Expect))
		return
	}
	result.AddStep(desc, true, v.Ascii())
}

func runFlags(u *lower.Unit, st *Step, root expr.Ref, desc string, result *Result) {
	n := u.Arena.Node(root)
	pass := true
	detail := ""

	fail := func(msg string) {
		pass = false
		if detail != "" {
			detail += "; "
		}
		detail += msg
	}

	if st.Pure != nil {
		if got := expr.IsPure(n); got != *st.Pure {
			fail(fmt.Sprintf("pure = %v, expected %v", got, *st.Pure))
		}
	}
	if st.Width != nil {
		if got := n.DType().Width; got != *st.Width {
			fail(fmt.Sprintf("width = %d, expected %d", got, *st.Width))
		}
	}
	if st.Clean != nil {
		if !expr.HasCleanOut(n) {
			fail(fmt.Sprintf("%s does not define clean output", n.Op()))
		} else if got := expr.CleanOut(n); got != *st.Clean {
			fail(fmt.Sprintf("clean = %v, expected %v", got, *st.Clean))
		}
	}
	result.AddStep(desc, pass, detail)
}

func reportVerdict(result *Result, desc string, got, want bool) {
	if got != want {
		result.AddStep(desc, false, fmt.Sprintf("got %v, expected %v", got, want))
		return
	}
	result.AddStep(desc, true, "")
}

// safeEvaluate runs constant evaluation, converting a contract
// violation panic into a message so scenarios can assert on it.
func safeEvaluate(a *expr.Arena, root expr.Ref) (v *num.Num, err error, panicMsg string) {
	defer func() {
		if p := recover(); p != nil {
			panicMsg = fmt.Sprint(p)
		}
	}()
	v, err = passes.Evaluate(a, root)
	return v, err, ""
}
