package harness

// StepOutcome is the verdict of one scenario step.
type StepOutcome struct {
	// Desc labels the step: directive plus the root names it touched.
	Desc string `json:"desc"`

	// Pass is the step verdict.
	Pass bool `json:"pass"`

	// Detail carries the folded value on success, or what went wrong.
	Detail string `json:"detail,omitempty"`
}

// Result is the outcome of one scenario run.
type Result struct {
	// Scenario is the scenario name.
	Scenario string `json:"scenario"`

	// Pass is true when every step passed.
	Pass bool `json:"pass"`

	// Steps holds per-step verdicts in execution order.
	Steps []StepOutcome `json:"steps"`
}

// NewResult creates a passing result to accumulate step verdicts into.
func NewResult(scenario string) *Result {
	return &Result{Scenario: scenario, Pass: true, Steps: []StepOutcome{}}
}

// AddStep records one step verdict; a failing step fails the result.
func (r *Result) AddStep(desc string, pass bool, detail string) {
	r.Steps = append(r.Steps, StepOutcome{Desc: desc, Pass: pass, Detail: detail})
	if !pass {
		r.Pass = false
	}
}

// Report aggregates scenario results for the test command.
type Report struct {
	// Pass is true when every scenario passed.
	Pass bool `json:"pass"`

	// Scenarios holds per-scenario results in run order.
	Scenarios []*Result `json:"scenarios"`
}

// NewReport creates a passing report to accumulate results into.
func NewReport() *Report {
	return &Report{Pass: true, Scenarios: []*Result{}}
}

// Add appends a scenario result; a failing scenario fails the report.
func (rp *Report) Add(r *Result) {
	rp.Scenarios = append(rp.Scenarios, r)
	if !r.Pass {
		rp.Pass = false
	}
}
