package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmerdich/verilator/internal/harness"
)

// ScenarioOutcome is one scenario's verdict in the test summary. A
// scenario that failed to load carries the load error instead of steps.
type ScenarioOutcome struct {
	Name  string                `json:"name"`
	Pass  bool                  `json:"pass"`
	Steps []harness.StepOutcome `json:"steps,omitempty"`
	Error string                `json:"error,omitempty"`
}

// TestSummary aggregates scenario outcomes for one test run.
type TestSummary struct {
	Scenarios []ScenarioOutcome `json:"scenarios"`
	Passed    int               `json:"passed"`
	Failed    int               `json:"failed"`
	Total     int               `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <scenario.yaml> [scenario.yaml...]",
		Short: "Run scenario files against their unit files",
		Long: `Run YAML scenario files. Each scenario names a unit file and a list
of steps: fold an expression and check the value or the blocking
error, compare two roots, clone a tree, or check an operator's
pure/width/clean contract.

A scenario that fails to load counts as a failed scenario; the
remaining files still run.

Exit codes:
  0 - every scenario passed
  1 - at least one scenario failed or did not load

Examples:
  vexpr test fold_masks.yaml
  vexpr test scenarios/*.yaml
  vexpr test fold_masks.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runTest(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	summary := TestSummary{Total: len(paths)}
	for _, path := range paths {
		formatter.VerboseLog("running scenario: %s", path)
		summary.Scenarios = append(summary.Scenarios, runScenarioFile(path))
	}
	for _, outcome := range summary.Scenarios {
		if outcome.Pass {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(formatter, summary)
	}
	return outputTestText(formatter, summary)
}

// runScenarioFile loads and runs one scenario, folding load and run
// errors into a failed outcome so the rest of the files still run.
func runScenarioFile(path string) ScenarioOutcome {
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return ScenarioOutcome{Name: filepath.Base(path), Error: err.Error()}
	}
	result, err := harness.Run(scenario)
	if err != nil {
		return ScenarioOutcome{Name: scenario.Name, Error: err.Error()}
	}
	return ScenarioOutcome{Name: result.Scenario, Pass: result.Pass, Steps: result.Steps}
}

func outputTestText(formatter *OutputFormatter, summary TestSummary) error {
	w := formatter.Writer
	for _, outcome := range summary.Scenarios {
		if outcome.Pass {
			fmt.Fprintf(w, "✓ %s\n", outcome.Name)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", outcome.Name)
		if outcome.Error != "" {
			fmt.Fprintf(w, "  %s\n", outcome.Error)
		}
		for _, step := range outcome.Steps {
			if !step.Pass {
				fmt.Fprintf(w, "  ✗ %s: %s\n", step.Desc, step.Detail)
			}
		}
	}

	fmt.Fprintf(w, "\nTest Summary: %d passed, %d failed, %d total\n",
		summary.Passed, summary.Failed, summary.Total)

	if summary.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", summary.Failed))
	}
	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}

func outputTestJSON(formatter *OutputFormatter, summary TestSummary) error {
	response := CLIResponse{Status: "ok", Data: summary}
	if summary.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_TEST_FAILED",
			Message: fmt.Sprintf("%d scenario(s) failed", summary.Failed),
		}
	}

	enc := json.NewEncoder(formatter.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(response); err != nil {
		return err
	}
	if summary.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", summary.Failed))
	}
	return nil
}
