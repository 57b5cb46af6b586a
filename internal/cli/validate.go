package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmerdich/verilator/internal/lower"
)

// FileOutcome is one unit file's validation verdict.
type FileOutcome struct {
	File  string `json:"file"`
	Valid bool   `json:"valid"`
	Unit  string `json:"unit,omitempty"`
	Roots int    `json:"roots,omitempty"`
	Error string `json:"error,omitempty"`
}

// ValidateResult aggregates file outcomes for one validate run.
type ValidateResult struct {
	Valid bool          `json:"valid"`
	Files []FileOutcome `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <unit.cue> [unit.cue...]",
		Short: "Check that unit files load",
		Long: `Load each unit file and report whether it builds: CUE syntax,
operator names, operand counts, literal forms and reference targets
are all checked. Nothing is printed per node; use dump for that.

An unreadable file counts as a validation failure like any other, so
a batch keeps going past it.

Exit codes:
  0 - every file loaded
  1 - at least one file did not load

Examples:
  vexpr validate masks.cue
  vexpr validate units/*.cue --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	result := ValidateResult{Valid: true}
	for _, path := range paths {
		formatter.VerboseLog("loading unit file: %s", path)
		outcome := FileOutcome{File: path}
		u, err := lower.LoadFile(path)
		if err != nil {
			outcome.Error = err.Error()
			result.Valid = false
		} else {
			outcome.Valid = true
			outcome.Unit = u.Name
			outcome.Roots = len(u.Order)
		}
		result.Files = append(result.Files, outcome)
	}

	if opts.Format == "json" {
		return outputValidateJSON(formatter, result)
	}
	return outputValidateText(formatter, result)
}

func outputValidateText(formatter *OutputFormatter, result ValidateResult) error {
	w := formatter.Writer
	failed := 0
	for _, outcome := range result.Files {
		if outcome.Valid {
			fmt.Fprintf(w, "✓ %s (unit %q, %d roots)\n", outcome.File, outcome.Unit, outcome.Roots)
			continue
		}
		failed++
		fmt.Fprintf(w, "✗ %s\n", outcome.File)
		fmt.Fprintf(w, "  %s\n", outcome.Error)
	}

	if !result.Valid {
		fmt.Fprintf(w, "\n%d of %d file(s) did not load\n", failed, len(result.Files))
		return NewExitError(ExitFailure, fmt.Sprintf("%d file(s) did not load", failed))
	}
	fmt.Fprintf(w, "✓ All %d file(s) loaded\n", len(result.Files))
	return nil
}

func outputValidateJSON(formatter *OutputFormatter, result ValidateResult) error {
	if result.Valid {
		return formatter.Success(result)
	}

	failed := 0
	for _, outcome := range result.Files {
		if !outcome.Valid {
			failed++
		}
	}
	response := CLIResponse{
		Status: "error",
		Data:   result,
		Error: &CLIError{
			Code:    ErrCodeGeneric,
			Message: fmt.Sprintf("%d file(s) did not load", failed),
		},
	}
	enc := json.NewEncoder(formatter.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(response); err != nil {
		return err
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d file(s) did not load", failed))
}
