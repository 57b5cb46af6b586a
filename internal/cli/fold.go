package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmerdich/verilator/internal/expr"
	"github.com/jmerdich/verilator/internal/num"
	"github.com/jmerdich/verilator/internal/passes"
)

// FoldResult is the structured output of a successful fold.
type FoldResult struct {
	Unit  string `json:"unit"`
	Expr  string `json:"expr"`
	Value string `json:"value"`
	Width int    `json:"width"`
}

// NewFoldCommand creates the fold command.
func NewFoldCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fold <unit.cue> <expr>",
		Short: "Constant-fold one expression of a unit",
		Long: `Load a unit file and constant-fold the named expression, printing
the resulting value in sized Verilog form.

A tree blocked by a reference, a random draw or an opaque cast does
not fold; the blocking node and its reason are reported instead.

Exit codes:
  0 - expression folded
  1 - expression did not fold, or the unit file did not build
  2 - unit file unreadable or expression name unknown

Examples:
  vexpr fold masks.cue both
  vexpr fold masks.cue both --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFold(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runFold(opts *RootOptions, path, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	u, err := loadUnit(formatter, path)
	if err != nil {
		return err
	}

	root := u.Root(name)
	if root == expr.NilRef {
		msg := fmt.Sprintf("unit %q has no expression %q", u.Name, name)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	v, err := foldTree(u.Arena, root)
	if err != nil {
		var evalErr *passes.EvalError
		if errors.As(err, &evalErr) {
			_ = formatter.Error(string(evalErr.Code), evalErr.Error(), nil)
		} else {
			_ = formatter.Error(ErrCodeEval, err.Error(), nil)
		}
		return WrapExitError(ExitFailure, "expression did not fold", err)
	}

	if opts.Format == "json" {
		return formatter.Success(FoldResult{
			Unit:  u.Name,
			Expr:  name,
			Value: v.Ascii(),
			Width: v.Width(),
		})
	}
	fmt.Fprintln(formatter.Writer, v.Ascii())
	return nil
}

// foldTree evaluates root, converting operand-contract panics into
// ordinary errors so a broken unit cannot take the command down.
func foldTree(a *expr.Arena, root expr.Ref) (v *num.Num, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("contract violation: %v", r)
		}
	}()
	return passes.Evaluate(a, root)
}
