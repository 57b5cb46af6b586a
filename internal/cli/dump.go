package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmerdich/verilator/internal/expr"
	"github.com/jmerdich/verilator/internal/passes"
	"github.com/jmerdich/verilator/internal/store"
)

// DumpOptions holds options for the dump command.
type DumpOptions struct {
	*RootOptions
	Store string // save the unit to this database after loading
}

// DumpResult is the structured output of a dump run.
type DumpResult struct {
	Unit  string     `json:"unit"`
	Nodes int        `json:"nodes"`
	Roots []RootDump `json:"roots"`
	Saved string     `json:"saved,omitempty"` // unit id in the store
}

// RootDump is one named expression rendered as an indented tree, with
// its node count and summed instruction-cost estimate.
type RootDump struct {
	Name  string           `json:"name"`
	Tree  string           `json:"tree"`
	Stats passes.TreeStats `json:"stats"`
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dump <unit.cue>",
		Short: "Load a unit file and print its expression trees",
		Long: `Load a unit file and print every expression as an indented tree,
one node per line with its operator, state and data type.

With --store the loaded unit is also written to a SQLite database for
later dupes --stored and query runs.

Exit codes:
  0 - unit loaded
  1 - unit file did not build
  2 - unit file unreadable or database unusable

Examples:
  vexpr dump masks.cue
  vexpr dump masks.cue --store exprs.db
  vexpr dump masks.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Store, "store", "", "save the unit to this SQLite database")

	return cmd
}

func runDump(opts *DumpOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	formatter.VerboseLog("loading unit file: %s", path)
	u, err := loadUnit(formatter, path)
	if err != nil {
		return err
	}
	formatter.VerboseLog("loaded unit %q: %d roots, %d nodes", u.Name, len(u.Order), u.Arena.Len())

	result := DumpResult{
		Unit:  u.Name,
		Nodes: u.Arena.Len(),
	}
	for _, name := range u.Order {
		st := passes.Stats(u.Arena, u.Roots[name])
		formatter.VerboseLog("root %s: %d nodes, cost %d", name, st.Nodes, st.Cost)
		result.Roots = append(result.Roots, RootDump{
			Name:  name,
			Tree:  expr.DumpString(u.Arena, u.Roots[name]),
			Stats: st,
		})
	}

	if opts.Store != "" {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		st, err := store.Open(opts.Store)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, fmt.Sprintf("opening database: %v", err), nil)
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()

		id, err := st.SaveUnit(ctx, u)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, fmt.Sprintf("saving unit: %v", err), nil)
			return WrapExitError(ExitCommandError, "failed to save unit", err)
		}
		result.Saved = id
		formatter.VerboseLog("saved unit %q as %s", u.Name, id)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprint(formatter.Writer, u.DumpString())
	if result.Saved != "" {
		fmt.Fprintf(formatter.Writer, "saved as %s\n", result.Saved)
	}
	return nil
}
