package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmerdich/verilator/internal/expr"
	"github.com/jmerdich/verilator/internal/passes"
	"github.com/jmerdich/verilator/internal/store"
)

// DupesOptions holds options for the dupes command.
type DupesOptions struct {
	*RootOptions
	Stored string // read groups from this database instead of a unit file
}

// DupeGroup is one set of interchangeable subtrees in the output.
type DupeGroup struct {
	Hash   string     `json:"hash"`
	Kind   string     `json:"kind"`
	Copies int        `json:"copies"`
	Nodes  int        `json:"nodes,omitempty"` // per copy; unknown for stored units
	Refs   []expr.Ref `json:"refs"`
}

// DupesResult is the structured output of a dupes run.
type DupesResult struct {
	Unit   string      `json:"unit"`
	Groups []DupeGroup `json:"groups"`
}

// NewDupesCommand creates the dupes command.
func NewDupesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DupesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dupes <unit.cue | unit-name>",
		Short: "Report interchangeable duplicate subtrees",
		Long: `Report groups of structurally equal subtrees that could be merged
into one. Only side-effect-free subtrees qualify; random draws and
foreign calls never do.

By default the argument is a unit file, loaded and scanned in memory.
With --stored the argument is the name of a unit saved earlier with
dump --store, and groups come from the database's content hashes.

Exit codes:
  0 - scan ran (zero groups is still a success)
  1 - unit file did not build
  2 - unit file unreadable, database unusable or unit name unknown

Examples:
  vexpr dupes masks.cue
  vexpr dupes --stored exprs.db masks
  vexpr dupes masks.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDupes(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Stored, "stored", "", "database holding the unit to scan")

	return cmd
}

func runDupes(opts *DupesOptions, target string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	var result DupesResult
	if opts.Stored != "" {
		r, err := storedDupes(formatter, opts.Stored, target, cmd)
		if err != nil {
			return err
		}
		result = r
	} else {
		u, err := loadUnit(formatter, target)
		if err != nil {
			return err
		}
		roots := make([]expr.Ref, 0, len(u.Order))
		for _, name := range u.Order {
			roots = append(roots, u.Roots[name])
		}
		result.Unit = u.Name
		for _, g := range passes.FindDuplicates(u.Arena, roots) {
			result.Groups = append(result.Groups, DupeGroup{
				Hash:   g.Hash,
				Kind:   u.Arena.Node(g.Refs[0]).Op().String(),
				Copies: len(g.Refs),
				Nodes:  g.Nodes,
				Refs:   g.Refs,
			})
		}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	if len(result.Groups) == 0 {
		fmt.Fprintf(formatter.Writer, "no duplicate subtrees in %s\n", result.Unit)
		return nil
	}
	fmt.Fprintf(formatter.Writer, "%d duplicate group(s) in %s\n", len(result.Groups), result.Unit)
	for _, g := range result.Groups {
		fmt.Fprintf(formatter.Writer, "  %s x%d  refs %v  hash %s\n", g.Kind, g.Copies, g.Refs, shortHash(g.Hash))
	}
	return nil
}

func storedDupes(formatter *OutputFormatter, dbPath, unitName string, cmd *cobra.Command) (DupesResult, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, fmt.Sprintf("opening database: %v", err), nil)
		return DupesResult{}, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	info, err := st.UnitByName(ctx, unitName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
			return DupesResult{}, WrapExitError(ExitCommandError, "unit not stored", err)
		}
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return DupesResult{}, WrapExitError(ExitCommandError, "failed to read database", err)
	}

	rows, err := st.DuplicateHashes(ctx, info.ID)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return DupesResult{}, WrapExitError(ExitCommandError, "failed to read database", err)
	}

	result := DupesResult{Unit: info.Name}
	for _, row := range rows {
		result.Groups = append(result.Groups, DupeGroup{
			Hash:   row.Hash,
			Kind:   row.Kind,
			Copies: row.Copies,
			Refs:   row.Refs,
		})
	}
	return result, nil
}

// shortHash trims a content hash for one-line text output.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
