package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmerdich/verilator/internal/query"
	"github.com/jmerdich/verilator/internal/store"
)

// QueryOptions holds the filter flags of the query command.
type QueryOptions struct {
	*RootOptions
	Unit     string
	Kind     string
	Family   string
	Flavor   string
	MinWidth int
	MaxWidth int
	Pure     bool
	Limit    int
}

// QueryResult is the structured output of a query run.
type QueryResult struct {
	Count int             `json:"count"`
	Nodes []store.NodeRow `json:"nodes"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <exprs.db>",
		Short: "Query stored nodes by kind, family, flavor, width and purity",
		Long: `Query the nodes of units stored with dump --store. Filters combine
as a conjunction; with no filters every stored node matches. Results
are ordered deterministically, so identical queries print identical
rows.

Exit codes:
  0 - query ran (zero rows is still a success)
  2 - database unusable or filters rejected by validation

Examples:
  vexpr query exprs.db --kind And
  vexpr query exprs.db --unit masks --family binary-com --pure
  vexpr query exprs.db --min-width 8 --max-width 32 --limit 10`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Unit, "unit", "", "restrict to one stored unit by name")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "operator kind, e.g. And or VarRef")
	cmd.Flags().StringVar(&opts.Family, "family", "", "operator family, e.g. unary, binary-com or varref")
	cmd.Flags().StringVar(&opts.Flavor, "flavor", "", "result flavor: logic, double or string")
	cmd.Flags().IntVar(&opts.MinWidth, "min-width", 0, "minimum result width in bits")
	cmd.Flags().IntVar(&opts.MaxWidth, "max-width", 0, "maximum result width in bits (0 = unbounded)")
	cmd.Flags().BoolVar(&opts.Pure, "pure", false, "filter by purity (--pure or --pure=false)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "cap the number of rows (0 = no cap)")

	return cmd
}

func runQuery(opts *QueryOptions, dbPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, fmt.Sprintf("opening database: %v", err), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	q := buildQuery(opts, cmd)
	rows, err := st.RunQuery(ctx, q)
	if err != nil {
		var vErr *query.ValidationError
		if errors.As(err, &vErr) {
			_ = formatter.Error(ErrCodeQuery, vErr.Error(), vErr.Problems)
			return WrapExitError(ExitCommandError, "invalid query", err)
		}
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "query failed", err)
	}

	if opts.Format == "json" {
		return formatter.Success(QueryResult{Count: len(rows), Nodes: rows})
	}
	if len(rows) == 0 {
		fmt.Fprintln(formatter.Writer, "no matching nodes")
		return nil
	}
	fmt.Fprintf(formatter.Writer, "%-12s %5s  %-14s %-8s %5s  %-7s %-5s %s\n",
		"UNIT", "REF", "KIND", "FAMILY", "WIDTH", "FLAVOR", "PURE", "HASH")
	for _, row := range rows {
		fmt.Fprintf(formatter.Writer, "%-12s %5d  %-14s %-8s %5d  %-7s %-5v %s\n",
			row.Unit, row.Ref, row.Kind, row.Family, row.Width, row.Flavor, row.Pure, shortHash(row.Hash))
	}
	fmt.Fprintf(formatter.Writer, "%d node(s)\n", len(rows))
	return nil
}

// buildQuery assembles a Select from whichever filter flags were set.
// Purity is tri-state: ignored unless --pure appeared on the command
// line.
func buildQuery(opts *QueryOptions, cmd *cobra.Command) query.Select {
	var preds []query.Predicate
	if opts.Kind != "" {
		preds = append(preds, query.KindIs{Name: opts.Kind})
	}
	if opts.Family != "" {
		preds = append(preds, query.FamilyIs{Name: opts.Family})
	}
	if opts.Flavor != "" {
		preds = append(preds, query.FlavorIs{Name: opts.Flavor})
	}
	if opts.MinWidth > 0 || opts.MaxWidth > 0 {
		preds = append(preds, query.WidthBetween{Min: opts.MinWidth, Max: opts.MaxWidth})
	}
	if cmd.Flags().Changed("pure") {
		preds = append(preds, query.PureIs{Pure: opts.Pure})
	}

	q := query.Select{Unit: opts.Unit, Limit: opts.Limit}
	switch len(preds) {
	case 0:
	case 1:
		q.Where = preds[0]
	default:
		q.Where = query.And{Predicates: preds}
	}
	return q
}
