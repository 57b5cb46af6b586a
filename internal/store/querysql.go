package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmerdich/verilator/internal/expr"
	"github.com/jmerdich/verilator/internal/query"
)

// NodeRow is one stored node matched by a query.
type NodeRow struct {
	Unit   string
	Ref    expr.Ref
	Kind   string
	Family string
	Width  int
	Flavor string
	Pure   bool
	Hash   string
}

// RunQuery validates q, compiles it to parameterized SQL and executes
// it. Every compiled query carries an ORDER BY with a binary-collated
// tiebreaker, so results are stable across runs. Values are always
// bound through placeholders, never interpolated.
func (s *Store) RunQuery(ctx context.Context, q query.Query) ([]NodeRow, error) {
	if err := query.Validate(q); err != nil {
		return nil, err
	}
	sqlText, params, err := compileQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, sqlText, params...)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}
	defer rows.Close()

	results := []NodeRow{}
	for rows.Next() {
		var row NodeRow
		var ref int64
		var pure int
		if err := rows.Scan(&row.Unit, &ref, &row.Kind, &row.Family, &row.Width, &row.Flavor, &pure, &row.Hash); err != nil {
			return nil, fmt.Errorf("scan node row: %w", err)
		}
		row.Ref = expr.Ref(ref)
		row.Pure = pure != 0
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate node rows: %w", err)
	}
	return results, nil
}

// compileQuery converts a query to parameterized SQL.
func compileQuery(q query.Query) (string, []any, error) {
	switch qu := q.(type) {
	case query.Select:
		return compileSelect(qu)
	case *query.Select:
		return compileSelect(*qu)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

func compileSelect(q query.Select) (string, []any, error) {
	var conds []string
	var params []any

	if q.Unit != "" {
		conds = append(conds, "u.name = ?")
		params = append(params, q.Unit)
	}
	if q.Where != nil {
		whereSQL, whereParams, err := compilePredicate(q.Where)
		if err != nil {
			return "", nil, fmt.Errorf("compile predicate: %w", err)
		}
		conds = append(conds, whereSQL)
		params = append(params, whereParams...)
	}

	sqlText := "SELECT u.name, n.ref, n.kind, n.family, n.width, n.flavor, n.pure, n.hash" +
		" FROM nodes n JOIN units u ON n.unit_id = u.id"
	if len(conds) > 0 {
		sqlText += " WHERE " + strings.Join(conds, " AND ")
	}
	sqlText += " ORDER BY u.name COLLATE BINARY ASC, u.id COLLATE BINARY ASC, n.ref ASC"
	if q.Limit > 0 {
		sqlText += " LIMIT ?"
		params = append(params, q.Limit)
	}
	return sqlText, params, nil
}

// compilePredicate compiles a predicate to a WHERE fragment.
func compilePredicate(p query.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case query.KindIs:
		return "n.kind = ?", []any{pred.Name}, nil
	case *query.KindIs:
		return "n.kind = ?", []any{pred.Name}, nil
	case query.FamilyIs:
		return "n.family = ?", []any{pred.Name}, nil
	case *query.FamilyIs:
		return "n.family = ?", []any{pred.Name}, nil
	case query.FlavorIs:
		return "n.flavor = ?", []any{pred.Name}, nil
	case *query.FlavorIs:
		return "n.flavor = ?", []any{pred.Name}, nil
	case query.WidthBetween:
		return compileWidth(pred)
	case *query.WidthBetween:
		return compileWidth(*pred)
	case query.PureIs:
		return "n.pure = ?", []any{boolInt(pred.Pure)}, nil
	case *query.PureIs:
		return "n.pure = ?", []any{boolInt(pred.Pure)}, nil
	case query.And:
		return compileAnd(pred)
	case *query.And:
		return compileAnd(*pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

func compileWidth(w query.WidthBetween) (string, []any, error) {
	if w.Max > 0 {
		return "n.width >= ? AND n.width <= ?", []any{w.Min, w.Max}, nil
	}
	return "n.width >= ?", []any{w.Min}, nil
}

func compileAnd(and query.And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil
	}

	var parts []string
	var allParams []any
	for _, pred := range and.Predicates {
		sqlText, params, err := compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sqlText)
		allParams = append(allParams, params...)
	}
	return strings.Join(parts, " AND "), allParams, nil
}
