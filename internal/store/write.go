package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmerdich/verilator/internal/expr"
	"github.com/jmerdich/verilator/internal/lower"
)

// SaveUnit persists the unit's arena: one row per node, plus edges and
// named roots. Returns the stored unit id (the arena uuid).
//
// Uses ON CONFLICT DO NOTHING throughout for idempotency - saving the
// same arena twice leaves one copy and returns the same id.
func (s *Store) SaveUnit(ctx context.Context, u *lower.Unit) (string, error) {
	id := u.Arena.ID().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save unit: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO units (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, u.Name, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("save unit: insert unit: %w", err)
	}

	if err := s.writeNodes(ctx, tx, id, u.Arena); err != nil {
		return "", err
	}

	for _, name := range u.Order {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO roots (unit_id, name, ref)
			VALUES (?, ?, ?)
			ON CONFLICT DO NOTHING
		`, id, name, int64(u.Roots[name]))
		if err != nil {
			return "", fmt.Errorf("save unit: insert root %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save unit: commit: %w", err)
	}
	return id, nil
}

func (s *Store) writeNodes(ctx context.Context, tx *sql.Tx, id string, a *expr.Arena) error {
	hasher := expr.NewHasher(a)
	merge := mergeableSet(a)

	for _, r := range a.All() {
		n := a.Node(r)
		state, err := nodeState(a, n)
		if err != nil {
			return fmt.Errorf("save unit: %w", err)
		}
		var stateCol any
		if state != "" {
			stateCol = state
		}

		dt := n.DType()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO nodes
			(unit_id, ref, kind, family, width, flavor, signed, pure, outputter, mergeable, hash, state)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(unit_id, ref) DO NOTHING
		`,
			id,
			int64(r),
			n.Op().String(),
			expr.Info(n.Op()).Family.String(),
			dt.Width,
			dt.Flavor.String(),
			boolInt(dt.Signed),
			boolInt(expr.IsPure(n)),
			boolInt(expr.IsOutputter(n.Op())),
			boolInt(merge[r]),
			hasher.Hash(r),
			stateCol,
		)
		if err != nil {
			return fmt.Errorf("save unit: insert node %d: %w", r, err)
		}

		for slot, child := range n.Children() {
			if child == expr.NilRef {
				continue
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO edges (unit_id, parent, slot, child)
				VALUES (?, ?, ?, ?)
				ON CONFLICT DO NOTHING
			`, id, int64(r), slot, int64(child))
			if err != nil {
				return fmt.Errorf("save unit: insert edge %d/%d: %w", r, slot, err)
			}
		}
	}
	return nil
}

// mergeableSet computes the subtree-wide merge gate for every node:
// a node is mergeable when it and every node below it pass the
// per-node gate. Matches the candidate rule of the in-memory
// duplicate pass.
func mergeableSet(a *expr.Arena) map[expr.Ref]bool {
	memo := make(map[expr.Ref]bool, a.Len())
	var walk func(r expr.Ref) bool
	walk = func(r expr.Ref) bool {
		if r == expr.NilRef {
			return true
		}
		if v, ok := memo[r]; ok {
			return v
		}
		n := a.Node(r)
		ok := expr.IsMergeable(n)
		for _, c := range n.Children() {
			if !ok {
				break
			}
			ok = walk(c)
		}
		memo[r] = ok
		return ok
	}
	for _, r := range a.All() {
		walk(r)
	}
	return memo
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
