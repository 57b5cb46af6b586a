package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmerdich/verilator/internal/expr"
)

// UnitInfo is one stored unit with its node count.
type UnitInfo struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Nodes     int
}

// ListUnits returns every stored unit. Results are ordered
// deterministically by creation time, then id.
func (s *Store) ListUnits(ctx context.Context) ([]UnitInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.created_at, COUNT(n.ref)
		FROM units u
		LEFT JOIN nodes n ON n.unit_id = u.id
		GROUP BY u.id, u.name, u.created_at
		ORDER BY u.created_at ASC, u.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query units: %w", err)
	}
	defer rows.Close()

	units := []UnitInfo{}
	for rows.Next() {
		var info UnitInfo
		var created int64
		if err := rows.Scan(&info.ID, &info.Name, &created, &info.Nodes); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		info.CreatedAt = time.Unix(created, 0).UTC()
		units = append(units, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate units: %w", err)
	}
	return units, nil
}

// UnitByName finds the most recently stored unit with the given name.
// Returns ErrNotFound when no unit matches.
func (s *Store) UnitByName(ctx context.Context, name string) (UnitInfo, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT u.id, u.name, u.created_at, COUNT(n.ref)
		FROM units u
		LEFT JOIN nodes n ON n.unit_id = u.id
		WHERE u.name = ?
		GROUP BY u.id, u.name, u.created_at
		ORDER BY u.created_at DESC, u.id COLLATE BINARY ASC
		LIMIT 1
	`, name)

	var info UnitInfo
	var created int64
	if err := row.Scan(&info.ID, &info.Name, &created, &info.Nodes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UnitInfo{}, fmt.Errorf("unit %q: %w", name, ErrNotFound)
		}
		return UnitInfo{}, fmt.Errorf("scan unit: %w", err)
	}
	info.CreatedAt = time.Unix(created, 0).UTC()
	return info, nil
}

// DupRow is one group of stored subtrees sharing a hash, restricted to
// mergeable nodes. Kind is the shared operator of the group.
type DupRow struct {
	Hash   string
	Kind   string
	Copies int
	Refs   []expr.Ref
}

// DuplicateHashes reports hash groups with more than one member inside
// a stored unit. Groups are ordered by their first member's ref, and
// refs within a group ascend.
func (s *Store) DuplicateHashes(ctx context.Context, unitID string) ([]DupRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, kind, COUNT(*)
		FROM nodes
		WHERE unit_id = ? AND mergeable = 1
		GROUP BY hash, kind
		HAVING COUNT(*) > 1
		ORDER BY MIN(ref) ASC
	`, unitID)
	if err != nil {
		return nil, fmt.Errorf("query duplicate hashes: %w", err)
	}
	defer rows.Close()

	var groups []DupRow
	for rows.Next() {
		var g DupRow
		if err := rows.Scan(&g.Hash, &g.Kind, &g.Copies); err != nil {
			return nil, fmt.Errorf("scan duplicate group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate duplicate groups: %w", err)
	}

	for i := range groups {
		refs, err := s.groupRefs(ctx, unitID, groups[i].Hash)
		if err != nil {
			return nil, err
		}
		groups[i].Refs = refs
	}
	return groups, nil
}

func (s *Store) groupRefs(ctx context.Context, unitID, hash string) ([]expr.Ref, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ref FROM nodes
		WHERE unit_id = ? AND hash = ? AND mergeable = 1
		ORDER BY ref ASC
	`, unitID, hash)
	if err != nil {
		return nil, fmt.Errorf("query group refs: %w", err)
	}
	defer rows.Close()

	var refs []expr.Ref
	for rows.Next() {
		var r int64
		if err := rows.Scan(&r); err != nil {
			return nil, fmt.Errorf("scan group ref: %w", err)
		}
		refs = append(refs, expr.Ref(r))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group refs: %w", err)
	}
	return refs, nil
}
