package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jmerdich/verilator/internal/expr"
)

func TestListUnits_Empty(t *testing.T) {
	s := createTestStore(t)

	units, err := s.ListUnits(context.Background())
	if err != nil {
		t.Fatalf("ListUnits() failed: %v", err)
	}
	if len(units) != 0 {
		t.Errorf("ListUnits() on empty store = %v, want none", units)
	}
}

func TestListUnits_Ordering(t *testing.T) {
	s := createTestStore(t)

	// Insert directly so creation times are distinct and controlled.
	inserts := []struct {
		id      string
		name    string
		created int64
	}{
		{"cc", "late", 200},
		{"bb", "early-second", 100},
		{"aa", "early-first", 100},
	}
	for _, in := range inserts {
		_, err := s.db.Exec(
			"INSERT INTO units (id, name, created_at) VALUES (?, ?, ?)",
			in.id, in.name, in.created,
		)
		if err != nil {
			t.Fatalf("insert unit %q failed: %v", in.id, err)
		}
	}

	units, err := s.ListUnits(context.Background())
	if err != nil {
		t.Fatalf("ListUnits() failed: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("ListUnits() returned %d units, want 3", len(units))
	}

	// created_at ascending, then id; the tie at 100 breaks on id.
	wantIDs := []string{"aa", "bb", "cc"}
	for i, want := range wantIDs {
		if units[i].ID != want {
			t.Errorf("units[%d].ID = %q, want %q", i, units[i].ID, want)
		}
	}
	if got := units[2].CreatedAt.Unix(); got != 200 {
		t.Errorf("units[2].CreatedAt = %d, want 200", got)
	}
}

func TestListUnits_CountsNodes(t *testing.T) {
	s := createTestStore(t)
	u := loadTestUnit(t, dupUnitSrc)

	if _, err := s.SaveUnit(context.Background(), u); err != nil {
		t.Fatalf("SaveUnit() failed: %v", err)
	}

	units, err := s.ListUnits(context.Background())
	if err != nil {
		t.Fatalf("ListUnits() failed: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("ListUnits() returned %d units, want 1", len(units))
	}
	if units[0].Name != "dupes" {
		t.Errorf("Name = %q, want dupes", units[0].Name)
	}
	if units[0].Nodes != 6 {
		t.Errorf("Nodes = %d, want 6", units[0].Nodes)
	}
	if units[0].CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestUnitByName_PicksLatest(t *testing.T) {
	s := createTestStore(t)

	for _, in := range []struct {
		id      string
		created int64
	}{
		{"aa", 100},
		{"bb", 200},
	} {
		_, err := s.db.Exec(
			"INSERT INTO units (id, name, created_at) VALUES (?, 'alu', ?)",
			in.id, in.created,
		)
		if err != nil {
			t.Fatalf("insert unit %q failed: %v", in.id, err)
		}
	}

	info, err := s.UnitByName(context.Background(), "alu")
	if err != nil {
		t.Fatalf("UnitByName() failed: %v", err)
	}
	if info.ID != "bb" {
		t.Errorf("UnitByName() picked %q, want bb (latest)", info.ID)
	}
}

func TestUnitByName_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.UnitByName(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UnitByName() error = %v, want ErrNotFound", err)
	}
}

func TestDuplicateHashes_Groups(t *testing.T) {
	s := createTestStore(t)
	u := loadTestUnit(t, dupUnitSrc)

	id, err := s.SaveUnit(context.Background(), u)
	if err != nil {
		t.Fatalf("SaveUnit() failed: %v", err)
	}

	groups, err := s.DuplicateHashes(context.Background(), id)
	if err != nil {
		t.Fatalf("DuplicateHashes() failed: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("DuplicateHashes() returned %d groups, want 3", len(groups))
	}

	// Ordered by first member: the VarRefs, then the Consts, then the
	// And nodes that contain them.
	want := []struct {
		kind string
		refs []expr.Ref
	}{
		{"VarRef", []expr.Ref{1, 4}},
		{"Const", []expr.Ref{2, 5}},
		{"And", []expr.Ref{3, 6}},
	}
	for i, w := range want {
		g := groups[i]
		if g.Kind != w.kind {
			t.Errorf("groups[%d].Kind = %q, want %q", i, g.Kind, w.kind)
		}
		if g.Copies != 2 {
			t.Errorf("groups[%d].Copies = %d, want 2", i, g.Copies)
		}
		if g.Hash == "" {
			t.Errorf("groups[%d].Hash is empty", i)
		}
		if len(g.Refs) != len(w.refs) {
			t.Errorf("groups[%d].Refs = %v, want %v", i, g.Refs, w.refs)
			continue
		}
		for j, r := range w.refs {
			if g.Refs[j] != r {
				t.Errorf("groups[%d].Refs[%d] = %d, want %d", i, j, g.Refs[j], r)
			}
		}
	}
}

func TestDuplicateHashes_SkipsRandomDraws(t *testing.T) {
	s := createTestStore(t)
	u := loadTestUnit(t, randUnitSrc)

	id, err := s.SaveUnit(context.Background(), u)
	if err != nil {
		t.Fatalf("SaveUnit() failed: %v", err)
	}

	groups, err := s.DuplicateHashes(context.Background(), id)
	if err != nil {
		t.Fatalf("DuplicateHashes() failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("identical random draws grouped: %v", groups)
	}
}

func TestDuplicateHashes_UnknownUnit(t *testing.T) {
	s := createTestStore(t)

	groups, err := s.DuplicateHashes(context.Background(), "nope")
	if err != nil {
		t.Fatalf("DuplicateHashes() failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("unknown unit produced groups: %v", groups)
	}
}
