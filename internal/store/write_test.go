package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jmerdich/verilator/internal/expr"
)

func TestSaveUnit_RowCounts(t *testing.T) {
	s := createTestStore(t)
	u := loadTestUnit(t, dupUnitSrc)

	id, err := s.SaveUnit(context.Background(), u)
	if err != nil {
		t.Fatalf("SaveUnit() failed: %v", err)
	}
	if id != u.Arena.ID().String() {
		t.Errorf("SaveUnit() id = %q, want arena id %q", id, u.Arena.ID())
	}

	counts := map[string]int{
		"units": 1,
		"nodes": 6,
		"edges": 4, // two And nodes, two children each; leaves have none
		"roots": 2,
	}
	for table, want := range counts {
		var got int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&got); err != nil {
			t.Fatalf("count %s failed: %v", table, err)
		}
		if got != want {
			t.Errorf("%s rows = %d, want %d", table, got, want)
		}
	}
}

func TestSaveUnit_Idempotent(t *testing.T) {
	s := createTestStore(t)
	u := loadTestUnit(t, dupUnitSrc)

	id1, err := s.SaveUnit(context.Background(), u)
	if err != nil {
		t.Fatalf("first SaveUnit() failed: %v", err)
	}
	id2, err := s.SaveUnit(context.Background(), u)
	if err != nil {
		t.Fatalf("second SaveUnit() failed: %v", err)
	}
	if id1 != id2 {
		t.Errorf("ids differ across saves: %q vs %q", id1, id2)
	}

	var nodes int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM nodes").Scan(&nodes); err != nil {
		t.Fatalf("count nodes failed: %v", err)
	}
	if nodes != 6 {
		t.Errorf("nodes rows after double save = %d, want 6", nodes)
	}
}

func TestSaveUnit_NodeColumns(t *testing.T) {
	s := createTestStore(t)
	u := loadTestUnit(t, dupUnitSrc)

	id, err := s.SaveUnit(context.Background(), u)
	if err != nil {
		t.Fatalf("SaveUnit() failed: %v", err)
	}

	var kind, family, flavor, hash string
	var width, signed, pure, outputter, mergeable int
	var state sql.NullString
	err = s.db.QueryRow(`
		SELECT kind, family, width, flavor, signed, pure, outputter, mergeable, hash, state
		FROM nodes WHERE unit_id = ? AND ref = 3
	`, id).Scan(&kind, &family, &width, &flavor, &signed, &pure, &outputter, &mergeable, &hash, &state)
	if err != nil {
		t.Fatalf("select node row failed: %v", err)
	}

	if kind != "And" {
		t.Errorf("kind = %q, want And", kind)
	}
	if family != "binary-com-asv" {
		t.Errorf("family = %q, want binary-com-asv", family)
	}
	if width != 8 {
		t.Errorf("width = %d, want 8", width)
	}
	if flavor != "logic" {
		t.Errorf("flavor = %q, want logic", flavor)
	}
	if signed != 0 || pure != 1 || outputter != 0 || mergeable != 1 {
		t.Errorf("flags = signed %d pure %d outputter %d mergeable %d, want 0 1 0 1",
			signed, pure, outputter, mergeable)
	}
	if want := expr.NewHasher(u.Arena).Hash(3); hash != want {
		t.Errorf("hash = %q, want %q", hash, want)
	}
	if state.Valid {
		t.Errorf("And node state = %q, want NULL", state.String)
	}
}

func TestSaveUnit_StateColumn(t *testing.T) {
	s := createTestStore(t)
	u := loadTestUnit(t, dupUnitSrc)

	id, err := s.SaveUnit(context.Background(), u)
	if err != nil {
		t.Fatalf("SaveUnit() failed: %v", err)
	}

	stateOf := func(ref int64) string {
		var state string
		err := s.db.QueryRow(
			"SELECT state FROM nodes WHERE unit_id = ? AND ref = ?", id, ref,
		).Scan(&state)
		if err != nil {
			t.Fatalf("select state for ref %d failed: %v", ref, err)
		}
		return state
	}

	if got := stateOf(1); got != `{"access":"RD","name":"x"}` {
		t.Errorf("VarRef state = %s", got)
	}
	if got := stateOf(2); got != `{"num":"8'hf"}` {
		t.Errorf("Const state = %s", got)
	}
}

func TestSaveUnit_RootsAndEdges(t *testing.T) {
	s := createTestStore(t)
	u := loadTestUnit(t, dupUnitSrc)

	id, err := s.SaveUnit(context.Background(), u)
	if err != nil {
		t.Fatalf("SaveUnit() failed: %v", err)
	}

	roots := map[string]int64{}
	rows, err := s.db.Query("SELECT name, ref FROM roots WHERE unit_id = ?", id)
	if err != nil {
		t.Fatalf("select roots failed: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var ref int64
		if err := rows.Scan(&name, &ref); err != nil {
			t.Fatalf("scan root failed: %v", err)
		}
		roots[name] = ref
	}
	if roots["a"] != 3 || roots["b"] != 6 {
		t.Errorf("roots = %v, want a=3 b=6", roots)
	}

	var child int64
	err = s.db.QueryRow(
		"SELECT child FROM edges WHERE unit_id = ? AND parent = 3 AND slot = 0", id,
	).Scan(&child)
	if err != nil {
		t.Fatalf("select edge failed: %v", err)
	}
	if child != 1 {
		t.Errorf("And slot 0 child = %d, want 1", child)
	}
	err = s.db.QueryRow(
		"SELECT child FROM edges WHERE unit_id = ? AND parent = 3 AND slot = 1", id,
	).Scan(&child)
	if err != nil {
		t.Fatalf("select edge failed: %v", err)
	}
	if child != 2 {
		t.Errorf("And slot 1 child = %d, want 2", child)
	}
}

func TestSaveUnit_RandomDrawsNotMergeable(t *testing.T) {
	s := createTestStore(t)
	u := loadTestUnit(t, randUnitSrc)

	id, err := s.SaveUnit(context.Background(), u)
	if err != nil {
		t.Fatalf("SaveUnit() failed: %v", err)
	}

	rows, err := s.db.Query("SELECT pure, mergeable FROM nodes WHERE unit_id = ?", id)
	if err != nil {
		t.Fatalf("select nodes failed: %v", err)
	}
	defer rows.Close()
	n := 0
	for rows.Next() {
		var pure, mergeable int
		if err := rows.Scan(&pure, &mergeable); err != nil {
			t.Fatalf("scan node failed: %v", err)
		}
		// Random draws are nominally pure but never merge candidates.
		if pure != 1 {
			t.Errorf("Rand pure = %d, want 1", pure)
		}
		if mergeable != 0 {
			t.Errorf("Rand mergeable = %d, want 0", mergeable)
		}
		n++
	}
	if n != 2 {
		t.Errorf("stored %d Rand nodes, want 2", n)
	}
}

func TestSaveUnit_ImpureSubtreePoisonsParent(t *testing.T) {
	s := createTestStore(t)
	u := loadTestUnit(t, `
unit: "poison"
var: x: width: 8
expr: top: {op: "Add", width: 8, args: [
	{ref: "x"},
	{op: "Rand", urandom: true},
]}
`)

	id, err := s.SaveUnit(context.Background(), u)
	if err != nil {
		t.Fatalf("SaveUnit() failed: %v", err)
	}

	// Roots build depth-first: x=1, Rand=2, Add=3.
	var mergeable int
	err = s.db.QueryRow(
		"SELECT mergeable FROM nodes WHERE unit_id = ? AND ref = 3", id,
	).Scan(&mergeable)
	if err != nil {
		t.Fatalf("select Add row failed: %v", err)
	}
	if mergeable != 0 {
		t.Errorf("Add over a random draw mergeable = %d, want 0", mergeable)
	}

	err = s.db.QueryRow(
		"SELECT mergeable FROM nodes WHERE unit_id = ? AND ref = 1", id,
	).Scan(&mergeable)
	if err != nil {
		t.Fatalf("select VarRef row failed: %v", err)
	}
	if mergeable != 1 {
		t.Errorf("VarRef below the draw mergeable = %d, want 1", mergeable)
	}
}

func TestSaveUnit_TwoUnitsCoexist(t *testing.T) {
	s := createTestStore(t)

	if _, err := s.SaveUnit(context.Background(), loadTestUnit(t, dupUnitSrc)); err != nil {
		t.Fatalf("save first unit failed: %v", err)
	}
	if _, err := s.SaveUnit(context.Background(), loadTestUnit(t, randUnitSrc)); err != nil {
		t.Fatalf("save second unit failed: %v", err)
	}

	var units, nodes int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM units").Scan(&units); err != nil {
		t.Fatalf("count units failed: %v", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM nodes").Scan(&nodes); err != nil {
		t.Fatalf("count nodes failed: %v", err)
	}
	if units != 2 {
		t.Errorf("units = %d, want 2", units)
	}
	if nodes != 8 {
		t.Errorf("nodes = %d, want 8", nodes)
	}
}
