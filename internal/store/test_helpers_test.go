package store

import (
	"path/filepath"
	"testing"

	"github.com/jmerdich/verilator/internal/lower"
)

// createTestStore creates a file-backed store under a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// loadTestUnit compiles an inline unit source.
func loadTestUnit(t *testing.T, src string) *lower.Unit {
	t.Helper()
	u, err := lower.LoadString(src)
	if err != nil {
		t.Fatalf("LoadString() failed: %v", err)
	}
	return u
}

// dupUnitSrc holds two structurally identical masks over one variable.
// Roots build in sorted name order, so refs are stable:
//
//	a: VarRef=1 Const=2 And=3
//	b: VarRef=4 Const=5 And=6
const dupUnitSrc = `
unit: "dupes"
var: x: width: 8
expr: {
	a: {op: "And", width: 8, args: [{ref: "x"}, {const: "8'hf"}]}
	b: {op: "And", width: 8, args: [{ref: "x"}, {const: "8'hf"}]}
}
`

// randUnitSrc holds two identical random draws: equal hashes, but
// never duplicate candidates.
const randUnitSrc = `
unit: "seeds"
expr: {
	r1: {op: "Rand", urandom: true}
	r2: {op: "Rand", urandom: true}
}
`
