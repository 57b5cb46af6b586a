package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmerdich/verilator/internal/lower"
	"github.com/jmerdich/verilator/internal/store"
)

// masksUnitCUE declares four roots over ten nodes: two identical And
// trees, a bare constant and a reference-blocked And.
const masksUnitCUE = `
unit: "masks"

var: x: {width: 8}

expr: {
	both:   {op: "And", width: 8, args: [{const: "8'hf3"}, {const: "8'h2f"}]}
	both2:  {op: "And", width: 8, args: [{const: "8'hf3"}, {const: "8'h2f"}]}
	lhs:    {const: "8'hf3"}
	masked: {op: "And", width: 8, args: [{ref: "x"}, {const: "8'hf3"}]}
}
`

// writeMasksUnit writes the masks unit into a temp dir and returns its
// path.
func writeMasksUnit(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "masks.cue")
	require.NoError(t, os.WriteFile(path, []byte(masksUnitCUE), 0644))
	return path
}

// writeUnitFile writes arbitrary CUE source as a unit file.
func writeUnitFile(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

// storeMasksUnit saves the masks unit into a fresh database and returns
// the database path.
func storeMasksUnit(t *testing.T) string {
	t.Helper()
	u, err := lower.LoadFile(writeMasksUnit(t))
	require.NoError(t, err)

	dbPath := filepath.Join(t.TempDir(), "exprs.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	_, err = st.SaveUnit(context.Background(), u)
	require.NoError(t, err)
	return dbPath
}
