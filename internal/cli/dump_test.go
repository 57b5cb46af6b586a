package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmerdich/verilator/internal/store"
)

func TestDumpCommandText(t *testing.T) {
	unitPath := writeMasksUnit(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDumpCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{unitPath})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "both:\nAnd (logic [7:0])")
	assert.Contains(t, output, "  Const 8'hf3 (logic [7:0])")
	assert.Contains(t, output, `  VarRef "x" RD (logic [7:0])`)
}

func TestDumpCommandJSON(t *testing.T) {
	unitPath := writeMasksUnit(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewDumpCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{unitPath})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "masks", data["unit"])
	assert.Equal(t, float64(10), data["nodes"])

	roots, ok := data["roots"].([]any)
	require.True(t, ok)
	assert.Len(t, roots, 4)
	first := roots[0].(map[string]any)
	assert.Equal(t, "both", first["name"])
	assert.Contains(t, first["tree"], "And (logic [7:0])")

	stats, ok := first["stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), stats["nodes"])
	kinds := stats["kinds"].(map[string]any)
	assert.Equal(t, float64(2), kinds["Const"])
	assert.Equal(t, float64(1), kinds["And"])
}

func TestDumpCommandStore(t *testing.T) {
	unitPath := writeMasksUnit(t)
	dbPath := filepath.Join(t.TempDir(), "exprs.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDumpCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{unitPath, "--store", dbPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "saved as ")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	info, err := st.UnitByName(context.Background(), "masks")
	require.NoError(t, err)
	assert.Equal(t, 10, info.Nodes)
}

func TestDumpCommandMissingFile(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDumpCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/masks.cue"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "L001")
}

func TestDumpCommandUnbuildableUnit(t *testing.T) {
	unitPath := writeUnitFile(t, "empty.cue", `unit: "empty"`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDumpCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{unitPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "L004")
}

func TestDumpCommandUnusableDatabase(t *testing.T) {
	unitPath := writeMasksUnit(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDumpCommand(rootOpts)
	cmd.SetOut(buf)
	// A directory is not a database file.
	cmd.SetArgs([]string{unitPath, "--store", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "E003")
}

func TestDumpHelp(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewDumpCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	output := buf.String()
	assert.Contains(t, output, "--store")
	assert.Contains(t, output, "Exit codes")
}
