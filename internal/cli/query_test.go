package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCommandAll(t *testing.T) {
	dbPath := storeMasksUnit(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewQueryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dbPath})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "KIND")
	assert.Contains(t, output, "10 node(s)")
}

func TestQueryCommandKind(t *testing.T) {
	dbPath := storeMasksUnit(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewQueryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dbPath, "--kind", "And"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "3 node(s)")
	assert.NotContains(t, buf.String(), "VarRef")
}

func TestQueryCommandKindJSON(t *testing.T) {
	dbPath := storeMasksUnit(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewQueryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dbPath, "--kind", "And", "--limit", "2"})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), data["count"])

	nodes, ok := data["nodes"].([]any)
	require.True(t, ok)
	require.Len(t, nodes, 2)
	first := nodes[0].(map[string]any)
	assert.Equal(t, "And", first["Kind"])
	assert.Equal(t, "masks", first["Unit"])
	assert.Equal(t, float64(8), first["Width"])
}

func TestQueryCommandFamily(t *testing.T) {
	dbPath := storeMasksUnit(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewQueryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dbPath, "--family", "binary-com-asv"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "3 node(s)")
}

func TestQueryCommandPureTriState(t *testing.T) {
	dbPath := storeMasksUnit(t)

	// Every node in the masks unit is pure, so asking for impure ones
	// must come back empty rather than ignoring the flag.
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewQueryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dbPath, "--pure=false"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "no matching nodes")
}

func TestQueryCommandUnknownKind(t *testing.T) {
	dbPath := storeMasksUnit(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewQueryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dbPath, "--kind", "Bogus"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), `unknown kind "Bogus"`)
}

func TestQueryCommandUnusableDatabase(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewQueryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "E003")
}

func TestQueryCommandUnitFilter(t *testing.T) {
	dbPath := storeMasksUnit(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewQueryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dbPath, "--unit", "other"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "no matching nodes")
}
