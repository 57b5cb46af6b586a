package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDupesCommandInMemory(t *testing.T) {
	unitPath := writeMasksUnit(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDupesCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{unitPath})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "3 duplicate group(s) in masks")
	assert.Contains(t, output, "Const x4")
	assert.Contains(t, output, "Const x2")
	assert.Contains(t, output, "And x2")
}

func TestDupesCommandInMemoryJSON(t *testing.T) {
	unitPath := writeMasksUnit(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewDupesCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{unitPath})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "masks", data["unit"])

	groups, ok := data["groups"].([]any)
	require.True(t, ok)
	require.Len(t, groups, 3)

	// Groups come back ordered by their first member's ref, so the
	// shared 8'hf3 constant leads.
	first := groups[0].(map[string]any)
	assert.Equal(t, "Const", first["kind"])
	assert.Equal(t, float64(4), first["copies"])
	assert.Equal(t, []any{float64(1), float64(4), float64(7), float64(9)}, first["refs"])

	last := groups[2].(map[string]any)
	assert.Equal(t, "And", last["kind"])
	assert.Equal(t, float64(2), last["copies"])
	assert.Equal(t, float64(3), last["nodes"])
}

func TestDupesCommandNoDupes(t *testing.T) {
	unitPath := writeUnitFile(t, "solo.cue", `
unit: "solo"

expr: {
	only: {const: "8'h1"}
}
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDupesCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{unitPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "no duplicate subtrees in solo")
}

func TestDupesCommandStored(t *testing.T) {
	dbPath := storeMasksUnit(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDupesCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"masks", "--stored", dbPath})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "3 duplicate group(s) in masks")
	assert.Contains(t, output, "And x2")
}

func TestDupesCommandStoredUnknownUnit(t *testing.T) {
	dbPath := storeMasksUnit(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDupesCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"nope", "--stored", dbPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), `unit "nope": not found`)
}

func TestDupesCommandMissingFile(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDupesCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/masks.cue"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
