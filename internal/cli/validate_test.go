package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommandValid(t *testing.T) {
	unitPath := writeMasksUnit(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{unitPath})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, `✓ `+unitPath)
	assert.Contains(t, output, `unit "masks", 4 roots`)
	assert.Contains(t, output, "✓ All 1 file(s) loaded")
}

func TestValidateCommandUnknownOp(t *testing.T) {
	unitPath := writeUnitFile(t, "bad.cue", `
unit: "bad"

expr: {
	x: {op: "Nonsense", args: [{const: "8'h1"}]}
}
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{unitPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	output := buf.String()
	assert.Contains(t, output, "✗ "+unitPath)
	assert.Contains(t, output, "L007")
	assert.Contains(t, output, "1 of 1 file(s) did not load")
}

func TestValidateCommandMissingFile(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/unit.cue"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "L001")
}

func TestValidateCommandMixed(t *testing.T) {
	goodPath := writeMasksUnit(t)
	badPath := writeUnitFile(t, "empty.cue", `unit: "empty"`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{goodPath, badPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	output := buf.String()
	assert.Contains(t, output, "✓ "+goodPath)
	assert.Contains(t, output, "✗ "+badPath)
	assert.Contains(t, output, "1 of 2 file(s) did not load")
}

func TestValidateCommandValidJSON(t *testing.T) {
	unitPath := writeMasksUnit(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{unitPath})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["valid"])

	files, ok := data["files"].([]any)
	require.True(t, ok)
	require.Len(t, files, 1)
	first := files[0].(map[string]any)
	assert.Equal(t, "masks", first["unit"])
	assert.Equal(t, float64(4), first["roots"])
}

func TestValidateCommandInvalidJSON(t *testing.T) {
	badPath := writeUnitFile(t, "empty.cue", `unit: "empty"`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{badPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "1 file(s) did not load", resp.Error.Message)
	assert.NotNil(t, resp.Data, "per-file outcomes ride along with the error")
}
