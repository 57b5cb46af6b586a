package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeUnit writes a unit file under dir and returns its path.
func writeUnit(t *testing.T, dir, src string) string {
	t.Helper()
	path := filepath.Join(dir, "unit.cue")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

// masksUnitSrc covers every step kind: a foldable mask, a structural
// twin, a bare constant, and a tree blocked on a variable.
const masksUnitSrc = `
unit: "masks"
var: x: {width: 8}
expr: {
	both:   {op: "And", width: 8, args: [{const: "8'hf3"}, {const: "8'h2f"}]}
	both2:  {op: "And", width: 8, args: [{const: "8'hf3"}, {const: "8'h2f"}]}
	lhs:    {const: "8'hf3"}
	masked: {op: "And", width: 8, args: [{ref: "x"}, {const: "8'hf3"}]}
}
`

// doublesUnitSrc adds reals over logic operands, which violates the
// value contract the moment the fold asks for a double payload.
const doublesUnitSrc = `
unit: "doubles"
expr: {
	bad: {op: "AddD", args: [{const: "8'h3"}, {const: "8'h4"}]}
}
`

func runSteps(t *testing.T, unitSrc string, steps ...Step) *Result {
	t.Helper()
	scenario := &Scenario{
		Name:        "test",
		Description: "inline scenario",
		Unit:        writeUnit(t, t.TempDir(), unitSrc),
		Steps:       steps,
	}
	result, err := Run(scenario)
	require.NoError(t, err)
	return result
}

func TestRun_FoldExpect(t *testing.T) {
	result := runSteps(t, masksUnitSrc, Step{Fold: "both", Expect: "8'h23"})

	assert.True(t, result.Pass)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "fold both", result.Steps[0].Desc)
	assert.True(t, result.Steps[0].Pass)
	assert.Equal(t, "8'h23", result.Steps[0].Detail)
}

func TestRun_FoldExpectMismatch(t *testing.T) {
	result := runSteps(t, masksUnitSrc, Step{Fold: "both", Expect: "8'hff"})

	assert.False(t, result.Pass)
	require.Len(t, result.Steps, 1)
	assert.False(t, result.Steps[0].Pass)
	assert.Equal(t, "folded to 8'h23, expected 8'hff", result.Steps[0].Detail)
}

func TestRun_FoldError(t *testing.T) {
	result := runSteps(t, masksUnitSrc, Step{Fold: "masked", Error: "NOT_CONSTANT"})

	assert.True(t, result.Pass)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "fold masked", result.Steps[0].Desc)
	assert.Empty(t, result.Steps[0].Detail)
}

func TestRun_FoldErrorWrongCode(t *testing.T) {
	result := runSteps(t, masksUnitSrc, Step{Fold: "masked", Error: "OPAQUE"})

	assert.False(t, result.Pass)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "error code NOT_CONSTANT, expected OPAQUE", result.Steps[0].Detail)
}

func TestRun_FoldErrorButFolded(t *testing.T) {
	result := runSteps(t, masksUnitSrc, Step{Fold: "both", Error: "NOT_CONSTANT"})

	assert.False(t, result.Pass)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "folded to 8'h23, expected error NOT_CONSTANT", result.Steps[0].Detail)
}

func TestRun_FoldPanics(t *testing.T) {
	result := runSteps(t, doublesUnitSrc, Step{Fold: "bad", Panics: true})

	assert.True(t, result.Pass)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "fold bad", result.Steps[0].Desc)
	assert.Equal(t, "num: Double on 8'h3", result.Steps[0].Detail)
}

func TestRun_FoldUnexpectedPanic(t *testing.T) {
	result := runSteps(t, doublesUnitSrc, Step{Fold: "bad", Expect: "7"})

	assert.False(t, result.Pass)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "evaluation panicked: num: Double on 8'h3", result.Steps[0].Detail)
}

func TestRun_FoldDidNotPanic(t *testing.T) {
	result := runSteps(t, masksUnitSrc, Step{Fold: "both", Panics: true})

	assert.False(t, result.Pass)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "evaluation did not panic", result.Steps[0].Detail)
}

func TestRun_Same(t *testing.T) {
	tr, fa := true, false
	result := runSteps(t, masksUnitSrc,
		Step{Same: []string{"both", "both2"}, Want: &tr},
		Step{Same: []string{"both", "lhs"}, Want: &fa},
	)

	assert.True(t, result.Pass)
	require.Len(t, result.Steps, 2)
	assert.Equal(t, "same both both2", result.Steps[0].Desc)
	assert.Equal(t, "same both lhs", result.Steps[1].Desc)
}

func TestRun_SameVerdictMismatch(t *testing.T) {
	fa := false
	result := runSteps(t, masksUnitSrc, Step{Same: []string{"both", "both2"}, Want: &fa})

	assert.False(t, result.Pass)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "got true, expected false", result.Steps[0].Detail)
}

func TestRun_TreeEqual(t *testing.T) {
	tr, fa := true, false
	result := runSteps(t, masksUnitSrc,
		Step{TreeEqual: []string{"both", "both2"}, Want: &tr},
		Step{TreeEqual: []string{"both", "masked"}, Want: &fa},
	)

	assert.True(t, result.Pass)
	require.Len(t, result.Steps, 2)
	assert.Equal(t, "tree_equal both both2", result.Steps[0].Desc)
	assert.Equal(t, "tree_equal both masked", result.Steps[1].Desc)
}

func TestRun_Clone(t *testing.T) {
	result := runSteps(t, masksUnitSrc, Step{Clone: "both"})

	assert.True(t, result.Pass)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "clone both", result.Steps[0].Desc)
	assert.Empty(t, result.Steps[0].Detail)
}

func TestRun_Flags(t *testing.T) {
	tr := true
	w := 8
	result := runSteps(t, masksUnitSrc,
		Step{Flags: "both", Pure: &tr, Width: &w},
		Step{Flags: "lhs", Clean: &tr},
	)

	assert.True(t, result.Pass)
	require.Len(t, result.Steps, 2)
	assert.Equal(t, "flags both", result.Steps[0].Desc)
	assert.Equal(t, "flags lhs", result.Steps[1].Desc)
}

func TestRun_FlagsMismatchesAccumulate(t *testing.T) {
	fa := false
	w := 16
	result := runSteps(t, masksUnitSrc, Step{Flags: "both", Pure: &fa, Width: &w})

	assert.False(t, result.Pass)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "pure = true, expected false; width = 8, expected 16", result.Steps[0].Detail)
}

func TestRun_FlagsCleanNotDefined(t *testing.T) {
	// And propagates whatever cleanliness its inputs have, so asking is
	// a scenario bug, not a fixable verdict.
	tr := true
	result := runSteps(t, masksUnitSrc, Step{Flags: "both", Clean: &tr})

	assert.False(t, result.Pass)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "And does not define clean output", result.Steps[0].Detail)
}

func TestRun_UnknownRoot(t *testing.T) {
	result := runSteps(t, masksUnitSrc, Step{Fold: "zz", Expect: "8'h0"})

	assert.False(t, result.Pass)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, `unit has no expression "zz"`, result.Steps[0].Detail)
}

func TestRun_FailingStepDoesNotStopLaterSteps(t *testing.T) {
	result := runSteps(t, masksUnitSrc,
		Step{Fold: "both", Expect: "8'hff"},
		Step{Clone: "both"},
	)

	assert.False(t, result.Pass)
	require.Len(t, result.Steps, 2)
	assert.False(t, result.Steps[0].Pass)
	assert.True(t, result.Steps[1].Pass)
}

func TestRun_UnloadableUnit(t *testing.T) {
	scenario := &Scenario{
		Name:        "broken",
		Description: "unit file missing",
		Unit:        "/nonexistent/unit.cue",
		Steps:       []Step{{Clone: "both"}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario broken")
}

func TestRunFiles_Report(t *testing.T) {
	dir := t.TempDir()
	unitPath := writeUnit(t, dir, masksUnitSrc)

	first := filepath.Join(dir, "first.yaml")
	require.NoError(t, os.WriteFile(first, []byte(`
name: first
description: "Folds a mask"
unit: `+unitPath+`
steps:
  - fold: both
    expect: "8'h23"
`), 0644))

	second := filepath.Join(dir, "second.yaml")
	require.NoError(t, os.WriteFile(second, []byte(`
name: second
description: "Clones a mask"
unit: `+unitPath+`
steps:
  - clone: both
`), 0644))

	report, err := RunFiles(first, second)
	require.NoError(t, err)

	assert.True(t, report.Pass)
	require.Len(t, report.Scenarios, 2)
	assert.Equal(t, "first", report.Scenarios[0].Scenario)
	assert.Equal(t, "second", report.Scenarios[1].Scenario)
}

func TestRunFiles_FailingScenarioFailsReport(t *testing.T) {
	dir := t.TempDir()
	unitPath := writeUnit(t, dir, masksUnitSrc)

	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: bad
description: "Expects the wrong fold"
unit: `+unitPath+`
steps:
  - fold: both
    expect: "8'hff"
`), 0644))

	report, err := RunFiles(path)
	require.NoError(t, err)

	assert.False(t, report.Pass)
	require.Len(t, report.Scenarios, 1)
	assert.False(t, report.Scenarios[0].Pass)
}

func TestRunFiles_InvalidScenarioFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: only\n"), 0644))

	_, err := RunFiles(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description is required")
}

func TestResult_Accumulation(t *testing.T) {
	result := NewResult("acc")
	assert.True(t, result.Pass)

	result.AddStep("fold a", true, "8'h1")
	assert.True(t, result.Pass)

	result.AddStep("fold b", false, "folded to 8'h2, expected 8'h3")
	assert.False(t, result.Pass)

	result.AddStep("clone a", true, "")
	assert.False(t, result.Pass, "a later pass must not clear the failure")
	assert.Len(t, result.Steps, 3)
}

func TestReport_Accumulation(t *testing.T) {
	report := NewReport()
	assert.True(t, report.Pass)

	ok := NewResult("ok")
	report.Add(ok)
	assert.True(t, report.Pass)

	bad := NewResult("bad")
	bad.AddStep("fold x", false, "boom")
	report.Add(bad)
	assert.False(t, report.Pass)
	assert.Len(t, report.Scenarios, 2)
}
