package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/jmerdich/verilator/internal/lower"
)

// newGoldie builds the goldie instance every golden assertion shares:
// fixtures live under testdata/golden with a .golden suffix.
func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// AssertDumpGolden compares the unit's tree dump against
// testdata/golden/<name>.golden. Regenerate with go test -update.
func AssertDumpGolden(t *testing.T, name string, u *lower.Unit) {
	t.Helper()
	newGoldie(t).Assert(t, name, []byte(u.DumpString()))
}

// RunWithGolden executes a scenario and compares the result against a
// golden file keyed on the scenario name. The result marshals with
// fixed field order, so the snapshot is deterministic.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	newGoldie(t).Assert(t, scenario.Name, data)
	return nil
}
