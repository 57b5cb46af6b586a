package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario is one YAML-defined contract test: a unit file plus a list
// of steps run against its expression trees.
type Scenario struct {
	// Name uniquely identifies this scenario; goldens key on it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Unit is the path of the CUE unit file, relative to the scenario
	// file unless absolute.
	Unit string `yaml:"unit"`

	// Steps run in order against the loaded unit.
	Steps []Step `yaml:"steps"`
}

// Step is one check. Exactly one directive field (fold, same,
// tree_equal, clone, flags) selects what the step does; the remaining
// fields qualify that directive.
type Step struct {
	// Fold names a root to evaluate. Qualified by exactly one of
	// Expect (folded literal in canonical ascii form), Error (eval
	// error code) or Panics (the evaluation must violate a value
	// contract).
	Fold   string `yaml:"fold,omitempty"`
	Expect string `yaml:"expect,omitempty"`
	Error  string `yaml:"error,omitempty"`
	Panics bool   `yaml:"panics,omitempty"`

	// Same and TreeEqual each name two roots; Want is the expected
	// verdict. Same compares the root nodes only, TreeEqual whole
	// trees.
	Same      []string `yaml:"same,omitempty"`
	TreeEqual []string `yaml:"tree_equal,omitempty"`
	Want      *bool    `yaml:"want,omitempty"`

	// Clone names a root to copy; the step checks the copy is a
	// distinct tree that compares structurally equal.
	Clone string `yaml:"clone,omitempty"`

	// Flags names a root and asserts its contract surface.
	Flags string `yaml:"flags,omitempty"`
	Pure  *bool  `yaml:"pure,omitempty"`
	Width *int   `yaml:"width,omitempty"`
	Clean *bool  `yaml:"clean,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. The unit path is
// resolved relative to the scenario file. Returns an error for
// malformed YAML, unknown fields (typos), or missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if scenario.Unit != "" && !filepath.IsAbs(scenario.Unit) {
		scenario.Unit = filepath.Join(filepath.Dir(path), scenario.Unit)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Unit == "" {
		return fmt.Errorf("unit is required")
	}
	if _, err := os.Stat(s.Unit); os.IsNotExist(err) {
		return fmt.Errorf("unit file not found: %s", s.Unit)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i := range s.Steps {
		if err := validateStep(i, &s.Steps[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, st *Step) error {
	directives := 0
	if st.Fold != "" {
		directives++
	}
	if len(st.Same) > 0 {
		directives++
	}
	if len(st.TreeEqual) > 0 {
		directives++
	}
	if st.Clone != "" {
		directives++
	}
	if st.Flags != "" {
		directives++
	}
	if directives != 1 {
		return fmt.Errorf("steps[%d]: want exactly one of fold, same, tree_equal, clone or flags", index)
	}

	switch {
	case st.Fold != "":
		outcomes := 0
		if st.Expect != "" {
			outcomes++
		}
		if st.Error != "" {
			outcomes++
		}
		if st.Panics {
			outcomes++
		}
		if outcomes != 1 {
			return fmt.Errorf("steps[%d]: fold wants exactly one of expect, error or panics", index)
		}
		if st.Error != "" && !knownEvalCode(st.Error) {
			return fmt.Errorf("steps[%d]: unknown eval error code %q", index, st.Error)
		}
	case len(st.Same) > 0:
		if len(st.Same) != 2 {
			return fmt.Errorf("steps[%d]: same wants exactly two root names", index)
		}
		if st.Want == nil {
			return fmt.Errorf("steps[%d]: same requires want", index)
		}
	case len(st.TreeEqual) > 0:
		if len(st.TreeEqual) != 2 {
			return fmt.Errorf("steps[%d]: tree_equal wants exactly two root names", index)
		}
		if st.Want == nil {
			return fmt.Errorf("steps[%d]: tree_equal requires want", index)
		}
	case st.Flags != "":
		if st.Pure == nil && st.Width == nil && st.Clean == nil {
			return fmt.Errorf("steps[%d]: flags requires at least one of pure, width or clean", index)
		}
	}
	return nil
}

// knownEvalCode guards against typos in expected error codes. The
// literal list keeps scenario validation free of evaluation imports.
func knownEvalCode(code string) bool {
	switch code {
	case "NOT_CONSTANT", "OPAQUE", "ABSENT_OPERAND":
		return true
	}
	return false
}

// stepDesc is the one-line label a step reports under.
func stepDesc(st *Step) string {
	switch {
	case st.Fold != "":
		return "fold " + st.Fold
	case len(st.Same) == 2:
		return fmt.Sprintf("same %s %s", st.Same[0], st.Same[1])
	case len(st.TreeEqual) == 2:
		return fmt.Sprintf("tree_equal %s %s", st.TreeEqual[0], st.TreeEqual[1])
	case st.Clone != "":
		return "clone " + st.Clone
	case st.Flags != "":
		return "flags " + st.Flags
	}
	return "unknown step"
}
