package conformance

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description,omitempty"`
	Prelude     *bool              `yaml:"prelude,omitempty"` // install builtins (default true)
	Defines     map[string]float64 `yaml:"defines,omitempty"` // root bindings for every test
	Tests       []TestCase         `yaml:"tests"`
}

// TestCase represents a single test within a suite
type TestCase struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description,omitempty"`
	Skip        interface{}        `yaml:"skip,omitempty"` // bool or string
	Code        string             `yaml:"code"`
	Defines     map[string]float64 `yaml:"defines,omitempty"`
	Expect      Expectation        `yaml:"expect"`
}

// Expectation defines what result is expected from a test
type Expectation struct {
	Value  interface{} `yaml:"value,omitempty"`  // exact match after YAML -> Value conversion
	Error  string      `yaml:"error,omitempty"`  // E_RANGE, E_OPERANDS, etc.
	Output *string     `yaml:"output,omitempty"` // rendered form, as the driver prints it
	Type   string      `yaml:"type,omitempty"`   // num, str, bool, list, func, none
	Match  string      `yaml:"match,omitempty"`  // regex over the rendered form
	At     *Location   `yaml:"at,omitempty"`     // position an expected error must carry
}

// Location is a line/column pair
type Location struct {
	Line   int `yaml:"line"`
	Column int `yaml:"column"`
}

// IsSkipped returns true if this test should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	if tc.Skip == nil {
		return false, ""
	}

	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
		return false, ""
	case string:
		return true, v
	default:
		return false, ""
	}
}

// HasExpectation reports whether the case asserts anything
func (e Expectation) HasExpectation() bool {
	return e.Value != nil || e.Error != "" || e.Output != nil || e.Type != "" || e.Match != ""
}

// UsesPrelude reports whether the suite wants the builtin prelude installed
func (s TestSuite) UsesPrelude() bool {
	return s.Prelude == nil || *s.Prelude
}
