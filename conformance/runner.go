package conformance

import (
	"compact/builtins"
	"compact/diag"
	"compact/eval"
	"compact/parser"
	"compact/types"
	"fmt"
	"math"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Runner executes conformance tests.
// Every case runs against its own root environment, so a Runner is safe for concurrent use.
type Runner struct {
	registry *builtins.Registry
}

// NewRunner creates a new test runner with the standard prelude
func NewRunner() *Runner {
	return &Runner{registry: builtins.NewRegistry()}
}

// rootFor builds the root environment for one test case
func (r *Runner) rootFor(test LoadedTest) (*types.Environment, error) {
	env := types.NewEnvironment()
	if test.Suite.UsesPrelude() {
		if err := r.registry.Install(env); err != nil {
			return nil, err
		}
	}
	for name, v := range test.Suite.Defines {
		env.Define(name, types.NewNumber(v))
	}
	for name, v := range test.Test.Defines {
		env.Define(name, types.NewNumber(v))
	}
	return env, nil
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	// Check if test should be skipped
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: reason,
		}
	}

	if test.Test.Code == "" {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: "no code",
		}
	}

	env, err := r.rootFor(test)
	if err != nil {
		return TestResult{
			Test:  test,
			Error: fmt.Errorf("setup failed: %w", err),
		}
	}

	var val types.Value
	expr, err := parser.Parse(test.File, test.Test.Code)
	if err == nil {
		val, err = eval.NewEvaluatorWithEnv(env).Run(expr)
	}

	passed, checkErr := r.checkExpectation(test.Test, val, err)
	return TestResult{
		Test:   test,
		Passed: passed,
		Error:  checkErr,
	}
}

// RunAll executes all loaded tests. Suites run concurrently; results keep input order.
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))

	byFile := make(map[string][]int)
	var order []string
	for i, test := range tests {
		if _, ok := byFile[test.File]; !ok {
			order = append(order, test.File)
		}
		byFile[test.File] = append(byFile[test.File], i)
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, file := range order {
		indexes := byFile[file]
		g.Go(func() error {
			for _, i := range indexes {
				results[i] = r.Run(tests[i])
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail; failures are recorded per result

	return results
}

// SummaryStats computes statistics from test results
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats generates statistics from test results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		if r.Skipped {
			stats.Skipped++
		} else if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// checkExpectation checks if the outcome matches the expected one
func (r *Runner) checkExpectation(test TestCase, val types.Value, evalErr error) (bool, error) {
	expect := test.Expect

	// Check for expected error
	if expect.Error != "" {
		expectedErr, ok := types.ErrorFromString(strings.ToUpper(expect.Error))
		if !ok {
			return false, fmt.Errorf("unknown error code: %s", expect.Error)
		}

		if evalErr == nil {
			return false, fmt.Errorf("expected error %s, got value: %v", expect.Error, val)
		}

		code, _ := diag.CodeOf(evalErr)
		if code != expectedErr {
			return false, fmt.Errorf("expected error %s, got %s (%v)", expectedErr, code, evalErr)
		}

		if expect.At != nil {
			pos, _ := diag.PositionOf(evalErr)
			if pos.Line != expect.At.Line || pos.Column != expect.At.Column {
				return false, fmt.Errorf("expected error at %d:%d, got %d:%d",
					expect.At.Line, expect.At.Column, pos.Line, pos.Column)
			}
		}

		return true, nil
	}

	// Check for normal result
	if evalErr != nil {
		return false, fmt.Errorf("unexpected error: %v", evalErr)
	}

	if !expect.HasExpectation() {
		return false, fmt.Errorf("no expectation specified")
	}

	if expect.Value != nil {
		expectedVal, err := convertYAMLValue(expect.Value)
		if err != nil {
			return false, fmt.Errorf("failed to convert expected value: %w", err)
		}
		if !val.Equal(expectedVal) {
			return false, fmt.Errorf("expected %v, got %v", expectedVal, val)
		}
	}

	if expect.Output != nil && val.String() != *expect.Output {
		return false, fmt.Errorf("expected output %q, got %q", *expect.Output, val.String())
	}

	if expect.Type != "" {
		expectedType, ok := types.TypeFromString(expect.Type)
		if !ok {
			return false, fmt.Errorf("unknown type: %s", expect.Type)
		}
		if val.Type() != expectedType {
			return false, fmt.Errorf("expected type %s, got %s", expectedType, val.Type())
		}
	}

	if expect.Match != "" {
		re, err := regexp.Compile(expect.Match)
		if err != nil {
			return false, fmt.Errorf("bad match pattern: %w", err)
		}
		if !re.MatchString(val.String()) {
			return false, fmt.Errorf("output %q does not match %s", val.String(), expect.Match)
		}
	}

	return true, nil
}

// convertYAMLValue converts a decoded YAML value to a runtime Value
func convertYAMLValue(v interface{}) (types.Value, error) {
	switch val := v.(type) {
	case nil:
		return types.NewNone(), nil
	case int:
		return types.NewNumber(float64(val)), nil
	case int64:
		return types.NewNumber(float64(val)), nil
	case uint64:
		return types.NewNumber(float64(val)), nil
	case float64:
		return types.NewNumber(val), nil
	case string:
		switch val {
		case ".inf", "inf":
			return types.NewNumber(math.Inf(1)), nil
		case "-.inf", "-inf":
			return types.NewNumber(math.Inf(-1)), nil
		}
		return types.NewStr(val), nil
	case bool:
		return types.NewBool(val), nil
	case []interface{}:
		elements := make([]types.Value, len(val))
		for i, elem := range val {
			v, err := convertYAMLValue(elem)
			if err != nil {
				return nil, err
			}
			elements[i] = v
		}
		return types.NewList(elements), nil
	default:
		return nil, fmt.Errorf("unsupported YAML type: %T", v)
	}
}
