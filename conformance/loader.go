package conformance

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// TestPath is the directory holding the YAML suites, relative to this package
const TestPath = "testdata"

// LoadedTest represents a test with its source file path
type LoadedTest struct {
	File  string
	Suite *TestSuite
	Test  TestCase
}

// LoadAllTests walks the default suite directory and loads all test cases
func LoadAllTests() ([]LoadedTest, error) {
	return LoadDir(TestPath)
}

// LoadDir walks dir and loads every *.yaml suite beneath it, in path order
func LoadDir(dir string) ([]LoadedTest, error) {
	testDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(testDir); err != nil {
		return nil, fmt.Errorf("could not find conformance test directory %s: %w", dir, err)
	}

	var paths []string
	err = filepath.WalkDir(testDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		// Only process .yaml files
		if d.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var loaded []LoadedTest
	for _, path := range paths {
		// Get relative path for cleaner test names
		relPath, _ := filepath.Rel(testDir, path)

		suite, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", relPath, err)
		}
		for _, test := range suite.Tests {
			loaded = append(loaded, LoadedTest{
				File:  relPath,
				Suite: suite,
				Test:  test,
			})
		}
	}

	return loaded, nil
}

// LoadFile parses a single YAML suite
func LoadFile(path string) (*TestSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSuite(data)
}

// ParseSuite decodes a suite from YAML, rejecting unknown fields
func ParseSuite(data []byte) (*TestSuite, error) {
	var suite TestSuite
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&suite); err != nil {
		return nil, err
	}
	return &suite, nil
}
