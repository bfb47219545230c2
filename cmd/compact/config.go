package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds driver settings loaded from a YAML file
type Config struct {
	Defines map[string]float64 `yaml:"defines"`
	Prelude *bool              `yaml:"prelude"` // default true
	Trace   TraceConfig        `yaml:"trace"`
}

// TraceConfig mirrors the -trace and -trace-filter flags
type TraceConfig struct {
	Enabled bool     `yaml:"enabled"`
	Filters []string `yaml:"filters"`
}

// LoadConfig reads a YAML config file. Unknown keys are rejected; an empty file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for name := range cfg.Defines {
		if !isIdentifier(name) {
			return nil, fmt.Errorf("%s: invalid define name %q", path, name)
		}
	}
	return &cfg, nil
}

// UsesPrelude reports whether builtins are installed
func (c *Config) UsesPrelude() bool {
	return c.Prelude == nil || *c.Prelude
}

func (c *Config) mergeDefines(d defineFlags) {
	if len(d) == 0 {
		return
	}
	if c.Defines == nil {
		c.Defines = make(map[string]float64)
	}
	for name, v := range d {
		c.Defines[name] = v
	}
}

// defineFlags collects repeated -D name=number flags
type defineFlags map[string]float64

func (d defineFlags) String() string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + strconv.FormatFloat(d[name], 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (d defineFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected name=number, got %q", s)
	}
	name = strings.TrimSpace(name)
	if !isIdentifier(name) {
		return fmt.Errorf("invalid name %q", name)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("invalid number for %s: %w", name, err)
	}
	d[name] = v
	return nil
}

// isIdentifier matches the lexer's identifier rule
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		letter := c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
		if !letter && (i == 0 || c < '0' || c > '9') {
			return false
		}
	}
	return true
}
