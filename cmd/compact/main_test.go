package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		code    int
		stdout  string
		errPart string
	}{
		{"inline", []string{"-e", "1 + 2"}, 0, "3\n", ""},
		{"list", []string{"-e", "1..3"}, 0, "[1, 2, ]\n", ""},
		{"prelude", []string{"-e", "1..10 | odd"}, 0, "[1, 3, 5, 7, 9, ]\n", ""},
		{"no prelude", []string{"-no-prelude", "-e", "true"}, 1, "", "<expr>:1:1: error: Variable true is not defined"},
		{"define", []string{"-D", "n=4", "-D", "m=2", "-e", "n ^ m"}, 0, "16\n", ""},
		{"bad define", []string{"-D", "n", "-e", "1"}, 2, "", "expected name=number"},
		{"eval error", []string{"-e", "2.5..5"}, 1, "", "<expr>:1:1: error: Range must be between two integers"},
		{"parse error", []string{"-e", "1 +"}, 1, "", "<expr>:1:4: error:"},
		{"usage", nil, 2, "", usageLine},
		{"too many files", []string{"a", "b"}, 2, "", usageLine},
		{"missing file", []string{"does-not-exist.cx"}, 1, "", "Failed to read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			if code != tt.code {
				t.Fatalf("exit code = %d, want %d (stderr: %s)", code, tt.code, stderr.String())
			}
			if stdout.String() != tt.stdout {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.stdout)
			}
			if tt.errPart != "" && !strings.Contains(stderr.String(), tt.errPart) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.errPart)
			}
		})
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.cx")
	src := "// drop multiples of three\n(1..10 | \\x -> x % 3 != 0) * 2\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{path}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d (stderr: %s)", code, stderr.String())
	}
	if got := stdout.String(); got != "[2, 4, 8, 10, 14, 16, ]\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRunFileErrorPosition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.cx")
	if err := os.WriteFile(path, []byte("1 +\n  missing\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{path}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	want := path + ":2:3: error: Variable missing is not defined\n"
	if stderr.String() != want {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}
}

func TestRunConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "compact.yaml")
	cfg := "defines:\n  base: 10\nprelude: false\n"
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", path, "-e", "base * 2"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d (stderr: %s)", code, stderr.String())
	}
	if stdout.String() != "20\n" {
		t.Errorf("stdout = %q", stdout.String())
	}

	// The file disables the prelude
	stdout.Reset()
	stderr.Reset()
	if code := run([]string{"-config", path, "-e", "pi"}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}

	// Flags win over the file
	stdout.Reset()
	stderr.Reset()
	if code := run([]string{"-config", path, "-D", "base=1", "-e", "base * 2"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d (stderr: %s)", code, stderr.String())
	}
	if stdout.String() != "2\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunTrace(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-trace", "-trace-filter", "filter", "-e", "1..4 | \\x -> x != 2"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d (stderr: %s)", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "[TRACE] FILTER kept 2 of 3") {
		t.Errorf("stderr = %q, want filter trace", stderr.String())
	}
	if strings.Contains(stderr.String(), "[TRACE] CALL") {
		t.Errorf("call events should be filtered out: %q", stderr.String())
	}

	// Reset the global tracer for other tests
	run([]string{"-e", "1"}, &stdout, &stderr)
}

func TestReplCommand(t *testing.T) {
	var out bytes.Buffer
	if replCommand(&out, ":parse 1+2*3") {
		t.Fatal(":parse should not exit")
	}
	if out.String() != "1 + 2 * 3\n" {
		t.Errorf(":parse output = %q", out.String())
	}

	out.Reset()
	replCommand(&out, ":nope")
	if !strings.Contains(out.String(), "unknown command") {
		t.Errorf("unknown command output = %q", out.String())
	}

	if !replCommand(&out, ":quit") {
		t.Error(":quit should exit")
	}
}

func TestEvalLine(t *testing.T) {
	var out bytes.Buffer
	evalLine(&Config{}, "<repl:1>", "(1..3) * 2", &out)
	evalLine(&Config{}, "<repl:2>", "x", &out)
	want := "[2, 4, ]\n<repl:2>:1:1: error: Variable x is not defined\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestNeedsMore(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"1 +", true},
		{"(1 + 2", true},
		{`\x ->`, true},
		{"1 + 2", false},
		{"1 2", false},
		{")", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := needsMore(tt.src); got != tt.want {
				t.Errorf("needsMore(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}
