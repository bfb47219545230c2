package main

import (
	"compact/builtins"
	"compact/diag"
	"compact/eval"
	"compact/parser"
	"compact/trace"
	"compact/types"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

const usageLine = "usage: compact [flags] <file>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the whole driver. It returns the process exit status:
// 0 on success, 1 when reading, parsing or evaluation fails, 2 on bad usage.
func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "compact: ", 0)

	fs := flag.NewFlagSet("compact", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		fs.PrintDefaults()
	}

	defines := defineFlags{}
	exprFlag := fs.String("e", "", "Evaluate an inline expression instead of a file")
	replFlag := fs.Bool("repl", false, "Start an interactive session")
	configPath := fs.String("config", "", "YAML configuration file")
	noPrelude := fs.Bool("no-prelude", false, "Do not install builtin constants and predicates")
	fs.Var(defines, "D", "Predefine a numeric binding, name=number (repeatable)")

	// Trace flags
	traceEnabled := fs.Bool("trace", false, "Enable execution tracing")
	traceFilter := fs.String("trace-filter", "", "Trace filter pattern (glob over call, return, error, broadcast, filter)")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg := &Config{}
	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		if err != nil {
			logger.Printf("Failed to load config: %v", err)
			return 1
		}
		cfg = loaded
	}

	// Flags override the file
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["no-prelude"] {
		prelude := !*noPrelude
		cfg.Prelude = &prelude
	}
	if set["trace"] {
		cfg.Trace.Enabled = *traceEnabled
	}
	if set["trace-filter"] {
		cfg.Trace.Filters = splitFilters(*traceFilter)
	}
	cfg.mergeDefines(defines)

	trace.Init(cfg.Trace.Enabled, cfg.Trace.Filters, stderr)
	if cfg.Trace.Enabled {
		logger.Printf("Tracing enabled (filters: %v)", cfg.Trace.Filters)
	}

	switch {
	case *replFlag:
		if err := runREPL(cfg, stdout); err != nil {
			logger.Printf("REPL error: %v", err)
			return 1
		}
		return 0

	case set["e"]:
		return evalSource(cfg, "<expr>", *exprFlag, stdout, stderr)

	case fs.NArg() == 1:
		path := fs.Arg(0)
		src, err := os.ReadFile(path)
		if err != nil {
			logger.Printf("Failed to read %s: %v", path, err)
			return 1
		}
		return evalSource(cfg, path, string(src), stdout, stderr)

	default:
		fmt.Fprintln(stderr, usageLine)
		return 2
	}
}

// evalSource parses and evaluates one program and prints its value
func evalSource(cfg *Config, file, src string, stdout, stderr io.Writer) int {
	expr, err := parser.Parse(file, src)
	if err != nil {
		diag.Report(stderr, err)
		return 1
	}

	env, err := newRoot(cfg)
	if err != nil {
		diag.Report(stderr, err)
		return 1
	}

	val, err := eval.NewEvaluatorWithEnv(env).Run(expr)
	if err != nil {
		diag.Report(stderr, err)
		return 1
	}

	fmt.Fprintln(stdout, val.String())
	return 0
}

// newRoot builds the root environment a program runs in
func newRoot(cfg *Config) (*types.Environment, error) {
	env := types.NewEnvironment()
	if cfg.UsesPrelude() {
		if err := builtins.NewRegistry().Install(env); err != nil {
			return nil, err
		}
	}
	for name, v := range cfg.Defines {
		env.Define(name, types.NewNumber(v))
	}
	return env, nil
}

// splitFilters turns a comma separated list into trimmed patterns
func splitFilters(s string) []string {
	if s == "" {
		return nil
	}
	filters := strings.Split(s, ",")
	for i := range filters {
		filters[i] = strings.TrimSpace(filters[i])
	}
	return filters
}
