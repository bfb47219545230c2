package main

import (
	"compact/diag"
	"compact/eval"
	"compact/parser"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const (
	historyFile = ".compact_history"
	promptMain  = "> "
	promptCont  = ". "
)

const helpText = `Each input is evaluated as a separate program.
  :help          show this text
  :parse <expr>  show the canonical form of an expression
  :quit          leave the session
`

// runREPL reads programs with line editing until EOF
func runREPL(cfg *Config, out io.Writer) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	// Load history (best-effort)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	line := 0
	for {
		src, ok := readInput(ln)
		if !ok {
			fmt.Fprintln(out)
			break
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			if replCommand(out, src) {
				break
			}
			continue
		}

		line++
		evalLine(cfg, fmt.Sprintf("<repl:%d>", line), src, out)
	}

	// Persist history (best-effort)
	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return nil
}

// evalLine runs one program against a fresh root and prints the value or the error
func evalLine(cfg *Config, file, src string, out io.Writer) {
	expr, err := parser.Parse(file, src)
	if err != nil {
		diag.Report(out, err)
		return
	}
	env, err := newRoot(cfg)
	if err != nil {
		diag.Report(out, err)
		return
	}
	val, err := eval.NewEvaluatorWithEnv(env).Run(expr)
	if err != nil {
		diag.Report(out, err)
		return
	}
	fmt.Fprintln(out, val.String())
}

// replCommand handles :help, :parse and :quit. It reports whether to exit.
func replCommand(out io.Writer, src string) bool {
	src = strings.TrimSpace(src)
	cmd, rest, _ := strings.Cut(src, " ")
	switch strings.ToLower(cmd) {
	case ":quit", ":exit":
		return true
	case ":help":
		fmt.Fprint(out, helpText)
	case ":parse":
		expr, err := parser.Parse("<repl>", rest)
		if err != nil {
			diag.Report(out, err)
			return false
		}
		fmt.Fprintln(out, parser.Unparse(expr))
	default:
		fmt.Fprintln(out, "unknown command. Type :help for help.")
	}
	return false
}

// readInput reads lines until they form a complete program or a parse
// error that more input cannot fix. ok is false at EOF.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the pending input
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !needsMore(src) {
			return src, true
		}
	}
}

// needsMore reports whether src fails to parse only because it ended too soon
func needsMore(src string) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}
	_, err := parser.Parse("<repl>", src)
	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Pos.Offset >= len(src)
}
