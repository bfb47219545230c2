package trace

import (
	"bytes"
	"compact/diag"
	"compact/parser"
	"compact/types"
	"strings"
	"testing"
)

func sampleFunc(t *testing.T) *types.FuncValue {
	t.Helper()
	expr, err := parser.Parse("t", `\x -> x != 2`)
	if err != nil {
		t.Fatal(err)
	}
	fe := expr.(*parser.FunctionExpr)
	return types.NewFunc(fe.Params, fe.Body, types.NewEnvironment())
}

func TestTracerEvents(t *testing.T) {
	var buf bytes.Buffer
	tr := New(true, nil, &buf)
	fn := sampleFunc(t)
	pos := parser.Position{File: "t", Line: 1, Column: 1}

	tr.Call(fn, []types.Value{types.NewNumber(3)})
	tr.Return(fn, types.NewBool(true))
	tr.Broadcast(parser.OP_ADD, "left", 3, pos)
	tr.Filter(pos, 4, 3)
	tr.Error(diag.New(pos, types.E_RANGE, ""))

	want := []string{
		`[TRACE] CALL \x -> x != 2 args=[3] at t:1:7`,
		`[TRACE] RETURN \x -> x != 2 => true`,
		`[TRACE] BROADCAST ADD over left list len=3 at t:1:1`,
		`[TRACE] FILTER kept 3 of 4 at t:1:1`,
		`[TRACE] ERROR E_RANGE t:1:1: Range must be between two integers`,
	}
	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(got), buf.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTracerFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters []string
		event   string
		want    bool
	}{
		{"no filters", nil, EventCall, true},
		{"exact", []string{"filter"}, EventFilter, true},
		{"glob", []string{"ret*"}, EventReturn, true},
		{"miss", []string{"call"}, EventReturn, false},
		{"any of", []string{"error", "b*"}, EventBroadcast, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(true, tt.filters, &bytes.Buffer{})
			if got := tr.matchesFilter(tt.event); got != tt.want {
				t.Errorf("matchesFilter(%q) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestTracerDisabled(t *testing.T) {
	var buf bytes.Buffer
	tr := New(false, nil, &buf)
	tr.Filter(parser.Position{}, 1, 1)
	tr.Call(sampleFunc(t), nil)
	if buf.Len() != 0 {
		t.Errorf("disabled tracer wrote %q", buf.String())
	}

	// A nil tracer is inert
	var none *Tracer
	none.Filter(parser.Position{}, 1, 1)
}

func TestGlobalTracer(t *testing.T) {
	var buf bytes.Buffer
	Init(true, []string{"filter"}, &buf)
	defer Init(false, nil, nil)

	if !IsEnabled() {
		t.Fatal("IsEnabled() = false after Init(true)")
	}
	Filter(parser.Position{File: "g", Line: 1, Column: 1}, 2, 0)
	Broadcast(parser.OP_ADD, "right", 2, parser.Position{})
	if buf.String() != "[TRACE] FILTER kept 0 of 2 at g:1:1\n" {
		t.Errorf("global tracer wrote %q", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 80)
	got := truncate(long)
	if len(got) != 60 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate = %q", got)
	}
	if truncate("short") != "short" {
		t.Error("short strings must be unchanged")
	}
}
