package trace

import (
	"compact/diag"
	"compact/parser"
	"compact/types"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Event names accepted by filters
const (
	EventCall      = "call"
	EventReturn    = "return"
	EventError     = "error"
	EventBroadcast = "broadcast"
	EventFilter    = "filter"
)

// Tracer provides execution tracing for debugging
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

// Global tracer instance
var globalTracer *Tracer

// New creates a tracer. Filters are glob patterns over event names; none means trace everything.
func New(enabled bool, filters []string, writer io.Writer) *Tracer {
	if writer == nil {
		writer = os.Stderr
	}
	return &Tracer{
		enabled: enabled,
		filters: filters,
		writer:  writer,
	}
}

// Init initializes the global tracer
func Init(enabled bool, filters []string, writer io.Writer) {
	globalTracer = New(enabled, filters, writer)
}

// IsEnabled returns whether tracing is enabled
func IsEnabled() bool {
	if globalTracer == nil {
		return false
	}
	return globalTracer.enabled
}

// matchesFilter checks if an event name matches any of the filter patterns
func (t *Tracer) matchesFilter(event string) bool {
	if len(t.filters) == 0 {
		return true // No filters = trace everything
	}

	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, event); matched {
			return true
		}
	}
	return false
}

func (t *Tracer) active(event string) bool {
	return t != nil && t.enabled && t.matchesFilter(event)
}

// Call logs a closure invocation
func (t *Tracer) Call(fn *types.FuncValue, args []types.Value) {
	if !t.active(EventCall) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] CALL %s args=[%s] at %s\n",
		describeFunc(fn), joinValues(args), fn.Body.Position())
}

// Return logs the value produced by a closure invocation
func (t *Tracer) Return(fn *types.FuncValue, result types.Value) {
	if !t.active(EventReturn) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	resultStr := "none"
	if result != nil {
		resultStr = truncate(result.String())
	}
	fmt.Fprintf(t.writer, "[TRACE] RETURN %s => %s\n", describeFunc(fn), resultStr)
}

// Error logs a raised diagnostic
func (t *Tracer) Error(err error) {
	if !t.active(EventError) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	code, _ := diag.CodeOf(err)
	fmt.Fprintf(t.writer, "[TRACE] ERROR %s %v\n", code, err)
}

// Broadcast logs an operator being applied element-wise over a list of n items
func (t *Tracer) Broadcast(op parser.BinaryOp, side string, n int, pos parser.Position) {
	if !t.active(EventBroadcast) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] BROADCAST %s over %s list len=%d at %s\n", op, side, n, pos)
}

// Filter logs the outcome of a filter expression
func (t *Tracer) Filter(pos parser.Position, in, kept int) {
	if !t.active(EventFilter) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] FILTER kept %d of %d at %s\n", kept, in, pos)
}

func describeFunc(fn *types.FuncValue) string {
	return truncate("\\" + strings.Join(fn.Params, ", ") + " -> " + parser.Unparse(fn.Body))
}

func joinValues(vals []types.Value) string {
	strs := make([]string, len(vals))
	for i, v := range vals {
		strs[i] = truncate(v.String())
	}
	return strings.Join(strs, ", ")
}

// Truncate long renderings for readability
func truncate(s string) string {
	if len(s) > 60 {
		return s[:57] + "..."
	}
	return s
}

// Global convenience functions

// Call logs a closure invocation using the global tracer
func Call(fn *types.FuncValue, args []types.Value) {
	globalTracer.Call(fn, args)
}

// Return logs a closure result using the global tracer
func Return(fn *types.FuncValue, result types.Value) {
	globalTracer.Return(fn, result)
}

// Error logs a raised diagnostic using the global tracer
func Error(err error) {
	globalTracer.Error(err)
}

// Broadcast logs element-wise operator application using the global tracer
func Broadcast(op parser.BinaryOp, side string, n int, pos parser.Position) {
	globalTracer.Broadcast(op, side, n, pos)
}

// Filter logs a filter outcome using the global tracer
func Filter(pos parser.Position, in, kept int) {
	globalTracer.Filter(pos, in, kept)
}
