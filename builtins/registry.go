package builtins

import (
	"compact/eval"
	"compact/parser"
	"compact/types"
	"fmt"
	"math"
	"sort"
)

// entry is either a constant value or the source of a prelude definition
type entry struct {
	value  types.Value
	source string
}

// Registry holds the names installed into a root environment before a program runs
type Registry struct {
	entries map[string]entry
}

// NewRegistry creates a registry holding the standard prelude
func NewRegistry() *Registry {
	r := &Registry{
		entries: make(map[string]entry),
	}

	// Literals the grammar has no syntax for
	r.Register("true", types.NewBool(true))
	r.Register("false", types.NewBool(false))
	r.Register("none", types.NewNone())

	// Numeric constants
	r.Register("pi", types.NewNumber(math.Pi))
	r.Register("e", types.NewNumber(math.E))
	r.Register("inf", types.NewNumber(math.Inf(1)))
	r.Register("nan", types.NewNumber(math.NaN()))

	// Predicates for use with |
	r.Define("odd", `\x -> x % 2 != 0`)
	r.Define("nonzero", `\x -> x != 0`)
	r.Define("isnan", `\x -> x != x`)

	return r
}

// Register binds name to a constant value, replacing any earlier entry
func (r *Registry) Register(name string, v types.Value) {
	r.entries[name] = entry{value: v}
}

// Define binds name to the value of an expression written in the language itself.
// The source is parsed and evaluated when the registry is installed.
func (r *Registry) Define(name, source string) {
	r.entries[name] = entry{source: source}
}

// Get returns the constant registered under name
func (r *Registry) Get(name string) (types.Value, bool) {
	ent, ok := r.entries[name]
	if !ok || ent.value == nil {
		return nil, false
	}
	return ent.value, true
}

// Has checks if a name is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns all registered names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Install defines every registered name in env. Constants go in first so
// prelude definitions can refer to them.
func (r *Registry) Install(env *types.Environment) error {
	var defs []string
	for _, name := range r.Names() {
		ent := r.entries[name]
		if ent.value != nil {
			env.Define(name, ent.value)
			continue
		}
		defs = append(defs, name)
	}

	ev := eval.NewEvaluatorWithEnv(env)
	for _, name := range defs {
		expr, err := parser.Parse("<prelude:"+name+">", r.entries[name].source)
		if err != nil {
			return fmt.Errorf("prelude %s: %w", name, err)
		}
		v, err := ev.Eval(expr, env)
		if err != nil {
			return fmt.Errorf("prelude %s: %w", name, err)
		}
		env.Define(name, v)
	}
	return nil
}

// NewRootEnvironment returns a root environment with the standard prelude installed
func NewRootEnvironment() (*types.Environment, error) {
	env := types.NewEnvironment()
	if err := NewRegistry().Install(env); err != nil {
		return nil, err
	}
	return env, nil
}
