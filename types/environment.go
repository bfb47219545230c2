package types

import "sort"

// Environment manages variable bindings with lexical scoping.
// Each environment owns one frame of bindings and an optional parent;
// lookups walk the parent chain, writes only ever touch the own frame.
type Environment struct {
	vars   map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment with no parent (root scope)
func NewEnvironment() *Environment {
	return &Environment{
		vars:   make(map[string]Value),
		parent: nil,
	}
}

// NewNestedEnvironment creates a new environment with a parent scope.
// Function invocation uses this to get a fresh frame per call.
func NewNestedEnvironment(parent *Environment) *Environment {
	return &Environment{
		vars:   make(map[string]Value),
		parent: parent,
	}
}

// Lookup finds a variable by name.
// Searches current scope, then parent scopes.
// Returns (value, true) if found, (nil, false) if not found
func (e *Environment) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.vars[name]; ok {
			return val, true
		}
	}
	return nil, false
}

// Define binds or rebinds a name in this environment's own frame
func (e *Environment) Define(name string, value Value) {
	e.vars[name] = value
}

// Capture returns a shared reference to this environment.
// Bindings made later through the reference remain visible to every holder.
func (e *Environment) Capture() *Environment {
	return e
}

// Names returns the names bound in this frame, sorted
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
