package types

import "compact/parser"

// FuncValue is a closure: ordered parameter names, the body node it evaluates,
// and the environment that was active when the function literal was evaluated.
// Functions are always handled through a pointer so that equality is identity.
type FuncValue struct {
	Params []string
	Body   parser.Expr
	Env    *Environment // shared with the defining scope, never copied
}

// NewFunc creates a closure over env
func NewFunc(params []string, body parser.Expr, env *Environment) *FuncValue {
	return &FuncValue{Params: params, Body: body, Env: env.Capture()}
}

// Type returns the type code for functions
func (f *FuncValue) Type() TypeCode {
	return TYPE_FUNC
}

// String returns an opaque placeholder
func (f *FuncValue) String() string {
	return "<function>"
}

// Equal reports whether other is the same closure
func (f *FuncValue) Equal(other Value) bool {
	o, ok := other.(*FuncValue)
	return ok && o == f
}

// Arity returns the number of declared parameters
func (f *FuncValue) Arity() int {
	return len(f.Params)
}
