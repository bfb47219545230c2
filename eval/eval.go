package eval

import (
	"compact/diag"
	"compact/parser"
	"compact/trace"
	"compact/types"
)

// Evaluator walks the syntax tree and computes values.
// An Evaluator holds no per-run state, so one may be reused across runs.
type Evaluator struct {
	root *types.Environment
}

// NewEvaluator creates a new evaluator with a fresh, empty root environment
func NewEvaluator() *Evaluator {
	return &Evaluator{root: types.NewEnvironment()}
}

// NewEvaluatorWithEnv creates a new evaluator over a given root environment
func NewEvaluatorWithEnv(env *types.Environment) *Evaluator {
	return &Evaluator{root: env}
}

// Evaluate runs a program against a freshly created root environment.
// It returns the program's value or the first positioned error raised.
func Evaluate(root parser.Expr) (types.Value, error) {
	return NewEvaluator().Run(root)
}

// Run evaluates a program against the evaluator's root environment
func (e *Evaluator) Run(root parser.Expr) (types.Value, error) {
	val, err := e.Eval(root, e.root)
	if err != nil {
		trace.Error(err)
		return nil, err
	}
	return val, nil
}

// Eval evaluates a node in env.
// Errors propagate unchanged from the point of detection; there is no recovery.
func (e *Evaluator) Eval(node parser.Expr, env *types.Environment) (types.Value, error) {
	// Dispatch based on node type
	switch n := node.(type) {
	case *parser.VariableRef:
		return e.evalVariable(n, env)
	case *parser.NumberLit:
		return types.NewNumber(n.Value), nil
	case *parser.BinaryExpr:
		return e.evalBinary(n, env)
	case *parser.FunctionExpr:
		return e.evalFunction(n, env), nil
	case *parser.FilterExpr:
		return e.evalFilter(n, env)
	case nil:
		return nil, diag.New(parser.Position{}, types.E_UNKNOWNNODE, "")
	default:
		// Unknown node type - this should never happen if parser is correct
		return nil, diag.New(node.Position(), types.E_UNKNOWNNODE, "Unknown expression node %T", node)
	}
}

// evalVariable looks up a variable by name.
// The error carries the reference's own position.
func (e *Evaluator) evalVariable(node *parser.VariableRef, env *types.Environment) (types.Value, error) {
	val, ok := env.Lookup(node.Name)
	if !ok {
		return nil, diag.New(node.Pos, types.E_UNDEFINED, "Variable %s is not defined", node.Name)
	}
	return val, nil
}

// evalBinary evaluates left then right and applies the operator with broadcasting
func (e *Evaluator) evalBinary(node *parser.BinaryExpr, env *types.Environment) (types.Value, error) {
	left, err := e.Eval(node.Left, env)
	if err != nil {
		return nil, err
	}

	right, err := e.Eval(node.Right, env)
	if err != nil {
		return nil, err
	}

	return applyBinary(node.Op, left, right, node.Pos)
}

// evalFunction builds a closure over the active environment. The body is not evaluated.
func (e *Evaluator) evalFunction(node *parser.FunctionExpr, env *types.Environment) types.Value {
	return types.NewFunc(node.Params, node.Body, env)
}

// GetEnvironment returns the evaluator's root environment (for testing)
func (e *Evaluator) GetEnvironment() *types.Environment {
	return e.root
}
