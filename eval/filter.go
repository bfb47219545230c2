package eval

import (
	"compact/diag"
	"compact/parser"
	"compact/trace"
	"compact/types"
)

// evalFilter evaluates list | predicate. The predicate is invoked once per
// element; the element is kept when the result is true, or a list whose
// entries are all true (an empty list keeps the element).
func (e *Evaluator) evalFilter(node *parser.FilterExpr, env *types.Environment) (types.Value, error) {
	left, err := e.Eval(node.Left, env)
	if err != nil {
		return nil, err
	}

	right, err := e.Eval(node.Right, env)
	if err != nil {
		return nil, err
	}

	list, ok := left.(types.ListValue)
	if !ok {
		return nil, diag.New(node.Pos, types.E_FILTER, "")
	}
	fn, ok := types.AsFunc(right)
	if !ok {
		return nil, diag.New(node.Pos, types.E_FILTER, "")
	}

	var kept []types.Value
	for _, elem := range list.Elements() {
		result, err := e.Invoke(fn, []types.Value{elem}, node.Pos)
		if err != nil {
			return nil, err
		}
		keep, err := predicateHolds(result, node.Pos)
		if err != nil {
			return nil, err
		}
		if keep {
			kept = append(kept, elem)
		}
	}

	trace.Filter(node.Pos, list.Len(), len(kept))
	return types.NewList(kept), nil
}

// predicateHolds interprets a predicate result. Every entry of a list result
// is checked, so a non-boolean anywhere in it is an error.
func predicateHolds(result types.Value, pos parser.Position) (bool, error) {
	switch r := result.(type) {
	case types.BoolValue:
		return r.Val, nil
	case types.ListValue:
		all := true
		for _, entry := range r.Elements() {
			b, ok := entry.(types.BoolValue)
			if !ok {
				return false, diag.New(pos, types.E_FILTERRESULT, "")
			}
			all = all && b.Val
		}
		return all, nil
	default:
		return false, diag.New(pos, types.E_FILTERRESULT, "")
	}
}

// Invoke calls a closure. Arguments bind in a fresh frame whose parent is the
// captured environment, so the captured scope is never written and recursive
// or interleaved calls cannot see each other's parameters.
// pos is the call site, used when the argument count is wrong.
func (e *Evaluator) Invoke(fn *types.FuncValue, args []types.Value, pos parser.Position) (types.Value, error) {
	if len(args) != fn.Arity() {
		return nil, diag.New(pos, types.E_ARGS, "Function expects %d argument(s), got %d", fn.Arity(), len(args))
	}

	trace.Call(fn, args)

	frame := types.NewNestedEnvironment(fn.Env)
	for i, name := range fn.Params {
		frame.Define(name, args[i])
	}

	result, err := e.Eval(fn.Body, frame)
	if err != nil {
		return nil, err
	}

	trace.Return(fn, result)
	return result, nil
}
