package eval

import (
	"compact/diag"
	"compact/parser"
	"compact/trace"
	"compact/types"
	"math"
)

// applyBinary resolves an operator application:
//  1. Number op Number uses the scalar table.
//  2. A list on the left is broadcast element-wise against the unchanged right operand.
//  3. Otherwise a list on the right is broadcast against the unchanged left operand.
//  4. Anything else is E_OPERANDS.
//
// Rule 2 is tried before rule 3, so list op list nests: each left element is
// combined with the whole right list.
func applyBinary(op parser.BinaryOp, left, right types.Value, pos parser.Position) (types.Value, error) {
	if l, ok := left.(types.NumberValue); ok {
		if r, ok := right.(types.NumberValue); ok {
			return applyScalar(op, l.Val, r.Val, pos)
		}
	}

	if l, ok := left.(types.ListValue); ok {
		trace.Broadcast(op, "left", l.Len(), pos)
		results := make([]types.Value, 0, l.Len())
		for _, elem := range l.Elements() {
			v, err := applyBinary(op, elem, right, pos)
			if err != nil {
				return nil, err
			}
			results = append(results, v)
		}
		return types.NewList(results), nil
	}

	if r, ok := right.(types.ListValue); ok {
		trace.Broadcast(op, "right", r.Len(), pos)
		results := make([]types.Value, 0, r.Len())
		for _, elem := range r.Elements() {
			v, err := applyBinary(op, left, elem, pos)
			if err != nil {
				return nil, err
			}
			results = append(results, v)
		}
		return types.NewList(results), nil
	}

	return nil, diag.New(pos, types.E_OPERANDS, "")
}

// applyScalar implements the operator table for two numbers.
// Division and modulo follow IEEE-754: dividing by zero gives inf or nan, never an error.
func applyScalar(op parser.BinaryOp, a, b float64, pos parser.Position) (types.Value, error) {
	switch op {
	case parser.OP_ADD:
		return types.NewNumber(a + b), nil
	case parser.OP_SUBTRACT:
		return types.NewNumber(a - b), nil
	case parser.OP_MULTIPLY:
		return types.NewNumber(a * b), nil
	case parser.OP_DIVIDE:
		return types.NewNumber(a / b), nil
	case parser.OP_MODULO:
		return types.NewNumber(math.Mod(a, b)), nil
	case parser.OP_POWER:
		return types.NewNumber(math.Pow(a, b)), nil
	case parser.OP_NOT_EQUAL:
		return types.NewBool(a != b), nil
	case parser.OP_RANGE:
		return evalRange(a, b, pos)
	default:
		return nil, diag.New(pos, types.E_UNKNOWNOP, "")
	}
}

const (
	// maxRangeBound is the largest integer a float64 represents exactly
	maxRangeBound = 1 << 53
	// maxRangeHint caps the capacity reserved up front for a range
	maxRangeHint = 1 << 16
)

// evalRange produces [a, a+1, ..., b-1]. Both bounds must be whole, non-negative
// and finite; an empty list results when a >= b.
func evalRange(a, b float64, pos parser.Position) (types.Value, error) {
	lo, hi := types.NewNumber(a), types.NewNumber(b)
	if !lo.IsNatural() || !hi.IsNatural() {
		return nil, diag.New(pos, types.E_RANGE, "")
	}
	if a > maxRangeBound || b > maxRangeBound {
		return nil, diag.New(pos, types.E_RANGE, "Range bound exceeds %d", uint64(maxRangeBound))
	}

	start, end := uint64(a), uint64(b)
	if start >= end {
		return types.NewEmptyList(), nil
	}

	hint := end - start
	if hint > maxRangeHint {
		hint = maxRangeHint
	}
	values := make([]types.Value, 0, hint)
	for i := start; i < end; i++ {
		values = append(values, types.NewNumber(float64(i)))
	}
	return types.NewList(values), nil
}
