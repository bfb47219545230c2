package parser

import (
	"strconv"
	"strings"
)

// Unparse converts an expression back to canonical source code.
// Parsing the result yields a tree equal to the input.
func Unparse(expr Expr) string {
	return unparseExpr(expr, PREC_LOWEST, true)
}

// unparseExpr renders expr, parenthesizing when it binds looser than parentPrecedence.
// tail is true when nothing follows expr before the end of input or a closing paren.
func unparseExpr(expr Expr, parentPrecedence int, tail bool) string {
	switch e := expr.(type) {
	case *VariableRef:
		return e.Name

	case *NumberLit:
		s := unparseNumber(e.Value)
		if e.Value < 0 && parentPrecedence >= PREC_POWER {
			return "(" + s + ")"
		}
		return s

	case *BinaryExpr:
		return unparseBinaryExpr(e, parentPrecedence, tail)

	case *FunctionExpr:
		// The body extends to the end of input, so a literal followed by anything needs parens
		result := "\\" + strings.Join(e.Params, ", ") + " -> " + unparseExpr(e.Body, PREC_LOWEST, true)
		if !tail {
			return "(" + result + ")"
		}
		return result

	case *FilterExpr:
		wrap := PREC_FILTER <= parentPrecedence
		left := unparseExpr(e.Left, PREC_FILTER-1, false)
		right := unparseExpr(e.Right, PREC_FILTER, tail || wrap)
		result := left + " | " + right
		if wrap {
			return "(" + result + ")"
		}
		return result

	default:
		return "<unknown>"
	}
}

func unparseBinaryExpr(e *BinaryExpr, parentPrecedence int, tail bool) string {
	prec := binaryPrecedence(e.Op)
	wrap := prec <= parentPrecedence
	leftPrec, rightPrec := prec-1, prec
	switch e.Op {
	case OP_POWER:
		// Right-associative
		leftPrec, rightPrec = prec, prec-1
	case OP_RANGE:
		// Non-associative: a range on either side needs parens
		leftPrec = prec
	}
	left := unparseExpr(e.Left, leftPrec, false)
	right := unparseExpr(e.Right, rightPrec, tail || wrap)

	// NO spaces around ..
	sep := " " + e.Op.Symbol() + " "
	if e.Op == OP_RANGE {
		sep = e.Op.Symbol()
	}
	result := left + sep + right

	if wrap {
		return "(" + result + ")"
	}
	return result
}

// binaryPrecedence returns the precedence level for a binary operator
func binaryPrecedence(op BinaryOp) int {
	switch op {
	case OP_NOT_EQUAL:
		return PREC_COMPARE
	case OP_RANGE:
		return PREC_RANGE
	case OP_ADD, OP_SUBTRACT:
		return PREC_SUM
	case OP_MULTIPLY, OP_DIVIDE, OP_MODULO:
		return PREC_PRODUCT
	case OP_POWER:
		return PREC_POWER
	default:
		return PREC_LOWEST
	}
}

func unparseNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
