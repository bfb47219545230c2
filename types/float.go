package types

import (
	"math"
	"strconv"
)

// NumberValue represents an IEEE-754 double
type NumberValue struct {
	Val float64
}

// NewNumber creates a new NumberValue
func NewNumber(val float64) NumberValue {
	return NumberValue{Val: val}
}

// Type returns the type code for numbers
func (n NumberValue) Type() TypeCode {
	return TYPE_NUM
}

// String renders the number in its shortest natural decimal form
func (n NumberValue) String() string {
	switch {
	case math.IsNaN(n.Val):
		return "nan"
	case math.IsInf(n.Val, 1):
		return "inf"
	case math.IsInf(n.Val, -1):
		return "-inf"
	}
	return strconv.FormatFloat(n.Val, 'g', -1, 64)
}

// Equal follows IEEE comparison, so NaN never equals anything
func (n NumberValue) Equal(other Value) bool {
	o, ok := other.(NumberValue)
	if !ok {
		return false
	}
	return n.Val == o.Val
}

// IsNatural reports whether the number is a finite, non-negative whole number
func (n NumberValue) IsNatural() bool {
	return n.Val >= 0 && !math.IsInf(n.Val, 0) && math.Trunc(n.Val) == n.Val
}
