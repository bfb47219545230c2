package types

// BoolValue represents a boolean
type BoolValue struct {
	Val bool
}

// Type returns the type code for booleans
func (b BoolValue) Type() TypeCode {
	return TYPE_BOOL
}

// String returns "true" or "false"
func (b BoolValue) String() string {
	if b.Val {
		return "true"
	}
	return "false"
}

// Equal checks deep equality
func (b BoolValue) Equal(other Value) bool {
	o, ok := other.(BoolValue)
	if !ok {
		return false
	}
	return b.Val == o.Val
}

// NewBool creates a new BoolValue
func NewBool(val bool) BoolValue {
	return BoolValue{Val: val}
}
