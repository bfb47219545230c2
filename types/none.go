package types

// NoneValue represents the absence of a value
type NoneValue struct{}

// NewNone returns the None value
func NewNone() NoneValue {
	return NoneValue{}
}

func (v NoneValue) Type() TypeCode {
	return TYPE_NONE
}

func (v NoneValue) String() string {
	return "none"
}

func (v NoneValue) Equal(other Value) bool {
	_, ok := other.(NoneValue)
	return ok
}
