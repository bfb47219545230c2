package types

// Checked accessors. Each returns the payload and true when v holds the
// requested variant, or the zero value and false otherwise. They never panic.

func IsNone(v Value) bool   { _, ok := v.(NoneValue); return ok }
func IsNumber(v Value) bool { _, ok := v.(NumberValue); return ok }
func IsStr(v Value) bool    { _, ok := v.(StrValue); return ok }
func IsBool(v Value) bool   { _, ok := v.(BoolValue); return ok }
func IsList(v Value) bool   { _, ok := v.(ListValue); return ok }
func IsFunc(v Value) bool   { _, ok := v.(*FuncValue); return ok }

// AsNumber returns the float payload of a Number
func AsNumber(v Value) (float64, bool) {
	if n, ok := v.(NumberValue); ok {
		return n.Val, true
	}
	return 0, false
}

// AsStr returns the text payload of a String
func AsStr(v Value) (string, bool) {
	if s, ok := v.(StrValue); ok {
		return s.val, true
	}
	return "", false
}

// AsBool returns the payload of a Boolean
func AsBool(v Value) (bool, bool) {
	if b, ok := v.(BoolValue); ok {
		return b.Val, true
	}
	return false, false
}

// AsList returns the elements of a List
func AsList(v Value) ([]Value, bool) {
	if l, ok := v.(ListValue); ok {
		return l.elements, true
	}
	return nil, false
}

// AsFunc returns the closure held by a Function
func AsFunc(v Value) (*FuncValue, bool) {
	f, ok := v.(*FuncValue)
	return f, ok && f != nil
}
