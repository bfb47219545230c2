package types

import "strings"

// TypeCode tags the variant held by a Value
type TypeCode int

const (
	TYPE_NONE TypeCode = iota
	TYPE_NUM
	TYPE_STR
	TYPE_BOOL
	TYPE_LIST
	TYPE_FUNC
)

// String returns the string representation of the type code
func (t TypeCode) String() string {
	switch t {
	case TYPE_NONE:
		return "NONE"
	case TYPE_NUM:
		return "NUM"
	case TYPE_STR:
		return "STR"
	case TYPE_BOOL:
		return "BOOL"
	case TYPE_LIST:
		return "LIST"
	case TYPE_FUNC:
		return "FUNC"
	default:
		return "UNKNOWN"
	}
}

// TypeFromString converts a case-insensitive type name ("num", "list", ...) to a TypeCode
func TypeFromString(s string) (TypeCode, bool) {
	for t := TYPE_NONE; t <= TYPE_FUNC; t++ {
		if strings.EqualFold(t.String(), s) {
			return t, true
		}
	}
	return TYPE_NONE, false
}
