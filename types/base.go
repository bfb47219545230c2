package types

// ErrorCode identifies the kind of failure raised during evaluation
type ErrorCode int

const (
	E_NONE         ErrorCode = 0
	E_UNDEFINED    ErrorCode = 1 // variable lookup exhausted the environment chain
	E_OPERANDS     ErrorCode = 2 // binary operator applied to an unsupported operand pairing
	E_RANGE        ErrorCode = 3 // range bound is not a non-negative integer
	E_FILTER       ErrorCode = 4 // filter needs a list on the left and a function on the right
	E_FILTERRESULT ErrorCode = 5 // filter predicate returned something other than booleans
	E_UNKNOWNOP    ErrorCode = 6
	E_ARGS         ErrorCode = 7 // argument count does not match the parameter count
	E_PARSE        ErrorCode = 8
	E_UNKNOWNNODE  ErrorCode = 9 // evaluator was handed a nil or unrecognized expression node
)

// String returns the symbolic name for an error code
func (e ErrorCode) String() string {
	switch e {
	case E_NONE:
		return "E_NONE"
	case E_UNDEFINED:
		return "E_UNDEFINED"
	case E_OPERANDS:
		return "E_OPERANDS"
	case E_RANGE:
		return "E_RANGE"
	case E_FILTER:
		return "E_FILTER"
	case E_FILTERRESULT:
		return "E_FILTERRESULT"
	case E_UNKNOWNOP:
		return "E_UNKNOWNOP"
	case E_ARGS:
		return "E_ARGS"
	case E_PARSE:
		return "E_PARSE"
	case E_UNKNOWNNODE:
		return "E_UNKNOWNNODE"
	default:
		return "E_UNKNOWN"
	}
}

// Message returns the default human-readable message for an error code
func (e ErrorCode) Message() string {
	switch e {
	case E_NONE:
		return "No error"
	case E_UNDEFINED:
		return "Variable is not defined"
	case E_OPERANDS:
		return "Invalid operands for binary operator"
	case E_RANGE:
		return "Range must be between two integers"
	case E_FILTER:
		return "Invalid operands for filter operator"
	case E_FILTERRESULT:
		return "Filter function must return a boolean or list of booleans"
	case E_UNKNOWNOP:
		return "Unknown binary operator"
	case E_ARGS:
		return "Incorrect number of arguments"
	case E_PARSE:
		return "Parse failed"
	case E_UNKNOWNNODE:
		return "Unknown expression node"
	default:
		return "Unknown error"
	}
}

// ErrorFromString converts a name like "E_RANGE" to an ErrorCode
func ErrorFromString(s string) (ErrorCode, bool) {
	for code := E_NONE; code <= E_UNKNOWNNODE; code++ {
		if code.String() == s {
			return code, true
		}
	}
	return E_NONE, false
}

// Value is the interface all runtime values implement.
// The set of implementations is closed: NoneValue, NumberValue, StrValue,
// BoolValue, ListValue and *FuncValue.
type Value interface {
	Type() TypeCode
	String() string   // rendered form printed by the driver
	Equal(Value) bool // deep equality; functions compare by identity
}
