// Package diag defines the positioned error raised by the evaluator and the
// console formatting used by the driver to report it.
package diag

import (
	"errors"
	"fmt"
	"io"

	"compact/parser"
	"compact/types"
)

// Error is a failure tied to a source position
type Error struct {
	Pos     parser.Position
	Code    types.ErrorCode
	Message string
}

// New creates an Error at pos. An empty format falls back to the code's default message.
func New(pos parser.Position, code types.ErrorCode, format string, args ...interface{}) *Error {
	msg := code.Message()
	if format != "" {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Pos: pos, Code: code, Message: msg}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Is matches another *Error with the same code, so errors.Is(err, &diag.Error{Code: c}) works
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// CodeOf extracts the error code from err. Parse errors map to E_PARSE;
// anything that is not a diagnostic yields E_NONE and false.
func CodeOf(err error) (types.ErrorCode, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Code, true
	}
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return types.E_PARSE, true
	}
	return types.E_NONE, false
}

// PositionOf extracts the source position carried by err, if any
func PositionOf(err error) (parser.Position, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Pos, true
	}
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return pe.Pos, true
	}
	return parser.Position{}, false
}

// Report writes err to w as "file:line:column: error: message".
// Errors without a position are written as "error: message".
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	var de *Error
	if errors.As(err, &de) {
		fmt.Fprintf(w, "%s: error: %s\n", de.Pos, de.Message)
		return
	}
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		fmt.Fprintf(w, "%s: error: %s\n", pe.Pos, pe.Message)
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
