package parser

import "fmt"

// ParseError is returned for malformed source. It carries the position of
// the offending token.
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// errorf builds a ParseError at the current token
func (p *Parser) errorf(format string, args ...interface{}) error {
	return &ParseError{
		Pos:     p.current.Position,
		Message: fmt.Sprintf(format, args...),
	}
}

// describe renders a token for error messages
func describe(tok Token) string {
	switch tok.Type {
	case TOKEN_EOF:
		return "end of input"
	case TOKEN_NUMBER, TOKEN_IDENTIFIER:
		return fmt.Sprintf("%s %q", tok.Type, tok.Value)
	default:
		return fmt.Sprintf("%q", tok.Value)
	}
}
