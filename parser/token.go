package parser

import "fmt"

// TokenType represents different types of lexical tokens
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL

	// Literals
	TOKEN_NUMBER // 42, 3.14, 1e9

	// Identifiers
	TOKEN_IDENTIFIER

	// Operators
	TOKEN_PLUS    // +
	TOKEN_MINUS   // -
	TOKEN_STAR    // *
	TOKEN_SLASH   // /
	TOKEN_PERCENT // %
	TOKEN_CARET   // ^
	TOKEN_NE      // !=
	TOKEN_RANGE   // ..
	TOKEN_PIPE    // |
	TOKEN_ARROW   // ->
	TOKEN_LAMBDA  // \

	// Delimiters
	TOKEN_LPAREN // (
	TOKEN_RPAREN // )
	TOKEN_COMMA  // ,
)

// Position represents a position in the source code.
// Line and Column are 1-based; Offset is the byte offset into the input.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

// String formats the position as file:line:column
func (p Position) String() string {
	file := p.File
	if file == "" {
		file = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Column)
}

// Token represents a lexical token
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "EOF"
	case TOKEN_ILLEGAL:
		return "ILLEGAL"
	case TOKEN_NUMBER:
		return "NUMBER"
	case TOKEN_IDENTIFIER:
		return "IDENTIFIER"
	case TOKEN_PLUS:
		return "PLUS"
	case TOKEN_MINUS:
		return "MINUS"
	case TOKEN_STAR:
		return "STAR"
	case TOKEN_SLASH:
		return "SLASH"
	case TOKEN_PERCENT:
		return "PERCENT"
	case TOKEN_CARET:
		return "CARET"
	case TOKEN_NE:
		return "NE"
	case TOKEN_RANGE:
		return "RANGE"
	case TOKEN_PIPE:
		return "PIPE"
	case TOKEN_ARROW:
		return "ARROW"
	case TOKEN_LAMBDA:
		return "LAMBDA"
	case TOKEN_LPAREN:
		return "LPAREN"
	case TOKEN_RPAREN:
		return "RPAREN"
	case TOKEN_COMMA:
		return "COMMA"
	default:
		return "UNKNOWN"
	}
}
