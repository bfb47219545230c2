package parser

// Lexer tokenizes expression source code
type Lexer struct {
	file         string
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
}

// NewLexer creates a new Lexer instance
func NewLexer(input string) *Lexer {
	return NewFileLexer("", input)
}

// NewFileLexer creates a Lexer whose token positions carry the given file name
func NewFileLexer(file, input string) *Lexer {
	l := &Lexer{
		file:   file,
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.position < len(l.input) && l.readPosition > 0 && l.input[l.position] == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// skipWhitespace skips over whitespace and // comments
func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) pos() Position {
	return Position{
		File:   l.file,
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Position: l.pos()}

	switch l.ch {
	case 0:
		tok.Type = TOKEN_EOF
		if l.position < len(l.input) {
			// Embedded NUL byte
			tok.Type = TOKEN_ILLEGAL
			tok.Value = "\x00"
			l.readChar()
		}
		return tok
	case '+':
		return l.single(tok, TOKEN_PLUS)
	case '*':
		return l.single(tok, TOKEN_STAR)
	case '/':
		return l.single(tok, TOKEN_SLASH)
	case '%':
		return l.single(tok, TOKEN_PERCENT)
	case '^':
		return l.single(tok, TOKEN_CARET)
	case '|':
		return l.single(tok, TOKEN_PIPE)
	case '\\':
		return l.single(tok, TOKEN_LAMBDA)
	case '(':
		return l.single(tok, TOKEN_LPAREN)
	case ')':
		return l.single(tok, TOKEN_RPAREN)
	case ',':
		return l.single(tok, TOKEN_COMMA)
	case '-':
		if l.peekChar() == '>' {
			return l.double(tok, TOKEN_ARROW)
		}
		return l.single(tok, TOKEN_MINUS)
	case '!':
		if l.peekChar() == '=' {
			return l.double(tok, TOKEN_NE)
		}
		return l.single(tok, TOKEN_ILLEGAL)
	case '.':
		if l.peekChar() == '.' {
			return l.double(tok, TOKEN_RANGE)
		}
		return l.single(tok, TOKEN_ILLEGAL)
	}

	if isDigit(l.ch) {
		tok.Type = TOKEN_NUMBER
		tok.Value = l.readNumber()
		return tok
	}
	if isLetter(l.ch) {
		tok.Type = TOKEN_IDENTIFIER
		tok.Value = l.readIdentifier()
		return tok
	}
	return l.single(tok, TOKEN_ILLEGAL)
}

func (l *Lexer) single(tok Token, typ TokenType) Token {
	tok.Type = typ
	tok.Value = string(l.ch)
	l.readChar()
	return tok
}

func (l *Lexer) double(tok Token, typ TokenType) Token {
	start := l.position
	l.readChar()
	l.readChar()
	tok.Type = typ
	tok.Value = l.input[start:l.position]
	return tok
}

// readNumber reads digits with an optional fraction and exponent.
// A '.' followed by another '.' is left alone so "1..5" lexes as a range.
func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && l.readPosition+1 < len(l.input) && isDigit(l.input[l.readPosition+1])) {
			l.readChar() // e
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	return l.input[start:l.position]
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// isLetter returns true if the character is an ASCII letter or underscore
func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

// isDigit returns true if the character is a digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
