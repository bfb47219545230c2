package parser

import "strconv"

// Operator precedence levels (higher = tighter binding)
const (
	PREC_LOWEST  = iota
	PREC_FILTER  // |
	PREC_COMPARE // !=
	PREC_RANGE   // ..
	PREC_SUM     // + -
	PREC_PRODUCT // * / %
	PREC_POWER   // ^
)

var infixOps = map[TokenType]struct {
	op   BinaryOp
	prec int
}{
	TOKEN_NE:      {OP_NOT_EQUAL, PREC_COMPARE},
	TOKEN_RANGE:   {OP_RANGE, PREC_RANGE},
	TOKEN_PLUS:    {OP_ADD, PREC_SUM},
	TOKEN_MINUS:   {OP_SUBTRACT, PREC_SUM},
	TOKEN_STAR:    {OP_MULTIPLY, PREC_PRODUCT},
	TOKEN_SLASH:   {OP_DIVIDE, PREC_PRODUCT},
	TOKEN_PERCENT: {OP_MODULO, PREC_PRODUCT},
	TOKEN_CARET:   {OP_POWER, PREC_POWER},
}

// Parser parses expression source code into a syntax tree
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
}

// NewParser creates a new Parser instance
func NewParser(input string) *Parser {
	return NewFileParser("", input)
}

// NewFileParser creates a Parser whose node positions carry the given file name
func NewFileParser(file, input string) *Parser {
	p := &Parser{
		lexer: NewFileLexer(file, input),
	}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a complete program from source text
func Parse(file, input string) (Expr, error) {
	return NewFileParser(file, input).ParseProgram()
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.current = p.peek
	p.peek = p.lexer.NextToken()
}

// ParseProgram parses a single expression that must span the whole input
func (p *Parser) ParseProgram() (Expr, error) {
	expr, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	if p.current.Type != TOKEN_EOF {
		return nil, p.errorf("unexpected %s after expression", describe(p.current))
	}
	return expr, nil
}

// ParseExpression parses an expression whose operators bind tighter than prec
func (p *Parser) ParseExpression(prec int) (Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	// set while left is a range built by this loop; ".." does not associate
	ranged := false
	for {
		if p.current.Type == TOKEN_PIPE {
			if PREC_FILTER <= prec {
				return left, nil
			}
			p.nextToken() // skip '|'
			right, err := p.ParseExpression(PREC_FILTER)
			if err != nil {
				return nil, err
			}
			left = &FilterExpr{Pos: left.Position(), Left: left, Right: right}
			ranged = false
			continue
		}

		info, ok := infixOps[p.current.Type]
		if !ok || info.prec <= prec {
			return left, nil
		}
		if info.op == OP_RANGE && ranged {
			return nil, p.errorf("chained '..' needs parentheses")
		}
		p.nextToken() // skip operator

		// ^ is right-associative: parse the right side at one level lower
		rightPrec := info.prec
		if info.op == OP_POWER {
			rightPrec--
		}
		right, err := p.ParseExpression(rightPrec)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Pos: left.Position(), Op: info.op, Left: left, Right: right}
		ranged = info.op == OP_RANGE
	}
}

// parsePrefix parses a primary expression, a negation or a function literal
func (p *Parser) parsePrefix() (Expr, error) {
	tok := p.current
	switch tok.Type {
	case TOKEN_NUMBER:
		return p.parseNumber()

	case TOKEN_IDENTIFIER:
		p.nextToken()
		return &VariableRef{Pos: tok.Position, Name: tok.Value}, nil

	case TOKEN_LPAREN:
		p.nextToken() // skip '('
		expr, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		if p.current.Type != TOKEN_RPAREN {
			return nil, p.errorf("expected ')', got %s", describe(p.current))
		}
		p.nextToken() // skip ')'
		return expr, nil

	case TOKEN_MINUS:
		return p.parseNegation()

	case TOKEN_LAMBDA:
		return p.parseFunction()

	case TOKEN_EOF:
		return nil, p.errorf("unexpected end of input")

	default:
		return nil, p.errorf("unexpected %s", describe(tok))
	}
}

// parseNumber parses a numeric literal
func (p *Parser) parseNumber() (Expr, error) {
	tok := p.current
	val, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return nil, p.errorf("invalid number %q: %v", tok.Value, err)
	}
	p.nextToken()
	return &NumberLit{Pos: tok.Position, Value: val}, nil
}

// parseNegation handles unary minus. There is no unary node, so a negated
// literal folds into the literal and anything else becomes 0 - operand.
func (p *Parser) parseNegation() (Expr, error) {
	pos := p.current.Position
	p.nextToken() // skip '-'
	operand, err := p.ParseExpression(PREC_PRODUCT)
	if err != nil {
		return nil, err
	}
	if lit, ok := operand.(*NumberLit); ok {
		return &NumberLit{Pos: pos, Value: -lit.Value}, nil
	}
	return &BinaryExpr{
		Pos:   pos,
		Op:    OP_SUBTRACT,
		Left:  &NumberLit{Pos: pos, Value: 0},
		Right: operand,
	}, nil
}

// parseFunction parses a function literal: \x, y -> body
// The body extends as far right as possible.
func (p *Parser) parseFunction() (Expr, error) {
	pos := p.current.Position
	p.nextToken() // skip '\'

	params := []string{}
	seen := make(map[string]bool)
	for p.current.Type == TOKEN_IDENTIFIER {
		name := p.current.Value
		if seen[name] {
			return nil, p.errorf("duplicate parameter %q", name)
		}
		seen[name] = true
		params = append(params, name)
		p.nextToken()
		if p.current.Type != TOKEN_COMMA {
			break
		}
		p.nextToken() // skip ','
		if p.current.Type != TOKEN_IDENTIFIER {
			return nil, p.errorf("expected parameter name, got %s", describe(p.current))
		}
	}

	if p.current.Type != TOKEN_ARROW {
		return nil, p.errorf("expected '->', got %s", describe(p.current))
	}
	p.nextToken() // skip '->'

	body, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	return &FunctionExpr{Pos: pos, Params: params, Body: body}, nil
}
