package parser

// Node is the base interface for all AST nodes
type Node interface {
	Position() Position
}

// Expr represents an expression node. The set of implementations is closed:
// VariableRef, NumberLit, BinaryExpr, FunctionExpr and FilterExpr.
type Expr interface {
	Node
	exprNode()
}

// VariableRef represents a variable reference
type VariableRef struct {
	Pos  Position
	Name string
}

func (e *VariableRef) Position() Position { return e.Pos }
func (e *VariableRef) exprNode()          {}

// NumberLit represents a numeric literal
type NumberLit struct {
	Pos   Position
	Value float64
}

func (e *NumberLit) Position() Position { return e.Pos }
func (e *NumberLit) exprNode()          {}

// BinaryOp is the closed set of binary operators
type BinaryOp int

const (
	OP_ADD BinaryOp = iota
	OP_SUBTRACT
	OP_MULTIPLY
	OP_DIVIDE
	OP_MODULO
	OP_RANGE
	OP_POWER
	OP_NOT_EQUAL
)

// String returns the operator name
func (op BinaryOp) String() string {
	switch op {
	case OP_ADD:
		return "ADD"
	case OP_SUBTRACT:
		return "SUBTRACT"
	case OP_MULTIPLY:
		return "MULTIPLY"
	case OP_DIVIDE:
		return "DIVIDE"
	case OP_MODULO:
		return "MODULO"
	case OP_RANGE:
		return "RANGE"
	case OP_POWER:
		return "POWER"
	case OP_NOT_EQUAL:
		return "NOT_EQUAL"
	default:
		return "UNKNOWN"
	}
}

// Symbol returns the source spelling of the operator
func (op BinaryOp) Symbol() string {
	switch op {
	case OP_ADD:
		return "+"
	case OP_SUBTRACT:
		return "-"
	case OP_MULTIPLY:
		return "*"
	case OP_DIVIDE:
		return "/"
	case OP_MODULO:
		return "%"
	case OP_RANGE:
		return ".."
	case OP_POWER:
		return "^"
	case OP_NOT_EQUAL:
		return "!="
	default:
		return "?"
	}
}

// BinaryExpr represents a binary operation. Pos is the start of the left operand.
type BinaryExpr struct {
	Pos   Position
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (e *BinaryExpr) Position() Position { return e.Pos }
func (e *BinaryExpr) exprNode()          {}

// FunctionExpr represents a function literal: \x, y -> body
type FunctionExpr struct {
	Pos    Position
	Params []string
	Body   Expr
}

func (e *FunctionExpr) Position() Position { return e.Pos }
func (e *FunctionExpr) exprNode()          {}

// FilterExpr represents list | predicate
type FilterExpr struct {
	Pos   Position
	Left  Expr
	Right Expr
}

func (e *FilterExpr) Position() Position { return e.Pos }
func (e *FilterExpr) exprNode()          {}
