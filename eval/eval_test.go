package eval

import (
	"compact/diag"
	"compact/parser"
	"compact/types"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// valueEqual lets cmp compare runtime values structurally
var valueEqual = cmp.Comparer(func(a, b types.Value) bool { return a.Equal(b) })

func num(v float64) types.Value { return types.NewNumber(v) }

func list(vals ...types.Value) types.Value { return types.NewList(vals) }

func nums(vals ...float64) types.Value {
	elems := make([]types.Value, len(vals))
	for i, v := range vals {
		elems[i] = num(v)
	}
	return types.NewList(elems)
}

func bools(vals ...bool) types.Value {
	elems := make([]types.Value, len(vals))
	for i, v := range vals {
		elems[i] = types.NewBool(v)
	}
	return types.NewList(elems)
}

// evalIn parses input and evaluates it against env
func evalIn(t *testing.T, env *types.Environment, input string) (types.Value, error) {
	t.Helper()
	expr, err := parser.Parse("test", input)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return NewEvaluatorWithEnv(env).Run(expr)
}

// testEnv has a few list bindings the grammar cannot write directly
func testEnv() *types.Environment {
	env := types.NewEnvironment()
	env.Define("xs", nums(1, 2, 3))
	env.Define("ys", nums(10, 20))
	env.Define("small", nums(1, 2))
	env.Define("t", types.NewBool(true))
	env.Define("s", types.NewStr("text"))
	env.Define("nothing", types.NewNone())
	return env
}

func mustEval(t *testing.T, input string) types.Value {
	t.Helper()
	v, err := evalIn(t, testEnv(), input)
	if err != nil {
		t.Fatalf("eval %q: %v", input, err)
	}
	return v
}

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1 + 2", 3},
		{"10 - 3", 7},
		{"4 * 5", 20},
		{"20 / 8", 2.5},
		{"17 % 5", 2},
		{"-7 % 5", -2},
		{"7.5 % 2", 1.5},
		{"2 ^ 10", 1024},
		{"2 ^ 0.5", math.Sqrt2},
		{"2 ^ -1", 0.5},
		{"-5", -5},
		{"0.1 + 0.2", 0.30000000000000004},
		{"1e308 * 10", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := mustEval(t, tt.input)
			if !got.Equal(num(tt.expected)) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestEvalScalarMatchesFloat(t *testing.T) {
	pairs := [][2]float64{{3, 4}, {-2.5, 0.75}, {1e10, 3}, {7, -3}, {0.3, 0.1}}
	for _, p := range pairs {
		a, b := p[0], p[1]
		want := map[parser.BinaryOp]float64{
			parser.OP_ADD:      a + b,
			parser.OP_SUBTRACT: a - b,
			parser.OP_MULTIPLY: a * b,
			parser.OP_DIVIDE:   a / b,
			parser.OP_MODULO:   math.Mod(a, b),
			parser.OP_POWER:    math.Pow(a, b),
		}
		for op, w := range want {
			got, err := applyBinary(op, num(a), num(b), parser.Position{})
			if err != nil {
				t.Fatalf("%v %s %v: %v", a, op, b, err)
			}
			n, _ := types.AsNumber(got)
			if math.Float64bits(n) != math.Float64bits(w) && !(math.IsNaN(n) && math.IsNaN(w)) {
				t.Errorf("%v %s %v = %v, want %v", a, op, b, n, w)
			}
		}
	}
}

func TestEvalDivideByZero(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 / 0", "inf"},
		{"-1 / 0", "-inf"},
		{"0 / 0", "nan"},
		{"5 % 0", "nan"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := mustEval(t, tt.input).String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEvalNotEqual(t *testing.T) {
	tests := []struct {
		input string
		want  types.Value
	}{
		{"1 != 2", types.NewBool(true)},
		{"2 != 2", types.NewBool(false)},
		{"0 / 0 != 0 / 0", types.NewBool(true)},
		{"xs != 2", bools(true, false, true)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, mustEval(t, tt.input), valueEqual); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvalRange(t *testing.T) {
	tests := []struct {
		input string
		want  types.Value
	}{
		{"2..5", nums(2, 3, 4)},
		{"5..5", nums()},
		{"5..2", nums()},
		{"0..1", nums(0)},
		{"4 / 2..9 / 3", nums(2)},
		{"xs..3", list(nums(1, 2), nums(2), nums())},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, mustEval(t, tt.input), valueEqual); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvalRangeErrors(t *testing.T) {
	inputs := []string{
		"2.5..5",
		"0..4.5",
		"-1..3",
		"0..1 / 0",
		"0..0 / 0",
		"0..2 ^ 60",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := evalIn(t, testEnv(), input)
			if code, _ := diag.CodeOf(err); code != types.E_RANGE {
				t.Errorf("expected E_RANGE, got %v", err)
			}
		})
	}
}

func TestEvalBroadcast(t *testing.T) {
	tests := []struct {
		input string
		want  types.Value
	}{
		{"xs + 10", nums(11, 12, 13)},
		{"10 + xs", nums(11, 12, 13)},
		{"small + ys", list(nums(11, 21), nums(12, 22))},
		{"ys - small", list(nums(9, 8), nums(19, 18))},
		{"(small + ys) * 2", list(nums(22, 42), nums(24, 44))},
		{"2 ^ xs", nums(2, 4, 8)},
		{"(0..0) + 1", nums()},
		{"(0..0) + s", nums()},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, mustEval(t, tt.input), valueEqual); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvalOperandErrors(t *testing.T) {
	inputs := []string{
		"s + 1",
		"1 + s",
		"s + s",
		"t * 2",
		"nothing - 1",
		"xs + t",
		`(\x -> x) + 1`,
		"xs..t",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := evalIn(t, testEnv(), input)
			if code, _ := diag.CodeOf(err); code != types.E_OPERANDS {
				t.Errorf("expected E_OPERANDS, got %v", err)
			}
		})
	}
}

func TestEvalFilter(t *testing.T) {
	tests := []struct {
		input string
		want  types.Value
	}{
		{`1..5 | \x -> x != 2`, nums(1, 3, 4)},
		{`xs | \x -> x != x`, nums()},
		{`xs | \x -> small != x`, nums(3)},
		{`xs | \x -> (0..0) != x`, nums(1, 2, 3)},
		{`xs | \x -> (1..x) != 2`, nums(1, 2)},
		{`0..0 | \x -> s`, nums()},
		{`xs | \x -> t`, nums(1, 2, 3)},
		{`list_of_lists | \l -> l != 0`, list(nums(1, 2))},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			env := testEnv()
			env.Define("list_of_lists", list(nums(1, 2), nums(0, 3)))
			got, err := evalIn(t, env, tt.input)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, valueEqual); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvalFilterKeepsElementsUntouched(t *testing.T) {
	env := testEnv()
	fn := types.NewFunc(nil, nil, env)
	env.Define("fns", list(fn, num(1)))
	got, err := evalIn(t, env, `fns | \f -> t`)
	if err != nil {
		t.Fatal(err)
	}
	elems, _ := types.AsList(got)
	if len(elems) != 2 || elems[0] != types.Value(fn) {
		t.Errorf("filter should return the original elements, got %v", got)
	}
}

func TestEvalFilterErrors(t *testing.T) {
	tests := []struct {
		input string
		code  types.ErrorCode
	}{
		{`1 | \x -> t`, types.E_FILTER},
		{`s | \x -> t`, types.E_FILTER},
		{"xs | 1", types.E_FILTER},
		{"xs | xs", types.E_FILTER},
		{`xs | \x -> x`, types.E_FILTERRESULT},
		{`xs | \x -> s`, types.E_FILTERRESULT},
		{`xs | \x -> nothing`, types.E_FILTERRESULT},
		{`xs | \x -> \y -> t`, types.E_FILTERRESULT},
		{`xs | \x -> mixed`, types.E_FILTERRESULT},
		{`xs | \x -> mixed_false_first`, types.E_FILTERRESULT},
		{`xs | \x, y -> t`, types.E_ARGS},
		{`xs | \ -> t`, types.E_ARGS},
		{`xs | \x -> missing`, types.E_UNDEFINED},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			env := testEnv()
			env.Define("mixed", list(types.NewBool(true), num(1)))
			env.Define("mixed_false_first", list(types.NewBool(false), num(1)))
			_, err := evalIn(t, env, tt.input)
			if code, _ := diag.CodeOf(err); code != tt.code {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestEvalErrorPositions(t *testing.T) {
	tests := []struct {
		input  string
		code   types.ErrorCode
		line   int
		column int
	}{
		{"x", types.E_UNDEFINED, 1, 1},
		{"1 + (2 * x)", types.E_UNDEFINED, 1, 10},
		{"1 +\n   x", types.E_UNDEFINED, 2, 4},
		{"a + b", types.E_UNDEFINED, 1, 1},
		{"1 + s", types.E_OPERANDS, 1, 1},
		{"3 * (s + 1)", types.E_OPERANDS, 1, 6},
		{"  2.5..5", types.E_RANGE, 1, 3},
		{`1 + (5 | \x -> t)`, types.E_FILTER, 1, 6},
		{`xs | \x -> x`, types.E_FILTERRESULT, 1, 1},
		{`xs | \x -> x + q`, types.E_UNDEFINED, 1, 16},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := evalIn(t, testEnv(), tt.input)
			var de *diag.Error
			if !errors.As(err, &de) {
				t.Fatalf("expected *diag.Error, got %v", err)
			}
			if de.Code != tt.code {
				t.Errorf("code = %s, want %s", de.Code, tt.code)
			}
			if de.Pos.File != "test" || de.Pos.Line != tt.line || de.Pos.Column != tt.column {
				t.Errorf("position = %s, want test:%d:%d", de.Pos, tt.line, tt.column)
			}
		})
	}
}

func TestEvalUndefinedMessage(t *testing.T) {
	_, err := evalIn(t, types.NewEnvironment(), "missing")
	if err == nil || err.Error() != "test:1:1: Variable missing is not defined" {
		t.Errorf("got %v", err)
	}
}

func TestEvalUnknownOperator(t *testing.T) {
	pos := parser.Position{File: "t", Line: 1, Column: 1}
	node := &parser.BinaryExpr{
		Pos:   pos,
		Op:    parser.BinaryOp(99),
		Left:  &parser.NumberLit{Pos: pos, Value: 1},
		Right: &parser.NumberLit{Pos: pos, Value: 2},
	}
	_, err := Evaluate(node)
	if code, _ := diag.CodeOf(err); code != types.E_UNKNOWNOP {
		t.Errorf("expected E_UNKNOWNOP, got %v", err)
	}
}

// strayNode satisfies parser.Expr without being a node the evaluator knows
type strayNode struct{ parser.Expr }

func (strayNode) Position() parser.Position {
	return parser.Position{File: "t", Line: 2, Column: 4}
}

func TestEvalUnknownNode(t *testing.T) {
	tests := []struct {
		name    string
		node    parser.Expr
		wantPos parser.Position
		wantMsg string
	}{
		{"nil node", nil, parser.Position{}, "Unknown expression node"},
		{"unrecognized node", strayNode{}, parser.Position{File: "t", Line: 2, Column: 4}, "Unknown expression node eval.strayNode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.node)
			var de *diag.Error
			if !errors.As(err, &de) {
				t.Fatalf("expected diag.Error, got %v", err)
			}
			if de.Code != types.E_UNKNOWNNODE {
				t.Errorf("code = %v, want E_UNKNOWNNODE", de.Code)
			}
			if de.Pos != tt.wantPos {
				t.Errorf("pos = %v, want %v", de.Pos, tt.wantPos)
			}
			if de.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", de.Message, tt.wantMsg)
			}
		})
	}
}

func TestEvaluateUsesEmptyRoot(t *testing.T) {
	expr, err := parser.Parse("", "true")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Evaluate(expr); err == nil {
		t.Error("Evaluate should start without any bindings")
	}

	expr, err = parser.Parse("", "(1..4) * 2")
	if err != nil {
		t.Fatal(err)
	}
	v, err := Evaluate(expr)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "[2, 4, 6, ]" {
		t.Errorf("got %s", v)
	}
}

func TestEvalFunctionValue(t *testing.T) {
	env := testEnv()
	v, err := evalIn(t, env, `\a, b -> undefined_name`)
	if err != nil {
		t.Fatalf("creating a function must not evaluate its body: %v", err)
	}
	fn, ok := types.AsFunc(v)
	if !ok {
		t.Fatalf("expected function, got %v", v)
	}
	if diff := cmp.Diff([]string{"a", "b"}, fn.Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
	if fn.Env != env {
		t.Error("function should capture the active environment")
	}
	if _, ok := fn.Body.(*parser.VariableRef); !ok {
		t.Errorf("body = %T", fn.Body)
	}
}
