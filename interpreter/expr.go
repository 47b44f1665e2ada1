package interpreter

import (
	"math"

	"github.com/EricksonLOOP/craze/ast"
	"github.com/EricksonLOOP/craze/environment"
	"github.com/EricksonLOOP/craze/lexer"
	"github.com/EricksonLOOP/craze/value"
)

// floatEqualityTolerance is the absolute tolerance the spec mandates
// for comparing two float values with == or !=.
const floatEqualityTolerance = 1e-10

// eval evaluates expr against env and returns a value the caller owns
// exactly one reference to.
func (interp *Interpreter) eval(expr ast.Expr, env *environment.Environment) (*value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return interp.evalLiteral(e), nil

	case *ast.Var:
		v, ok := env.Lookup(e.Name)
		if !ok {
			return nil, interp.raise(e.Line, e.Column, "variable '%s' not declared", e.Name)
		}
		return v.Retain(), nil

	case *ast.Assign:
		v, err := interp.eval(e.Value, env)
		if err != nil {
			return nil, err
		}
		if !env.Assign(e.Target, v) {
			return nil, interp.raise(e.Line, e.Column, "variable '%s' not declared", e.Target)
		}
		return v, nil

	case *ast.UnaryExpr:
		return interp.evalUnary(e, env)

	case *ast.BinaryExpr:
		return interp.evalBinary(e, env)

	case *ast.Call:
		return interp.evalCall(e, env)

	default:
		return nil, interp.raise(expr.Pos().Line, expr.Pos().Column, "unevaluable expression")
	}
}

func (interp *Interpreter) evalLiteral(lit *ast.Literal) *value.Value {
	switch lit.Kind {
	case ast.IntLiteral:
		return value.NewInt(lit.IntValue)
	case ast.FloatLiteral:
		return value.NewFloat(lit.FloatValue)
	case ast.StringLiteral:
		return value.NewString(lit.StringValue)
	case ast.BoolLiteral:
		return value.NewBool(lit.BoolValue)
	default:
		return value.NewNull()
	}
}

func (interp *Interpreter) evalUnary(e *ast.UnaryExpr, env *environment.Environment) (*value.Value, error) {
	operand, err := interp.eval(e.Operand, env)
	if err != nil {
		return nil, err
	}
	defer operand.Release()

	switch operand.Kind {
	case value.Int:
		return value.NewInt(-operand.IntVal), nil
	case value.Float:
		return value.NewFloat(-operand.FloatVal), nil
	default:
		return nil, interp.raise(e.Line, e.Column, "unary '-' requires a numeric operand, got %s", operand.Kind)
	}
}

func asFloat(v *value.Value) float64 {
	if v.Kind == value.Int {
		return float64(v.IntVal)
	}
	return v.FloatVal
}

func (interp *Interpreter) evalBinary(e *ast.BinaryExpr, env *environment.Environment) (*value.Value, error) {
	left, err := interp.eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := interp.eval(e.Right, env)
	if err != nil {
		left.Release()
		return nil, err
	}
	defer left.Release()
	defer right.Release()

	switch e.Operator {
	case lexer.PLUS_OP:
		if left.Kind == value.String && right.Kind == value.String {
			return value.NewString(left.StringVal + right.StringVal), nil
		}
		return interp.arith(e, left, right, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
	case lexer.MINUS_OP:
		return interp.arith(e, left, right, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	case lexer.MUL_OP:
		return interp.arith(e, left, right, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
	case lexer.DIV_OP:
		if asFloat(right) == 0 {
			return nil, interp.raise(e.Line, e.Column, "division by zero")
		}
		return value.NewFloat(asFloat(left) / asFloat(right)), nil
	case lexer.MOD_OP:
		if left.Kind != value.Int || right.Kind != value.Int {
			return nil, interp.raise(e.Line, e.Column, "'%%' requires int operands, got %s and %s", left.Kind, right.Kind)
		}
		if right.IntVal == 0 {
			return nil, interp.raise(e.Line, e.Column, "division by zero")
		}
		return value.NewInt(left.IntVal % right.IntVal), nil
	case lexer.EQ_OP:
		return value.NewBool(interp.valuesEqual(left, right)), nil
	case lexer.NE_OP:
		return value.NewBool(!interp.valuesEqual(left, right)), nil
	case lexer.GT_OP, lexer.GE_OP, lexer.LT_OP, lexer.LE_OP:
		return interp.compareOrder(e, left, right)
	default:
		return nil, interp.raise(e.Line, e.Column, "unsupported binary operator '%s'", e.Operator)
	}
}

// compareOrder implements '>' '>=' '<' '<=': numeric only, at runtime,
// even though the analyzer's type rule also allows same-type-excluding-void
// operands (so e.g. two bools type-check). Matches op_compare_gt/lt in the
// original interpreter, which compare numerically and raise a runtime error
// for anything else rather than defining an ordering over bool or string.
func (interp *Interpreter) compareOrder(e *ast.BinaryExpr, left, right *value.Value) (*value.Value, error) {
	if !isNumericValue(left) || !isNumericValue(right) {
		return nil, interp.raise(e.Line, e.Column, "operator '%s' not supported for types %s and %s", e.Operator, left.Kind, right.Kind)
	}
	l, r := asFloat(left), asFloat(right)
	switch e.Operator {
	case lexer.GT_OP:
		return value.NewBool(l > r), nil
	case lexer.GE_OP:
		return value.NewBool(l >= r), nil
	case lexer.LT_OP:
		return value.NewBool(l < r), nil
	default:
		return value.NewBool(l <= r), nil
	}
}

// arith applies intOp when both operands are int, otherwise widens both
// to float and applies floatOp -- the "division always float, otherwise
// int iff both int" rule from the spec, minus the / and % cases which
// their callers special-case above.
func (interp *Interpreter) arith(e *ast.BinaryExpr, left, right *value.Value, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) (*value.Value, error) {
	if left.Kind == value.Int && right.Kind == value.Int {
		return value.NewInt(intOp(left.IntVal, right.IntVal)), nil
	}
	if !isNumericValue(left) || !isNumericValue(right) {
		return nil, interp.raise(e.Line, e.Column, "arithmetic operator '%s' requires numeric operands, got %s and %s", e.Operator, left.Kind, right.Kind)
	}
	return value.NewFloat(floatOp(asFloat(left), asFloat(right))), nil
}

func isNumericValue(v *value.Value) bool {
	return v.Kind == value.Int || v.Kind == value.Float
}

func (interp *Interpreter) valuesEqual(left, right *value.Value) bool {
	if isNumericValue(left) && isNumericValue(right) {
		return math.Abs(asFloat(left)-asFloat(right)) <= floatEqualityTolerance
	}
	if left.Kind != right.Kind {
		return false
	}
	switch left.Kind {
	case value.String:
		return left.StringVal == right.StringVal
	case value.Bool:
		return left.BoolVal == right.BoolVal
	case value.Void, value.Null:
		return true
	default:
		return false
	}
}
