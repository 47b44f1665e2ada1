package semantics

import (
	"github.com/EricksonLOOP/craze/ast"
	"github.com/EricksonLOOP/craze/lexer"
)

// analyzeExpr computes an expression's type, reporting any type error
// it finds along the way. It returns ast.Invalid for an ill-typed
// expression; callers must treat Invalid as "already reported, don't
// report again about it."
func (a *Analyzer) analyzeExpr(expr ast.Expr) ast.DataType {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Type()

	case *ast.Var:
		sym, ok := a.current.lookup(e.Name)
		if !ok {
			a.errorf(e.Line, e.Column, "undeclared variable '%s'", e.Name)
			return ast.Invalid
		}
		if sym.Category == FunctionSymbol {
			a.errorf(e.Line, e.Column, "'%s' is a function, not a variable", e.Name)
			return ast.Invalid
		}
		return sym.Type

	case *ast.Assign:
		sym, ok := a.current.lookup(e.Target)
		if !ok {
			a.errorf(e.Line, e.Column, "assignment to undeclared variable '%s'", e.Target)
			a.analyzeExpr(e.Value)
			return ast.Invalid
		}
		if sym.Category == FunctionSymbol {
			a.errorf(e.Line, e.Column, "cannot assign to '%s', it is a function", e.Target)
			a.analyzeExpr(e.Value)
			return ast.Invalid
		}
		valueType := a.analyzeExpr(e.Value)
		if valueType != ast.Invalid {
			a.checkAssignable(valueType, sym.Type, e.Pos(), "assignment")
		}
		return sym.Type

	case *ast.Call:
		return a.analyzeCall(e)

	case *ast.UnaryExpr:
		operandType := a.analyzeExpr(e.Operand)
		if operandType == ast.Invalid {
			return ast.Invalid
		}
		if !isNumeric(operandType) {
			a.errorf(e.Line, e.Column, "unary '-' requires a numeric operand, got %s", operandType)
			return ast.Invalid
		}
		return operandType

	case *ast.BinaryExpr:
		return a.analyzeBinary(e)

	default:
		return ast.Invalid
	}
}

// analyzeCall checks a call's argument count and types against its
// callee's symbol, with print special-cased to accept any arguments of
// any type and type special-cased to accept exactly one argument of
// any type (see the comment in registerBuiltins for why).
func (a *Analyzer) analyzeCall(call *ast.Call) ast.DataType {
	if call.Callee == "print" {
		for _, arg := range call.Args {
			a.analyzeExpr(arg)
		}
		return ast.Void
	}

	sym, ok := a.current.lookup(call.Callee)
	if !ok || sym.Category != FunctionSymbol {
		a.errorf(call.Line, call.Column, "call to undeclared function '%s'", call.Callee)
		for _, arg := range call.Args {
			a.analyzeExpr(arg)
		}
		return ast.Invalid
	}

	if call.Callee == "type" {
		if len(call.Args) != 1 {
			a.errorf(call.Line, call.Column, "'type' takes exactly 1 argument, got %d", len(call.Args))
		}
		for _, arg := range call.Args {
			a.analyzeExpr(arg)
		}
		return sym.ReturnType
	}

	if len(call.Args) != len(sym.Params) {
		a.errorf(call.Line, call.Column, "'%s' takes %d argument(s), got %d", call.Callee, len(sym.Params), len(call.Args))
	}
	for i, arg := range call.Args {
		argType := a.analyzeExpr(arg)
		if argType == ast.Invalid || i >= len(sym.Params) {
			continue
		}
		a.checkAssignable(argType, sym.Params[i], arg.Pos(), "argument")
	}
	return sym.ReturnType
}

func isNumeric(t ast.DataType) bool {
	return t == ast.Int || t == ast.Float
}

// analyzeBinary implements the arithmetic, string-concatenation,
// equality, and relational rules from the spec's type table.
func (a *Analyzer) analyzeBinary(e *ast.BinaryExpr) ast.DataType {
	leftType := a.analyzeExpr(e.Left)
	rightType := a.analyzeExpr(e.Right)
	if leftType == ast.Invalid || rightType == ast.Invalid {
		return ast.Invalid
	}

	switch e.Operator {
	case lexer.PLUS_OP, lexer.MINUS_OP, lexer.MUL_OP, lexer.DIV_OP, lexer.MOD_OP:
		return a.analyzeArithmetic(e, leftType, rightType)

	case lexer.EQ_OP, lexer.NE_OP:
		return a.analyzeEquality(e, leftType, rightType)

	case lexer.GT_OP, lexer.GE_OP, lexer.LT_OP, lexer.LE_OP:
		return a.analyzeOrdering(e, leftType, rightType)

	default:
		a.errorf(e.Line, e.Column, "unsupported binary operator '%s'", e.Operator)
		return ast.Invalid
	}
}

func (a *Analyzer) analyzeArithmetic(e *ast.BinaryExpr, leftType, rightType ast.DataType) ast.DataType {
	if e.Operator == lexer.PLUS_OP && leftType == ast.String && rightType == ast.String {
		return ast.String
	}

	if e.Operator == lexer.MOD_OP {
		if leftType != ast.Int || rightType != ast.Int {
			a.errorf(e.Line, e.Column, "'%%' requires int operands, got %s and %s", leftType, rightType)
			return ast.Invalid
		}
		return ast.Int
	}

	if !isNumeric(leftType) || !isNumeric(rightType) {
		a.errorf(e.Line, e.Column, "arithmetic operator '%s' requires numeric operands, got %s and %s", e.Operator, leftType, rightType)
		return ast.Invalid
	}

	if e.Operator == lexer.DIV_OP {
		if leftType == ast.Int && rightType == ast.Int {
			a.warnf(e.Line, e.Column, "division always produces float, widening int operands")
		}
		return ast.Float
	}

	if leftType == ast.Int && rightType == ast.Int {
		return ast.Int
	}
	a.warnf(e.Line, e.Column, "implicit widening of int to float in arithmetic expression")
	return ast.Float
}

// analyzeOrdering implements '>' '>=' '<' '<=': are_types_comparable in the
// original analyzer applies the same same-type-excluding-void-or-both-numeric
// rule to every comparison operator, ordering included, so this shares
// analyzeEquality's type check rather than requiring numeric operands.
func (a *Analyzer) analyzeOrdering(e *ast.BinaryExpr, leftType, rightType ast.DataType) ast.DataType {
	return a.analyzeEquality(e, leftType, rightType)
}

func (a *Analyzer) analyzeEquality(e *ast.BinaryExpr, leftType, rightType ast.DataType) ast.DataType {
	if isNumeric(leftType) && isNumeric(rightType) {
		if leftType != rightType {
			a.warnf(e.Line, e.Column, "comparing int and float widens the int operand")
		}
		return ast.Bool
	}
	if leftType == ast.Void || rightType == ast.Void {
		if leftType == ast.Void && rightType == ast.Void {
			return ast.Bool
		}
		a.errorf(e.Line, e.Column, "cannot compare %s and %s", leftType, rightType)
		return ast.Invalid
	}
	if leftType != rightType {
		a.errorf(e.Line, e.Column, "cannot compare %s and %s", leftType, rightType)
		return ast.Invalid
	}
	return ast.Bool
}
