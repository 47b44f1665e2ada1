package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EricksonLOOP/craze/ast"
	"github.com/EricksonLOOP/craze/lexer"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := NewParser(src)
	prog := p.ParseProgram()
	require.False(t, p.HasErrors(), "unexpected syntax errors: %v", p.GetErrors())
	return prog
}

func exprOf(t *testing.T, stmt ast.Stmt) ast.Expr {
	t.Helper()
	es, ok := stmt.(*ast.ExprStmt)
	require.True(t, ok, "expected *ast.ExprStmt, got %T", stmt)
	return es.Expr
}

func TestParser_OperatorPrecedence(t *testing.T) {
	prog := parseOK(t, "1 + 2 * 3;")
	require.Len(t, prog.Statements, 1)

	bin, ok := exprOf(t, prog.Statements[0]).(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.PLUS_OP, bin.Operator)

	left, ok := bin.Left.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, int64(1), left.IntValue)

	right, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.MUL_OP, right.Operator)
}

func TestParser_AdditionIsLeftAssociative(t *testing.T) {
	// "1 - 2 - 3" must parse as (1 - 2) - 3, not 1 - (2 - 3).
	prog := parseOK(t, "1 - 2 - 3;")
	top, ok := exprOf(t, prog.Statements[0]).(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.MINUS_OP, top.Operator)

	inner, ok := top.Left.(*ast.BinaryExpr)
	require.True(t, ok, "left child should be the nested (1 - 2)")
	assert.Equal(t, lexer.MINUS_OP, inner.Operator)

	_, rightIsLiteral := top.Right.(*ast.Literal)
	assert.True(t, rightIsLiteral, "right child should be the literal 3")
}

func TestParser_ComparisonBindsLooserThanAdditive(t *testing.T) {
	prog := parseOK(t, "1 + 1 == 2;")
	top, ok := exprOf(t, prog.Statements[0]).(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.EQ_OP, top.Operator)

	_, leftIsAdd := top.Left.(*ast.BinaryExpr)
	assert.True(t, leftIsAdd)
}

func TestParser_UnaryMinus(t *testing.T) {
	prog := parseOK(t, "-5;")
	u, ok := exprOf(t, prog.Statements[0]).(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.MINUS_OP, u.Operator)
	lit, ok := u.Operand.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, int64(5), lit.IntValue)
}

func TestParser_ParenthesesOverridePrecedence(t *testing.T) {
	prog := parseOK(t, "(1 + 2) * 3;")
	top, ok := exprOf(t, prog.Statements[0]).(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.MUL_OP, top.Operator)
	_, leftIsAdd := top.Left.(*ast.BinaryExpr)
	assert.True(t, leftIsAdd)
}

func TestParser_AssignmentIsRightAssociative(t *testing.T) {
	prog := parseOK(t, "a = b = 1;")
	outer, ok := exprOf(t, prog.Statements[0]).(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "a", outer.Target)

	inner, ok := outer.Value.(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Target)
}

// TestParser_InvalidAssignmentTarget checks that an assignment whose left
// side is not a bare variable is caught with the spec's specific
// diagnostic, not a generic "expected ';'" error from whatever statement
// production happens to run next.
func TestParser_InvalidAssignmentTarget(t *testing.T) {
	p := NewParser("x + 1 = 2;")
	p.ParseProgram()

	require.True(t, p.HasErrors())
	found := false
	for _, e := range p.GetErrors() {
		if e.Message == "left side of assignment must be a variable" {
			found = true
		}
	}
	assert.True(t, found, "expected the assignment-target diagnostic, got %v", p.GetErrors())
}

// TestParser_ParenthesizedVariableIsAssignable documents that parentheses
// are transparent in this grammar (parse_primary unwraps them to the
// inner node, exactly as the original C parser does), so `(x) = 1;` is a
// valid assignment to x, not a syntax error.
func TestParser_ParenthesizedVariableIsAssignable(t *testing.T) {
	prog := parseOK(t, "(x) = 1;")
	assign, ok := exprOf(t, prog.Statements[0]).(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Target)
}

func TestParser_VarDecl(t *testing.T) {
	prog := parseOK(t, `let count: int = 0;`)
	require.Len(t, prog.Statements, 1)
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "count", decl.Name)
	assert.Equal(t, ast.Int, decl.DeclaredType)
	lit, ok := decl.Init.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, int64(0), lit.IntValue)
}

func TestParser_FuncDeclWithParams(t *testing.T) {
	prog := parseOK(t, `
		fn add(a: int, b: int): int {
			return a + b;
		}
	`)
	require.Len(t, prog.Statements, 1)
	fn, ok := prog.Statements[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, ast.Int, fn.ReturnType)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, ast.Int, fn.Params[0].DeclaredType)
	require.Len(t, fn.Body.Statements, 1)

	ret, ok := fn.Body.Statements[0].(*ast.Return)
	require.True(t, ok)
	require.NotNil(t, ret.Value)
}

func TestParser_FuncDeclNoParams(t *testing.T) {
	prog := parseOK(t, `fn noop(): void { }`)
	fn, ok := prog.Statements[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Empty(t, fn.Params)
	assert.Equal(t, ast.Void, fn.ReturnType)
	assert.Empty(t, fn.Body.Statements)
}

func TestParser_IfElse(t *testing.T) {
	prog := parseOK(t, `
		if (1 < 2) {
			let x: int = 1;
		} else {
			let x: int = 2;
		}
	`)
	ifStmt, ok := prog.Statements[0].(*ast.If)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Then)
	require.NotNil(t, ifStmt.Else)
	assert.Len(t, ifStmt.Then.Statements, 1)
	assert.Len(t, ifStmt.Else.Statements, 1)
}

func TestParser_IfWithoutElse(t *testing.T) {
	prog := parseOK(t, `if (true) { }`)
	ifStmt, ok := prog.Statements[0].(*ast.If)
	require.True(t, ok)
	assert.Nil(t, ifStmt.Else)
}

func TestParser_While(t *testing.T) {
	prog := parseOK(t, `
		while (i < 10) {
			i = i + 1;
		}
	`)
	loop, ok := prog.Statements[0].(*ast.While)
	require.True(t, ok)
	require.Len(t, loop.Body.Statements, 1)
}

func TestParser_ReturnWithAndWithoutValue(t *testing.T) {
	prog := parseOK(t, `
		fn f(): void {
			return;
		}
	`)
	fn := prog.Statements[0].(*ast.FuncDecl)
	ret := fn.Body.Statements[0].(*ast.Return)
	assert.Nil(t, ret.Value)
}

func TestParser_CallWithArgs(t *testing.T) {
	prog := parseOK(t, `print(1, "two", true);`)
	call, ok := exprOf(t, prog.Statements[0]).(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "print", call.Callee)
	require.Len(t, call.Args, 3)
}

func TestParser_CallNoArgs(t *testing.T) {
	prog := parseOK(t, `len();`)
	call, ok := exprOf(t, prog.Statements[0]).(*ast.Call)
	require.True(t, ok)
	assert.Empty(t, call.Args)
}

func TestParser_StringLiteralIsUnquoted(t *testing.T) {
	prog := parseOK(t, `"hello";`)
	lit, ok := exprOf(t, prog.Statements[0]).(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "hello", lit.StringValue)
}

func TestParser_FloatLiteral(t *testing.T) {
	prog := parseOK(t, `3.5;`)
	lit, ok := exprOf(t, prog.Statements[0]).(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, ast.FloatLiteral, lit.Kind)
	assert.InDelta(t, 3.5, lit.FloatValue, 0.0001)
}

// TestParser_RecoversAfterSyntaxError checks that one malformed statement
// is reported and skipped without preventing a later, valid statement in
// the same file from being parsed.
func TestParser_RecoversAfterSyntaxError(t *testing.T) {
	src := `
		let : int = 1;
		let ok: int = 2;
	`
	p := NewParser(src)
	prog := p.ParseProgram()

	assert.True(t, p.HasErrors())
	require.Len(t, prog.Statements, 2)

	_, bad := prog.Statements[0].(*ast.BadStmt)
	assert.True(t, bad)

	good, ok := prog.Statements[1].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "ok", good.Name)
}

// TestParser_NeverPanicsAndAlwaysReturnsAProgram mirrors the lexer's
// totality property one layer up: however broken the input, ParseProgram
// must return a non-nil tree rather than panicking, so a caller can
// always inspect HasErrors/GetErrors.
func TestParser_NeverPanicsAndAlwaysReturnsAProgram(t *testing.T) {
	inputs := []string{
		"",
		";;;",
		"let",
		"fn (",
		"1 + + + ;",
		")))",
		"let x: int = ;",
	}

	for _, src := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("ParseProgram panicked on %q: %v", src, r)
				}
			}()
			p := NewParser(src)
			prog := p.ParseProgram()
			require.NotNil(t, prog)
		}()
	}
}
