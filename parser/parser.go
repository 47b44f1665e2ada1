// Package parser implements the recursive-descent parser that turns a
// token stream from lexer into the typed ast.Program tree.
package parser

import (
	"fmt"

	"github.com/EricksonLOOP/craze/ast"
	"github.com/EricksonLOOP/craze/internal/diag"
	"github.com/EricksonLOOP/craze/lexer"
)

// Parser consumes tokens one at a time from Lex and builds an ast.Program.
// It never stops at the first syntax error: on a bad statement it reports
// a SyntaxError and resynchronizes at the next likely statement boundary,
// so a single source file can surface every error it contains in one pass.
type Parser struct {
	Lex *lexer.Lexer

	Cur  lexer.Token // token currently being examined
	Next lexer.Token // one token of lookahead

	Errors []SyntaxError

	// synchronizing doubles as the original parser's panic_mode flag: it
	// is set the moment error() records a diagnostic, which also
	// suppresses every further error() call until synchronize() clears
	// it at the next safe resume point. Statement-level callers check it
	// after parsing their body so one malformed statement turns into one
	// BadStmt instead of a cascade of spurious diagnostics.
	synchronizing bool
}

// NewParser creates a Parser over src and primes Cur/Next.
func NewParser(src string) *Parser {
	p := &Parser{Lex: lexer.NewLexer(src)}
	p.advance()
	p.advance()
	return p
}

// HasErrors reports whether any syntax error was accumulated.
func (p *Parser) HasErrors() bool {
	return len(p.Errors) > 0
}

// GetErrors returns every accumulated syntax error, in the order encountered.
func (p *Parser) GetErrors() []SyntaxError {
	return p.Errors
}

// advance discards Cur, promotes Next into it, and pulls a fresh token
// from the lexer into Next. Lexical ERROR_TYPE tokens are reported here
// and skipped so the parser never has to special-case them at every
// call site.
func (p *Parser) advance() {
	p.Cur = p.Next
	for {
		tok := p.Lex.NextToken()
		if tok.Type == lexer.ERROR_TYPE {
			p.error(diag.Lexical, tok.Line, tok.Column, tok.Literal)
			continue
		}
		p.Next = tok
		return
	}
}

// error records a diagnostic of the given kind at line/column, unless the
// parser is already resynchronizing from an earlier error in the same
// statement. This mirrors the original parser's parser_error, which
// no-ops once panic_mode is set and only resumes reporting once
// synchronize() has found a safe resume point -- so one malformed
// statement produces exactly one diagnostic instead of a cascade.
func (p *Parser) error(kind diag.Kind, line, column int, format string, args ...any) {
	if p.synchronizing {
		return
	}
	p.synchronizing = true
	p.Errors = append(p.Errors, SyntaxError{Kind: kind, Line: line, Column: column, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) errorAtCur(format string, args ...any) {
	p.error(diag.Syntactic, p.Cur.Line, p.Cur.Column, format, args...)
}

// check reports whether Cur is of type typ without consuming it.
func (p *Parser) check(typ lexer.TokenType) bool {
	return p.Cur.Type == typ
}

// match consumes Cur and returns true if it is of type typ; otherwise it
// leaves the cursor untouched and returns false.
func (p *Parser) match(typ lexer.TokenType) bool {
	if !p.check(typ) {
		return false
	}
	p.advance()
	return true
}

// expect consumes Cur if it is of type typ, returning its literal.
// Otherwise it records a SyntaxError and returns the empty string,
// without consuming the unexpected token, so the caller's synchronize
// call has a stable place to resume scanning.
func (p *Parser) expect(typ lexer.TokenType, what string) string {
	if p.check(typ) {
		lit := p.Cur.Literal
		p.advance()
		return lit
	}
	p.errorAtCur("expected %s, got %q", what, p.Cur.Literal)
	return ""
}

// pos captures Cur's source position for a node under construction.
func (p *Parser) pos() ast.Position {
	return ast.Position{Line: p.Cur.Line, Column: p.Cur.Column}
}

// ParseProgram parses the entire token stream into an *ast.Program. It
// always returns a non-nil program, even when HasErrors is true
// afterward: callers that only care about syntax validity check
// HasErrors, while tooling that wants a best-effort tree (e.g. an
// editor) can still walk what was recovered.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.check(lexer.EOF_TYPE) {
		prog.Statements = append(prog.Statements, p.declarationRecovering())
	}
	return prog
}

// declarationRecovering parses one declaration and, if it tripped the
// synchronizing flag partway through (an expression met a token that
// could not start one), discards the rest of it and resynchronizes at
// the next safe statement boundary instead of propagating a malformed
// tree upward.
func (p *Parser) declarationRecovering() ast.Stmt {
	start := p.pos()
	stmt := p.declaration()
	if p.synchronizing {
		p.synchronize()
		return p.badStmt(start, "statement skipped after syntax error")
	}
	return stmt
}

// declaration := varDecl | funcDecl | statement
func (p *Parser) declaration() ast.Stmt {
	switch p.Cur.Type {
	case lexer.LET_KEY:
		return p.varDecl()
	case lexer.FUNC_KEY:
		return p.funcDecl()
	default:
		return p.statement()
	}
}

// varDecl := 'let' IDENT ':' type '=' expression ';'
func (p *Parser) varDecl() ast.Stmt {
	start := p.pos()
	p.advance() // 'let'

	name := p.expect(lexer.IDENTIFIER, "variable name")
	p.expect(lexer.COLON_DELIM, "':'")
	declaredType := p.parseType()
	p.expect(lexer.ASSIGN_OP, "'='")
	init := p.expression()
	p.expect(lexer.SEMICOLON_DELIM, "';'")

	return &ast.VarDecl{Position: start, Name: name, DeclaredType: declaredType, Init: init}
}

// funcDecl := 'fn' IDENT '(' params? ')' ':' type block
func (p *Parser) funcDecl() ast.Stmt {
	start := p.pos()
	p.advance() // 'fn'

	name := p.expect(lexer.IDENTIFIER, "function name")
	p.expect(lexer.LEFT_PAREN, "'('")
	var params []ast.Param
	if !p.check(lexer.RIGHT_PAREN) {
		params = p.params()
	}
	p.expect(lexer.RIGHT_PAREN, "')'")
	p.expect(lexer.COLON_DELIM, "':'")
	returnType := p.parseType()
	body := p.block()

	return &ast.FuncDecl{Position: start, Name: name, Params: params, ReturnType: returnType, Body: body}
}

// params := param (',' param)*
func (p *Parser) params() []ast.Param {
	var params []ast.Param
	params = append(params, p.param())
	for p.match(lexer.COMMA_DELIM) {
		params = append(params, p.param())
	}
	return params
}

// param := IDENT ':' type
func (p *Parser) param() ast.Param {
	start := p.pos()
	name := p.expect(lexer.IDENTIFIER, "parameter name")
	p.expect(lexer.COLON_DELIM, "':'")
	typ := p.parseType()
	return ast.Param{Position: start, Name: name, DeclaredType: typ}
}

// parseType consumes one of the five primitive type keywords. An
// unrecognized token is reported and treated as ast.Invalid so the
// caller can keep going rather than abort the whole declaration.
func (p *Parser) parseType() ast.DataType {
	switch p.Cur.Type {
	case lexer.INT_KEY:
		p.advance()
		return ast.Int
	case lexer.FLOAT_KEY:
		p.advance()
		return ast.Float
	case lexer.STRING_KEY:
		p.advance()
		return ast.String
	case lexer.BOOL_KEY:
		p.advance()
		return ast.Bool
	case lexer.VOID_KEY:
		p.advance()
		return ast.Void
	default:
		p.errorAtCur("expected a type, got %q", p.Cur.Literal)
		return ast.Invalid
	}
}

// statement := ifStmt | whileStmt | returnStmt | block | exprStmt
func (p *Parser) statement() ast.Stmt {
	switch p.Cur.Type {
	case lexer.IF_KEY:
		return p.ifStmt()
	case lexer.WHILE_KEY:
		return p.whileStmt()
	case lexer.RETURN_KEY:
		return p.returnStmt()
	case lexer.LEFT_BRACE:
		return p.block()
	default:
		return p.exprStmt()
	}
}

// ifStmt := 'if' '(' expression ')' block ('else' block)?
func (p *Parser) ifStmt() ast.Stmt {
	start := p.pos()
	p.advance() // 'if'
	p.expect(lexer.LEFT_PAREN, "'('")
	cond := p.expression()
	p.expect(lexer.RIGHT_PAREN, "')'")
	then := p.block()

	var elseBlock *ast.Block
	if p.match(lexer.ELSE_KEY) {
		elseBlock = p.block()
	}

	return &ast.If{Position: start, Cond: cond, Then: then, Else: elseBlock}
}

// whileStmt := 'while' '(' expression ')' block
func (p *Parser) whileStmt() ast.Stmt {
	start := p.pos()
	p.advance() // 'while'
	p.expect(lexer.LEFT_PAREN, "'('")
	cond := p.expression()
	p.expect(lexer.RIGHT_PAREN, "')'")
	body := p.block()

	return &ast.While{Position: start, Cond: cond, Body: body}
}

// returnStmt := 'return' expression? ';'
func (p *Parser) returnStmt() ast.Stmt {
	start := p.pos()
	p.advance() // 'return'

	var value ast.Expr
	if !p.check(lexer.SEMICOLON_DELIM) {
		value = p.expression()
	}
	p.expect(lexer.SEMICOLON_DELIM, "';'")

	return &ast.Return{Position: start, Value: value}
}

// block := '{' declaration* '}'
func (p *Parser) block() *ast.Block {
	start := p.pos()
	p.expect(lexer.LEFT_BRACE, "'{'")

	b := &ast.Block{Position: start}
	for !p.check(lexer.RIGHT_BRACE) && !p.check(lexer.EOF_TYPE) {
		b.Statements = append(b.Statements, p.declarationRecovering())
	}
	p.expect(lexer.RIGHT_BRACE, "'}'")
	return b
}

// exprStmt := expression ';'
func (p *Parser) exprStmt() ast.Stmt {
	start := p.pos()
	expr := p.expression()
	p.expect(lexer.SEMICOLON_DELIM, "';'")

	return &ast.ExprStmt{Position: start, Expr: expr}
}

// expression := assignment
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment := equality ('=' assignment)?
//
// Like the original parser's parse_assignment, this always parses a full
// equality expression first, then checks for a trailing '=' and validates
// that what was parsed is a bare variable reference -- so `x + 1 = 2` is
// caught here with the documented diagnostic instead of falling through to
// a confusing "expected ';'" error later. `(x) = 2` is still valid: parens
// are transparent in primary(), so the parsed expression is the same
// *ast.Var as bare `x`.
func (p *Parser) assignment() ast.Expr {
	expr := p.equality()
	if !p.check(lexer.ASSIGN_OP) {
		return expr
	}
	eqPos := p.pos()
	p.advance() // '='
	value := p.assignment()

	v, ok := expr.(*ast.Var)
	if !ok {
		p.error(diag.Syntactic, eqPos.Line, eqPos.Column, "left side of assignment must be a variable")
		return expr
	}
	return &ast.Assign{Position: v.Position, Target: v.Name, Value: value}
}

// equality := comparison (('=='|'!=') comparison)*
func (p *Parser) equality() ast.Expr {
	left := p.comparison()
	for p.check(lexer.EQ_OP) || p.check(lexer.NE_OP) {
		start := p.pos()
		op := p.Cur.Type
		p.advance()
		right := p.comparison()
		left = &ast.BinaryExpr{Position: start, Operator: op, Left: left, Right: right}
	}
	return left
}

// comparison := term (('>'|'>='|'<'|'<=') term)*
func (p *Parser) comparison() ast.Expr {
	left := p.term()
	for p.check(lexer.GT_OP) || p.check(lexer.GE_OP) || p.check(lexer.LT_OP) || p.check(lexer.LE_OP) {
		start := p.pos()
		op := p.Cur.Type
		p.advance()
		right := p.term()
		left = &ast.BinaryExpr{Position: start, Operator: op, Left: left, Right: right}
	}
	return left
}

// term := factor (('+'|'-') factor)*
func (p *Parser) term() ast.Expr {
	left := p.factor()
	for p.check(lexer.PLUS_OP) || p.check(lexer.MINUS_OP) {
		start := p.pos()
		op := p.Cur.Type
		p.advance()
		right := p.factor()
		left = &ast.BinaryExpr{Position: start, Operator: op, Left: left, Right: right}
	}
	return left
}

// factor := unary (('*'|'/'|'%') unary)*
func (p *Parser) factor() ast.Expr {
	left := p.unary()
	for p.check(lexer.MUL_OP) || p.check(lexer.DIV_OP) || p.check(lexer.MOD_OP) {
		start := p.pos()
		op := p.Cur.Type
		p.advance()
		right := p.unary()
		left = &ast.BinaryExpr{Position: start, Operator: op, Left: left, Right: right}
	}
	return left
}

// unary := '-' unary | primary
func (p *Parser) unary() ast.Expr {
	if p.check(lexer.MINUS_OP) {
		start := p.pos()
		op := p.Cur.Type
		p.advance()
		operand := p.unary()
		return &ast.UnaryExpr{Position: start, Operator: op, Operand: operand}
	}
	return p.primary()
}

// primary := INT_LIT | FLOAT_LIT | STRING_LIT | 'true' | 'false'
//          | IDENT ('(' args? ')')? | '(' expression ')'
func (p *Parser) primary() ast.Expr {
	start := p.pos()

	switch p.Cur.Type {
	case lexer.INT_LIT:
		lit := p.Cur.Literal
		p.advance()
		return &ast.Literal{Position: start, Kind: ast.IntLiteral, IntValue: parseInt(lit)}
	case lexer.FLOAT_LIT:
		lit := p.Cur.Literal
		p.advance()
		return &ast.Literal{Position: start, Kind: ast.FloatLiteral, FloatValue: parseFloat(lit)}
	case lexer.STRING_LIT:
		lit := p.Cur.Literal
		p.advance()
		return &ast.Literal{Position: start, Kind: ast.StringLiteral, StringValue: unquote(lit)}
	case lexer.TRUE_KEY:
		p.advance()
		return &ast.Literal{Position: start, Kind: ast.BoolLiteral, BoolValue: true}
	case lexer.FALSE_KEY:
		p.advance()
		return &ast.Literal{Position: start, Kind: ast.BoolLiteral, BoolValue: false}
	case lexer.IDENTIFIER:
		name := p.Cur.Literal
		p.advance()
		if p.match(lexer.LEFT_PAREN) {
			var args []ast.Expr
			if !p.check(lexer.RIGHT_PAREN) {
				args = p.args()
			}
			p.expect(lexer.RIGHT_PAREN, "')'")
			return &ast.Call{Position: start, Callee: name, Args: args}
		}
		return &ast.Var{Position: start, Name: name}
	case lexer.LEFT_PAREN:
		p.advance()
		inner := p.expression()
		p.expect(lexer.RIGHT_PAREN, "')'")
		return inner
	default:
		p.errorAtCur("unexpected token %q in expression", p.Cur.Literal)
		return &ast.Literal{Position: start, Kind: ast.IntLiteral, IntValue: 0}
	}
}

// args := expression (',' expression)*
func (p *Parser) args() []ast.Expr {
	var args []ast.Expr
	args = append(args, p.expression())
	for p.match(lexer.COMMA_DELIM) {
		args = append(args, p.expression())
	}
	return args
}
