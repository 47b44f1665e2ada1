package parser

import (
	"github.com/EricksonLOOP/craze/ast"
	"github.com/EricksonLOOP/craze/lexer"
)

// badStmt stands in for a declaration or statement abandoned mid-parse.
func (p *Parser) badStmt(start ast.Position, msg string) ast.Stmt {
	return &ast.BadStmt{Position: start, Err: msg}
}

// synchronize discards tokens in panic-mode recovery until it reaches a
// point a new statement plausibly begins: just past a semicolon, or at
// a keyword that starts a declaration or statement. This keeps one
// syntax error from producing an unbroken run of follow-on errors.
func (p *Parser) synchronize() {
	p.synchronizing = false

	for !p.check(lexer.EOF_TYPE) {
		if p.Cur.Type == lexer.SEMICOLON_DELIM {
			p.advance()
			return
		}
		switch p.Cur.Type {
		case lexer.LET_KEY, lexer.FUNC_KEY, lexer.IF_KEY, lexer.WHILE_KEY, lexer.RETURN_KEY, lexer.LEFT_BRACE:
			return
		}
		p.advance()
	}
}
