// Package craztest holds small test fixtures shared across package
// boundaries, so each package's own _test.go files don't redefine the
// same "parse this and fail the test on a syntax error" helper.
package craztest

import (
	"testing"

	"github.com/EricksonLOOP/craze/ast"
	"github.com/EricksonLOOP/craze/parser"
)

// MustParse parses src and fails the test immediately if the parser
// reported any syntax error, returning the resulting program otherwise.
func MustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.NewParser(src)
	prog := p.ParseProgram()
	if p.HasErrors() {
		t.Fatalf("unexpected syntax errors for %q: %v", src, p.GetErrors())
	}
	return prog
}
