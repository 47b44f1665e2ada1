package parser

import (
	"fmt"

	"github.com/EricksonLOOP/craze/internal/diag"
)

// SyntaxError is one diagnostic produced during parsing. The parser keeps
// accumulating these across panic-mode recovery instead of aborting on
// the first one. Kind distinguishes a lexical error folded in from the
// token stream (an ERROR_TYPE token) from a genuine grammar mismatch, so
// callers can print "[ERROR Lexical]" vs "[ERROR Syntactic]" correctly.
type SyntaxError struct {
	Kind    diag.Kind
	Line    int
	Column  int
	Message string
}

func (e SyntaxError) String() string {
	return fmt.Sprintf("line %d, column %d, %s", e.Line, e.Column, e.Message)
}
