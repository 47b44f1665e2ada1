package semantics

import "fmt"

// Diagnostic is one semantic error or widening warning. Errors and
// warnings share this shape; Analyzer keeps them in separate slices
// because only errors affect the pass/fail result.
type Diagnostic struct {
	Line    int
	Column  int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d, column %d, %s", d.Line, d.Column, d.Message)
}
