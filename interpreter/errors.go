package interpreter

import (
	"fmt"

	"github.com/EricksonLOOP/craze/environment"
)

// RuntimeError is a fail-fast error raised while evaluating a
// semantically valid AST: a defense-in-depth check the interpreter
// performs on its own (missing variable, division by zero, wrong
// builtin argument) even though the semantic analyzer should already
// have ruled the case out. Trace is a snapshot of the call stack at
// the moment the error was raised, innermost frame first, for the
// driver to print.
type RuntimeError struct {
	Line    int
	Column  int
	Message string
	Trace   []environment.CallFrame
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("line %d, column %d, %s", e.Line, e.Column, e.Message)
}

// raise builds a RuntimeError at the interpreter's current call-stack
// depth, so the driver's printed trace reflects exactly the calls that
// were active when the failure happened.
func (interp *Interpreter) raise(line, column int, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
		Trace:   interp.Stack.Frames(),
	}
}
