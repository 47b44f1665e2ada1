package interpreter

import (
	"fmt"
	"strings"

	"github.com/EricksonLOOP/craze/value"
)

// registerBuiltins installs print, type, and len as builtin values in
// the global variable map, per the spec's "registered at startup as
// values in the global variable map."
func (interp *Interpreter) registerBuiltins() {
	interp.Global.Define("print", value.NewBuiltin("print", interp.builtinPrint))
	interp.Global.Define("type", value.NewBuiltin("type", interp.builtinType))
	interp.Global.Define("len", value.NewBuiltin("len", interp.builtinLen))
}

// builtinPrint prints each argument's display form separated by single
// spaces, followed by a newline, and returns void.
func (interp *Interpreter) builtinPrint(args []*value.Value) (*value.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Display()
	}
	fmt.Fprintln(interp.Out, strings.Join(parts, " "))
	return value.NewVoid(), nil
}

// builtinType returns the display name of its single argument's
// runtime type.
func (interp *Interpreter) builtinType(args []*value.Value) (*value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type() takes exactly 1 argument, got %d", len(args))
	}
	return value.NewString(args[0].TypeName()), nil
}

// builtinLen returns the byte length of its single string argument.
func (interp *Interpreter) builtinLen(args []*value.Value) (*value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("len() takes exactly 1 argument, got %d", len(args))
	}
	if args[0].Kind != value.String {
		return nil, fmt.Errorf("len() requires a string argument, got %s", args[0].Kind)
	}
	return value.NewInt(int64(len(args[0].StringVal))), nil
}
