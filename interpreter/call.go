package interpreter

import (
	"github.com/EricksonLOOP/craze/ast"
	"github.com/EricksonLOOP/craze/environment"
	"github.com/EricksonLOOP/craze/value"
)

// evalCall implements the spec's call resolution order: a name is
// first looked up as a variable, and invoked as a builtin if that is
// what it resolves to; only then is it looked up as a user-defined
// function.
func (interp *Interpreter) evalCall(call *ast.Call, env *environment.Environment) (*value.Value, error) {
	if callee, ok := env.Lookup(call.Callee); ok && callee.Kind == value.Builtin {
		return interp.callBuiltin(call, callee, env)
	}
	return interp.callFunction(call, env)
}

func (interp *Interpreter) callBuiltin(call *ast.Call, builtin *value.Value, env *environment.Environment) (*value.Value, error) {
	args := make([]*value.Value, 0, len(call.Args))
	for _, argExpr := range call.Args {
		v, err := interp.eval(argExpr, env)
		if err != nil {
			for _, a := range args {
				a.Release()
			}
			return nil, err
		}
		args = append(args, v)
	}

	result, err := builtin.BuiltinFn(args)
	for _, a := range args {
		a.Release()
	}
	if err != nil {
		return nil, interp.raise(call.Line, call.Column, "%s", err.Error())
	}
	return result, nil
}

func (interp *Interpreter) callFunction(call *ast.Call, env *environment.Environment) (*value.Value, error) {
	fn, ok := env.LookupFunc(call.Callee)
	if !ok {
		return nil, interp.raise(call.Line, call.Column, "undefined function '%s'", call.Callee)
	}
	if len(call.Args) != len(fn.Params) {
		return nil, interp.raise(call.Line, call.Column, "'%s' takes %d argument(s), got %d", call.Callee, len(fn.Params), len(call.Args))
	}

	args := make([]*value.Value, 0, len(call.Args))
	for _, argExpr := range call.Args {
		v, err := interp.eval(argExpr, env)
		if err != nil {
			for _, a := range args {
				a.Release()
			}
			return nil, err
		}
		args = append(args, v)
	}

	// The new call frame's environment is parented at the global
	// environment, not the caller's: see the scoping redesign note --
	// binding to the caller would make this dynamic rather than
	// lexical scoping for any name that is not a parameter.
	callEnv := environment.New(interp.Global)
	for i, param := range fn.Params {
		callEnv.Define(param.Name, args[i])
		args[i].Release()
	}

	interp.Stack.Push(environment.CallFrame{FunctionName: call.Callee, CallLine: call.Line, Env: callEnv})
	result, returned, err := interp.execBlock(fn.Body, callEnv)
	interp.Stack.Pop()
	callEnv.Release()

	if err != nil {
		return nil, err
	}
	if returned {
		return result, nil
	}
	result.Release()
	return value.NewVoid(), nil
}
