// Package interpreter implements the tree-walking evaluator that
// executes a semantically valid Craze ast.Program against a chain of
// runtime environments.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/EricksonLOOP/craze/ast"
	"github.com/EricksonLOOP/craze/environment"
	"github.com/EricksonLOOP/craze/value"
)

// Interpreter holds everything that lives for the duration of one run:
// the global environment, the active call stack, and the sink print
// writes to.
type Interpreter struct {
	Global *environment.Environment
	Stack  environment.CallStack
	Out    io.Writer

	// Trace, when set, prints each top-level and block statement to
	// stderr before executing it. Off by default; no CLI flag exposes
	// it, since the driver's surface is fixed to one positional
	// argument -- it is reachable only by embedders setting the field
	// directly.
	Trace bool

	// lastError mirrors the original interpreter's fixed-size error
	// buffer: the most recent runtime error message, kept around for
	// embedders that want it without parsing Run's returned error.
	lastError string
}

// New creates an Interpreter with a fresh global environment
// pre-populated with the three built-in functions, writing print
// output to out. A nil out defaults to os.Stdout.
func New(out io.Writer) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	interp := &Interpreter{Global: environment.New(nil), Out: out}
	interp.registerBuiltins()
	return interp
}

// LastError returns the message of the most recent runtime error this
// interpreter raised, or "" if none has occurred yet.
func (interp *Interpreter) LastError() string {
	return interp.lastError
}

// GetGlobal looks up name in the global environment without touching
// its reference count, for embedders that want to read a variable's
// value after a run completes.
func (interp *Interpreter) GetGlobal(name string) (*value.Value, bool) {
	return interp.Global.Lookup(name)
}

// SetGlobal defines or overwrites name in the global environment,
// for embedders that want to seed state before a run or inject a
// value between REPL lines.
func (interp *Interpreter) SetGlobal(name string, v *value.Value) error {
	if interp.Global.HasLocal(name) {
		if !interp.Global.Assign(name, v) {
			return fmt.Errorf("SetGlobal: %q is declared but could not be assigned", name)
		}
		return nil
	}
	interp.Global.Define(name, v)
	return nil
}

// Run executes every top-level statement of prog against the global
// environment and returns the first runtime error encountered, if any.
// Declarations at the top level persist in the global environment for
// the remainder of the run, per the spec: the global scope is never
// torn down mid-run.
func (interp *Interpreter) Run(prog *ast.Program) error {
	for _, stmt := range prog.Statements {
		if interp.Trace {
			fmt.Fprintf(os.Stderr, "TRACE: %T at line %d\n", stmt, stmt.Pos().Line)
		}
		_, _, err := interp.execStmt(stmt, interp.Global)
		if err != nil {
			if re, ok := err.(*RuntimeError); ok {
				interp.lastError = re.Error()
			}
			return err
		}
	}
	return nil
}

// execBlock creates a fresh environment enclosed by parent, runs every
// statement of b against it, and releases the environment's own
// variable bindings on the way out -- exactly the Block lifecycle from
// the spec: "every Block node creates a fresh enclosing environment on
// entry and destroys it on exit."
func (interp *Interpreter) execBlock(b *ast.Block, parent *environment.Environment) (*value.Value, bool, error) {
	env := environment.New(parent)
	defer env.Release()

	result := value.NewVoid()
	for _, stmt := range b.Statements {
		if interp.Trace {
			fmt.Fprintf(os.Stderr, "TRACE: %T at line %d\n", stmt, stmt.Pos().Line)
		}
		v, returned, err := interp.execStmt(stmt, env)
		if err != nil {
			result.Release()
			return nil, false, err
		}
		result.Release()
		result = v
		if returned {
			return result, true, nil
		}
	}
	return result, false, nil
}

// execStmt executes one statement against env and reports the value
// it produced (used by execBlock to track "the value of the last
// statement executed", which only matters for If/While's own result)
// together with whether executing it set the should_return flag.
func (interp *Interpreter) execStmt(stmt ast.Stmt, env *environment.Environment) (*value.Value, bool, error) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return interp.execVarDecl(s, env)

	case *ast.FuncDecl:
		env.DefineFunc(s)
		return value.NewVoid(), false, nil

	case *ast.Block:
		return interp.execBlock(s, env)

	case *ast.If:
		return interp.execIf(s, env)

	case *ast.While:
		return interp.execWhile(s, env)

	case *ast.Return:
		if s.Value == nil {
			return value.NewVoid(), true, nil
		}
		v, err := interp.eval(s.Value, env)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil

	case *ast.ExprStmt:
		v, err := interp.eval(s.Expr, env)
		if err != nil {
			return nil, false, err
		}
		return v, false, nil

	case *ast.BadStmt:
		return value.NewVoid(), false, nil

	default:
		return value.NewVoid(), false, nil
	}
}

func (interp *Interpreter) execVarDecl(decl *ast.VarDecl, env *environment.Environment) (*value.Value, bool, error) {
	if env.HasLocal(decl.Name) {
		return nil, false, interp.raise(decl.Line, decl.Column, "'%s' is already declared in this scope", decl.Name)
	}
	if decl.Init == nil {
		kinds := map[ast.DataType]value.Kind{ast.Int: value.Int, ast.Float: value.Float, ast.String: value.String, ast.Bool: value.Bool}
		kind, ok := kinds[decl.DeclaredType]
		if !ok {
			kind = value.Null
		}
		v := value.Zero(kind)
		env.Define(decl.Name, v)
		v.Release()
		return value.NewVoid(), false, nil
	}
	v, err := interp.eval(decl.Init, env)
	if err != nil {
		return nil, false, err
	}
	env.Define(decl.Name, v)
	v.Release()
	return value.NewVoid(), false, nil
}

func (interp *Interpreter) execIf(stmt *ast.If, env *environment.Environment) (*value.Value, bool, error) {
	cond, err := interp.eval(stmt.Cond, env)
	if err != nil {
		return nil, false, err
	}
	if cond.Kind != value.Bool {
		kind := cond.Kind
		cond.Release()
		return nil, false, interp.raise(stmt.Cond.Pos().Line, stmt.Cond.Pos().Column, "if condition must be boolean, got %s", kind)
	}
	taken := cond.BoolVal
	cond.Release()

	if taken {
		return interp.execBlock(stmt.Then, env)
	}
	if stmt.Else != nil {
		return interp.execBlock(stmt.Else, env)
	}
	return value.NewVoid(), false, nil
}

func (interp *Interpreter) execWhile(stmt *ast.While, env *environment.Environment) (*value.Value, bool, error) {
	last := value.NewVoid()
	for {
		cond, err := interp.eval(stmt.Cond, env)
		if err != nil {
			last.Release()
			return nil, false, err
		}
		if cond.Kind != value.Bool {
			kind := cond.Kind
			cond.Release()
			last.Release()
			return nil, false, interp.raise(stmt.Cond.Pos().Line, stmt.Cond.Pos().Column, "while condition must be boolean, got %s", kind)
		}
		keepGoing := cond.BoolVal
		cond.Release()
		if !keepGoing {
			break
		}

		result, returned, err := interp.execBlock(stmt.Body, env)
		if err != nil {
			last.Release()
			return nil, false, err
		}
		last.Release()
		last = result
		if returned {
			return last, true, nil
		}
	}
	return last, false, nil
}
