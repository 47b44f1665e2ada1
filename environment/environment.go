// Package environment implements the runtime environment chain the
// interpreter evaluates Craze programs against: a variables map of
// owned values and a functions map of non-owning AST references, both
// linked to an enclosing parent.
package environment

import (
	"github.com/EricksonLOOP/craze/ast"
	"github.com/EricksonLOOP/craze/value"
)

// Environment is one scope in the lexical chain. The global
// environment's Parent is nil; every other environment's Parent points
// at the environment it was opened inside.
type Environment struct {
	variables map[string]*value.Value
	functions map[string]*ast.FuncDecl
	Parent    *Environment
}

// New creates an environment enclosed by parent. Pass nil for the
// global environment.
func New(parent *Environment) *Environment {
	return &Environment{
		variables: make(map[string]*value.Value),
		functions: make(map[string]*ast.FuncDecl),
		Parent:    parent,
	}
}

// Lookup walks the chain outward from env looking for a variable named
// name, returning the value and true if found.
func (env *Environment) Lookup(name string) (*value.Value, bool) {
	for e := env; e != nil; e = e.Parent {
		if v, ok := e.variables[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define binds name to v in the current environment only, retaining
// v. It does not check for an existing binding in the chain; callers
// that need the "no redeclaration in this scope" rule check
// HasLocal first.
func (env *Environment) Define(name string, v *value.Value) {
	env.variables[name] = v.Retain()
}

// HasLocal reports whether name is already bound in this environment
// specifically, ignoring enclosing scopes.
func (env *Environment) HasLocal(name string) bool {
	_, ok := env.variables[name]
	return ok
}

// Assign walks the chain outward for the nearest binding of name and
// overwrites it in place, releasing the old value and retaining the
// new one. It reports false if no binding exists anywhere in the
// chain.
func (env *Environment) Assign(name string, v *value.Value) bool {
	for e := env; e != nil; e = e.Parent {
		if old, ok := e.variables[name]; ok {
			old.Release()
			e.variables[name] = v.Retain()
			return true
		}
	}
	return false
}

// DefineFunc registers decl under its own name in the current
// environment's function map. The map holds a non-owning reference:
// the AST remains the sole owner of decl.
func (env *Environment) DefineFunc(decl *ast.FuncDecl) {
	env.functions[decl.Name] = decl
}

// LookupFunc walks the chain outward looking for a function
// declaration named name.
func (env *Environment) LookupFunc(name string) (*ast.FuncDecl, bool) {
	for e := env; e != nil; e = e.Parent {
		if fn, ok := e.functions[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// LocalBindings returns every name bound in this environment
// specifically (not the enclosing chain), paired with its current
// value, for diagnostic dumps such as a REPL's environment listing.
func (env *Environment) LocalBindings() map[string]*value.Value {
	out := make(map[string]*value.Value, len(env.variables))
	for name, v := range env.variables {
		out[name] = v
	}
	return out
}

// Release drops this environment's ownership of every value in its own
// variable map, as happens when a Block's scope exits. It does not
// touch the parent chain or the (non-owning) function map.
func (env *Environment) Release() {
	for _, v := range env.variables {
		v.Release()
	}
}
