// Package value implements Craze's runtime value representation: a
// closed, reference-counted tagged union mirroring the C interpreter's
// Value struct. Go's garbage collector makes the reference count
// unnecessary for memory safety, but the count is kept and maintained
// explicitly anyway, because it is part of the interpreter's observable
// behavior rather than an implementation detail: environment teardown,
// call-frame unwinding, and builtin argument passing all balance
// Retain/Release the way the original does incref/decref.
package value

import (
	"fmt"
	"strconv"
)

// Kind is the closed set of runtime value tags.
type Kind int

const (
	Int Kind = iota
	Float
	String
	Bool
	Void
	// Null is reserved for uninitialized/error-propagation slots. No
	// Craze source construct can produce a Null value.
	Null
	Builtin
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Void:
		return "void"
	case Null:
		return "null"
	case Builtin:
		return "builtin"
	default:
		return "unknown"
	}
}

// BuiltinFunc is the shape of a registered built-in's implementation.
// It receives already-evaluated, already-retained argument values and
// returns a single owned result value.
type BuiltinFunc func(args []*Value) (*Value, error)

// Value is one runtime value: exactly one of its payload fields is
// meaningful, selected by Kind. RefCount starts at 1 on construction;
// every map, slot, or register that holds a *Value is expected to call
// Retain when it stores the pointer and Release when it stops holding
// it.
type Value struct {
	Kind Kind

	IntVal    int64
	FloatVal  float64
	StringVal string
	BoolVal   bool

	BuiltinName string
	BuiltinFn   BuiltinFunc

	RefCount int
}

// NewInt, NewFloat, NewString, NewBool, NewVoid, NewNull, and
// NewBuiltin each construct a fresh Value with RefCount 1.

func NewInt(n int64) *Value     { return &Value{Kind: Int, IntVal: n, RefCount: 1} }
func NewFloat(f float64) *Value { return &Value{Kind: Float, FloatVal: f, RefCount: 1} }
func NewString(s string) *Value { return &Value{Kind: String, StringVal: s, RefCount: 1} }
func NewBool(b bool) *Value     { return &Value{Kind: Bool, BoolVal: b, RefCount: 1} }
func NewVoid() *Value           { return &Value{Kind: Void, RefCount: 1} }
func NewNull() *Value           { return &Value{Kind: Null, RefCount: 1} }

func NewBuiltin(name string, fn BuiltinFunc) *Value {
	return &Value{Kind: Builtin, BuiltinName: name, BuiltinFn: fn, RefCount: 1}
}

// Retain increments the reference count and returns the same value, so
// call sites can write `env.vars[name] = v.Retain()`.
func (v *Value) Retain() *Value {
	if v == nil {
		return v
	}
	v.RefCount++
	return v
}

// Release decrements the reference count. When it reaches zero the
// value's owned resources are cleared; Go's allocator reclaims the
// struct itself once nothing references the pointer. Releasing an
// already-zero value is a bug in the caller and panics, the same way
// the original interpreter's assertions would catch a double-free.
func (v *Value) Release() {
	if v == nil {
		return
	}
	v.RefCount--
	if v.RefCount < 0 {
		panic(fmt.Sprintf("value: release of %s value with non-positive refcount", v.Kind))
	}
	if v.RefCount == 0 {
		v.StringVal = ""
		v.BuiltinFn = nil
	}
}

// Display renders a value the way print and string-concatenation show
// it: ints as decimal, floats as %.6g, bools as true/false, strings
// with no surrounding quotes, void/null by name, and builtins as
// "<builtin function NAME>".
func (v *Value) Display() string {
	switch v.Kind {
	case Int:
		return strconv.FormatInt(v.IntVal, 10)
	case Float:
		return strconv.FormatFloat(v.FloatVal, 'g', 6, 64)
	case String:
		return v.StringVal
	case Bool:
		if v.BoolVal {
			return "true"
		}
		return "false"
	case Void:
		return "void"
	case Null:
		return "null"
	case Builtin:
		return fmt.Sprintf("<builtin function %s>", v.BuiltinName)
	default:
		return "<invalid value>"
	}
}

// TypeName is the string type's `len`/`type` use when printing the
// value's kind, e.g. `type(5)` -> "int". It is the same text as
// Kind.String but exposed here so callers never have to import Kind
// just to ask a Value what it is.
func (v *Value) TypeName() string {
	return v.Kind.String()
}

// Zero produces the language's zero value for a declared type, used
// when a VarDecl has no initializer -- which Craze's grammar actually
// never allows (the initializer is mandatory), but is kept for
// embedders that build VarDecl nodes programmatically rather than
// through the parser.
func Zero(kind Kind) *Value {
	switch kind {
	case Int:
		return NewInt(0)
	case Float:
		return NewFloat(0)
	case String:
		return NewString("")
	case Bool:
		return NewBool(false)
	default:
		return NewNull()
	}
}
