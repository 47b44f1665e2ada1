package environment

import (
	"testing"

	"github.com/EricksonLOOP/craze/ast"
	"github.com/EricksonLOOP/craze/value"
)

func TestDefineAndLookup(t *testing.T) {
	env := New(nil)
	env.Define("x", value.NewInt(10))

	v, ok := env.Lookup("x")
	if !ok || v.IntVal != 10 {
		t.Fatalf("Lookup(x) = %v, %v; want 10, true", v, ok)
	}
}

func TestLookupWalksParentChain(t *testing.T) {
	outer := New(nil)
	outer.Define("x", value.NewInt(1))
	inner := New(outer)

	v, ok := inner.Lookup("x")
	if !ok || v.IntVal != 1 {
		t.Fatalf("inner Lookup(x) = %v, %v; want 1, true", v, ok)
	}
}

func TestLookupMissingFails(t *testing.T) {
	env := New(nil)
	if _, ok := env.Lookup("missing"); ok {
		t.Fatal("Lookup of an undefined name should fail")
	}
}

// TestShadowingDoesNotAffectOuter is the redeclaration-shadowing
// property from the spec: a variable declared in an inner block with
// the same name as an outer binding is its own binding; assigning in
// the inner scope must not touch the outer one.
func TestShadowingDoesNotAffectOuter(t *testing.T) {
	outer := New(nil)
	outer.Define("x", value.NewInt(1))

	inner := New(outer)
	inner.Define("x", value.NewInt(2))
	inner.Assign("x", value.NewInt(99))

	innerVal, _ := inner.Lookup("x")
	if innerVal.IntVal != 99 {
		t.Fatalf("inner x = %d, want 99", innerVal.IntVal)
	}

	outerVal, _ := outer.Lookup("x")
	if outerVal.IntVal != 1 {
		t.Fatalf("outer x = %d, want unchanged 1", outerVal.IntVal)
	}
}

func TestAssignWalksChainToNearestBinding(t *testing.T) {
	outer := New(nil)
	outer.Define("x", value.NewInt(1))
	inner := New(outer)

	ok := inner.Assign("x", value.NewInt(5))
	if !ok {
		t.Fatal("Assign should find x in the outer scope")
	}

	v, _ := outer.Lookup("x")
	if v.IntVal != 5 {
		t.Fatalf("outer x = %d, want 5", v.IntVal)
	}
}

func TestAssignMissingFails(t *testing.T) {
	env := New(nil)
	if env.Assign("missing", value.NewInt(1)) {
		t.Fatal("Assign to an undeclared name should fail")
	}
}

func TestHasLocalIgnoresParent(t *testing.T) {
	outer := New(nil)
	outer.Define("x", value.NewInt(1))
	inner := New(outer)

	if inner.HasLocal("x") {
		t.Fatal("HasLocal should not see the parent's bindings")
	}
	inner.Define("x", value.NewInt(2))
	if !inner.HasLocal("x") {
		t.Fatal("HasLocal should see a binding made in this environment")
	}
}

func TestFuncDeclLookup(t *testing.T) {
	env := New(nil)
	decl := &ast.FuncDecl{Name: "add"}
	env.DefineFunc(decl)

	child := New(env)
	got, ok := child.LookupFunc("add")
	if !ok || got != decl {
		t.Fatalf("LookupFunc(add) = %v, %v; want the registered decl, true", got, ok)
	}
}

func TestCallStackInnermostFirst(t *testing.T) {
	var stack CallStack
	stack.Push(CallFrame{FunctionName: "main", CallLine: 0})
	stack.Push(CallFrame{FunctionName: "f", CallLine: 3})
	stack.Push(CallFrame{FunctionName: "g", CallLine: 7})

	frames := stack.Frames()
	if len(frames) != 3 {
		t.Fatalf("Frames() len = %d, want 3", len(frames))
	}
	if frames[0].FunctionName != "g" || frames[2].FunctionName != "main" {
		t.Fatalf("Frames() not innermost-first: %+v", frames)
	}

	stack.Pop()
	if stack.Depth() != 2 {
		t.Fatalf("Depth() after Pop = %d, want 2", stack.Depth())
	}
}
