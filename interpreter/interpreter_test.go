package interpreter

import (
	"bytes"
	"testing"

	"github.com/EricksonLOOP/craze/ast"
	"github.com/EricksonLOOP/craze/internal/craztest"
	"github.com/EricksonLOOP/craze/parser"
	"github.com/EricksonLOOP/craze/semantics"
)

// run parses, semantically checks, and interprets src, failing the
// test immediately on a syntax or semantic error (tests that want to
// see one of those call the stages directly instead).
func run(t *testing.T, src string) (string, error) {
	t.Helper()

	p := parser.NewParser(src)
	prog := p.ParseProgram()
	if p.HasErrors() {
		t.Fatalf("unexpected syntax errors for %q: %v", src, p.GetErrors())
	}

	a := semantics.NewAnalyzer()
	a.Analyze(prog)
	if a.HasErrors() {
		t.Fatalf("unexpected semantic errors for %q: %v", src, a.Errors())
	}

	var out bytes.Buffer
	interp := New(&out)
	err := interp.Run(prog)
	return out.String(), err
}

func parseOnly(t *testing.T, src string) *ast.Program {
	return craztest.MustParse(t, src)
}

// TestEndToEnd covers the concrete scenarios from the spec's testable
// properties section that run to completion (banners excluded, since
// those are the driver's concern, not the interpreter's). The scenarios
// that stop at a semantic error are tested in semantics/analyzer_test.go.
func TestEndToEnd(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "numeric widening in concatenated print",
			src:  `let x: int = 10; let y: float = 3.14; let z: float = x + y; print("Result:", z);`,
			want: "Result: 13.14\n",
		},
		{
			name: "factorial recursion",
			src: `
				fn factorial(n: int): int {
					if (n <= 1) {
						return 1;
					}
					return n * factorial(n - 1);
				}
				let num: int = 5;
				let result: int = factorial(num);
				print("Fatorial de", num, "é", result);
			`,
			want: "Fatorial de 5 é 120\n",
		},
		{
			name: "string concatenation and byte length",
			src:  `let s: string = "Olá, " + "Craze!"; print(s); print("Tamanho:", len(s));`,
			want: "Olá, Craze!\nTamanho: 12\n",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := run(t, c.src)
			if err != nil {
				t.Fatalf("unexpected runtime error: %v", err)
			}
			if got != c.want {
				t.Errorf("output = %q, want %q", got, c.want)
			}
		})
	}
}

func TestFactorialOfTen(t *testing.T) {
	src := `
		fn factorial(n: int): int {
			if (n <= 1) {
				return 1;
			}
			return n * factorial(n - 1);
		}
		print(factorial(10));
	`
	got, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if got != "3628800\n" {
		t.Errorf("factorial(10) printed %q, want \"3628800\\n\"", got)
	}
}

func TestDivisionByZero(t *testing.T) {
	for _, src := range []string{`print(5 / 0);`, `print(5 / 0.0);`} {
		_, err := run(t, src)
		if err == nil {
			t.Errorf("%q: expected a runtime error for division by zero", src)
			continue
		}
		re, ok := err.(*RuntimeError)
		if !ok {
			t.Errorf("%q: expected *RuntimeError, got %T", src, err)
			continue
		}
		if re.Message != "division by zero" {
			t.Errorf("%q: error message = %q, want %q", src, re.Message, "division by zero")
		}
	}
}

func TestModuloByZero(t *testing.T) {
	_, err := run(t, `print(5 % 0);`)
	if err == nil {
		t.Fatal("expected a runtime error for modulo by zero")
	}
}

// TestRoundTripPrintAndType confirms the display form and runtime type
// for the four primitive types a variable can hold; void is covered by
// TestVoidFunctionRoundTrip below.
func TestRoundTripPrintAndType(t *testing.T) {
	cases := []struct {
		decl     string
		wantType string
		wantDisp string
	}{
		{`let v: int = 5;`, "int", "5"},
		{`let v: float = 2.5;`, "float", "2.5"},
		{`let v: string = "hi";`, "string", "hi"},
		{`let v: bool = true;`, "bool", "true"},
	}

	for _, c := range cases {
		t.Run(c.wantType, func(t *testing.T) {
			src := c.decl + ` print(v); print(type(v));`
			got, err := run(t, src)
			if err != nil {
				t.Fatalf("unexpected runtime error: %v", err)
			}
			want := c.wantDisp + "\n" + c.wantType + "\n"
			if got != want {
				t.Errorf("output = %q, want %q", got, want)
			}
		})
	}
}

func TestVoidFunctionRoundTrip(t *testing.T) {
	src := `
		fn noop(): void { }
		print(type(noop()));
	`
	got, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if got != "void\n" {
		t.Errorf("output = %q, want %q", got, "void\n")
	}
}

func TestVariableShadowingInBlockDoesNotLeak(t *testing.T) {
	src := `
		let x: int = 1;
		if (true) {
			let x: int = 2;
			print(x);
		}
		print(x);
	`
	got, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if got != "2\n1\n" {
		t.Errorf("output = %q, want %q", got, "2\n1\n")
	}
}

func TestWhileLoop(t *testing.T) {
	src := `
		let i: int = 0;
		while (i < 3) {
			print(i);
			i = i + 1;
		}
	`
	got, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if got != "0\n1\n2\n" {
		t.Errorf("output = %q, want %q", got, "0\n1\n2\n")
	}
}

func TestUndeclaredVariableIsRuntimeDefenseInDepth(t *testing.T) {
	// Bypass the semantic analyzer entirely to exercise the
	// interpreter's own "defense in depth" check for a missing
	// variable, since a semantically valid program can never reach it.
	prog := parseOnly(t, `x;`)
	var out bytes.Buffer
	interp := New(&out)
	err := interp.Run(prog)
	if err == nil {
		t.Fatal("expected a runtime error for an undeclared variable")
	}
}

// TestOrderingComparisonOfBoolsIsRuntimeError documents that even though
// the analyzer type-checks "bool > bool" (same type, excluding void), the
// interpreter itself only defines an ordering over numbers, matching the
// original's op_compare_gt/lt, which raise a runtime error for anything
// else rather than silently comparing.
func TestOrderingComparisonOfBoolsIsRuntimeError(t *testing.T) {
	_, err := run(t, `
		let a: bool = true;
		let b: bool = false;
		print(a > b);
	`)
	if err == nil {
		t.Fatal("expected a runtime error comparing two bools with '>'")
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
}

// TestIfConditionMustBeBoolAtRuntime bypasses the semantic analyzer to
// exercise the interpreter's own defense-in-depth check, since a
// semantically valid program can never reach it.
func TestIfConditionMustBeBoolAtRuntime(t *testing.T) {
	prog := parseOnly(t, `if (1) { }`)
	var out bytes.Buffer
	interp := New(&out)
	err := interp.Run(prog)
	if err == nil {
		t.Fatal("expected a runtime error for a non-bool if condition")
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
}

// TestWhileConditionMustBeBoolAtRuntime mirrors
// TestIfConditionMustBeBoolAtRuntime for while.
func TestWhileConditionMustBeBoolAtRuntime(t *testing.T) {
	prog := parseOnly(t, `while (1) { }`)
	var out bytes.Buffer
	interp := New(&out)
	err := interp.Run(prog)
	if err == nil {
		t.Fatal("expected a runtime error for a non-bool while condition")
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
}

func TestCallStackTraceIsInnermostFirst(t *testing.T) {
	src := `
		fn inner(): int {
			return 1 / 0;
		}
		fn outer(): int {
			return inner();
		}
		print(outer());
	`
	prog := parseOnly(t, src)

	var out bytes.Buffer
	interp := New(&out)
	err := interp.Run(prog)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	re, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
	if len(re.Trace) != 2 {
		t.Fatalf("expected 2 call frames on the trace, got %d: %+v", len(re.Trace), re.Trace)
	}
	if re.Trace[0].FunctionName != "inner" || re.Trace[1].FunctionName != "outer" {
		t.Errorf("trace not innermost-first: %+v", re.Trace)
	}
}
