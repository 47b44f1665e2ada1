// Command craze runs the Craze interpreter: given a source file, it
// pipes the text through the lexer, parser, semantic analyzer, and
// interpreter in turn, reporting the first stage that fails. With no
// arguments it drops into an interactive REPL instead.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/EricksonLOOP/craze/internal/diag"
	"github.com/EricksonLOOP/craze/interpreter"
	"github.com/EricksonLOOP/craze/parser"
	"github.com/EricksonLOOP/craze/semantics"
)

const version = "craze 0.1.0"

func main() {
	args := os.Args[1:]

	switch {
	case len(args) == 1 && (args[0] == "--version" || args[0] == "-v"):
		fmt.Println(version)
		os.Exit(0)
	case len(args) == 1 && (args[0] == "--help" || args[0] == "-h"):
		printUsage()
		os.Exit(0)
	case len(args) == 0:
		runREPL()
	case len(args) == 1:
		os.Exit(runFile(args[0]))
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: craze <path-to-source-file>")
	fmt.Fprintln(os.Stderr, "       craze            (start the interactive REPL)")
}

// runFile executes the four pipeline stages against path and returns
// the process exit code: 0 on a semantically valid program that ran
// without a runtime error, 1 on any stage failure or unreadable file.
func runFile(path string) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "[ERROR Runtime] internal error: %v\n", r)
			exitCode = 1
		}
	}()

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", path, err)
		return 1
	}

	diag.Header(os.Stdout, path)
	ok := execute(string(src), os.Stdout, os.Stderr)
	diag.Footer(os.Stdout, ok)

	if !ok {
		return 1
	}
	return 0
}

// execute runs the lexer, parser, semantic analyzer, and interpreter
// over src in sequence, writing the program's own output to out and
// every diagnostic to errs. It reports whether every stage succeeded.
func execute(src string, out, errs io.Writer) bool {
	p := parser.NewParser(src)
	prog := p.ParseProgram()
	if p.HasErrors() {
		for _, e := range p.GetErrors() {
			diag.Report(errs, e.Kind, e.Line, e.Column, e.Message)
		}
		return false
	}

	analyzer := semantics.NewAnalyzer()
	analyzer.Analyze(prog)
	for _, w := range analyzer.Warnings() {
		diag.Warn(errs, w.Line, w.Column, w.Message)
	}
	if analyzer.HasErrors() {
		for _, e := range analyzer.Errors() {
			diag.Report(errs, diag.Semantic, e.Line, e.Column, e.Message)
		}
		return false
	}

	interp := interpreter.New(out)
	if err := interp.Run(prog); err != nil {
		re, ok := err.(*interpreter.RuntimeError)
		if !ok {
			diag.Report(errs, diag.Runtime, 0, 0, err.Error())
			return false
		}
		diag.Report(errs, diag.Runtime, re.Line, re.Column, re.Message)
		var frames []diag.Trace
		for _, f := range re.Trace {
			frames = append(frames, diag.Trace{FunctionName: f.FunctionName, CallLine: f.CallLine})
		}
		diag.Stack(errs, frames)
		return false
	}

	return true
}
