package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/EricksonLOOP/craze/interpreter"
	"github.com/EricksonLOOP/craze/internal/diag"
	"github.com/EricksonLOOP/craze/parser"
	"github.com/EricksonLOOP/craze/semantics"
	"github.com/EricksonLOOP/craze/value"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	cyanColor2  = color.New(color.FgCyan)
)

const replBanner = `
   ____
  / ___|_ __ __ _ _______
 | |   | '__/ _' |_  / _ \
 | |___| | | (_| |/ /  __/
  \____|_|  \__,_/___\___|
`

// runREPL starts an interactive Craze session. Unlike a file run, one
// Analyzer and one Interpreter live for the whole session, so
// declarations made on one line are visible on the next, and the
// loop keeps going after an error instead of exiting.
func runREPL() {
	printReplBanner(os.Stdout)

	rl, err := readline.New("craze> ")
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	analyzer := semantics.NewAnalyzer()
	interp := interpreter.New(os.Stdout)

	for {
		line, err := rl.Readline()
		if err != nil {
			os.Stdout.WriteString("bye\n")
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" || line == ".quit" {
			os.Stdout.WriteString("bye\n")
			return
		}
		if line == "/env" {
			rl.SaveHistory(line)
			printGlobalBindings(os.Stdout, interp)
			continue
		}
		rl.SaveHistory(line)

		evalLine(os.Stdout, analyzer, interp, line)
	}
}

// evalLine runs one line of input through the parser, the shared
// analyzer, and the shared interpreter, reporting whatever stage
// fails and recovering from any panic so a single bad line can never
// bring down the session.
func evalLine(w io.Writer, analyzer *semantics.Analyzer, interp *interpreter.Interpreter, line string) {
	defer func() {
		if r := recover(); r != nil {
			diag.Report(w, diag.Runtime, 0, 0, "internal error: "+toString(r))
		}
	}()

	p := parser.NewParser(line)
	prog := p.ParseProgram()
	if p.HasErrors() {
		for _, e := range p.GetErrors() {
			diag.Report(w, e.Kind, e.Line, e.Column, e.Message)
		}
		return
	}

	analyzer.ClearDiagnostics()
	analyzer.Analyze(prog)
	for _, wr := range analyzer.Warnings() {
		diag.Warn(w, wr.Line, wr.Column, wr.Message)
	}
	if analyzer.HasErrors() {
		for _, e := range analyzer.Errors() {
			diag.Report(w, diag.Semantic, e.Line, e.Column, e.Message)
		}
		return
	}

	if err := interp.Run(prog); err != nil {
		re, ok := err.(*interpreter.RuntimeError)
		if !ok {
			diag.Report(w, diag.Runtime, 0, 0, err.Error())
			return
		}
		diag.Report(w, diag.Runtime, re.Line, re.Column, re.Message)
		var frames []diag.Trace
		for _, f := range re.Trace {
			frames = append(frames, diag.Trace{FunctionName: f.FunctionName, CallLine: f.CallLine})
		}
		diag.Stack(w, frames)
	}
}

// printGlobalBindings implements the "/env" meta command: a dump of
// every top-level variable bound so far, styled after the teacher's
// ".exit"-style REPL meta commands. Craze has no struct/module system,
// so this is the one extra command worth adding.
func printGlobalBindings(w io.Writer, interp *interpreter.Interpreter) {
	bindings := interp.Global.LocalBindings()
	for name, v := range bindings {
		if v.Kind == value.Builtin {
			delete(bindings, name)
		}
	}
	if len(bindings) == 0 {
		cyanColor2.Fprintln(w, "(no bindings yet)")
		return
	}
	for name, v := range bindings {
		yellowColor.Fprintf(w, "%s: %s = %s\n", name, v.TypeName(), v.Display())
	}
}

func printReplBanner(w io.Writer) {
	blueColor.Fprintln(w, "============================================================")
	cyanColor2.Fprint(w, replBanner)
	blueColor.Fprintln(w, "============================================================")
	yellowColor.Fprintln(w, version+" -- type .exit to quit")
	blueColor.Fprintln(w, "============================================================")
}

func toString(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(v)
}
