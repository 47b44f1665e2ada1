// Package diag formats the diagnostic output shared by every pipeline
// stage: the "[ERROR Kind] line L, column C, message" error-stream
// format and the decorative banners that frame a program's own output
// on stdout.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Kind identifies which pipeline stage a diagnostic came from.
type Kind string

const (
	Lexical   Kind = "Lexical"
	Syntactic Kind = "Syntactic"
	Semantic  Kind = "Semantic"
	Runtime   Kind = "Runtime"
)

var kindColor = color.New(color.FgRed, color.Bold)
var warnColor = color.New(color.FgYellow)

// Report writes one "[ERROR Kind] line L, column C, message" line to w.
func Report(w io.Writer, kind Kind, line, column int, message string) {
	prefix := kindColor.Sprintf("[ERROR %s]", kind)
	fmt.Fprintf(w, "%s line %d, column %d, %s\n", prefix, line, column, message)
}

// Warn writes a non-fatal widening warning to w. Warnings never carry
// a Kind prefix with "ERROR" in it, since they never fail the pipeline.
func Warn(w io.Writer, line, column int, message string) {
	prefix := warnColor.Sprintf("[WARNING]")
	fmt.Fprintf(w, "%s line %d, column %d, %s\n", prefix, line, column, message)
}

// Trace describes one call-stack frame for Stack's innermost-first
// printout; interpreter.RuntimeError's own Trace field supplies these.
type Trace struct {
	FunctionName string
	CallLine     int
}

// Stack prints a runtime error's call trace, innermost frame first.
func Stack(w io.Writer, frames []Trace) {
	if len(frames) == 0 {
		return
	}
	fmt.Fprintln(w, "call stack (innermost first):")
	for _, f := range frames {
		fmt.Fprintf(w, "  at %s (line %d)\n", f.FunctionName, f.CallLine)
	}
}
