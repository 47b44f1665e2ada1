package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const bannerLine = "============================================================"

var (
	cyanColor  = color.New(color.FgCyan, color.Bold)
	greenColor = color.New(color.FgGreen, color.Bold)
	redColor   = color.New(color.FgRed, color.Bold)
)

// Header prints the decorative block that opens a run, before any of
// the program's own print output.
func Header(w io.Writer, sourcePath string) {
	fmt.Fprintln(w, cyanColor.Sprint(bannerLine))
	fmt.Fprintln(w, cyanColor.Sprintf("  craze  -  running %s", sourcePath))
	fmt.Fprintln(w, cyanColor.Sprint(bannerLine))
}

// Footer prints the decorative block that closes a run. Its color and
// text reflect whether the run succeeded, so a terminal scrollback
// makes the outcome obvious even above the program's own output.
func Footer(w io.Writer, ok bool) {
	fmt.Fprintln(w, cyanColor.Sprint(bannerLine))
	if ok {
		fmt.Fprintln(w, greenColor.Sprint("  done"))
	} else {
		fmt.Fprintln(w, redColor.Sprint("  failed"))
	}
	fmt.Fprintln(w, cyanColor.Sprint(bannerLine))
}
