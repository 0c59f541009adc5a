package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	Brand  = color.New(color.FgHiMagenta, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// wrote reports a written file.
func wrote(w io.Writer, what, path string) {
	fmt.Fprintf(w, "%s %s %s\n", Good.Sprint("✓"), what, Subtle.Sprint(path))
}

func warnf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", Warn.Sprint("⚠"), fmt.Sprintf(format, args...))
}
