// Command wt draws word clouds and expandable sentiment trees from review
// datasets, either as SVG/PNG files or interactively in the terminal.
package main

import (
	"os"

	"github.com/vanderheijden86/wordtree/pkg/debug"
)

func main() {
	defer debug.Sync()
	if err := newRootCmd().Execute(); err != nil {
		Bad.Fprintf(os.Stderr, "wt: %v\n", err)
		debug.Sync()
		os.Exit(1)
	}
}
