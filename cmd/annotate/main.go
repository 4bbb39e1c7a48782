// Command annotate replays a script of annotation steps onto a screenshot
// and writes the rendered result.
//
//	annotate render --input shot.png --script steps.yaml --output out.png
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
