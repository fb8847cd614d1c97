// Command zkvmc is the Boolean-constraint compiler and executor for the
// TauFoldZKVM instruction set: build, validate, verify-composition, run,
// and show-limitations.
package main

import (
	"fmt"
	"os"

	"github.com/taufold/zkvm/cli/app"
)

func main() {
	ctl := app.New()
	if err := ctl.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
