// Package app assembles the zkvmc command tree: build, validate,
// verify-composition, run, and show-limitations (spec §6.2), in the
// teacher's cli.App wiring style.
package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli"

	"github.com/taufold/zkvm/cli/build"
	"github.com/taufold/zkvm/cli/limitations"
	"github.com/taufold/zkvm/cli/run"
	"github.com/taufold/zkvm/cli/validate"
	"github.com/taufold/zkvm/cli/verify"
)

// Version is the zkvmc version, set at build time via -ldflags.
var Version string

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "zkvmc\nVersion: %s\nGoVersion: %s\n", Version, runtime.Version())
}

// New creates the zkvmc cli.App with every command registered.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "zkvmc"
	ctl.Version = Version
	ctl.Usage = "Boolean-constraint compiler and executor for the TauFoldZKVM instruction set"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, build.NewCommands()...)
	ctl.Commands = append(ctl.Commands, validate.NewCommands()...)
	ctl.Commands = append(ctl.Commands, verify.NewCommands()...)
	ctl.Commands = append(ctl.Commands, run.NewCommands()...)
	ctl.Commands = append(ctl.Commands, limitations.NewCommands()...)
	return ctl
}
