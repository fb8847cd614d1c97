// Package run implements `zkvmc run`: assemble and execute a program
// under the C8 executor, optionally stepping through it interactively
// (spec §6.2).
package run

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/taufold/zkvm/cli/flags"
	"github.com/taufold/zkvm/pkg/cryptosurface"
	"github.com/taufold/zkvm/pkg/loader"
	"github.com/taufold/zkvm/pkg/vmcore"
)

// NewCommands returns the run command.
func NewCommands() []cli.Command {
	runFlags := flags.MarkRequired([]cli.Flag{
		cli.StringFlag{Name: "program", Usage: "assembly source file"},
		cli.StringFlag{Name: "input", Usage: "newline-separated uint32 values fed to READ"},
		cli.UintFlag{Name: "max-steps", Usage: "step budget, 0 means unbounded"},
		cli.UintFlag{Name: "memory", Usage: "memory size in words", Value: 4096},
		cli.BoolFlag{Name: "interactive", Usage: "step through execution in a REPL"},
		cli.StringFlag{Name: "trace-out", Usage: "if set, write an lz4-compressed step trace to this path"},
	}, "program")
	return []cli.Command{
		{
			Name:      "run",
			Usage:     "Assemble and execute a program",
			UsageText: "zkvmc run --program PATH [--input PATH] [--max-steps N] [--interactive] [--trace-out PATH]",
			Flags:     runFlags,
			Action:    run,
		},
	}
}

func run(c *cli.Context) error {
	src, err := os.ReadFile(c.String("program"))
	if err != nil {
		return cli.NewExitError(fmt.Errorf("run: reading program: %w", err), 1)
	}
	image, err := loader.Assemble(string(src))
	if err != nil {
		return cli.NewExitError(fmt.Errorf("run: %w", err), 1)
	}

	ex := vmcore.NewExecutor(image, int(c.Uint("memory")), cryptosurface.StubProvider{})
	ex.State.StepBudget = uint64(c.Uint("max-steps"))

	if inputPath := c.String("input"); inputPath != "" {
		values, err := readInputs(inputPath)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		ex.State.InputQueue = values
	}

	if c.String("trace-out") != "" {
		ex.Trace = &vmcore.TraceRecorder{}
	}

	if c.Bool("interactive") {
		err = runInteractive(c, ex)
	} else {
		err = ex.Run(context.Background())
	}

	if ex.Trace != nil {
		compressed, mErr := ex.Trace.MarshalCompressed()
		if mErr == nil {
			_ = os.WriteFile(c.String("trace-out"), compressed, 0o644)
		}
	}

	for _, v := range ex.State.OutputQueue {
		fmt.Fprintln(c.App.Writer, v)
	}
	for _, line := range ex.State.DebugLog {
		fmt.Fprintln(c.App.Writer, "debug:", line)
	}

	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func readInputs(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("run: reading input: %w", err)
	}
	defer f.Close()

	var values []uint32
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseUint(line, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("run: malformed input value %q: %w", line, err)
		}
		values = append(values, uint32(v))
	}
	return values, sc.Err()
}
