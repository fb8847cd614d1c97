package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	shellquote "github.com/kballard/go-shellquote"
	"github.com/urfave/cli"

	"github.com/taufold/zkvm/pkg/vmcore"
)

// runInteractive steps ex one instruction at a time under operator
// control: step, continue, state, breakpoints by PC, and exit.
func runInteractive(c *cli.Context, ex *vmcore.Executor) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "zkvm> ",
		Stdout: c.App.Writer,
	})
	if err != nil {
		return fmt.Errorf("run: starting interactive session: %w", err)
	}
	defer rl.Close()

	breakpoints := map[uint32]bool{}

	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run: reading command: %w", err)
		}

		args, err := shellquote.Split(line)
		if err != nil || len(args) == 0 {
			continue
		}

		switch args[0] {
		case "step", "s":
			halted, err := ex.Step()
			if err != nil {
				fmt.Fprintln(c.App.Writer, "error:", err)
				continue
			}
			printState(c, ex)
			if halted {
				fmt.Fprintln(c.App.Writer, "halted")
			}
		case "continue", "c":
			if err := stepUntil(ex, breakpoints); err != nil {
				fmt.Fprintln(c.App.Writer, "error:", err)
			}
			printState(c, ex)
		case "run", "r":
			if err := ex.Run(context.Background()); err != nil {
				fmt.Fprintln(c.App.Writer, "error:", err)
			}
			printState(c, ex)
		case "break", "b":
			if len(args) != 2 {
				fmt.Fprintln(c.App.Writer, "usage: break <pc>")
				continue
			}
			var pc uint32
			if _, err := fmt.Sscanf(args[1], "%d", &pc); err != nil {
				fmt.Fprintln(c.App.Writer, "usage: break <pc>")
				continue
			}
			breakpoints[pc] = true
		case "state":
			printState(c, ex)
		case "exit", "quit", "q":
			return nil
		default:
			fmt.Fprintln(c.App.Writer, "unknown command:", strings.Join(args, " "))
		}

		if ex.State.Halted {
			return nil
		}
	}
}

func stepUntil(ex *vmcore.Executor, breakpoints map[uint32]bool) error {
	for {
		halted, err := ex.Step()
		if err != nil || halted {
			return err
		}
		if breakpoints[ex.State.PC] {
			return nil
		}
	}
}

func printState(c *cli.Context, ex *vmcore.Executor) {
	fmt.Fprintf(c.App.Writer, "pc=%d stack=%v flags=%+v\n", ex.State.PC, ex.State.Stack, ex.State.Flags)
}
