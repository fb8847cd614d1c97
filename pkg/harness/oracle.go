package harness

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Outcome is the raw result of one solver invocation.
type Outcome struct {
	Stdout string
	Stderr string
}

// Oracle runs one component file through an external solver and
// returns its raw output. Solve must respect ctx's deadline.
type Oracle interface {
	Solve(ctx context.Context, path string) (Outcome, error)
}

// ProcessOracle shells out to a solver binary per invocation, per
// spec §4.6 ("a directory of component files and an oracle command: a
// path to a solver binary plus an argument template"). Template
// arguments containing the literal substring "{file}" are replaced
// with the component file's path; an argument list with no such
// placeholder gets the path appended.
type ProcessOracle struct {
	Binary string
	Args   []string
}

const filePlaceholder = "{file}"

func (o ProcessOracle) Solve(ctx context.Context, path string) (Outcome, error) {
	args := make([]string, len(o.Args))
	hasPlaceholder := false
	for i, a := range o.Args {
		if strings.Contains(a, filePlaceholder) {
			hasPlaceholder = true
			args[i] = strings.ReplaceAll(a, filePlaceholder, path)
		} else {
			args[i] = a
		}
	}
	if !hasPlaceholder {
		args = append(args, path)
	}

	cmd := exec.CommandContext(ctx, o.Binary, args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	outcome := Outcome{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil && ctx.Err() == nil {
		return outcome, fmt.Errorf("harness: solver invocation failed: %w", err)
	}
	return outcome, ctx.Err()
}

// StubOracle always reports SAT without running a process, standing
// in for a well-behaved solver in the harness tests (spec §8).
type StubOracle struct{}

func (StubOracle) Solve(ctx context.Context, path string) (Outcome, error) {
	return Outcome{Stdout: "solution found"}, nil
}
