// Package validate implements `zkvmc validate`: run the harness's
// worker pool against an emitted manifest's component files (spec
// §6.2, C6).
package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli"

	metricspkg "github.com/taufold/zkvm/internal/metrics"
	"github.com/taufold/zkvm/pkg/emit"
	"github.com/taufold/zkvm/pkg/harness"
)

// NewCommands returns the validate command.
func NewCommands() []cli.Command {
	return []cli.Command{
		{
			Name:      "validate",
			Usage:     "Run the external solver against every emitted component file",
			UsageText: "zkvmc validate [--parallel N] [--timeout SECS] [--dir DIR] [--solver PATH] [--metrics-addr ADDR]",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "parallel", Usage: "worker pool size", Value: 4},
				cli.IntFlag{Name: "timeout", Usage: "per-file solver timeout in seconds", Value: 10},
				cli.StringFlag{Name: "dir", Usage: "directory containing manifest.json and component files", Value: "./out"},
				cli.StringFlag{Name: "solver", Usage: "solver binary", Value: "minisat"},
				cli.StringFlag{Name: "metrics-addr", Usage: "if set, serve Prometheus metrics at this address while validating"},
			},
			Action: run,
		},
	}
}

func run(c *cli.Context) error {
	dir := c.String("dir")
	manifestPath := filepath.Join(dir, "manifest.json")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("validate: reading manifest: %w", err), 1)
	}
	var m emit.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return cli.NewExitError(fmt.Errorf("validate: parsing manifest: %w", err), 1)
	}

	var paths []string
	for _, instr := range m.Instructions {
		for _, comp := range instr.Components {
			paths = append(paths, filepath.Join(dir, instr.Instruction, comp.Name+".tau"))
		}
	}

	var recorder harness.Recorder = harness.NoopRecorder{}
	if addr := c.String("metrics-addr"); addr != "" {
		svc := metricspkg.New(addr, nil)
		if err := svc.Start(); err != nil {
			return cli.NewExitError(err, 1)
		}
		defer svc.Shutdown(context.Background())
		recorder = svc.Recorder()
	}

	opts := harness.Options{
		Parallel: c.Int("parallel"),
		Timeout:  time.Duration(c.Int("timeout")) * time.Second,
		DemoMode: os.Getenv("DEMO_MODE") != "",
		Metrics:  recorder,
	}
	oracle := harness.Oracle(harness.ProcessOracle{Binary: c.String("solver")})

	report, err := harness.Run(context.Background(), oracle, paths, opts)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	reportData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := os.WriteFile(filepath.Join(dir, "validation_report.json"), reportData, 0o644); err != nil {
		return cli.NewExitError(err, 1)
	}

	for status, count := range report.Counts {
		fmt.Fprintf(c.App.Writer, "%s: %d\n", status, count)
	}

	if report.AnyFailed() {
		return cli.NewExitError("validation found failing components", 1)
	}
	return nil
}
