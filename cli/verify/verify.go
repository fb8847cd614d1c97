// Package verify implements `zkvmc verify-composition`: run the
// composition verifier over an existing manifest and validation
// report (spec §6.2, C7).
package verify

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli"

	"github.com/taufold/zkvm/pkg/compose"
	"github.com/taufold/zkvm/pkg/emit"
	"github.com/taufold/zkvm/pkg/harness"
)

// NewCommands returns the verify-composition command.
func NewCommands() []cli.Command {
	return []cli.Command{
		{
			Name:      "verify-composition",
			Usage:     "Check structural composition of an emitted manifest against a validation report",
			UsageText: "zkvmc verify-composition [--dir DIR]",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "dir", Usage: "directory containing manifest.json and validation_report.json", Value: "./out"},
			},
			Action: run,
		},
	}
}

func run(c *cli.Context) error {
	dir := c.String("dir")

	var m emit.Manifest
	if err := readJSON(filepath.Join(dir, "manifest.json"), &m); err != nil {
		return cli.NewExitError(err, 1)
	}
	var report harness.Report
	if err := readJSON(filepath.Join(dir, "validation_report.json"), &report); err != nil {
		return cli.NewExitError(err, 1)
	}

	byComponent := map[string]harness.Result{}
	for _, r := range report.Results {
		byComponent[r.Component] = r
	}

	var anyNotComposed bool
	reports := make([]compose.Report, 0, len(m.Instructions))
	for _, instr := range m.Instructions {
		results := map[string]harness.Result{}
		for _, comp := range instr.Components {
			if r, ok := byComponent[comp.Name]; ok {
				results[comp.Name] = r
			}
		}
		r := compose.Verify(instr, results)
		reports = append(reports, r)
		if r.Status == compose.NotComposed {
			anyNotComposed = true
		}
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Instruction < reports[j].Instruction })
	for _, r := range reports {
		fmt.Fprintf(c.App.Writer, "%s: %s\n", r.Instruction, r.Status)
	}

	if anyNotComposed {
		return cli.NewExitError("one or more instructions failed composition", 1)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("verify: reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("verify: parsing %s: %w", path, err)
	}
	return nil
}
