// Package limitations implements `zkvmc show-limitations`: a canned,
// always-exit-0 explanation of which instructions the decomposer
// can't express as gate-level constraints yet (spec §6.2).
package limitations

import (
	"fmt"
	"sort"

	"github.com/urfave/cli"

	"github.com/taufold/zkvm/pkg/decompose"
	"github.com/taufold/zkvm/pkg/isa"
)

// NewCommands returns the show-limitations command.
func NewCommands() []cli.Command {
	return []cli.Command{
		{
			Name:      "show-limitations",
			Usage:     "Explain which instructions have no gate-level decomposition yet",
			UsageText: "zkvmc show-limitations",
			Action:    run,
		},
	}
}

func run(c *cli.Context) error {
	type entry struct {
		mnemonic string
		reason   string
	}
	var entries []entry
	for _, instr := range isa.All() {
		if _, err := decompose.Decompose(instr); err != nil {
			var nyd *decompose.ErrNotYetDecomposable
			if asNotYetDecomposable(err, &nyd) {
				entries = append(entries, entry{instr.Mnemonic, nyd.Reason})
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].mnemonic < entries[j].mnemonic })

	fmt.Fprintln(c.App.Writer, "Instructions without a gate-level constraint decomposition:")
	for _, e := range entries {
		fmt.Fprintf(c.App.Writer, "  %-8s %s\n", e.mnemonic, e.reason)
	}
	fmt.Fprintln(c.App.Writer, "These mnemonics run only under the C8 executor; see pkg/decompose for the full dispatch table.")
	return nil
}

func asNotYetDecomposable(err error, target **decompose.ErrNotYetDecomposable) bool {
	nyd, ok := err.(*decompose.ErrNotYetDecomposable)
	if ok {
		*target = nyd
	}
	return ok
}
