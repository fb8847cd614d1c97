package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/decompose"
)

// ComponentFile renders one component's on-disk text form (spec
// §4.5/§6.3): a header comment naming the component and its role, a
// single `solve` line carrying the serialized body, and `quit`. ASCII,
// UNIX newlines, exactly three logical lines.
func ComponentFile(c *component.Component) string {
	return fmt.Sprintf("# %s (%s)\nsolve %s\nquit\n", c.Name, c.Kind.String(), c.Body())
}

// WriteInstruction writes every component file for one instruction's
// DAG under <out>/<instruction>/, plus nothing else — the top-level
// manifest.json is assembled separately by the caller from every
// instruction's BuildInstructionManifest result so a single build can
// batch all of them into one file (spec §6.3's on-disk layout).
//
// Idempotence (spec §4.5, tested in §8): writes are pure functions of
// the DAG, deterministically ordered, so running this twice against
// an unchanged DAG produces byte-identical files and the same
// manifest content hash.
func WriteInstruction(outDir string, dag *decompose.DAG) error {
	instrDir := filepath.Join(outDir, dag.Instruction.Mnemonic)
	if err := os.MkdirAll(instrDir, 0o755); err != nil {
		return fmt.Errorf("emit: creating instruction dir: %w", err)
	}
	for _, c := range dag.Components {
		path := filepath.Join(instrDir, c.Name+".tau")
		if err := os.WriteFile(path, []byte(ComponentFile(c)), 0o644); err != nil {
			return fmt.Errorf("emit: writing component %s: %w", c.Name, err)
		}
	}
	return nil
}

// WriteManifest marshals m and writes it to <out>/manifest.json.
func WriteManifest(outDir string, m Manifest) error {
	data, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("emit: marshaling manifest: %w", err)
	}
	path := filepath.Join(outDir, "manifest.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("emit: writing manifest: %w", err)
	}
	return nil
}
