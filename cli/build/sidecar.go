package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taufold/zkvm/pkg/emit"
)

// writeExpectedSidecar writes <out>/<instruction>/expected.json, a
// copy of the instruction's manifest entry for --with-tests runs to
// diff future builds against (spec §8's regression-testable property:
// decomposition is a pure function of the instruction table).
func writeExpectedSidecar(outDir string, entry emit.InstructionManifest) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("build: marshaling expected sidecar: %w", err)
	}
	path := filepath.Join(outDir, entry.Instruction, "expected.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("build: writing expected sidecar: %w", err)
	}
	return nil
}
