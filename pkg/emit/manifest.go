// Package emit implements the File Emitter (C5): it serializes a
// decomposed instruction's component DAG to disk as one `.tau` file
// per component plus a manifest recording components and edges (spec
// §4.5).
package emit

import (
	"encoding/json"
	"sort"

	"github.com/taufold/zkvm/pkg/decompose"
)

// ComponentManifestEntry is one component's manifest record.
type ComponentManifestEntry struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
}

// EdgeManifestEntry is one producer/consumer edge's manifest record.
type EdgeManifestEntry struct {
	Producer string   `json:"producer"`
	Consumer string   `json:"consumer"`
	Shared   []string `json:"shared"`
}

// InstructionManifest is the manifest §6.3's manifest.json stores for
// a single instruction.
type InstructionManifest struct {
	Instruction string                   `json:"instruction"`
	Components  []ComponentManifestEntry `json:"components"`
	Edges       []EdgeManifestEntry      `json:"edges"`
}

// Manifest is the top-level manifest.json document: one entry per
// instruction, sorted by mnemonic so repeated builds are byte-identical.
type Manifest struct {
	Instructions []InstructionManifest `json:"instructions"`
}

// BuildInstructionManifest converts a decomposed DAG into its
// manifest entry.
func BuildInstructionManifest(dag *decompose.DAG) InstructionManifest {
	entries := make([]ComponentManifestEntry, 0, len(dag.Components))
	for _, c := range dag.Components {
		entries = append(entries, ComponentManifestEntry{
			Name:    c.Name,
			Kind:    c.Kind.String(),
			Inputs:  c.Inputs,
			Outputs: c.Outputs,
		})
	}
	edges := make([]EdgeManifestEntry, 0, len(dag.Edges))
	for _, e := range dag.Edges {
		edges = append(edges, EdgeManifestEntry{Producer: e.Producer, Consumer: e.Consumer, Shared: e.Shared})
	}
	return InstructionManifest{
		Instruction: dag.Instruction.Mnemonic,
		Components:  entries,
		Edges:       edges,
	}
}

// Marshal renders the manifest as indented, deterministically-ordered
// JSON (Marshal sorts m.Instructions by mnemonic first, so the order
// the caller assembled them in does not matter).
func (m Manifest) Marshal() ([]byte, error) {
	sort.Slice(m.Instructions, func(i, j int) bool {
		return m.Instructions[i].Instruction < m.Instructions[j].Instruction
	})
	return json.MarshalIndent(m, "", "  ")
}
