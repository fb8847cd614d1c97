// Package decompose implements the Instruction Decomposer (C4): for
// each ISA instruction it builds a component DAG out of pkg/primitive
// generators, routing shared nibble/carry/flag identifiers between
// them through pkg/contract composition.
package decompose

import (
	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/contract"
	"github.com/taufold/zkvm/pkg/isa"
	"github.com/taufold/zkvm/pkg/primitive"
)

// Edge is a producer/consumer relation identified by the set of
// identifiers the consumer shares with the producer (spec §3 Manifest).
type Edge struct {
	Producer string
	Consumer string
	Shared   []string
}

// DAG is the full set of components, their decorating contracts, and
// the edges between them for a single instruction.
type DAG struct {
	Instruction isa.Instruction
	Components  []*component.Component
	Contracts   map[string]*contract.Contract
	Edges       []Edge
}

// ComponentNames returns the ordered list of component file names in
// the DAG, the order they were appended in (deterministic: decompose
// always builds in the same order for the same instruction).
func (d *DAG) ComponentNames() []string {
	names := make([]string, len(d.Components))
	for i, c := range d.Components {
		names[i] = c.Name
	}
	return names
}

// builder accumulates components/contracts/edges while a decomposition
// function runs; it is the namespace-scoped, single-instruction state
// mentioned in spec §9 ("per-instruction namespaces handed to the
// decomposer").
type builder struct {
	instr      isa.Instruction
	components []*component.Component
	contracts  map[string]*contract.Contract
	edges      []Edge
	seenOutput map[string]string // output var -> owning component name
}

func newBuilder(instr isa.Instruction) *builder {
	return &builder{
		instr:      instr,
		contracts:  map[string]*contract.Contract{},
		seenOutput: map[string]string{},
	}
}

func (b *builder) add(res *primitive.Result) error {
	for _, out := range res.Component.Outputs {
		if owner, ok := b.seenOutput[out]; ok {
			return &ErrIdentifierCollision{Instruction: b.instr.Mnemonic, Identifier: out, First: owner, Second: res.Component.Name}
		}
		b.seenOutput[out] = res.Component.Name
	}
	b.components = append(b.components, res.Component)
	b.contracts[res.Component.Name] = res.Contract
	return nil
}

// link records an edge from producer to consumer over the given
// shared identifiers, deriving it from the already-added contracts so
// composition-law membership (spec §3) can be checked immediately.
func (b *builder) link(producer, consumer string, shared []string) error {
	pc, ok := b.contracts[producer]
	if !ok {
		return &ErrUnknownComponent{Instruction: b.instr.Mnemonic, Component: producer}
	}
	cc, ok := b.contracts[consumer]
	if !ok {
		return &ErrUnknownComponent{Instruction: b.instr.Mnemonic, Component: consumer}
	}
	for _, id := range shared {
		if _, ok := pc.Guarantees[id]; !ok {
			return &ErrUnreachableGuarantee{Instruction: b.instr.Mnemonic, Identifier: id, Component: producer}
		}
		if _, ok := cc.Assumptions[id]; !ok {
			return &ErrUnreachableGuarantee{Instruction: b.instr.Mnemonic, Identifier: id, Component: consumer}
		}
	}
	b.edges = append(b.edges, Edge{Producer: producer, Consumer: consumer, Shared: shared})
	return nil
}

func (b *builder) dag() *DAG {
	return &DAG{
		Instruction: b.instr,
		Components:  b.components,
		Contracts:   b.contracts,
		Edges:       b.edges,
	}
}
