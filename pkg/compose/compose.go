// Package compose implements the Composition Verifier (C7): given an
// instruction's manifest and the per-file solver results the
// validation harness produced, it walks the declared edges and checks
// structural integrity — it never re-solves the combined system (spec
// §4.7).
package compose

import (
	"sort"

	"github.com/taufold/zkvm/pkg/emit"
	"github.com/taufold/zkvm/pkg/harness"
)

// Status classifies one instruction's composition outcome.
type Status string

const (
	Composed          Status = "Composed"
	PartiallyComposed Status = "PartiallyComposed"
	NotComposed       Status = "NotComposed"
)

// Report is the verifier's per-instruction output.
type Report struct {
	Instruction string   `json:"instruction"`
	Status      Status   `json:"status"`
	Orphans     []string `json:"orphans,omitempty"`
	DoubleDrive []string `json:"double_drive,omitempty"`
	Cycles      []string `json:"cycles,omitempty"`
	BadEdges    []string `json:"bad_edges,omitempty"`
}

// Verify checks one instruction manifest against its per-component
// solver results.
func Verify(m emit.InstructionManifest, results map[string]harness.Result) Report {
	r := Report{Instruction: m.Instruction, Status: Composed}

	guaranteedBy := map[string]string{}
	reached := map[string]bool{}

	adj := map[string][]string{}
	for _, e := range m.Edges {
		reached[e.Producer] = true
		reached[e.Consumer] = true
		adj[e.Producer] = append(adj[e.Producer], e.Consumer)

		pr, pok := results[e.Producer]
		cr, cok := results[e.Consumer]
		if !pok || !cok || pr.Status != harness.StatusSAT || cr.Status != harness.StatusSAT {
			r.BadEdges = append(r.BadEdges, e.Producer+"->"+e.Consumer)
			continue
		}
		producerOutputs := outputSet(m, e.Producer)
		consumerInputs := inputSet(m, e.Consumer)
		for _, id := range e.Shared {
			if !producerOutputs[id] || !consumerInputs[id] {
				r.BadEdges = append(r.BadEdges, e.Producer+"->"+e.Consumer+":"+id)
				continue
			}
			if owner, ok := guaranteedBy[id]; ok && owner != e.Producer {
				r.DoubleDrive = append(r.DoubleDrive, id)
			}
			guaranteedBy[id] = e.Producer
		}
	}

	// A DAG with no edges at all (bitwise ops: 8 independent per-nibble
	// components by design, spec §4.3) has nothing to be disconnected
	// from. Orphan detection only applies once the instruction has
	// declared at least one edge, i.e. is meant to be interconnected.
	if len(m.Edges) > 0 {
		for _, c := range m.Components {
			if !reached[c.Name] {
				r.Orphans = append(r.Orphans, c.Name)
			}
		}
	}

	if cyc := findCycle(adj); len(cyc) > 0 {
		r.Cycles = cyc
	}

	sort.Strings(r.Orphans)
	sort.Strings(r.DoubleDrive)
	sort.Strings(r.BadEdges)

	switch {
	case len(r.Orphans) > 0 || len(r.DoubleDrive) > 0 || len(r.Cycles) > 0:
		r.Status = NotComposed
	case len(r.BadEdges) > 0:
		r.Status = PartiallyComposed
	default:
		r.Status = Composed
	}
	return r
}

func outputSet(m emit.InstructionManifest, component string) map[string]bool {
	set := map[string]bool{}
	for _, c := range m.Components {
		if c.Name == component {
			for _, o := range c.Outputs {
				set[o] = true
			}
		}
	}
	return set
}

func inputSet(m emit.InstructionManifest, component string) map[string]bool {
	set := map[string]bool{}
	for _, c := range m.Components {
		if c.Name == component {
			for _, in := range c.Inputs {
				set[in] = true
			}
		}
	}
	return set
}

// findCycle does a DFS over the producer/consumer adjacency looking
// for a back edge; it returns the cycle's component names in visit
// order, or nil if the graph is acyclic.
func findCycle(adj map[string][]string) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[string]int{}
	var path []string
	var cycle []string

	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = gray
		path = append(path, node)
		for _, next := range adj[node] {
			switch color[next] {
			case white:
				if visit(next) {
					return true
				}
			case gray:
				cycle = append(append([]string{}, path...), next)
				return true
			}
		}
		path = path[:len(path)-1]
		color[node] = black
		return false
	}

	nodes := make([]string, 0, len(adj))
	for n := range adj {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	for _, n := range nodes {
		if color[n] == white {
			if visit(n) {
				return cycle
			}
		}
	}
	return nil
}
