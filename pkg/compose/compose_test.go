package compose

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taufold/zkvm/pkg/decompose"
	"github.com/taufold/zkvm/pkg/emit"
	"github.com/taufold/zkvm/pkg/harness"
	"github.com/taufold/zkvm/pkg/isa"
)

func allSAT(m emit.InstructionManifest) map[string]harness.Result {
	results := map[string]harness.Result{}
	for _, c := range m.Components {
		results[c.Name] = harness.Result{Component: c.Name, Status: harness.StatusSAT}
	}
	return results
}

func TestVerifyComposedForWellFormedAddChain(t *testing.T) {
	instr, _ := isa.Lookup("ADD")
	dag, err := decompose.Decompose(instr)
	require.NoError(t, err)
	m := emit.BuildInstructionManifest(dag)

	report := Verify(m, allSAT(m))
	require.Equal(t, Composed, report.Status)
	require.Empty(t, report.Orphans)
	require.Empty(t, report.DoubleDrive)
	require.Empty(t, report.Cycles)
}

func TestVerifyIndependentBitwiseComponentsAreNotOrphans(t *testing.T) {
	instr, _ := isa.Lookup("AND")
	dag, err := decompose.Decompose(instr)
	require.NoError(t, err)
	m := emit.BuildInstructionManifest(dag)
	require.Empty(t, m.Edges)

	report := Verify(m, allSAT(m))
	require.Equal(t, Composed, report.Status)
	require.Empty(t, report.Orphans)
}

func TestVerifyPartiallyComposedOnUnsatEdge(t *testing.T) {
	instr, _ := isa.Lookup("ADD")
	dag, err := decompose.Decompose(instr)
	require.NoError(t, err)
	m := emit.BuildInstructionManifest(dag)

	results := allSAT(m)
	results[m.Edges[0].Producer] = harness.Result{Component: m.Edges[0].Producer, Status: harness.StatusUNSAT}

	report := Verify(m, results)
	require.Equal(t, PartiallyComposed, report.Status)
	require.NotEmpty(t, report.BadEdges)
}

func TestVerifyDetectsCycle(t *testing.T) {
	m := emit.InstructionManifest{
		Instruction: "FAKE",
		Components: []emit.ComponentManifestEntry{
			{Name: "x", Outputs: []string{"ox"}, Inputs: []string{"oy"}},
			{Name: "y", Outputs: []string{"oy"}, Inputs: []string{"ox"}},
		},
		Edges: []emit.EdgeManifestEntry{
			{Producer: "x", Consumer: "y", Shared: []string{"ox"}},
			{Producer: "y", Consumer: "x", Shared: []string{"oy"}},
		},
	}
	results := map[string]harness.Result{
		"x": {Component: "x", Status: harness.StatusSAT},
		"y": {Component: "y", Status: harness.StatusSAT},
	}
	report := Verify(m, results)
	require.Equal(t, NotComposed, report.Status)
	require.NotEmpty(t, report.Cycles)
}
