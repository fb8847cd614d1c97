package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taufold/zkvm/pkg/decompose"
	"github.com/taufold/zkvm/pkg/isa"
)

func TestComponentFileHasThreeLogicalLines(t *testing.T) {
	instr, ok := isa.Lookup("AND")
	require.True(t, ok)
	dag, err := decompose.Decompose(instr)
	require.NoError(t, err)

	text := ComponentFile(dag.Components[0])
	require.Regexp(t, `^# .*\nsolve .*\nquit\n$`, text)
}

func TestWriteInstructionIsIdempotent(t *testing.T) {
	instr, ok := isa.Lookup("ADD")
	require.True(t, ok)
	dag, err := decompose.Decompose(instr)
	require.NoError(t, err)

	dir1 := t.TempDir()
	dir2 := t.TempDir()
	require.NoError(t, WriteInstruction(dir1, dag))
	require.NoError(t, WriteInstruction(dir2, dag))

	entries, err := os.ReadDir(filepath.Join(dir1, "ADD"))
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		a, err := os.ReadFile(filepath.Join(dir1, "ADD", e.Name()))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dir2, "ADD", e.Name()))
		require.NoError(t, err)
		require.Equal(t, a, b)
	}
}

func TestManifestMarshalDeterministicOrder(t *testing.T) {
	addInstr, _ := isa.Lookup("ADD")
	subInstr, _ := isa.Lookup("SUB")
	addDag, err := decompose.Decompose(addInstr)
	require.NoError(t, err)
	subDag, err := decompose.Decompose(subInstr)
	require.NoError(t, err)

	m1 := Manifest{Instructions: []InstructionManifest{BuildInstructionManifest(subDag), BuildInstructionManifest(addDag)}}
	m2 := Manifest{Instructions: []InstructionManifest{BuildInstructionManifest(addDag), BuildInstructionManifest(subDag)}}

	b1, err := m1.Marshal()
	require.NoError(t, err)
	b2, err := m2.Marshal()
	require.NoError(t, err)
	require.Equal(t, b1, b2)
}
