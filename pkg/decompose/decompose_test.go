package decompose

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taufold/zkvm/pkg/isa"
)

func mustInstr(t *testing.T, mnemonic string) isa.Instruction {
	t.Helper()
	in, ok := isa.Lookup(mnemonic)
	require.True(t, ok, "mnemonic %s not in ISA table", mnemonic)
	return in
}

func TestAdd32HasEightNibblesAndSevenLinks(t *testing.T) {
	dag, err := Decompose(mustInstr(t, "ADD"))
	require.NoError(t, err)

	nibbleAdders, carryLinks := 0, 0
	for _, c := range dag.Components {
		if len(c.Outputs) == 5 && len(c.Internal) == 3 {
			nibbleAdders++
		}
		if len(c.Name) >= len("add_carrylink") && c.Name[:len("add_carrylink")] == "add_carrylink" {
			carryLinks++
		}
	}
	require.Equal(t, 8, nibbleAdders, "a 32-bit add must decompose into exactly 8 nibble adders")
	require.Equal(t, 7, carryLinks, "expected exactly 7 carry-link rename components for a 32-bit add")
}

func TestSub32ProducesBorrowFlag(t *testing.T) {
	dag, err := Decompose(mustInstr(t, "SUB"))
	require.NoError(t, err)
	found := false
	for _, c := range dag.Components {
		for _, out := range c.Outputs {
			if out == "bf" {
				found = true
			}
		}
	}
	require.True(t, found, "sub32 must produce a bf (borrow flag) output")
}

func TestMulIsNotYetDecomposable(t *testing.T) {
	_, err := Decompose(mustInstr(t, "MUL"))
	require.Error(t, err)
	var nyd *ErrNotYetDecomposable
	require.ErrorAs(t, err, &nyd)
}

func TestDivIsNotYetDecomposable(t *testing.T) {
	_, err := Decompose(mustInstr(t, "DIV"))
	require.Error(t, err)
	require.ErrorAs(t, err, new(*ErrNotYetDecomposable))
}

func TestBitwise32HasEightIndependentComponents(t *testing.T) {
	for _, mnemonic := range []string{"AND", "OR", "XOR"} {
		dag, err := Decompose(mustInstr(t, mnemonic))
		require.NoError(t, err)
		require.Len(t, dag.Components, 8)
		require.Empty(t, dag.Edges, "bitwise ops have no carry to propagate between nibbles")
	}
}

func TestNot32HasEightComponents(t *testing.T) {
	dag, err := Decompose(mustInstr(t, "NOT"))
	require.NoError(t, err)
	require.Len(t, dag.Components, 8)
}

func TestShift32BuildsCoarseAndFineStages(t *testing.T) {
	dag, err := Decompose(mustInstr(t, "SHL"))
	require.NoError(t, err)
	// 2 constants + 32 coarse mux bits + 8 fine shifters
	require.Len(t, dag.Components, 2+32+8)

	dag, err = Decompose(mustInstr(t, "SHR"))
	require.NoError(t, err)
	require.Len(t, dag.Components, 2+32+8)
}

func TestCompareReusesSubtractor(t *testing.T) {
	for _, mnemonic := range []string{"EQ", "NE", "LT", "GT", "LE", "GE"} {
		dag, err := Decompose(mustInstr(t, mnemonic))
		require.NoError(t, err)
		hasResult := false
		for _, c := range dag.Components {
			for _, out := range c.Outputs {
				if out == "r0" {
					hasResult = true
				}
			}
		}
		require.True(t, hasResult, "%s must produce r0", mnemonic)
	}
}

func TestConditionalBranchProducesTakenBit(t *testing.T) {
	for _, mnemonic := range []string{"JZ", "JNZ"} {
		dag, err := Decompose(mustInstr(t, mnemonic))
		require.NoError(t, err)
		require.Len(t, dag.Components, 1)
		require.Equal(t, []string{"bt"}, dag.Components[0].Outputs)
	}
}

func TestPureControlTransferIsNotYetDecomposable(t *testing.T) {
	for _, mnemonic := range []string{"JMP", "CALL", "RET", "NOP", "HALT"} {
		_, err := Decompose(mustInstr(t, mnemonic))
		require.Error(t, err)
		require.ErrorAs(t, err, new(*ErrNotYetDecomposable))
	}
}

func TestLoadStoreProduceAddressDecode(t *testing.T) {
	dag, err := Decompose(mustInstr(t, "LOAD"))
	require.NoError(t, err)
	require.Len(t, dag.Components, 1+32)

	dag, err = Decompose(mustInstr(t, "STORE"))
	require.NoError(t, err)
	require.Len(t, dag.Components, 1+32)
}

func TestPushHasNoDecomposeTimeStructure(t *testing.T) {
	_, err := Decompose(mustInstr(t, "PUSH"))
	require.Error(t, err)
	require.ErrorAs(t, err, new(*ErrNotYetDecomposable))
}

func TestNonCircuitInstructionsAreNotYetDecomposable(t *testing.T) {
	for _, mnemonic := range []string{"HASH", "SIGN", "VERIFY", "READ", "WRITE", "LOG", "ASSERT", "SYSCALL", "YIELD", "DEBUG", "TIME"} {
		_, err := Decompose(mustInstr(t, mnemonic))
		require.Error(t, err)
		require.ErrorAs(t, err, new(*ErrNotYetDecomposable))
	}
}

func TestDecomposeEveryInstructionEitherBuildsOrDeclaresNotYetDecomposable(t *testing.T) {
	for _, instr := range isa.All() {
		_, err := Decompose(instr)
		if err != nil {
			require.ErrorAs(t, err, new(*ErrNotYetDecomposable), "instruction %s", instr.Mnemonic)
		}
	}
}
