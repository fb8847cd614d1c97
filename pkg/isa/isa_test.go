package isa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInstructionTableHas45Entries(t *testing.T) {
	require.Len(t, All(), 45)
}

func TestOpcodesAreDenseAndUnique(t *testing.T) {
	seen := map[byte]bool{}
	for _, in := range All() {
		require.False(t, seen[in.Opcode], "duplicate opcode %d", in.Opcode)
		seen[in.Opcode] = true
		require.Less(t, int(in.Opcode), 128)
	}
	require.Len(t, seen, 45)
}

func TestLookupRoundTrip(t *testing.T) {
	in, ok := Lookup("ADD")
	require.True(t, ok)
	require.Equal(t, CategoryArithmetic, in.Category)

	in2, ok := LookupOpcode(in.Opcode)
	require.True(t, ok)
	require.Equal(t, "ADD", in2.Mnemonic)
}

func TestUnknownMnemonicNotFound(t *testing.T) {
	_, ok := Lookup("BOGUS")
	require.False(t, ok)
}
