package loader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taufold/zkvm/pkg/vmcore"
)

func TestAssembleWorkedExample(t *testing.T) {
	src := `
// add two numbers and print the result
PUSH 5
PUSH 7
ADD
WRITE
HALT
`
	img, err := Assemble(src)
	require.NoError(t, err)
	require.Len(t, img.Instructions, 5)

	ex := vmcore.NewExecutor(img, 16, nil)
	require.NoError(t, ex.Run(context.Background()))
	require.Equal(t, []uint32{12}, ex.State.OutputQueue)
}

func TestAssembleResolvesForwardAndBackwardLabels(t *testing.T) {
	src := `
start:
	PUSH 1
	JZ done
	JMP start
done:
	HALT
`
	img, err := Assemble(src)
	require.NoError(t, err)
	require.Len(t, img.Instructions, 4)
	// JZ done -> instruction index 3
	require.Equal(t, uint32(3), img.Instructions[1].Operands[0])
	// JMP start -> instruction index 0
	require.Equal(t, uint32(0), img.Instructions[2].Operands[0])
}

func TestAssembleHexLiteral(t *testing.T) {
	src := "PUSH 0x10\nHALT\n"
	img, err := Assemble(src)
	require.NoError(t, err)
	require.Equal(t, uint32(16), img.Instructions[0].Operands[0])
}

func TestAssembleUnknownMnemonic(t *testing.T) {
	_, err := Assemble("FROB 1\n")
	require.Error(t, err)
	var e *ErrUnknownMnemonic
	require.ErrorAs(t, err, &e)
	require.Equal(t, 1, e.Line)
}

func TestAssembleDuplicateLabel(t *testing.T) {
	src := "a:\nNOP\na:\nNOP\n"
	_, err := Assemble(src)
	require.Error(t, err)
	var e *ErrDuplicateLabel
	require.ErrorAs(t, err, &e)
}

func TestAssembleUnknownLabel(t *testing.T) {
	_, err := Assemble("JMP nowhere\n")
	require.Error(t, err)
	var e *ErrUnknownLabel
	require.ErrorAs(t, err, &e)
}

func TestAssembleOperandArityMismatch(t *testing.T) {
	_, err := Assemble("MOVE r0\n")
	require.Error(t, err)
	var e *ErrOperandArityMismatch
	require.ErrorAs(t, err, &e)
}

func TestAssembleMalformedOperand(t *testing.T) {
	_, err := Assemble("PUSH notanumber\n")
	require.Error(t, err)
	var e *ErrMalformedOperand
	require.ErrorAs(t, err, &e)
}
