package vmcore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taufold/zkvm/pkg/isa"
)

func mustInstr(t *testing.T, mnemonic string) isa.Instruction {
	t.Helper()
	in, ok := isa.Lookup(mnemonic)
	require.True(t, ok, "mnemonic %s not found", mnemonic)
	return in
}

func imageOf(t *testing.T, program ...struct {
	Mnemonic string
	Operands []uint32
}) *Image {
	t.Helper()
	img := &Image{}
	for _, p := range program {
		img.Instructions = append(img.Instructions, ImageInstruction{
			Instr:    mustInstr(t, p.Mnemonic),
			Operands: p.Operands,
		})
	}
	return img
}

func slot(mnemonic string, operands ...uint32) struct {
	Mnemonic string
	Operands []uint32
} {
	return struct {
		Mnemonic string
		Operands []uint32
	}{mnemonic, operands}
}

func TestExecutorRunsWorkedExample(t *testing.T) {
	// PUSH 5; PUSH 7; ADD; WRITE; HALT
	img := imageOf(t,
		slot("PUSH", 5),
		slot("PUSH", 7),
		slot("ADD"),
		slot("WRITE"),
		slot("HALT"),
	)
	ex := NewExecutor(img, 16, nil)
	require.NoError(t, ex.Run(context.Background()))
	require.True(t, ex.State.Halted)
	require.Equal(t, []uint32{12}, ex.State.OutputQueue)
	require.Empty(t, ex.State.Stack)
}

func TestExecutorStackUnderflow(t *testing.T) {
	img := imageOf(t, slot("ADD"))
	ex := NewExecutor(img, 16, nil)
	err := ex.Run(context.Background())
	require.Error(t, err)
	var underflow *ErrStackUnderflow
	require.ErrorAs(t, err, &underflow)
}

func TestExecutorDivideByZero(t *testing.T) {
	img := imageOf(t, slot("PUSH", 1), slot("PUSH", 0), slot("DIV"))
	ex := NewExecutor(img, 16, nil)
	err := ex.Run(context.Background())
	require.Error(t, err)
	var divZero *ErrDivideByZero
	require.ErrorAs(t, err, &divZero)
}

func TestExecutorLoadStoreRoundTrip(t *testing.T) {
	// PUSH 99; PUSH 3; STORE; PUSH 3; LOAD; WRITE; HALT
	img := imageOf(t,
		slot("PUSH", 99),
		slot("PUSH", 3),
		slot("STORE"),
		slot("PUSH", 3),
		slot("LOAD"),
		slot("WRITE"),
		slot("HALT"),
	)
	ex := NewExecutor(img, 16, nil)
	require.NoError(t, ex.Run(context.Background()))
	require.Equal(t, []uint32{99}, ex.State.OutputQueue)
}

func TestExecutorJumpIfZeroSkipsWhenNonzero(t *testing.T) {
	// PUSH 1; PUSH 0; EQ; JZ skip; PUSH 111; skip: PUSH 222; WRITE; HALT
	img := imageOf(t,
		slot("PUSH", 1),
		slot("PUSH", 0),
		slot("EQ"),
		slot("JZ", 5),
		slot("PUSH", 111),
		slot("PUSH", 222),
		slot("WRITE"),
		slot("HALT"),
	)
	ex := NewExecutor(img, 16, nil)
	require.NoError(t, ex.Run(context.Background()))
	require.Equal(t, []uint32{222}, ex.State.OutputQueue)
}

func TestExecutorCallReturn(t *testing.T) {
	// 0: CALL 2; 1: HALT; 2: PUSH 1; 3: WRITE; 4: RET
	img := imageOf(t,
		slot("CALL", 2),
		slot("HALT"),
		slot("PUSH", 1),
		slot("WRITE"),
		slot("RET"),
	)
	ex := NewExecutor(img, 16, nil)
	require.NoError(t, ex.Run(context.Background()))
	require.Equal(t, []uint32{1}, ex.State.OutputQueue)
}

func TestExecutorStepBudgetExceeded(t *testing.T) {
	img := imageOf(t, slot("NOP"), slot("JMP", 0))
	ex := NewExecutor(img, 16, nil)
	ex.State.StepBudget = 10
	err := ex.Run(context.Background())
	require.Error(t, err)
	var budgetErr *ErrStepBudgetExceeded
	require.ErrorAs(t, err, &budgetErr)
}

func TestExecutorAssertFailure(t *testing.T) {
	img := imageOf(t, slot("PUSH", 0), slot("ASSERT"))
	ex := NewExecutor(img, 16, nil)
	err := ex.Run(context.Background())
	require.Error(t, err)
	var assertErr *ErrAssertionFailed
	require.ErrorAs(t, err, &assertErr)
}

func TestTraceRecorderRoundTrip(t *testing.T) {
	img := imageOf(t, slot("PUSH", 5), slot("PUSH", 7), slot("ADD"), slot("HALT"))
	ex := NewExecutor(img, 16, nil)
	ex.Trace = &TraceRecorder{}
	require.NoError(t, ex.Run(context.Background()))
	require.Len(t, ex.Trace.Steps, 4)

	compressed, err := ex.Trace.MarshalCompressed()
	require.NoError(t, err)
	steps, err := UnmarshalCompressed(compressed)
	require.NoError(t, err)
	require.Equal(t, ex.Trace.Steps, steps)
}
