package vmcore

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/taufold/zkvm/pkg/config/limits"
	"github.com/taufold/zkvm/pkg/isa"
)

// TraceStep is one recorded machine state, taken after an instruction's
// WRITEBACK but before its UPDATE_PC, so PC is the address of the
// instruction just executed (spec §4.8: a trace that can later be
// checked against the constraint manifest).
type TraceStep struct {
	Step       uint64      `json:"step"`
	PC         uint32      `json:"pc"`
	Mnemonic   string      `json:"mnemonic"`
	Registers  [16]uint32  `json:"registers"`
	StackDepth int         `json:"stack_depth"`
	StackTop   uint32      `json:"stack_top,omitempty"`
	Flags      Flags       `json:"flags"`
}

// TraceRecorder accumulates TraceStep entries during a run. It is
// opt-in: Executor.Trace is nil unless the caller wires one in, since
// recording every step has a cost a fast replay run may not want.
type TraceRecorder struct {
	Steps []TraceStep
}

// Record appends the current state as a trace entry for one step. It
// silently stops recording past limits.MaxTraceSteps rather than
// growing without bound on a runaway program.
func (r *TraceRecorder) Record(s State, instr isa.Instruction) {
	if len(r.Steps) >= limits.MaxTraceSteps {
		return
	}
	entry := TraceStep{
		Step:       s.Steps,
		PC:         s.PC,
		Mnemonic:   instr.Mnemonic,
		Registers:  s.Registers,
		StackDepth: len(s.Stack),
		Flags:      s.Flags,
	}
	if len(s.Stack) > 0 {
		entry.StackTop = s.Stack[len(s.Stack)-1]
	}
	r.Steps = append(r.Steps, entry)
}

// MarshalCompressed serializes the trace as JSON and compresses it with
// lz4, the same codec the teacher's chain dump tooling uses for large
// sequential records.
func (r *TraceRecorder) MarshalCompressed() ([]byte, error) {
	raw, err := json.Marshal(r.Steps)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(raw); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalCompressed decompresses and decodes a trace previously
// produced by MarshalCompressed.
func UnmarshalCompressed(data []byte) ([]TraceStep, error) {
	r := lz4.NewReader(bytes.NewReader(data))
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var steps []TraceStep
	if err := json.Unmarshal(raw, &steps); err != nil {
		return nil, err
	}
	return steps, nil
}
