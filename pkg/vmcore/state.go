// Package vmcore implements the VM State & Executor (C8): an
// in-memory interpreter for the same ISA the decomposer compiles,
// producing step traces that can be checked against the constraint
// manifest (spec §4.8).
package vmcore

import "github.com/taufold/zkvm/pkg/isa"

// RegisterCount is the number of general-purpose registers, matching
// the register file the compiled MOVE constraints assume.
const RegisterCount = 16

// Flags holds the four condition bits comparisons and arithmetic set.
type Flags struct {
	Zero     bool
	Negative bool
	Carry    bool
	Overflow bool
}

// NoInput is the sentinel READ returns when the input queue is empty
// (spec §4.8: "the caller decides whether to treat as fatal").
const NoInput uint32 = 0xFFFFFFFF

// State is the VM's complete mutable state at one point in execution.
type State struct {
	Registers [RegisterCount]uint32
	PC        uint32
	Stack     []uint32
	CallStack []uint32
	Memory    []uint32
	Flags     Flags
	Halted    bool

	InputQueue  []uint32
	OutputQueue []uint32
	DebugLog    []string

	Steps      uint64
	StepBudget uint64 // 0 means unbounded
}

// New returns a fresh State with the given memory size (in words).
func New(memoryWords int) *State {
	return &State{Memory: make([]uint32, memoryWords)}
}

func (s *State) push(v uint32) { s.Stack = append(s.Stack, v) }

func (s *State) pop() (uint32, error) {
	if len(s.Stack) == 0 {
		return 0, &ErrStackUnderflow{PC: s.PC}
	}
	v := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return v, nil
}

func (s *State) peek() (uint32, error) {
	if len(s.Stack) == 0 {
		return 0, &ErrStackUnderflow{PC: s.PC}
	}
	return s.Stack[len(s.Stack)-1], nil
}

func (s *State) setFlagsFromResult(result uint32) {
	s.Flags.Zero = result == 0
	s.Flags.Negative = result&(1<<31) != 0
}

// Image is an immutable, assembled program (spec §4.9's loader output).
type Image struct {
	Instructions []ImageInstruction
}

// ImageInstruction is one decoded, fully-resolved instruction slot.
type ImageInstruction struct {
	Instr    isa.Instruction
	Operands []uint32 // resolved immediates/register indices/addresses
}
