package decompose

import "github.com/taufold/zkvm/pkg/isa"

// NonCircuit covers every instruction category the spec keeps outside
// the constraint system entirely: crypto primitives (delegated to
// pkg/cryptosurface, spec §9), host I/O, assertions, syscalls, and the
// debug/yield/time miscellany. None of these are functions of operand
// bits a decomposer could usefully express as gates.
func NonCircuit(instr isa.Instruction) (*DAG, error) {
	return nil, &ErrNotYetDecomposable{Instruction: instr.Mnemonic, Reason: "executor-only, outside the constraint system"}
}
