package decompose

import (
	"github.com/taufold/zkvm/pkg/isa"
	"github.com/taufold/zkvm/pkg/term"
)

// ControlPredicate decomposes JZ/JNZ into the single boolean bit that
// decides whether the branch is taken, reusing the zero flag a
// preceding comparison or arithmetic op already produced. The actual
// program-counter update is an executor-level mux over an
// assembler-resolved label address (spec §6.2), not a function of
// operand bits, so it has no gate-level representation here.
func ControlPredicate(instr isa.Instruction) (*DAG, error) {
	b := newBuilder(instr)
	zf, err := term.Var("zf")
	if err != nil {
		return nil, err
	}
	var expr *term.Term
	switch instr.Mnemonic {
	case "JZ":
		expr = zf
	case "JNZ":
		expr = term.Not(zf)
	default:
		return nil, &ErrNotYetDecomposable{Instruction: instr.Mnemonic, Reason: "not a conditional branch"}
	}
	if err := assignBit(b, "branch_taken", "bt", expr, []string{"zf"}); err != nil {
		return nil, err
	}
	return b.dag(), nil
}

// PureControlTransfer covers JMP/CALL/RET/NOP/HALT: their
// effect is entirely a program-counter or call-stack update driven by
// an assembler-resolved address, never a boolean function of operand
// bits, so the decomposer has nothing to generate (spec §9 "not every
// instruction yields a nontrivial constraint system").
func PureControlTransfer(instr isa.Instruction) (*DAG, error) {
	return nil, &ErrNotYetDecomposable{Instruction: instr.Mnemonic, Reason: "pure control transfer has no gate-level form"}
}
