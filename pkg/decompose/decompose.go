package decompose

import "github.com/taufold/zkvm/pkg/isa"

// Decompose builds the component DAG for one instruction, dispatching
// on its semantics hint (spec §6.1's instruction-to-template table).
// Instructions with no gate-level content, or whose width exceeds what
// the chosen primitive templates cover, return *ErrNotYetDecomposable
// rather than a DAG — a first-class result, not a failure mode (spec
// §4.3, §9).
func Decompose(instr isa.Instruction) (*DAG, error) {
	switch instr.Semantics {
	case isa.HintAdd32:
		return Add32(instr)
	case isa.HintSub32:
		return Sub32(instr)
	case isa.HintIncDec:
		return IncDec32(instr, instr.Mnemonic == "INC")
	case isa.HintNeg32:
		return Neg32(instr)
	case isa.HintMul32, isa.HintMul8:
		return nil, &ErrNotYetDecomposable{Instruction: instr.Mnemonic, Reason: "32-bit multiply exceeds the nibble-adder-tree templates this decomposer builds"}
	case isa.HintDivMod:
		return nil, &ErrNotYetDecomposable{Instruction: instr.Mnemonic, Reason: "32-bit divide/modulo has no nibble-local template; no lookup-table template is built for any width"}

	case isa.HintBitwise32:
		return Bitwise32(instr)
	case isa.HintNot32:
		return Not32(instr)
	case isa.HintShift32:
		return Shift32(instr)

	case isa.HintCompare32:
		return Compare32(instr)

	case isa.HintJumpIfZero, isa.HintJumpIfNotZro:
		return ControlPredicate(instr)
	case isa.HintJump, isa.HintCall, isa.HintReturn, isa.HintNop, isa.HintHalt:
		return PureControlTransfer(instr)

	case isa.HintLoad:
		return Load(instr)
	case isa.HintStore:
		return Store(instr)
	case isa.HintStack:
		return Stack(instr)
	case isa.HintMove:
		return Move(instr)

	case isa.HintCrypto, isa.HintIO, isa.HintAssert, isa.HintSyscall, isa.HintMisc:
		return NonCircuit(instr)
	}
	return nil, &ErrNotYetDecomposable{Instruction: instr.Mnemonic, Reason: "unknown semantics hint"}
}
