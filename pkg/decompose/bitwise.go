package decompose

import (
	"fmt"

	"github.com/taufold/zkvm/pkg/isa"
	"github.com/taufold/zkvm/pkg/primitive"
)

// bitwiseOpFor maps an instruction mnemonic to the elementwise
// operator its 8 nibble-bitwise components implement.
func bitwiseOpFor(mnemonic string) primitive.BitwiseOp {
	switch mnemonic {
	case "OR":
		return primitive.OpOr
	case "XOR":
		return primitive.OpXor
	default: // "AND"
		return primitive.OpAnd
	}
}

// Bitwise32 decomposes AND/OR/XOR into 8 independent per-nibble
// components with no edges between them — unlike arithmetic, bitwise
// ops have no carry to propagate (spec §4.3).
func Bitwise32(instr isa.Instruction) (*DAG, error) {
	b := newBuilder(instr)
	op := bitwiseOpFor(instr.Mnemonic)
	for k := 0; k < isa.NibblesPerWord; k++ {
		a4 := nibbleOf("a", k)
		b4 := nibbleOf("b", k)
		r4 := nibbleOf("r", k)
		res, err := primitive.NibbleBitwise(compName(instr.Mnemonic, "nibble", k), op, a4, b4, r4)
		if err != nil {
			return nil, err
		}
		if err := b.add(res); err != nil {
			return nil, err
		}
	}
	return b.dag(), nil
}

// Not32 decomposes NOT into 8 independent per-nibble inverters.
func Not32(instr isa.Instruction) (*DAG, error) {
	b := newBuilder(instr)
	for k := 0; k < isa.NibblesPerWord; k++ {
		a4 := nibbleOf("a", k)
		r4 := nibbleOf("r", k)
		res, err := primitive.NibbleNot(compName(instr.Mnemonic, "nibble", k), a4, r4)
		if err != nil {
			return nil, err
		}
		if err := b.add(res); err != nil {
			return nil, err
		}
	}
	return b.dag(), nil
}

// nibbleOf returns the four bit identifiers of role's nibble k, using
// the same "<role><index>" naming buildAdder and bitNames use so
// component DAGs agree on operand identifiers across files.
func nibbleOf(role string, k int) [4]string {
	var out [4]string
	for i := 0; i < 4; i++ {
		out[i] = fmt.Sprintf("%s%d", role, k*4+i)
	}
	return out
}
