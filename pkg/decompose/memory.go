package decompose

import (
	"github.com/taufold/zkvm/pkg/isa"
	"github.com/taufold/zkvm/pkg/primitive"
)

// addressDecode builds the one-hot bank selector over the address's
// three low bits, the only bit-level content a memory access carries
// at decompose time — the rest of addressing (stack pointer math,
// bounds checks) is executor state, not a function of operand bits.
func addressDecode(b *builder, prefix string) error {
	res, err := primitive.Decoder(prefix+"_addr_decode", []string{"addr0", "addr1", "addr2"},
		[]string{"bank0", "bank1", "bank2", "bank3", "bank4", "bank5", "bank6", "bank7"})
	if err != nil {
		return err
	}
	return b.add(res)
}

// identityCopy32 renames a 32-bit source variable bank onto a
// destination bank one bit at a time, via the same rename-component
// idiom buildAdder's carry links use. It is the gate-level content of
// a pure data-movement instruction: the value doesn't change shape,
// only name.
func identityCopy32(b *builder, namePrefix, fromRoot, toRoot string) error {
	return renameFinal(b, namePrefix, bitNames(fromRoot, isa.Width32), bitNames(toRoot, isa.Width32))
}

// Load decomposes LOAD into an address decode plus an identity copy of
// the fetched word onto the result bus.
func Load(instr isa.Instruction) (*DAG, error) {
	b := newBuilder(instr)
	if err := addressDecode(b, "load"); err != nil {
		return nil, err
	}
	if err := identityCopy32(b, "load_copy", "m", "r"); err != nil {
		return nil, err
	}
	return b.dag(), nil
}

// Store decomposes STORE into an address decode plus an identity copy
// of the operand onto the memory write-data bus.
func Store(instr isa.Instruction) (*DAG, error) {
	b := newBuilder(instr)
	if err := addressDecode(b, "store"); err != nil {
		return nil, err
	}
	if err := identityCopy32(b, "store_copy", "a", "m"); err != nil {
		return nil, err
	}
	return b.dag(), nil
}

// Stack decomposes the implicit-operand stack instructions. PUSH's
// payload is an assembler-resolved immediate with no decompose-time
// bit structure, so it has no gate-level form; POP/DUP/SWAP are all
// pure identity copies over the top one or two stack slots.
func Stack(instr isa.Instruction) (*DAG, error) {
	b := newBuilder(instr)
	switch instr.Mnemonic {
	case "PUSH":
		return nil, &ErrNotYetDecomposable{Instruction: instr.Mnemonic, Reason: "immediate operand has no decompose-time bit structure"}
	case "POP":
		if err := identityCopy32(b, "pop_copy", "a", "r"); err != nil {
			return nil, err
		}
	case "DUP":
		if err := identityCopy32(b, "dup_copy_top", "a", "r"); err != nil {
			return nil, err
		}
		if err := identityCopy32(b, "dup_copy_pushed", "a", "u"); err != nil {
			return nil, err
		}
	case "SWAP":
		if err := identityCopy32(b, "swap_copy_a", "a", "u"); err != nil {
			return nil, err
		}
		if err := identityCopy32(b, "swap_copy_b", "b", "r"); err != nil {
			return nil, err
		}
	default:
		return nil, &ErrNotYetDecomposable{Instruction: instr.Mnemonic, Reason: "unknown stack mnemonic"}
	}
	return b.dag(), nil
}

// Move decomposes MOVE into a single identity copy from the source
// register bank to the destination register bank.
func Move(instr isa.Instruction) (*DAG, error) {
	b := newBuilder(instr)
	if err := identityCopy32(b, "move_copy", "a", "r"); err != nil {
		return nil, err
	}
	return b.dag(), nil
}
