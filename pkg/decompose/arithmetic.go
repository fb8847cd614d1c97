package decompose

import (
	"fmt"

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/contract"
	"github.com/taufold/zkvm/pkg/isa"
	"github.com/taufold/zkvm/pkg/primitive"
	"github.com/taufold/zkvm/pkg/term"
)

// buildAdder builds a width-bit ripple-carry chain out of width/4
// nibble-adder components joined by carry-link rename components (spec
// §4.3: "Addition and subtraction always decompose into 8 nibbles + 7
// carry-link components, not 2 halves"). When invertB is set, bBits is
// first run through a NibbleNot component per nibble, turning the same
// chain into a subtractor via the standard two's-complement identity
// A - B = A + NOT(B) + 1. cinValue seeds the chain's initial carry
// through a ConstBits component. It returns the 32 freshly produced
// sum-bit identifiers and the name of the chain's final carry-out bit.
//
// prefix only ever labels *components* (compName, which is never run
// through the identifier discipline); every bit-variable identifier
// this function mints uses the canonical short roles ("ci"/"co" for
// carry, "s" for sum, "ib" for an inverted operand bit) a single
// instruction's DAG gets from scratch, since identical variable names
// across two different instructions' DAGs never collide (spec §3: each
// instruction's component files are solved independently).
func buildAdder(b *builder, prefix string, aBits, bBits []string, invertB bool, cinValue byte) (sumBits []string, coutName string, err error) {
	width := len(aBits)
	if len(bBits) != width || width%4 != 0 {
		return nil, "", fmt.Errorf("decompose: buildAdder slice length mismatch")
	}
	if invertB {
		inverted := make([]string, width)
		for k := 0; k < width/4; k++ {
			var in, out [4]string
			copy(in[:], bBits[k*4:k*4+4])
			for i := 0; i < 4; i++ {
				out[i] = fmt.Sprintf("ib%d", k*4+i)
			}
			res, err := primitive.NibbleNot(compName(prefix, "not", k), in, out)
			if err != nil {
				return nil, "", err
			}
			if err := b.add(res); err != nil {
				return nil, "", err
			}
			copy(inverted[k*4:k*4+4], out[:])
		}
		bBits = inverted
	}

	cinName := "ci0"
	cinConstName := compName(prefix, "cin_const", -1)
	cinConst, err := primitive.ConstBits(cinConstName, []string{cinName}, []byte{cinValue})
	if err != nil {
		return nil, "", err
	}
	if err := b.add(cinConst); err != nil {
		return nil, "", err
	}

	nibbles := width / 4
	sumBits = make([]string, width)
	carryIn := cinName
	prevLinkName := cinConstName // name of the component feeding carryIn: the ConstBits first, then each carry link
	for k := 0; k < nibbles; k++ {
		var a4, b4, s4 [4]string
		copy(a4[:], aBits[k*4:k*4+4])
		copy(b4[:], bBits[k*4:k*4+4])
		for i := 0; i < 4; i++ {
			s4[i] = fmt.Sprintf("s%d", k*4+i)
		}
		isLast := k == nibbles-1
		coutID := fmt.Sprintf("co%d", k)
		nibbleName := compName(prefix, "nibble", k)
		res, err := primitive.NibbleAdder(nibbleName, a4, b4, carryIn, s4, coutID, "ic")
		if err != nil {
			return nil, "", err
		}
		if err := b.add(res); err != nil {
			return nil, "", err
		}
		copy(sumBits[k*4:k*4+4], s4[:])
		if prevLinkName != "" {
			if err := b.link(prevLinkName, nibbleName, []string{carryIn}); err != nil {
				return nil, "", err
			}
		}
		if !isLast {
			nextCin := fmt.Sprintf("ci%d", k+1)
			linkName := compName(prefix, fmt.Sprintf("carrylink%d", k), -1)
			link, err := primitive.CarryLink(linkName, coutID, nextCin)
			if err != nil {
				return nil, "", err
			}
			if err := b.add(link); err != nil {
				return nil, "", err
			}
			if err := b.link(nibbleName, linkName, []string{coutID}); err != nil {
				return nil, "", err
			}
			prevLinkName = linkName
			carryIn = nextCin
		} else {
			carryIn = coutID
		}
	}
	return sumBits, carryIn, nil
}

// invertBit builds a one-variable NOT component, used for the
// subtractor's borrow flag (spec §4.3: "the borrow-out is the
// complement of the final carry").
func invertBit(b *builder, name, in, out string) error {
	v, err := term.Var(in)
	if err != nil {
		return err
	}
	assign, err := term.Assign(out, term.Not(v))
	if err != nil {
		return err
	}
	comp, err := component.New(name, component.KindLinker, []string{in}, []string{out}, nil, []*term.Constraint{assign}, nil)
	if err != nil {
		return err
	}
	ctr := contract.New(name, name, []contract.VarSpec{{Name: in, Width: 1}}, []contract.VarSpec{{Name: out, Width: 1}})
	return b.add(&primitive.Result{Component: comp, Contract: ctr})
}

func bitNames(root string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", root, i)
	}
	return out
}

// Add32 decomposes a 32-bit ADD into 8 nibble adders and 7 carry links
// (spec §4.3, §6.1).
func Add32(instr isa.Instruction) (*DAG, error) {
	b := newBuilder(instr)
	a := bitNames("a", isa.Width32)
	bb := bitNames("b", isa.Width32)
	sum, cout, err := buildAdder(b, "add", a, bb, false, 0)
	if err != nil {
		return nil, err
	}
	if err := renameFinal(b, "add_s_to_out", sum, bitNames("r", isa.Width32)); err != nil {
		return nil, err
	}
	if err := renameFinal(b, "add_cout_to_cf", []string{cout}, []string{"cf"}); err != nil {
		return nil, err
	}
	return b.dag(), nil
}

// Sub32 decomposes a 32-bit SUB into A + NOT(B) + 1, via the same
// 8-nibble-adder chain plus an inverter stage, and derives the borrow
// flag as the complement of the chain's final carry.
func Sub32(instr isa.Instruction) (*DAG, error) {
	b := newBuilder(instr)
	a := bitNames("a", isa.Width32)
	bb := bitNames("b", isa.Width32)
	sum, cout, err := buildAdder(b, "sub", a, bb, true, 1)
	if err != nil {
		return nil, err
	}
	if err := renameFinal(b, "sub_s_to_out", sum, bitNames("r", isa.Width32)); err != nil {
		return nil, err
	}
	if err := invertBit(b, "sub_borrow", cout, "bf"); err != nil {
		return nil, err
	}
	return b.dag(), nil
}

// IncDec32 decomposes INC (increment=true) or DEC into an add/subtract
// against the literal constant 1, reusing the same adder chain rather
// than a dedicated incrementer (spec §4.3's nibble-chain rule applies
// uniformly; INC/DEC are ordinary adds/subs with one operand fixed).
func IncDec32(instr isa.Instruction, increment bool) (*DAG, error) {
	b := newBuilder(instr)
	a := bitNames("a", isa.Width32)
	oneValues := make([]byte, isa.Width32)
	oneValues[0] = 1
	oneNames := bitNames("one", isa.Width32)
	oneConst, err := primitive.ConstBits("incdec_one_const", oneNames, oneValues)
	if err != nil {
		return nil, err
	}
	if err := b.add(oneConst); err != nil {
		return nil, err
	}
	prefix := "inc"
	invert, cin := false, byte(0)
	if !increment {
		prefix, invert, cin = "dec", true, 1
	}
	sum, cout, err := buildAdder(b, prefix, a, oneNames, invert, cin)
	if err != nil {
		return nil, err
	}
	if err := renameFinal(b, prefix+"_s_to_out", sum, bitNames("r", isa.Width32)); err != nil {
		return nil, err
	}
	if increment {
		if err := renameFinal(b, prefix+"_cout_to_cf", []string{cout}, []string{"cf"}); err != nil {
			return nil, err
		}
	} else {
		if err := invertBit(b, prefix+"_borrow", cout, "bf"); err != nil {
			return nil, err
		}
	}
	return b.dag(), nil
}

// Neg32 decomposes NEG as the two's-complement identity -A = 0 - A =
// NOT(A) + 1, built from the same adder chain with a as the inverted
// operand and a zero constant as the other.
func Neg32(instr isa.Instruction) (*DAG, error) {
	b := newBuilder(instr)
	a := bitNames("a", isa.Width32)
	zeroNames := bitNames("zb", isa.Width32)
	zeroConst, err := primitive.ZeroConst("neg_zero_const", zeroNames)
	if err != nil {
		return nil, err
	}
	if err := b.add(zeroConst); err != nil {
		return nil, err
	}
	sum, _, err := buildAdder(b, "neg", zeroNames, a, true, 1)
	if err != nil {
		return nil, err
	}
	if err := renameFinal(b, "neg_s_to_out", sum, bitNames("r", isa.Width32)); err != nil {
		return nil, err
	}
	return b.dag(), nil
}

// renameFinal adds a bank of one-bit linker components copying each
// element of from to the matching element of to, giving the DAG's
// stable externally-visible output names (spec §3's manifest Outputs)
// independent of whichever internal prefix an operation happened to
// build its sum bits under.
func renameFinal(b *builder, namePrefix string, from, to []string) error {
	if len(from) != len(to) {
		return fmt.Errorf("decompose: renameFinal length mismatch")
	}
	for i := range from {
		if from[i] == to[i] {
			continue
		}
		linkName := fmt.Sprintf("%s_%d", namePrefix, i)
		link, err := primitive.CarryLink(linkName, from[i], to[i])
		if err != nil {
			return err
		}
		if err := b.add(link); err != nil {
			return err
		}
		if owner, ok := b.seenOutput[from[i]]; ok {
			if err := b.link(owner, linkName, []string{from[i]}); err != nil {
				return err
			}
		}
	}
	return nil
}
