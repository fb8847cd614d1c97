package decompose

import (
	"fmt"

	"github.com/taufold/zkvm/pkg/isa"
	"github.com/taufold/zkvm/pkg/primitive"
)

// Shift32 decomposes SHL/SHR as a two-level barrel shifter (spec §4.3:
// "barrel shifter via mux tree", generalized to 32 bits by splitting
// the 5-bit amount into a 3-bit coarse nibble-reposition and a 2-bit
// fine intra-nibble shift). A single 32-way mux per output bit would
// blow the component budget, so the coarse stage repositions whole
// nibbles with an 8-way mux (one component per output bit, selecting
// among the 8 candidate source nibbles) and the fine stage runs the
// existing nibble Shifter over each coarse-selected nibble, borrowing
// fill bits from its one neighbor exactly as a single-nibble shift
// would.
func Shift32(instr isa.Instruction) (*DAG, error) {
	left := instr.Mnemonic == "SHL"
	b := newBuilder(instr)
	prefix := "shr"
	if left {
		prefix = "shl"
	}

	zbit, err := primitive.ConstBits(prefix+"_zero_bit", []string{"zbit"}, []byte{0})
	if err != nil {
		return nil, err
	}
	if err := b.add(zbit); err != nil {
		return nil, err
	}
	zeroNibble, err := primitive.ZeroConst(prefix+"_zero_nibble", []string{"zn0", "zn1", "zn2", "zn3"})
	if err != nil {
		return nil, err
	}
	if err := b.add(zeroNibble); err != nil {
		return nil, err
	}
	zn := [4]string{"zn0", "zn1", "zn2", "zn3"}

	var coarse [isa.NibblesPerWord][4]string
	for k := 0; k < isa.NibblesPerWord; k++ {
		for j := 0; j < 4; j++ {
			d := make([]string, 8)
			for s := 0; s < 8; s++ {
				var srcNibble int
				inRange := false
				if left {
					srcNibble = k - s
					inRange = srcNibble >= 0
				} else {
					srcNibble = k + s
					inRange = srcNibble <= isa.NibblesPerWord-1
				}
				if inRange {
					d[s] = fmt.Sprintf("a%d", srcNibble*4+j)
				} else {
					d[s] = "zbit"
				}
			}
			out := fmt.Sprintf("co%d", k*4+j)
			res, err := primitive.Mux(compName(prefix, fmt.Sprintf("coarse_%d_%d", k, j), -1), d, []string{"amt4", "amt3", "amt2"}, out)
			if err != nil {
				return nil, err
			}
			if err := b.add(res); err != nil {
				return nil, err
			}
			coarse[k][j] = out
		}
	}

	for k := 0; k < isa.NibblesPerWord; k++ {
		var neighbor [4]string
		if left {
			if k > 0 {
				neighbor = coarse[k-1]
			} else {
				neighbor = zn
			}
		} else {
			if k < isa.NibblesPerWord-1 {
				neighbor = coarse[k+1]
			} else {
				neighbor = zn
			}
		}
		var r [4]string
		for j := 0; j < 4; j++ {
			r[j] = fmt.Sprintf("r%d", k*4+j)
		}
		res, err := primitive.Shifter(compName(prefix, fmt.Sprintf("fine_%d", k), -1), coarse[k][:], neighbor[:], []string{"amt1", "amt0"}, r[:], left)
		if err != nil {
			return nil, err
		}
		if err := b.add(res); err != nil {
			return nil, err
		}
	}
	return b.dag(), nil
}
