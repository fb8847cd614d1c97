package decompose

import (
	"fmt"

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/contract"
	"github.com/taufold/zkvm/pkg/isa"
	"github.com/taufold/zkvm/pkg/primitive"
	"github.com/taufold/zkvm/pkg/term"
)

// assignBit adds a single-assignment component computing expr over
// inputs, used for the small boolean combinations comparison results
// reduce to once the subtractor's zero/borrow flags are known.
func assignBit(b *builder, name, out string, expr *term.Term, inputs []string) error {
	assign, err := term.Assign(out, expr)
	if err != nil {
		return err
	}
	comp, err := component.New(name, component.KindAggregator, inputs, []string{out}, nil, []*term.Constraint{assign}, nil)
	if err != nil {
		return err
	}
	var specs []contract.VarSpec
	for _, in := range inputs {
		specs = append(specs, contract.VarSpec{Name: in, Width: 1})
	}
	ctr := contract.New(name, name, specs, []contract.VarSpec{{Name: out, Width: 1}})
	return b.add(&primitive.Result{Component: comp, Contract: ctr})
}

// Compare32 decomposes EQ/NE/LT/GT/LE/GE by reusing the subtractor's
// diff bits and flags (spec §4.3: "Comparisons reuse the Sub32 DAG
// plus a Zero Aggregator rather than building bespoke comparator
// trees"). The subtraction's borrow flag bf is 1 exactly when A<B
// unsigned; the zero aggregator's zf is 1 exactly when A==B; every
// other relation is a small boolean combination of the two.
func Compare32(instr isa.Instruction) (*DAG, error) {
	b := newBuilder(instr)
	a := bitNames("a", isa.Width32)
	bb := bitNames("b", isa.Width32)

	diff, cout, err := buildAdder(b, "cmp", a, bb, true, 1)
	if err != nil {
		return nil, err
	}
	if err := invertBit(b, "cmp_borrow", cout, "bf"); err != nil {
		return nil, err
	}

	var nz [8]string
	for k := 0; k < isa.NibblesPerWord; k++ {
		var nibble [4]string
		copy(nibble[:], diff[k*4:k*4+4])
		nzName := fmt.Sprintf("nz%d", k)
		res, err := primitive.ZeroNibble(compName("cmp", fmt.Sprintf("zero_nibble_%d", k), -1), nibble, nzName)
		if err != nil {
			return nil, err
		}
		if err := b.add(res); err != nil {
			return nil, err
		}
		nz[k] = nzName
	}
	agg, err := primitive.ZeroAggregator("cmp_zero_aggregator", nz, "zf", "zi")
	if err != nil {
		return nil, err
	}
	if err := b.add(agg); err != nil {
		return nil, err
	}

	bf, err := term.Var("bf")
	if err != nil {
		return nil, err
	}
	zf, err := term.Var("zf")
	if err != nil {
		return nil, err
	}

	var resultErr error
	switch instr.Mnemonic {
	case "EQ":
		resultErr = assignBit(b, "cmp_result", "r0", zf, []string{"zf"})
	case "NE":
		resultErr = assignBit(b, "cmp_result", "r0", term.Not(zf), []string{"zf"})
	case "LT":
		resultErr = assignBit(b, "cmp_result", "r0", bf, []string{"bf"})
	case "GT":
		resultErr = assignBit(b, "cmp_result", "r0", term.And(term.Not(bf), term.Not(zf)), []string{"bf", "zf"})
	case "LE":
		resultErr = assignBit(b, "cmp_result", "r0", term.Or(bf, zf), []string{"bf", "zf"})
	case "GE":
		resultErr = assignBit(b, "cmp_result", "r0", term.Not(bf), []string{"bf"})
	default:
		return nil, &ErrNotYetDecomposable{Instruction: instr.Mnemonic, Reason: "unknown comparison mnemonic"}
	}
	if resultErr != nil {
		return nil, resultErr
	}
	return b.dag(), nil
}
