package primitive

import (
	"fmt"

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/contract"
	"github.com/taufold/zkvm/pkg/term"
)

// Shifter builds a combinational barrel shifter over one slice (spec
// §4.3: "barrel shifter via mux tree"). Each output bit is a
// 2^len(amt)-way mux over every possible shift distance, computed
// directly from x and fill rather than staged bit-by-bit — a shift
// amount of less than len(x) can only ever reach into x itself or the
// single adjacent slice (fill), so there is never a need for an
// intermediate cross-component stage. left selects shift direction;
// fill supplies the bits that shift in from the neighboring nibble
// (use a zero-bound component, see ZeroConst, at the word boundary).
func Shifter(name string, x, fill, amt, r []string, left bool) (*Result, error) {
	n := len(x)
	if len(fill) != n || len(r) != n {
		return nil, fmt.Errorf("primitive: shifter slice lengths must agree")
	}
	if 1<<uint(len(amt)) < n {
		return nil, fmt.Errorf("primitive: not enough amount bits for width %d", n)
	}
	xv := make([]*term.Term, n)
	fv := make([]*term.Term, n)
	for i := 0; i < n; i++ {
		v, err := term.Var(x[i])
		if err != nil {
			return nil, err
		}
		xv[i] = v
		v, err = term.Var(fill[i])
		if err != nil {
			return nil, err
		}
		fv[i] = v
	}
	av := make([]*term.Term, len(amt))
	for i, id := range amt {
		v, err := term.Var(id)
		if err != nil {
			return nil, err
		}
		av[i] = v
	}

	var constraints []*term.Constraint
	for i := 0; i < n; i++ {
		candidates := make([]*term.Term, n)
		for s := 0; s < n; s++ {
			if left {
				if i-s >= 0 {
					candidates[s] = xv[i-s]
				} else {
					candidates[s] = fv[n+(i-s)]
				}
			} else {
				if i+s < n {
					candidates[s] = xv[i+s]
				} else {
					candidates[s] = fv[i+s-n]
				}
			}
		}
		tree := buildMuxTree(av, candidates)
		assign, err := term.Assign(r[i], tree)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, assign)
	}

	inputs := append(append(append([]string{}, x...), fill...), amt...)
	comp, err := component.New(name, component.KindPrimitive, inputs, r, nil, constraints, nil)
	if err != nil {
		return nil, err
	}
	ctr := contract.New(name, name, width1(inputs...), width1(r...))
	return &Result{Component: comp, Contract: ctr}, nil
}

// ZeroConst builds a component with no inputs whose outputs are all
// permanently bound to 0, supplying the fill slice at a shift's word
// boundary (there is no neighboring nibble to borrow bits from).
func ZeroConst(name string, bits []string) (*Result, error) {
	var constraints []*term.Constraint
	for _, b := range bits {
		c, err := term.Bind(b, 0)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, c)
	}
	comp, err := component.New(name, component.KindPrimitive, nil, bits, nil, constraints, nil)
	if err != nil {
		return nil, err
	}
	ctr := contract.New(name, name, nil, width1(bits...))
	return &Result{Component: comp, Contract: ctr}, nil
}
