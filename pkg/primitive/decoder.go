package primitive

import (
	"fmt"

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/contract"
	"github.com/taufold/zkvm/pkg/term"
)

// Decoder builds a one-hot decode: out[i] = 1 iff in == i, for
// i in 0..2^k. Used by the memory-op address path to turn a small
// index (e.g. a stack-slot selector) into one-hot enable lines.
func Decoder(name string, in []string, out []string) (*Result, error) {
	if len(out) != 1<<uint(len(in)) {
		return nil, fmt.Errorf("primitive: decoder needs 2^%d outputs, got %d", len(in), len(out))
	}
	inv := make([]*term.Term, len(in))
	for i, id := range in {
		v, err := term.Var(id)
		if err != nil {
			return nil, err
		}
		inv[i] = v
	}
	var constraints []*term.Constraint
	for i, o := range out {
		var lit *term.Term
		for bit := 0; bit < len(in); bit++ {
			want := (i>>uint(len(in)-1-bit))&1 == 1
			var factor *term.Term
			if want {
				factor = inv[bit]
			} else {
				factor = term.Not(inv[bit])
			}
			if lit == nil {
				lit = factor
			} else {
				lit = term.And(lit, factor)
			}
		}
		if lit == nil {
			lit = term.Lit(1)
		}
		assign, err := term.Assign(o, lit)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, assign)
	}
	comp, err := component.New(name, component.KindPrimitive, in, out, nil, constraints, nil)
	if err != nil {
		return nil, err
	}
	ctr := contract.New(name, name, width1(in...), width1(out...))
	return &Result{Component: comp, Contract: ctr}, nil
}
