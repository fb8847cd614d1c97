package primitive

import (
	"fmt"

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/contract"
	"github.com/taufold/zkvm/pkg/term"
)

// Mux builds a k-bit selector tree over 2^k data inputs: o = d[sel].
// sel[0] is the most significant select bit. Suited to small k (the
// decomposer's largest is Shift32's 8-way coarse stage); larger trees
// are expected to be split into staged components by the caller, same
// as any other over-budget term.
func Mux(name string, d []string, sel []string, o string) (*Result, error) {
	if len(d) != 1<<uint(len(sel)) {
		return nil, fmt.Errorf("primitive: mux needs 2^%d data inputs, got %d", len(sel), len(d))
	}
	dv := make([]*term.Term, len(d))
	for i, id := range d {
		v, err := term.Var(id)
		if err != nil {
			return nil, err
		}
		dv[i] = v
	}
	sv := make([]*term.Term, len(sel))
	for i, id := range sel {
		v, err := term.Var(id)
		if err != nil {
			return nil, err
		}
		sv[i] = v
	}
	tree := buildMuxTree(sv, dv)
	assign, err := term.Assign(o, tree)
	if err != nil {
		return nil, err
	}
	inputs := append(append([]string{}, d...), sel...)
	comp, err := component.New(name, component.KindPrimitive, inputs, []string{o}, nil, []*term.Constraint{assign}, nil)
	if err != nil {
		return nil, err
	}
	ctr := contract.New(name, name, width1(inputs...), width1(o))
	return &Result{Component: comp, Contract: ctr}, nil
}

func buildMuxTree(sel []*term.Term, d []*term.Term) *term.Term {
	if len(d) == 1 {
		return d[0]
	}
	mid := len(d) / 2
	lower := buildMuxTree(sel[1:], d[:mid])
	upper := buildMuxTree(sel[1:], d[mid:])
	s := sel[0]
	return term.Or(term.And(term.Not(s), lower), term.And(s, upper))
}
