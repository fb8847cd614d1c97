package primitive

import (
	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/contract"
	"github.com/taufold/zkvm/pkg/term"
)

// HalfAdder builds s = a XOR b, c = a AND b.
func HalfAdder(name, a, b, s, c string) (*Result, error) {
	av, err := term.Var(a)
	if err != nil {
		return nil, err
	}
	bv, err := term.Var(b)
	if err != nil {
		return nil, err
	}
	sAssign, err := term.Assign(s, term.Xor(av, bv))
	if err != nil {
		return nil, err
	}
	cAssign, err := term.Assign(c, term.And(av, bv))
	if err != nil {
		return nil, err
	}
	comp, err := component.New(name, component.KindPrimitive, []string{a, b}, []string{s, c}, nil,
		[]*term.Constraint{sAssign, cAssign}, nil)
	if err != nil {
		return nil, err
	}
	ctr := contract.New(name, name, width1(a, b), width1(s, c))
	return &Result{Component: comp, Contract: ctr}, nil
}
