package primitive

import (
	"fmt"

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/contract"
	"github.com/taufold/zkvm/pkg/term"
)

// ZeroNibble builds nz = 1 iff all four bits of x are 0, i.e.
// nz = (!x0 & !x1) & (!x2 & !x3).
func ZeroNibble(name string, x [4]string, nz string) (*Result, error) {
	vars := make([]*term.Term, 4)
	for i, id := range x {
		v, err := term.Var(id)
		if err != nil {
			return nil, err
		}
		vars[i] = v
	}
	low := term.And(term.Not(vars[0]), term.Not(vars[1]))
	high := term.And(term.Not(vars[2]), term.Not(vars[3]))
	assign, err := term.Assign(nz, term.And(low, high))
	if err != nil {
		return nil, err
	}
	comp, err := component.New(name, component.KindPrimitive, x[:], []string{nz}, nil, []*term.Constraint{assign}, nil)
	if err != nil {
		return nil, err
	}
	ctr := contract.New(name, name, width1(x[:]...), width1(nz))
	return &Result{Component: comp, Contract: ctr}, nil
}

// ZeroAggregator ANDs the per-nibble zero bits (8 of them, for a
// 32-bit word) into a single zero flag, via a balanced reduction tree
// so no single assignment ever has more than two operands.
func ZeroAggregator(name string, nz [8]string, zflag string, internalRoot string) (*Result, error) {
	var constraints []*term.Constraint
	level := make([]*term.Term, 8)
	for i, id := range nz {
		v, err := term.Var(id)
		if err != nil {
			return nil, err
		}
		level[i] = v
	}
	var internal []string
	counter := 0
	for len(level) > 1 {
		var next []*term.Term
		for i := 0; i+1 < len(level); i += 2 {
			combined := term.And(level[i], level[i+1])
			var outName string
			if len(level) == 2 {
				outName = zflag
			} else {
				outName = fmt.Sprintf("%s%d", internalRoot, counter)
				counter++
				internal = append(internal, outName)
			}
			assign, err := term.Assign(outName, combined)
			if err != nil {
				return nil, err
			}
			constraints = append(constraints, assign)
			v, err := term.Var(outName)
			if err != nil {
				return nil, err
			}
			next = append(next, v)
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}
	comp, err := component.New(name, component.KindAggregator, nz[:], []string{zflag}, internal, constraints, nil)
	if err != nil {
		return nil, err
	}
	ctr := contract.New(name, name, width1(nz[:]...), width1(zflag))
	return &Result{Component: comp, Contract: ctr}, nil
}
