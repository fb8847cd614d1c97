package primitive

import (
	"fmt"

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/contract"
	"github.com/taufold/zkvm/pkg/term"
)

// BitwiseOp selects the elementwise operator for NibbleBitwise.
type BitwiseOp int

const (
	OpAnd BitwiseOp = iota
	OpOr
	OpXor
)

// NibbleBitwise builds r[i] = a[i] OP b[i] for i in 0..4.
func NibbleBitwise(name string, op BitwiseOp, a, b, r [4]string) (*Result, error) {
	var constraints []*term.Constraint
	for i := 0; i < 4; i++ {
		av, err := term.Var(a[i])
		if err != nil {
			return nil, err
		}
		bv, err := term.Var(b[i])
		if err != nil {
			return nil, err
		}
		var combined *term.Term
		switch op {
		case OpAnd:
			combined = term.And(av, bv)
		case OpOr:
			combined = term.Or(av, bv)
		case OpXor:
			combined = term.Xor(av, bv)
		default:
			return nil, fmt.Errorf("primitive: unknown bitwise op %d", op)
		}
		assign, err := term.Assign(r[i], combined)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, assign)
	}
	inputs := append(append([]string{}, a[:]...), b[:]...)
	outputs := r[:]
	comp, err := component.New(name, component.KindPrimitive, inputs, outputs, nil, constraints, nil)
	if err != nil {
		return nil, err
	}
	ctr := contract.New(name, name, width1(inputs...), width1(outputs...))
	return &Result{Component: comp, Contract: ctr}, nil
}

// NibbleNot builds r[i] = NOT a[i] for i in 0..4.
func NibbleNot(name string, a, r [4]string) (*Result, error) {
	var constraints []*term.Constraint
	for i := 0; i < 4; i++ {
		av, err := term.Var(a[i])
		if err != nil {
			return nil, err
		}
		assign, err := term.Assign(r[i], term.Not(av))
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, assign)
	}
	comp, err := component.New(name, component.KindPrimitive, a[:], r[:], nil, constraints, nil)
	if err != nil {
		return nil, err
	}
	ctr := contract.New(name, name, width1(a[:]...), width1(r[:]...))
	return &Result{Component: comp, Contract: ctr}, nil
}
