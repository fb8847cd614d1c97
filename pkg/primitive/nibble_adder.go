package primitive

import (
	"fmt"

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/contract"
	"github.com/taufold/zkvm/pkg/term"
)

// NibbleAdder builds a 4-bit ripple-carry adder: s[0..4] = a[0..4] +
// b[0..4] + cin, cout is the carry out of bit 3. The three
// inter-bit carries are internal to the component (never exposed
// beyond it), keeping the serialized body well under budget (spec
// §4.3: "keeps each component ≤ ~300 characters").
func NibbleAdder(name string, a, b [4]string, cin string, s [4]string, cout, internalCarryRoot string) (*Result, error) {
	var constraints []*term.Constraint
	carryIn := cin
	for i := 0; i < 4; i++ {
		av, err := term.Var(a[i])
		if err != nil {
			return nil, err
		}
		bv, err := term.Var(b[i])
		if err != nil {
			return nil, err
		}
		cv, err := term.Var(carryIn)
		if err != nil {
			return nil, err
		}
		sumTerm, carryTerm := fullAdderBit(av, bv, cv)
		sAssign, err := term.Assign(s[i], sumTerm)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, sAssign)

		var carryOutName string
		if i == 3 {
			carryOutName = cout
		} else {
			carryOutName = fmt.Sprintf("%s%d", internalCarryRoot, i)
		}
		cAssign, err := term.Assign(carryOutName, carryTerm)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, cAssign)
		carryIn = carryOutName
	}

	inputs := append(append([]string{}, a[:]...), b[:]...)
	inputs = append(inputs, cin)
	outputs := append(append([]string{}, s[:]...), cout)
	var internal []string
	for i := 0; i < 3; i++ {
		internal = append(internal, fmt.Sprintf("%s%d", internalCarryRoot, i))
	}

	comp, err := component.New(name, component.KindPrimitive, inputs, outputs, internal, constraints, nil)
	if err != nil {
		return nil, err
	}
	ctr := contract.New(name, name, width1(inputs...), width1(outputs...))
	return &Result{Component: comp, Contract: ctr}, nil
}
