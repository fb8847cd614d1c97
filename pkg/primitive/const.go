package primitive

import (
	"fmt"

	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/contract"
	"github.com/taufold/zkvm/pkg/term"
)

// ConstBits builds a no-input component whose outputs are permanently
// bound to the given 0/1 pattern. It generalizes ZeroConst to arbitrary
// constants (spec §4.3's literal operands for INC/DEC/NEG and the
// cin=1 two's-complement subtraction trick all need a fixed bit
// pattern feeding into an otherwise variable-driven adder chain).
func ConstBits(name string, bits []string, values []byte) (*Result, error) {
	if len(bits) != len(values) {
		return nil, fmt.Errorf("primitive: ConstBits length mismatch")
	}
	var constraints []*term.Constraint
	for i, b := range bits {
		c, err := term.Bind(b, values[i])
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
