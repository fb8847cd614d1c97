// Package primitive implements the verified atomic generators of C3:
// half-adder, nibble-adder, carry-link, nibble-wise bitwise ops,
// zero-detection, mux, decoder, and barrel shifter. Each generator
// returns a Component plus the Contract that decorates it; primitives
// never invent their own identifiers beyond component-internal wiring
// — every input/output name is supplied by the caller (the decomposer
// owns the namespace, per spec §4.4 step 1).
package primitive

import (
	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/contract"
	"github.com/taufold/zkvm/pkg/term"
)

// Result bundles a generated Component with its decorating Contract.
type Result struct {
	Component *component.Component
	Contract  *contract.Contract
}

func width1(names ...string) []contract.VarSpec {
	specs := make([]contract.VarSpec, len(names))
	for i, n := range names {
		specs[i] = contract.VarSpec{Name: n, Width: 1}
	}
	return specs
}

// fullAdderBit returns the sum and carry terms for one full-adder bit
// using the majority-carry identity (carry = (a&b) | (cin&(a xor b)))
// which is shorter to serialize than the naive 3-term OR.
func fullAdderBit(a, b, cin *term.Term) (sum, carry *term.Term) {
	sum = term.Xor(term.Xor(a, b), cin)
	carry = term.Or(term.And(a, b), term.And(cin, term.Xor(a, b)))
	return sum, carry
}
