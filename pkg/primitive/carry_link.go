package primitive

import (
	"github.com/taufold/zkvm/pkg/component"
	"github.com/taufold/zkvm/pkg/contract"
	"github.com/taufold/zkvm/pkg/term"
)

// CarryLink renames a producer's carry-out bit to the next
// component's carry-in bit. It exists purely so no single file ever
// contains two nibbles' worth of terms (spec §4.4 step 3); its body is
// a single assignment whose rhs is the carry-out variable itself.
func CarryLink(name, coutPrev, cinNext string) (*Result, error) {
	v, err := term.Var(coutPrev)
	if err != nil {
		return nil, err
	}
	assign, err := term.Assign(cinNext, v)
	if err != nil {
		return nil, err
	}
	comp, err := component.New(name, component.KindLinker, []string{coutPrev}, []string{cinNext}, nil,
		[]*term.Constraint{assign}, nil)
	if err != nil {
		return nil, err
	}
	ctr := contract.New(name, name, width1(coutPrev), width1(cinNext))
	return &Result{Component: comp, Contract: ctr}, nil
}
