// Package contract implements the Contract Catalog (C2): named
// assumption/guarantee predicate sets over a typed variable surface,
// decorating a referenced component, plus the composition law that
// lets two contracts be paired into one.
package contract

// VarSpec names a variable and its bit width; width is 1 for every
// identifier the current primitive library produces, but the field
// exists because the data model describes contracts as predicates
// "over a typed variable surface" (spec §3/§4.2).
type VarSpec struct {
	Name  string
	Width int
}

// Contract decorates a component with the variable sets it assumes on
// input and guarantees on output.
type Contract struct {
	Name        string
	Component   string
	Assumptions map[string]VarSpec
	Guarantees  map[string]VarSpec
}

// New builds a Contract for the named component from its input and
// output variable specs: inputs become assumptions, outputs become
// guarantees.
func New(name, component string, inputs, outputs []VarSpec) *Contract {
	assumptions := make(map[string]VarSpec, len(inputs))
	for _, v := range inputs {
		assumptions[v.Name] = v
	}
	guarantees := make(map[string]VarSpec, len(outputs))
	for _, v := range outputs {
		guarantees[v.Name] = v
	}
	return &Contract{
		Name:        name,
		Component:   component,
		Assumptions: assumptions,
		Guarantees:  guarantees,
	}
}

// Compose pairs c (the producer) with next (the consumer) over the
// given shared identifiers, implementing the composition law of spec
// §4.2: every shared variable must be one of c's guarantees and one of
// next's assumptions, with identical width; on success those variables
// move out of the composite's assumption set (they are now satisfied
// internally) and the composite guarantees the union of both sides'
// remaining guarantees.
func (c *Contract) Compose(next *Contract, shared []string) (*Contract, error) {
	composite := &Contract{
		Name:        c.Name + "+" + next.Name,
		Component:   c.Component + "+" + next.Component,
		Assumptions: map[string]VarSpec{},
		Guarantees:  map[string]VarSpec{},
	}
	for k, v := range c.Assumptions {
		composite.Assumptions[k] = v
	}
	for k, v := range next.Assumptions {
		composite.Assumptions[k] = v
	}
	for k, v := range c.Guarantees {
		composite.Guarantees[k] = v
	}

	for k := range c.Guarantees {
		if _, ok := next.Guarantees[k]; ok {
			return nil, &ErrDoubleDrive{Identifier: k}
		}
	}
	for k, v := range next.Guarantees {
		composite.Guarantees[k] = v
	}

	for _, id := range shared {
		g, ok := c.Guarantees[id]
		if !ok {
			return nil, &ErrUnreachableGuarantee{Contract: c.Name, Identifier: id}
		}
		a, ok := next.Assumptions[id]
		if !ok {
			return nil, &ErrUnreachableGuarantee{Contract: next.Name, Identifier: id}
		}
		if g.Width != a.Width {
			return nil, &ErrWidthMismatch{Identifier: id, Producer: g.Width, Consumer: a.Width}
		}
		delete(composite.Assumptions, id)
	}
	return composite, nil
}
