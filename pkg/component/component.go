// Package component implements the Component model (C3's building
// block): a single-file atomic unit of constraints — name, kind,
// input/output/internal variable sets, a constraint list, and the
// declared dependencies on other components' output identifiers.
package component

import (
	"sort"

	"github.com/taufold/zkvm/pkg/term"
)

// softBudget is the per-component serialized-body headroom (spec
// §3/§4.1: 700 characters against an 800 hard limit).
const softBudget = 700

// Kind classifies a Component's role in a DAG.
type Kind int

const (
	KindPrimitive Kind = iota
	KindLinker
	KindAggregator
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindLinker:
		return "linker"
	case KindAggregator:
		return "aggregator"
	default:
		return "unknown"
	}
}

// Component is an immutable, serialized constraint unit.
type Component struct {
	Name         string
	Kind         Kind
	Inputs       []string
	Outputs      []string
	Internal     []string
	Dependencies []string

	constraints []*term.Constraint
	body        string
}

// New builds a Component from its declared variable sets and
// constraint list, serializing the body immediately so budget
// overflow is caught at construction time rather than at emit time.
//
// Invariants enforced: every constraint's lhs is among outputs or
// internal (a component never silently rebinds a variable it didn't
// declare), and no two constraints share an lhs.
func New(name string, kind Kind, inputs, outputs, internal []string, constraints []*term.Constraint, dependencies []string) (*Component, error) {
	if name == "" {
		return nil, &ErrInvalidComponent{Reason: "empty name"}
	}
	declared := make(map[string]bool, len(outputs)+len(internal))
	for _, v := range outputs {
		declared[v] = true
	}
	for _, v := range internal {
		declared[v] = true
	}
	seen := make(map[string]bool, len(constraints))
	for _, c := range constraints {
		lhs := c.LHS()
		if !declared[lhs] {
			return nil, &ErrUndeclaredOutput{Component: name, Identifier: lhs}
		}
		if seen[lhs] {
			return nil, &ErrDuplicateAssignment{Component: name, Identifier: lhs}
		}
		seen[lhs] = true
	}

	body, err := term.Serialize(constraints, softBudget)
	if err != nil {
		return nil, &ErrBudgetExceeded{Component: name, Cause: err}
	}

	return &Component{
		Name:         name,
		Kind:         kind,
		Inputs:       append([]string{}, inputs...),
		Outputs:      append([]string{}, outputs...),
		Internal:     append([]string{}, internal...),
		Dependencies: append([]string{}, dependencies...),
		constraints:  constraints,
		body:         body,
	}, nil
}

// Body returns the serialized constraint conjunction, exactly as it
// appears after the `solve ` keyword in the emitted file.
func (c *Component) Body() string { return c.body }

// Constraints returns the component's constraint list in declaration order.
func (c *Component) Constraints() []*term.Constraint { return c.constraints }

// Vars returns the full set of identifiers the component touches —
// inputs, outputs and internal vars — sorted for deterministic
// reporting.
func (c *Component) Vars() []string {
	set := map[string]bool{}
	for _, group := range [][]string{c.Inputs, c.Outputs, c.Internal} {
		for _, v := range group {
			set[v] = true
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
