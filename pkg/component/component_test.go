package component

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taufold/zkvm/pkg/term"
)

func assignXor(t *testing.T, out, a, b string) *term.Constraint {
	t.Helper()
	av, err := term.Var(a)
	require.NoError(t, err)
	bv, err := term.Var(b)
	require.NoError(t, err)
	c, err := term.Assign(out, term.Xor(av, bv))
	require.NoError(t, err)
	return c
}

func TestNewBuildsBodyFromConstraints(t *testing.T) {
	c := assignXor(t, "s0", "a0", "b0")
	comp, err := New("half_adder", KindPrimitive, []string{"a0", "b0"}, []string{"s0"}, nil, []*term.Constraint{c}, nil)
	require.NoError(t, err)
	require.Equal(t, "s0=a0+b0", comp.Body())
	require.Equal(t, "primitive", comp.Kind.String())
}

func TestNewRejectsUndeclaredOutput(t *testing.T) {
	c := assignXor(t, "s0", "a0", "b0")
	_, err := New("bad", KindPrimitive, []string{"a0", "b0"}, nil, nil, []*term.Constraint{c}, nil)
	require.Error(t, err)
	var target *ErrUndeclaredOutput
	require.ErrorAs(t, err, &target)
}

func TestNewRejectsDuplicateAssignment(t *testing.T) {
	c1 := assignXor(t, "s0", "a0", "b0")
	c2, err := term.Assign("s0", term.Lit(1))
	require.NoError(t, err)
	_, err = New("bad", KindPrimitive, []string{"a0", "b0"}, []string{"s0"}, nil, []*term.Constraint{c1, c2}, nil)
	require.Error(t, err)
	var target *ErrDuplicateAssignment
	require.ErrorAs(t, err, &target)
}

func TestNewRejectsBudgetOverflow(t *testing.T) {
	av, err := term.Var("a0")
	require.NoError(t, err)
	bv, err := term.Var("b0")
	require.NoError(t, err)
	huge := term.Xor(av, bv)
	for i := 0; i < 200; i++ {
		huge = term.Xor(huge, term.And(av, bv))
	}
	c, err := term.Assign("s0", huge)
	require.NoError(t, err)
	_, err = New("oversize", KindPrimitive, []string{"a0", "b0"}, []string{"s0"}, nil, []*term.Constraint{c}, nil)
	require.Error(t, err)
	var target *ErrBudgetExceeded
	require.ErrorAs(t, err, &target)
}

func TestComponentVarsSorted(t *testing.T) {
	c := assignXor(t, "s0", "a0", "b0")
	comp, err := New("half_adder", KindPrimitive, []string{"a0", "b0"}, []string{"s0"}, nil, []*term.Constraint{c}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a0", "b0", "s0"}, comp.Vars())
}
