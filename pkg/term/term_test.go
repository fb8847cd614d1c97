package term

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateIdentifier(t *testing.T) {
	cases := []struct {
		id      string
		wantErr bool
	}{
		{"a0", false},
		{"cout3", false},
		{"cout31", false},
		{"s", false},
		{"_a", true},
		{"a_1", true},
		{"1a", true},
		{"abcde1", true}, // root too long
		{"", true},
		{"a32", true}, // index out of range
	}
	for _, c := range cases {
		err := ValidateIdentifier(c.id)
		if c.wantErr {
			require.Error(t, err, c.id)
		} else {
			require.NoError(t, err, c.id)
		}
	}
}

func TestSerializeTermMinimalParens(t *testing.T) {
	a := MustVar("a0")
	b := MustVar("b0")
	c := MustVar("c0")

	// a XOR (b AND c): AND binds tighter than XOR, no parens needed.
	xorTerm := Xor(a, And(b, c))
	require.Equal(t, "a0+b0&c0", SerializeTerm(xorTerm))

	// (a XOR b) AND c: XOR binds looser, parens required around it.
	andTerm := And(Xor(a, b), c)
	require.Equal(t, "(a0+b0)&c0", SerializeTerm(andTerm))

	// NOT of a compound term is parenthesized; NOT of a var is not.
	require.Equal(t, "!a0", SerializeTerm(Not(a)))
	require.Equal(t, "!(a0&b0)", SerializeTerm(Not(And(a, b))))
}

func TestSerializeBudgetEnforced(t *testing.T) {
	a := MustVar("a0")
	b := MustVar("b0")
	assign, err := Assign("s0", Xor(a, b))
	require.NoError(t, err)
	bind, err := Bind("a0", 1)
	require.NoError(t, err)

	_, err = Serialize([]*Constraint{bind, assign}, 1000)
	require.NoError(t, err)

	_, err = Serialize([]*Constraint{bind, assign}, 5)
	require.Error(t, err)
	var tooLong *ErrTermTooLong
	require.ErrorAs(t, err, &tooLong)
}

func TestVarsFirstOccurrenceOrder(t *testing.T) {
	a := MustVar("a0")
	b := MustVar("b0")
	tr := Xor(And(a, b), a)
	require.Equal(t, []string{"a0", "b0"}, tr.Vars())
}

func TestLengthCounterCommitsOnSuccessOnly(t *testing.T) {
	c := NewLengthCounter(10)
	require.NoError(t, c.TryAdd("12345"))
	require.Equal(t, 5, c.Len())
	err := c.TryAdd("123456")
	require.Error(t, err)
	require.Equal(t, 5, c.Len(), "failed TryAdd must not mutate the counter")
	require.NoError(t, c.TryAdd("12345"))
	require.Equal(t, 10, c.Len())
}

func TestSerializeDeterministic(t *testing.T) {
	a := MustVar("a0")
	b := MustVar("b0")
	assign, _ := Assign("s0", Xor(a, b))
	bind, _ := Bind("a0", 1)
	s1, err := Serialize([]*Constraint{bind, assign}, 700)
	require.NoError(t, err)
	s2, err := Serialize([]*Constraint{bind, assign}, 700)
	require.NoError(t, err)
	require.Equal(t, s1, s2)
	require.True(t, strings.Contains(s1, "&&"))
}
