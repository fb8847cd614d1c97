package decompose

import "fmt"

// Namespace allocates the bit-variable identifier roots for one
// instruction's decomposition, per spec §4.4 step 1: "a","b" for
// operands, "s" for sum bits, "c" for carries, "r" for results, "p"/"n"
// for PC pre/post, "f"-suffixed names for flags. Namespace is a plain
// value, not global counter state — a fresh one is handed to each
// decomposition call so concurrent or repeated decompositions never
// interfere (spec §9 "Global mutable identifier state").
type Namespace struct {
	prefix string
}

// NewNamespace returns a Namespace tagged with the instruction's
// mnemonic. The tag is stored but not applied: every root (a, b, s, c,
// r, p, n, zf, nf, cf, vf and any other) is used verbatim, so the same
// identifiers recur across instructions. Identical bit-variable names across components
// of *different* instructions are harmless because each instruction's
// manifest and component files are solved independently.
func NewNamespace(mnemonic string) *Namespace {
	return &Namespace{prefix: mnemonic}
}

// Bit returns the identifier for bit i of a named role (e.g. "a", "b",
// "s", "r").
func (n *Namespace) Bit(role string, i int) string {
	return fmt.Sprintf("%s%d", role, i)
}

// Nibble returns the four bit identifiers making up nibble k (bits
// [4k, 4k+3]) of the given role.
func (n *Namespace) Nibble(role string, k int) [4]string {
	var out [4]string
	for i := 0; i < 4; i++ {
		out[i] = n.Bit(role, k*4+i)
	}
	return out
}

// Carry returns the identifier for the carry signal at nibble boundary
// k (k=0 is the instruction's initial carry-in, k=8 is the final
// carry-out of a 32-bit/8-nibble chain).
func (n *Namespace) Carry(k int) string { return fmt.Sprintf("c%d", k) }

// Flag returns the canonical identifier for one of the four VM flags.
func (n *Namespace) Flag(name string) string {
	switch name {
	case "zero":
		return "zf"
	case "negative":
		return "nf"
	case "carry":
		return "cf"
	case "overflow":
		return "vf"
	}
	panic("decompose: unknown flag " + name)
}

// compName builds a component file name encoding instruction and role
// (spec §4.5: "File names encode instruction and role").
func compName(mnemonic, role string, idx int) string {
	if idx < 0 {
		return fmt.Sprintf("%s_%s", lower(mnemonic), role)
	}
	return fmt.Sprintf("%s_%s_%d", lower(mnemonic), role, idx)
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
