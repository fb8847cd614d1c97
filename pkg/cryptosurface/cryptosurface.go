// Package cryptosurface implements the executor's pluggable crypto
// plugin (spec §6.4): HASH/SIGN/VERIFY delegate to whichever Provider
// the executor was configured with, never to gate-level constraints —
// crypto primitives are explicitly out of the constraint system (spec
// §9).
package cryptosurface

// Provider is the executor's crypto surface. HASH/SIGN/VERIFY call
// through this interface; StubProvider gives deterministic, insecure
// behavior and is what `zkvmc run` and a nil NewExecutor provider use;
// RealProvider is the non-stub implementation.
type Provider interface {
	Hash(data []byte) ([]byte, error)
	Sign(key, msg []byte) ([]byte, error)
	Verify(pubKey, msg, sig []byte) (bool, error)
}
