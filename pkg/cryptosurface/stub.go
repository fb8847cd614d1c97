package cryptosurface

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/twmb/murmur3"
)

// StubProvider implements Provider with fast, deterministic, and
// explicitly insecure primitives. It exists so DEMO_MODE runs and unit
// tests don't pay for real cryptography, and so HASH/SIGN/VERIFY have
// stable outputs to assert against.
type StubProvider struct{}

var _ Provider = StubProvider{}

// Hash returns the two 64-bit halves of the murmur3 128-bit sum
// concatenated into 16 bytes, giving HASH a fixed-width result
// regardless of input size.
func (StubProvider) Hash(data []byte) ([]byte, error) {
	hi, lo := murmur3.Sum128(data)
	out := make([]byte, 16)
	binary.BigEndian.PutUint64(out[:8], hi)
	binary.BigEndian.PutUint64(out[8:], lo)
	return out, nil
}

// Sign returns Hash(key || msg); it is not a real signature scheme.
func (p StubProvider) Sign(key, msg []byte) ([]byte, error) {
	return p.Hash(append(append([]byte{}, key...), msg...))
}

// Verify recomputes Sign and compares.
func (p StubProvider) Verify(pubKey, msg, sig []byte) (bool, error) {
	want, err := p.Sign(pubKey, msg)
	if err != nil {
		return false, err
	}
	return bytes.Equal(want, sig), nil
}

// ErrUnsupportedOperation is returned by a Provider for an operation it
// deliberately declines to implement.
var ErrUnsupportedOperation = errors.New("cryptosurface: unsupported operation")
