package cryptosurface

import (
	"crypto/rand"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/mr-tron/base58"
)

// RealProvider backs production runs: HASH uses the BN254 scalar field
// MiMC permutation (the hash family gnark circuits use natively, so a
// later proof layer over the same trace stays in-field), SIGN/VERIFY
// use secp256k1 ECDSA.
type RealProvider struct{}

var _ Provider = RealProvider{}

func (RealProvider) Hash(data []byte) ([]byte, error) {
	h := mimc.NewMiMC()
	if _, err := h.Write(data); err != nil {
		return nil, fmt.Errorf("cryptosurface: mimc write: %w", err)
	}
	return h.Sum(nil), nil
}

func (RealProvider) Sign(key, msg []byte) ([]byte, error) {
	priv := secp256k1.PrivKeyFromBytes(key)
	digest := blake256Like(msg)
	sig := ecdsa.Sign(priv, digest)
	return sig.Serialize(), nil
}

func (RealProvider) Verify(pubKey, msg, sig []byte) (bool, error) {
	pub, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return false, fmt.Errorf("cryptosurface: parse pubkey: %w", err)
	}
	parsed, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false, fmt.Errorf("cryptosurface: parse signature: %w", err)
	}
	return parsed.Verify(blake256Like(msg), pub), nil
}

// blake256Like hashes msg down to a 32-byte digest via MiMC so SIGN and
// HASH share one primitive instead of pulling in a second hash family
// purely for ECDSA pre-hashing.
func blake256Like(msg []byte) []byte {
	h := mimc.NewMiMC()
	_, _ = h.Write(msg)
	sum := h.Sum(nil)
	if len(sum) >= 32 {
		return sum[:32]
	}
	padded := make([]byte, 32)
	copy(padded, sum)
	return padded
}

// GenerateKey returns a fresh secp256k1 private key, for tests and the
// CLI's key-generation helper.
func GenerateKey() ([]byte, []byte, error) {
	priv, err := secp256k1.GeneratePrivateKeyFromRand(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return priv.Serialize(), priv.PubKey().SerializeCompressed(), nil
}

// Fingerprint renders a public key or digest as a base58 string, for
// operator-facing output (log lines, REPL state dumps) where raw hex
// is harder to eyeball for truncation/transposition than a Bitcoin/NEO
// style fingerprint.
func Fingerprint(data []byte) string {
	return base58.Encode(data)
}
