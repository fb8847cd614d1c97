package cryptosurface

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRealProviderHashIsDeterministic(t *testing.T) {
	p := RealProvider{}
	a, err := p.Hash([]byte("payload"))
	require.NoError(t, err)
	b, err := p.Hash([]byte("payload"))
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("Hash is not deterministic (-first +second):\n%s", diff)
	}
}

func TestRealProviderSignVerifyRoundTrip(t *testing.T) {
	priv, pub, err := GenerateKey()
	require.NoError(t, err)

	p := RealProvider{}
	sig, err := p.Sign(priv, []byte("message"))
	require.NoError(t, err)

	ok, err := p.Verify(pub, []byte("message"), sig)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRealProviderVerifyRejectsWrongKey(t *testing.T) {
	_, pubA, err := GenerateKey()
	require.NoError(t, err)
	privB, _, err := GenerateKey()
	require.NoError(t, err)

	p := RealProvider{}
	sig, err := p.Sign(privB, []byte("message"))
	require.NoError(t, err)

	ok, err := p.Verify(pubA, []byte("message"), sig)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFingerprintIsStableAndNonEmpty(t *testing.T) {
	_, pub, err := GenerateKey()
	require.NoError(t, err)
	fp1 := Fingerprint(pub)
	fp2 := Fingerprint(pub)
	require.NotEmpty(t, fp1)
	require.Equal(t, fp1, fp2)
}
