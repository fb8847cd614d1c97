package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreBackends(t *testing.T) {
	tmp := t.TempDir()
	for _, cfg := range []Config{
		{Backend: BackendMemory},
		{Backend: BackendBolt, Path: filepath.Join(tmp, "bolt.db")},
		{Backend: BackendLevelDB, Path: filepath.Join(tmp, "level")},
	} {
		t.Run(string(cfg.Backend), func(t *testing.T) {
			s, err := NewStore(cfg)
			require.NoError(t, err)
			defer s.Close()

			require.NoError(t, s.Put([]byte("a"), []byte("1")))
			require.NoError(t, s.Put([]byte("b"), []byte("2")))

			v, err := s.Get([]byte("a"))
			require.NoError(t, err)
			require.Equal(t, []byte("1"), v)

			_, err = s.Get([]byte("missing"))
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Delete([]byte("a")))
			_, err = s.Get([]byte("a"))
			require.ErrorIs(t, err, ErrNotFound)

			var seen [][]byte
			require.NoError(t, s.Seek([]byte(""), func(k, v []byte) bool {
				seen = append(seen, append([]byte{}, k...))
				return true
			}))
			require.NotEmpty(t, seen)
		})
	}
}

func TestCachedServesFromCacheAfterFirstGet(t *testing.T) {
	backend := NewMemoryStore()
	require.NoError(t, backend.Put([]byte("k"), []byte("v1")))

	cached, err := NewCached(backend, 8)
	require.NoError(t, err)

	v, err := cached.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), v)

	// Mutate the backend directly; Cached should still serve the
	// cached value until a Put/Delete invalidates it.
	require.NoError(t, backend.Put([]byte("k"), []byte("v2")))
	v, err = cached.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), v)

	require.NoError(t, cached.Put([]byte("k"), []byte("v3")))
	v, err = cached.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v3"), v)
}
