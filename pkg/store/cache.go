package store

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cached wraps a Store with an in-memory LRU read cache. Writes and
// deletes invalidate the corresponding entry rather than updating it
// in place, keeping the cache trivially consistent with the backend.
type Cached struct {
	backend Store
	cache   *lru.Cache[string, []byte]
}

var _ Store = (*Cached)(nil)

// NewCached wraps backend with an LRU cache holding up to size entries.
func NewCached(backend Store, size int) (*Cached, error) {
	c, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &Cached{backend: backend, cache: c}, nil
}

func (c *Cached) Get(key []byte) ([]byte, error) {
	if v, ok := c.cache.Get(string(key)); ok {
		return v, nil
	}
	v, err := c.backend.Get(key)
	if err != nil {
		return nil, err
	}
	c.cache.Add(string(key), v)
	return v, nil
}

func (c *Cached) Put(key, value []byte) error {
	c.cache.Remove(string(key))
	return c.backend.Put(key, value)
}

func (c *Cached) Delete(key []byte) error {
	c.cache.Remove(string(key))
	return c.backend.Delete(key)
}

func (c *Cached) Seek(prefix []byte, f func(k, v []byte) bool) error {
	return c.backend.Seek(prefix, f)
}

func (c *Cached) Close() error { return c.backend.Close() }
