package store

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelStore is a Store backed by goleveldb, for deployments that want
// a LSM-tree backend instead of bbolt's single-file mmap.
type LevelStore struct {
	db *leveldb.DB
}

var _ Store = (*LevelStore)(nil)

// NewLevelStore opens (creating if absent) a leveldb database at path.
func NewLevelStore(path string) (*LevelStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open leveldb: %w", err)
	}
	return &LevelStore{db: db}, nil
}

func (s *LevelStore) Get(key []byte) ([]byte, error) {
	v, err := s.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *LevelStore) Put(key, value []byte) error { return s.db.Put(key, value, nil) }

func (s *LevelStore) Delete(key []byte) error { return s.db.Delete(key, nil) }

func (s *LevelStore) Seek(prefix []byte, f func(k, v []byte) bool) error {
	iter := s.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()
	for iter.Next() {
		if !f(iter.Key(), iter.Value()) {
			break
		}
	}
	return iter.Error()
}

func (s *LevelStore) Close() error { return s.db.Close() }
