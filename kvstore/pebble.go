// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package kvstore

import (
	"github.com/cockroachdb/pebble"

	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
)

// PebbleStore is the default Store, backed by an embedded pebble
// database with the delta merge operator of merge.go installed.
type PebbleStore struct {
	db *pebble.DB
}

// OpenPebbleStore opens (creating if absent) a pebble database rooted at
// dir, wired with the delta log's merge operator. onMerge, if non-nil, is
// invoked on every delta merge operation pebble performs against this
// store.
func OpenPebbleStore(dir string, onMerge func()) (*PebbleStore, error) {
	opts := &pebble.Options{
		Merger: NewDeltaMerger(onMerge),
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, lsmerr.NewIO(err, "opening kv store at %q", dir)
	}
	return &PebbleStore{db: db}, nil
}

// Put implements Store.
func (s *PebbleStore) Put(key, value []byte) error {
	if err := s.db.Set(key, value, pebble.Sync); err != nil {
		return lsmerr.WithKind(err, lsmerr.IO)
	}
	return nil
}

// Merge implements Store.
func (s *PebbleStore) Merge(key, value []byte) error {
	if err := s.db.Merge(key, value, pebble.Sync); err != nil {
		return lsmerr.WithKind(err, lsmerr.IO)
	}
	return nil
}

// Get implements Store.
func (s *PebbleStore) Get(key []byte) ([]byte, bool, error) {
	value, closer, err := s.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, lsmerr.WithKind(err, lsmerr.IO)
	}
	out := append([]byte(nil), value...)
	closer.Close()
	return out, true, nil
}

// Delete implements Store.
func (s *PebbleStore) Delete(key []byte) error {
	if err := s.db.Delete(key, pebble.Sync); err != nil {
		return lsmerr.WithKind(err, lsmerr.IO)
	}
	return nil
}

// NewIter implements Store.
func (s *PebbleStore) NewIter(prefix []byte) (Iterator, error) {
	it, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return nil, lsmerr.WithKind(err, lsmerr.IO)
	}
	return &pebbleIterator{it: it}, nil
}

// Close implements Store.
func (s *PebbleStore) Close() error {
	if err := s.db.Close(); err != nil {
		return lsmerr.WithKind(err, lsmerr.IO)
	}
	return nil
}

type pebbleIterator struct {
	it *pebble.Iterator
}

func (i *pebbleIterator) First() bool     { return i.it.First() }
func (i *pebbleIterator) Next() bool      { return i.it.Next() }
func (i *pebbleIterator) Valid() bool     { return i.it.Valid() }
func (i *pebbleIterator) Key() []byte     { return i.it.Key() }
func (i *pebbleIterator) Value() []byte   { return i.it.Value() }
func (i *pebbleIterator) Close() error {
	if err := i.it.Close(); err != nil {
		return lsmerr.WithKind(err, lsmerr.IO)
	}
	return nil
}
