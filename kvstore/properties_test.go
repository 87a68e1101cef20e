// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package kvstore

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/monacgraph/lsmcommunity/types"
)

// memStore is a minimal in-memory Store used to exercise the
// property-listing scans without standing up a real pebble database.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: make(map[string][]byte)} }

func (s *memStore) Put(key, value []byte) error {
	s.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (s *memStore) Merge(key, value []byte) error { return s.Put(key, value) }

func (s *memStore) Get(key []byte) ([]byte, bool, error) {
	v, ok := s.data[string(key)]
	return v, ok, nil
}

func (s *memStore) Delete(key []byte) error {
	delete(s.data, string(key))
	return nil
}

func (s *memStore) NewIter(prefix []byte) (Iterator, error) {
	var keys [][]byte
	for k := range s.data {
		kb := []byte(k)
		if bytes.HasPrefix(kb, prefix) {
			keys = append(keys, kb)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i], keys[j]) < 0 })
	return &memIterator{s: s, keys: keys, idx: -1}, nil
}

func (s *memStore) Close() error { return nil }

type memIterator struct {
	s    *memStore
	keys [][]byte
	idx  int
}

func (it *memIterator) First() bool {
	it.idx = 0
	return it.idx < len(it.keys)
}

func (it *memIterator) Next() bool {
	it.idx++
	return it.idx < len(it.keys)
}

func (it *memIterator) Valid() bool { return it.idx >= 0 && it.idx < len(it.keys) }
func (it *memIterator) Key() []byte { return it.keys[it.idx] }
func (it *memIterator) Value() []byte {
	return it.s.data[string(it.keys[it.idx])]
}
func (it *memIterator) Close() error { return nil }

func TestListVertexPropertyNamesReturnsEveryStoredName(t *testing.T) {
	s := newMemStore()
	require.NoError(t, PutVertexProperty(s, 1, "color", []byte("red")))
	require.NoError(t, PutVertexProperty(s, 1, "weight", []byte("10")))
	require.NoError(t, PutVertexProperty(s, 2, "color", []byte("blue")))

	names, err := ListVertexPropertyNames(s, 1)
	require.NoError(t, err)
	sort.Strings(names)
	require.Equal(t, []string{"color", "weight"}, names)
}

func TestListVertexPropertyNamesEmptyWhenNoneStored(t *testing.T) {
	s := newMemStore()
	names, err := ListVertexPropertyNames(s, types.VId(99))
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestListEdgePropertyNamesReturnsEveryStoredName(t *testing.T) {
	s := newMemStore()
	require.NoError(t, PutEdgeProperty(s, 1, 2, "weight", []byte("5")))
	require.NoError(t, PutEdgeProperty(s, 1, 3, "weight", []byte("9")))

	names, err := ListEdgePropertyNames(s, 1, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"weight"}, names)
}
