// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package kvstore

// Store is the external ordered KV contract of spec.md §6.4: point
// writes, a user merge operator, point reads, deletes, and ordered
// prefix scans.
type Store interface {
	// Put writes value under key, replacing any existing value.
	Put(key, value []byte) error

	// Merge appends value as a raw merge operand under key, to be
	// combined by the store's merge operator at a later read or
	// compaction.
	Merge(key, value []byte) error

	// Get returns the value under key. ok is false if key is absent.
	Get(key []byte) (value []byte, ok bool, err error)

	// Delete removes key.
	Delete(key []byte) error

	// NewIter returns an iterator over every key with the given
	// prefix, in ascending key order.
	NewIter(prefix []byte) (Iterator, error)

	// Close releases the store's resources.
	Close() error
}

// Iterator walks a prefix-bounded key range in ascending order.
type Iterator interface {
	// First positions the iterator at the first key, if any.
	First() bool

	// Next advances to the next key.
	Next() bool

	// Valid reports whether the iterator is positioned at a key.
	Valid() bool

	// Key returns the current key. Only valid while Valid().
	Key() []byte

	// Value returns the current value. Only valid while Valid().
	Value() []byte

	// Close releases the iterator.
	Close() error
}
