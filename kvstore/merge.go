// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package kvstore

import (
	"io"

	"github.com/cockroachdb/pebble"

	"github.com/monacgraph/lsmcommunity/delta"
)

// deltaMergerName identifies this merge operator in pebble's manifest;
// it must never change once a database has been written with it.
const deltaMergerName = "lsmcommunity.delta.v1"

// NewDeltaMerger returns the pebble.Merger that implements the delta
// log's last-write-wins merge semantics (spec.md §4.7) for the deltas
// namespace. onMerge, if non-nil, is called once each time pebble starts
// a merge for a key (one call per merge chain, not per operand); callers
// use it to drive a delta-merge counter.
func NewDeltaMerger(onMerge func()) *pebble.Merger {
	return &pebble.Merger{
		Name: deltaMergerName,
		Merge: func(_, value []byte) (pebble.ValueMerger, error) {
			if onMerge != nil {
				onMerge()
			}
			m := &deltaValueMerger{}
			m.push(value)
			return m, nil
		},
	}
}

// deltaValueMerger accumulates every raw value pebble hands it across a
// merge chain. When includesBase is true at Finish, the oldest value
// (delivered last, via MergeOlder) is treated as a base log only if it is
// length-prefixed; every other value is a raw, un-length-prefixed operand
// batch.
type deltaValueMerger struct {
	values [][]byte
}

func (m *deltaValueMerger) push(value []byte) {
	m.values = append(m.values, append([]byte(nil), value...))
}

// MergeNewer absorbs a value newer than what has been accumulated so far.
func (m *deltaValueMerger) MergeNewer(value []byte) error {
	m.values = append([][]byte{append([]byte(nil), value...)}, m.values...)
	return nil
}

// MergeOlder absorbs a value older than what has been accumulated so far.
func (m *deltaValueMerger) MergeOlder(value []byte) error {
	m.push(value)
	return nil
}

// Finish produces the merged delta log bytes. A length-prefixed Log is
// 4 bytes longer than a multiple of delta.EncodedSize, while a raw operand
// batch is an exact multiple. A key written only through Merge (as the
// deltas key always is) has no base even when includesBase is true, so its
// values are raw-concatenated like any partial merge.
func (m *deltaValueMerger) Finish(includesBase bool) ([]byte, io.Closer, error) {
	if includesBase && len(m.values) > 0 && len(m.values[len(m.values)-1])%delta.EncodedSize != 0 {
		base := m.values[len(m.values)-1]
		operands := m.values[:len(m.values)-1]
		merged, err := delta.FullMerge(base, operands)
		return merged, nil, err
	}
	merged, err := delta.PartialMerge(m.values)
	return merged, nil, err
}
