// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package kvstore implements the external ordered key-value contract
// (spec.md §6.4): giant-vertex lists, delta logs, and vertex/edge
// properties, namespaced inside a single pebble keyspace.
package kvstore

import (
	"encoding/binary"

	"github.com/monacgraph/lsmcommunity/types"
)

// Namespace prefixes. Pebble has no RocksDB-style column families, so
// each logical family is a one-byte prefix inside one keyspace; this
// keeps every namespace's keys contiguous and prefix-scannable.
const (
	nsGiantVertices   byte = 0x01
	nsDeltas          byte = 0x02
	nsVertexProperty  byte = 0x03
	nsEdgeProperty    byte = 0x04
)

// GiantKey returns the giant_vertices namespace key for vid.
func GiantKey(vid types.VId) []byte {
	key := make([]byte, 5)
	key[0] = nsGiantVertices
	binary.BigEndian.PutUint32(key[1:5], uint32(vid))
	return key
}

// DeltaKey returns the deltas namespace key for vid.
func DeltaKey(vid types.VId) []byte {
	key := make([]byte, 5)
	key[0] = nsDeltas
	binary.BigEndian.PutUint32(key[1:5], uint32(vid))
	return key
}

// VertexPropertyKey returns the vertex_properties namespace key for
// (vid, name), per spec.md §3: [vid u32 BE][name_len u16 BE][name].
func VertexPropertyKey(vid types.VId, name string) []byte {
	key := make([]byte, 1+4+2+len(name))
	key[0] = nsVertexProperty
	binary.BigEndian.PutUint32(key[1:5], uint32(vid))
	binary.BigEndian.PutUint16(key[5:7], uint16(len(name)))
	copy(key[7:], name)
	return key
}

// EdgePropertyKey returns the edge_properties namespace key for
// (src, dst, name), per spec.md §3:
// [src u32 BE][dst u32 BE][name_len u16 BE][name].
func EdgePropertyKey(src, dst types.VId, name string) []byte {
	key := make([]byte, 1+4+4+2+len(name))
	key[0] = nsEdgeProperty
	binary.BigEndian.PutUint32(key[1:5], uint32(src))
	binary.BigEndian.PutUint32(key[5:9], uint32(dst))
	binary.BigEndian.PutUint16(key[9:11], uint16(len(name)))
	copy(key[11:], name)
	return key
}

// vertexPropertyPrefix returns the scan prefix covering every property
// of vid.
func vertexPropertyPrefix(vid types.VId) []byte {
	key := make([]byte, 5)
	key[0] = nsVertexProperty
	binary.BigEndian.PutUint32(key[1:5], uint32(vid))
	return key
}

// edgePropertyPrefix returns the scan prefix covering every property of
// the (src, dst) edge.
func edgePropertyPrefix(src, dst types.VId) []byte {
	key := make([]byte, 9)
	key[0] = nsEdgeProperty
	binary.BigEndian.PutUint32(key[1:5], uint32(src))
	binary.BigEndian.PutUint32(key[5:9], uint32(dst))
	return key
}

// prefixUpperBound returns the smallest key that sorts after every key
// with the given prefix, for use as a pebble iterator upper bound.
func prefixUpperBound(prefix []byte) []byte {
	upper := append([]byte(nil), prefix...)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] != 0xff {
			upper[i]++
			return upper[:i+1]
		}
	}
	return nil // prefix is all 0xff: unbounded
}
