// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package kvstore

import (
	"encoding/binary"

	"github.com/golang/snappy"

	"github.com/monacgraph/lsmcommunity/delta"
	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
	"github.com/monacgraph/lsmcommunity/types"
)

// EncodeGiantList packs list as a length-prefixed u32 array, then
// snappy-compresses it. Snappy substitutes for the source's LZ4 framing;
// both are block compressors over the same length-prefixed payload, and
// round-trip identically for this contract.
func EncodeGiantList(list types.VIdList) []byte {
	raw := make([]byte, 4+len(list)*4)
	binary.BigEndian.PutUint32(raw[0:4], uint32(len(list)))
	for i, v := range list {
		binary.BigEndian.PutUint32(raw[4+i*4:8+i*4], uint32(v))
	}
	return snappy.Encode(nil, raw)
}

// DecodeGiantList reverses EncodeGiantList.
func DecodeGiantList(data []byte) (types.VIdList, error) {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, lsmerr.WithKind(err, lsmerr.Format)
	}
	if len(raw) < 4 {
		return nil, lsmerr.NewFormat("kvstore: truncated giant vertex list, got %d bytes", len(raw))
	}
	count := binary.BigEndian.Uint32(raw[0:4])
	need := 4 + int(count)*4
	if len(raw) < need {
		return nil, lsmerr.NewFormat("kvstore: truncated giant vertex list body, need %d bytes, got %d", need, len(raw))
	}
	list := make(types.VIdList, count)
	for i := range list {
		list[i] = types.VId(binary.BigEndian.Uint32(raw[4+i*4 : 8+i*4]))
	}
	return list, nil
}

// PutGiantVertex stores list under vid in the giant_vertices namespace.
func PutGiantVertex(s Store, vid types.VId, list types.VIdList) error {
	return s.Put(GiantKey(vid), EncodeGiantList(list))
}

// GetGiantVertex retrieves the neighbor list stored under vid, or
// ok=false if absent.
func GetGiantVertex(s Store, vid types.VId) (types.VIdList, bool, error) {
	raw, ok, err := s.Get(GiantKey(vid))
	if err != nil || !ok {
		return nil, ok, err
	}
	list, err := DecodeGiantList(raw)
	if err != nil {
		return nil, false, err
	}
	return list, true, nil
}

// PutVertexProperty stores value under the vertex_properties namespace
// key (vid, name).
func PutVertexProperty(s Store, vid types.VId, name string, value []byte) error {
	return s.Put(VertexPropertyKey(vid, name), value)
}

// GetVertexProperty retrieves value under (vid, name), or ok=false if
// absent.
func GetVertexProperty(s Store, vid types.VId, name string) ([]byte, bool, error) {
	return s.Get(VertexPropertyKey(vid, name))
}

// PutEdgeProperty stores value under the edge_properties namespace key
// (src, dst, name).
func PutEdgeProperty(s Store, src, dst types.VId, name string, value []byte) error {
	return s.Put(EdgePropertyKey(src, dst, name), value)
}

// GetEdgeProperty retrieves value under (src, dst, name), or ok=false if
// absent.
func GetEdgeProperty(s Store, src, dst types.VId, name string) ([]byte, bool, error) {
	return s.Get(EdgePropertyKey(src, dst, name))
}

// AppendDelta merges a single op, raw-encoded, under vid's deltas
// namespace key. The deltas key is never written with Put, so pebble
// always resolves a Get on it through the merge operator's partial-merge
// path (§4.7): the stored/returned bytes are a raw concatenation of
// 16-byte records, not a length-prefixed Log.
func AppendDelta(s Store, vid types.VId, op delta.Operation) error {
	encoded := op.Encode()
	return s.Merge(DeltaKey(vid), encoded[:])
}

// GetDeltaLog retrieves vid's pending delta operations and returns them in
// ascending timestamp order. The deltas key is never written with Put, so
// a Get resolves through the merge operator's partial-merge path: the
// stored bytes are a raw concatenation of operand batches in pebble merge
// order, not already sorted, so decoding alone is not enough to honor the
// last-write-wins overlay contract (§4.7) — they are re-sorted here via
// delta.FromOps before being handed to a caller.
func GetDeltaLog(s Store, vid types.VId) ([]delta.Operation, error) {
	raw, ok, err := s.Get(DeltaKey(vid))
	if err != nil || !ok {
		return nil, err
	}
	ops, err := delta.DecodeBatch(raw)
	if err != nil {
		return nil, err
	}
	return delta.FromOps(ops).Ops, nil
}
