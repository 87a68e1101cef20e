// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package block implements the fixed-size paged CSR fragment that is the
// smallest unit of read and caching in the storage engine, along with its
// builder and zero-copy iterators.
package block

import (
	"encoding/binary"

	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
	"github.com/monacgraph/lsmcommunity/types"
)

const (
	headerSize      = 4 // vertex_count u16 BE + edge_count u16 BE
	vertexEntrySize = 8 // VId u32 BE + edge_start_offset u32 BE
	edgeEntrySize   = 4 // VId u32 BE
)

// Block is an immutable, fixed-size byte page holding a CSR fragment: a
// vertex table of (VId, edge_start_offset) pairs followed by a flat edge
// list, big-endian throughout, zero-padded to block_size. All accessors
// read directly from the underlying buffer; nothing is decoded ahead of
// time.
type Block struct {
	vertexCount uint16
	edgeCount   uint16
	data        []byte // full block_size buffer, header included

	vertexListOffset int
	edgeListOffset   int
}

// VertexEntry pairs a VId with its Offset into the vertex table, as
// returned by VertexIter.
type VertexEntry struct {
	VId    types.VId
	Offset types.Offset
}

// New packs vertices (in the given order, each already paired with its
// cumulative edge_start_offset) and edges into a block of exactly
// blockSize bytes. If the encoded content is larger than blockSize, the
// buffer grows to the encoded size instead; New never panics. Choosing
// what fits in a block is the builder's responsibility; New only encodes
// what it is given.
func New(vertices []VertexEntry, edges types.VIdList, blockSize int) *Block {
	total := headerSize + len(vertices)*vertexEntrySize + len(edges)*edgeEntrySize
	size := blockSize
	if total > size {
		size = total
	}

	data := make([]byte, size)
	binary.BigEndian.PutUint16(data[0:2], uint16(len(vertices)))
	binary.BigEndian.PutUint16(data[2:4], uint16(len(edges)))

	off := headerSize
	for _, v := range vertices {
		binary.BigEndian.PutUint32(data[off:off+4], uint32(v.VId))
		binary.BigEndian.PutUint32(data[off+4:off+8], uint32(v.Offset))
		off += vertexEntrySize
	}
	edgeListOffset := off
	for _, e := range edges {
		binary.BigEndian.PutUint32(data[off:off+4], uint32(e))
		off += edgeEntrySize
	}

	return &Block{
		vertexCount:      uint16(len(vertices)),
		edgeCount:        uint16(len(edges)),
		data:             data,
		vertexListOffset: headerSize,
		edgeListOffset:   edgeListOffset,
	}
}

// Encode returns the block's full backing buffer.
func (b *Block) Encode() []byte {
	return b.data
}

// Decode parses data's 4-byte header and stores a reference to data
// itself; the vertex and edge regions are interpreted lazily by the
// iterators.
func Decode(data []byte) (*Block, error) {
	if len(data) < headerSize {
		return nil, lsmerr.NewFormat("block: truncated header, got %d bytes", len(data))
	}
	vertexCount := binary.BigEndian.Uint16(data[0:2])
	edgeCount := binary.BigEndian.Uint16(data[2:4])

	vertexListOffset := headerSize
	edgeListOffset := vertexListOffset + int(vertexCount)*vertexEntrySize
	need := edgeListOffset + int(edgeCount)*edgeEntrySize
	if len(data) < need {
		return nil, lsmerr.NewFormat("block: truncated body, need %d bytes, got %d", need, len(data))
	}

	return &Block{
		vertexCount:      vertexCount,
		edgeCount:        edgeCount,
		data:             data,
		vertexListOffset: vertexListOffset,
		edgeListOffset:   edgeListOffset,
	}, nil
}

// VertexCount returns the number of vertices packed in this block.
func (b *Block) VertexCount() int { return int(b.vertexCount) }

// EdgeCount returns the number of edges packed in this block.
func (b *Block) EdgeCount() int { return int(b.edgeCount) }

func (b *Block) vertexAt(i int) (types.VId, uint32) {
	off := b.vertexListOffset + i*vertexEntrySize
	vid := binary.BigEndian.Uint32(b.data[off : off+4])
	edgeOffset := binary.BigEndian.Uint32(b.data[off+4 : off+8])
	return types.VId(vid), edgeOffset
}

func (b *Block) edgeAt(i int) types.VId {
	off := b.edgeListOffset + i*edgeEntrySize
	return types.VId(binary.BigEndian.Uint32(b.data[off : off+4]))
}

// VertexIter returns an iterator over (VId, Offset) pairs in build order.
func (b *Block) VertexIter() *VertexIterator {
	return &VertexIterator{block: b, total: int(b.vertexCount)}
}

// neighborRange returns the [start, end) edge index range for the
// vertex at in-page index i, or ok=false if i is out of range.
func (b *Block) neighborRange(i int) (start, end int, ok bool) {
	if i < 0 || i >= int(b.vertexCount) {
		return 0, 0, false
	}
	_, start32 := b.vertexAt(i)
	start = int(start32)
	if i+1 < int(b.vertexCount) {
		_, next := b.vertexAt(i + 1)
		end = int(next)
	} else {
		end = int(b.edgeCount)
	}
	return start, end, true
}

// NeighborIter returns an iterator over the neighbors of the vertex at
// in-page index i, or ok=false if i is out of range.
func (b *Block) NeighborIter(i int) (*NeighborIterator, bool) {
	start, end, ok := b.neighborRange(i)
	if !ok {
		return nil, false
	}
	return &NeighborIterator{block: b, cur: start, end: end}, true
}

// NeighborClone materializes the neighbor list of the vertex at in-page
// index i, or ok=false if i is out of range.
func (b *Block) NeighborClone(i int) (types.VIdList, bool) {
	it, ok := b.NeighborIter(i)
	if !ok {
		return nil, false
	}
	out := make(types.VIdList, 0, it.end-it.cur)
	for {
		vid, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, vid)
	}
	return out, true
}

// EdgeIter returns an iterator over (src, dst) pairs, concatenating
// NeighborIter across all vertices in vertex-list order.
func (b *Block) EdgeIter() *EdgeIterator {
	return &EdgeIterator{block: b}
}

// VertexIterator walks the vertex table of a Block.
type VertexIterator struct {
	block *Block
	idx   int
	total int
}

// Next returns the next (VId, Offset) pair, or ok=false when exhausted.
func (it *VertexIterator) Next() (VertexEntry, bool) {
	if it.idx >= it.total {
		return VertexEntry{}, false
	}
	vid, off := it.block.vertexAt(it.idx)
	it.idx++
	return VertexEntry{VId: vid, Offset: types.Offset(off)}, true
}

// Len returns the number of remaining entries.
func (it *VertexIterator) Len() int { return it.total - it.idx }

// NeighborIterator walks the edge slice belonging to a single vertex.
type NeighborIterator struct {
	block    *Block
	cur, end int
}

// Next returns the next neighbor VId, or ok=false when exhausted.
func (it *NeighborIterator) Next() (types.VId, bool) {
	if it.cur >= it.end {
		return 0, false
	}
	vid := it.block.edgeAt(it.cur)
	it.cur++
	return vid, true
}

// Len returns the number of remaining neighbors.
func (it *NeighborIterator) Len() int { return it.end - it.cur }

// EdgeIterator walks every (src, dst) pair in a block, in vertex-list
// order.
type EdgeIterator struct {
	block       *Block
	vertexIdx   int
	currentVId  types.VId
	neighborIt  *NeighborIterator
	initialized bool
}

// Next returns the next (src, dst) pair, or ok=false when exhausted.
func (it *EdgeIterator) Next() (src, dst types.VId, ok bool) {
	if !it.initialized {
		it.initialized = true
		it.advance()
	}
	for {
		if it.neighborIt == nil {
			return 0, 0, false
		}
		if d, ok := it.neighborIt.Next(); ok {
			return it.currentVId, d, true
		}
		it.vertexIdx++
		it.advance()
	}
}

func (it *EdgeIterator) advance() {
	for it.vertexIdx < int(it.block.vertexCount) {
		vid, _ := it.block.vertexAt(it.vertexIdx)
		ni, ok := it.block.NeighborIter(it.vertexIdx)
		if ok && ni.Len() > 0 {
			it.currentVId = vid
			it.neighborIt = ni
			return
		}
		it.vertexIdx++
	}
	it.neighborIt = nil
}
