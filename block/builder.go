// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package block

import "github.com/monacgraph/lsmcommunity/types"

// Builder accumulates (vertex, neighbors) pairs up to block_size and
// packs them into a Block.
type Builder struct {
	vertices  []VertexEntry
	edges     types.VIdList
	blockSize int
	edgeOff   uint32
}

// NewBuilder returns a Builder targeting blockSize-byte blocks.
func NewBuilder(blockSize int) *Builder {
	return &Builder{blockSize: blockSize}
}

func (b *Builder) estimatedSize() int {
	return headerSize + len(b.vertices)*vertexEntrySize + len(b.edges)*edgeEntrySize
}

// IsEmpty reports whether no vertex has been added yet.
func (b *Builder) IsEmpty() bool { return len(b.vertices) == 0 }

// VertexCount returns the number of vertices added so far.
func (b *Builder) VertexCount() int { return len(b.vertices) }

// EdgeCount returns the number of edges added so far.
func (b *Builder) EdgeCount() int { return len(b.edges) }

// AddVertex adds vertex_id with its neighbor list. Returns false when
// adding would exceed block_size, unless the builder is still empty, in
// which case the vertex is admitted regardless (the oversized-vertex
// escape hatch).
func (b *Builder) AddVertex(vid types.VId, neighbors types.VIdList) bool {
	newSize := b.estimatedSize() + vertexEntrySize + len(neighbors)*edgeEntrySize
	if newSize > b.blockSize && !b.IsEmpty() {
		return false
	}

	b.vertices = append(b.vertices, VertexEntry{VId: vid, Offset: types.Offset(b.edgeOff)})
	b.edges = append(b.edges, neighbors...)
	b.edgeOff += uint32(len(neighbors))
	return true
}

// Build finalizes the block. Returns the built Block and a map from
// vertex_id to its in-page index, consumed by the bucket builder to
// populate the vertex-meta table. Panics if the builder is empty.
func (b *Builder) Build() (*Block, map[types.VId]types.Offset) {
	if b.IsEmpty() {
		panic("block: build called on an empty builder")
	}

	idx := make(map[types.VId]types.Offset, len(b.vertices))
	for i, v := range b.vertices {
		idx[v.VId] = types.Offset(i)
	}

	blk := New(b.vertices, b.edges, b.blockSize)
	return blk, idx
}

// Clear resets the builder for reuse.
func (b *Builder) Clear() {
	b.vertices = nil
	b.edges = nil
	b.edgeOff = 0
}

// AddVertexOrBuild tries to add vertex_id; on overflow it finalizes and
// returns the current block (with its index map) and starts a new
// builder containing only this vertex. Returns ok=false when the vertex
// was simply appended to the current, unfinished block.
func (b *Builder) AddVertexOrBuild(vid types.VId, neighbors types.VIdList) (blk *Block, idx map[types.VId]types.Offset, ok bool) {
	if b.AddVertex(vid, neighbors) {
		return nil, nil, false
	}

	blk, idx = b.Build()
	b.Clear()
	if !b.AddVertex(vid, neighbors) {
		panic("block: vertex should fit in an empty builder")
	}
	return blk, idx, true
}
