// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package bucket

import (
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/monacgraph/lsmcommunity/block"
	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
	"github.com/monacgraph/lsmcommunity/types"
)

// Builder accumulates (vertex, neighbors) pairs, one virtual community
// at a time, and writes the finished bucket file atomically.
type Builder struct {
	blockSize   int
	blockBuffer *block.Builder

	edgeHashes []uint32
	data       []byte

	vertexMetas   []VertexMeta
	currentPageID types.PageId
}

// NewBuilder returns a Builder targeting blockSize-byte blocks.
func NewBuilder(blockSize int) *Builder {
	return &Builder{
		blockSize:   blockSize,
		blockBuffer: block.NewBuilder(blockSize),
	}
}

// Add appends vertex vid with its out-neighbors to the bucket, hashing
// every (vid, neighbor) edge into the running bloom key stream and
// rolling over to a new block when the current one is full.
func (bb *Builder) Add(vid types.VId, neighbors types.VIdList) {
	for _, n := range neighbors {
		bb.edgeHashes = append(bb.edgeHashes, hashEdge(uint32(vid), uint32(n)))
	}

	if blk, idx, ok := bb.blockBuffer.AddVertexOrBuild(vid, neighbors); ok {
		bb.appendBlock(blk, idx)
	}
}

func (bb *Builder) appendBlock(blk *block.Block, idx map[types.VId]types.Offset) {
	for vid, offset := range idx {
		bb.vertexMetas = append(bb.vertexMetas, VertexMeta{
			VertexID:    vid,
			PageID:      bb.currentPageID,
			OffsetInner: offset,
		})
	}
	bb.data = append(bb.data, blk.Encode()...)
	bb.currentPageID++
}

// Build finalizes the bucket, writes it to path, and returns an open
// Bucket handle. The file is written to a temp sibling and renamed into
// place so a reader never observes a partially written bucket.
func (bb *Builder) Build(id types.VCommId, path string) (*Bucket, error) {
	if !bb.blockBuffer.IsEmpty() {
		blk, idx := bb.blockBuffer.Build()
		bb.appendBlock(blk, idx)
	}

	buf := bb.data
	vertexMetaOffset := len(buf)
	buf = append(buf, encodeVertexMetas(bb.vertexMetas)...)

	bitsPerKey := adaptiveBitsPerKey(len(bb.edgeHashes))
	edgeBloom := buildBloomFromKeyHashes(bb.edgeHashes, bitsPerKey)
	bloomOffset := len(buf)
	buf = append(buf, edgeBloom.encode()...)
	bloomSize := len(buf) - bloomOffset

	buf = appendFooter(buf, bb.blockSize, vertexMetaOffset, bloomSize)

	if err := writeFileAtomically(path, buf); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, lsmerr.NewIO(err, "reopening freshly written bucket file %q", path)
	}

	return &Bucket{
		file:             f,
		vertexMetas:      bb.vertexMetas,
		vertexMetaOffset: uint64(vertexMetaOffset),
		blockSize:        uint64(bb.blockSize),
		virtualCommID:    id,
		edgeBloom:        edgeBloom,
	}, nil
}

func appendFooter(buf []byte, blockSize, vertexMetaOffset, bloomSize int) []byte {
	var footer [footerSize]byte
	binary.BigEndian.PutUint32(footer[0:4], uint32(blockSize))
	binary.BigEndian.PutUint32(footer[4:8], uint32(vertexMetaOffset))
	binary.BigEndian.PutUint32(footer[8:12], uint32(bloomSize))
	return append(buf, footer[:]...)
}

// writeFileAtomically writes data to path via a temp sibling file,
// fsyncing before the rename so the replacement is crash-safe.
func writeFileAtomically(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return lsmerr.NewIO(err, "creating bucket directory %q", dir)
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return lsmerr.NewIO(err, "creating bucket file %q", tmp)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return lsmerr.NewIO(err, "writing bucket file %q", tmp)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return lsmerr.NewIO(err, "fsyncing bucket file %q", tmp)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return lsmerr.NewIO(err, "closing bucket file %q", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return lsmerr.NewIO(err, "renaming bucket file into place")
	}
	return nil
}
