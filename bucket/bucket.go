// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bucket implements the on-disk bucket file: a sequence of
// blocks, a vertex-meta table, an edge bloom filter, and a fixed 12-byte
// footer, one file per virtual community.
package bucket

import (
	"encoding/binary"
	"os"

	"github.com/monacgraph/lsmcommunity/block"
	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
	"github.com/monacgraph/lsmcommunity/types"
)

// footerSize is the fixed trailer: block_size, vertex_meta_offset,
// bloom_size, each a big-endian u32.
const footerSize = 12

// VertexMeta locates a vertex inside a bucket's block segment.
type VertexMeta struct {
	VertexID    types.VId
	PageID      types.PageId
	OffsetInner types.Offset
}

// encodeVertexMetas packs metas as a u32 count followed by
// (VId, PageId, InPageOffset) triples, all big-endian.
func encodeVertexMetas(metas []VertexMeta) []byte {
	out := make([]byte, 4+len(metas)*10)
	binary.BigEndian.PutUint32(out[0:4], uint32(len(metas)))
	off := 4
	for _, m := range metas {
		binary.BigEndian.PutUint32(out[off:off+4], uint32(m.VertexID))
		binary.BigEndian.PutUint32(out[off+4:off+8], uint32(m.PageID))
		binary.BigEndian.PutUint16(out[off+8:off+10], uint16(m.OffsetInner))
		off += 10
	}
	return out
}

// decodeVertexMetas parses the region written by encodeVertexMetas.
func decodeVertexMetas(data []byte) ([]VertexMeta, error) {
	if len(data) < 4 {
		return nil, lsmerr.NewFormat("bucket: truncated vertex-meta count, got %d bytes", len(data))
	}
	count := binary.BigEndian.Uint32(data[0:4])
	need := 4 + int(count)*10
	if len(data) < need {
		return nil, lsmerr.NewFormat("bucket: truncated vertex-meta table, need %d bytes, got %d", need, len(data))
	}
	metas := make([]VertexMeta, count)
	off := 4
	for i := range metas {
		metas[i] = VertexMeta{
			VertexID:    types.VId(binary.BigEndian.Uint32(data[off : off+4])),
			PageID:      types.PageId(binary.BigEndian.Uint32(data[off+4 : off+8])),
			OffsetInner: types.Offset(binary.BigEndian.Uint16(data[off+8 : off+10])),
		}
		off += 10
	}
	return metas, nil
}

// blockLoc is a vertex's in-bucket location.
type blockLoc struct {
	Page   types.PageId
	Offset types.Offset
}

// Bucket is an opened, read-only handle to one virtual community's file:
// the blocks, the vertex-meta table and, optionally, a build-once VId to
// (page, offset) lookup map used only by diagnostics and tests.
type Bucket struct {
	file *os.File

	vertexMetas    []VertexMeta
	vertexBlockMap map[types.VId]blockLoc

	vertexMetaOffset uint64
	blockSize        uint64
	virtualCommID    types.VCommId
	edgeBloom        *bloom
}

// VirtualCommID returns the virtual community this bucket belongs to.
func (b *Bucket) VirtualCommID() types.VCommId { return b.virtualCommID }

// BlockSize returns the bucket's block size, in bytes.
func (b *Bucket) BlockSize() int { return int(b.blockSize) }

// VertexMetas returns the bucket's vertex-location table.
func (b *Bucket) VertexMetas() []VertexMeta { return b.vertexMetas }

// Open reads the footer, bloom filter and vertex-meta table of the file
// at path and returns a Bucket ready to serve ReadBlock calls. When
// buildMap is true, a VId lookup map is built eagerly; otherwise it is
// built lazily on first use by Lookup.
func Open(id types.VCommId, path string, buildMap bool) (*Bucket, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, lsmerr.NewIO(err, "opening bucket file %q", path)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, lsmerr.NewIO(err, "stat-ing bucket file %q", path)
	}
	size := info.Size()
	if size < footerSize {
		f.Close()
		return nil, lsmerr.NewFormat("bucket: file %q too small to hold a footer (%d bytes)", path, size)
	}

	footer := make([]byte, footerSize)
	if _, err := f.ReadAt(footer, size-footerSize); err != nil {
		f.Close()
		return nil, lsmerr.NewIO(err, "reading bucket footer of %q", path)
	}
	blockSize := uint64(binary.BigEndian.Uint32(footer[0:4]))
	vertexMetaOffset := uint64(binary.BigEndian.Uint32(footer[4:8]))
	bloomSize := uint64(binary.BigEndian.Uint32(footer[8:12]))

	bloomOffset := size - footerSize - int64(bloomSize)
	if bloomOffset < int64(vertexMetaOffset) {
		f.Close()
		return nil, lsmerr.NewFormat("bucket: %q bloom offset %d precedes vertex-meta offset %d", path, bloomOffset, vertexMetaOffset)
	}

	bloomBuf := make([]byte, bloomSize)
	if _, err := f.ReadAt(bloomBuf, bloomOffset); err != nil {
		f.Close()
		return nil, lsmerr.NewIO(err, "reading bloom filter of %q", path)
	}
	edgeBloom, err := decodeBloom(bloomBuf)
	if err != nil {
		f.Close()
		return nil, err
	}

	metaLen := bloomOffset - int64(vertexMetaOffset)
	metaBuf := make([]byte, metaLen)
	if _, err := f.ReadAt(metaBuf, int64(vertexMetaOffset)); err != nil {
		f.Close()
		return nil, lsmerr.NewIO(err, "reading vertex-meta table of %q", path)
	}
	vertexMetas, err := decodeVertexMetas(metaBuf)
	if err != nil {
		f.Close()
		return nil, err
	}

	bkt := &Bucket{
		file:             f,
		vertexMetas:      vertexMetas,
		vertexMetaOffset: vertexMetaOffset,
		blockSize:        blockSize,
		virtualCommID:    id,
		edgeBloom:        edgeBloom,
	}
	if buildMap {
		bkt.buildVertexBlockMap()
	}
	return bkt, nil
}

func (b *Bucket) buildVertexBlockMap() {
	m := make(map[types.VId]blockLoc, len(b.vertexMetas))
	for _, vm := range b.vertexMetas {
		m[vm.VertexID] = blockLoc{Page: vm.PageID, Offset: vm.OffsetInner}
	}
	b.vertexBlockMap = m
}

// ReadBlock reads and decodes the block at page, satisfying
// cache.PageReader. page's implicit vcomm is this bucket's own.
func (b *Bucket) ReadBlock(_ types.VCommId, page types.PageId) (*block.Block, error) {
	offset := uint64(page) * b.blockSize
	if offset >= b.vertexMetaOffset {
		return nil, lsmerr.NewLookup("bucket: page %d out of bounds (offset %d >= vertex_meta_offset %d)", page, offset, b.vertexMetaOffset)
	}
	end := offset + b.blockSize
	if end > b.vertexMetaOffset {
		end = b.vertexMetaOffset
	}

	buf := make([]byte, end-offset)
	if _, err := b.file.ReadAt(buf, int64(offset)); err != nil {
		return nil, lsmerr.NewIO(err, "reading page %d", page)
	}
	return block.Decode(buf)
}

// Lookup returns the (page, offset) location of vid within this bucket,
// building the lookup map on first use.
func (b *Bucket) Lookup(vid types.VId) (page types.PageId, offset types.Offset, ok bool) {
	if b.vertexBlockMap == nil {
		b.buildVertexBlockMap()
	}
	loc, ok := b.vertexBlockMap[vid]
	if !ok {
		return 0, 0, false
	}
	return loc.Page, loc.Offset, true
}

// NeighborsForTest reads and clones the neighbor list of vid, for use in
// tests and diagnostics that do not want to go through the block cache.
func (b *Bucket) NeighborsForTest(vid types.VId) (types.VIdList, error) {
	page, offset, ok := b.Lookup(vid)
	if !ok {
		return nil, lsmerr.NewLookup("bucket: vertex %d not found in virtual community %d", vid, b.virtualCommID)
	}
	blk, err := b.ReadBlock(b.virtualCommID, page)
	if err != nil {
		return nil, err
	}
	list, ok := blk.NeighborClone(int(offset))
	if !ok {
		return nil, lsmerr.NewLookup("bucket: in-page offset %d out of range for vertex %d", offset, vid)
	}
	return list, nil
}

// MayContainEdge probes the bucket's bloom filter for the (src, dst)
// edge. false is a definite negative; true only means "maybe".
func (b *Bucket) MayContainEdge(src, dst types.VId) bool {
	if b.edgeBloom == nil {
		return true
	}
	return b.edgeBloom.mayContainHash(hashEdge(uint32(src), uint32(dst)))
}

// Close closes the underlying file.
func (b *Bucket) Close() error {
	return b.file.Close()
}
