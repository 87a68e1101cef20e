// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vertexindex implements the bit-packed per-vertex storage
// location record, the vertex index that owns one per vertex, and the
// virtual-community partitioner that assigns bucket placement.
package vertexindex

import "github.com/monacgraph/lsmcommunity/types"

// giantFlag is bit 63 of an Item: when set, every other bit is ignored
// and the vertex's neighbor list lives in external KV rather than a
// bucket.
const giantFlag = uint64(1) << 63

// Item is a 64-bit packed vertex storage record.
//
// Layout (bit 63 is the most significant bit):
//   - bit 63 = 1: Giant, remaining bits unused.
//   - bit 63 = 0: Normal, bits 62-48 virtual_comm_id (15 bits),
//     bits 47-16 page_id (32 bits), bits 15-0 offset (16 bits).
//
// A Normal record's block cache key is (vcomm<<32)|page_id, built from
// its virtual_comm_id and page_id fields by ToCacheKey; it is not the
// record's low 48 bits, which hold page_id<<16|offset.
type Item uint64

// Normal packs a Normal record from its three fields.
func Normal(vcomm types.VCommId, page types.PageId, offset types.Offset) Item {
	return Item((uint64(vcomm) << 48) | (uint64(page) << 16) | uint64(offset))
}

// Giant returns a Giant record.
func Giant() Item {
	return Item(giantFlag)
}

// IsNormal reports whether it is a Normal record.
func (it Item) IsNormal() bool { return uint64(it)&giantFlag == 0 }

// IsGiant reports whether it is a Giant record.
func (it Item) IsGiant() bool { return uint64(it)&giantFlag != 0 }

// SetVirtualCommID replaces the virtual_comm_id field in place. The
// caller must ensure it is Normal.
func (it *Item) SetVirtualCommID(vcomm types.VCommId) {
	*it = Item((uint64(*it) &^ (uint64(0x7FFF) << 48)) | (uint64(vcomm) << 48))
}

// SetPageID replaces the page_id field in place. The caller must ensure
// it is Normal.
func (it *Item) SetPageID(page types.PageId) {
	*it = Item((uint64(*it) &^ (uint64(0xFFFFFFFF) << 16)) | (uint64(page) << 16))
}

// SetOffset replaces the offset field in place. The caller must ensure
// it is Normal.
func (it *Item) SetOffset(offset types.Offset) {
	*it = Item((uint64(*it) &^ uint64(0xFFFF)) | uint64(offset))
}

// VirtualCommID extracts the virtual_comm_id field. Only meaningful for
// a Normal record.
func (it Item) VirtualCommID() types.VCommId {
	return types.VCommId((uint64(it) >> 48) & 0x7FFF)
}

// PageID extracts the page_id field. Only meaningful for a Normal
// record.
func (it Item) PageID() types.PageId {
	return types.PageId((uint64(it) >> 16) & 0xFFFFFFFF)
}

// Offset extracts the offset field. Only meaningful for a Normal
// record.
func (it Item) Offset() types.Offset {
	return types.Offset(uint64(it) & 0xFFFF)
}

// CacheKey is the block cache's lookup key: (vcomm<<32)|page_id for a
// Normal Item.
type CacheKey uint64

// NewCacheKey packs a (virtual community, page) pair into a CacheKey.
func NewCacheKey(vcomm types.VCommId, page types.PageId) CacheKey {
	return CacheKey((uint64(vcomm) << 32) | uint64(page))
}

// ToCacheKey returns it's cache key and true, or false if it is Giant.
func (it Item) ToCacheKey() (CacheKey, bool) {
	if !it.IsNormal() {
		return 0, false
	}
	return NewCacheKey(it.VirtualCommID(), it.PageID()), true
}

// AsNormal extracts all three Normal fields at once, or ok=false if it
// is Giant.
func (it Item) AsNormal() (vcomm types.VCommId, page types.PageId, offset types.Offset, ok bool) {
	if !it.IsNormal() {
		return 0, 0, 0, false
	}
	return it.VirtualCommID(), it.PageID(), it.Offset(), true
}
