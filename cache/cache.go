// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cache implements the block cache and giant-vertex cache: two
// bounded, concurrent, W-TinyLFU caches keyed by the packed identifiers
// the vertex index already carries, so no extra hashing is needed on the
// read path.
package cache

import (
	"github.com/dgraph-io/ristretto/v2"

	"github.com/monacgraph/lsmcommunity/block"
	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
	"github.com/monacgraph/lsmcommunity/types"
	"github.com/monacgraph/lsmcommunity/vertexindex"
)

// blockCost is the notional cost assigned to every cached block: block
// capacity is specified in entry count, not bytes, since every block is
// a fixed block_size.
const blockCost = 1

// BlockCache is a concurrent cache from (virtual community, page) to a
// shared Block. Insertions and lookups are thread-safe; eviction never
// hands out a partially built block because a Block is immutable and
// fully constructed before Set is called.
type BlockCache struct {
	inner *ristretto.Cache[vertexindex.CacheKey, *block.Block]
}

// NewBlockCache returns a BlockCache that holds up to capacity blocks.
func NewBlockCache(capacity int64) (*BlockCache, error) {
	capacity = types.ClampMin(capacity, 1)
	inner, err := ristretto.NewCache(&ristretto.Config[vertexindex.CacheKey, *block.Block]{
		NumCounters:        capacity * 10,
		MaxCost:            capacity,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, lsmerr.WithKind(err, lsmerr.Config)
	}
	return &BlockCache{inner: inner}, nil
}

// Get returns the cached block for key, if present.
func (c *BlockCache) Get(key vertexindex.CacheKey) (*block.Block, bool) {
	return c.inner.Get(key)
}

// Set inserts blk under key. Blocking on the internal buffer is
// intentionally avoided; a dropped insert simply causes a future cache
// miss, which is always safe.
func (c *BlockCache) Set(key vertexindex.CacheKey, blk *block.Block) {
	c.inner.Set(key, blk, blockCost)
}

// Wait blocks until all pending Set calls have been applied. Used by
// WarmUp so that a subsequent Get is guaranteed to observe the warmed
// entries.
func (c *BlockCache) Wait() {
	c.inner.Wait()
}

// Close releases the cache's background goroutines.
func (c *BlockCache) Close() {
	c.inner.Close()
}

// giantCost is the notional cost of one cached giant-vertex list.
const giantCost = 1

// GiantCache is a concurrent cache from VId to a materialized giant
// vertex neighbor list.
type GiantCache struct {
	inner *ristretto.Cache[types.VId, types.VIdList]
}

// NewGiantCache returns a GiantCache holding up to capacity lists.
func NewGiantCache(capacity int64) (*GiantCache, error) {
	capacity = types.ClampMin(capacity, 1)
	inner, err := ristretto.NewCache(&ristretto.Config[types.VId, types.VIdList]{
		NumCounters:        capacity * 10,
		MaxCost:            capacity,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, lsmerr.WithKind(err, lsmerr.Config)
	}
	return &GiantCache{inner: inner}, nil
}

// Get returns the cached neighbor list for vid, if present.
func (c *GiantCache) Get(vid types.VId) (types.VIdList, bool) {
	return c.inner.Get(vid)
}

// Set inserts list under vid.
func (c *GiantCache) Set(vid types.VId, list types.VIdList) {
	c.inner.Set(vid, list, giantCost)
}

// Wait blocks until all pending Set calls have been applied.
func (c *GiantCache) Wait() {
	c.inner.Wait()
}

// Close releases the cache's background goroutines.
func (c *GiantCache) Close() {
	c.inner.Close()
}
