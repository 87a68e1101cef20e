// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package lsmcommunity

import (
	"github.com/monacgraph/lsmcommunity/bucket"
	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
	"github.com/monacgraph/lsmcommunity/iterator"
	"github.com/monacgraph/lsmcommunity/kvstore"
	"github.com/monacgraph/lsmcommunity/types"
	"github.com/monacgraph/lsmcommunity/vertexindex"
)

// NumVertices returns the number of vertices currently in the index,
// satisfying algorithms.Reader.
func (lc *LsmCommunity) NumVertices() int { return lc.VertexCount() }

// ReadNeighbor returns vid's out-neighbors. When withDelta is true, the
// vertex's pending delta log is overlaid (add/remove, last-write-wins)
// before the result is sorted ascending and returned.
func (lc *LsmCommunity) ReadNeighbor(vid types.VId, withDelta bool) (types.VIdList, error) {
	base, err := lc.baseNeighbors(vid)
	if err != nil {
		return nil, err
	}
	if !withDelta {
		return base, nil
	}

	ops, err := kvstore.GetDeltaLog(lc.store, vid)
	if err != nil {
		return nil, err
	}
	return iterator.ApplyDelta(base, ops), nil
}

// ReadOutNeighborClone is an alias for ReadNeighbor(vid, true): the
// delta-aware neighbor clone of spec.md §4.8.
func (lc *LsmCommunity) ReadOutNeighborClone(vid types.VId) (types.VIdList, error) {
	return lc.ReadNeighbor(vid, true)
}

// ReadInNeighborClone returns every vertex u for which vid is a
// delta-aware out-neighbor of u. There is no reverse index: this scans
// every vertex's out-neighbor list, an O(V+E) operation by contract.
func (lc *LsmCommunity) ReadInNeighborClone(vid types.VId) (types.VIdList, error) {
	n := lc.NumVertices()
	var in types.VIdList
	for u := 0; u < n; u++ {
		neighbors, err := lc.ReadNeighbor(types.VId(u), true)
		if err != nil {
			continue
		}
		for _, v := range neighbors {
			if v == vid {
				in = append(in, types.VId(u))
				break
			}
		}
	}
	return in, nil
}

// ReadAllEdges materializes every delta-aware directed edge in the
// graph, sorted ascending by (src, dst).
func (lc *LsmCommunity) ReadAllEdges() ([]iterator.EdgePair, error) {
	n := lc.NumVertices()
	var edges []iterator.EdgePair
	for u := 0; u < n; u++ {
		neighbors, err := lc.ReadNeighbor(types.VId(u), true)
		if err != nil {
			continue
		}
		for _, v := range neighbors {
			edges = append(edges, iterator.EdgePair{Src: types.VId(u), Dst: v})
		}
	}
	iterator.SortEdges(edges)
	return edges, nil
}

// baseNeighbors returns vid's base (pre-delta) neighbor list, going
// through the giant cache/KV path or the block cache/bucket path
// depending on the vertex's index record.
func (lc *LsmCommunity) baseNeighbors(vid types.VId) (types.VIdList, error) {
	lc.indexMu.RLock()
	item, err := lc.index.Item(vid)
	lc.indexMu.RUnlock()
	if err != nil {
		return nil, err
	}

	if item.IsGiant() {
		return lc.readGiant(vid)
	}
	return lc.readNormal(item)
}

func (lc *LsmCommunity) readGiant(vid types.VId) (types.VIdList, error) {
	if list, ok := lc.giantCache.Get(vid); ok {
		lc.metrics.IncGiantCacheHit()
		return append(types.VIdList(nil), list...), nil
	}
	lc.metrics.IncGiantCacheMiss()

	list, ok, err := kvstore.GetGiantVertex(lc.store, vid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, lsmerr.NewLookup("lsmcommunity: giant vertex %d has no external record", vid)
	}
	lc.giantCache.Set(vid, list)
	return iterator.Neighbors(iterator.NewSliceSource(list)), nil
}

func (lc *LsmCommunity) readNormal(item vertexindex.Item) (types.VIdList, error) {
	vcomm, page, offset, ok := item.AsNormal()
	if !ok {
		return nil, lsmerr.NewFormat("lsmcommunity: expected a Normal vertex record")
	}

	key := vertexindex.NewCacheKey(vcomm, page)
	blk, ok := lc.blockCache.Get(key)
	if ok {
		lc.metrics.IncBlockCacheHit()
	} else {
		lc.metrics.IncBlockCacheMiss()
		bkt, err := lc.bucketFor(vcomm)
		if err != nil {
			return nil, err
		}
		blk, err = bkt.ReadBlock(vcomm, page)
		if err != nil {
			return nil, err
		}
		lc.metrics.IncBucketRead()
		lc.blockCache.Set(key, blk)
	}

	list, ok := blk.NeighborClone(int(offset))
	if !ok {
		return nil, lsmerr.NewLookup("lsmcommunity: in-page offset %d out of range", offset)
	}
	return list, nil
}

// bucketFor returns the opened bucket handle for a virtual community.
func (lc *LsmCommunity) bucketFor(vcomm types.VCommId) (*bucket.Bucket, error) {
	lc.bucketsMu.RLock()
	bkt, ok := lc.buckets[vcomm]
	lc.bucketsMu.RUnlock()
	if !ok {
		return nil, lsmerr.NewLookup("lsmcommunity: no bucket open for virtual community %d", vcomm)
	}
	return bkt, nil
}
