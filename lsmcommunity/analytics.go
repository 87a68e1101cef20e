// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package lsmcommunity

import (
	"context"
	"time"

	"github.com/monacgraph/lsmcommunity/algorithms"
	"github.com/monacgraph/lsmcommunity/block"
	"github.com/monacgraph/lsmcommunity/bucket"
	"github.com/monacgraph/lsmcommunity/cache"
	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
	"github.com/monacgraph/lsmcommunity/types"
)

func errBucketNotOpen(vcomm types.VCommId) error {
	return lsmerr.NewLookup("lsmcommunity: no bucket open for virtual community %d", vcomm)
}

// bucketReader dispatches a (vcomm, page) read to the bucket registered
// for that virtual community, satisfying cache.PageReader.
type bucketReader struct {
	buckets map[types.VCommId]*bucket.Bucket
}

func (r bucketReader) ReadBlock(vcomm types.VCommId, page types.PageId) (*block.Block, error) {
	bkt, ok := r.buckets[vcomm]
	if !ok {
		return nil, errBucketNotOpen(vcomm)
	}
	return bkt.ReadBlock(vcomm, page)
}

// WarmUp preloads every Normal vertex's referenced pages into the block
// cache, up to the highest page used by each virtual community.
func (lc *LsmCommunity) WarmUp(ctx context.Context) (int, error) {
	lc.bucketsMu.RLock()
	snapshot := make(map[types.VCommId]*bucket.Bucket, len(lc.buckets))
	for k, v := range lc.buckets {
		snapshot[k] = v
	}
	lc.bucketsMu.RUnlock()

	lc.indexMu.RLock()
	index := lc.index
	lc.indexMu.RUnlock()

	n, err := cache.WarmUp(ctx, index, bucketReader{buckets: snapshot}, lc.blockCache)
	lc.metrics.SetWarmUpBlocks(n)
	lc.logger.Info("warm up complete", "blocks_loaded", n)
	return n, err
}

// BFS runs a breadth-first search from start over the base graph.
func (lc *LsmCommunity) BFS(start types.VId) ([]algorithms.BFSEntry, error) {
	begin := time.Now()
	result, err := algorithms.BFS(lc, start)
	lc.metrics.ObserveBFS(time.Since(begin).Seconds())
	return result, err
}

// WCC computes weakly-connected components over the base graph.
func (lc *LsmCommunity) WCC(ctx context.Context) ([]types.VId, error) {
	begin := time.Now()
	result, err := algorithms.WCC(ctx, lc)
	lc.metrics.ObserveWCC(time.Since(begin).Seconds())
	return result, err
}

// CommunityDetection returns the input graph's precomputed communities.
func (lc *LsmCommunity) CommunityDetection() [][]types.VId {
	lc.indexMu.RLock()
	defer lc.indexMu.RUnlock()
	return algorithms.CommunityDetection(lc.index.CommunityList)
}

// CommunitySearch returns the members of vid's community.
func (lc *LsmCommunity) CommunitySearch(vid types.VId) ([]types.VId, bool) {
	lc.indexMu.RLock()
	defer lc.indexMu.RUnlock()
	return algorithms.CommunitySearch(lc.index.CommunityMap, lc.index.CommunityList, vid)
}
