// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package cache

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/monacgraph/lsmcommunity/block"
	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
	"github.com/monacgraph/lsmcommunity/types"
	"github.com/monacgraph/lsmcommunity/vertexindex"
)

// PageReader reads a single decoded page from a virtual community's
// bucket. Satisfied by bucket.Bucket (for its own virtual community) and
// by the lsmcommunity façade's reader that dispatches across every open
// bucket.
type PageReader interface {
	ReadBlock(vcomm types.VCommId, page types.PageId) (*block.Block, error)
}

// WarmUp scans every Normal vertex's (vcomm, page) pair, computes the
// highest page referenced per virtual community, and loads pages
// [0..=max_page] of every such community into blockCache in parallel.
// Per-page load failures are collected and do not abort the sweep;
// WarmUp returns the number of blocks it loaded and the aggregate error,
// if any, after every page has been attempted.
func WarmUp(ctx context.Context, ix *vertexindex.Index, reader PageReader, blockCache *BlockCache) (int, error) {
	maxPage := make(map[types.VCommId]types.PageId)
	for _, item := range ix.VertexArray {
		if !item.IsNormal() {
			continue
		}
		vcomm, page, _, _ := item.AsNormal()
		if cur, ok := maxPage[vcomm]; !ok || page > cur {
			maxPage[vcomm] = page
		}
	}

	g, _ := errgroup.WithContext(ctx)
	var errs lsmerr.Errs
	var loaded int64

	for vcomm, last := range maxPage {
		vcomm, last := vcomm, last
		for page := types.PageId(0); page <= last; page++ {
			page := page
			g.Go(func() error {
				key := vertexindex.NewCacheKey(vcomm, page)
				if _, ok := blockCache.Get(key); ok {
					return nil
				}
				blk, err := reader.ReadBlock(vcomm, page)
				if err != nil {
					errs.Add(err)
					return nil
				}
				blockCache.Set(key, blk)
				atomic.AddInt64(&loaded, 1)
				return nil
			})
		}
	}

	_ = g.Wait()
	blockCache.Wait()
	return int(loaded), errs.Err()
}
