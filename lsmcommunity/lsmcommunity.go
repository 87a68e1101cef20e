// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lsmcommunity is the public façade of spec.md §4.10: open/
// recover, vertex and edge mutation, neighbor and edge reads, warm-up,
// and the graph-analytic operations of §4.11.
package lsmcommunity

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/monacgraph/lsmcommunity/bucket"
	"github.com/monacgraph/lsmcommunity/cache"
	"github.com/monacgraph/lsmcommunity/config"
	"github.com/monacgraph/lsmcommunity/graph"
	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
	"github.com/monacgraph/lsmcommunity/internal/log"
	"github.com/monacgraph/lsmcommunity/kvstore"
	"github.com/monacgraph/lsmcommunity/memgraph"
	"github.com/monacgraph/lsmcommunity/metrics"
	"github.com/monacgraph/lsmcommunity/types"
	"github.com/monacgraph/lsmcommunity/vertexindex"
)

// bucketFilePattern matches a virtual community's bucket filename,
// capturing its VCommId.
var bucketFilePattern = regexp.MustCompile(`^bucket_(\d+)\.bkt$`)

// LsmCommunity is a single graph's open storage engine handle.
type LsmCommunity struct {
	opts         config.Options
	workspaceDir string

	// indexMu guards index: readers of a query must pin the index for the
	// duration of a neighbor fetch, since the bucket lookup and
	// block-cache key both derive from the same record (spec.md §5).
	indexMu sync.RWMutex
	index   *vertexindex.Index

	bucketsMu sync.RWMutex
	buckets   map[types.VCommId]*bucket.Bucket

	blockCache *cache.BlockCache
	giantCache *cache.GiantCache
	store      kvstore.Store
	metrics    *metrics.Metrics
	logger     log.Logger

	// memGraph is reserved: the read path never consults it (spec.md §9).
	memGraph *memgraph.MemGraph
}

func workspaceDir(opts config.Options) string {
	return filepath.Join(opts.WorkSpaceDir, opts.GraphName)
}

func vertexIndexPath(dir string) string { return filepath.Join(dir, "vertex_index.bin.zst") }
func externalDBPath(dir string) string  { return filepath.Join(dir, "external_db") }
func bucketPath(dir string, vcomm types.VCommId) string {
	return filepath.Join(dir, fmt.Sprintf("bucket_%d.bkt", vcomm))
}

// graphFilePath is where Open looks for the initial text graph when no
// workspace exists yet to recover from.
func graphFilePath(graphName string) string {
	return filepath.Join("data", graphName+".graph")
}

// Open opens graphName's workspace under opts.WorkSpaceDir, recovering
// from disk if a vertex index and at least one bucket file are present;
// otherwise it builds the engine from the configured text graph file and
// persists the result. m and logger may be nil, in which case metrics
// and logging are disabled.
func Open(opts config.Options, m *metrics.Metrics, logger log.Logger) (*LsmCommunity, error) {
	if m == nil {
		m = metrics.NewNoOp()
	}
	if logger == nil {
		logger = log.NewNoOp()
	}
	dir := workspaceDir(opts)

	blockCache, err := cache.NewBlockCache(opts.BlockCacheCapacity)
	if err != nil {
		return nil, err
	}
	giantCache, err := cache.NewGiantCache(opts.GiantCacheCapacity)
	if err != nil {
		return nil, err
	}

	store, err := kvstore.OpenPebbleStore(externalDBPath(dir), m.IncDeltaMerge)
	if err != nil {
		return nil, err
	}

	lc := &LsmCommunity{
		opts:         opts,
		workspaceDir: dir,
		buckets:      make(map[types.VCommId]*bucket.Bucket),
		blockCache:   blockCache,
		giantCache:   giantCache,
		store:        store,
		metrics:      m,
		logger:       logger,
		memGraph:     memgraph.New(),
	}

	if canRecover(dir) {
		lc.logger.Info("recovering workspace", "dir", dir)
		if err := lc.recover(dir); err != nil {
			store.Close()
			return nil, err
		}
		lc.logger.Info("recovered workspace", "vertices", lc.VertexCount(), "buckets", len(lc.buckets))
		return lc, nil
	}

	lc.logger.Info("building workspace from graph file", "dir", dir, "graph", opts.GraphName)
	if err := lc.build(opts, dir); err != nil {
		store.Close()
		return nil, err
	}
	lc.logger.Info("built workspace", "vertices", lc.VertexCount(), "buckets", len(lc.buckets))
	return lc, nil
}

// canRecover reports whether dir holds a vertex index and at least one
// bucket file, the recovery trigger of spec.md §6.6.
func canRecover(dir string) bool {
	if _, err := os.Stat(vertexIndexPath(dir)); err != nil {
		return false
	}
	matches, err := filepath.Glob(filepath.Join(dir, "bucket_*.bkt"))
	return err == nil && len(matches) > 0
}

func (lc *LsmCommunity) recover(dir string) error {
	index, err := vertexindex.DeserializeFromFile(vertexIndexPath(dir))
	if err != nil {
		return err
	}
	lc.index = index

	entries, err := os.ReadDir(dir)
	if err != nil {
		return lsmerr.NewIO(err, "reading workspace directory %q", dir)
	}
	for _, entry := range entries {
		m := bucketFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		id, err := strconv.ParseUint(m[1], 10, 16)
		if err != nil {
			return lsmerr.NewFormat("lsmcommunity: malformed bucket filename %q", entry.Name())
		}
		vcomm := types.VCommId(id)
		bkt, err := bucket.Open(vcomm, filepath.Join(dir, entry.Name()), false)
		if err != nil {
			return err
		}
		lc.buckets[vcomm] = bkt
	}
	return nil
}

func (lc *LsmCommunity) build(opts config.Options, dir string) error {
	g, err := graph.LoadFromFile(graphFilePath(opts.GraphName))
	if err != nil {
		return err
	}

	index, giants := vertexindex.BuildFromGraph(g, opts.GiantVertexBoundary, opts.MinBucketSize)
	lc.index = index

	for _, vid := range giants {
		list := append(types.VIdList(nil), g.NeighborIter(vid)...)
		if err := kvstore.PutGiantVertex(lc.store, vid, list); err != nil {
			return err
		}
	}

	vcommMembers := make(map[types.VCommId]types.VIdList)
	for vid := 0; vid < g.NumVertices(); vid++ {
		item := index.VertexArray[vid]
		if !item.IsNormal() {
			continue
		}
		vcomm := item.VirtualCommID()
		vcommMembers[vcomm] = append(vcommMembers[vcomm], types.VId(vid))
	}

	vcomms := make([]types.VCommId, 0, len(vcommMembers))
	for vcomm := range vcommMembers {
		vcomms = append(vcomms, vcomm)
	}
	sort.Slice(vcomms, func(i, j int) bool { return vcomms[i] < vcomms[j] })

	for _, vcomm := range vcomms {
		builder := bucket.NewBuilder(opts.BlockSize)
		for _, vid := range vcommMembers[vcomm] {
			builder.Add(vid, g.NeighborIter(vid))
		}
		path := bucketPath(dir, vcomm)
		bkt, err := builder.Build(vcomm, path)
		if err != nil {
			return err
		}
		if info, statErr := os.Stat(path); statErr == nil {
			lc.logger.Info("built bucket",
				"vcomm", vcomm,
				"vertices", len(vcommMembers[vcomm]),
				"size", humanize.Bytes(uint64(info.Size())),
			)
		}
		for _, vm := range bkt.VertexMetas() {
			if err := index.SetPageID(vm.VertexID, vm.PageID); err != nil {
				return err
			}
			if err := index.SetOffset(vm.VertexID, vm.OffsetInner); err != nil {
				return err
			}
		}
		lc.buckets[vcomm] = bkt
	}

	if err := vertexindex.SerializeToFile(index, vertexIndexPath(dir)); err != nil {
		return err
	}
	return nil
}

// VertexCount returns the number of vertices currently in the index.
func (lc *LsmCommunity) VertexCount() int {
	lc.indexMu.RLock()
	defer lc.indexMu.RUnlock()
	return len(lc.index.VertexArray)
}

// Close releases the engine's caches and KV store. Open buckets are
// closed as well.
func (lc *LsmCommunity) Close() error {
	lc.blockCache.Close()
	lc.giantCache.Close()

	var errs lsmerr.Errs
	lc.bucketsMu.Lock()
	for _, bkt := range lc.buckets {
		errs.Add(bkt.Close())
	}
	lc.bucketsMu.Unlock()

	errs.Add(lc.store.Close())
	return errs.Err()
}
