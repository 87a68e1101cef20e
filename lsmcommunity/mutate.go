// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package lsmcommunity

import (
	"time"

	"github.com/monacgraph/lsmcommunity/delta"
	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
	"github.com/monacgraph/lsmcommunity/kvstore"
	"github.com/monacgraph/lsmcommunity/types"
	"github.com/monacgraph/lsmcommunity/vertexindex"
)

// propertyName is the single logical property name every property call
// currently addresses, per spec.md's "all" contract.
const propertyName = "all"

// InsertVertex appends a new Giant vertex to the index and persists the
// index synchronously, returning the new vertex's ID. New vertices are
// always Giant: they have no base-graph community membership to place
// them in a bucket.
func (lc *LsmCommunity) InsertVertex() (types.VId, error) {
	lc.indexMu.Lock()
	defer lc.indexMu.Unlock()

	vid := lc.index.AddGiantVertex()
	if err := kvstore.PutGiantVertex(lc.store, vid, nil); err != nil {
		return 0, err
	}
	if err := lc.persistIndexLocked(); err != nil {
		return 0, err
	}
	return vid, nil
}

func (lc *LsmCommunity) persistIndexLocked() error {
	return vertexindex.SerializeToFile(lc.index, vertexIndexPath(lc.workspaceDir))
}

// InsertEdge appends an AddNeighbor delta op for (src, dst), failing if
// either endpoint is absent from the index.
func (lc *LsmCommunity) InsertEdge(src, dst types.VId) error {
	return lc.appendEdgeDelta(src, dst, delta.AddNeighbor)
}

// RemoveEdge appends a RemoveNeighbor delta op for (src, dst), failing if
// either endpoint is absent from the index.
func (lc *LsmCommunity) RemoveEdge(src, dst types.VId) error {
	return lc.appendEdgeDelta(src, dst, delta.RemoveNeighbor)
}

func (lc *LsmCommunity) appendEdgeDelta(src, dst types.VId, opType delta.OpType) error {
	lc.indexMu.RLock()
	_, srcErr := lc.index.Item(src)
	_, dstErr := lc.index.Item(dst)
	lc.indexMu.RUnlock()
	if srcErr != nil {
		return srcErr
	}
	if dstErr != nil {
		return lsmerr.NewLookup("lsmcommunity: edge destination %d not found", dst)
	}

	op := delta.Operation{
		Timestamp: uint64(time.Now().UnixMicro()),
		Neighbor:  dst,
		OpType:    opType,
	}
	if err := kvstore.AppendDelta(lc.store, src, op); err != nil {
		return err
	}
	lc.metrics.AddDeltaOps(1)
	return nil
}

// PutVertexProperty stores value under vid's "all" property.
func (lc *LsmCommunity) PutVertexProperty(vid types.VId, value []byte) error {
	lc.indexMu.RLock()
	_, err := lc.index.Item(vid)
	lc.indexMu.RUnlock()
	if err != nil {
		return err
	}
	return kvstore.PutVertexProperty(lc.store, vid, propertyName, value)
}

// GetVertexProperty retrieves vid's "all" property, or ok=false if none
// has been stored.
func (lc *LsmCommunity) GetVertexProperty(vid types.VId) ([]byte, bool, error) {
	return kvstore.GetVertexProperty(lc.store, vid, propertyName)
}

// PutEdgeProperty stores value under the (src, dst) edge's "all"
// property.
func (lc *LsmCommunity) PutEdgeProperty(src, dst types.VId, value []byte) error {
	return kvstore.PutEdgeProperty(lc.store, src, dst, propertyName, value)
}

// GetEdgeProperty retrieves the (src, dst) edge's "all" property, or
// ok=false if none has been stored.
func (lc *LsmCommunity) GetEdgeProperty(src, dst types.VId) ([]byte, bool, error) {
	return kvstore.GetEdgeProperty(lc.store, src, dst, propertyName)
}

// VertexPropertyNames lists every property name stored against vid.
func (lc *LsmCommunity) VertexPropertyNames(vid types.VId) ([]string, error) {
	return kvstore.ListVertexPropertyNames(lc.store, vid)
}

// EdgePropertyNames lists every property name stored against the
// (src, dst) edge.
func (lc *LsmCommunity) EdgePropertyNames(src, dst types.VId) ([]string, error) {
	return kvstore.ListEdgePropertyNames(lc.store, src, dst)
}
