// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package iterator implements the unified neighbor iterator of spec.md
// §4.8: a base-CSR or giant-vertex source, optionally overlaid with a
// vertex's delta log.
package iterator

import (
	"sort"

	"github.com/monacgraph/lsmcommunity/delta"
	"github.com/monacgraph/lsmcommunity/internal/vidset"
	"github.com/monacgraph/lsmcommunity/types"
)

// Source yields a vertex's base, pre-delta neighbor sequence: either a
// block's NeighborIterator or a materialized giant-vertex list.
type Source interface {
	Next() (types.VId, bool)
}

// sliceSource adapts a types.VIdList (e.g. a cached giant-vertex list)
// to Source.
type sliceSource struct {
	list types.VIdList
	idx  int
}

// NewSliceSource wraps list as a Source, used for the giant-vertex path.
func NewSliceSource(list types.VIdList) Source {
	return &sliceSource{list: list}
}

func (s *sliceSource) Next() (types.VId, bool) {
	if s.idx >= len(s.list) {
		return 0, false
	}
	v := s.list[s.idx]
	s.idx++
	return v, true
}

// Neighbors materializes every element of src, in source order.
func Neighbors(src Source) types.VIdList {
	var out types.VIdList
	for {
		v, ok := src.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

// ApplyDelta overlays ops, in timestamp order, onto the base neighbor
// list and returns the result sorted ascending: spec.md §4.8's
// read_out_neighbor_clone contract. AddNeighbor inserts, RemoveNeighbor
// erases; an unrecognized op type is ignored.
func ApplyDelta(base types.VIdList, ops []delta.Operation) types.VIdList {
	set := vidset.Of(base...)
	for _, op := range delta.FromOps(ops).Ops {
		switch op.OpType {
		case delta.AddNeighbor:
			set.Add(op.Neighbor)
		case delta.RemoveNeighbor:
			set.Remove(op.Neighbor)
		}
	}
	return set.Sorted()
}

// EdgePair is a single directed (src, dst) edge.
type EdgePair struct {
	Src, Dst types.VId
}

// SortEdges sorts pairs ascending by (src, dst), for deterministic
// output where the caller needs it.
func SortEdges(pairs []EdgePair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Src != pairs[j].Src {
			return pairs[i].Src < pairs[j].Src
		}
		return pairs[i].Dst < pairs[j].Dst
	})
}
