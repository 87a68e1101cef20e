// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package iterator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/monacgraph/lsmcommunity/delta"
	"github.com/monacgraph/lsmcommunity/types"
)

func TestApplyDeltaAddsAndRemovesThenSortsAscending(t *testing.T) {
	base := types.VIdList{5, 10, 15}
	ops := []delta.Operation{
		{Timestamp: 1, Neighbor: 20, OpType: delta.AddNeighbor},
		{Timestamp: 2, Neighbor: 10, OpType: delta.RemoveNeighbor},
	}

	got := ApplyDelta(base, ops)
	require.Equal(t, types.VIdList{5, 15, 20}, got)
}

func TestApplyDeltaIgnoresUnrecognizedOpType(t *testing.T) {
	base := types.VIdList{1}
	ops := []delta.Operation{{Timestamp: 1, Neighbor: 2, OpType: delta.OpType(99)}}

	got := ApplyDelta(base, ops)
	require.Equal(t, types.VIdList{1}, got)
}

func TestSliceSourceYieldsInOrderThenExhausts(t *testing.T) {
	src := NewSliceSource(types.VIdList{1, 2, 3})
	got := Neighbors(src)
	require.Equal(t, types.VIdList{1, 2, 3}, got)
	_, ok := src.Next()
	require.False(t, ok, "expected source to be exhausted")
}

func TestSortEdgesOrdersBySrcThenDst(t *testing.T) {
	pairs := []EdgePair{{Src: 2, Dst: 1}, {Src: 1, Dst: 5}, {Src: 1, Dst: 2}}
	SortEdges(pairs)
	want := []EdgePair{{Src: 1, Dst: 2}, {Src: 1, Dst: 5}, {Src: 2, Dst: 1}}
	require.Equal(t, want, pairs)
}
