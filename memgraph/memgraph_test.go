// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package memgraph

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/monacgraph/lsmcommunity/types"
)

func TestSnapshotOfUnknownVertexIsNil(t *testing.T) {
	g := New()
	require.Nil(t, g.Snapshot(42))
}

func TestAppendAccumulatesInOrder(t *testing.T) {
	g := New()
	g.Append(1, 10)
	g.Append(1, 20)
	g.Append(1, 30)

	got := g.Snapshot(1)
	require.Equal(t, types.VIdList{10, 20, 30}, got)
}

func TestSnapshotReturnsACopyNotAnAlias(t *testing.T) {
	g := New()
	g.Append(1, 10)
	got := g.Snapshot(1)
	got[0] = 999

	again := g.Snapshot(1)
	require.EqualValues(t, 10, again[0], "mutating a snapshot leaked into internal state: %v", again)
}

func TestLenCountsDistinctVertices(t *testing.T) {
	g := New()
	g.Append(1, 10)
	g.Append(2, 20)
	g.Append(1, 30)
	require.Equal(t, 2, g.Len())
}

func TestAppendIsSafeForConcurrentUseAcrossVertices(t *testing.T) {
	g := New()
	var wg sync.WaitGroup
	for v := types.VId(0); v < 50; v++ {
		wg.Add(1)
		go func(v types.VId) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				g.Append(v, types.VId(i))
			}
		}(v)
	}
	wg.Wait()

	require.Equal(t, 50, g.Len())
	for v := types.VId(0); v < 50; v++ {
		require.Len(t, g.Snapshot(v), 20, "vertex %d", v)
	}
}
