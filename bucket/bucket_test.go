// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package bucket

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/monacgraph/lsmcommunity/types"
)

func buildTestBucket(t *testing.T) *Bucket {
	t.Helper()
	builder := NewBuilder(256)
	graph := map[types.VId]types.VIdList{
		1: {2, 3},
		2: {3},
		3: {},
		4: {1, 2, 3},
	}
	for vid := types.VId(1); vid <= 4; vid++ {
		builder.Add(vid, graph[vid])
	}

	path := filepath.Join(t.TempDir(), "bucket_0.bkt")
	bkt, err := builder.Build(0, path)
	require.NoError(t, err)
	t.Cleanup(func() { bkt.Close() })
	return bkt
}

func TestBuilderBuildThenOpenRoundTrips(t *testing.T) {
	bkt := buildTestBucket(t)

	list, err := bkt.NeighborsForTest(4)
	require.NoError(t, err)
	require.Equal(t, types.VIdList{1, 2, 3}, list)
}

func TestBucketOpenReopensFromDiskIdentically(t *testing.T) {
	built := buildTestBucket(t)
	path := built.file.Name()

	reopened, err := Open(built.VirtualCommID(), path, true)
	require.NoError(t, err)
	defer reopened.Close()

	list, err := reopened.NeighborsForTest(1)
	require.NoError(t, err)
	require.Equal(t, types.VIdList{2, 3}, list)
}

func TestBucketLookupReportsLocalityWithinVirtualCommunity(t *testing.T) {
	bkt := buildTestBucket(t)
	for vid := types.VId(1); vid <= 4; vid++ {
		page, _, ok := bkt.Lookup(vid)
		require.True(t, ok, "vertex %d not found in bucket", vid)
		require.Equal(t, types.PageId(0), page, "expected every vertex to land on page 0 for this small graph")
	}
	_, _, ok := bkt.Lookup(999)
	require.False(t, ok)
}

func TestBucketMayContainEdgeHasNoFalseNegatives(t *testing.T) {
	bkt := buildTestBucket(t)
	require.True(t, bkt.MayContainEdge(1, 2))
	require.True(t, bkt.MayContainEdge(4, 3))
}
