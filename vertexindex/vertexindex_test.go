// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package vertexindex

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/monacgraph/lsmcommunity/graph"
	"github.com/monacgraph/lsmcommunity/types"
)

func TestPartitionCommunitiesGiantsEachGetOwnVComm(t *testing.T) {
	sizes := []int{100, 200, 50} // boundary 150: community 1 is giant
	result := partitionCommunities(sizes, 150)

	require.NotEqual(t, result[0], result[1], "giant community 1 must not share a virtual community: %v", result)
	require.NotEqual(t, result[2], result[1], "giant community 1 must not share a virtual community: %v", result)
}

func TestPartitionCommunitiesPacksSmallCommunitiesFirstFit(t *testing.T) {
	// Three small communities of size 40 each, boundary 100: the first two
	// fit together (80 <= 100), the third overflows into a new bucket.
	sizes := []int{40, 40, 40}
	result := partitionCommunities(sizes, 100)

	require.Equal(t, result[0], result[1], "communities 0 and 1 should pack into the same virtual community, got %v", result)
	require.NotEqual(t, result[0], result[2], "community 2 should overflow into a new virtual community")
}

func TestPartitionCommunitiesIsDeterministicAcrossRuns(t *testing.T) {
	sizes := []int{10, 0, 30, 5, 1000, 2}
	a := partitionCommunities(sizes, 50)
	b := partitionCommunities(sizes, 50)
	require.Equal(t, a, b, "partitioning is not deterministic")
}

func TestBuildFromGraphSplitsGiantsByDegree(t *testing.T) {
	// A star graph: vertex 0 has high degree (giant), the rest are leaves.
	var sb strings.Builder
	const leaves = 5
	sb.WriteString("t 6 5\n")
	for i := 0; i < 6; i++ {
		sb.WriteString("v ")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(" 0 0\n")
	}
	for i := 1; i <= leaves; i++ {
		sb.WriteString("e 0 ")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString("\n")
	}

	g, err := graph.Load(strings.NewReader(sb.String()))
	require.NoError(t, err)

	index, giants := BuildFromGraph(g, 3, 1<<20)
	require.Equal(t, types.VIdList{0}, giants)
	for vid := types.VId(1); vid <= leaves; vid++ {
		require.True(t, index.VertexArray[vid].IsNormal(), "leaf vertex %d should be Normal", vid)
	}
}

func TestSerializeDeserializeFileRoundTrips(t *testing.T) {
	ix := &Index{
		GiantVertexBoundary:    64,
		GiantCommunityBoundary: 1 << 20,
		VertexArray:            []Item{Normal(1, 2, 3), Giant(), Normal(4, 5, 6)},
		CommunityMap:           []types.CommId{0, 1, 0},
		CommunityList:          [][]types.VId{{0, 2}, {1}},
		VertexDegree:           []uint32{2, 0, 1},
	}

	path := filepath.Join(t.TempDir(), "vertex_index.bin.zst")
	require.NoError(t, SerializeToFile(ix, path))

	got, err := DeserializeFromFile(path)
	require.NoError(t, err)
	require.Equal(t, ix.GiantVertexBoundary, got.GiantVertexBoundary)
	require.Equal(t, ix.GiantCommunityBoundary, got.GiantCommunityBoundary)
	require.Equal(t, ix.VertexArray, got.VertexArray)
	require.Equal(t, ix.VertexDegree, got.VertexDegree)
}

func TestDeserializeFromFileRejectsMissingPath(t *testing.T) {
	_, err := DeserializeFromFile(filepath.Join(t.TempDir(), "does-not-exist.bin.zst"))
	require.Error(t, err, "expected an error opening a missing vertex index file")
}
