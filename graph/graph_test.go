// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/monacgraph/lsmcommunity/types"
)

func TestLoadParsesVerticesAndEdges(t *testing.T) {
	input := "t 4 3\n" +
		"v 0 0 10\n" +
		"v 1 0 10\n" +
		"v 2 0 20\n" +
		"v 3 0 20\n" +
		"e 0 1\n" +
		"e 0 2\n" +
		"e 2 3\n"

	g, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 4, g.NumVertices())
	require.Equal(t, 3, g.NumEdges())
	require.Equal(t, types.VIdList{1, 2}, g.NeighborIter(0))
	require.Equal(t, uint32(0), g.Degree(3))
}

func TestLoadAssignsCommunityLabels(t *testing.T) {
	input := "t 3 0\n" +
		"v 0 0 5\n" +
		"v 1 0 5\n" +
		"v 2 0 9\n"

	g, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	cm := g.CommunityMap()
	require.Equal(t, types.CommId(5), cm[0])
	require.Equal(t, types.CommId(5), cm[1])
	require.Equal(t, types.CommId(9), cm[2])
}

func TestComputeCommunityListGroupsInAscendingVIdOrder(t *testing.T) {
	input := "t 4 0\n" +
		"v 0 0 1\n" +
		"v 1 0 0\n" +
		"v 2 0 1\n" +
		"v 3 0 0\n"

	g, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	list := g.CommunityList()
	want := map[types.CommId][]types.VId{0: {1, 3}, 1: {0, 2}}
	for comm, members := range want {
		require.Equal(t, members, list[comm], "community %d", comm)
	}
}

func TestLoadSkipsBlankAndUnrecognizedLines(t *testing.T) {
	input := "t 2 1\n" +
		"\n" +
		"x garbage line\n" +
		"v 0 0 0\n" +
		"v 1 0 0\n" +
		"e 0 1\n"

	g, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, g.NumVertices())
	require.Equal(t, types.VIdList{1}, g.NeighborIter(0))
}

func TestLoadRejectsEmptyInput(t *testing.T) {
	_, err := Load(strings.NewReader(""))
	require.Error(t, err, "expected an error for empty input")
}

func TestLoadRejectsMalformedHeader(t *testing.T) {
	_, err := Load(strings.NewReader("not a header\n"))
	require.Error(t, err, "expected an error for a malformed header line")
}

func TestLoadRejectsOutOfRangeVertexID(t *testing.T) {
	input := "t 2 0\nv 5 0 0\n"
	_, err := Load(strings.NewReader(input))
	require.Error(t, err, "expected an error for an out-of-range vertex id")
}
