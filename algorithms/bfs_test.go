// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package algorithms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/monacgraph/lsmcommunity/types"
)

// fakeReader is a fixed adjacency list satisfying Reader.
type fakeReader struct {
	adj     map[types.VId]types.VIdList
	failing map[types.VId]bool
}

func (r fakeReader) NumVertices() int { return len(r.adj) }

func (r fakeReader) ReadNeighbor(vid types.VId, _ bool) (types.VIdList, error) {
	if r.failing[vid] {
		return nil, errors.New("boom")
	}
	return r.adj[vid], nil
}

func TestBFSProducesHopDistances(t *testing.T) {
	// 0 -> 1 -> 2
	//  \-> 3
	r := fakeReader{adj: map[types.VId]types.VIdList{
		0: {1, 3},
		1: {2},
		2: {},
		3: {},
	}}

	entries, err := BFS(r, 0)
	require.NoError(t, err)

	dist := make(map[types.VId]int)
	for _, e := range entries {
		dist[e.VId] = e.Dist
	}
	want := map[types.VId]int{0: 0, 1: 1, 3: 1, 2: 2}
	for vid, d := range want {
		require.Equal(t, d, dist[vid], "vertex %d", vid)
	}
}

func TestBFSRejectsOutOfRangeStart(t *testing.T) {
	r := fakeReader{adj: map[types.VId]types.VIdList{0: {}}}
	_, err := BFS(r, 5)
	require.Error(t, err)
}

func TestBFSSkipsFailingNeighborReadsAndContinues(t *testing.T) {
	r := fakeReader{
		adj:     map[types.VId]types.VIdList{0: {1}, 1: {2}, 2: {}},
		failing: map[types.VId]bool{1: true},
	}
	entries, err := BFS(r, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2, "traversal should stop after the failing read")
}

func TestBFSVisitsEachVertexOnce(t *testing.T) {
	// A diamond: 0 -> 1, 0 -> 2, 1 -> 3, 2 -> 3.
	r := fakeReader{adj: map[types.VId]types.VIdList{
		0: {1, 2},
		1: {3},
		2: {3},
		3: {},
	}}
	entries, err := BFS(r, 0)
	require.NoError(t, err)
	require.Len(t, entries, 4, "vertex 3 should be visited exactly once")
}
