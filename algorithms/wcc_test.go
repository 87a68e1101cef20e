// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package algorithms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/monacgraph/lsmcommunity/types"
)

func TestWCCGroupsTwoDisjointComponents(t *testing.T) {
	// Component A: 0-1-2 (as a directed chain, WCC treats edges undirected).
	// Component B: 3-4.
	r := fakeReader{adj: map[types.VId]types.VIdList{
		0: {1},
		1: {2},
		2: {},
		3: {4},
		4: {},
	}}

	result, err := WCC(context.Background(), r)
	require.NoError(t, err)
	require.Equal(t, result[0], result[1])
	require.Equal(t, result[1], result[2])
	require.Equal(t, result[3], result[4])
	require.NotEqual(t, result[0], result[3])
}

func TestWCCSingletonVertexIsItsOwnComponent(t *testing.T) {
	r := fakeReader{adj: map[types.VId]types.VIdList{
		0: {1},
		1: {},
		2: {},
	}}
	result, err := WCC(context.Background(), r)
	require.NoError(t, err)
	require.Equal(t, result[0], result[1])
	require.NotEqual(t, result[0], result[2])
}

func TestWCCEmptyGraphReturnsNil(t *testing.T) {
	r := fakeReader{adj: map[types.VId]types.VIdList{}}
	result, err := WCC(context.Background(), r)
	require.NoError(t, err)
	require.Empty(t, result)
}

func TestWCCShardsManyVerticesConsistently(t *testing.T) {
	// A single chain of 40 vertices must all land in one component
	// regardless of how shardCount splits the collection stage.
	adj := make(map[types.VId]types.VIdList)
	for i := types.VId(0); i < 39; i++ {
		adj[i] = types.VIdList{i + 1}
	}
	adj[39] = types.VIdList{}
	r := fakeReader{adj: adj}

	result, err := WCC(context.Background(), r)
	require.NoError(t, err)
	for i := 1; i < len(result); i++ {
		require.Equal(t, result[0], result[i], "vertex %d diverged", i)
	}
}
