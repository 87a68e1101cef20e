// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package algorithms

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/monacgraph/lsmcommunity/types"
)

func TestCommunityDetectionReturnsListUnchanged(t *testing.T) {
	list := [][]types.VId{{0, 1, 2}, {3, 4}}
	got := CommunityDetection(list)
	require.Equal(t, list, got)
}

func TestCommunitySearchReturnsMembersOfOwnCommunity(t *testing.T) {
	communityMap := []types.CommId{0, 0, 1, 1, 1}
	communityList := [][]types.VId{{0, 1}, {2, 3, 4}}

	members, ok := CommunitySearch(communityMap, communityList, 3)
	require.True(t, ok)
	require.Equal(t, []types.VId{2, 3, 4}, members)
}

func TestCommunitySearchRejectsOutOfRangeVertex(t *testing.T) {
	communityMap := []types.CommId{0}
	communityList := [][]types.VId{{0}}
	_, ok := CommunitySearch(communityMap, communityList, 7)
	require.False(t, ok)
}

func TestCommunitySearchRejectsDanglingCommunityID(t *testing.T) {
	communityMap := []types.CommId{5}
	communityList := [][]types.VId{{0}}
	_, ok := CommunitySearch(communityMap, communityList, 0)
	require.False(t, ok)
}
