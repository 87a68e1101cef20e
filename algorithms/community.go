// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package algorithms

import "github.com/monacgraph/lsmcommunity/types"

// CommunityDetection returns the precomputed community list: this engine
// reifies the input file's community labels rather than discovering
// them.
func CommunityDetection(communityList [][]types.VId) [][]types.VId {
	return communityList
}

// CommunitySearch returns the members of vid's community, or ok=false if
// vid is out of range.
func CommunitySearch(communityMap []types.CommId, communityList [][]types.VId, vid types.VId) ([]types.VId, bool) {
	if int(vid) >= len(communityMap) {
		return nil, false
	}
	commID := communityMap[vid]
	if int(commID) >= len(communityList) {
		return nil, false
	}
	return communityList[commID], true
}
