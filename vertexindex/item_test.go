// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package vertexindex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/monacgraph/lsmcommunity/types"
)

func TestGiantItemIgnoresOtherBits(t *testing.T) {
	it := Giant()
	require.True(t, it.IsGiant())
	require.False(t, it.IsNormal())
	_, ok := it.ToCacheKey()
	require.False(t, ok, "a Giant item must not produce a cache key")
}

func TestNormalItemPacksAndUnpacksFields(t *testing.T) {
	it := Normal(types.VCommId(1234), types.PageId(56789), types.Offset(42))
	require.True(t, it.IsNormal())
	require.EqualValues(t, 1234, it.VirtualCommID())
	require.EqualValues(t, 56789, it.PageID())
	require.EqualValues(t, 42, it.Offset())
}

func TestItemSettersPatchInPlaceWithoutDisturbingOtherFields(t *testing.T) {
	it := Normal(1, 2, 3)
	it.SetVirtualCommID(99)
	it.SetPageID(100)
	it.SetOffset(7)

	require.EqualValues(t, 99, it.VirtualCommID())
	require.EqualValues(t, 100, it.PageID())
	require.EqualValues(t, 7, it.Offset())
}

func TestCacheKeyMatchesVCommAndPageOfItem(t *testing.T) {
	vcomm := types.VCommId(7)
	page := types.PageId(123456)
	it := Normal(vcomm, page, 999)

	key, ok := it.ToCacheKey()
	require.True(t, ok)
	require.Equal(t, NewCacheKey(vcomm, page), key)
}

func TestAsNormalReportsFalseForGiant(t *testing.T) {
	_, _, _, ok := Giant().AsNormal()
	require.False(t, ok, "AsNormal on a Giant item must report ok=false")
}
