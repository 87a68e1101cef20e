// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/monacgraph/lsmcommunity/block"
	"github.com/monacgraph/lsmcommunity/types"
	"github.com/monacgraph/lsmcommunity/vertexindex"
)

func TestBlockCacheSetThenGetHits(t *testing.T) {
	c, err := NewBlockCache(16)
	require.NoError(t, err)
	defer c.Close()

	key := vertexindex.NewCacheKey(1, 2)
	blk := block.New(nil, nil, 64)
	c.Set(key, blk)
	c.Wait()

	got, ok := c.Get(key)
	require.True(t, ok, "expected a cache hit after Set+Wait")
	require.Same(t, blk, got)
}

func TestBlockCacheMissOnUnknownKey(t *testing.T) {
	c, err := NewBlockCache(16)
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Get(vertexindex.NewCacheKey(9, 9))
	require.False(t, ok)
}

func TestNewBlockCacheClampsNonPositiveCapacityToOne(t *testing.T) {
	c, err := NewBlockCache(0)
	require.NoError(t, err)
	defer c.Close()

	key := vertexindex.NewCacheKey(1, 1)
	blk := block.New(nil, nil, 64)
	c.Set(key, blk)
	c.Wait()

	_, ok := c.Get(key)
	require.True(t, ok, "a clamped capacity of 1 should still admit one item")
}

func TestGiantCacheSetThenGetHits(t *testing.T) {
	c, err := NewGiantCache(16)
	require.NoError(t, err)
	defer c.Close()

	list := types.VIdList{1, 2, 3}
	c.Set(5, list)
	c.Wait()

	got, ok := c.Get(5)
	require.True(t, ok, "expected a cache hit after Set+Wait")
	require.Equal(t, list, got)
}
