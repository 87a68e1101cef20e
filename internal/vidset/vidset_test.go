// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package vidset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/monacgraph/lsmcommunity/types"
)

func TestOfAndSortedRoundTrip(t *testing.T) {
	s := Of(3, 1, 2, 1)
	require.Equal(t, 3, s.Len())
	require.Equal(t, types.VIdList{1, 2, 3}, s.Sorted())
}

func TestAddAndRemove(t *testing.T) {
	var s Set
	s.Add(5, 6)
	require.True(t, s.Contains(5))
	require.True(t, s.Contains(6))
	s.Remove(5)
	require.False(t, s.Contains(5))
	require.True(t, s.Contains(6))
}

func TestNewWithNegativeSizeReturnsEmptySet(t *testing.T) {
	s := New(-1)
	require.Zero(t, s.Len())
}

func TestZeroValueSetIsUsableViaPointerReceiverMethods(t *testing.T) {
	var s Set
	s.Add(1)
	require.True(t, s.Contains(1))
}
