// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package kvstore

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGiantKeyAndDeltaKeyUseDistinctNamespaces(t *testing.T) {
	gk := GiantKey(7)
	dk := DeltaKey(7)
	require.NotEqual(t, gk[0], dk[0], "expected distinct namespace prefixes")
	require.False(t, bytes.Equal(gk, dk), "GiantKey and DeltaKey collided for the same vid")
}

func TestVertexPropertyKeyEncodesNameLength(t *testing.T) {
	key := VertexPropertyKey(3, "color")
	prefix := vertexPropertyPrefix(3)
	require.True(t, bytes.HasPrefix(key, prefix), "VertexPropertyKey(3, \"color\") = %v does not start with prefix %v", key, prefix)
	require.Len(t, key, len(prefix)+2+len("color"))
}

func TestEdgePropertyKeyEncodesNameLength(t *testing.T) {
	key := EdgePropertyKey(1, 2, "weight")
	prefix := edgePropertyPrefix(1, 2)
	require.True(t, bytes.HasPrefix(key, prefix), "EdgePropertyKey(1, 2, \"weight\") = %v does not start with prefix %v", key, prefix)
}

func TestPrefixUpperBoundExcludesPrefixSiblings(t *testing.T) {
	prefix := []byte{0x03, 0x00, 0x00, 0x00, 0x05}
	upper := prefixUpperBound(prefix)

	withinPrefix := append(append([]byte(nil), prefix...), 0xFF)
	require.Less(t, bytes.Compare(withinPrefix, upper), 0, "key %v sharing the prefix must sort before upper bound %v", withinPrefix, upper)

	sibling := []byte{0x03, 0x00, 0x00, 0x00, 0x06}
	require.GreaterOrEqual(t, bytes.Compare(sibling, upper), 0, "sibling key %v should not sort before upper bound %v", sibling, upper)
}

func TestPrefixUpperBoundAllOnesIsUnbounded(t *testing.T) {
	got := prefixUpperBound([]byte{0xff, 0xff})
	require.Nil(t, got, "expected nil (unbounded) upper bound for an all-0xff prefix")
}
