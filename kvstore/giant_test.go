// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package kvstore

import (
	"testing"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/require"

	"github.com/monacgraph/lsmcommunity/types"
)

func TestGiantListEncodeDecodeRoundTrip(t *testing.T) {
	list := types.VIdList{1, 2, 3, 1000000}
	encoded := EncodeGiantList(list)

	decoded, err := DecodeGiantList(encoded)
	require.NoError(t, err)
	require.Equal(t, list, decoded)
}

func TestGiantListEncodeDecodeEmptyList(t *testing.T) {
	encoded := EncodeGiantList(nil)
	decoded, err := DecodeGiantList(encoded)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestDecodeGiantListRejectsTruncatedPayload(t *testing.T) {
	// Valid snappy framing around a payload too short to hold the u32
	// count header DecodeGiantList requires.
	truncated := snappy.Encode(nil, []byte{0, 1})
	_, err := DecodeGiantList(truncated)
	require.Error(t, err, "expected an error decoding a truncated giant-vertex payload")
}
