// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package bucket

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBloomEncodeDecodeRoundTrip(t *testing.T) {
	hashes := []uint32{hashEdge(1, 2), hashEdge(3, 4), hashEdge(5, 6)}
	b := buildBloomFromKeyHashes(hashes, adaptiveBitsPerKey(len(hashes)))

	encoded := b.encode()
	decoded, err := decodeBloom(encoded)
	require.NoError(t, err)

	for _, h := range hashes {
		require.True(t, decoded.mayContainHash(h), "decoded bloom filter lost a member (hash %d)", h)
	}
}

func TestAdaptiveBitsPerKeyRelaxesAsEdgeCountGrows(t *testing.T) {
	// Larger graphs tolerate a looser false-positive rate (1% -> 3% -> 5%),
	// so bits-per-key should shrink as the edge count tier climbs.
	small := adaptiveBitsPerKey(1000)
	medium := adaptiveBitsPerKey(50_000_000)
	large := adaptiveBitsPerKey(200_000_000)

	require.Greater(t, small, medium)
	require.Greater(t, medium, large)
}

func TestBloomHasNoFalseNegatives(t *testing.T) {
	var hashes []uint32
	for i := uint32(0); i < 500; i++ {
		hashes = append(hashes, hashEdge(i, i+1))
	}
	b := buildBloomFromKeyHashes(hashes, adaptiveBitsPerKey(len(hashes)))
	for _, h := range hashes {
		require.True(t, b.mayContainHash(h), "false negative for hash %d", h)
	}
}
