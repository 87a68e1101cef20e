// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package bucket

import (
	"encoding/binary"
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/cespare/xxhash/v2"

	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
)

// bloom is a fixed-size Bloom filter over 32-bit edge hashes, using the
// Kirsch-Mitzenmacher double-hashing trick so only one real hash per key
// is ever computed.
type bloom struct {
	bits      *bitset.BitSet
	numBits   uint64
	numHashes uint32
}

// bitsPerKey returns the number of bits per key needed to hit the target
// false-positive rate fpr, per the standard Bloom filter sizing formula
// m/n = -ln(p) / (ln 2)^2.
func bitsPerKey(fpr float64) int {
	bpk := -math.Log(fpr) / (math.Ln2 * math.Ln2)
	if bpk < 1 {
		bpk = 1
	}
	return int(math.Ceil(bpk))
}

// adaptiveBitsPerKey implements the graph-size-scaled false-positive rate
// described by the bucket edge bloom: 1% under 10M edges, 3% under 100M,
// else 5%.
func adaptiveBitsPerKey(edgeCount int) int {
	switch {
	case edgeCount < 10_000_000:
		return bitsPerKey(0.01)
	case edgeCount < 100_000_000:
		return bitsPerKey(0.03)
	default:
		return bitsPerKey(0.05)
	}
}

// buildBloomFromKeyHashes constructs a bloom filter sized for len(hashes)
// keys at the given bits-per-key density.
func buildBloomFromKeyHashes(hashes []uint32, bitsPerKey int) *bloom {
	n := len(hashes)
	numBits := uint64(n*bitsPerKey) + 1
	if numBits < 64 {
		numBits = 64
	}
	numHashes := uint32(float64(bitsPerKey) * math.Ln2)
	if numHashes < 1 {
		numHashes = 1
	}
	if numHashes > 30 {
		numHashes = 30
	}

	b := &bloom{bits: bitset.New(uint(numBits)), numBits: numBits, numHashes: numHashes}
	for _, h := range hashes {
		b.addHash(h)
	}
	return b
}

func (b *bloom) addHash(h uint32) {
	h1, h2 := splitHash(h)
	for i := uint32(0); i < b.numHashes; i++ {
		bit := (uint64(h1) + uint64(i)*uint64(h2)) % b.numBits
		b.bits.Set(uint(bit))
	}
}

// mayContainHash reports whether h was possibly inserted, with the
// filter's configured false-positive rate; false is a definite negative.
func (b *bloom) mayContainHash(h uint32) bool {
	h1, h2 := splitHash(h)
	for i := uint32(0); i < b.numHashes; i++ {
		bit := (uint64(h1) + uint64(i)*uint64(h2)) % b.numBits
		if !b.bits.Test(uint(bit)) {
			return false
		}
	}
	return true
}

// splitHash derives two independent 32-bit hashes from one via rotation,
// avoiding a second real hash computation per probe.
func splitHash(h uint32) (h1, h2 uint32) {
	h1 = h
	h2 = (h >> 17) | (h << 15)
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2
}

// hashEdge hashes the (src, dst) pair into a 32-bit bloom key, matching
// the packed (src<<32)|dst key the probe path reconstructs.
func hashEdge(src, dst uint32) uint32 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], (uint64(src)<<32)|uint64(dst))
	return uint32(xxhash.Sum64(buf[:]))
}

// encode serializes the bloom filter as: u32 numBits, u32 numHashes,
// followed by the bit array's raw bytes, big-endian throughout to match
// the rest of the bucket file's byte order.
func (b *bloom) encode() []byte {
	words := b.bits.Bytes()
	out := make([]byte, 8+len(words)*8)
	binary.BigEndian.PutUint32(out[0:4], uint32(b.numBits))
	binary.BigEndian.PutUint32(out[4:8], b.numHashes)
	for i, w := range words {
		binary.BigEndian.PutUint64(out[8+i*8:8+i*8+8], w)
	}
	return out
}

// decodeBloom parses a bloom filter written by encode.
func decodeBloom(data []byte) (*bloom, error) {
	if len(data) < 8 {
		return nil, lsmerr.NewFormat("bucket: truncated bloom header, got %d bytes", len(data))
	}
	numBits := uint64(binary.BigEndian.Uint32(data[0:4]))
	numHashes := binary.BigEndian.Uint32(data[4:8])

	body := data[8:]
	if len(body)%8 != 0 {
		return nil, lsmerr.NewFormat("bucket: bloom body length %d not a multiple of 8", len(body))
	}
	words := make([]uint64, len(body)/8)
	for i := range words {
		words[i] = binary.BigEndian.Uint64(body[i*8 : i*8+8])
	}

	bs := bitset.From(words)
	return &bloom{bits: bs, numBits: numBits, numHashes: numHashes}, nil
}
