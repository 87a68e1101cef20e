// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package types defines the dense identifiers shared by every layer of the
// storage engine: vertices, input communities, virtual communities, pages,
// and in-page offsets.
package types

import "golang.org/x/exp/constraints"

// VId is a dense vertex identifier assigned monotonically at load or
// insert_vertex time. IDs are never reused.
type VId uint32

// CommId is the community label carried by the input graph file.
type CommId uint32

// VCommId is a virtual community identifier produced by the partitioner.
// It fits in 15 bits per the vertex-index packed layout.
type VCommId uint16

// PageId identifies a block within a bucket file.
type PageId uint32

// Offset is an in-page vertex index (position within a block's vertex
// table), not a byte offset.
type Offset uint16

// VIdList is a materialized, ordered list of vertex identifiers, used for
// giant-vertex neighbor lists and clone-style query results.
type VIdList []VId

// MaxVCommId is the largest value representable in the 15-bit
// virtual_comm_id field of a packed VertexIndexItem.
const MaxVCommId = 1<<15 - 1

// Number is any type usable in a size/capacity/boundary computation.
type Number interface {
	constraints.Integer | constraints.Float
}

// ClampMin returns min if v is below it, v otherwise.
func ClampMin[N Number](v, min N) N {
	if v < min {
		return min
	}
	return v
}
