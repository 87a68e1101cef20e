// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package algorithms implements the graph-analytic read path: BFS,
// weakly-connected components, and the pure community lookups of
// spec.md §4.11.
package algorithms

import "github.com/monacgraph/lsmcommunity/types"

// Reader is the subset of the storage façade the algorithms need: vertex
// count and base, delta-free neighbor reads.
type Reader interface {
	NumVertices() int
	ReadNeighbor(vid types.VId, withDelta bool) (types.VIdList, error)
}
