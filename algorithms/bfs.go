// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package algorithms

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
	"github.com/monacgraph/lsmcommunity/types"
)

// BFSEntry is one vertex's discovery record: its hop distance from the
// search's start vertex.
type BFSEntry struct {
	VId  types.VId
	Dist int
}

type bfsQueueItem struct {
	vid  types.VId
	dist int
}

// BFS performs a breadth-first search from start over the base graph,
// ignoring every vertex's delta log: the committed base graph is what
// makes traversal deterministic and repeatable across runs. A caller
// needing delta-aware traversal must build its own loop over
// ReadNeighbor(vid, true). A neighbor read that fails is skipped for
// that vertex and the search continues from what it already discovered.
func BFS(reader Reader, start types.VId) ([]BFSEntry, error) {
	n := reader.NumVertices()
	if int(start) >= n {
		return nil, lsmerr.NewLookup("algorithms: bfs start vertex %d out of range (have %d)", start, n)
	}

	visited := bitset.New(uint(n))
	queue := []bfsQueueItem{{vid: start, dist: 0}}
	visited.Set(uint(start))

	var result []BFSEntry
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		result = append(result, BFSEntry{VId: cur.vid, Dist: cur.dist})

		neighbors, err := reader.ReadNeighbor(cur.vid, false)
		if err != nil {
			continue
		}
		for _, n := range neighbors {
			if visited.Test(uint(n)) {
				continue
			}
			visited.Set(uint(n))
			queue = append(queue, bfsQueueItem{vid: n, dist: cur.dist + 1})
		}
	}
	return result, nil
}
