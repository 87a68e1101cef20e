// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package algorithms

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/monacgraph/lsmcommunity/types"
)

// wccEdge is an undirected pair emitted during WCC's collection stage.
type wccEdge struct {
	u, v types.VId
}

// WCC computes weakly-connected components over the base graph, treating
// every edge as undirected. result[v] == result[u] iff u and v are in
// the same component. Stage one collects every directed (u,v) edge in
// parallel (union-find treats each as undirected), one worker goroutine per shard of vertices; stage two runs a
// sequential union-find with path compression and union by rank; stage
// three computes the final representative for every vertex. A neighbor
// read that fails is skipped for that vertex.
func WCC(ctx context.Context, reader Reader) ([]types.VId, error) {
	n := reader.NumVertices()
	if n == 0 {
		return nil, nil
	}

	shards := shardCount(n)
	edgeLists := make([][]wccEdge, shards)

	g, _ := errgroup.WithContext(ctx)
	shardSize := (n + shards - 1) / shards
	for s := 0; s < shards; s++ {
		s := s
		lo := s * shardSize
		hi := lo + shardSize
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			var local []wccEdge
			for vid := lo; vid < hi; vid++ {
				neighbors, err := reader.ReadNeighbor(types.VId(vid), false)
				if err != nil {
					continue
				}
				for _, nb := range neighbors {
					local = append(local, wccEdge{u: types.VId(vid), v: nb})
				}
			}
			edgeLists[s] = local
			return nil
		})
	}
	_ = g.Wait()

	uf := newUnionFind(n)
	for _, shard := range edgeLists {
		for _, e := range shard {
			uf.union(int(e.u), int(e.v))
		}
	}

	result := make([]types.VId, n)
	for v := 0; v < n; v++ {
		result[v] = types.VId(uf.find(v))
	}
	return result, nil
}

func shardCount(n int) int {
	const maxShards = 16
	if n < maxShards {
		return 1
	}
	return maxShards
}

// unionFind is a weighted union-find with path compression.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent, rank: make([]int, n)}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		u.parent[ra] = rb
	case u.rank[ra] > u.rank[rb]:
		u.parent[rb] = ra
	default:
		u.parent[rb] = ra
		u.rank[ra]++
	}
}
