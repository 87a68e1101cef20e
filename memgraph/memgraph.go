// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package memgraph implements the reserved in-memory mutation buffer
// (spec.md §5, §9): a concurrent map from VId to a lock-guarded neighbor
// list. The read path does not consult it; the source's own read path
// never did either, and the spec preserves that as an open question
// rather than a bug to fix. It exists so a future flush/compaction stage
// has somewhere to accumulate writes before they reach external KV.
package memgraph

import (
	"sync"

	"github.com/monacgraph/lsmcommunity/types"
)

// MemGraph is a concurrent map from VId to a reader/writer-lock-guarded
// neighbor list. A reader always observes either the pre- or
// post-mutation list for a vertex, never a torn one.
type MemGraph struct {
	mu    sync.RWMutex
	lists map[types.VId]*guardedList
}

// guardedList pairs a neighbor list with the lock that protects it.
type guardedList struct {
	mu   sync.RWMutex
	list types.VIdList
}

// New returns an empty MemGraph.
func New() *MemGraph {
	return &MemGraph{lists: make(map[types.VId]*guardedList)}
}

func (g *MemGraph) entry(vid types.VId) *guardedList {
	g.mu.RLock()
	e, ok := g.lists[vid]
	g.mu.RUnlock()
	if ok {
		return e
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if e, ok = g.lists[vid]; ok {
		return e
	}
	e = &guardedList{}
	g.lists[vid] = e
	return e
}

// Snapshot returns a copy of vid's buffered neighbor list, or nil if
// vid has no buffered mutations.
func (g *MemGraph) Snapshot(vid types.VId) types.VIdList {
	g.mu.RLock()
	e, ok := g.lists[vid]
	g.mu.RUnlock()
	if !ok {
		return nil
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(types.VIdList, len(e.list))
	copy(out, e.list)
	return out
}

// Append adds neighbor to vid's buffered list.
func (g *MemGraph) Append(vid, neighbor types.VId) {
	e := g.entry(vid)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.list = append(e.list, neighbor)
}

// Len reports the number of vertices with a buffered entry.
func (g *MemGraph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.lists)
}
