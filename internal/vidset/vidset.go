// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vidset provides a set of types.VId specialized from the general
// generic-set idiom, used by read_out_neighbor_clone's delta overlay
// (iterator.ApplyDelta).
package vidset

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/monacgraph/lsmcommunity/types"
)

const minSetSize = 16

// Set is a set of vertex identifiers.
type Set map[types.VId]struct{}

// Of returns a Set initialized with elts.
func Of(elts ...types.VId) Set {
	s := New(len(elts))
	s.Add(elts...)
	return s
}

// New returns a set with initial capacity size. More or fewer than size
// elements can be added.
func New(size int) Set {
	if size < 0 {
		return Set{}
	}
	return make(map[types.VId]struct{}, size)
}

func (s *Set) resize(size int) {
	if *s == nil {
		if size < minSetSize {
			size = minSetSize
		}
		*s = make(map[types.VId]struct{}, size)
	}
}

// Add inserts all elts into s. No-op for elements already present.
func (s *Set) Add(elts ...types.VId) {
	s.resize(2 * len(elts))
	for _, elt := range elts {
		(*s)[elt] = struct{}{}
	}
}

// Remove deletes elts from s.
func (s *Set) Remove(elts ...types.VId) {
	for _, elt := range elts {
		delete(*s, elt)
	}
}

// Contains reports whether elt is in s.
func (s Set) Contains(elt types.VId) bool {
	_, ok := s[elt]
	return ok
}

// Len returns the number of elements in s.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the elements of s as an ascending slice, the form every
// delta-overlaid neighbor list must be returned in.
func (s Set) Sorted() types.VIdList {
	out := types.VIdList(maps.Keys(s))
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
