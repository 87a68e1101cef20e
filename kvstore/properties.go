// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package kvstore

import (
	"encoding/binary"

	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
	"github.com/monacgraph/lsmcommunity/types"
)

// ListVertexPropertyNames scans vertex_properties for every property name
// stored against vid.
func ListVertexPropertyNames(s Store, vid types.VId) ([]string, error) {
	it, err := s.NewIter(vertexPropertyPrefix(vid))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var names []string
	for ok := it.First(); ok; ok = it.Next() {
		name, err := vertexPropertyNameFromKey(it.Key())
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// ListEdgePropertyNames scans edge_properties for every property name
// stored against the (src, dst) edge.
func ListEdgePropertyNames(s Store, src, dst types.VId) ([]string, error) {
	it, err := s.NewIter(edgePropertyPrefix(src, dst))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var names []string
	for ok := it.First(); ok; ok = it.Next() {
		name, err := edgePropertyNameFromKey(it.Key())
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func vertexPropertyNameFromKey(key []byte) (string, error) {
	const headerLen = 1 + 4 + 2
	if len(key) < headerLen {
		return "", lsmerr.NewFormat("kvstore: truncated vertex property key, got %d bytes", len(key))
	}
	nameLen := int(binary.BigEndian.Uint16(key[5:7]))
	if len(key) != headerLen+nameLen {
		return "", lsmerr.NewFormat("kvstore: vertex property key length mismatch: have %d, want %d", len(key), headerLen+nameLen)
	}
	return string(key[headerLen:]), nil
}

func edgePropertyNameFromKey(key []byte) (string, error) {
	const headerLen = 1 + 4 + 4 + 2
	if len(key) < headerLen {
		return "", lsmerr.NewFormat("kvstore: truncated edge property key, got %d bytes", len(key))
	}
	nameLen := int(binary.BigEndian.Uint16(key[9:11]))
	if len(key) != headerLen+nameLen {
		return "", lsmerr.NewFormat("kvstore: edge property key length mismatch: have %d, want %d", len(key), headerLen+nameLen)
	}
	return string(key[headerLen:]), nil
}
