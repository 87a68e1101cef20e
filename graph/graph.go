// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package graph loads the text graph file format into an in-memory CSR
// representation with per-vertex community labels, the seed the storage
// engine partitions into buckets at build time.
package graph

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
	"github.com/monacgraph/lsmcommunity/types"
)

// CSRGraph is an in-memory Compressed Sparse Row graph: vertex v's
// neighbors live at neighbors[offsets[v]:offsets[v+1]].
type CSRGraph struct {
	numVertices int
	numEdges    int

	offsets   []int
	neighbors types.VIdList

	communityMap  []types.CommId
	maxCommID     types.CommId
	communityList [][]types.VId
}

// NumVertices returns the number of vertices.
func (g *CSRGraph) NumVertices() int { return g.numVertices }

// NumEdges returns the number of edges.
func (g *CSRGraph) NumEdges() int { return g.numEdges }

// CommunityMap returns the per-vertex community assignment.
func (g *CSRGraph) CommunityMap() []types.CommId { return g.communityMap }

// Degree returns the out-degree of vid.
func (g *CSRGraph) Degree(vid types.VId) uint32 {
	return uint32(g.offsets[vid+1] - g.offsets[vid])
}

// NeighborIter returns the out-neighbors of vid as a slice into the
// graph's backing array; callers must not mutate it.
func (g *CSRGraph) NeighborIter(vid types.VId) types.VIdList {
	return g.neighbors[g.offsets[vid]:g.offsets[vid+1]]
}

// ComputeCommunityList groups vertices by community ID into
// communityList, indexed by CommId. Vertices are appended in ascending
// VId order, preserving load order within a community.
func (g *CSRGraph) ComputeCommunityList() {
	communities := make([][]types.VId, g.maxCommID+1)
	for vid, commID := range g.communityMap {
		communities[commID] = append(communities[commID], types.VId(vid))
	}
	g.communityList = communities
}

// CommunityList returns the community structure, computing it on first
// use.
func (g *CSRGraph) CommunityList() [][]types.VId {
	if g.communityList == nil {
		g.ComputeCommunityList()
	}
	return g.communityList
}

// LoadFromFile parses the text graph file at path: a header line
// "t <num_vertices> <num_edges>", vertex lines "v <vid> <label>
// <community_id>" (label unused), and edge lines "e <src> <dst>".
// Blank lines and lines with an unrecognized tag are skipped. A missing or
// malformed header, a "v" or "e" line that fails to parse, and a vertex id
// outside [0, num_vertices) are errors.
func LoadFromFile(path string) (*CSRGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, lsmerr.NewConfig("graph: opening %q: %v", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses the text graph format from r. See LoadFromFile for the
// format.
func Load(r io.Reader) (*CSRGraph, error) {
	const bufSize = 8 * 1024 * 1024
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), bufSize)

	if !scanner.Scan() {
		return nil, lsmerr.NewFormat("graph: empty file")
	}
	numVertices, numEdges, err := parseMetadata(scanner.Text())
	if err != nil {
		return nil, err
	}

	communities := make([]types.CommId, numVertices)
	edgeLists := make([]types.VIdList, numVertices)
	var maxCommID types.CommId

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case 'v':
			if err := parseVertex(line, communities, &maxCommID); err != nil {
				return nil, err
			}
		case 'e':
			if err := parseEdge(line, edgeLists); err != nil {
				return nil, err
			}
		case 't':
			continue
		default:
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, lsmerr.NewIO(err, "reading graph file")
	}

	offsets := make([]int, numVertices+1)
	neighbors := make(types.VIdList, 0, numEdges)
	for vid, list := range edgeLists {
		neighbors = append(neighbors, list...)
		offsets[vid+1] = len(neighbors)
	}

	return &CSRGraph{
		numVertices:  numVertices,
		numEdges:     numEdges,
		offsets:      offsets,
		neighbors:    neighbors,
		communityMap: communities,
		maxCommID:    maxCommID,
	}, nil
}

func parseMetadata(line string) (numVertices, numEdges int, err error) {
	parts := strings.Fields(line)
	if len(parts) < 3 || parts[0] != "t" {
		return 0, 0, lsmerr.NewFormat("graph: invalid metadata line %q", line)
	}
	numVertices, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, lsmerr.NewFormat("graph: invalid vertex count in %q", line)
	}
	numEdges, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, lsmerr.NewFormat("graph: invalid edge count in %q", line)
	}
	return numVertices, numEdges, nil
}

func parseVertex(line string, communities []types.CommId, maxCommID *types.CommId) error {
	parts := strings.Fields(line)
	if len(parts) < 4 || parts[0] != "v" {
		return lsmerr.NewFormat("graph: invalid vertex line %q", line)
	}
	vid, err := strconv.Atoi(parts[1])
	if err != nil {
		return lsmerr.NewFormat("graph: invalid vertex id in %q", line)
	}
	commID, err := strconv.ParseUint(parts[3], 10, 32)
	if err != nil {
		return lsmerr.NewFormat("graph: invalid community id in %q", line)
	}
	if vid < 0 || vid >= len(communities) {
		return lsmerr.NewFormat("graph: vertex id %d out of range", vid)
	}
	if types.CommId(commID) > *maxCommID {
		*maxCommID = types.CommId(commID)
	}
	communities[vid] = types.CommId(commID)
	return nil
}

func parseEdge(line string, edgeLists []types.VIdList) error {
	parts := strings.Fields(line)
	if len(parts) < 3 || parts[0] != "e" {
		return lsmerr.NewFormat("graph: invalid edge line %q", line)
	}
	src, err := strconv.Atoi(parts[1])
	if err != nil {
		return lsmerr.NewFormat("graph: invalid source vertex in %q", line)
	}
	dst, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return lsmerr.NewFormat("graph: invalid target vertex in %q", line)
	}
	if src < 0 || src >= len(edgeLists) {
		return lsmerr.NewFormat("graph: source vertex %d out of range", src)
	}
	edgeLists[src] = append(edgeLists[src], types.VId(dst))
	return nil
}
