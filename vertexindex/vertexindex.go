// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package vertexindex

import (
	"encoding/gob"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/zstd"

	"github.com/monacgraph/lsmcommunity/graph"
	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
	"github.com/monacgraph/lsmcommunity/types"
)

// bytesPerEdgeEntry is the packed byte cost of one (dest VId) + implicit
// vertex-table entry contribution used when estimating a community's
// on-disk size: (deg(v)+1) * 4, per §3.
const bytesPerEdgeEntry = 4

// Index maps every vertex to either its Giant slot or its (virtual
// community, page, offset) location, and owns the community
// partitioning computed at build time.
type Index struct {
	GiantVertexBoundary    int
	GiantCommunityBoundary int

	VertexArray   []Item
	CommunityMap  []types.CommId
	CommunityList [][]types.VId
	VertexDegree  []uint32
}

// AddGiantVertex appends a Giant record and a new singleton community,
// returning the new VId. Callers must persist the index afterwards.
func (ix *Index) AddGiantVertex() types.VId {
	ix.VertexArray = append(ix.VertexArray, Giant())
	newID := types.VId(len(ix.VertexArray) - 1)
	ix.CommunityList = append(ix.CommunityList, []types.VId{newID})
	ix.CommunityMap = append(ix.CommunityMap, types.CommId(len(ix.CommunityList)-1))
	ix.VertexDegree = append(ix.VertexDegree, 0)
	return newID
}

// Item returns the packed record for vid.
func (ix *Index) Item(vid types.VId) (Item, error) {
	if int(vid) >= len(ix.VertexArray) {
		return 0, lsmerr.NewLookup("vertexindex: vid %d out of range (have %d)", vid, len(ix.VertexArray))
	}
	return ix.VertexArray[vid], nil
}

// IsGiant reports whether vid is Giant.
func (ix *Index) IsGiant(vid types.VId) (bool, error) {
	it, err := ix.Item(vid)
	if err != nil {
		return false, err
	}
	return it.IsGiant(), nil
}

// SetPageID patches the page_id of a Normal vertex's record, used while
// building buckets to fill in the final location.
func (ix *Index) SetPageID(vid types.VId, page types.PageId) error {
	it, err := ix.Item(vid)
	if err != nil {
		return err
	}
	it.SetPageID(page)
	ix.VertexArray[vid] = it
	return nil
}

// SetOffset patches the offset of a Normal vertex's record.
func (ix *Index) SetOffset(vid types.VId, offset types.Offset) error {
	it, err := ix.Item(vid)
	if err != nil {
		return err
	}
	it.SetOffset(offset)
	ix.VertexArray[vid] = it
	return nil
}

// GetVirtualCommunityList returns, for diagnostic or testing use only,
// the inverse mapping from virtual community ID to its member vertex
// IDs (Normal vertices only).
func (ix *Index) GetVirtualCommunityList() [][]types.VId {
	var maxVComm types.VCommId
	any := false
	for _, it := range ix.VertexArray {
		if it.IsNormal() {
			if v := it.VirtualCommID(); !any || v > maxVComm {
				maxVComm = v
				any = true
			}
		}
	}
	if !any {
		return nil
	}
	out := make([][]types.VId, maxVComm+1)
	for vid, it := range ix.VertexArray {
		if it.IsNormal() {
			v := it.VirtualCommID()
			out[v] = append(out[v], types.VId(vid))
		}
	}
	return out
}

// BuildFromGraph constructs an Index from g, splitting vertices into
// Giant and Normal by degree, and partitioning Normal vertices'
// communities into virtual communities bounded by
// giantCommunityBoundary. Returns the Index and the list of Giant VIds
// the caller must materialize in external KV.
func BuildFromGraph(g *graph.CSRGraph, giantVertexBoundary, giantCommunityBoundary int) (*Index, types.VIdList) {
	numVertices := g.NumVertices()
	communityList := g.CommunityList()
	numCommunities := len(communityList)

	vertexDegree := make([]uint32, numVertices)
	vertexArray := make([]Item, numVertices)
	var giantVertices types.VIdList
	communitySizes := make([]int, numCommunities)

	for vid := 0; vid < numVertices; vid++ {
		degree := g.Degree(types.VId(vid))
		vertexDegree[vid] = degree
		commID := int(g.CommunityMap()[vid])

		if int(degree) >= giantVertexBoundary {
			giantVertices = append(giantVertices, types.VId(vid))
			vertexArray[vid] = Giant()
		} else {
			communitySizes[commID] += (int(degree) + 1) * bytesPerEdgeEntry
			vertexArray[vid] = Normal(0, 0, 0)
		}
	}

	communityToVirtual := partitionCommunities(communitySizes, giantCommunityBoundary)

	for vid := 0; vid < numVertices; vid++ {
		if vertexArray[vid].IsNormal() {
			commID := int(g.CommunityMap()[vid])
			vertexArray[vid].SetVirtualCommID(communityToVirtual[commID])
		}
	}

	return &Index{
		GiantVertexBoundary:    giantVertexBoundary,
		GiantCommunityBoundary: giantCommunityBoundary,
		VertexArray:            vertexArray,
		CommunityMap:           append([]types.CommId(nil), g.CommunityMap()...),
		CommunityList:          communityList,
		VertexDegree:           vertexDegree,
	}, giantVertices
}

// partitionCommunities implements §4.9: giant communities each get a
// fresh VCommId; small communities are packed first-fit in ascending
// CommId order, flushing the running bucket before it would exceed
// boundary. Iteration order is the only source of determinism and must
// not be reordered.
func partitionCommunities(communitySizes []int, boundary int) []types.VCommId {
	communityToVirtual := make([]types.VCommId, len(communitySizes))
	var nextVComm types.VCommId

	var giant, small []int
	for commID, size := range communitySizes {
		switch {
		case size >= boundary:
			giant = append(giant, commID)
		case size > 0:
			small = append(small, commID)
		}
	}
	sort.Ints(giant)
	sort.Ints(small)

	for _, commID := range giant {
		communityToVirtual[commID] = nextVComm
		nextVComm++
	}

	var bucketSize int
	var bucketCommunities []int
	for _, commID := range small {
		size := communitySizes[commID]
		if bucketSize+size > boundary && len(bucketCommunities) > 0 {
			for _, c := range bucketCommunities {
				communityToVirtual[c] = nextVComm
			}
			nextVComm++
			bucketSize = 0
			bucketCommunities = bucketCommunities[:0]
		}
		bucketCommunities = append(bucketCommunities, commID)
		bucketSize += size
	}
	if len(bucketCommunities) > 0 {
		for _, c := range bucketCommunities {
			communityToVirtual[c] = nextVComm
		}
	}

	return communityToVirtual
}

// gobImage is the on-disk shape of an Index, serialized with gob since
// the format need only round-trip within this engine (no cross-language
// compatibility requirement, unlike the wire formats in block/delta).
type gobImage struct {
	GiantVertexBoundary    int
	GiantCommunityBoundary int
	VertexArray            []uint64
	CommunityMap           []types.CommId
	CommunityList          [][]types.VId
	VertexDegree           []uint32
}

func (ix *Index) toImage() gobImage {
	arr := make([]uint64, len(ix.VertexArray))
	for i, it := range ix.VertexArray {
		arr[i] = uint64(it)
	}
	return gobImage{
		GiantVertexBoundary:    ix.GiantVertexBoundary,
		GiantCommunityBoundary: ix.GiantCommunityBoundary,
		VertexArray:            arr,
		CommunityMap:           ix.CommunityMap,
		CommunityList:          ix.CommunityList,
		VertexDegree:           ix.VertexDegree,
	}
}

func fromImage(img gobImage) *Index {
	arr := make([]Item, len(img.VertexArray))
	for i, v := range img.VertexArray {
		arr[i] = Item(v)
	}
	return &Index{
		GiantVertexBoundary:    img.GiantVertexBoundary,
		GiantCommunityBoundary: img.GiantCommunityBoundary,
		VertexArray:            arr,
		CommunityMap:           img.CommunityMap,
		CommunityList:          img.CommunityList,
		VertexDegree:           img.VertexDegree,
	}
}

// SerializeToFile writes ix to path as a zstd-compressed gob stream,
// creating parent directories as needed and replacing any existing file
// atomically (write to a temp file, then rename).
func SerializeToFile(ix *Index, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return lsmerr.NewIO(err, "creating vertex index directory %q", dir)
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return lsmerr.NewIO(err, "creating vertex index file %q", tmp)
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return lsmerr.WithKind(err, lsmerr.IO)
	}

	if err := gob.NewEncoder(enc).Encode(ix.toImage()); err != nil {
		enc.Close()
		f.Close()
		os.Remove(tmp)
		return lsmerr.WithKind(err, lsmerr.Format)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		os.Remove(tmp)
		return lsmerr.NewIO(err, "flushing vertex index compressor")
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return lsmerr.NewIO(err, "fsyncing vertex index file")
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return lsmerr.NewIO(err, "closing vertex index file")
	}
	if err := os.Rename(tmp, path); err != nil {
		return lsmerr.NewIO(err, "renaming vertex index file into place")
	}
	return nil
}

// DeserializeFromFile reads an Index written by SerializeToFile.
func DeserializeFromFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, lsmerr.NewIO(err, "opening vertex index file %q", path)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, lsmerr.WithKind(err, lsmerr.Format)
	}
	defer dec.Close()

	var img gobImage
	if err := gob.NewDecoder(dec).Decode(&img); err != nil {
		if err == io.EOF {
			return nil, lsmerr.NewFormat("vertex index file %q is empty", path)
		}
		return nil, lsmerr.WithKind(err, lsmerr.Format)
	}
	return fromImage(img), nil
}
