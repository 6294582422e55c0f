// Package broadcast fans out map-change notifications to subscribers
// registered for spatial chunks (spec §2 "Chunked change broadcast",
// §4.1's "marks the change on the subscriber bus").
//
// Grounded on original_source/common/src/chunkid.rs for the chunk-ID
// packing scheme (grid cell coordinates packed into a single integer key)
// and on the teacher's manager Prepare/Update lifecycle for how subscribers
// drain their buffered chunk sets once per tick.
package broadcast

import "github.com/citysim/engine/geom"

// ChunkSize is the edge length, in world units, of one broadcast chunk.
// Matches common/src/chunkid.rs's fixed cell size convention: large enough
// that a typical map mutation (one road, one building) touches only a
// handful of chunks.
const ChunkSize = 100.0

// ChunkID packs a (x, y) grid cell into one comparable value, the same
// scheme as chunkid.rs's ChunkID(i32, i32) newtype.
type ChunkID struct {
	X, Y int32
}

// ChunkOf returns the chunk containing the given ground-plane point.
func ChunkOf(p geom.Vec2) ChunkID {
	return ChunkID{
		X: int32(floorDiv(p.X, ChunkSize)),
		Y: int32(floorDiv(p.Y, ChunkSize)),
	}
}

// ChunksOf returns every chunk a bounding box overlaps.
func ChunksOf(box geom.AABB) []ChunkID {
	x0 := int32(floorDiv(box.Min.X, ChunkSize))
	y0 := int32(floorDiv(box.Min.Y, ChunkSize))
	x1 := int32(floorDiv(box.Max.X, ChunkSize))
	y1 := int32(floorDiv(box.Max.Y, ChunkSize))
	var out []ChunkID
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			out = append(out, ChunkID{x, y})
		}
	}
	return out
}

func floorDiv(v, size float64) int64 {
	q := v / size
	i := int64(q)
	if q < 0 && float64(i) != q {
		return i - 1
	}
	return i
}
