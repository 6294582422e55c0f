package spatial

import (
	"sort"

	"github.com/citysim/engine/geom"
)

// ObjectID identifies an object in the index; map-object IDs are reused
// directly (spec §9: "store only IDs across boundaries").
type ObjectID int64

type entry struct {
	id    ObjectID
	kind  Kind
	shape Shape
	bbox  geom.AABB
}

// Index is the two-level broad-phase + precise-shape spatial structure
// (spec §4.2). Insertions/removals/updates are explicit; it never observes
// the map on its own, matching the map facade's role as the sole mutation
// path (spec §4.1).
type Index struct {
	cellSize float64
	cells    map[cellKey][]ObjectID
	objects  map[ObjectID]entry
}

type cellKey struct{ x, y int64 }

// New creates an index with the given grid cell size in world units.
// Smaller cells reduce false-positive candidates at the cost of more cells
// touched per query; 50m matches typical road-segment scale.
func New(cellSize float64) *Index {
	if cellSize <= 0 {
		cellSize = 50
	}
	return &Index{
		cellSize: cellSize,
		cells:    make(map[cellKey][]ObjectID),
		objects:  make(map[ObjectID]entry),
	}
}

func (idx *Index) cellsFor(box geom.AABB) []cellKey {
	x0 := int64(box.Min.X / idx.cellSize)
	y0 := int64(box.Min.Y / idx.cellSize)
	x1 := int64(box.Max.X / idx.cellSize)
	y1 := int64(box.Max.Y / idx.cellSize)
	var keys []cellKey
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			keys = append(keys, cellKey{x, y})
		}
	}
	return keys
}

// Insert adds or replaces the object's shape under id/kind.
func (idx *Index) Insert(id ObjectID, kind Kind, shape Shape) {
	idx.Remove(id)
	box := shape.BBox()
	e := entry{id: id, kind: kind, shape: shape, bbox: box}
	idx.objects[id] = e
	for _, key := range idx.cellsFor(box) {
		idx.cells[key] = append(idx.cells[key], id)
	}
}

// Remove deletes the object from the index; a no-op if absent, so callers
// that remove-then-reinsert don't need existence checks.
func (idx *Index) Remove(id ObjectID) {
	e, ok := idx.objects[id]
	if !ok {
		return
	}
	for _, key := range idx.cellsFor(e.bbox) {
		bucket := idx.cells[key]
		for i, oid := range bucket {
			if oid == id {
				bucket[i] = bucket[len(bucket)-1]
				idx.cells[key] = bucket[:len(bucket)-1]
				break
			}
		}
		if len(idx.cells[key]) == 0 {
			delete(idx.cells, key)
		}
	}
	delete(idx.objects, id)
}

// Update is a remove+insert with the object's new shape, used after derived
// geometry recomputation (spec §4.1's intersection-update algorithm).
func (idx *Index) Update(id ObjectID, kind Kind, shape Shape) {
	idx.Insert(id, kind, shape)
}

// Len returns how many objects are currently indexed.
func (idx *Index) Len() int { return len(idx.objects) }

// Query returns every indexed object (matching the filter) whose bbox
// intersects shape.BBox() AND whose precise shape intersects shape.
// Complexity is O(K + R): K cells touched, R candidates reported (spec
// §4.2).
func (idx *Index) Query(shape Shape, filter Kind) []ObjectID {
	box := shape.BBox()
	seen := make(map[ObjectID]struct{})
	var out []ObjectID
	for _, key := range idx.cellsFor(box) {
		for _, id := range idx.cells[key] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			e, ok := idx.objects[id]
			if !ok || e.kind&filter == 0 {
				continue
			}
			if !e.bbox.Intersects(box) {
				continue
			}
			if e.shape.IntersectsShape(shape) {
				out = append(out, id)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// QueryAround is a convenience wrapper querying a circle (spec §4.2).
func (idx *Index) QueryAround(center geom.Vec2, radius float64, filter Kind) []ObjectID {
	return idx.Query(Circle{Center: center, Radius: radius}, filter)
}
