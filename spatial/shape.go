// Package spatial implements the broad-phase/precise-shape spatial index
// (spec §4.2): a uniform grid keyed by AABB plus a per-object precise shape,
// queried by point/circle/shape with a kind-bitmask filter.
//
// Grounded on original_source/egregoria/src/map/spatial_map.rs for the
// two-level grid-then-shape algorithm; the Init/Insert/Remove/Update
// lifecycle and Kind-bitmask filter idiom follow the teacher's manager
// shape (entity/lane/manager.go, entity/junction/manager.go).
package spatial

import "github.com/citysim/engine/geom"

// Kind is a bitmask over the object categories the index can hold.
type Kind uint8

const (
	KindIntersection Kind = 1 << iota
	KindRoad
	KindBuilding
	KindLot
	KindGround
)

// Shape is any precise geometry the index can test for intersection: a
// circle, an OBB, a polygon or a polyline with a radius.
type Shape interface {
	BBox() geom.AABB
	IntersectsCircle(center geom.Vec2, radius float64) bool
	IntersectsShape(other Shape) bool
}

// Circle is a precise shape.
type Circle struct {
	Center geom.Vec2
	Radius float64
}

func (c Circle) BBox() geom.AABB {
	r := geom.Vec2{X: c.Radius, Y: c.Radius}
	return geom.NewAABB(c.Center.Sub(r), c.Center.Add(r))
}

func (c Circle) IntersectsCircle(center geom.Vec2, radius float64) bool {
	return c.Center.Distance(center) <= c.Radius+radius
}

func (c Circle) IntersectsShape(other Shape) bool {
	switch o := other.(type) {
	case Circle:
		return c.IntersectsCircle(o.Center, o.Radius)
	case OBBShape:
		return o.IntersectsCircle(c.Center, c.Radius)
	case PolylineShape:
		return o.IntersectsCircle(c.Center, c.Radius)
	default:
		return c.BBox().Intersects(other.BBox())
	}
}

// OBBShape wraps geom.OBB as a precise Shape.
type OBBShape struct{ geom.OBB }

func (o OBBShape) BBox() geom.AABB { return o.OBB.BBox() }

func (o OBBShape) IntersectsCircle(center geom.Vec2, radius float64) bool {
	// Closest point on the OBB to center via clamped local coordinates.
	d := center.Sub(o.Center)
	ax, ay := o.Axis, o.Axis.Perp()
	lx := clamp(d.Dot(ax), -o.HalfW, o.HalfW)
	ly := clamp(d.Dot(ay), -o.HalfH, o.HalfH)
	closest := o.Center.Add(ax.Scale(lx)).Add(ay.Scale(ly))
	return closest.Distance(center) <= radius
}

func (o OBBShape) IntersectsShape(other Shape) bool {
	switch b := other.(type) {
	case OBBShape:
		return o.OBB.Intersects(b.OBB)
	case Circle:
		return o.IntersectsCircle(b.Center, b.Radius)
	default:
		return o.BBox().Intersects(other.BBox())
	}
}

// PolylineShape is a polyline thickened by a radius, used for roads/lanes.
type PolylineShape struct {
	Line   geom.Polyline3
	Radius float64
}

func (p PolylineShape) BBox() geom.AABB { return p.Line.BBox().Expanded(p.Radius) }

func (p PolylineShape) IntersectsCircle(center geom.Vec2, radius float64) bool {
	for i := 1; i < len(p.Line); i++ {
		d := geom.DistancePointSegment(center, p.Line[i-1].XY(), p.Line[i].XY())
		if d <= p.Radius+radius {
			return true
		}
	}
	return len(p.Line) > 0 && p.Line[0].XY().Distance(center) <= p.Radius+radius
}

func (p PolylineShape) IntersectsShape(other Shape) bool {
	switch o := other.(type) {
	case Circle:
		return p.IntersectsCircle(o.Center, o.Radius)
	default:
		return p.BBox().Intersects(other.BBox())
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
