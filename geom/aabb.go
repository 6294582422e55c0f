package geom

import "math"

// AABB is an axis-aligned bounding box on the ground plane, the broad-phase
// shape used by the spatial index (spec §4.2).
type AABB struct {
	Min, Max Vec2
}

// NewAABB returns the box spanning the two corners, normalized.
func NewAABB(a, b Vec2) AABB {
	return AABB{
		Min: Vec2{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Vec2{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

// EmptyAABB returns a box that contains nothing; Extend-ing it with any
// point yields that point's degenerate box.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: Vec2{inf, inf}, Max: Vec2{-inf, -inf}}
}

// Extend grows the box to include p.
func (b AABB) Extend(p Vec2) AABB {
	return AABB{
		Min: Vec2{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y)},
		Max: Vec2{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y)},
	}
}

// Union merges two boxes.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: Vec2{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y)},
		Max: Vec2{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y)},
	}
}

// Expanded returns the box grown by margin on every side.
func (b AABB) Expanded(margin float64) AABB {
	return AABB{
		Min: Vec2{b.Min.X - margin, b.Min.Y - margin},
		Max: Vec2{b.Max.X + margin, b.Max.Y + margin},
	}
}

// Intersects reports whether the two boxes overlap (touching counts).
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

// Contains reports whether p lies within the box.
func (b AABB) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Center returns the box's midpoint.
func (b AABB) Center() Vec2 {
	return b.Min.Lerp(b.Max, 0.5)
}

// OBB is an oriented bounding box, used for lots and buildings.
type OBB struct {
	Center Vec2
	// Axis is the unit vector along the box's local X axis; the local Y
	// axis is Axis.Perp().
	Axis Vec2
	// HalfW, HalfH are half-extents along Axis and Axis.Perp() respectively.
	HalfW, HalfH float64
}

// NewOBB builds an OBB from a center, a facing angle (radians) and full
// width/height.
func NewOBB(center Vec2, angle, width, height float64) OBB {
	return OBB{
		Center: center,
		Axis:   Vec2{1, 0}.RotatedBy(angle),
		HalfW:  width / 2,
		HalfH:  height / 2,
	}
}

// Corners returns the four corners in counterclockwise order.
func (o OBB) Corners() [4]Vec2 {
	ax := o.Axis.Scale(o.HalfW)
	ay := o.Axis.Perp().Scale(o.HalfH)
	return [4]Vec2{
		o.Center.Sub(ax).Sub(ay),
		o.Center.Add(ax).Sub(ay),
		o.Center.Add(ax).Add(ay),
		o.Center.Sub(ax).Add(ay),
	}
}

// BBox returns the OBB's axis-aligned bounding box.
func (o OBB) BBox() AABB {
	corners := o.Corners()
	box := EmptyAABB()
	for _, c := range corners {
		box = box.Extend(c)
	}
	return box
}

// Contains reports whether p lies within the oriented box.
func (o OBB) Contains(p Vec2) bool {
	d := p.Sub(o.Center)
	ax := o.Axis
	ay := o.Axis.Perp()
	return math.Abs(d.Dot(ax)) <= o.HalfW && math.Abs(d.Dot(ay)) <= o.HalfH
}

// Intersects reports whether two OBBs overlap, via the separating axis
// theorem over each box's two local axes.
func (a OBB) Intersects(b OBB) bool {
	axes := [4]Vec2{a.Axis, a.Axis.Perp(), b.Axis, b.Axis.Perp()}
	ca, cb := a.Corners(), b.Corners()
	for _, axis := range axes {
		aMin, aMax := projectOnto(ca[:], axis)
		bMin, bMax := projectOnto(cb[:], axis)
		if aMax < bMin || bMax < aMin {
			return false
		}
	}
	return true
}

func projectOnto(pts []Vec2, axis Vec2) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		d := p.Dot(axis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return
}
