package geom

import "math"

// Polyline3 is an ordered sequence of 3D points; lanes, roads and turns are
// all represented this way once their geometry has been generated.
type Polyline3 []Vec3

// Length returns the total arc length.
func (p Polyline3) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += p[i-1].Distance(p[i])
	}
	return total
}

// PointAt returns the point s meters along the polyline from the start,
// clamped to [0, Length()], and the tangent direction at that point.
func (p Polyline3) PointAt(s float64) (Vec3, Vec3) {
	if len(p) == 0 {
		return Vec3{}, Vec3{}
	}
	if len(p) == 1 {
		return p[0], Vec3{}
	}
	if s <= 0 {
		return p[0], p[1].Sub(p[0]).Normalized()
	}
	var acc float64
	for i := 1; i < len(p); i++ {
		seg := p[i-1].Distance(p[i])
		if acc+seg >= s || i == len(p)-1 {
			t := 0.0
			if seg > 1e-9 {
				t = (s - acc) / seg
			}
			if t > 1 {
				t = 1
			}
			return p[i-1].Lerp(p[i], t), p[i].Sub(p[i-1]).Normalized()
		}
		acc += seg
	}
	last := len(p) - 1
	return p[last], p[last].Sub(p[last-1]).Normalized()
}

// StartTangent and EndTangent return the unit direction at each endpoint,
// used to seed turn splines (spec §4.1 step 5).
func (p Polyline3) StartTangent() Vec3 {
	if len(p) < 2 {
		return Vec3{}
	}
	return p[1].Sub(p[0]).Normalized()
}

func (p Polyline3) EndTangent() Vec3 {
	n := len(p)
	if n < 2 {
		return Vec3{}
	}
	return p[n-1].Sub(p[n-2]).Normalized()
}

// Reversed returns a new polyline traversed in the opposite direction.
func (p Polyline3) Reversed() Polyline3 {
	out := make(Polyline3, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// BBox returns the ground-plane bounding box of every point.
func (p Polyline3) BBox() AABB {
	box := EmptyAABB()
	for _, v := range p {
		box = box.Extend(v.XY())
	}
	return box
}

// ClosestPoint returns the closest point on the polyline to target, the arc
// length s at that point, and the squared distance.
func (p Polyline3) ClosestPoint(target Vec3) (closest Vec3, s float64, dist2 float64) {
	if len(p) == 0 {
		return Vec3{}, 0, math.Inf(1)
	}
	best := math.Inf(1)
	var bestPoint Vec3
	var bestS float64
	var acc float64
	for i := 1; i < len(p); i++ {
		a, b := p[i-1], p[i]
		segLen := a.Distance(b)
		t := 0.0
		if segLen > 1e-9 {
			dir := b.Sub(a)
			t = target.Sub(a).Dot(dir) / dir.Len2()
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
		}
		candidate := a.Lerp(b, t)
		d2 := candidate.Distance(target)
		d2 *= d2
		if d2 < best {
			best = d2
			bestPoint = candidate
			bestS = acc + t*segLen
		}
		acc += segLen
	}
	return bestPoint, bestS, best
}
