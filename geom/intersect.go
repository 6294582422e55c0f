package geom

import "math"

// SegmentsIntersect reports whether segments (a0,a1) and (b0,b1) cross,
// including touching at an endpoint. Used by Map.Connect's "resulting road
// geometry self-intersects or crosses an existing road" check (spec §4.1).
func SegmentsIntersect(a0, a1, b0, b1 Vec2) bool {
	d1 := cross3(b0, b1, a0)
	d2 := cross3(b0, b1, a1)
	d3 := cross3(a0, a1, b0)
	d4 := cross3(a0, a1, b1)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(b0, b1, a0) {
		return true
	}
	if d2 == 0 && onSegment(b0, b1, a1) {
		return true
	}
	if d3 == 0 && onSegment(a0, a1, b0) {
		return true
	}
	if d4 == 0 && onSegment(a0, a1, b1) {
		return true
	}
	return false
}

func cross3(a, b, c Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment(a, b, p Vec2) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// PolylinesIntersect reports whether any segment of p crosses any segment
// of q, projected to the ground plane.
func PolylinesIntersect(p, q Polyline3) bool {
	for i := 1; i < len(p); i++ {
		for j := 1; j < len(q); j++ {
			if SegmentsIntersect(p[i-1].XY(), p[i].XY(), q[j-1].XY(), q[j].XY()) {
				return true
			}
		}
	}
	return false
}

// PointInPolygon reports whether p lies inside the (possibly open) polygon
// boundary via even-odd ray casting.
func PointInPolygon(p Vec2, polygon []Vec2) bool {
	inside := false
	n := len(polygon)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := polygon[i], polygon[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xCross := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// PolygonCentroid2D computes the area-weighted centroid of a closed polygon
// (first point == last point not required).
func PolygonCentroid2D(polygon []Vec2) Vec2 {
	if len(polygon) == 0 {
		return Vec2{}
	}
	var cx, cy, area float64
	n := len(polygon)
	for i := 0; i < n; i++ {
		a := polygon[i]
		b := polygon[(i+1)%n]
		cross := a.X*b.Y - b.X*a.Y
		area += cross
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	if area == 0 {
		// degenerate (collinear) polygon: fall back to the arithmetic mean.
		var sx, sy float64
		for _, p := range polygon {
			sx += p.X
			sy += p.Y
		}
		return Vec2{sx / float64(n), sy / float64(n)}
	}
	area *= 0.5
	cx /= 6 * area
	cy /= 6 * area
	return Vec2{cx, cy}
}

// DistancePointSegment returns the shortest distance from p to segment (a,b).
func DistancePointSegment(p, a, b Vec2) float64 {
	dir := b.Sub(a)
	l2 := dir.Len2()
	if l2 < 1e-12 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(dir) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Distance(a.Lerp(b, t))
}
