package geom

// Spline3 is a cubic Hermite spline between two endpoints with tangents,
// used to generate turn and intersection-polygon geometry (spec §4.1 steps
// 4-5). Grounded on original_source/geom/{spline1.rs,spline3.rs}: a Hermite
// form parameterized by endpoint tangents scaled by a "tension" factor
// rather than a general Bezier, matching the teacher domain's need to
// control curvature from the turn angle alone.
type Spline3 struct {
	From, To         Vec3
	FromTan, ToTan   Vec3 // endpoint tangents, already scaled to tension * chord length
	FromT, ToT       float64
}

// NewSpline builds a spline whose tangent magnitudes are tension times the
// chord length; tension in [0,1] with 0 a straight line and larger values
// producing a wider arc, matching "spline tension determined by the turn
// angle" (spec §4.1 step 4).
func NewSpline(from, to Vec3, fromDir, toDir Vec2, tension float64) Spline3 {
	chord := from.Distance(to)
	mag := tension * chord
	return Spline3{
		From: from, To: to,
		FromTan: FromXY(fromDir.Normalized().Scale(mag), 0),
		ToTan:   FromXY(toDir.Normalized().Scale(mag), 0),
	}
}

// Point evaluates the Hermite spline at t in [0,1].
func (s Spline3) Point(t float64) Vec3 {
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	p := s.From.Scale(h00).
		Add(s.FromTan.Scale(h10)).
		Add(s.To.Scale(h01)).
		Add(s.ToTan.Scale(h11))
	return p
}

// Tangent evaluates the spline's derivative at t in [0,1] (unnormalized).
func (s Spline3) Tangent(t float64) Vec3 {
	t2 := t * t
	dh00 := 6*t2 - 6*t
	dh10 := 3*t2 - 4*t + 1
	dh01 := -6*t2 + 6*t
	dh11 := 3*t2 - 2*t
	return s.From.Scale(dh00).
		Add(s.FromTan.Scale(dh10)).
		Add(s.To.Scale(dh01)).
		Add(s.ToTan.Scale(dh11))
}

// Sample rasterizes the spline into n+1 points, suitable for a turn's or
// intersection polygon's Polyline3.
func (s Spline3) Sample(n int) Polyline3 {
	if n < 1 {
		n = 1
	}
	out := make(Polyline3, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		out[i] = s.Point(t)
	}
	return out
}

// Arc samples a circular arc of points around center from angle a0 to a1
// (radians, counterclockwise) at the given radius and height, used by
// roundabout turns that route spline -> arc -> spline around the
// intersection center (spec §4.1 step 5).
func Arc(center Vec2, radius, z, a0, a1 float64, n int) Polyline3 {
	if n < 1 {
		n = 1
	}
	out := make(Polyline3, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		angle := a0 + (a1-a0)*t
		p := center.Add(Vec2{1, 0}.RotatedBy(angle).Scale(radius))
		out[i] = FromXY(p, z)
	}
	return out
}
