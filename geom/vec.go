// Package geom is the simulation's pure geometry kernel: 2D/3D vectors,
// polylines, splines, OBB/AABB shapes, intersection predicates and 4x4
// matrix inversion. It holds no state and performs no I/O.
//
// Grounded on original_source/geom/{v4.rs,matrix4.rs,segment.rs,spline1.rs,
// spline3.rs,boldspline.rs} (the Egregoria Rust geometry crate this spec was
// distilled from), translated into idiomatic Go value types.
package geom

import "math"

// Vec2 is a 2D point or direction.
type Vec2 struct {
	X, Y float64
}

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dot(b Vec2) float64   { return a.X*b.X + a.Y*b.Y }
func (a Vec2) Cross(b Vec2) float64 { return a.X*b.Y - a.Y*b.X }
func (a Vec2) Len() float64         { return math.Hypot(a.X, a.Y) }
func (a Vec2) Len2() float64        { return a.X*a.X + a.Y*a.Y }

// Normalized returns the unit vector in a's direction, or the zero vector
// if a is (near) zero length.
func (a Vec2) Normalized() Vec2 {
	l := a.Len()
	if l < 1e-9 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// Perp returns the 90-degree counterclockwise rotation of a.
func (a Vec2) Perp() Vec2 { return Vec2{-a.Y, a.X} }

// Angle returns a's bearing in radians, atan2(y, x).
func (a Vec2) Angle() float64 { return math.Atan2(a.Y, a.X) }

// Lerp interpolates linearly between a and b at t in [0,1].
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Distance returns the Euclidean distance between a and b.
func (a Vec2) Distance(b Vec2) float64 { return a.Sub(b).Len() }

// RotatedBy rotates a by angle radians counterclockwise.
func (a Vec2) RotatedBy(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{a.X*c - a.Y*s, a.X*s + a.Y*c}
}

// Vec3 is a 3D point or direction; the simulation's terrain and polylines
// carry height in Z.
type Vec3 struct {
	X, Y, Z float64
}

func (a Vec3) Add(b Vec3) Vec3     { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3     { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float64  { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Len() float64        { return math.Sqrt(a.Len2()) }
func (a Vec3) Len2() float64       { return a.X*a.X + a.Y*a.Y + a.Z*a.Z }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Normalized() Vec3 {
	l := a.Len()
	if l < 1e-9 {
		return Vec3{}
	}
	return Vec3{a.X / l, a.Y / l, a.Z / l}
}

func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

func (a Vec3) Distance(b Vec3) float64 { return a.Sub(b).Len() }

// XY projects to the ground plane, dropping height.
func (a Vec3) XY() Vec2 { return Vec2{a.X, a.Y} }

// FromXY lifts a 2D point to 3D at the given height.
func FromXY(v Vec2, z float64) Vec3 { return Vec3{v.X, v.Y, z} }

// AngleBetween returns the unsigned angle in radians between two direction
// vectors on the ground plane, clamped to [0, pi].
func AngleBetween(a, b Vec2) float64 {
	an, bn := a.Normalized(), b.Normalized()
	d := an.Dot(bn)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d)
}
