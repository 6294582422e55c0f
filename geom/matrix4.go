package geom

import "math"

// Matrix4 is a row-major 4x4 transform matrix, used for the terrain height
// grid's local-to-world transform and for building OBB world placement.
// Grounded on original_source/geom/matrix4.rs.
type Matrix4 [4][4]float64

// Identity returns the 4x4 identity matrix.
func Identity() Matrix4 {
	var m Matrix4
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

// Mul multiplies two matrices, a*b.
func (a Matrix4) Mul(b Matrix4) Matrix4 {
	var out Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// MulPoint transforms a homogeneous point (w=1).
func (a Matrix4) MulPoint(v Vec3) Vec3 {
	x := a[0][0]*v.X + a[0][1]*v.Y + a[0][2]*v.Z + a[0][3]
	y := a[1][0]*v.X + a[1][1]*v.Y + a[1][2]*v.Z + a[1][3]
	z := a[2][0]*v.X + a[2][1]*v.Y + a[2][2]*v.Z + a[2][3]
	w := a[3][0]*v.X + a[3][1]*v.Y + a[3][2]*v.Z + a[3][3]
	if w != 0 && w != 1 {
		x, y, z = x/w, y/w, z/w
	}
	return Vec3{x, y, z}
}

// Translation returns a pure-translation matrix.
func Translation(t Vec3) Matrix4 {
	m := Identity()
	m[0][3], m[1][3], m[2][3] = t.X, t.Y, t.Z
	return m
}

// Inverse computes the inverse of a via Gauss-Jordan elimination with
// partial pivoting, returning ok=false for a singular matrix (used when
// recovering a local->world transform for a terraform kernel's footprint).
func (a Matrix4) Inverse() (inv Matrix4, ok bool) {
	// Augmented 4x8 matrix [a | I].
	var aug [4][8]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			aug[i][j] = a[i][j]
		}
		aug[i][4+i] = 1
	}

	for col := 0; col < 4; col++ {
		pivot := col
		best := math.Abs(aug[col][col])
		for r := col + 1; r < 4; r++ {
			if v := math.Abs(aug[r][col]); v > best {
				best = v
				pivot = r
			}
		}
		if best < 1e-12 {
			return Matrix4{}, false
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		pv := aug[col][col]
		for j := 0; j < 8; j++ {
			aug[col][j] /= pv
		}
		for r := 0; r < 4; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			if factor == 0 {
				continue
			}
			for j := 0; j < 8; j++ {
				aug[r][j] -= factor * aug[col][j]
			}
		}
	}

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			inv[i][j] = aug[i][4+j]
		}
	}
	return inv, true
}
