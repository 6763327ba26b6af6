package corexs

import "math"

// Vec3 represents either a position or a direction in 3-space, matching the
// teacher's Point4/Vector4 split in spirit but collapsed to a single type
// for the 3D case (the geometry locator never needs position and direction
// to be distinct Go types; only the W axis distinguished them in 4D).
type Vec3 struct {
	X, Y, Z Real
}

// Add returns the component-wise sum.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns the component-wise difference.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Mul scales every component by s.
func (v Vec3) Mul(s Real) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product between two vectors.
func (a Vec3) Dot(b Vec3) Real { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Len returns the Euclidean length of the vector.
func (v Vec3) Len() Real { return math.Sqrt(v.Dot(v)) }

// Norm returns a unit-length version of the vector. A (near) zero vector is
// returned unchanged, mirroring the teacher's Vector4.Norm.
func (v Vec3) Norm() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Mat3 is a row-major 3x3 matrix, the 3D analogue of the teacher's Mat4.
type Mat3 struct {
	M [3][3]Real
}

// I3 returns the identity matrix.
func I3() Mat3 {
	return Mat3{M: [3][3]Real{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// MulVec left-multiplies v by the matrix: out = A*v. Rows of the stored
// matrix apply to a column vector, matching the rotation convention picked
// for the cell UNIVERSE-fill rotation (see SPEC_FULL §9 "rotation numerical
// convention" and locator_test.go's TestRotatedFillMatchesScenario6).
func (A Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		A.M[0][0]*v.X + A.M[0][1]*v.Y + A.M[0][2]*v.Z,
		A.M[1][0]*v.X + A.M[1][1]*v.Y + A.M[1][2]*v.Z,
		A.M[2][0]*v.X + A.M[2][1]*v.Y + A.M[2][2]*v.Z,
	}
}

// Transpose returns the transpose of A. For an orthonormal rotation matrix
// this is also its inverse, used to go from world space back to a rotated
// universe's local space.
func (A Mat3) Transpose() Mat3 {
	var R Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			R.M[r][c] = A.M[c][r]
		}
	}
	return R
}

// EulerXYZ builds a rotation matrix from Euler angles (radians), applied in
// X, then Y, then Z order, generalizing the teacher's rotFromAngles
// composition of elementary plane rotations.
func EulerXYZ(ax, ay, az Real) Mat3 {
	cx, sx := math.Cos(ax), math.Sin(ax)
	cy, sy := math.Cos(ay), math.Sin(ay)
	cz, sz := math.Cos(az), math.Sin(az)

	rx := Mat3{M: [3][3]Real{{1, 0, 0}, {0, cx, -sx}, {0, sx, cx}}}
	ry := Mat3{M: [3][3]Real{{cy, 0, sy}, {0, 1, 0}, {-sy, 0, cy}}}
	rz := Mat3{M: [3][3]Real{{cz, -sz, 0}, {sz, cz, 0}, {0, 0, 1}}}

	return matMul(rz, matMul(ry, rx))
}

func matMul(A, B Mat3) Mat3 {
	var R Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			sum := Real(0)
			for k := 0; k < 3; k++ {
				sum += A.M[r][k] * B.M[k][c]
			}
			R.M[r][c] = sum
		}
	}
	return R
}
