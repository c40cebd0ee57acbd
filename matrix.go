package salinity

import (
	"fmt"
	"math"
)

// Matrix is a 2D affine transform stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// A point maps as x' = a*x + c*y + tx, y' = b*x + d*y + ty. All methods
// return new values; the receiver is never modified.
type Matrix [6]float64

// degenerateEpsilon is the determinant magnitude below which a matrix is
// treated as non-invertible.
const degenerateEpsilon = 1e-12

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// TranslationMatrix returns a pure translation.
func TranslationMatrix(x, y float64) Matrix {
	return Matrix{1, 0, 0, 1, x, y}
}

// RotationMatrix returns a rotation by rad radians (clockwise on a
// y-down surface).
func RotationMatrix(rad float64) Matrix {
	s, c := math.Sincos(rad)
	return Matrix{c, s, -s, c, 0, 0}
}

// ScaleMatrix returns a non-uniform scale.
func ScaleMatrix(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// ComposeMatrix builds a local transform from its parts: translate to
// position, rotate about origin, then scale.
func ComposeMatrix(position, scale, origin Vec2, rotation float64) Matrix {
	m := TranslationMatrix(position.X, position.Y)
	if rotation != 0 {
		m = m.Translate(origin.X, origin.Y).
			Rotate(rotation).
			Translate(-origin.X, -origin.Y)
	}
	if scale.X != 1 || scale.Y != 1 {
		m = m.Scale(scale.X, scale.Y)
	}
	return m
}

// Multiply returns m * o: o is applied first, then m.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Premultiply returns o * m: m is applied first, then o.
func (m Matrix) Premultiply(o Matrix) Matrix {
	return o.Multiply(m)
}

// Translate returns m with a translation applied in m's local space.
func (m Matrix) Translate(x, y float64) Matrix {
	m[4] += m[0]*x + m[2]*y
	m[5] += m[1]*x + m[3]*y
	return m
}

// Rotate returns m with a rotation applied in m's local space.
func (m Matrix) Rotate(rad float64) Matrix {
	s, c := math.Sincos(rad)
	a := m[0]*c + m[2]*s
	b := m[1]*c + m[3]*s
	cc := m[0]*-s + m[2]*c
	d := m[1]*-s + m[3]*c
	m[0], m[1], m[2], m[3] = a, b, cc, d
	return m
}

// Scale returns m with a scale applied in m's local space.
func (m Matrix) Scale(sx, sy float64) Matrix {
	m[0] *= sx
	m[1] *= sx
	m[2] *= sy
	m[3] *= sy
	return m
}

// SetPosition returns m with its translation replaced.
func (m Matrix) SetPosition(x, y float64) Matrix {
	m[4] = x
	m[5] = y
	return m
}

// Determinant returns a*d - b*c.
func (m Matrix) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Inverse returns the inverse transform. When the determinant is ~0 it
// returns the identity and an error wrapping ErrDegenerateMatrix.
func (m Matrix) Inverse() (Matrix, error) {
	det := m.Determinant()
	if math.Abs(det) < degenerateEpsilon || !isFinite(det) {
		return IdentityMatrix(), fmt.Errorf("invert %v: %w", m, ErrDegenerateMatrix)
	}
	inv := 1 / det
	return Matrix{
		m[3] * inv,
		-m[1] * inv,
		-m[2] * inv,
		m[0] * inv,
		inv * (m[2]*m[5] - m[3]*m[4]),
		inv * (m[1]*m[4] - m[0]*m[5]),
	}, nil
}

// Invert is Inverse without the error: singular matrices invert to the
// identity.
func (m Matrix) Invert() Matrix {
	inv, _ := m.Inverse()
	return inv
}

// TransformPoint applies m to p, translation included.
func (m Matrix) TransformPoint(p Vec2) Vec2 {
	return Vec2{
		m[0]*p.X + m[2]*p.Y + m[4],
		m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// TransformVector applies only the linear part of m to v.
func (m Matrix) TransformVector(v Vec2) Vec2 {
	return Vec2{m[0]*v.X + m[2]*v.Y, m[1]*v.X + m[3]*v.Y}
}

// Position returns the translation component.
func (m Matrix) Position() Vec2 {
	return Vec2{m[4], m[5]}
}

// Rotation returns the rotation of the x axis in radians.
func (m Matrix) Rotation() float64 {
	return math.Atan2(m[1], m[0])
}

// ScaleFactors returns the lengths of the two basis columns. Both values are
// non-negative; see Sign and Decompose for mirrored transforms.
func (m Matrix) ScaleFactors() Vec2 {
	return Vec2{math.Hypot(m[0], m[1]), math.Hypot(m[2], m[3])}
}

// Shear returns the shear angles of the transform.
func (m Matrix) Shear() Vec2 {
	s := m.ScaleFactors()
	rot := m.Rotation()
	return Vec2{
		math.Atan2(m[0]*m[2]+m[1]*m[3], s.X*s.Y),
		math.Atan2(-m[0]*m[3]+m[1]*m[2], s.X*s.Y) - rot,
	}
}

// Sign returns -1 for each axis whose diagonal coefficient is negative.
func (m Matrix) Sign() Vec2 {
	return Vec2{sign(m[0]), sign(m[3])}
}

// Decomposition is the result of Matrix.Decompose.
type Decomposition struct {
	Position Vec2
	Rotation float64
	Scale    Vec2
	Shear    Vec2
	Sign     Vec2
}

// Decompose splits m into position, rotation and scale. A mirrored matrix
// (negative determinant) is reported with a negative y scale.
func (m Matrix) Decompose() Decomposition {
	s := m.ScaleFactors()
	if m.Determinant() < 0 {
		s.Y = -s.Y
	}
	return Decomposition{
		Position: m.Position(),
		Rotation: m.Rotation(),
		Scale:    s,
		Shear:    m.Shear(),
		Sign:     m.Sign(),
	}
}

// ApproxEqual reports whether every coefficient differs by at most eps.
func (m Matrix) ApproxEqual(o Matrix, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// IsFinite reports whether every coefficient is a finite number.
func (m Matrix) IsFinite() bool {
	for _, v := range m {
		if !isFinite(v) {
			return false
		}
	}
	return true
}
