package salinity

import "math"

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API. All methods return new values.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{x, y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) AddScalar(s float64) Vec2 { return Vec2{v.X + s, v.Y + s} }
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Div divides component-wise. A zero divisor component yields zero for that
// axis instead of an infinity.
func (v Vec2) Div(o Vec2) Vec2 {
	var r Vec2
	if o.X != 0 {
		r.X = v.X / o.X
	}
	if o.Y != 0 {
		r.Y = v.Y / o.Y
	}
	return r
}

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

// ManhattanLength returns |x| + |y|.
func (v Vec2) ManhattanLength() float64 { return math.Abs(v.X) + math.Abs(v.Y) }

func (v Vec2) Distance(o Vec2) float64 { return v.Sub(o).Length() }

// Normalize returns the unit vector in the same direction, or the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Angle returns the angle of the vector relative to the positive x axis,
// in [0, 2π).
func (v Vec2) Angle() float64 {
	return math.Atan2(-v.Y, -v.X) + math.Pi
}

// AngleTo returns the unsigned angle between v and o in [0, π].
func (v Vec2) AngleTo(o Vec2) float64 {
	denom := math.Sqrt((v.X*v.X + v.Y*v.Y) * (o.X*o.X + o.Y*o.Y))
	if denom == 0 {
		return 0
	}
	return math.Acos(clamp(v.Dot(o)/denom, -1, 1))
}

// Rotate rotates v by angle radians around the origin.
func (v Vec2) Rotate(angle float64) Vec2 {
	return v.RotateAround(Vec2{}, angle)
}

// RotateAround rotates v by angle radians around center.
func (v Vec2) RotateAround(center Vec2, angle float64) Vec2 {
	s, c := math.Sincos(angle)
	x := v.X - center.X
	y := v.Y - center.Y
	return Vec2{x*c - y*s + center.X, x*s + y*c + center.Y}
}

// Lerp interpolates between v and o by t.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

func (v Vec2) Min(o Vec2) Vec2 { return Vec2{math.Min(v.X, o.X), math.Min(v.Y, o.Y)} }
func (v Vec2) Max(o Vec2) Vec2 { return Vec2{math.Max(v.X, o.X), math.Max(v.Y, o.Y)} }

// Clamp clamps each component into [lo, hi].
func (v Vec2) Clamp(lo, hi Vec2) Vec2 {
	return Vec2{clamp(v.X, lo.X, hi.X), clamp(v.Y, lo.Y, hi.Y)}
}

func (v Vec2) Floor() Vec2 { return Vec2{math.Floor(v.X), math.Floor(v.Y)} }
func (v Vec2) Ceil() Vec2 { return Vec2{math.Ceil(v.X), math.Ceil(v.Y)} }
func (v Vec2) Round() Vec2 { return Vec2{math.Round(v.X), math.Round(v.Y)} }
func (v Vec2) Abs() Vec2 { return Vec2{math.Abs(v.X), math.Abs(v.Y)} }

// Equals reports exact component equality.
func (v Vec2) Equals(o Vec2) bool { return v.X == o.X && v.Y == o.Y }

// IsFinite reports whether both components are finite numbers.
func (v Vec2) IsFinite() bool { return isFinite(v.X) && isFinite(v.Y) }
