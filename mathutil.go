package salinity

import "math"

// minScale is the smallest magnitude a scale component may reach before the
// local matrix stops being invertible in practice.
const minScale = 0.00001

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// sanitize replaces NaN and infinities with zero.
func sanitize(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}

// noZero sanitizes v and pushes it away from zero so that |v| >= lo,
// preserving sign. Zero maps to +lo.
func noZero(v, lo float64) float64 {
	v = sanitize(v)
	if v >= 0 && v < lo {
		return lo
	}
	if v < 0 && v > -lo {
		return -lo
	}
	return v
}

func noZeroVec(v Vec2) Vec2 {
	return Vec2{noZero(v.X, minScale), noZero(v.Y, minScale)}
}

func sanitizeVec(v Vec2) Vec2 {
	return Vec2{sanitize(v.X), sanitize(v.Y)}
}

// NormalizeAngle wraps a radian angle into [0, 2π).
func NormalizeAngle(rad float64) float64 {
	a := math.Mod(rad, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
