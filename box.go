package salinity

import "math"

// Box is an axis-aligned bounding box. The empty box has Min = +Inf and
// Max = -Inf on both axes, so that unions and point expansion need no
// special cases.
type Box struct {
	Min, Max Vec2
}

// EmptyBox returns the empty box.
func EmptyBox() Box {
	return Box{
		Min: Vec2{math.Inf(1), math.Inf(1)},
		Max: Vec2{math.Inf(-1), math.Inf(-1)},
	}
}

// NewBox returns the box spanning min and max.
func NewBox(minX, minY, maxX, maxY float64) Box {
	return Box{Min: Vec2{minX, minY}, Max: Vec2{maxX, maxY}}
}

// BoxFromPoints returns the smallest box containing every point.
func BoxFromPoints(points ...Vec2) Box {
	b := EmptyBox()
	for _, p := range points {
		b = b.ExpandByPoint(p)
	}
	return b
}

// BoxFromCenter returns a box of the given size centered on center.
func BoxFromCenter(center, size Vec2) Box {
	half := size.Scale(0.5)
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y
}

// IsFinite reports whether every bound is a finite number.
func (b Box) IsFinite() bool {
	return b.Min.IsFinite() && b.Max.IsFinite()
}

// Center returns the box center, or the zero vector when empty.
func (b Box) Center() Vec2 {
	if b.IsEmpty() {
		return Vec2{}
	}
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent, or the zero vector when empty.
func (b Box) Size() Vec2 {
	if b.IsEmpty() {
		return Vec2{}
	}
	return b.Max.Sub(b.Min)
}

// Corners returns the four corners in the order top-left, top-right,
// bottom-right, bottom-left.
func (b Box) Corners() [4]Vec2 {
	return [4]Vec2{
		b.Min,
		{b.Max.X, b.Min.Y},
		b.Max,
		{b.Min.X, b.Max.Y},
	}
}

func (b Box) ExpandByPoint(p Vec2) Box {
	return Box{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// ExpandByVector grows the box by v on every side.
func (b Box) ExpandByVector(v Vec2) Box {
	return Box{Min: b.Min.Sub(v), Max: b.Max.Add(v)}
}

// ExpandByScalar grows the box by s on every side.
func (b Box) ExpandByScalar(s float64) Box {
	return b.ExpandByVector(Vec2{s, s})
}

// ContainsPoint reports whether p lies inside the box, edges included.
func (b Box) ContainsPoint(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// ContainsBox reports whether o lies entirely inside b.
func (b Box) ContainsBox(o Box) bool {
	return b.Min.X <= o.Min.X && o.Max.X <= b.Max.X &&
		b.Min.Y <= o.Min.Y && o.Max.Y <= b.Max.Y
}

// Intersects reports whether b and o overlap. Touching boxes intersect.
func (b Box) Intersects(o Box) bool {
	return !(o.Max.X < b.Min.X || o.Min.X > b.Max.X ||
		o.Max.Y < b.Min.Y || o.Min.Y > b.Max.Y)
}

// DistanceToPoint returns the distance from p to the closest point of the
// box; zero when p is inside.
func (b Box) DistanceToPoint(p Vec2) float64 {
	return p.Clamp(b.Min, b.Max).Distance(p)
}

// Intersect returns the overlapping region, or the empty box.
func (b Box) Intersect(o Box) Box {
	r := Box{Min: b.Min.Max(o.Min), Max: b.Max.Min(o.Max)}
	if r.IsEmpty() {
		return EmptyBox()
	}
	return r
}

// Union returns the smallest box containing both boxes. The union with an
// empty box is the other box.
func (b Box) Union(o Box) Box {
	return Box{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

func (b Box) Translate(offset Vec2) Box {
	return Box{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

func (b Box) Equals(o Box) bool {
	return b.Min.Equals(o.Min) && b.Max.Equals(o.Max)
}

// Transform returns the axis-aligned envelope of the four corners of b
// mapped through m. Non-finite boxes are returned unchanged.
func (b Box) Transform(m Matrix) Box {
	if !b.IsFinite() {
		return b
	}
	c := b.Corners()
	return BoxFromPoints(
		m.TransformPoint(c[0]),
		m.TransformPoint(c[1]),
		m.TransformPoint(c[2]),
		m.TransformPoint(c[3]),
	)
}
