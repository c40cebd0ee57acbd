package salinity

import "sort"

// PaintKind identifies how a Paint colors a shape.
type PaintKind uint8

const (
	// PaintNone draws nothing. The zero Paint is PaintNone.
	PaintNone PaintKind = iota
	PaintSolid
	PaintLinear
	PaintRadial
)

// ColorStop is one entry of a gradient ramp.
type ColorStop struct {
	Offset float64
	Color  Color
}

// Paint is a fill or stroke style: a solid color or a linear/radial gradient
// defined in the node's local space.
type Paint struct {
	Kind  PaintKind
	Color Color

	// Linear: gradient axis from Start to End.
	// Radial: circles centered on Start with radii StartRadius and EndRadius.
	Start       Vec2
	End         Vec2
	StartRadius float64
	EndRadius   float64
	Stops       []ColorStop
}

// NoPaint is the empty style.
var NoPaint = Paint{}

// Solid returns a single-color paint.
func Solid(c Color) Paint {
	return Paint{Kind: PaintSolid, Color: c}
}

// LinearGradient returns a gradient along the axis from start to end.
func LinearGradient(start, end Vec2, stops ...ColorStop) Paint {
	return Paint{Kind: PaintLinear, Start: start, End: end, Stops: sortedStops(stops)}
}

// RadialGradient returns a gradient between two circles centered on center.
func RadialGradient(center Vec2, r0, r1 float64, stops ...ColorStop) Paint {
	return Paint{
		Kind:        PaintRadial,
		Start:       center,
		End:         center,
		StartRadius: r0,
		EndRadius:   r1,
		Stops:       sortedStops(stops),
	}
}

// DefaultLinearGradient returns the default linear gradient axis,
// (-100,0) to (100,0), with the given stops.
func DefaultLinearGradient(stops ...ColorStop) Paint {
	return LinearGradient(Vec2{-100, 0}, Vec2{100, 0}, stops...)
}

// DefaultRadialGradient returns the default radial gradient, radii 10 and
// 50 around the origin, with the given stops.
func DefaultRadialGradient(stops ...ColorStop) Paint {
	return RadialGradient(Vec2{}, 10, 50, stops...)
}

func sortedStops(stops []ColorStop) []ColorStop {
	out := make([]ColorStop, len(stops))
	copy(out, stops)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// IsNone reports whether the paint draws nothing.
func (p Paint) IsNone() bool {
	switch p.Kind {
	case PaintNone:
		return true
	case PaintSolid:
		return p.Color.A <= 0
	}
	return len(p.Stops) == 0
}

// ColorAt evaluates the paint at local point pt. Backends without native
// gradients use it to color vertices.
func (p Paint) ColorAt(pt Vec2) Color {
	switch p.Kind {
	case PaintSolid:
		return p.Color
	case PaintLinear:
		axis := p.End.Sub(p.Start)
		l2 := axis.Dot(axis)
		if l2 == 0 {
			return p.rampAt(0)
		}
		return p.rampAt(pt.Sub(p.Start).Dot(axis) / l2)
	case PaintRadial:
		span := p.EndRadius - p.StartRadius
		if span == 0 {
			return p.rampAt(0)
		}
		return p.rampAt((pt.Distance(p.Start) - p.StartRadius) / span)
	}
	return ColorTransparent
}

func (p Paint) rampAt(t float64) Color {
	if len(p.Stops) == 0 {
		return ColorTransparent
	}
	t = clamp(t, 0, 1)
	if t <= p.Stops[0].Offset {
		return p.Stops[0].Color
	}
	for i := 1; i < len(p.Stops); i++ {
		a, b := p.Stops[i-1], p.Stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			f := (t - a.Offset) / span
			return Color{
				R: lerp(a.Color.R, b.Color.R, f),
				G: lerp(a.Color.G, b.Color.G, f),
				B: lerp(a.Color.B, b.Color.B, f),
				A: lerp(a.Color.A, b.Color.A, f),
			}
		}
	}
	return p.Stops[len(p.Stops)-1].Color
}
