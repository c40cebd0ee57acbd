package salinity

import "math"

// kindOps holds the shape behavior for one NodeKind. Nil entries mean the
// kind has no such behavior.
type kindOps struct {
	// bounds computes the local bounding box. ok is false when the box
	// cannot be computed yet (text without a surface to measure against).
	bounds func(n *Node, s Surface) (b Box, ok bool)
	inside func(n *Node, local Vec2) bool
	draw   func(n *Node, s Surface, f *Frame)
	// clip adds the mask's region to the current path.
	clip   func(n *Node, s Surface)
	isMask bool
}

// kindTable is filled in init: the draw functions reach back into it through
// refreshBounds and applyMasks.
var kindTable [numKinds]kindOps

func init() {
	kindTable = [numKinds]kindOps{
		KindGroup: {},
		KindBox: {
			bounds: func(n *Node, _ Surface) (Box, bool) { return n.Box, true },
			inside: func(n *Node, p Vec2) bool { return n.Box.ContainsPoint(p) },
			draw:   drawBox,
		},
		KindCircle: {
			bounds: func(n *Node, _ Surface) (Box, bool) {
				return NewBox(-n.Radius, -n.Radius, n.Radius, n.Radius), true
			},
			inside: func(n *Node, p Vec2) bool { return p.Length() <= n.Radius },
			draw:   drawCircle,
		},
		KindLine: {
			bounds: func(n *Node, _ Surface) (Box, bool) { return BoxFromPoints(n.From, n.To), true },
			inside: insideLine,
			draw:   drawLine,
		},
		KindText: {
			bounds: boundsText,
			inside: func(n *Node, p Vec2) bool { return n.boundingBox.ContainsPoint(p) },
			draw:   drawText,
		},
		KindBoxMask: {
			bounds: func(n *Node, _ Surface) (Box, bool) { return n.Box, true },
			inside: func(n *Node, p Vec2) bool { return n.Box.ContainsPoint(p) },
			clip:   clipBoxMask,
			isMask: true,
		},
	}
}

// shapeSignature captures the fields bounds depend on. A changed signature
// triggers a bounds recompute.
type shapeSignature struct {
	set    bool
	kind   NodeKind
	box    Box
	radius float64
	from   Vec2
	to     Vec2
	text   string
	font   Font
	align  TextAlign
	base   TextBaseline
}

func (n *Node) signature() shapeSignature {
	return shapeSignature{
		set:    true,
		kind:   n.Kind,
		box:    n.Box,
		radius: n.Radius,
		from:   n.From,
		to:     n.To,
		text:   n.Text,
		font:   n.Font,
		align:  n.TextAlign,
		base:   n.TextBaseline,
	}
}

// refreshBounds recomputes the local bounding box when the shape changed.
// s may be nil; kinds that need a surface keep their previous box until one
// is available.
func (n *Node) refreshBounds(s Surface) {
	ops := kindTable[n.Kind]
	if ops.bounds == nil {
		return
	}
	sig := n.signature()
	if sig == n.shapeSig {
		return
	}
	b, ok := ops.bounds(n, s)
	if !ok {
		return
	}
	n.boundingBox = b
	n.shapeSig = sig
}

// screenMatrix maps n's local space to surface pixels.
func screenMatrix(n *Node, f *Frame) Matrix {
	if f == nil || f.Camera == nil {
		return n.globalMatrix
	}
	return f.Camera.Matrix().Multiply(n.globalMatrix)
}

// strokeWidth returns the width to stroke n with in its own local space.
// Constant-width strokes are divided by the average screen scale.
func strokeWidth(n *Node, f *Frame) float64 {
	if !n.ConstantWidth {
		return n.LineWidth
	}
	s := screenMatrix(n, f).ScaleFactors()
	avg := (s.X + s.Y) / 2
	if avg < minScale {
		return n.LineWidth
	}
	return n.LineWidth / avg
}

// strokeScreenPolygon strokes pts (local space) as a closed or open
// polyline in surface pixels, so the line width is not scaled.
func strokeScreenPolygon(n *Node, s Surface, f *Frame, closed bool, pts ...Vec2) {
	m := screenMatrix(n, f)
	s.Save()
	s.SetTransform(IdentityMatrix())
	s.SetLineWidth(n.LineWidth)
	s.BeginPath()
	for i, p := range pts {
		q := m.TransformPoint(p)
		if i == 0 {
			s.MoveTo(q.X, q.Y)
		} else {
			s.LineTo(q.X, q.Y)
		}
	}
	if closed {
		s.ClosePath()
	}
	s.Stroke()
	s.Restore()
}

func drawBox(n *Node, s Surface, f *Frame) {
	b := n.Box
	size := b.Size()
	if !n.Fill.IsNone() {
		s.SetFillPaint(n.Fill)
		s.BeginPath()
		s.Rect(b.Min.X, b.Min.Y, size.X, size.Y)
		s.Fill()
	}
	if n.Stroke.IsNone() {
		return
	}
	s.SetStrokePaint(n.Stroke)
	if n.ConstantWidth {
		c := b.Corners()
		strokeScreenPolygon(n, s, f, true, c[0], c[1], c[2], c[3])
		return
	}
	s.SetLineWidth(n.LineWidth)
	s.BeginPath()
	s.Rect(b.Min.X, b.Min.Y, size.X, size.Y)
	s.Stroke()
}

func drawCircle(n *Node, s Surface, f *Frame) {
	s.BeginPath()
	s.Arc(0, 0, n.Radius, 0, 2*math.Pi)
	if !n.Fill.IsNone() {
		s.SetFillPaint(n.Fill)
		s.Fill()
	}
	if !n.Stroke.IsNone() {
		s.SetStrokePaint(n.Stroke)
		s.SetLineWidth(strokeWidth(n, f))
		s.Stroke()
	}
}

func drawLine(n *Node, s Surface, f *Frame) {
	if n.Stroke.IsNone() {
		return
	}
	s.SetStrokePaint(n.Stroke)
	s.SetDash(n.Dash)
	if n.ConstantWidth {
		strokeScreenPolygon(n, s, f, false, n.From, n.To)
	} else {
		s.SetLineWidth(n.LineWidth)
		s.BeginPath()
		s.MoveTo(n.From.X, n.From.Y)
		s.LineTo(n.To.X, n.To.Y)
		s.Stroke()
	}
	s.SetDash(nil)
}

// insideLine tests the pointer against the segment in world space so the
// pointer buffer stays constant in screen pixels.
func insideLine(n *Node, local Vec2) bool {
	m := n.globalMatrix
	p := m.TransformPoint(local)
	a := m.TransformPoint(n.From)
	b := m.TransformPoint(n.To)

	zoom := n.viewZoom
	if zoom <= 0 {
		zoom = 1
	}
	var width float64
	if n.ConstantWidth {
		width = n.LineWidth / zoom
	} else {
		sc := m.ScaleFactors()
		px := math.Abs(n.To.X - n.From.X)
		py := math.Abs(n.To.Y - n.From.Y)
		if px+py > 0 {
			width = n.LineWidth * (math.Abs(sc.X*py) + math.Abs(sc.Y*px)) / (px + py)
		} else {
			width = n.LineWidth * (sc.X + sc.Y) / 2
		}
	}
	buffer := width/2 + n.PointerBuffer/zoom
	return distanceToSegment(p, a, b) <= buffer
}

func distanceToSegment(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Distance(a)
	}
	t := clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return p.Distance(a.Add(ab.Scale(t)))
}

func boundsText(n *Node, s Surface) (Box, bool) {
	if s == nil {
		return Box{}, false
	}
	s.SetFont(n.Font)
	m := s.MeasureText(n.Text)
	h := math.Max(m.Ascent, m.Descent) * 2
	var x0 float64
	switch n.TextAlign {
	case TextAlignCenter:
		x0 = -m.Width / 2
	case TextAlignRight:
		x0 = -m.Width
	}
	var y0 float64
	switch n.TextBaseline {
	case TextBaselineMiddle:
		y0 = -h / 2
	case TextBaselineAlphabetic:
		y0 = -m.Ascent
	case TextBaselineBottom:
		y0 = -h
	}
	return NewBox(x0, y0, x0+m.Width, y0+h), true
}

func drawText(n *Node, s Surface, _ *Frame) {
	n.refreshBounds(s)
	s.SetFont(n.Font)
	if !n.Fill.IsNone() {
		s.SetFillPaint(n.Fill)
		s.FillText(n.Text, 0, 0, n.TextAlign, n.TextBaseline)
	}
	if !n.Stroke.IsNone() {
		s.SetStrokePaint(n.Stroke)
		s.SetLineWidth(n.LineWidth)
		s.StrokeText(n.Text, 0, 0, n.TextAlign, n.TextBaseline)
	}
}
