package ebitenhost

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/salinity"
)

// arcStep is the largest angle covered by one flattened arc segment.
const arcStep = math.Pi / 32

// whiteSubImage is the 1x1 source for solid triangles.
var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

type subpath struct {
	points []salinity.Vec2 // device space
	closed bool
}

type state struct {
	matrix    salinity.Matrix
	fill      salinity.Paint
	stroke    salinity.Paint
	lineWidth float64
	dash      []float64
	alpha     float64
	font      salinity.Font
	clip      image.Rectangle
}

// Surface draws onto an *ebiten.Image with ebiten's vector and text/v2
// packages. Paths are flattened to device space when they are built.
// Clipping is rectangular: Clip narrows the region to the bounding box of
// the current path, which is exact for the axis-aligned masks a camera
// without rotation produces.
type Surface struct {
	target *ebiten.Image
	st     state
	stack  []state
	paths  []subpath

	sources map[string]*text.GoTextFaceSource

	verts []ebiten.Vertex
	idx   []uint16
}

var _ salinity.Surface = (*Surface)(nil)

// NewSurface returns a surface with the Go fonts registered as "goregular",
// "gobold" and "gomono". Call SetTarget before each frame.
func NewSurface() (*Surface, error) {
	s := &Surface{sources: map[string]*text.GoTextFaceSource{}}
	for family, ttf := range map[string][]byte{
		"goregular": goregular.TTF,
		"gobold":    gobold.TTF,
		"gomono":    gomono.TTF,
	} {
		if err := s.RegisterFont(family, ttf); err != nil {
			return nil, err
		}
	}
	s.reset()
	return s, nil
}

// RegisterFont makes a TrueType or OpenType font available as family.
func (s *Surface) RegisterFont(family string, data []byte) error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("ebitenhost: font %q: %w", family, err)
	}
	s.sources[family] = src
	return nil
}

// SetTarget points the surface at the image drawn this frame and resets
// the drawing state.
func (s *Surface) SetTarget(img *ebiten.Image) {
	s.target = img
	s.reset()
}

// Target returns the current image.
func (s *Surface) Target() *ebiten.Image { return s.target }

func (s *Surface) reset() {
	s.stack = s.stack[:0]
	s.paths = s.paths[:0]
	s.st = state{
		matrix:    salinity.IdentityMatrix(),
		lineWidth: 1,
		alpha:     1,
		font:      salinity.DefaultFont,
	}
	if s.target != nil {
		s.st.clip = s.target.Bounds()
	}
}

func (s *Surface) Size() (w, h int) {
	if s.target == nil {
		return 0, 0
	}
	b := s.target.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Clear(c salinity.Color) {
	if s.target != nil {
		s.target.Fill(c.NRGBA())
	}
}

func (s *Surface) Save() {
	st := s.st
	st.dash = append([]float64(nil), s.st.dash...)
	s.stack = append(s.stack, st)
}

func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.st = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Surface) SetTransform(m salinity.Matrix) { s.st.matrix = m }

func (s *Surface) Transform(m salinity.Matrix) { s.st.matrix = s.st.matrix.Multiply(m) }

func (s *Surface) SetAlpha(a float64) { s.st.alpha = a }

func (s *Surface) SetFillPaint(p salinity.Paint) { s.st.fill = p }

func (s *Surface) SetStrokePaint(p salinity.Paint) { s.st.stroke = p }

func (s *Surface) SetLineWidth(w float64) { s.st.lineWidth = w }

func (s *Surface) SetDash(pattern []float64) {
	s.st.dash = append(s.st.dash[:0], pattern...)
}

func (s *Surface) BeginPath() { s.paths = s.paths[:0] }

func (s *Surface) MoveTo(x, y float64) {
	s.paths = append(s.paths, subpath{
		points: []salinity.Vec2{s.st.matrix.TransformPoint(salinity.Vec2{X: x, Y: y})},
	})
}

func (s *Surface) LineTo(x, y float64) {
	if len(s.paths) == 0 {
		s.MoveTo(x, y)
		return
	}
	sp := &s.paths[len(s.paths)-1]
	sp.points = append(sp.points, s.st.matrix.TransformPoint(salinity.Vec2{X: x, Y: y}))
}

// Arc appends a clockwise arc, flattened in user space so that non-uniform
// transforms turn it into an ellipse.
func (s *Surface) Arc(cx, cy, r, a0, a1 float64) {
	for a1 < a0 {
		a1 += 2 * math.Pi
	}
	n := int(math.Ceil((a1 - a0) / arcStep))
	if n < 1 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		s.LineTo(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
}

func (s *Surface) Rect(x, y, w, h float64) {
	s.MoveTo(x, y)
	s.LineTo(x+w, y)
	s.LineTo(x+w, y+h)
	s.LineTo(x, y+h)
	s.ClosePath()
}

func (s *Surface) ClosePath() {
	if len(s.paths) > 0 {
		s.paths[len(s.paths)-1].closed = true
	}
}

func (s *Surface) Fill() {
	if s.target == nil || s.st.fill.IsNone() || len(s.paths) == 0 {
		return
	}
	var p vector.Path
	for _, sp := range s.paths {
		appendPolyline(&p, sp.points, true)
	}
	s.verts, s.idx = p.AppendVerticesAndIndicesForFilling(s.verts[:0], s.idx[:0])
	s.drawTriangles(s.st.fill, ebiten.FillRuleNonZero)
}

func (s *Surface) Stroke() {
	if s.target == nil || s.st.stroke.IsNone() || len(s.paths) == 0 || s.st.lineWidth <= 0 {
		return
	}
	scale := s.scale()
	var p vector.Path
	for _, sp := range s.paths {
		pts := sp.points
		if sp.closed && len(pts) > 1 {
			pts = append(append([]salinity.Vec2(nil), pts...), pts[0])
		}
		if len(s.st.dash) == 0 {
			appendPolyline(&p, pts, false)
			continue
		}
		for _, dash := range dashPolyline(pts, s.st.dash, scale) {
			appendPolyline(&p, dash, false)
		}
	}
	op := &vector.StrokeOptions{
		Width:      float32(s.st.lineWidth * scale),
		LineJoin:   vector.LineJoinMiter,
		MiterLimit: 10,
	}
	s.verts, s.idx = p.AppendVerticesAndIndicesForStroke(s.verts[:0], s.idx[:0], op)
	s.drawTriangles(s.st.stroke, ebiten.FillRuleFillAll)
}

// Clip narrows the clip rectangle to the bounding box of the current path.
func (s *Surface) Clip() {
	box := salinity.EmptyBox()
	for _, sp := range s.paths {
		for _, pt := range sp.points {
			box = box.ExpandByPoint(pt)
		}
	}
	if box.IsEmpty() {
		s.st.clip = image.Rectangle{}
		return
	}
	r := image.Rect(
		int(math.Floor(box.Min.X)), int(math.Floor(box.Min.Y)),
		int(math.Ceil(box.Max.X)), int(math.Ceil(box.Max.Y)),
	)
	s.st.clip = s.st.clip.Intersect(r)
}

func (s *Surface) drawTriangles(paint salinity.Paint, rule ebiten.FillRule) {
	if len(s.idx) == 0 || s.st.clip.Empty() {
		return
	}
	inv := s.st.matrix.Invert()
	a := s.st.alpha
	for i := range s.verts {
		v := &s.verts[i]
		c := paint.Color
		if paint.Kind != salinity.PaintSolid {
			c = paint.ColorAt(inv.TransformPoint(salinity.Vec2{X: float64(v.DstX), Y: float64(v.DstY)}))
		}
		v.SrcX, v.SrcY = 1.5, 1.5
		v.ColorR = float32(c.R)
		v.ColorG = float32(c.G)
		v.ColorB = float32(c.B)
		v.ColorA = float32(c.A * a)
	}
	dst := s.target
	if s.st.clip != s.target.Bounds() {
		dst = s.target.SubImage(s.st.clip).(*ebiten.Image)
	}
	dst.DrawTriangles(s.verts, s.idx, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  rule,
	})
}

func (s *Surface) SetFont(f salinity.Font) { s.st.font = f }

func (s *Surface) face() *text.GoTextFace {
	src := s.sources[s.st.font.Family]
	if src == nil {
		src = s.sources[salinity.DefaultFont.Family]
	}
	if src == nil || s.st.font.Size <= 0 {
		return nil
	}
	return &text.GoTextFace{Source: src, Size: s.st.font.Size}
}

func (s *Surface) MeasureText(str string) salinity.TextMetrics {
	face := s.face()
	if face == nil {
		return salinity.TextMetrics{}
	}
	m := face.Metrics()
	return salinity.TextMetrics{Width: text.Advance(str, face), Ascent: m.HAscent, Descent: m.HDescent}
}

func (s *Surface) FillText(str string, x, y float64, align salinity.TextAlign, baseline salinity.TextBaseline) {
	s.drawText(str, x, y, align, baseline, s.st.fill)
}

func (s *Surface) StrokeText(str string, x, y float64, align salinity.TextAlign, baseline salinity.TextBaseline) {
	s.drawText(str, x, y, align, baseline, s.st.stroke)
}

func (s *Surface) drawText(str string, x, y float64, align salinity.TextAlign, baseline salinity.TextBaseline, p salinity.Paint) {
	face := s.face()
	if s.target == nil || face == nil || p.IsNone() || str == "" || s.st.clip.Empty() {
		return
	}
	m := s.MeasureText(str)
	origin := salinity.TextOrigin(m, x, y, align, baseline)
	c := p.ColorAt(salinity.Vec2{X: origin.X + m.Width/2, Y: origin.Y + (m.Ascent+m.Descent)/2})

	op := &text.DrawOptions{}
	op.GeoM.Translate(origin.X, origin.Y)
	op.GeoM.Concat(toGeoM(s.st.matrix))
	op.ColorScale.ScaleWithColor(c.NRGBA())
	op.ColorScale.ScaleAlpha(float32(s.st.alpha))
	dst := s.target
	if s.st.clip != s.target.Bounds() {
		dst = s.target.SubImage(s.st.clip).(*ebiten.Image)
	}
	text.Draw(dst, str, face, op)
}

// scale is the average linear scale of the current transform.
func (s *Surface) scale() float64 {
	return math.Sqrt(math.Abs(s.st.matrix.Determinant()))
}

func toGeoM(m salinity.Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

func appendPolyline(p *vector.Path, pts []salinity.Vec2, closed bool) {
	if len(pts) == 0 {
		return
	}
	p.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		p.LineTo(float32(pt.X), float32(pt.Y))
	}
	if closed {
		p.Close()
	}
}

// dashPolyline splits a device-space polyline into the "on" runs of a dash
// pattern given in user units.
func dashPolyline(pts []salinity.Vec2, pattern []float64, scale float64) [][]salinity.Vec2 {
	total := 0.0
	for _, d := range pattern {
		total += d
	}
	if total <= 0 || len(pts) < 2 {
		return [][]salinity.Vec2{pts}
	}
	if len(pattern)%2 == 1 {
		pattern = append(append([]float64(nil), pattern...), pattern...)
	}
	var out [][]salinity.Vec2
	idx := 0
	left := pattern[0] * scale
	on := true
	cur := []salinity.Vec2{pts[0]}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		seg := b.Sub(a).Length()
		for seg > 0 {
			step := math.Min(seg, left)
			a = a.Add(b.Sub(a).Scale(step / seg))
			seg -= step
			left -= step
			if on {
				cur = append(cur, a)
			}
			if left > 0 {
				continue
			}
			if on && len(cur) > 1 {
				out = append(out, cur)
			}
			cur = nil
			idx = (idx + 1) % len(pattern)
			left = pattern[idx] * scale
			on = !on
			if on {
				cur = []salinity.Vec2{a}
			}
			if left <= 0 {
				left = 1e-9
			}
		}
	}
	if on && len(cur) > 1 {
		out = append(out, cur)
	}
	return out
}
