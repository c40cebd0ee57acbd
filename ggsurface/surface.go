// Package ggsurface is a headless software salinity.Surface backed by
// github.com/gogpu/gg. It renders scenes to images without a window, for
// tests, thumbnails and the demo's render command.
package ggsurface

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/salinity"
)

type faceKey struct {
	family string
	size   float64
}

type state struct {
	matrix    salinity.Matrix
	fill      salinity.Paint
	stroke    salinity.Paint
	lineWidth float64
	dash      []float64
	alpha     float64
	font      salinity.Font
}

// Surface draws into an in-memory RGBA image.
type Surface struct {
	ctx     *gg.Context
	st      state
	stack   []state
	hasPath bool

	sources map[string]*text.FontSource
	faces   map[faceKey]text.Face
}

var _ salinity.Surface = (*Surface)(nil)

// New creates a w by h surface with the Go fonts registered as "goregular",
// "gobold" and "gomono".
func New(w, h int) (*Surface, error) {
	s := &Surface{
		ctx:     gg.NewContext(w, h),
		sources: map[string]*text.FontSource{},
		faces:   map[faceKey]text.Face{},
	}
	s.st = state{
		matrix:    salinity.IdentityMatrix(),
		lineWidth: 1,
		alpha:     1,
		font:      salinity.DefaultFont,
	}
	for family, ttf := range map[string][]byte{
		"goregular": goregular.TTF,
		"gobold":    gobold.TTF,
		"gomono":    gomono.TTF,
	} {
		if err := s.RegisterFont(family, ttf); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// RegisterFont makes a TrueType or OpenType font available as family.
func (s *Surface) RegisterFont(family string, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("ggsurface: font %q: %w", family, err)
	}
	s.sources[family] = src
	for k := range s.faces {
		if k.family == family {
			delete(s.faces, k)
		}
	}
	return nil
}

// Image returns the rendered pixels.
func (s *Surface) Image() image.Image { return s.ctx.Image() }

// SavePNG writes the rendered pixels to path.
func (s *Surface) SavePNG(path string) error { return s.ctx.SavePNG(path) }

// Close releases the drawing context.
func (s *Surface) Close() error { return s.ctx.Close() }

func (s *Surface) Size() (w, h int) { return s.ctx.Width(), s.ctx.Height() }

func (s *Surface) Clear(c salinity.Color) {
	s.ctx.ClearWithColor(toRGBA(c, 1))
}

func (s *Surface) Save() {
	st := s.st
	st.dash = append([]float64(nil), s.st.dash...)
	s.stack = append(s.stack, st)
	s.ctx.Push()
}

func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.st = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.ctx.Pop()
	s.ctx.SetTransform(toMatrix(s.st.matrix))
}

func (s *Surface) SetTransform(m salinity.Matrix) {
	s.st.matrix = m
	s.ctx.SetTransform(toMatrix(m))
}

func (s *Surface) Transform(m salinity.Matrix) {
	s.SetTransform(s.st.matrix.Multiply(m))
}

func (s *Surface) SetAlpha(a float64) { s.st.alpha = a }
func (s *Surface) SetFillPaint(p salinity.Paint) { s.st.fill = p }
func (s *Surface) SetStrokePaint(p salinity.Paint) { s.st.stroke = p }
func (s *Surface) SetLineWidth(w float64) { s.st.lineWidth = w }

func (s *Surface) SetDash(pattern []float64) {
	s.st.dash = append(s.st.dash[:0], pattern...)
}

func (s *Surface) BeginPath() {
	s.ctx.ClearPath()
	s.hasPath = false
}

func (s *Surface) MoveTo(x, y float64) {
	s.ctx.MoveTo(x, y)
	s.hasPath = true
}

func (s *Surface) LineTo(x, y float64) {
	if !s.hasPath {
		s.MoveTo(x, y)
		return
	}
	s.ctx.LineTo(x, y)
}

// Arc appends a clockwise arc in user space. It is built from cubic
// segments so non-uniform transforms turn it into an ellipse.
func (s *Surface) Arc(cx, cy, r, a0, a1 float64) {
	for a1 < a0 {
		a1 += 2 * math.Pi
	}
	start := salinity.Vec2{X: cx + r*math.Cos(a0), Y: cy + r*math.Sin(a0)}
	if s.hasPath {
		s.ctx.LineTo(start.X, start.Y)
	} else {
		s.MoveTo(start.X, start.Y)
	}
	n := int(math.Ceil((a1 - a0) / (math.Pi / 2)))
	if n == 0 {
		return
	}
	step := (a1 - a0) / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := 0; i < n; i++ {
		t0 := a0 + float64(i)*step
		t1 := t0 + step
		c0, s0 := math.Cos(t0), math.Sin(t0)
		c1, s1 := math.Cos(t1), math.Sin(t1)
		s.ctx.CubicTo(
			cx+r*(c0-k*s0), cy+r*(s0+k*c0),
			cx+r*(c1+k*s1), cy+r*(s1-k*c1),
			cx+r*c1, cy+r*s1,
		)
	}
}

func (s *Surface) Rect(x, y, w, h float64) {
	s.ctx.DrawRectangle(x, y, w, h)
	s.hasPath = true
}

func (s *Surface) ClosePath() { s.ctx.ClosePath() }

func (s *Surface) Fill() {
	if s.st.fill.IsNone() || !s.hasPath {
		return
	}
	s.ctx.SetFillBrush(s.brush(s.st.fill))
	if err := s.ctx.FillPreserve(); err != nil {
		salinity.Logger().Warn("ggsurface: fill", "err", err)
	}
}

func (s *Surface) Stroke() {
	if s.st.stroke.IsNone() || !s.hasPath || s.st.lineWidth <= 0 {
		return
	}
	scale := s.scale()
	s.ctx.SetStrokeBrush(s.brush(s.st.stroke))
	s.ctx.SetLineWidth(s.st.lineWidth * scale)
	if len(s.st.dash) > 0 {
		dash := make([]float64, len(s.st.dash))
		for i, d := range s.st.dash {
			dash[i] = d * scale
		}
		s.ctx.SetDash(dash...)
	} else {
		s.ctx.ClearDash()
	}
	if err := s.ctx.StrokePreserve(); err != nil {
		salinity.Logger().Warn("ggsurface: stroke", "err", err)
	}
}

func (s *Surface) Clip() {
	s.ctx.ClipPreserve()
}

func (s *Surface) SetFont(f salinity.Font) { s.st.font = f }

func (s *Surface) MeasureText(str string) salinity.TextMetrics {
	face := s.face(s.st.font.Size)
	if face == nil {
		return salinity.TextMetrics{}
	}
	m := face.Metrics()
	return salinity.TextMetrics{Width: face.Advance(str), Ascent: m.Ascent, Descent: m.Descent}
}

func (s *Surface) FillText(str string, x, y float64, align salinity.TextAlign, baseline salinity.TextBaseline) {
	s.drawText(str, x, y, align, baseline, s.st.fill)
}

func (s *Surface) StrokeText(str string, x, y float64, align salinity.TextAlign, baseline salinity.TextBaseline) {
	s.drawText(str, x, y, align, baseline, s.st.stroke)
}

// drawText places the glyphs at the transformed anchor with a face scaled
// to the current transform. gg draws text axis-aligned in device space, so
// rotation and shear of the transform are not applied to the glyphs.
func (s *Surface) drawText(str string, x, y float64, align salinity.TextAlign, baseline salinity.TextBaseline, p salinity.Paint) {
	if p.IsNone() || str == "" {
		return
	}
	m := s.MeasureText(str)
	origin := salinity.TextOrigin(m, x, y, align, baseline)
	anchor := s.st.matrix.TransformPoint(salinity.Vec2{X: origin.X, Y: origin.Y + m.Ascent})
	face := s.face(s.st.font.Size * s.scale())
	if face == nil {
		return
	}
	center := salinity.Vec2{X: origin.X + m.Width/2, Y: origin.Y + (m.Ascent+m.Descent)/2}
	s.ctx.Push()
	s.ctx.Identity()
	s.ctx.SetFont(face)
	s.ctx.SetFillBrush(gg.Solid(toRGBA(p.ColorAt(center), s.st.alpha)))
	s.ctx.DrawString(str, anchor.X, anchor.Y)
	s.ctx.Pop()
}

func (s *Surface) face(size float64) text.Face {
	if size <= 0 {
		return nil
	}
	family := s.st.font.Family
	src := s.sources[family]
	if src == nil {
		family = salinity.DefaultFont.Family
		src = s.sources[family]
	}
	if src == nil {
		return nil
	}
	key := faceKey{family, size}
	if f, ok := s.faces[key]; ok {
		return f
	}
	f := src.Face(size)
	s.faces[key] = f
	return f
}

// scale is the average linear scale of the current transform.
func (s *Surface) scale() float64 {
	return math.Sqrt(math.Abs(s.st.matrix.Determinant()))
}

// brush converts p to a device-space gg brush.
func (s *Surface) brush(p salinity.Paint) gg.Brush {
	a := s.st.alpha
	m := s.st.matrix
	switch p.Kind {
	case salinity.PaintLinear:
		start, end := m.TransformPoint(p.Start), m.TransformPoint(p.End)
		g := gg.NewLinearGradientBrush(start.X, start.Y, end.X, end.Y)
		for _, st := range p.Stops {
			g.AddColorStop(st.Offset, toRGBA(st.Color, a))
		}
		return g
	case salinity.PaintRadial:
		c := m.TransformPoint(p.Start)
		k := s.scale()
		g := gg.NewRadialGradientBrush(c.X, c.Y, p.StartRadius*k, p.EndRadius*k)
		for _, st := range p.Stops {
			g.AddColorStop(st.Offset, toRGBA(st.Color, a))
		}
		return g
	}
	return gg.Solid(toRGBA(p.Color, a))
}

func toRGBA(c salinity.Color, alpha float64) gg.RGBA {
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A * alpha}
}

// toMatrix maps the column-major [a b c d tx ty] layout onto gg's row form.
func toMatrix(m salinity.Matrix) gg.Matrix {
	return gg.Matrix{
		A: m[0], B: m[2], C: m[4],
		D: m[1], E: m[3], F: m[5],
	}
}
