package salinity

import (
	"fmt"
	"strings"
	"testing"
)

// recordSurface is a Surface that logs the calls the renderer makes.
// Fills and strokes are logged with their paint color so tests can tell
// nodes apart.
type recordSurface struct {
	w, h   int
	calls  []string
	fill   Paint
	stroke Paint
	font   Font
	depth  int
}

func newRecordSurface(w, h int) *recordSurface {
	return &recordSurface{w: w, h: h}
}

func (s *recordSurface) log(format string, args ...any) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *recordSurface) reset() { s.calls = s.calls[:0] }

// only returns the logged calls starting with prefix.
func (s *recordSurface) only(prefix string) []string {
	var out []string
	for _, c := range s.calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func paintName(p Paint) string {
	if p.Kind != PaintSolid {
		return fmt.Sprintf("paint%d", p.Kind)
	}
	b, _ := p.Color.MarshalText()
	return string(b)
}

func (s *recordSurface) Size() (int, int) { return s.w, s.h }
func (s *recordSurface) Clear(c Color) { s.log("clear") }

func (s *recordSurface) Save() {
	s.depth++
	s.log("save")
}

func (s *recordSurface) Restore() {
	s.depth--
	s.log("restore")
}

func (s *recordSurface) SetTransform(m Matrix) {}
func (s *recordSurface) Transform(m Matrix) {}
func (s *recordSurface) SetAlpha(a float64) {}
func (s *recordSurface) SetFillPaint(p Paint) { s.fill = p }
func (s *recordSurface) SetStrokePaint(p Paint) { s.stroke = p }
func (s *recordSurface) SetLineWidth(w float64) {}
func (s *recordSurface) SetDash(pattern []float64) {}
func (s *recordSurface) BeginPath() {}
func (s *recordSurface) MoveTo(x, y float64) {}
func (s *recordSurface) LineTo(x, y float64) {}
func (s *recordSurface) Arc(cx, cy, r, a0, a1 float64) {}
func (s *recordSurface) Rect(x, y, w, h float64) {}
func (s *recordSurface) ClosePath() {}
func (s *recordSurface) Fill() { s.log("fill %s", paintName(s.fill)) }
func (s *recordSurface) Stroke() { s.log("stroke %s", paintName(s.stroke)) }
func (s *recordSurface) Clip() { s.log("clip") }
func (s *recordSurface) SetFont(f Font) { s.font = f }

// MeasureText gives every glyph half the font size in width.
func (s *recordSurface) MeasureText(str string) TextMetrics {
	return TextMetrics{Width: float64(len(str)) * s.font.Size / 2, Ascent: s.font.Size * 0.8, Descent: s.font.Size * 0.2}
}

func (s *recordSurface) FillText(str string, x, y float64, align TextAlign, baseline TextBaseline) {
	s.log("text %s", str)
}

func (s *recordSurface) StrokeText(str string, x, y float64, align TextAlign, baseline TextBaseline) {
	s.log("stroketext %s", str)
}

// testRig is a renderer over a recordSurface with a fresh scene and camera.
type testRig struct {
	s     *recordSurface
	r     *Renderer
	scene *Node
	cam   *Camera
}

func newTestRig() *testRig {
	s := newRecordSurface(800, 600)
	return &testRig{
		s:     s,
		r:     NewRenderer(s, DefaultConfig()),
		scene: NewGroup("scene"),
		cam:   NewCamera(),
	}
}

func (g *testRig) frame() { g.r.Render(g.scene, g.cam, 1.0/60) }

// drain renders until every injected step has been consumed.
func (g *testRig) drain() {
	for g.r.Injecting() {
		g.frame()
	}
}

func TestTextOrigin(t *testing.T) {
	m := TextMetrics{Width: 40, Ascent: 8, Descent: 2}
	tests := []struct {
		name     string
		align    TextAlign
		baseline TextBaseline
		want     Vec2
	}{
		{"left top", TextAlignLeft, TextBaselineTop, Vec2{0, 0}},
		{"center middle", TextAlignCenter, TextBaselineMiddle, Vec2{-20, -5}},
		{"right alphabetic", TextAlignRight, TextBaselineAlphabetic, Vec2{-40, -8}},
		{"left bottom", TextAlignLeft, TextBaselineBottom, Vec2{0, -10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, "origin", TextOrigin(m, 0, 0, tt.align, tt.baseline), tt.want)
		})
	}
}
