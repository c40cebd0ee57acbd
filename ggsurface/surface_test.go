package ggsurface

import (
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gg"

	"github.com/phanxgames/salinity"
)

func newSurface(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := New(w, h)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func assertPixel(t *testing.T, s *Surface, x, y int, want color.NRGBA) {
	t.Helper()
	got := color.NRGBAModel.Convert(s.Image().At(x, y)).(color.NRGBA)
	near := func(a, b uint8) bool { return math.Abs(float64(a)-float64(b)) <= 2 }
	if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) || !near(got.A, want.A) {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}

func TestRenderBox(t *testing.T) {
	s := newSurface(t, 100, 100)
	cfg := salinity.DefaultConfig()
	r := salinity.NewRenderer(s, cfg)

	scene := salinity.NewGroup("scene")
	box := salinity.NewBoxNode("box")
	box.Box = salinity.NewBox(-20, -20, 20, 20)
	box.Fill = salinity.Solid(salinity.MustColor("#ff0000"))
	box.Stroke = salinity.NoPaint
	box.SetPosition(50, 50)
	scene.Add(box)

	r.Render(scene, salinity.NewCamera(), 1.0/60)

	assertPixel(t, s, 50, 50, color.NRGBA{255, 0, 0, 255})
	assertPixel(t, s, 5, 5, color.NRGBA{0x22, 0x22, 0x22, 255})
	assertPixel(t, s, 95, 95, color.NRGBA{0x22, 0x22, 0x22, 255})
}

func TestRenderCameraZoom(t *testing.T) {
	s := newSurface(t, 100, 100)
	r := salinity.NewRenderer(s, salinity.DefaultConfig())

	scene := salinity.NewGroup("scene")
	box := salinity.NewBoxNode("box")
	box.Box = salinity.NewBox(0, 0, 10, 10)
	box.Fill = salinity.Solid(salinity.MustColor("#00ff00"))
	box.Stroke = salinity.NoPaint
	scene.Add(box)

	cam := salinity.NewCamera()
	cam.Zoom = 4
	r.Render(scene, cam, 1.0/60)

	// The 10 unit box covers 40 pixels at zoom 4.
	assertPixel(t, s, 35, 35, color.NRGBA{0, 255, 0, 255})
	assertPixel(t, s, 45, 45, color.NRGBA{0x22, 0x22, 0x22, 255})
}

func TestBoxMaskClips(t *testing.T) {
	s := newSurface(t, 100, 100)
	r := salinity.NewRenderer(s, salinity.DefaultConfig())

	scene := salinity.NewGroup("scene")
	box := salinity.NewBoxNode("box")
	box.Box = salinity.NewBox(0, 0, 100, 100)
	box.Fill = salinity.Solid(salinity.MustColor("#0000ff"))
	box.Stroke = salinity.NoPaint
	mask := salinity.NewBoxMask("mask")
	mask.Box = salinity.NewBox(0, 0, 50, 100)
	scene.Add(box, mask)
	box.AddMask(mask)

	r.Render(scene, salinity.NewCamera(), 1.0/60)

	assertPixel(t, s, 25, 50, color.NRGBA{0, 0, 255, 255})
	assertPixel(t, s, 75, 50, color.NRGBA{0x22, 0x22, 0x22, 255})
}

func TestMeasureText(t *testing.T) {
	s := newSurface(t, 10, 10)
	s.SetFont(salinity.Font{Family: "goregular", Size: 16})
	short := s.MeasureText("a")
	long := s.MeasureText("aaaa")
	if short.Width <= 0 || short.Ascent <= 0 {
		t.Fatalf("MeasureText(a) = %+v", short)
	}
	if math.Abs(long.Width-4*short.Width) > 1e-6 {
		t.Errorf("width of 4 glyphs = %v, want %v", long.Width, 4*short.Width)
	}

	// Unknown families fall back to the default face.
	s.SetFont(salinity.Font{Family: "missing", Size: 16})
	if got := s.MeasureText("a"); got != short {
		t.Errorf("fallback metrics = %+v, want %+v", got, short)
	}
}

func TestToMatrix(t *testing.T) {
	m := salinity.Matrix{1, 2, 3, 4, 5, 6}
	g := toMatrix(m)
	p := g.TransformPoint(gg.Pt(7, 8))
	want := m.TransformPoint(salinity.Vec2{X: 7, Y: 8})
	if math.Abs(p.X-want.X) > 1e-9 || math.Abs(p.Y-want.Y) > 1e-9 {
		t.Errorf("gg transform = %v, want %v", p, want)
	}
}
