package ebitenhost

import (
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/salinity"
)

func TestKeyCode(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want salinity.KeyCode
	}{
		{ebiten.KeyA, "KeyA"},
		{ebiten.KeyZ, "KeyZ"},
		{ebiten.KeySpace, salinity.KeySpace},
		{ebiten.KeyShiftLeft, salinity.KeyShiftLeft},
		{ebiten.KeyControlRight, salinity.KeyControlRight},
		{ebiten.KeyMetaLeft, salinity.KeyMetaLeft},
		{ebiten.KeyDigit1, "Digit1"},
	}
	for _, tt := range tests {
		if got := KeyCode(tt.key); got != tt.want {
			t.Errorf("KeyCode(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestCursorShape(t *testing.T) {
	tests := []struct {
		c    salinity.Cursor
		want ebiten.CursorShapeType
	}{
		{salinity.CursorDefault, ebiten.CursorShapeDefault},
		{salinity.CursorGrab, ebiten.CursorShapeMove},
		{salinity.CursorGrabbing, ebiten.CursorShapeMove},
		{salinity.CursorRotate, ebiten.CursorShapeCrosshair},
		{salinity.CursorResizeEW, ebiten.CursorShapeEWResize},
		{salinity.CursorResizeNS, ebiten.CursorShapeNSResize},
		{salinity.CursorResizeNWSE, ebiten.CursorShapeNWSEResize},
		{salinity.CursorResizeNESW, ebiten.CursorShapeNESWResize},
	}
	for _, tt := range tests {
		if got := CursorShape(tt.c); got != tt.want {
			t.Errorf("CursorShape(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestIsDoubleClick(t *testing.T) {
	in := NewInput()
	t0 := time.Unix(100, 0)
	in.lastClick[0] = t0
	in.clickX[0], in.clickY[0] = 10, 10

	tests := []struct {
		name string
		x, y int
		at   time.Time
		want bool
	}{
		{"fast and close", 11, 12, t0.Add(200 * time.Millisecond), true},
		{"too slow", 10, 10, t0.Add(time.Second), false},
		{"too far", 30, 10, t0.Add(100 * time.Millisecond), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := in.isDoubleClick(0, tt.x, tt.y, tt.at); got != tt.want {
				t.Errorf("isDoubleClick = %v, want %v", got, tt.want)
			}
		})
	}

	if in.isDoubleClick(1, 10, 10, t0) {
		t.Error("a button with no earlier click must not double click")
	}
}

func TestDashPolyline(t *testing.T) {
	pts := []salinity.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}}
	runs := dashPolyline(pts, []float64{2, 3}, 1)
	// on 0-2, off 2-5, on 5-7, off 7-10
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2: %v", len(runs), runs)
	}
	want := [][2]float64{{0, 2}, {5, 7}}
	for i, r := range runs {
		start, end := r[0].X, r[len(r)-1].X
		if math.Abs(start-want[i][0]) > 1e-9 || math.Abs(end-want[i][1]) > 1e-9 {
			t.Errorf("run %d = %v..%v, want %v..%v", i, start, end, want[i][0], want[i][1])
		}
	}

	// Scale stretches the pattern into device pixels.
	if got := dashPolyline(pts, []float64{2, 3}, 2); len(got) != 1 {
		t.Errorf("scaled pattern: got %d runs, want 1", len(got))
	}
}

func TestToGeoM(t *testing.T) {
	m := salinity.IdentityMatrix().Translate(5, 6).Rotate(math.Pi / 3).Scale(2, 3)
	g := toGeoM(m)
	x, y := g.Apply(7, 8)
	want := m.TransformPoint(salinity.Vec2{X: 7, Y: 8})
	if math.Abs(x-want.X) > 1e-9 || math.Abs(y-want.Y) > 1e-9 {
		t.Errorf("GeoM.Apply = (%v,%v), want %v", x, y, want)
	}
}
