package salinity

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

var handleNames = []string{
	"Top Left", "Top Right", "Bottom Left", "Bottom Right",
	"Left", "Right", "Top", "Bottom",
}

func TestNewResizeToolNoObjects(t *testing.T) {
	dead := NewBoxNode("dead")
	dead.Destroy()
	for _, objs := range [][]*Node{nil, {nil}, {dead}} {
		tool, err := NewResizeTool(objs, 5, ResizeToolAll, DefaultConfig().Theme)
		if !errors.Is(err, ErrNoObjects) || tool != nil {
			t.Errorf("NewResizeTool(%v) = %v, %v; want ErrNoObjects", objs, tool, err)
		}
	}
}

func TestResizeToolHandles(t *testing.T) {
	tests := []struct {
		tools   ResizeTools
		handles bool
		rotater bool
	}{
		{ResizeToolAll, true, true},
		{ResizeToolResize, true, false},
		{ResizeToolRotate, false, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.tools), func(t *testing.T) {
			box := NewBoxNode("box")
			tool, err := NewResizeTool([]*Node{box}, 5, tt.tools, DefaultConfig().Theme)
			if err != nil {
				t.Fatal(err)
			}
			for _, name := range handleNames {
				if got := tool.Handle(name) != nil; got != tt.handles {
					t.Errorf("handle %q present = %v, want %v", name, got, tt.handles)
				}
			}
			if got := tool.Rotater() != nil; got != tt.rotater {
				t.Errorf("rotater present = %v, want %v", got, tt.rotater)
			}
		})
	}
}

func TestResizeToolLayout(t *testing.T) {
	box := NewBoxNode("box")
	box.Layer = 3
	other := NewBoxNode("other")
	other.Position = Vec2{200, 0}
	scene := NewGroup("scene")
	scene.Add(box, other)
	scene.UpdateTree(true)

	tool, err := NewResizeTool([]*Node{box, other}, 5, ResizeToolAll, DefaultConfig().Theme)
	if err != nil {
		t.Fatal(err)
	}
	if tool.Node.Layer != 4 || tool.Handle("Right").Layer != 5 {
		t.Errorf("layers = %d/%d, want 4/5", tool.Node.Layer, tool.Handle("Right").Layer)
	}
	assertVec(t, "center", tool.Node.Position, Vec2{100, 0})
	assertVec(t, "body min", tool.Node.Box.Min, Vec2{-150, -50})
	assertVec(t, "body max", tool.Node.Box.Max, Vec2{150, 50})
	if tool.Node.Selectable || !tool.Node.Helper {
		t.Error("tool body should be an unselectable helper")
	}

	cam := NewCamera()
	cam.Zoom = 2
	tool.layout(&Frame{Camera: cam})
	assertVec(t, "top left", tool.Handle("Top Left").Position, Vec2{-150, -50})
	assertVec(t, "right", tool.Handle("Right").Position, Vec2{150, 0})
	assertVec(t, "handle scale", tool.Handle("Top Left").Scale, Vec2{0.5, 0.5})
	// The rotater sits four handle radii above the top edge, in screen pixels.
	assertVec(t, "rotater", tool.Rotater().Position, Vec2{0, -60})
}

func TestResizeToolHandleCursors(t *testing.T) {
	tool, err := NewResizeTool([]*Node{NewBoxNode("box")}, 5, ResizeToolAll, DefaultConfig().Theme)
	if err != nil {
		t.Fatal(err)
	}
	cam := NewCamera()
	tests := []struct {
		handle string
		want   Cursor
	}{
		{"Right", CursorResizeEW},
		{"Bottom", CursorResizeNS},
		{"Bottom Right", CursorResizeNWSE},
		{"Bottom Left", CursorResizeNESW},
	}
	for _, tt := range tests {
		if got := tool.Handle(tt.handle).CursorFunc(cam); got != tt.want {
			t.Errorf("%s: cursor = %v, want %v", tt.handle, got, tt.want)
		}
	}

	tool.Node.Rotation = math.Pi / 2
	if got := tool.Handle("Right").CursorFunc(cam); got != CursorResizeNS {
		t.Errorf("turned right handle: cursor = %v, want ns-resize", got)
	}
}

// selectForTool clicks at p so the select controls build a tool around the
// node there.
func selectForTool(t *testing.T, g *testRig, sc *SelectControls, p Vec2) *ResizeTool {
	t.Helper()
	g.frame()
	g.r.InjectClick(p.X, p.Y)
	g.drain()
	tool := sc.Tool()
	if tool == nil {
		t.Fatal("no resize tool")
	}
	return tool
}

// dragHandle presses at from, checks that h took the drag slot, then moves
// through the given points and releases at the last one.
func dragHandle(t *testing.T, g *testRig, h *Node, from Vec2, moves ...Vec2) {
	t.Helper()
	g.r.InjectMove(from.X, from.Y)
	g.r.InjectPress(from.X, from.Y)
	g.drain()
	if got := g.r.Frame().Dragged(); got != h {
		t.Fatalf("dragged = %v, want %s", got, h.Name)
	}
	for _, m := range moves {
		g.r.InjectMove(m.X, m.Y)
	}
	last := moves[len(moves)-1]
	g.r.InjectRelease(last.X, last.Y)
	g.drain()
	if g.r.Frame().Dragged() != nil {
		t.Error("drag slot not released")
	}
}

func TestResizeToolRightHandleDrag(t *testing.T) {
	g, sc := newSelectRig()
	box := solidBox("box", "#ff0000")
	g.scene.Add(box)
	tool := selectForTool(t, g, sc, Vec2{})

	dragHandle(t, g, tool.Handle("Right"), Vec2{50, 0}, Vec2{60, 0}, Vec2{70, 0})

	// The left edge stays at -50 while the right edge follows the pointer.
	assertVec(t, "scale", box.Scale, Vec2{1.2, 1})
	assertVec(t, "position", box.Position, Vec2{10, 0})
	if len(sc.Selected()) != 1 {
		t.Error("handle drag changed the selection")
	}
}

func TestResizeToolCornerHorizontalDrag(t *testing.T) {
	g, sc := newSelectRig()
	box := solidBox("box", "#ff0000")
	box.Position = Vec2{200, 200}
	g.scene.Add(box)
	tool := selectForTool(t, g, sc, box.Position)

	dragHandle(t, g, tool.Handle("Bottom Right"), Vec2{250, 250}, Vec2{260, 250}, Vec2{270, 250})

	assertVec(t, "scale", box.Scale, Vec2{1.2, 1})
	assertNear(t, "rotation", box.Rotation, 0)
	assertVec(t, "position", box.Position, Vec2{210, 200})
}

func TestResizeToolRotatedTargetSwapsAxes(t *testing.T) {
	g, sc := newSelectRig()
	box := solidBox("box", "#ff0000")
	box.Position = Vec2{200, 200}
	box.Rotation = math.Pi / 2
	box.Scale = Vec2{1, 2}
	g.scene.Add(box)
	tool := selectForTool(t, g, sc, box.Position)

	// The turned box spans 200x100 on screen, so the right edge is at x=300.
	assertVec(t, "body max", tool.Node.Box.Max, Vec2{100, 50})
	dragHandle(t, g, tool.Handle("Right"), Vec2{300, 200}, Vec2{310, 200}, Vec2{320, 200})

	// Widening on screen lengthens the box's local y axis.
	assertVec(t, "scale", box.Scale, Vec2{1, 2.2})
	assertNear(t, "rotation", box.Rotation, math.Pi/2)
	assertVec(t, "position", box.Position, Vec2{210, 200})
}

func TestResizeToolMirrorFlipsRotation(t *testing.T) {
	g, sc := newSelectRig()
	box := solidBox("box", "#ff0000")
	box.Position = Vec2{200, 200}
	box.Rotation = math.Pi / 6
	g.scene.Add(box)
	tool := selectForTool(t, g, sc, box.Position)

	right := tool.Handle("Right")
	from := right.WorldPosition()
	dragHandle(t, g, right, from, from.Add(Vec2{-100, 0}), from.Add(Vec2{-200, 0}))

	// Dragging the right edge past the left one mirrors the box, so it turns
	// the other way.
	if box.Scale.X >= 0 || box.Scale.Y <= 0 {
		t.Errorf("scale = %v, want mirrored on x only", box.Scale)
	}
	assertNear(t, "rotation", box.Rotation, -math.Pi/6)
}

func TestResizeToolRotate(t *testing.T) {
	tests := []struct {
		name  string
		scale Vec2
	}{
		{"plain", Vec2{1, 1}},
		{"mirrored", Vec2{-1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, sc := newSelectRig()
			box := solidBox("box", "#ff0000")
			box.Scale = tt.scale
			g.scene.Add(box)
			// Keep the rotater, 70px above the box center, on the surface.
			g.cam.Position = Vec2{400, 300}
			tool := selectForTool(t, g, sc, Vec2{400, 300})

			dragHandle(t, g, tool.Rotater(), Vec2{400, 230}, Vec2{470, 300})

			assertNear(t, "rotation", box.Rotation, math.Pi/2)
			assertVec(t, "position", box.Position, Vec2{})
			assertVec(t, "scale", box.Scale, tt.scale)
		})
	}
}

func TestQuarterTurned(t *testing.T) {
	tests := []struct {
		deg  float64
		want bool
	}{
		{0, false},
		{44, false},
		{46, true},
		{90, true},
		{134, true},
		{136, false},
		{180, false},
		{224, false},
		{226, true},
		{314, true},
		{316, false},
		{-90, true},
		{450, true},
	}
	for _, tt := range tests {
		if got := quarterTurned(DegToRad(tt.deg)); got != tt.want {
			t.Errorf("quarterTurned(%v°) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestResizeCursor(t *testing.T) {
	tests := []struct {
		deg  float64
		want Cursor
	}{
		{0, CursorResizeEW},
		{10, CursorResizeEW},
		{44, CursorResizeNWSE},
		{90, CursorResizeNS},
		{135, CursorResizeNESW},
		{180, CursorResizeEW},
		{225, CursorResizeNWSE},
		{270, CursorResizeNS},
		{315, CursorResizeNESW},
		{350, CursorResizeEW},
		{-45, CursorResizeNESW},
		{405, CursorResizeNWSE},
		{math.NaN(), CursorResizeEW},
	}
	for _, tt := range tests {
		if got := ResizeCursor(tt.deg); got != tt.want {
			t.Errorf("ResizeCursor(%v) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}
