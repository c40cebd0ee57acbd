package salinity

import (
	"fmt"
	"math"
)

// ResizeTools selects which handles a ResizeTool builds.
type ResizeTools uint8

const (
	ResizeToolAll ResizeTools = iota
	ResizeToolResize
	ResizeToolRotate
)

// gizmoFill is the translucent fill of the tool's body.
var gizmoFill = Color{0, 85.0 / 255, 102.0 / 255, 0.25}

// initialTransform is a target's pose when the tool was built.
type initialTransform struct {
	position Vec2
	scale    Vec2
	rotation float64
}

// handleSpec places one resize handle. x and y are the axis multipliers of
// the side the handle drags (-1, 0 or 1); angle is the handle's nominal
// direction in degrees, used to pick its cursor.
type handleSpec struct {
	name  string
	x, y  float64
	line  bool
	angle float64
}

var resizeHandles = [...]handleSpec{
	{"Bottom Right", -1, -1, false, 45},
	{"Bottom Left", 1, -1, false, 135},
	{"Top Left", 1, 1, false, 225},
	{"Top Right", -1, 1, false, 315},
	{"Right", -1, 0, true, 0},
	{"Bottom", 0, -1, true, 90},
	{"Left", 1, 0, true, 180},
	{"Top", 0, 1, true, 270},
}

// ResizeTool is a gizmo that edits the transforms of one or more target
// nodes. Its body is a translucent box over the targets' combined world
// bounds; corner and edge handles scale, a handle above the top edge
// rotates, and dragging the body moves the targets.
type ResizeTool struct {
	// Node is the gizmo's root node; add it to the scene.
	Node *Node

	objects  []*Node
	initial  map[*Node]initialTransform
	center   Vec2
	halfSize Vec2
	radius   float64

	handles    map[string]*Node
	rotater    *Node
	rotateLine *Node
}

// NewResizeTool builds a gizmo around objects. It returns ErrNoObjects when
// objects is empty and leaves the objects untouched. Matrices of the
// objects must be current.
func NewResizeTool(objects []*Node, radius float64, tools ResizeTools, theme Theme) (*ResizeTool, error) {
	var targets []*Node
	for _, o := range objects {
		if o != nil && !o.disposed {
			targets = append(targets, o)
		}
	}
	if len(targets) == 0 {
		err := fmt.Errorf("resize tool: %w", ErrNoObjects)
		warnOnce("resize-tool-empty", "resize tool aborted", "err", err)
		return nil, err
	}
	if radius <= 0 {
		radius = 5
	}

	layer := 0
	combined := EmptyBox()
	for _, o := range targets {
		if o.Layer+1 > layer {
			layer = o.Layer + 1
		}
		combined = combined.Union(o.WorldBoundingBox())
	}
	if !combined.IsFinite() {
		combined = BoxFromCenter(combined.Center(), Vec2{})
	}

	t := &ResizeTool{
		objects:  targets,
		initial:  make(map[*Node]initialTransform, len(targets)),
		center:   combined.Center(),
		halfSize: combined.Size().Scale(0.5),
		radius:   radius,
		handles:  make(map[string]*Node),
	}
	for _, o := range targets {
		t.initial[o] = initialTransform{position: o.Position, scale: o.Scale, rotation: o.Rotation}
	}

	g := NewBoxNode("Resize Tool")
	g.Helper = true
	g.Fill = Solid(gizmoFill)
	g.Stroke = NoPaint
	g.Draggable = true
	g.Focusable = true
	g.Selectable = false
	g.Layer = layer
	g.Position = t.center
	g.Box = NewBox(-t.halfSize.X, -t.halfSize.Y, t.halfSize.X, t.halfSize.Y)
	g.UserData = t
	g.refreshBounds(nil)
	g.OnDrag = func(ctx PointerContext) {
		FollowPointer(ctx)
		t.updateObjects()
	}
	g.OnUpdate = t.layout
	t.Node = g

	iconFill := LinearGradient(Vec2{-radius, -radius}, Vec2{radius, radius},
		ColorStop{0, theme.IconLight}, ColorStop{1, theme.IconDark})

	if tools == ResizeToolAll || tools == ResizeToolResize {
		for _, spec := range resizeHandles {
			h := t.newHandle(spec, layer+1, iconFill, theme.Highlight)
			t.handles[spec.name] = h
			g.Add(h)
		}
	}

	if tools == ResizeToolAll || tools == ResizeToolRotate {
		r := NewCircle("Rotate", radius+1)
		r.Helper = true
		r.Draggable = true
		r.Focusable = false
		r.Selectable = false
		r.Layer = layer + 1
		r.ConstantWidth = true
		r.Fill = iconFill
		r.Stroke = Solid(theme.Highlight)
		r.Cursor = CursorRotate
		r.OnDrag = t.rotate
		t.rotater = r

		l := NewLine("Rotate Line", Vec2{}, Vec2{})
		l.Helper = true
		l.LineWidth = 1
		l.Draggable = false
		l.Focusable = false
		l.Selectable = false
		l.Layer = layer
		l.ConstantWidth = true
		l.Stroke = Solid(theme.Highlight)
		t.rotateLine = l

		g.Add(r, l)
	}
	return t, nil
}

// Objects returns the nodes the tool edits.
func (t *ResizeTool) Objects() []*Node { return t.objects }

// Handle returns a resize handle by name ("Top Left", "Right", ...), or nil.
func (t *ResizeTool) Handle(name string) *Node { return t.handles[name] }

// Rotater returns the rotate handle, or nil when the tool has none.
func (t *ResizeTool) Rotater() *Node { return t.rotater }

// Destroy detaches the gizmo from the scene and forgets its targets.
func (t *ResizeTool) Destroy() {
	t.objects = nil
	t.Node.Destroy()
}

func (t *ResizeTool) newHandle(spec handleSpec, layer int, fill Paint, highlight Color) *Node {
	var h *Node
	if spec.line {
		h = NewLine(spec.name, Vec2{}, Vec2{})
		h.PointerBuffer = t.radius
		h.LineWidth = 1
		h.Stroke = Solid(highlight)
	} else {
		h = NewBoxNode(spec.name)
		h.Box = NewBox(-t.radius, -t.radius, t.radius, t.radius)
		h.Fill = fill
		h.Stroke = Solid(highlight)
		h.LineWidth = 1
	}
	h.Helper = true
	h.Draggable = true
	h.Focusable = false
	h.Selectable = false
	h.Layer = layer
	h.ConstantWidth = true

	angle := spec.angle
	h.CursorFunc = func(cam *Camera) Cursor {
		g := t.Node
		rot := g.Rotation
		if (g.Scale.X < 0) != (g.Scale.Y < 0) {
			rot -= DegToRad(angle)
		} else {
			rot += DegToRad(angle)
		}
		return ResizeCursor(RadToDeg(rot + cam.Rotation))
	}
	x, y := spec.x, spec.y
	h.OnDrag = func(ctx PointerContext) {
		FollowPointer(ctx)
		t.resize(ctx.Frame, x, y)
	}
	return h
}

// pressFrame reports whether the drag began this frame. The pointer delta
// of that frame predates the press.
func pressFrame(f *Frame) bool {
	return f.Pointer.ButtonJustPressedWith(MouseButtonLeft, f.DragToken())
}

// pointerInGizmo returns the current and previous pointer positions in the
// gizmo's local space.
func (t *ResizeTool) pointerInGizmo(f *Frame) (cur, prev Vec2) {
	p := f.Pointer
	inv := f.Camera.InverseMatrix()
	g := t.Node
	cur = g.WorldToLocal(inv.TransformPoint(p.Position()))
	prev = g.WorldToLocal(inv.TransformPoint(p.Position().Sub(p.Delta())))
	return cur, prev
}

// resize scales the gizmo along the axes selected by x and y so the
// opposite side stays fixed, then rescales the targets.
func (t *ResizeTool) resize(f *Frame, x, y float64) {
	if pressFrame(f) {
		return
	}
	g := t.Node
	cur, prev := t.pointerInGizmo(f)
	delta := cur.Sub(prev).Mul(g.Scale)
	if x == 0 {
		delta.X = 0
	}
	if y == 0 {
		delta.Y = 0
	}
	delta = delta.Scale(0.5)

	size := g.boundingBox.Size()
	var scale Vec2
	if x != 0 {
		scale.X = sanitize(2 / size.X)
	}
	if y != 0 {
		scale.Y = sanitize(2 / size.Y)
	}
	offset := g.boundingBox.Center().Mul(delta).Mul(scale).Mul(Vec2{x, y})

	g.Position = g.Position.Add(delta.Rotate(g.Rotation)).Add(offset.Rotate(g.Rotation))
	g.Scale = noZeroVec(g.Scale.Sub(delta.Mul(Vec2{x, y}).Mul(scale)))
	g.matrixDirty = true

	for _, o := range t.objects {
		start := t.initial[o]
		s := g.Scale
		if quarterTurned(start.rotation) {
			s = Vec2{s.Y, s.X}
		}
		o.Scale = noZeroVec(start.scale.Mul(s))
	}
	t.updateObjects()
}

// quarterTurned reports whether rot, normalized to [0, 2π), lies in
// [45°, 135°) or [225°, 315°): a target turned that far swaps the gizmo's
// horizontal and vertical scale.
func quarterTurned(rot float64) bool {
	r := NormalizeAngle(rot)
	q := math.Pi / 4
	switch {
	case r < q:
		return false
	case r < 3*q:
		return true
	case r < 5*q:
		return false
	case r < 7*q:
		return true
	}
	return false
}

// rotate turns the gizmo by the signed angle the pointer swept around its
// origin this frame.
func (t *ResizeTool) rotate(ctx PointerContext) {
	if pressFrame(ctx.Frame) {
		return
	}
	g := t.Node
	cur, prev := t.pointerInGizmo(ctx.Frame)
	cur = cur.Sub(g.Origin).Mul(g.Scale)
	prev = prev.Sub(g.Origin).Mul(g.Scale)
	angle := prev.AngleTo(cur)
	switch cross := prev.Cross(cur); {
	case cross < 0:
		angle = -angle
	case cross == 0:
		angle = 0
	}
	g.Rotation += angle
	g.UpdateMatrix(true)
	t.updateObjects()
}

// updateObjects recomputes every target's pose from its initial pose and
// the gizmo's current position, rotation and scale.
func (t *ResizeTool) updateObjects() {
	g := t.Node
	for _, o := range t.objects {
		start := t.initial[o]
		o.Rotation = start.rotation + g.Rotation
		rel := start.position.Sub(t.center).Mul(g.Scale)
		o.Position = rel.Rotate(o.Rotation - start.rotation).Add(g.Position)
		// Mirrored targets turn the other way.
		wasSame := (o.Scale.X < 0) == (o.Scale.Y < 0)
		isSame := (start.scale.X < 0) == (start.scale.Y < 0)
		if wasSame != isSame {
			o.Rotation = -(o.Rotation - g.Rotation) + g.Rotation
		}
		o.matrixDirty = true
	}
}

// layout places the handles so they keep a constant on-screen size.
func (t *ResizeTool) layout(f *Frame) {
	g := t.Node
	zoom := f.Camera.Zoom
	hs := t.halfSize
	inv := Vec2{1 / g.Scale.X / zoom, 1 / g.Scale.Y / zoom}

	if t.rotater != nil || t.rotateLine != nil {
		offset := t.radius * 4 / math.Abs(g.Scale.Y) / zoom
		top := Vec2{0, -hs.Y}
		above := Vec2{0, -hs.Y - offset}
		if t.rotater != nil {
			t.rotater.Position = above
			t.rotater.Scale = inv
			t.rotater.matrixDirty = true
		}
		if t.rotateLine != nil {
			t.rotateLine.From = above
			t.rotateLine.To = top
		}
	}

	corners := map[string]Vec2{
		"Top Left":     {-hs.X, -hs.Y},
		"Top Right":    {hs.X, -hs.Y},
		"Bottom Left":  {-hs.X, hs.Y},
		"Bottom Right": {hs.X, hs.Y},
	}
	for name, at := range corners {
		if h := t.handles[name]; h != nil {
			h.Position = at
			h.Scale = inv
			h.matrixDirty = true
		}
	}

	sides := []struct {
		name     string
		at       Vec2
		from, to Vec2
	}{
		{"Left", Vec2{-hs.X, 0}, Vec2{0, -hs.Y}, Vec2{0, hs.Y}},
		{"Right", Vec2{hs.X, 0}, Vec2{0, -hs.Y}, Vec2{0, hs.Y}},
		{"Top", Vec2{0, -hs.Y}, Vec2{-hs.X, 0}, Vec2{hs.X, 0}},
		{"Bottom", Vec2{0, hs.Y}, Vec2{-hs.X, 0}, Vec2{hs.X, 0}},
	}
	for _, s := range sides {
		if h := t.handles[s.name]; h != nil {
			h.Position = s.at
			h.From = s.from
			h.To = s.to
			h.matrixDirty = true
		}
	}
}
