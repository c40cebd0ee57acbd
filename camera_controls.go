package salinity

import "math"

// CameraControls turns pointer and keyboard state into camera pan, zoom,
// rotation and double-click focus.
type CameraControls struct {
	Camera *Camera

	AllowDrag     bool
	AllowScale    bool
	AllowRotation bool

	dragToken     LockToken
	dragging      bool
	rotationPoint Vec2
	rotationStart float64
}

// NewCameraControls returns controls for cam with every gesture enabled.
func NewCameraControls(cam *Camera) *CameraControls {
	return &CameraControls{
		Camera:        cam,
		AllowDrag:     true,
		AllowScale:    true,
		AllowRotation: true,
	}
}

// Dragging reports whether the camera is being panned.
func (c *CameraControls) Dragging() bool { return c.dragging }

// Update implements Controller.
func (c *CameraControls) Update(f *Frame) {
	cam := c.Camera
	if cam == nil {
		cam = f.Camera
	}
	if cam == nil || f.Scene == nil {
		return
	}
	cfg := f.Config().Camera
	p, kb := f.Pointer, f.Keyboard

	if p.ButtonDoubleClicked(MouseButtonLeft) && !kb.AnyModifier() {
		world := cam.ScreenToWorld(p.Position())
		hits := f.Scene.WorldPointIntersections(world)
		switch {
		case len(hits) == 0:
			c.Focus(f, f.Scene, true)
		case hits[0].Focusable:
			c.Focus(f, hits[0], false)
		}
	}

	if c.AllowScale && p.Wheel() != 0 {
		// Keep the world point under the pointer fixed.
		factor := p.Wheel() * cfg.WheelFactor * cam.Zoom
		world := cam.ScreenToWorld(p.Position())
		cam.StopAnimation()
		cam.Zoom -= factor
		cam.Position = cam.Position.Add(world.Scale(factor))
	}

	if c.AllowRotation {
		if p.ButtonJustPressed(cfg.RotateButton) {
			c.rotationPoint = p.Position()
			c.rotationStart = cam.Rotation
		} else if p.ButtonPressed(cfg.RotateButton) {
			cam.Rotation = c.rotationStart + (p.Position().X-c.rotationPoint.X)*cfg.RotateSpeed
		}
	}

	if !c.AllowDrag {
		return
	}
	wants := p.ButtonPressedWith(cfg.DragButton, c.dragToken)
	if wants {
		f.SetCursor(CursorGrabbing)
	} else if kb.Space() {
		if p.ButtonPressedWith(cfg.Drag2Button, c.dragToken) {
			f.SetCursor(CursorGrabbing)
			wants = true
		} else {
			f.SetCursor(CursorGrab)
		}
	}
	if !wants {
		if c.dragging {
			p.Unlock(c.dragToken)
			c.dragToken = 0
			c.dragging = false
		}
		return
	}
	if !c.dragging {
		c.dragToken = p.Lock()
		c.dragging = true
		cam.StopAnimation()
	}
	inv := cam.InverseMatrix()
	cur := inv.TransformPoint(p.Position())
	last := inv.TransformPoint(p.Position().Sub(p.Delta()))
	cam.Position = cam.Position.Add(cur.Sub(last).Scale(cam.Zoom))
}

// Focus animates the camera so that target's world bounding box (the union
// over its subtree when includeChildren is set) is centered and scaled by
// the configured fill ratio.
func (c *CameraControls) Focus(f *Frame, target *Node, includeChildren bool) {
	cam := c.Camera
	if cam == nil {
		cam = f.Camera
	}
	cfg := f.Config().Camera
	ratio := cfg.ObjectFillRatio
	box := EmptyBox()
	if includeChildren {
		ratio = cfg.SceneFillRatio
		target.Traverse(func(n *Node) bool {
			if b := n.WorldBoundingBox(); b.IsFinite() {
				box = box.Union(b)
			}
			return false
		})
	} else {
		box = target.WorldBoundingBox()
	}
	pos, zoom, ok := FocusTarget(box, f.Width, f.Height, ratio)
	if !ok {
		return
	}
	cam.AnimateTo(pos, zoom, float32(cfg.FocusDuration))
}

// FocusTarget returns the camera position and zoom that center box on a
// w by h surface at ratio times the zoom that would exactly fit it. ok is
// false when the box has no extent.
func FocusTarget(box Box, w, h, ratio float64) (position Vec2, zoom float64, ok bool) {
	if box.IsEmpty() || !box.IsFinite() {
		return Vec2{}, 0, false
	}
	size := box.Size()
	fit := math.Inf(1)
	if size.X > 0 {
		fit = w / size.X
	}
	if size.Y > 0 {
		fit = math.Min(fit, h/size.Y)
	}
	if math.IsInf(fit, 1) {
		return Vec2{}, 0, false
	}
	zoom = math.Abs(ratio * fit)
	position = box.Center().Scale(-zoom).Add(Vec2{w / 2, h / 2})
	return position, zoom, true
}
