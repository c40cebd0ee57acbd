package salinity

import (
	"time"
)

// Controller is driven once per frame, after input is resolved and before
// the scene is dispatched and drawn.
type Controller interface {
	Update(f *Frame)
}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func(f *Frame)

// Update calls fn(f).
func (fn ControllerFunc) Update(f *Frame) { fn(f) }

// Frame is the per-frame context shared by the renderer, controllers and
// node hooks. One Frame lives as long as its Renderer; the drag slot and
// pointer lock it carries persist across frames.
type Frame struct {
	Renderer *Renderer
	Scene    *Node
	Camera   *Camera
	Pointer  *Pointer
	Keyboard *Keyboard
	Surface  Surface
	Viewport Viewport
	Width    float64
	Height   float64
	// Dt is the time since the previous frame in seconds.
	Dt     float32
	Number uint64

	world     Vec2
	dragged   *Node
	dragToken LockToken
	cursor    Cursor
}

// PointerWorld returns the pointer position in world space.
func (f *Frame) PointerWorld() Vec2 { return f.world }

// Config returns the renderer configuration.
func (f *Frame) Config() *Config { return &f.Renderer.config }

// Dragged returns the node holding the drag slot, or nil.
func (f *Frame) Dragged() *Node { return f.dragged }

// DragToken returns the pointer lock token held on behalf of the dragged
// node. Drag handlers read buttons with it.
func (f *Frame) DragToken() LockToken { return f.dragToken }

// ClaimDrag gives n the drag slot if it is free and takes the pointer lock
// for it. It reports whether n now holds the slot.
func (f *Frame) ClaimDrag(n *Node) bool {
	if n == nil || (f.dragged != nil && f.dragged != n) {
		return false
	}
	if f.dragged == n {
		return true
	}
	f.assignDrag(n)
	return true
}

// ForceDrag gives n the drag slot, taking it from the current holder
// without a drag-end event. Controllers use it to hand a freshly built node
// the ongoing press.
func (f *Frame) ForceDrag(n *Node) {
	if f.dragged != nil {
		f.releaseDrag()
	}
	if n != nil {
		f.assignDrag(n)
	}
}

// ReleaseDrag frees the drag slot if n holds it.
func (f *Frame) ReleaseDrag(n *Node) {
	if n != nil && f.dragged == n {
		f.releaseDrag()
	}
}

func (f *Frame) assignDrag(n *Node) {
	f.dragged = n
	n.dragStart = f.Pointer.Position()
	f.dragToken = f.Pointer.Lock()
}

func (f *Frame) releaseDrag() {
	f.Pointer.Unlock(f.dragToken)
	f.dragged = nil
	f.dragToken = 0
}

// SetCursor overrides the cursor for this frame. Controllers call it every
// frame they want the override to hold.
func (f *Frame) SetCursor(c Cursor) { f.cursor = c }

// Renderer runs the per-frame loop: input resolution, camera refresh,
// controllers, visibility sort, culling, pointer dispatch, node updates and
// back-to-front drawing.
type Renderer struct {
	Surface  Surface
	Pointer  *Pointer
	Keyboard *Keyboard

	// ScreenshotDir is where FlushScreenshots writes PNG files.
	ScreenshotDir string

	config      Config
	controllers []Controller
	handlers    handlerRegistry
	store       EntityStore
	frame       Frame
	pending     []InputEvent
	injectQueue []injectStep
	testRunner  *TestRunner
	cursor      Cursor
	debug       bool
	stats       Stats

	screenshotQueue []string

	all     []*Node
	visible []*Node
}

// NewRenderer creates a renderer drawing to s.
func NewRenderer(s Surface, cfg Config) *Renderer {
	r := &Renderer{
		Surface:  s,
		Pointer:  NewPointer(),
		Keyboard: NewKeyboard(),
		config:   cfg,

		ScreenshotDir: "screenshots",
	}
	r.frame.Renderer = r
	r.frame.Pointer = r.Pointer
	r.frame.Keyboard = r.Keyboard
	r.frame.Surface = s
	r.SetDebug(cfg.Debug)
	return r
}

// Config returns the active configuration.
func (r *Renderer) Config() Config { return r.config }

// SetConfig replaces the configuration. Call it between frames.
func (r *Renderer) SetConfig(cfg Config) {
	r.config = cfg
	r.SetDebug(cfg.Debug)
}

// SetDebug enables per-frame timing logs and tree-manipulation checks.
func (r *Renderer) SetDebug(enabled bool) {
	r.debug = enabled
	globalDebug = enabled
}

// Stats returns the counters of the last frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Frame returns the renderer's frame context.
func (r *Renderer) Frame() *Frame { return &r.frame }

// Cursor returns the cursor resolved by the last frame.
func (r *Renderer) Cursor() Cursor { return r.cursor }

// AddController appends a controller. Controllers run in insertion order.
func (r *Renderer) AddController(c Controller) {
	r.controllers = append(r.controllers, c)
}

// RemoveController removes a controller added earlier.
func (r *Renderer) RemoveController(c Controller) {
	for i, have := range r.controllers {
		if have == c {
			r.controllers = append(r.controllers[:i], r.controllers[i+1:]...)
			return
		}
	}
}

// Feed queues a raw input event for the next frame.
func (r *Renderer) Feed(ev InputEvent) {
	r.pending = append(r.pending, ev)
}

// Render runs one frame of scene through cam. dt is the time since the
// previous frame in seconds.
func (r *Renderer) Render(scene *Node, cam *Camera, dt float32) {
	f := &r.frame
	f.Scene = scene
	f.Camera = cam
	f.Surface = r.Surface
	f.Dt = dt
	f.Number++
	f.cursor = CursorDefault
	w, h := r.Surface.Size()
	f.Width, f.Height = float64(w), float64(h)
	f.Viewport = Viewport{Width: f.Width, Height: f.Height, Camera: cam}
	r.stats = Stats{Frame: f.Number}

	// Input
	if r.testRunner != nil {
		r.testRunner.step(r)
	}
	for _, ev := range r.pending {
		r.Pointer.Feed(ev)
		r.Keyboard.Feed(ev)
	}
	r.pending = r.pending[:0]
	r.popInjected()
	r.Pointer.Update()
	r.Keyboard.Update()

	// Camera and controllers
	cam.update(dt)
	cam.UpdateMatrix(f.Width/2, f.Height/2)
	f.world = cam.ScreenToWorld(r.Pointer.Position())
	for _, c := range r.controllers {
		c.Update(f)
	}
	cam.UpdateMatrix(f.Width/2, f.Height/2)
	f.world = cam.ScreenToWorld(r.Pointer.Position())

	if d := f.dragged; d != nil && d.disposed {
		f.releaseDrag()
	}

	// Visible set in pick priority order
	var t0 time.Time
	if r.debug {
		t0 = time.Now()
	}
	r.visible = r.visible[:0]
	scene.TraverseVisible(func(n *Node) bool {
		r.visible = append(r.visible, n)
		return false
	})
	r.stats.Visible = len(r.visible)
	if r.debug {
		r.stats.Traverse = time.Since(t0)
		t0 = time.Now()
	}
	sortByPriority(r.visible)
	for _, n := range r.visible {
		n.inViewport = f.Viewport.IsNodeVisible(n)
		if !n.inViewport {
			r.stats.Culled++
		}
	}
	if r.debug {
		r.stats.Sort = time.Since(t0)
		t0 = time.Now()
	}

	r.dispatch(scene)
	if r.debug {
		r.stats.Dispatch = time.Since(t0)
		t0 = time.Now()
	}

	// Update every node, visible or not, parents first.
	r.all = r.all[:0]
	scene.Traverse(func(n *Node) bool {
		r.all = append(r.all, n)
		return false
	})
	r.stats.Nodes = len(r.all)
	for _, n := range r.all {
		if n.disposed {
			continue
		}
		n.viewZoom = cam.Zoom
		n.UpdateMatrix(false)
		if n.Kind == KindText {
			n.refreshBounds(r.Surface)
		}
		if n.OnUpdate != nil {
			n.OnUpdate(f)
		}
	}
	if r.debug {
		r.stats.Update = time.Since(t0)
		t0 = time.Now()
	}

	r.draw(scene)
	if r.debug {
		r.stats.Draw = time.Since(t0)
		r.debugLog()
	}
}

// dispatch finds the topmost node under the pointer and drives the hover,
// button and drag transitions, then resolves the cursor.
func (r *Renderer) dispatch(scene *Node) {
	f := &r.frame
	p := r.Pointer
	tok := f.dragToken

	var top *Node
	for _, n := range r.visible {
		if n.PointerEvents && n.inViewport && n.IsInside(n.WorldToLocal(f.world)) {
			top = n
			break
		}
	}

	r.resolveCursor(top)

	for _, n := range r.visible {
		if n.disposed {
			continue
		}
		dragged := f.dragged
		if n == top && (dragged == nil || dragged == n) {
			if !n.pointerInside {
				n.pointerInside = true
				r.emit(EventPointerEnter, n, MouseButtonLeft)
			}
			r.emit(EventPointerOver, n, MouseButtonLeft)
			if p.ButtonDoubleClickedWith(MouseButtonLeft, tok) {
				r.emit(EventDoubleClick, n, MouseButtonLeft)
			}
			for b := MouseButton(0); b < numMouseButtons; b++ {
				if p.ButtonPressedWith(b, tok) {
					r.emit(EventButtonPressed, n, b)
				}
				if p.ButtonJustReleasedWith(b, tok) {
					r.emit(EventButtonUp, n, b)
				}
				if p.ButtonJustPressedWith(b, tok) {
					r.emit(EventButtonDown, n, b)
					if b == MouseButtonLeft && n.Draggable && f.dragged == nil && f.ClaimDrag(n) {
						r.emit(EventDragStart, n, b)
					}
				}
			}
		} else if n != dragged && n.pointerInside {
			n.pointerInside = false
			r.emit(EventPointerLeave, n, MouseButtonLeft)
		}
	}

	d := f.dragged
	if d == nil {
		return
	}
	// Release always ends the drag, even when the lock was taken from us or
	// the node left the scene.
	if p.buttons[MouseButtonLeft].JustReleased || !p.buttons[MouseButtonLeft].Pressed {
		if !d.disposed {
			r.emit(EventDragEnd, d, MouseButtonLeft)
		}
		f.ReleaseDrag(d)
		return
	}
	if d.Root() == scene {
		r.emit(EventDrag, d, MouseButtonLeft)
	}
}

func (r *Renderer) resolveCursor(top *Node) {
	f := &r.frame
	r.cursor = CursorDefault
	found := false
	for _, n := range r.visible {
		if (n == top || n == f.dragged) && n.hasCursor() {
			r.cursor = n.cursorFor(f.Camera)
			found = true
			break
		}
	}
	if !found && f.dragged != nil && f.dragged.hasCursor() {
		r.cursor = f.dragged.cursorFor(f.Camera)
	}
	if f.cursor != CursorDefault {
		r.cursor = f.cursor
	}
}

func (n *Node) hasCursor() bool {
	return n.CursorFunc != nil || n.Cursor != CursorDefault
}

func (n *Node) cursorFor(cam *Camera) Cursor {
	if n.CursorFunc != nil {
		return n.CursorFunc(cam)
	}
	return n.Cursor
}

// draw paints the visible set back to front.
func (r *Renderer) draw(scene *Node) {
	f := &r.frame
	s := r.Surface
	s.Save()
	s.SetTransform(IdentityMatrix())
	s.Clear(r.config.Background)
	s.Restore()

	for i := len(r.visible) - 1; i >= 0; i-- {
		n := r.visible[i]
		if n.disposed || n.IsMask() || !n.inViewport || n.Root() != scene {
			continue
		}
		draw := n.DrawFunc
		if draw == nil {
			if kd := kindTable[n.Kind].draw; kd != nil {
				draw = func(s Surface, f *Frame) { kd(n, s, f) }
			}
		}
		if draw != nil {
			s.Save()
			applyMasks(n, s, f)
			s.SetTransform(screenMatrix(n, f))
			s.SetAlpha(n.globalOpacity)
			draw(s, f)
			s.Restore()
			r.stats.Drawn++
		}
		if n.Selected {
			r.drawSelection(n)
		}
	}
}

// drawSelection strokes the node's transformed bounding box.
func (r *Renderer) drawSelection(n *Node) {
	b := n.boundingBox
	if b.IsEmpty() || !b.IsFinite() {
		return
	}
	f := &r.frame
	s := r.Surface
	s.Save()
	s.SetTransform(f.Camera.Matrix())
	s.SetStrokePaint(Solid(r.config.SelectionColor))
	s.SetLineWidth(r.config.SelectionWidth / f.Camera.Zoom)
	s.BeginPath()
	for i, c := range b.Corners() {
		w := n.globalMatrix.TransformPoint(c)
		if i == 0 {
			s.MoveTo(w.X, w.Y)
		} else {
			s.LineTo(w.X, w.Y)
		}
	}
	s.ClosePath()
	s.Stroke()
	s.Restore()
}

// FollowPointer is the default drag behavior: it moves the node by the
// pointer movement expressed in its parent's space, once the pointer has
// travelled DragSlop pixels from where the drag started.
func FollowPointer(ctx PointerContext) {
	n, f := ctx.Node, ctx.Frame
	p := f.Pointer
	if !p.ButtonPressedWith(MouseButtonLeft, f.dragToken) {
		return
	}
	pos := p.Position()
	if pos.Sub(n.dragStart).ManhattanLength() < f.Renderer.config.DragSlop {
		return
	}
	inv := f.Camera.InverseMatrix()
	start := inv.TransformPoint(pos)
	end := inv.TransformPoint(pos.Sub(p.Delta()))
	if n.parent != nil {
		start = n.parent.WorldToLocal(start)
		end = n.parent.WorldToLocal(end)
	}
	n.Position = n.Position.Add(start.Sub(end))
	n.matrixDirty = true
}
