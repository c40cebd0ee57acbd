package salinity

// injectStep is the batch of synthetic events delivered in one frame.
type injectStep []InputEvent

// InjectPress queues a left-button press at the given screen coordinates.
// The event is consumed by the next Render call that has no earlier
// injected step pending.
func (r *Renderer) InjectPress(x, y float64) {
	r.injectQueue = append(r.injectQueue, injectStep{
		{Kind: InputPointerMove, X: x, Y: y},
		{Kind: InputButtonDown, Button: MouseButtonLeft},
	})
}

// InjectMove queues a pointer move to the given screen coordinates. Use it
// between InjectPress and InjectRelease to simulate a drag.
func (r *Renderer) InjectMove(x, y float64) {
	r.injectQueue = append(r.injectQueue, injectStep{
		{Kind: InputPointerMove, X: x, Y: y},
	})
}

// InjectRelease queues a left-button release at the given screen coordinates.
func (r *Renderer) InjectRelease(x, y float64) {
	r.injectQueue = append(r.injectQueue, injectStep{
		{Kind: InputPointerMove, X: x, Y: y},
		{Kind: InputButtonUp, Button: MouseButtonLeft},
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (r *Renderer) InjectClick(x, y float64) {
	r.InjectPress(x, y)
	r.InjectRelease(x, y)
}

// InjectDoubleClick queues two clicks, the second one flagged as a double
// click. Consumes four frames.
func (r *Renderer) InjectDoubleClick(x, y float64) {
	r.InjectClick(x, y)
	r.InjectPress(x, y)
	last := &r.injectQueue[len(r.injectQueue)-1]
	*last = append(*last, InputEvent{Kind: InputDoubleClick, Button: MouseButtonLeft})
	r.InjectRelease(x, y)
}

// InjectWheel queues a wheel scroll at the given screen coordinates.
func (r *Renderer) InjectWheel(x, y, amount float64) {
	r.injectQueue = append(r.injectQueue, injectStep{
		{Kind: InputPointerMove, X: x, Y: y},
		{Kind: InputWheel, Wheel: amount},
	})
}

// InjectKey queues a key press or release.
func (r *Renderer) InjectKey(code KeyCode, down bool) {
	kind := InputKeyUp
	if down {
		kind = InputKeyDown
	}
	r.injectQueue = append(r.injectQueue, injectStep{{Kind: kind, Key: code}})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes frames frames.
// Minimum frames is 2 (press + release).
func (r *Renderer) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	r.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		r.InjectMove(lerp(fromX, toX, t), lerp(fromY, toY, t))
	}
	r.InjectRelease(toX, toY)
}

// Injecting reports whether injected steps are still queued.
func (r *Renderer) Injecting() bool { return len(r.injectQueue) > 0 }

// popInjected feeds the next injected step. It reports whether a step was
// consumed.
func (r *Renderer) popInjected() bool {
	if len(r.injectQueue) == 0 {
		return false
	}
	step := r.injectQueue[0]
	copy(r.injectQueue, r.injectQueue[1:])
	r.injectQueue = r.injectQueue[:len(r.injectQueue)-1]
	for _, ev := range step {
		r.Pointer.Feed(ev)
		r.Keyboard.Feed(ev)
	}
	return true
}
