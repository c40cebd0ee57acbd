package salinity

// --- Raw input events ---

// InputKind identifies a raw input edge delivered by the host.
type InputKind uint8

const (
	// InputPointerMove carries the absolute pointer position in X, Y.
	InputPointerMove InputKind = iota
	InputButtonDown
	InputButtonUp
	InputDoubleClick
	// InputWheel carries the scroll amount in Wheel (positive scrolls down).
	InputWheel
	InputPointerEnter
	InputPointerLeave
	InputKeyDown
	InputKeyUp
)

// InputEvent is one raw edge captured by the host since the previous frame.
type InputEvent struct {
	Kind   InputKind
	Button MouseButton
	Key    KeyCode
	X, Y   float64
	Wheel  float64
}

// --- Button state ---

// ButtonState is the per-frame state of a button or key.
type ButtonState struct {
	Pressed      bool
	JustPressed  bool
	JustReleased bool
}

func (s *ButtonState) down() {
	if !s.Pressed {
		s.JustPressed = true
	}
	s.Pressed = true
}

func (s *ButtonState) up() {
	if s.Pressed {
		s.JustReleased = true
	}
	s.Pressed = false
}

// publish copies the buffered state into the public state. Edges already
// published last frame are dropped from the buffer first, so each edge is
// visible for exactly one frame.
func publish(buf, pub *ButtonState) {
	if buf.JustPressed && pub.JustPressed {
		buf.JustPressed = false
	}
	if buf.JustReleased && pub.JustReleased {
		buf.JustReleased = false
	}
	*pub = *buf
}

// --- Pointer ---

// LockToken identifies the holder of a pointer lock. The zero token never
// holds the lock.
type LockToken uint32

// Pointer tracks mouse buttons, position, movement and wheel. Host events are
// buffered by Feed and resolved into the readable state by Update, once per
// frame.
type Pointer struct {
	buffered    [numMouseButtons]ButtonState
	buttons     [numMouseButtons]ButtonState
	bufDouble   [numMouseButtons]bool
	double      [numMouseButtons]bool
	bufPosition Vec2
	position    Vec2
	bufDelta    Vec2
	delta       Vec2
	moved       bool
	placed      bool
	bufWheel    float64
	wheel       float64
	wheeled     bool
	inside      bool

	lockCounter LockToken
	lock        LockToken
}

// NewPointer returns an idle pointer tracker.
func NewPointer() *Pointer {
	return &Pointer{}
}

// Feed buffers a raw event. Keyboard events are ignored.
func (p *Pointer) Feed(ev InputEvent) {
	switch ev.Kind {
	case InputPointerMove:
		pos := Vec2{ev.X, ev.Y}
		if p.placed {
			p.bufDelta = p.bufDelta.Add(pos.Sub(p.bufPosition))
		}
		p.bufPosition = pos
		p.placed = true
		p.moved = true
	case InputButtonDown:
		if ev.Button < numMouseButtons {
			p.buffered[ev.Button].down()
		}
	case InputButtonUp:
		if ev.Button < numMouseButtons {
			p.buffered[ev.Button].up()
		}
	case InputDoubleClick:
		if ev.Button < numMouseButtons {
			p.bufDouble[ev.Button] = true
		}
	case InputWheel:
		p.bufWheel += ev.Wheel
		p.wheeled = true
	case InputPointerEnter:
		p.inside = true
	case InputPointerLeave:
		p.inside = false
	}
}

// Update resolves the buffered events into the readable state.
func (p *Pointer) Update() {
	for i := range p.buffered {
		publish(&p.buffered[i], &p.buttons[i])
		p.double[i] = p.bufDouble[i]
		p.bufDouble[i] = false
	}
	if p.wheeled {
		p.wheel = p.bufWheel
		p.bufWheel = 0
		p.wheeled = false
	} else {
		p.wheel = 0
	}
	if p.moved {
		p.position = p.bufPosition
		p.delta = p.bufDelta
		p.bufDelta = Vec2{}
		p.moved = false
	} else {
		p.delta = Vec2{}
	}
}

// Position returns the pointer position in surface pixels.
func (p *Pointer) Position() Vec2 { return p.position }

// Delta returns the movement since the previous frame.
func (p *Pointer) Delta() Vec2 { return p.delta }

// Wheel returns the scroll amount received since the previous frame.
func (p *Pointer) Wheel() float64 { return p.wheel }

// Inside reports whether the pointer is over the surface.
func (p *Pointer) Inside() bool { return p.inside }

// --- Lock ---

// Lock takes exclusive access to button reads and returns the token that
// must accompany them. A later Lock supersedes an earlier one.
func (p *Pointer) Lock() LockToken {
	p.lockCounter++
	p.lock = p.lockCounter
	return p.lock
}

// Unlock releases the lock if tok is the active token.
func (p *Pointer) Unlock(tok LockToken) {
	if tok != 0 && p.lock == tok {
		p.lock = 0
	}
}

// ForceUnlock releases the lock regardless of holder.
func (p *Pointer) ForceUnlock() { p.lock = 0 }

// Locked reports whether any token holds the lock.
func (p *Pointer) Locked() bool { return p.lock != 0 }

// HoldsLock reports whether tok is the active lock token.
func (p *Pointer) HoldsLock(tok LockToken) bool { return tok != 0 && p.lock == tok }

func (p *Pointer) allowed(tok LockToken) bool {
	return p.lock == 0 || p.lock == tok
}

// --- Gated reads ---

// ButtonPressed reports whether b is held. It reads false while another
// consumer holds the lock.
func (p *Pointer) ButtonPressed(b MouseButton) bool { return p.ButtonPressedWith(b, 0) }

// ButtonPressedWith is ButtonPressed for the holder of tok.
func (p *Pointer) ButtonPressedWith(b MouseButton, tok LockToken) bool {
	return b < numMouseButtons && p.allowed(tok) && p.buttons[b].Pressed
}

// ButtonJustPressed reports whether b went down this frame.
func (p *Pointer) ButtonJustPressed(b MouseButton) bool { return p.ButtonJustPressedWith(b, 0) }

// ButtonJustPressedWith is ButtonJustPressed for the holder of tok.
func (p *Pointer) ButtonJustPressedWith(b MouseButton, tok LockToken) bool {
	return b < numMouseButtons && p.allowed(tok) && p.buttons[b].JustPressed
}

// ButtonJustReleased reports whether b went up this frame.
func (p *Pointer) ButtonJustReleased(b MouseButton) bool { return p.ButtonJustReleasedWith(b, 0) }

// ButtonJustReleasedWith is ButtonJustReleased for the holder of tok.
func (p *Pointer) ButtonJustReleasedWith(b MouseButton, tok LockToken) bool {
	return b < numMouseButtons && p.allowed(tok) && p.buttons[b].JustReleased
}

// ButtonDoubleClicked reports whether b was double-clicked this frame.
func (p *Pointer) ButtonDoubleClicked(b MouseButton) bool { return p.ButtonDoubleClickedWith(b, 0) }

// ButtonDoubleClickedWith is ButtonDoubleClicked for the holder of tok.
func (p *Pointer) ButtonDoubleClickedWith(b MouseButton, tok LockToken) bool {
	return b < numMouseButtons && p.allowed(tok) && p.double[b]
}

// --- Keyboard ---

// KeyCode names a physical key using DOM code names ("KeyA", "ShiftLeft",
// "Space", ...).
type KeyCode string

const (
	KeyShiftLeft    KeyCode = "ShiftLeft"
	KeyShiftRight   KeyCode = "ShiftRight"
	KeyControlLeft  KeyCode = "ControlLeft"
	KeyControlRight KeyCode = "ControlRight"
	KeyAltLeft      KeyCode = "AltLeft"
	KeyAltRight     KeyCode = "AltRight"
	KeyMetaLeft     KeyCode = "MetaLeft"
	KeyMetaRight    KeyCode = "MetaRight"
	KeySpace        KeyCode = "Space"
	KeyA            KeyCode = "KeyA"
)

// Keyboard tracks key state with the same buffering as Pointer.
type Keyboard struct {
	buffered map[KeyCode]*ButtonState
	keys     map[KeyCode]*ButtonState
}

// NewKeyboard returns an idle keyboard tracker.
func NewKeyboard() *Keyboard {
	return &Keyboard{
		buffered: make(map[KeyCode]*ButtonState),
		keys:     make(map[KeyCode]*ButtonState),
	}
}

// Feed buffers a raw key event. Pointer events are ignored.
func (k *Keyboard) Feed(ev InputEvent) {
	if ev.Kind != InputKeyDown && ev.Kind != InputKeyUp {
		return
	}
	s := k.buffered[ev.Key]
	if s == nil {
		s = &ButtonState{}
		k.buffered[ev.Key] = s
		k.keys[ev.Key] = &ButtonState{}
	}
	if ev.Kind == InputKeyDown {
		s.down()
	} else {
		s.up()
	}
}

// Update resolves buffered key events into the readable state.
func (k *Keyboard) Update() {
	for code, buf := range k.buffered {
		publish(buf, k.keys[code])
	}
}

// Reset releases every key, e.g. after the host window loses focus.
func (k *Keyboard) Reset() {
	for code := range k.buffered {
		*k.buffered[code] = ButtonState{}
		*k.keys[code] = ButtonState{}
	}
}

// Key returns the state of code.
func (k *Keyboard) Key(code KeyCode) ButtonState {
	if s := k.keys[code]; s != nil {
		return *s
	}
	return ButtonState{}
}

// KeyPressed reports whether code is held.
func (k *Keyboard) KeyPressed(code KeyCode) bool { return k.Key(code).Pressed }

// KeyJustPressed reports whether code went down this frame.
func (k *Keyboard) KeyJustPressed(code KeyCode) bool { return k.Key(code).JustPressed }

// KeyJustReleased reports whether code went up this frame.
func (k *Keyboard) KeyJustReleased(code KeyCode) bool { return k.Key(code).JustReleased }

func (k *Keyboard) Shift() bool { return k.KeyPressed(KeyShiftLeft) || k.KeyPressed(KeyShiftRight) }
func (k *Keyboard) Ctrl() bool { return k.KeyPressed(KeyControlLeft) || k.KeyPressed(KeyControlRight) }
func (k *Keyboard) Alt() bool { return k.KeyPressed(KeyAltLeft) || k.KeyPressed(KeyAltRight) }
func (k *Keyboard) Meta() bool { return k.KeyPressed(KeyMetaLeft) || k.KeyPressed(KeyMetaRight) }
func (k *Keyboard) Space() bool { return k.KeyPressed(KeySpace) }

// AnyModifier reports whether a modifier or space is held.
func (k *Keyboard) AnyModifier() bool {
	return k.Shift() || k.Ctrl() || k.Alt() || k.Meta() || k.Space()
}
