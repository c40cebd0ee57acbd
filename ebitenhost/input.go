package ebitenhost

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/salinity"
)

const (
	defaultDoubleClickTime     = 400 * time.Millisecond
	defaultDoubleClickDistance = 4
	// wheelScale converts ebiten wheel notches to DOM-style pixel deltas.
	wheelScale = 100
)

var mouseButtons = [...]struct {
	ebiten ebiten.MouseButton
	button salinity.MouseButton
}{
	{ebiten.MouseButtonLeft, salinity.MouseButtonLeft},
	{ebiten.MouseButtonMiddle, salinity.MouseButtonMiddle},
	{ebiten.MouseButtonRight, salinity.MouseButtonRight},
	{ebiten.MouseButton3, salinity.MouseButtonBack},
	{ebiten.MouseButton4, salinity.MouseButtonForward},
}

// Input polls ebiten's input state once per tick and feeds the edges to a
// renderer as salinity.InputEvents.
type Input struct {
	DoubleClickTime     time.Duration
	DoubleClickDistance int

	x, y      int
	placed    bool
	inside    bool
	focused   bool
	lastClick [len(mouseButtons)]time.Time
	clickX    [len(mouseButtons)]int
	clickY    [len(mouseButtons)]int
	keys      []ebiten.Key
	now       func() time.Time
}

// NewInput returns an input poller with the default double-click window.
func NewInput() *Input {
	return &Input{
		DoubleClickTime:     defaultDoubleClickTime,
		DoubleClickDistance: defaultDoubleClickDistance,
		focused:             true,
		now:                 time.Now,
	}
}

// Poll feeds the input edges since the previous call to r. w and h are the
// surface size, used for the pointer-inside flag.
func (in *Input) Poll(r *salinity.Renderer, w, h int) {
	focused := ebiten.IsFocused()
	if !focused && in.focused {
		r.Keyboard.Reset()
	}
	in.focused = focused

	x, y := ebiten.CursorPosition()
	inside := x >= 0 && y >= 0 && x < w && y < h
	if inside != in.inside {
		kind := salinity.InputPointerLeave
		if inside {
			kind = salinity.InputPointerEnter
		}
		r.Feed(salinity.InputEvent{Kind: kind, X: float64(x), Y: float64(y)})
		in.inside = inside
	}
	if !in.placed || x != in.x || y != in.y {
		r.Feed(salinity.InputEvent{Kind: salinity.InputPointerMove, X: float64(x), Y: float64(y)})
		in.x, in.y, in.placed = x, y, true
	}

	now := in.now()
	for i, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.ebiten) {
			r.Feed(salinity.InputEvent{Kind: salinity.InputButtonDown, Button: mb.button, X: float64(x), Y: float64(y)})
			if in.isDoubleClick(i, x, y, now) {
				r.Feed(salinity.InputEvent{Kind: salinity.InputDoubleClick, Button: mb.button, X: float64(x), Y: float64(y)})
				in.lastClick[i] = time.Time{}
			} else {
				in.lastClick[i] = now
				in.clickX[i], in.clickY[i] = x, y
			}
		}
		if inpututil.IsMouseButtonJustReleased(mb.ebiten) {
			r.Feed(salinity.InputEvent{Kind: salinity.InputButtonUp, Button: mb.button, X: float64(x), Y: float64(y)})
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		// ebiten reports positive values for scrolling up.
		r.Feed(salinity.InputEvent{Kind: salinity.InputWheel, Wheel: -wy * wheelScale, X: float64(x), Y: float64(y)})
	}

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		r.Feed(salinity.InputEvent{Kind: salinity.InputKeyDown, Key: KeyCode(k)})
	}
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		r.Feed(salinity.InputEvent{Kind: salinity.InputKeyUp, Key: KeyCode(k)})
	}
}

func (in *Input) isDoubleClick(i, x, y int, now time.Time) bool {
	if in.lastClick[i].IsZero() || now.Sub(in.lastClick[i]) > in.DoubleClickTime {
		return false
	}
	dx, dy := x-in.clickX[i], y-in.clickY[i]
	d := in.DoubleClickDistance
	return dx*dx+dy*dy <= d*d
}

// KeyCode converts an ebiten key to a DOM code name. ebiten names letter
// keys "A".."Z" where DOM uses "KeyA".."KeyZ"; the other names match.
func KeyCode(k ebiten.Key) salinity.KeyCode {
	name := k.String()
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		return salinity.KeyCode("Key" + name)
	}
	return salinity.KeyCode(name)
}

// CursorShape maps a salinity cursor to the closest ebiten cursor shape.
func CursorShape(c salinity.Cursor) ebiten.CursorShapeType {
	switch c {
	case salinity.CursorPointer:
		return ebiten.CursorShapePointer
	case salinity.CursorMove, salinity.CursorGrab, salinity.CursorGrabbing:
		return ebiten.CursorShapeMove
	case salinity.CursorRotate:
		return ebiten.CursorShapeCrosshair
	case salinity.CursorResizeEW:
		return ebiten.CursorShapeEWResize
	case salinity.CursorResizeNS:
		return ebiten.CursorShapeNSResize
	case salinity.CursorResizeNWSE:
		return ebiten.CursorShapeNWSEResize
	case salinity.CursorResizeNESW:
		return ebiten.CursorShapeNESWResize
	}
	return ebiten.CursorShapeDefault
}
