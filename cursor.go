package salinity

import "math"

// Cursor is a pointer cursor hint. The renderer resolves one per frame and
// the host applies it.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorMove
	CursorGrab
	CursorGrabbing
	CursorRotate
	CursorResizeEW
	CursorResizeNS
	CursorResizeNWSE
	CursorResizeNESW
)

// String returns the CSS cursor keyword.
func (c Cursor) String() string {
	switch c {
	case CursorPointer:
		return "pointer"
	case CursorMove:
		return "move"
	case CursorGrab:
		return "grab"
	case CursorGrabbing:
		return "grabbing"
	case CursorRotate:
		return "alias"
	case CursorResizeEW:
		return "ew-resize"
	case CursorResizeNS:
		return "ns-resize"
	case CursorResizeNWSE:
		return "nwse-resize"
	case CursorResizeNESW:
		return "nesw-resize"
	}
	return "default"
}

// resizeCursors maps every 45 degrees, starting at 0, to a resize cursor.
var resizeCursors = [...]Cursor{
	CursorResizeEW,
	CursorResizeNWSE,
	CursorResizeNS,
	CursorResizeNESW,
	CursorResizeEW,
	CursorResizeNWSE,
	CursorResizeNS,
	CursorResizeNESW,
	CursorResizeEW,
}

// ResizeCursor returns the resize cursor closest to a handle pointing at
// deg degrees (0 is east, 90 is south on a y-down surface).
func ResizeCursor(deg float64) Cursor {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if !isFinite(deg) {
		return CursorResizeEW
	}
	best, bestDist := 0, math.Inf(1)
	for i := range resizeCursors {
		if d := math.Abs(deg - float64(i)*45); d < bestDist {
			best, bestDist = i, d
		}
	}
	return resizeCursors[best]
}
