package salinity

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorTransparent = Color{}
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts c to 8-bit non-premultiplied components.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp(c.R, 0, 1)*255 + 0.5),
		G: uint8(clamp(c.G, 0, 1)*255 + 0.5),
		B: uint8(clamp(c.B, 0, 1)*255 + 0.5),
		A: uint8(clamp(c.A, 0, 1)*255 + 0.5),
	}
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// MustColor is ParseColor for literals; it panics on malformed input.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseColor parses a CSS-style color: "#rgb", "#rgba", "#rrggbb",
// "#rrggbbaa", "rgb(r, g, b)", "rgba(r, g, b, a)" or one of "white",
// "black", "transparent".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "white":
		return ColorWhite, nil
	case "black":
		return ColorBlack, nil
	case "transparent", "none":
		return ColorTransparent, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if args, ok := cutFunc(s, "rgba"); ok {
		return parseRGBArgs(s, args, 4)
	}
	if args, ok := cutFunc(s, "rgb"); ok {
		return parseRGBArgs(s, args, 3)
	}
	return Color{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
}

func cutFunc(s, name string) (string, bool) {
	rest, ok := strings.CutPrefix(s, name+"(")
	if !ok {
		return "", false
	}
	return strings.CutSuffix(rest, ")")
}

func parseHexColor(h string) (Color, error) {
	switch len(h) {
	case 3, 4:
		var expanded strings.Builder
		for _, r := range h {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		h = expanded.String()
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("#%s: %w", h, ErrInvalidColor)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("#%s: %w", h, ErrInvalidColor)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

func parseRGBArgs(src, args string, n int) (Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != n {
		return Color{}, fmt.Errorf("%q: %w", src, ErrInvalidColor)
	}
	var vals [4]float64
	vals[3] = 1
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, fmt.Errorf("%q: %w", src, ErrInvalidColor)
		}
		if i < 3 {
			v /= 255
		}
		vals[i] = clamp(v, 0, 1)
	}
	return Color{vals[0], vals[1], vals[2], vals[3]}, nil
}

// MouseButton identifies a pointer button. Values follow the DOM button
// numbering.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
	MouseButtonBack
	MouseButtonForward

	numMouseButtons = 5
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonRight:
		return "right"
	case MouseButtonBack:
		return "back"
	case MouseButtonForward:
		return "forward"
	}
	return "button" + strconv.Itoa(int(b))
}

// ParseMouseButton parses the names produced by MouseButton.String.
func ParseMouseButton(s string) (MouseButton, error) {
	for b := MouseButton(0); b < numMouseButtons; b++ {
		if b.String() == strings.ToLower(s) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown mouse button %q", s)
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerEnter  EventType = iota // pointer entered the node's shape
	EventPointerLeave                   // pointer left the node's shape
	EventPointerOver                    // pointer is over the node this frame
	EventDoubleClick                    // left button double-clicked over the node
	EventButtonPressed                  // a button is held over the node
	EventButtonDown                     // a button went down over the node
	EventButtonUp                       // a button went up over the node
	EventDragStart                      // the node claimed the drag slot
	EventDrag                           // the node holds the drag slot this frame
	EventDragEnd                        // the node released the drag slot
)

func (e EventType) String() string {
	switch e {
	case EventPointerEnter:
		return "pointer-enter"
	case EventPointerLeave:
		return "pointer-leave"
	case EventPointerOver:
		return "pointer-over"
	case EventDoubleClick:
		return "double-click"
	case EventButtonPressed:
		return "button-pressed"
	case EventButtonDown:
		return "button-down"
	case EventButtonUp:
		return "button-up"
	case EventDragStart:
		return "drag-start"
	case EventDrag:
		return "drag"
	case EventDragEnd:
		return "drag-end"
	}
	return "event" + strconv.Itoa(int(e))
}

// NodeKind selects the shape behavior of a Node.
type NodeKind uint8

const (
	KindGroup   NodeKind = iota // transform-only node with no shape
	KindBox                     // filled/stroked rectangle
	KindCircle                  // filled/stroked circle
	KindLine                    // stroked segment
	KindText                    // single-line text
	KindBoxMask                 // rectangular clip region
	numKinds
)

func (k NodeKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindBox:
		return "box"
	case KindCircle:
		return "circle"
	case KindLine:
		return "line"
	case KindText:
		return "text"
	case KindBoxMask:
		return "boxmask"
	}
	return "kind" + strconv.Itoa(int(k))
}

// ParseNodeKind parses the names produced by NodeKind.String.
func ParseNodeKind(s string) (NodeKind, error) {
	for k := NodeKind(0); k < numKinds; k++ {
		if k.String() == strings.ToLower(s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// TextAlign controls horizontal text placement relative to the anchor.
type TextAlign uint8

const (
	TextAlignCenter TextAlign = iota
	TextAlignLeft
	TextAlignRight
)

// TextBaseline controls vertical text placement relative to the anchor.
type TextBaseline uint8

const (
	TextBaselineMiddle TextBaseline = iota
	TextBaselineTop
	TextBaselineAlphabetic
	TextBaselineBottom
)

// MarshalText implements encoding.TextMarshaler as "#rrggbbaa".
func (c Color) MarshalText() ([]byte, error) {
	n := c.NRGBA()
	return []byte(fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseColor.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (b MouseButton) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseMouseButton.
func (b *MouseButton) UnmarshalText(text []byte) error {
	v, err := ParseMouseButton(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
