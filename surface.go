package salinity

// Font selects a face for text nodes. Backends resolve Family to a loaded
// face; an unknown family falls back to the backend's default face.
type Font struct {
	Family string
	Size   float64
}

// DefaultFont is the font new text nodes use.
var DefaultFont = Font{Family: "goregular", Size: 16}

// TextMetrics is the result of measuring a string.
type TextMetrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Surface is the immediate-mode 2D drawing target the renderer issues calls
// to. Transforms compose like a canvas: SetTransform replaces the current
// matrix, Transform post-multiplies it, and Save/Restore push and pop the
// whole state including the clip region.
//
// Paths are built with BeginPath, MoveTo, LineTo, Arc, Rect and ClosePath in
// the current user space and consumed by Fill, Stroke or Clip.
type Surface interface {
	Size() (w, h int)
	Clear(c Color)

	Save()
	Restore()
	SetTransform(m Matrix)
	Transform(m Matrix)
	SetAlpha(a float64)

	SetFillPaint(p Paint)
	SetStrokePaint(p Paint)
	SetLineWidth(w float64)
	SetDash(pattern []float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(cx, cy, r, a0, a1 float64)
	Rect(x, y, w, h float64)
	ClosePath()
	Fill()
	Stroke()
	// Clip intersects the clip region with the current path.
	Clip()

	SetFont(f Font)
	MeasureText(s string) TextMetrics
	FillText(s string, x, y float64, align TextAlign, baseline TextBaseline)
	StrokeText(s string, x, y float64, align TextAlign, baseline TextBaseline)
}

// TextOrigin returns the top-left corner of a string of the given metrics
// drawn at (x, y) with align and baseline, in the same space as (x, y).
// Backends whose text API draws from the top-left use it to honor the
// anchor.
func TextOrigin(m TextMetrics, x, y float64, align TextAlign, baseline TextBaseline) Vec2 {
	switch align {
	case TextAlignCenter:
		x -= m.Width / 2
	case TextAlignRight:
		x -= m.Width
	}
	switch baseline {
	case TextBaselineMiddle:
		y -= (m.Ascent + m.Descent) / 2
	case TextBaselineAlphabetic:
		y -= m.Ascent
	case TextBaselineBottom:
		y -= m.Ascent + m.Descent
	}
	return Vec2{x, y}
}
