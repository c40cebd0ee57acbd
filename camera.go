package salinity

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// cameraAnim holds the active AnimateTo tweens.
type cameraAnim struct {
	tweenX, tweenY, tweenZoom *gween.Tween
	doneX, doneY, doneZoom    bool
	target                    Vec2
	targetZoom                float64
}

// cameraKey is the set of inputs the cached view matrix was built from.
type cameraKey struct {
	position Vec2
	zoom     float64
	rotation float64
	offset   Vec2
}

// Camera maps world space to surface pixels. Position is the screen-space
// translation applied after zoom; Rotation turns the view about the surface
// center.
//
//	view = Translate(offset) * Rotate(Rotation) * Translate(-offset) *
//	       Translate(Position) * Scale(Zoom)
type Camera struct {
	Position Vec2
	// Zoom is the uniform scale factor (1 = no zoom, >1 = zoom in).
	Zoom float64
	// Rotation is the camera rotation in radians.
	Rotation float64

	matrix        Matrix
	inverseMatrix Matrix
	key           cameraKey
	offset        Vec2
	valid         bool

	anim *cameraAnim
}

// NewCamera returns a camera at the origin with zoom 1.
func NewCamera() *Camera {
	return &Camera{
		Zoom:          1,
		matrix:        IdentityMatrix(),
		inverseMatrix: IdentityMatrix(),
	}
}

// UpdateMatrix sets the rotation pivot (normally half the surface size) and
// rebuilds the view matrix if any input changed since the last build.
func (c *Camera) UpdateMatrix(offX, offY float64) {
	c.offset = Vec2{offX, offY}
	c.refresh()
}

func (c *Camera) refresh() {
	c.Position = sanitizeVec(c.Position)
	c.Zoom = noZero(c.Zoom, minScale)
	c.Rotation = sanitize(c.Rotation)
	key := cameraKey{c.Position, c.Zoom, c.Rotation, c.offset}
	if c.valid && key == c.key {
		return
	}
	c.key = key
	c.valid = true

	m := TranslationMatrix(c.offset.X, c.offset.Y).
		Rotate(c.Rotation).
		Translate(-c.offset.X, -c.offset.Y).
		Translate(c.Position.X, c.Position.Y).
		Scale(c.Zoom, c.Zoom)
	c.matrix = m
	c.inverseMatrix = m.Invert()
}

// Matrix returns the world-to-screen matrix.
func (c *Camera) Matrix() Matrix {
	c.refresh()
	return c.matrix
}

// InverseMatrix returns the screen-to-world matrix.
func (c *Camera) InverseMatrix() Matrix {
	c.refresh()
	return c.inverseMatrix
}

// Offset returns the rotation pivot set by the last UpdateMatrix call.
func (c *Camera) Offset() Vec2 { return c.offset }

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(p Vec2) Vec2 {
	return c.Matrix().TransformPoint(p)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	return c.InverseMatrix().TransformPoint(p)
}

// VisibleBounds returns the world-space envelope of a w by h surface.
func (c *Camera) VisibleBounds(w, h float64) Box {
	return NewBox(0, 0, w, h).Transform(c.InverseMatrix())
}

// AnimateTo tweens Position and Zoom linearly to the targets over duration
// seconds. A running animation is replaced. A non-positive duration snaps.
func (c *Camera) AnimateTo(position Vec2, zoom float64, duration float32) {
	if duration <= 0 {
		c.anim = nil
		c.Position = position
		c.Zoom = zoom
		return
	}
	c.anim = &cameraAnim{
		tweenX:     gween.New(float32(c.Position.X), float32(position.X), duration, ease.Linear),
		tweenY:     gween.New(float32(c.Position.Y), float32(position.Y), duration, ease.Linear),
		tweenZoom:  gween.New(float32(c.Zoom), float32(zoom), duration, ease.Linear),
		target:     position,
		targetZoom: zoom,
	}
}

// Animating reports whether an AnimateTo tween is in progress.
func (c *Camera) Animating() bool { return c.anim != nil }

// StopAnimation cancels a running AnimateTo, leaving the camera where it is.
func (c *Camera) StopAnimation() { c.anim = nil }

// update advances the focus animation by dt seconds. Called once per frame
// by the renderer.
func (c *Camera) update(dt float32) {
	a := c.anim
	if a == nil {
		return
	}
	if !a.doneX {
		v, done := a.tweenX.Update(dt)
		c.Position.X = float64(v)
		a.doneX = done
	}
	if !a.doneY {
		v, done := a.tweenY.Update(dt)
		c.Position.Y = float64(v)
		a.doneY = done
	}
	if !a.doneZoom {
		v, done := a.tweenZoom.Update(dt)
		c.Zoom = float64(v)
		a.doneZoom = done
	}
	if a.doneX && a.doneY && a.doneZoom {
		// Tweens run in float32; land exactly on the requested values.
		c.Position = a.target
		c.Zoom = a.targetZoom
		c.anim = nil
	}
}
