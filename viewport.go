package salinity

// Viewport is the visible rectangle of a surface as seen through a camera.
type Viewport struct {
	Width, Height float64
	Camera        *Camera
}

// Box returns the surface rectangle in screen space.
func (v Viewport) Box() Box {
	return NewBox(0, 0, v.Width, v.Height)
}

// WorldBox returns the visible world-space envelope.
func (v Viewport) WorldBox() Box {
	return v.Camera.VisibleBounds(v.Width, v.Height)
}

// IsVisible reports whether a world-space box overlaps the viewport once
// projected through the camera. Boxes with non-finite bounds (shapes with
// no extent, groups) are always visible.
func (v Viewport) IsVisible(world Box) bool {
	if !world.IsFinite() {
		return true
	}
	return world.Transform(v.Camera.Matrix()).Intersects(v.Box())
}

// IsNodeVisible tests the node's world bounding box.
func (v Viewport) IsNodeVisible(n *Node) bool {
	return v.IsVisible(n.WorldBoundingBox())
}
