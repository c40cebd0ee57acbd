package salinity

// maskExtent is how far an inverted mask reaches beyond its box.
const maskExtent = 1e4

// AddMask appends mask nodes that clip this node when it is drawn. Each mask
// clips with its own global transform, so masks are normally part of the
// scene tree (they are never drawn themselves).
func (n *Node) AddMask(masks ...*Node) {
	for _, m := range masks {
		if m == nil || m == n {
			continue
		}
		n.Masks = append(n.Masks, m)
	}
}

// RemoveMask removes a mask from this node.
func (n *Node) RemoveMask(mask *Node) {
	for i, m := range n.Masks {
		if m == mask {
			copy(n.Masks[i:], n.Masks[i+1:])
			n.Masks[len(n.Masks)-1] = nil
			n.Masks = n.Masks[:len(n.Masks)-1]
			return
		}
	}
}

// ClearMasks removes every mask from this node.
func (n *Node) ClearMasks() {
	n.Masks = nil
}

// applyMasks intersects the surface clip region with every clip-capable mask
// of n. The caller owns the Save/Restore pair around it.
func applyMasks(n *Node, s Surface, f *Frame) {
	for _, m := range n.Masks {
		if m == nil || m.disposed {
			continue
		}
		ops := kindTable[m.Kind]
		if ops.clip == nil {
			continue
		}
		s.SetTransform(screenMatrix(m, f))
		s.BeginPath()
		ops.clip(m, s)
		s.Clip()
	}
}

// clipBoxMask adds the box (or, inverted, four rectangles surrounding it) to
// the current path.
func clipBoxMask(n *Node, s Surface) {
	b := n.Box
	if !n.InvertMask {
		size := b.Size()
		s.Rect(b.Min.X, b.Min.Y, size.X, size.Y)
		return
	}
	e := maskExtent
	s.Rect(-e, -e, 2*e, b.Min.Y+e)
	s.Rect(-e, b.Max.Y, 2*e, e-b.Max.Y)
	s.Rect(-e, b.Min.Y, b.Min.X+e, b.Max.Y-b.Min.Y)
	s.Rect(b.Max.X, b.Min.Y, e-b.Max.X, b.Max.Y-b.Min.Y)
}
