package salinity

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.Position = Vec2{x, y}
	n.matrixDirty = true
}

// SetScale sets the node's scale and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.Scale = Vec2{sx, sy}
	n.matrixDirty = true
}

// SetRotation sets the node's rotation (in radians) and marks it dirty.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.matrixDirty = true
}

// SetOrigin sets the pivot used for rotation and marks the node dirty.
func (n *Node) SetOrigin(x, y float64) {
	n.Origin = Vec2{x, y}
	n.matrixDirty = true
}

// SetOpacity sets the node's own opacity.
func (n *Node) SetOpacity(a float64) {
	n.Opacity = a
}

// MarkDirty flags the local matrix for recomputation on the next update,
// which matters when MatrixAutoUpdate is off.
func (n *Node) MarkDirty() {
	n.matrixDirty = true
}

// --- Matrix refresh ---

// UpdateMatrix recomputes the node's cached matrices. The local matrix is
// rebuilt from Position, Scale, Origin and Rotation when MatrixAutoUpdate is
// on, the node is dirty, or force is true. The global matrix is always
// rebuilt from the parent's cached global matrix, so parents must be updated
// first.
//
// A scale that is zero or not finite is replaced by a tiny signed value so
// the matrix stays invertible.
func (n *Node) UpdateMatrix(force bool) {
	if n.parent != nil {
		n.globalOpacity = n.Opacity * n.parent.globalOpacity
	} else {
		n.globalOpacity = n.Opacity
	}

	if n.MatrixAutoUpdate || n.matrixDirty || force {
		n.Position = sanitizeVec(n.Position)
		n.Rotation = sanitize(n.Rotation)
		n.Scale = noZeroVec(n.Scale)
		n.matrix = ComposeMatrix(n.Position, n.Scale, n.Origin, n.Rotation)
		n.matrixDirty = false
	}

	if n.parent != nil {
		n.globalMatrix = n.parent.globalMatrix.Multiply(n.matrix)
	} else {
		n.globalMatrix = n.matrix
	}

	inv, err := n.globalMatrix.Inverse()
	if err != nil {
		warnOnce("degenerate:"+n.UUID, "node matrix is not invertible", "node", n.Name, "err", err)
	}
	n.inverseGlobalMatrix = inv

	n.refreshBounds(nil)
}

// UpdateTree refreshes n and every descendant, parents first.
func (n *Node) UpdateTree(force bool) {
	n.Traverse(func(d *Node) bool {
		d.UpdateMatrix(force)
		return false
	})
}

// UpdateWorld refreshes every ancestor of n from the root down, then n
// itself, so the node's global matrix is current without walking siblings.
func (n *Node) UpdateWorld() {
	var chain []*Node
	for p := n; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		chain[i].UpdateMatrix(true)
	}
}

// --- Pose changes ---

// ApplyMatrix premultiplies the local matrix by m and decomposes the result
// back into Position, Rotation and Scale.
func (n *Node) ApplyMatrix(m Matrix) {
	n.UpdateMatrix(true)
	local := m.Multiply(n.matrix)
	d := local.Decompose()
	n.Rotation = d.Rotation
	n.Scale = d.Scale
	// The matrix translation includes the rotate-about-origin offset.
	n.Position = d.Position.Sub(n.Origin).Add(n.Origin.Rotate(d.Rotation))
	n.UpdateMatrix(true)
}

// Attach reparents child under n keeping its world-space pose. Both the old
// and the new parent chains are refreshed before the pose is recomputed.
func (n *Node) Attach(child *Node) {
	if child == nil || child == n {
		return
	}
	if isAncestor(child, n) {
		logger.Warn("attach would create a cycle, skipped", "parent", n.Name, "child", child.Name)
		return
	}
	n.UpdateWorld()
	oldParentGlobal := IdentityMatrix()
	if child.parent != nil {
		child.parent.UpdateWorld()
		oldParentGlobal = child.parent.globalMatrix
	}
	child.ApplyMatrix(n.inverseGlobalMatrix.Multiply(oldParentGlobal))
	n.Add(child)
	child.UpdateTree(true)
}

// --- Coordinate conversion ---

// LocalToWorld maps a point in the node's local space to world space using
// the cached global matrix.
func (n *Node) LocalToWorld(p Vec2) Vec2 {
	return n.globalMatrix.TransformPoint(p)
}

// WorldToLocal maps a world point into the node's local space using the
// cached inverse global matrix.
func (n *Node) WorldToLocal(p Vec2) Vec2 {
	return n.inverseGlobalMatrix.TransformPoint(p)
}

// WorldPosition returns the world coordinates of the node's local origin.
func (n *Node) WorldPosition() Vec2 {
	return n.globalMatrix.Position()
}

// WorldRotation returns the node's accumulated rotation in radians.
func (n *Node) WorldRotation() float64 {
	return n.globalMatrix.Rotation()
}

// WorldScale returns the node's accumulated scale. Mirrored transforms report
// a negative y component.
func (n *Node) WorldScale() Vec2 {
	return n.globalMatrix.Decompose().Scale
}
