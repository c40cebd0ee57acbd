package salinity

import "sort"

// IsInside reports whether a point in the node's local space hits its
// shape. HitTest, when set, replaces the kind's predicate. Groups never hit.
func (n *Node) IsInside(local Vec2) bool {
	if n.HitTest != nil {
		return n.HitTest(local)
	}
	if fn := kindTable[n.Kind].inside; fn != nil {
		return fn(n, local)
	}
	return false
}

// IsWorldPointInside converts p to local space and tests it. With recursive
// set, a hit on any descendant also counts.
func (n *Node) IsWorldPointInside(p Vec2, recursive bool) bool {
	if n.IsInside(n.WorldToLocal(p)) {
		return true
	}
	if !recursive {
		return false
	}
	for _, child := range n.children {
		if child.IsWorldPointInside(p, true) {
			return true
		}
	}
	return false
}

// WorldPointIntersections returns every visible node in the subtree
// (n included) whose shape contains the world point p, in pick priority
// order: layer descending, then level descending. A hidden node is skipped
// but its children are still tested. Matrices are read from the last update
// pass.
func (n *Node) WorldPointIntersections(p Vec2) []*Node {
	var hits []*Node
	n.Traverse(func(d *Node) bool {
		if d.Visible && d.IsInside(d.WorldToLocal(p)) {
			hits = append(hits, d)
		}
		return false
	})
	sortByPriority(hits)
	return hits
}

// WorldBoundingBox returns the axis-aligned envelope of the local bounding
// box transformed by the global matrix. A box with non-finite bounds is
// returned unchanged.
func (n *Node) WorldBoundingBox() Box {
	return n.boundingBox.Transform(n.globalMatrix)
}

// sortByPriority stable-sorts nodes by layer descending, then level
// descending. Ties keep traversal order.
func sortByPriority(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.Layer != b.Layer {
			return a.Layer > b.Layer
		}
		return a.level > b.level
	})
}
