package salinity

// SelectControls implements click selection and keeps a ResizeTool around
// the current selection.
//
//   - click: select the topmost hit, or clear the selection on empty space
//   - shift+click: add the topmost selectable hit
//   - ctrl/meta+click: toggle the topmost selectable hit
type SelectControls struct {
	// Tools selects which handles the resize tool builds.
	Tools ResizeTools

	selection []*Node
	tool      *ResizeTool
}

// NewSelectControls returns a controller with an empty selection.
func NewSelectControls() *SelectControls {
	return &SelectControls{}
}

// Selected returns the current selection in selection order.
func (c *SelectControls) Selected() []*Node { return c.selection }

// Tool returns the active resize tool, or nil.
func (c *SelectControls) Tool() *ResizeTool { return c.tool }

// Clear deselects everything and removes the resize tool.
func (c *SelectControls) Clear() {
	for _, n := range c.selection {
		n.Selected = false
	}
	c.selection = nil
	c.destroyTool()
}

func (c *SelectControls) destroyTool() {
	if c.tool != nil {
		c.tool.Destroy()
		c.tool = nil
	}
}

// Update implements Controller.
func (c *SelectControls) Update(f *Frame) {
	if f.Scene == nil || f.Camera == nil {
		return
	}
	p, kb := f.Pointer, f.Keyboard
	next := append([]*Node(nil), c.selection...)

	if p.ButtonJustPressed(MouseButtonLeft) {
		hits := f.Scene.WorldPointIntersections(f.Camera.ScreenToWorld(p.Position()))
		switch {
		case kb.Shift():
			if n := firstSelectable(hits); n != nil {
				n.Selected = true
				next = addNode(next, n)
			}
		case kb.Ctrl() || kb.Meta():
			if n := firstSelectable(hits); n != nil {
				if n.Selected {
					n.Selected = false
					next = removeNode(next, n)
				} else {
					n.Selected = true
					next = addNode(next, n)
				}
			}
		case len(hits) == 0:
			clearSelected(f.Scene)
			next = nil
		case hits[0].Selectable:
			clearSelected(f.Scene)
			hits[0].Selected = true
			next = []*Node{hits[0]}
		}
	}

	// Nodes destroyed since the last frame drop out of the selection.
	live := next[:0]
	for _, n := range next {
		if !n.disposed {
			live = append(live, n)
		}
	}
	next = live

	if sameNodes(c.selection, next) {
		return
	}
	c.selection = next
	c.destroyTool()
	if len(next) == 0 {
		return
	}
	cfg := f.Config()
	tool, err := NewResizeTool(next, cfg.HandleRadius, c.Tools, cfg.Theme)
	if err != nil {
		return
	}
	c.tool = tool
	f.Scene.Add(tool.Node)
	tool.Node.UpdateTree(true)
	tool.layout(f)
	tool.Node.UpdateTree(true)
	f.ForceDrag(tool.Node)
}

func firstSelectable(nodes []*Node) *Node {
	for _, n := range nodes {
		if n.Selectable {
			return n
		}
	}
	return nil
}

func clearSelected(root *Node) {
	root.Traverse(func(n *Node) bool {
		n.Selected = false
		return false
	})
}

func addNode(list []*Node, n *Node) []*Node {
	for _, have := range list {
		if have == n {
			return list
		}
	}
	return append(list, n)
}

func removeNode(list []*Node, n *Node) []*Node {
	out := list[:0]
	for _, have := range list {
		if have != n {
			out = append(out, have)
		}
	}
	return out
}

// sameNodes compares two node lists as sets.
func sameNodes(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[*Node]struct{}, len(a))
	for _, n := range a {
		set[n] = struct{}{}
	}
	for _, n := range b {
		if _, ok := set[n]; !ok {
			return false
		}
	}
	return true
}
