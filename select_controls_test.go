package salinity

import "testing"

func newSelectRig() (*testRig, *SelectControls) {
	g := newTestRig()
	sc := NewSelectControls()
	g.r.AddController(sc)
	return g, sc
}

func TestSelectClickSelectsAndDrags(t *testing.T) {
	g, sc := newSelectRig()
	box := solidBox("box", "#ff0000")
	g.scene.Add(box)
	g.frame()

	g.r.InjectPress(0, 0)
	g.frame()

	if sel := sc.Selected(); len(sel) != 1 || sel[0] != box || !box.Selected {
		t.Fatalf("selection = %v, want [box]", sel)
	}
	tool := sc.Tool()
	if tool == nil {
		t.Fatal("no resize tool")
	}
	if tool.Node.Parent() != g.scene {
		t.Error("tool should be added to the scene")
	}
	if g.r.Frame().Dragged() != tool.Node {
		t.Error("the press should carry over to the tool body")
	}

	g.r.InjectMove(30, 0)
	g.r.InjectRelease(30, 0)
	g.drain()

	assertVec(t, "box position", box.Position, Vec2{30, 0})
	assertVec(t, "tool position", tool.Node.Position, Vec2{30, 0})
	if sc.Tool() != tool {
		t.Error("tool should survive the drag")
	}
}

func TestSelectClickEmptyClears(t *testing.T) {
	g, sc := newSelectRig()
	box := solidBox("box", "#ff0000")
	g.scene.Add(box)
	g.frame()

	g.r.InjectClick(0, 0)
	g.drain()
	tool := sc.Tool()
	if tool == nil {
		t.Fatal("no resize tool")
	}

	g.r.InjectClick(600, 500)
	g.drain()

	if len(sc.Selected()) != 0 || box.Selected {
		t.Errorf("selection = %v, want empty", sc.Selected())
	}
	if sc.Tool() != nil || !tool.Node.IsDisposed() {
		t.Error("tool should be destroyed")
	}
	if tool.Node.Parent() != nil {
		t.Error("tool still attached")
	}
}

func TestSelectIgnoresUnselectable(t *testing.T) {
	g, sc := newSelectRig()
	box := solidBox("box", "#ff0000")
	box.Selectable = false
	g.scene.Add(box)
	g.frame()

	g.r.InjectClick(0, 0)
	g.drain()
	if len(sc.Selected()) != 0 || sc.Tool() != nil {
		t.Error("unselectable node was selected")
	}
}

func TestSelectModifiers(t *testing.T) {
	g, sc := newSelectRig()
	a := solidBox("a", "#ff0000")
	b := solidBox("b", "#00ff00")
	b.Position = Vec2{200, 0}
	g.scene.Add(a, b)
	g.frame()

	g.r.InjectClick(0, 0)
	g.r.InjectKey(KeyShiftLeft, true)
	g.r.InjectClick(200, 0)
	g.r.InjectKey(KeyShiftLeft, false)
	g.drain()

	if sel := sc.Selected(); len(sel) != 2 || sel[0] != a || sel[1] != b {
		t.Fatalf("after shift: selection = %v, want [a b]", sel)
	}
	if objs := sc.Tool().Objects(); len(objs) != 2 {
		t.Errorf("tool objects = %d, want 2", len(objs))
	}
	// The gizmo spans both boxes.
	assertVec(t, "tool center", sc.Tool().Node.Position, Vec2{100, 0})

	g.r.InjectKey(KeyControlLeft, true)
	g.r.InjectClick(0, 0)
	g.r.InjectKey(KeyControlLeft, false)
	g.drain()

	if sel := sc.Selected(); len(sel) != 1 || sel[0] != b {
		t.Fatalf("after ctrl: selection = %v, want [b]", sel)
	}
	if a.Selected || !b.Selected {
		t.Error("ctrl click should toggle a off")
	}
}

func TestSelectDropsDestroyedNodes(t *testing.T) {
	g, sc := newSelectRig()
	box := solidBox("box", "#ff0000")
	g.scene.Add(box)
	g.frame()

	g.r.InjectClick(0, 0)
	g.drain()
	box.Destroy()
	g.frame()

	if len(sc.Selected()) != 0 || sc.Tool() != nil {
		t.Error("destroyed node should leave the selection")
	}
}

func TestSelectToolKind(t *testing.T) {
	g, sc := newSelectRig()
	sc.Tools = ResizeToolRotate
	g.scene.Add(solidBox("box", "#ff0000"))
	g.frame()

	g.r.InjectClick(0, 0)
	g.drain()

	tool := sc.Tool()
	if tool == nil {
		t.Fatal("no resize tool")
	}
	if tool.Handle("Right") != nil {
		t.Error("rotate-only tool has resize handles")
	}
	if tool.Rotater() == nil {
		t.Error("rotate-only tool has no rotater")
	}
}

func TestSelectClear(t *testing.T) {
	g, sc := newSelectRig()
	box := solidBox("box", "#ff0000")
	g.scene.Add(box)
	g.frame()
	g.r.InjectClick(0, 0)
	g.drain()

	sc.Clear()
	if box.Selected || sc.Tool() != nil || len(sc.Selected()) != 0 {
		t.Error("Clear should drop selection and tool")
	}
}

func TestSelectCtrlClickTwiceRestores(t *testing.T) {
	g, sc := newSelectRig()
	box := solidBox("box", "#ff0000")
	g.scene.Add(box)
	g.frame()

	g.r.InjectKey(KeyControlLeft, true)
	g.r.InjectClick(0, 0)
	g.drain()
	if sel := sc.Selected(); len(sel) != 1 || sel[0] != box || sc.Tool() == nil {
		t.Fatalf("after first ctrl click: selection = %v, tool = %v", sel, sc.Tool())
	}

	// The gizmo body now covers the box but is not selectable.
	g.r.InjectClick(0, 0)
	g.r.InjectKey(KeyControlLeft, false)
	g.drain()

	if sel := sc.Selected(); len(sel) != 0 {
		t.Errorf("after second ctrl click: selection = %v, want none", sel)
	}
	if box.Selected || sc.Tool() != nil {
		t.Error("second ctrl click should deselect the box and drop the tool")
	}
}
