package salinity

import (
	"math"
	"testing"
)

func TestUpdateMatrixHierarchy(t *testing.T) {
	parent := NewGroup("parent")
	parent.Position = Vec2{100, 0}
	parent.Rotation = math.Pi / 2
	parent.Scale = Vec2{2, 2}
	child := NewGroup("child")
	child.Position = Vec2{10, 0}
	parent.Add(child)

	parent.UpdateTree(false)

	assertVec(t, "child world", child.WorldPosition(), Vec2{100, 20})
	assertNear(t, "child rotation", child.WorldRotation(), math.Pi/2)
	assertVec(t, "child scale", child.WorldScale(), Vec2{2, 2})
	assertVec(t, "round trip", child.WorldToLocal(child.LocalToWorld(Vec2{3, 4})), Vec2{3, 4})
}

func TestUpdateMatrixSanitizes(t *testing.T) {
	n := NewGroup("n")
	n.Position = Vec2{math.NaN(), 5}
	n.Scale = Vec2{0, math.Inf(1)}
	n.UpdateMatrix(false)

	assertVec(t, "position", n.Position, Vec2{0, 5})
	assertVec(t, "scale", n.Scale, Vec2{minScale, minScale})
	if _, err := n.GlobalMatrix().Inverse(); err != nil {
		t.Errorf("global matrix should stay invertible: %v", err)
	}
}

func TestMatrixAutoUpdateOff(t *testing.T) {
	n := NewGroup("n")
	n.MatrixAutoUpdate = false
	n.UpdateMatrix(false)

	n.Position = Vec2{5, 0}
	n.UpdateMatrix(false)
	assertVec(t, "stale", n.WorldPosition(), Vec2{})

	n.MarkDirty()
	n.UpdateMatrix(false)
	assertVec(t, "after MarkDirty", n.WorldPosition(), Vec2{5, 0})

	n.SetPosition(7, 1)
	n.UpdateMatrix(false)
	assertVec(t, "after SetPosition", n.WorldPosition(), Vec2{7, 1})

	n.Position = Vec2{9, 9}
	n.UpdateMatrix(true)
	assertVec(t, "forced", n.WorldPosition(), Vec2{9, 9})
}

func TestGlobalOpacityMultiplies(t *testing.T) {
	parent := NewGroup("parent")
	parent.Opacity = 0.5
	child := NewGroup("child")
	child.Opacity = 0.5
	parent.Add(child)
	parent.UpdateTree(false)
	assertNear(t, "global opacity", child.GlobalOpacity(), 0.25)
}

func TestUpdateWorldRefreshesAncestors(t *testing.T) {
	root := NewGroup("root")
	mid := NewGroup("mid")
	leaf := NewGroup("leaf")
	root.Add(mid)
	mid.Add(leaf)
	root.UpdateTree(true)

	root.Position = Vec2{10, 0}
	mid.Position = Vec2{0, 5}
	leaf.UpdateWorld()
	assertVec(t, "leaf", leaf.WorldPosition(), Vec2{10, 5})
}

func TestAttachPreservesPose(t *testing.T) {
	root := NewGroup("root")
	a := NewGroup("a")
	a.Position = Vec2{50, 50}
	a.Rotation = math.Pi / 4
	a.Scale = Vec2{2, 2}
	b := NewGroup("b")
	b.Position = Vec2{10, 20}
	b.Rotation = 0.3
	b.Scale = Vec2{1, 1.5}
	root.Add(a, b)
	root.UpdateTree(true)
	before := b.GlobalMatrix()

	a.Attach(b)

	if b.Parent() != a {
		t.Fatalf("parent = %v, want a", b.Parent())
	}
	assertMatrix(t, "global", b.GlobalMatrix(), before)
	if b.Level() != 2 {
		t.Errorf("level = %d, want 2", b.Level())
	}
}

func TestAttachDetachedChild(t *testing.T) {
	a := NewGroup("a")
	a.Position = Vec2{10, 10}
	b := NewGroup("b")
	b.Position = Vec2{15, 10}

	a.Attach(b)
	assertVec(t, "local", b.Position, Vec2{5, 0})
	assertVec(t, "world", b.WorldPosition(), Vec2{15, 10})
}

func TestAttachCycleIsSkipped(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	a.Add(b)
	a.Position = Vec2{10, 20}
	a.UpdateTree(true)

	b.Attach(a)
	if a.Parent() != nil || b.NumChildren() != 0 {
		t.Error("attaching an ancestor should do nothing")
	}
	assertVec(t, "a position", a.Position, Vec2{10, 20})
}

func TestApplyMatrix(t *testing.T) {
	n := NewGroup("n")
	n.Position = Vec2{10, 0}
	n.ApplyMatrix(RotationMatrix(math.Pi / 2))
	// The node's origin (10, 0) rotates to (0, 10).
	assertVec(t, "position", n.Position, Vec2{0, 10})
	assertNear(t, "rotation", n.Rotation, math.Pi/2)
}
