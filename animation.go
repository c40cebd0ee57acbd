package salinity

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenFill) and call Update(dt) each frame, or hand it to an Animator. The
// group auto-applies values and marks the node dirty. If the target node is
// disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenPosition animates node.Position to the given point.
func TweenPosition(node *Node, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Position.X, to.X, duration, fn)
	g.add(&node.Position.Y, to.Y, duration, fn)
	return g
}

// TweenScale animates node.Scale to the given factors.
func TweenScale(node *Node, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Scale.X, to.X, duration, fn)
	g.add(&node.Scale.Y, to.Y, duration, fn)
	return g
}

// TweenRotation animates node.Rotation to the target angle in radians.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Rotation, to, duration, fn)
	return g
}

// TweenOpacity animates node.Opacity to the target value.
func TweenOpacity(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Opacity, to, duration, fn)
	return g
}

// TweenFill animates the four components of a solid node.Fill to the target
// color. A gradient fill is replaced by its first stop's color.
func TweenFill(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	if node.Fill.Kind != PaintSolid {
		c := to
		if stops := node.Fill.Stops; len(stops) > 0 {
			c = stops[0].Color
		}
		node.Fill = Solid(c)
	}
	g := &TweenGroup{target: node}
	c := &node.Fill.Color
	g.add(&c.R, to.R, duration, fn)
	g.add(&c.G, to.G, duration, fn)
	g.add(&c.B, to.B, duration, fn)
	g.add(&c.A, to.A, duration, fn)
	return g
}

// Animator is a Controller that advances tween groups by the frame time and
// drops them once they finish.
type Animator struct {
	groups []*TweenGroup
}

// Add starts driving g.
func (a *Animator) Add(g *TweenGroup) {
	if g != nil {
		a.groups = append(a.groups, g)
	}
}

// Len returns the number of running groups.
func (a *Animator) Len() int { return len(a.groups) }

// Update implements Controller.
func (a *Animator) Update(f *Frame) {
	live := a.groups[:0]
	for _, g := range a.groups {
		g.Update(f.Dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(a.groups); i++ {
		a.groups[i] = nil
	}
	a.groups = live
}
