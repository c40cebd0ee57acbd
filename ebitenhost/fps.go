package ebitenhost

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/salinity"
)

// NewFPSWidget creates a node that prints the current FPS, TPS and the
// renderer's node counts in the top-left corner of the screen. The text is
// refreshed every ~0.5 seconds. It only draws on an ebitenhost Surface.
func NewFPSWidget() *salinity.Node {
	node := salinity.NewGroup("fps_widget")
	node.Layer = 255 // Draw on top
	node.Helper = true
	node.PointerEvents = false
	node.Selectable = false
	node.Focusable = false

	var lastUpdate float64
	var label string

	node.OnUpdate = func(f *salinity.Frame) {
		lastUpdate += float64(f.Dt)
		if label != "" && lastUpdate < 0.5 {
			return
		}
		lastUpdate = 0
		st := f.Renderer.Stats()
		label = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nNodes: %d drawn %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), st.Nodes, st.Drawn)
	}
	node.DrawFunc = func(s salinity.Surface, _ *salinity.Frame) {
		es, ok := s.(*Surface)
		if !ok || es.Target() == nil {
			return
		}
		ebitenutil.DebugPrintAt(es.Target(), label, 4, 4)
	}
	return node
}
