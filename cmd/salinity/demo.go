package main

import (
	"math"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/salinity"
)

// demoScene builds the scene shown when no --scene is given: a few of each
// shape kind, a masked group and a draggable line.
func demoScene() *salinity.Scene {
	root := salinity.NewGroup("scene")

	box := salinity.NewBoxNode("box")
	box.Position = salinity.V(-200, 0)
	box.Fill = salinity.LinearGradient(salinity.V(-50, 0), salinity.V(50, 0),
		salinity.ColorStop{Offset: 0, Color: salinity.MustColor("#ff5555")},
		salinity.ColorStop{Offset: 1, Color: salinity.MustColor("#5555ff")},
	)
	box.Draggable = true

	circle := salinity.NewCircle("circle", 60)
	circle.Position = salinity.V(0, 0)
	circle.Fill = salinity.RadialGradient(salinity.V(0, 0), 0, 60,
		salinity.ColorStop{Offset: 0, Color: salinity.MustColor("#ffffff")},
		salinity.ColorStop{Offset: 1, Color: salinity.MustColor("#00aacc")},
	)
	circle.LineWidth = 3
	circle.Draggable = true

	line := salinity.NewLine("line", salinity.V(-80, 0), salinity.V(80, 0))
	line.Position = salinity.V(0, 150)
	line.Stroke = salinity.Solid(salinity.MustColor("#ffcc00"))
	line.Dash = []float64{12, 6}
	line.Draggable = true

	label := salinity.NewText("label", "salinity", salinity.Font{Family: "goregular", Size: 32})
	label.Position = salinity.V(0, -150)
	label.Fill = salinity.Solid(salinity.MustColor("#eeeeee"))

	masked := salinity.NewGroup("masked")
	masked.Position = salinity.V(220, 0)
	mask := salinity.NewBoxMask("window")
	stripes := salinity.NewGroup("stripes")
	stripes.Rotation = math.Pi / 8
	for i := -3; i <= 3; i++ {
		s := salinity.NewBoxNode("stripe")
		s.Box = salinity.NewBox(-8, -80, 8, 80)
		s.Position = salinity.V(float64(i)*24, 0)
		s.Fill = salinity.Solid(salinity.MustColor("#55cc77"))
		s.Stroke = salinity.NoPaint
		s.Masks = []*salinity.Node{mask}
		s.Selectable = false
		stripes.Add(s)
	}
	masked.Add(mask, stripes)

	root.Add(box, circle, line, label, masked)
	root.UpdateTree(true)
	return &salinity.Scene{Root: root, Camera: salinity.NewCamera()}
}

// demoIntro fades the demo title in and swings the box into place.
func demoIntro(sc *salinity.Scene) []*salinity.TweenGroup {
	var groups []*salinity.TweenGroup
	if label := sc.Root.FindByName("label"); label != nil {
		label.Opacity = 0
		groups = append(groups, salinity.TweenOpacity(label, 1, 0.8, ease.OutQuad))
	}
	if box := sc.Root.FindByName("box"); box != nil {
		box.Rotation = -math.Pi / 4
		groups = append(groups, salinity.TweenRotation(box, 0, 0.6, ease.OutBack))
	}
	return groups
}
