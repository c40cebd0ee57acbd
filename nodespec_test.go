package salinity

import (
	"errors"
	"strings"
	"testing"
)

const testSceneTOML = `
[camera]
position = [10, 20]
zoom = 2

[[node]]
kind = "boxmask"
name = "window"
box = [-20, -20, 20, 20]

[[node]]
kind = "box"
name = "panel"
position = [100, 50]
rotation = 0.5
layer = 2
fill = "#336699"
draggable = true
masks = ["window"]

  [[node.children]]
  kind = "text"
  name = "title"
  text = "hello"
  font_size = 24
  align = "left"
  baseline = "top"

[[node]]
kind = "line"
name = "rule"
from = [0, 0]
to = [50, 0]
dash = [4, 2]
constant_width = true
selectable = false

[[node]]
kind = "circle"
name = "dot"
radius = 8
  [node.fill_gradient]
  type = "radial"
  end_radius = 8
  stops = [{offset = 0, color = "white"}, {offset = 1, color = "black"}]
`

func TestLoadScene(t *testing.T) {
	sc, err := LoadScene(strings.NewReader(testSceneTOML))
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "camera position", sc.Camera.Position, Vec2{10, 20})
	assertNear(t, "camera zoom", sc.Camera.Zoom, 2)

	root := sc.Root
	if root.NumChildren() != 4 {
		t.Fatalf("children = %d, want 4", root.NumChildren())
	}

	panel := root.FindByName("panel")
	if panel == nil || panel.Kind != KindBox {
		t.Fatalf("panel = %v", panel)
	}
	assertVec(t, "panel position", panel.Position, Vec2{100, 50})
	if panel.Layer != 2 || !panel.Draggable || panel.Fill.Color != MustColor("#336699") {
		t.Errorf("panel fields not applied: %+v", panel)
	}
	if len(panel.Masks) != 1 || panel.Masks[0] != root.FindByName("window") {
		t.Error("mask reference not resolved")
	}
	// LoadScene leaves the world matrices current.
	assertVec(t, "panel world", panel.LocalToWorld(Vec2{}), Vec2{100, 50})

	title := panel.FindByName("title")
	if title == nil || title.Parent() != panel || title.Level() != 2 {
		t.Fatal("title should be a child of panel")
	}
	if title.Text != "hello" || title.Font.Size != 24 || title.Font.Family != DefaultFont.Family {
		t.Errorf("title = %q %+v", title.Text, title.Font)
	}
	if title.TextAlign != TextAlignLeft || title.TextBaseline != TextBaselineTop {
		t.Error("text placement not applied")
	}

	rule := root.FindByName("rule")
	if len(rule.Dash) != 2 || !rule.ConstantWidth || rule.Selectable {
		t.Errorf("rule = %+v", rule)
	}

	dot := root.FindByName("dot")
	if dot.Fill.Kind != PaintRadial || dot.Fill.EndRadius != 8 || len(dot.Fill.Stops) != 2 {
		t.Errorf("dot fill = %+v", dot.Fill)
	}
	assertVec(t, "dot bounds", dot.BoundingBox().Max, Vec2{8, 8})
}

func TestLoadSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unknown kind", `[[node]]
kind = "star"`, ErrUnknownKind},
		{"missing kind", `[[node]]
name = "x"`, ErrInvalidNode},
		{"field for other kind", `[[node]]
kind = "circle"
box = [0, 0, 1, 1]`, ErrInvalidNode},
		{"short vector", `[[node]]
kind = "group"
position = [1, 2, 3]`, ErrInvalidNode},
		{"inverted box", `[[node]]
kind = "box"
box = [10, 0, 0, 10]`, ErrInvalidNode},
		{"opacity", `[[node]]
kind = "group"
opacity = 2`, ErrInvalidNode},
		{"dangling mask", `[[node]]
kind = "box"
masks = ["nowhere"]`, ErrInvalidNode},
		{"fill and gradient", `[[node]]
kind = "box"
fill = "#fff"
  [node.fill_gradient]
  stops = [{offset = 0, color = "white"}]`, ErrInvalidNode},
		{"unknown key", `[[node]]
kind = "box"
colour = "#fff"`, ErrInvalidNode},
		{"bad child", `[[node]]
kind = "group"
  [[node.children]]
  kind = "line"
  radius = 3`, ErrInvalidNode},
		{"camera zoom", `[camera]
zoom = 0`, ErrInvalidNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScene(strings.NewReader(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNodeSpecBuildPathInError(t *testing.T) {
	spec := NodeSpec{
		Kind: "group",
		Name: "outer",
		Children: []NodeSpec{
			{Kind: "group"},
			{Kind: "text", Radius: new(float64)},
		},
	}
	_, err := spec.Build()
	if !errors.Is(err, ErrInvalidNode) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "children[1]") || !strings.Contains(err.Error(), `"radius"`) {
		t.Errorf("error %q should name the child and field", err)
	}
}

func TestPaintSpecLinearDefaults(t *testing.T) {
	spec := NodeSpec{
		Kind: "box",
		FillGradient: &PaintSpec{
			Stops: []StopSpec{{Offset: 1, Color: ColorBlack}, {Offset: 0, Color: ColorWhite}},
		},
	}
	n, err := spec.Build()
	if err != nil {
		t.Fatal(err)
	}
	def := DefaultLinearGradient()
	if n.Fill.Kind != PaintLinear || n.Fill.Start != def.Start || n.Fill.End != def.End {
		t.Errorf("fill = %+v", n.Fill)
	}
	if n.Fill.Stops[0].Offset != 0 {
		t.Error("stops should be sorted by offset")
	}
}
