package salinity

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// SceneFile is the TOML layout of a scene description.
//
//	[camera]
//	position = [640, 360]
//	zoom = 1
//
//	[[node]]
//	kind = "box"
//	name = "panel"
//	position = [0, 0]
//	fill = "#336699"
//
//	  [[node.children]]
//	  kind = "text"
//	  text = "hello"
type SceneFile struct {
	Camera *CameraSpec `toml:"camera"`
	Nodes  []NodeSpec  `toml:"node"`
}

// CameraSpec describes the initial camera.
type CameraSpec struct {
	Position []float64 `toml:"position"`
	Zoom     *float64  `toml:"zoom"`
	Rotation float64   `toml:"rotation"`
}

// StopSpec is one gradient color stop.
type StopSpec struct {
	Offset float64 `toml:"offset"`
	Color  Color   `toml:"color"`
}

// PaintSpec describes a gradient paint. Solid paints are plain color
// strings on the node.
type PaintSpec struct {
	Type        string     `toml:"type"` // "linear" or "radial"
	Start       []float64  `toml:"start"`
	End         []float64  `toml:"end"`
	StartRadius *float64   `toml:"start_radius"`
	EndRadius   *float64   `toml:"end_radius"`
	Stops       []StopSpec `toml:"stops"`
}

// NodeSpec is a tagged description of one node: Kind selects which of the
// shape fields are meaningful. Setting a field the kind does not use is a
// validation error.
type NodeSpec struct {
	Kind string `toml:"kind"`
	Name string `toml:"name"`

	Position []float64 `toml:"position"`
	Scale    []float64 `toml:"scale"`
	Origin   []float64 `toml:"origin"`
	Rotation float64   `toml:"rotation"`
	Layer    int       `toml:"layer"`
	Opacity  *float64  `toml:"opacity"`
	Visible  *bool     `toml:"visible"`

	PointerEvents *bool `toml:"pointer_events"`
	Draggable     bool  `toml:"draggable"`
	Focusable     *bool `toml:"focusable"`
	Selectable    *bool `toml:"selectable"`

	// Masks names BoxMask nodes anywhere in the scene.
	Masks []string `toml:"masks"`

	// Shape fields.
	Box           []float64  `toml:"box"`
	Radius        *float64   `toml:"radius"`
	From          []float64  `toml:"from"`
	To            []float64  `toml:"to"`
	Text          *string    `toml:"text"`
	FontFamily    string     `toml:"font_family"`
	FontSize      *float64   `toml:"font_size"`
	Align         string     `toml:"align"`
	Baseline      string     `toml:"baseline"`
	Fill          *Color     `toml:"fill"`
	FillGradient  *PaintSpec `toml:"fill_gradient"`
	Stroke        *Color     `toml:"stroke"`
	LineWidth     *float64   `toml:"line_width"`
	ConstantWidth bool       `toml:"constant_width"`
	Dash          []float64  `toml:"dash"`
	PointerBuffer *float64   `toml:"pointer_buffer"`
	Invert        bool       `toml:"invert"`

	Children []NodeSpec `toml:"children"`
}

// kindFields lists the shape fields each kind accepts.
var kindFields = [numKinds]map[string]bool{
	KindGroup:   {},
	KindBox:     {"box": true, "fill": true, "fill_gradient": true, "stroke": true, "line_width": true, "constant_width": true},
	KindCircle:  {"radius": true, "fill": true, "fill_gradient": true, "stroke": true, "line_width": true, "constant_width": true},
	KindLine:    {"from": true, "to": true, "stroke": true, "line_width": true, "constant_width": true, "dash": true, "pointer_buffer": true},
	KindText:    {"text": true, "font_family": true, "font_size": true, "align": true, "baseline": true, "fill": true, "fill_gradient": true, "stroke": true},
	KindBoxMask: {"box": true, "invert": true},
}

// shapeFields returns the names of the shape fields set on s.
func (s *NodeSpec) shapeFields() []string {
	var set []string
	add := func(ok bool, name string) {
		if ok {
			set = append(set, name)
		}
	}
	add(s.Box != nil, "box")
	add(s.Radius != nil, "radius")
	add(s.From != nil, "from")
	add(s.To != nil, "to")
	add(s.Text != nil, "text")
	add(s.FontFamily != "", "font_family")
	add(s.FontSize != nil, "font_size")
	add(s.Align != "", "align")
	add(s.Baseline != "", "baseline")
	add(s.Fill != nil, "fill")
	add(s.FillGradient != nil, "fill_gradient")
	add(s.Stroke != nil, "stroke")
	add(s.LineWidth != nil, "line_width")
	add(s.ConstantWidth, "constant_width")
	add(s.Dash != nil, "dash")
	add(s.PointerBuffer != nil, "pointer_buffer")
	add(s.Invert, "invert")
	return set
}

// Build validates s and creates the node with its children. Mask references
// are not resolved; LoadScene does that once the whole tree exists.
func (s *NodeSpec) Build() (*Node, error) {
	return s.build("node")
}

func (s *NodeSpec) build(path string) (*Node, error) {
	if s.Name != "" {
		path = fmt.Sprintf("%s (%s)", path, s.Name)
	}
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%s: %w: %s", path, ErrInvalidNode, fmt.Sprintf(format, args...))
	}
	if s.Kind == "" {
		return nil, fail("missing kind")
	}
	kind, err := ParseNodeKind(s.Kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, f := range s.shapeFields() {
		if !kindFields[kind][f] {
			return nil, fail("field %q is not valid for kind %s", f, kind)
		}
	}

	var n *Node
	switch kind {
	case KindGroup:
		n = NewGroup(s.Name)
	case KindBox:
		n = NewBoxNode(s.Name)
	case KindCircle:
		n = NewCircle(s.Name, 10)
	case KindLine:
		n = NewLine(s.Name, Vec2{}, Vec2{100, 0})
	case KindText:
		n = NewText(s.Name, "", DefaultFont)
	case KindBoxMask:
		n = NewBoxMask(s.Name)
	}

	vec := func(field string, v []float64, dst *Vec2) error {
		if v == nil {
			return nil
		}
		if len(v) != 2 {
			return fail("%s needs 2 numbers, got %d", field, len(v))
		}
		*dst = Vec2{v[0], v[1]}
		return nil
	}
	if err := vec("position", s.Position, &n.Position); err != nil {
		return nil, err
	}
	if err := vec("scale", s.Scale, &n.Scale); err != nil {
		return nil, err
	}
	if err := vec("origin", s.Origin, &n.Origin); err != nil {
		return nil, err
	}
	if err := vec("from", s.From, &n.From); err != nil {
		return nil, err
	}
	if err := vec("to", s.To, &n.To); err != nil {
		return nil, err
	}
	n.Rotation = s.Rotation
	n.Layer = s.Layer
	if s.Opacity != nil {
		if *s.Opacity < 0 || *s.Opacity > 1 {
			return nil, fail("opacity %g outside [0, 1]", *s.Opacity)
		}
		n.Opacity = *s.Opacity
	}
	setBool(&n.Visible, s.Visible)
	setBool(&n.PointerEvents, s.PointerEvents)
	setBool(&n.Focusable, s.Focusable)
	setBool(&n.Selectable, s.Selectable)
	n.Draggable = s.Draggable

	if s.Box != nil {
		if len(s.Box) != 4 {
			return nil, fail("box needs 4 numbers (min x, min y, max x, max y), got %d", len(s.Box))
		}
		b := NewBox(s.Box[0], s.Box[1], s.Box[2], s.Box[3])
		if b.IsEmpty() {
			return nil, fail("box min must not exceed max")
		}
		n.Box = b
	}
	if s.Radius != nil {
		if *s.Radius < 0 {
			return nil, fail("radius must not be negative")
		}
		n.Radius = *s.Radius
	}
	if s.Text != nil {
		n.Text = *s.Text
	}
	if s.FontFamily != "" {
		n.Font.Family = s.FontFamily
	}
	if s.FontSize != nil {
		if *s.FontSize <= 0 {
			return nil, fail("font_size must be positive")
		}
		n.Font.Size = *s.FontSize
	}
	if s.Align != "" {
		if n.TextAlign, err = parseTextAlign(s.Align); err != nil {
			return nil, fail("%v", err)
		}
	}
	if s.Baseline != "" {
		if n.TextBaseline, err = parseTextBaseline(s.Baseline); err != nil {
			return nil, fail("%v", err)
		}
	}
	if s.Fill != nil && s.FillGradient != nil {
		return nil, fail("fill and fill_gradient are exclusive")
	}
	if s.Fill != nil {
		n.Fill = Solid(*s.Fill)
	}
	if s.FillGradient != nil {
		p, err := s.FillGradient.paint()
		if err != nil {
			return nil, fail("fill_gradient: %v", err)
		}
		n.Fill = p
	}
	if s.Stroke != nil {
		n.Stroke = Solid(*s.Stroke)
	}
	if s.LineWidth != nil {
		if *s.LineWidth < 0 {
			return nil, fail("line_width must not be negative")
		}
		n.LineWidth = *s.LineWidth
	}
	n.ConstantWidth = s.ConstantWidth
	if s.Dash != nil {
		n.Dash = append([]float64(nil), s.Dash...)
	}
	if s.PointerBuffer != nil {
		n.PointerBuffer = *s.PointerBuffer
	}
	n.InvertMask = s.Invert
	n.MarkDirty()
	n.refreshBounds(nil)

	for i := range s.Children {
		child, err := s.Children[i].build(fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func (p *PaintSpec) paint() (Paint, error) {
	if len(p.Stops) == 0 {
		return Paint{}, errors.New("at least one stop is required")
	}
	stops := make([]ColorStop, len(p.Stops))
	for i, s := range p.Stops {
		if s.Offset < 0 || s.Offset > 1 {
			return Paint{}, fmt.Errorf("stop %d offset %g outside [0, 1]", i, s.Offset)
		}
		stops[i] = ColorStop{Offset: s.Offset, Color: s.Color}
	}
	point := func(v []float64, def Vec2) (Vec2, error) {
		if v == nil {
			return def, nil
		}
		if len(v) != 2 {
			return Vec2{}, fmt.Errorf("point needs 2 numbers, got %d", len(v))
		}
		return Vec2{v[0], v[1]}, nil
	}
	switch strings.ToLower(p.Type) {
	case "linear", "":
		def := DefaultLinearGradient()
		start, err := point(p.Start, def.Start)
		if err != nil {
			return Paint{}, err
		}
		end, err := point(p.End, def.End)
		if err != nil {
			return Paint{}, err
		}
		return LinearGradient(start, end, stops...), nil
	case "radial":
		def := DefaultRadialGradient()
		center, err := point(p.Start, def.Start)
		if err != nil {
			return Paint{}, err
		}
		r0, r1 := def.StartRadius, def.EndRadius
		if p.StartRadius != nil {
			r0 = *p.StartRadius
		}
		if p.EndRadius != nil {
			r1 = *p.EndRadius
		}
		return RadialGradient(center, r0, r1, stops...), nil
	}
	return Paint{}, fmt.Errorf("unknown gradient type %q", p.Type)
}

func parseTextAlign(s string) (TextAlign, error) {
	switch strings.ToLower(s) {
	case "center":
		return TextAlignCenter, nil
	case "left", "start":
		return TextAlignLeft, nil
	case "right", "end":
		return TextAlignRight, nil
	}
	return 0, fmt.Errorf("unknown align %q", s)
}

func parseTextBaseline(s string) (TextBaseline, error) {
	switch strings.ToLower(s) {
	case "middle":
		return TextBaselineMiddle, nil
	case "top":
		return TextBaselineTop, nil
	case "alphabetic":
		return TextBaselineAlphabetic, nil
	case "bottom":
		return TextBaselineBottom, nil
	}
	return 0, fmt.Errorf("unknown baseline %q", s)
}

// Scene is a loaded scene description.
type Scene struct {
	Root   *Node
	Camera *Camera
}

// LoadScene decodes a TOML scene description and builds its nodes under a
// fresh root group. Unknown keys, kind mismatches and dangling mask names
// are errors.
func LoadScene(r io.Reader) (*Scene, error) {
	var file SceneFile
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidNode, strings.Join(keys, ", "))
	}

	root := NewGroup("scene")
	specs := map[*Node]*NodeSpec{}
	for i := range file.Nodes {
		n, err := file.Nodes[i].build(fmt.Sprintf("node[%d]", i))
		if err != nil {
			return nil, err
		}
		root.Add(n)
		collectSpecs(n, &file.Nodes[i], specs)
	}
	if err := resolveMasks(root, specs); err != nil {
		return nil, err
	}

	cam := NewCamera()
	if c := file.Camera; c != nil {
		if c.Position != nil {
			if len(c.Position) != 2 {
				return nil, fmt.Errorf("camera: %w: position needs 2 numbers", ErrInvalidNode)
			}
			cam.Position = Vec2{c.Position[0], c.Position[1]}
		}
		if c.Zoom != nil {
			if *c.Zoom <= 0 {
				return nil, fmt.Errorf("camera: %w: zoom must be positive", ErrInvalidNode)
			}
			cam.Zoom = *c.Zoom
		}
		cam.Rotation = c.Rotation
	}
	root.UpdateTree(true)
	return &Scene{Root: root, Camera: cam}, nil
}

// LoadSceneFile reads a scene description from path.
func LoadSceneFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := LoadScene(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// collectSpecs pairs every built node with the spec it came from. Build adds
// children in spec order.
func collectSpecs(n *Node, s *NodeSpec, out map[*Node]*NodeSpec) {
	out[n] = s
	for i := range s.Children {
		collectSpecs(n.children[i], &s.Children[i], out)
	}
}

func resolveMasks(root *Node, specs map[*Node]*NodeSpec) error {
	byName := map[string]*Node{}
	root.Traverse(func(n *Node) bool {
		if n.Name != "" && n.IsMask() {
			if _, dup := byName[n.Name]; !dup {
				byName[n.Name] = n
			}
		}
		return false
	})
	var err error
	root.Traverse(func(n *Node) bool {
		s := specs[n]
		if s == nil {
			return false
		}
		for _, name := range s.Masks {
			m, ok := byName[name]
			if !ok {
				err = fmt.Errorf("%w: node %q: no mask named %q", ErrInvalidNode, n.Name, name)
				return true
			}
			n.AddMask(m)
		}
		return false
	})
	return err
}
