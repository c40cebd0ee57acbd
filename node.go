package salinity

import (
	"github.com/google/uuid"
)

// PointerContext carries pointer event data to node hooks and scene-level
// handlers.
type PointerContext struct {
	Node   *Node
	Frame  *Frame
	World  Vec2 // pointer position in world space
	Local  Vec2 // pointer position in the node's local space
	Button MouseButton
}

// Pointer returns the frame's pointer tracker.
func (c PointerContext) Pointer() *Pointer { return c.Frame.Pointer }

// Camera returns the frame's camera.
func (c PointerContext) Camera() *Camera { return c.Frame.Camera }

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic: the scene graph is
// single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used for
// every kind; shape-specific behavior is looked up from Kind.
type Node struct {
	// Identity
	ID   uint32
	UUID string
	Name string
	Kind NodeKind

	// Hierarchy. parent is a traversal link only; the parent's children
	// slice is what keeps a node in the tree.
	parent   *Node
	children []*Node
	level    int

	// Transform (local)
	Position Vec2
	Scale    Vec2
	Rotation float64
	Origin   Vec2

	// MatrixAutoUpdate recomputes the local matrix on every update pass.
	// When false the matrix is only rebuilt after MarkDirty or a forced
	// update.
	MatrixAutoUpdate bool

	// Computed, refreshed by UpdateMatrix
	matrix              Matrix
	globalMatrix        Matrix
	inverseGlobalMatrix Matrix
	globalOpacity       float64
	matrixDirty         bool

	// Visibility & ordering
	Visible bool
	Opacity float64
	Layer   int

	boundingBox Box
	shapeSig    shapeSignature

	// Masks clip this node when it is drawn. Mask nodes are never drawn
	// themselves.
	Masks []*Node

	// Interaction
	PointerEvents bool
	Draggable     bool
	Focusable     bool
	Selectable    bool
	Selected      bool
	// Helper marks nodes synthesized by controllers (gizmos, handles).
	Helper bool

	pointerInside bool
	inViewport    bool
	dragStart     Vec2
	// viewZoom is the camera zoom seen on the last update, used to keep
	// screen-space line widths and hit buffers constant.
	viewZoom float64

	// Cursor is the hint shown while the pointer is over (or dragging)
	// this node. CursorFunc, when set, takes precedence.
	Cursor     Cursor
	CursorFunc func(*Camera) Cursor

	// Shape fields (KindBox, KindBoxMask)
	Box Box
	// InvertMask clips to everything outside Box (KindBoxMask).
	InvertMask bool

	// Shape fields (KindCircle)
	Radius float64

	// Shape fields (KindLine)
	From, To Vec2
	// PointerBuffer widens the line's hit area, in screen pixels.
	PointerBuffer float64
	Dash          []float64

	// Shape fields (KindText)
	Text         string
	Font         Font
	TextAlign    TextAlign
	TextBaseline TextBaseline

	// Paint (all drawable kinds)
	Fill          Paint
	Stroke        Paint
	LineWidth     float64
	ConstantWidth bool

	// Metadata
	UserData any
	EntityID uint32

	// Hooks (nil by default)
	OnAdd    func(parent *Node)
	OnRemove func(parent *Node)
	OnUpdate func(*Frame)
	// DrawFunc replaces the kind's draw routine.
	DrawFunc func(Surface, *Frame)
	// HitTest replaces the kind's local-space hit predicate.
	HitTest func(local Vec2) bool

	OnPointerEnter  func(PointerContext)
	OnPointerLeave  func(PointerContext)
	OnPointerOver   func(PointerContext)
	OnDoubleClick   func(PointerContext)
	OnButtonPressed func(PointerContext)
	OnButtonDown    func(PointerContext)
	OnButtonUp      func(PointerContext)
	OnDragStart     func(PointerContext)
	// OnDrag replaces the default drag behavior (FollowPointer).
	OnDrag    func(PointerContext)
	OnDragEnd func(PointerContext)

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.UUID = uuid.NewString()
	n.Scale = Vec2{1, 1}
	n.Opacity = 1
	n.globalOpacity = 1
	n.Visible = true
	n.MatrixAutoUpdate = true
	n.matrixDirty = true
	n.matrix = IdentityMatrix()
	n.globalMatrix = IdentityMatrix()
	n.inverseGlobalMatrix = IdentityMatrix()
	n.boundingBox = EmptyBox()
	n.PointerEvents = true
	n.Focusable = true
	n.Selectable = true
	n.inViewport = true
	n.viewZoom = 1
	n.LineWidth = 1
}

func newNode(name string, kind NodeKind) *Node {
	n := &Node{Name: name, Kind: kind}
	nodeDefaults(n)
	return n
}

// NewGroup creates a transform-only node with no visual representation.
func NewGroup(name string) *Node {
	return newNode(name, KindGroup)
}

// NewBoxNode creates a rectangle spanning (-50,-50)-(50,50), white fill, black
// one pixel stroke.
func NewBoxNode(name string) *Node {
	n := newNode(name, KindBox)
	n.Box = NewBox(-50, -50, 50, 50)
	n.Fill = Solid(ColorWhite)
	n.Stroke = Solid(ColorBlack)
	n.refreshBounds(nil)
	return n
}

// NewCircle creates a circle of the given radius centered on the origin.
func NewCircle(name string, radius float64) *Node {
	n := newNode(name, KindCircle)
	n.Radius = radius
	n.Fill = Solid(ColorWhite)
	n.Stroke = Solid(ColorBlack)
	n.refreshBounds(nil)
	return n
}

// NewLine creates a five pixel wide white segment from from to to.
func NewLine(name string, from, to Vec2) *Node {
	n := newNode(name, KindLine)
	n.From = from
	n.To = to
	n.Stroke = Solid(ColorWhite)
	n.LineWidth = 5
	n.PointerBuffer = 5
	n.refreshBounds(nil)
	return n
}

// NewText creates a centered single-line text node. Its bounding box is
// measured against the drawing surface on the first update pass.
func NewText(name, text string, font Font) *Node {
	n := newNode(name, KindText)
	n.Text = text
	n.Font = font
	n.Fill = Solid(ColorBlack)
	return n
}

// NewBoxMask creates a rectangular clip mask spanning (-50,-35)-(50,35).
func NewBoxMask(name string) *Node {
	n := newNode(name, KindBoxMask)
	n.Box = NewBox(-50, -35, 50, 35)
	n.refreshBounds(nil)
	return n
}

// --- Accessors ---

// Parent returns the node's parent, or nil for a root or detached node.
func (n *Node) Parent() *Node { return n.parent }

// Level returns the node's depth below the node it was last added to.
func (n *Node) Level() int { return n.level }

// Matrix returns the cached local matrix.
func (n *Node) Matrix() Matrix { return n.matrix }

// GlobalMatrix returns the cached local-to-world matrix.
func (n *Node) GlobalMatrix() Matrix { return n.globalMatrix }

// InverseGlobalMatrix returns the cached world-to-local matrix.
func (n *Node) InverseGlobalMatrix() Matrix { return n.inverseGlobalMatrix }

// GlobalOpacity returns Opacity multiplied by every ancestor's opacity, as of
// the last update.
func (n *Node) GlobalOpacity() float64 { return n.globalOpacity }

// BoundingBox returns the local-space bounding box.
func (n *Node) BoundingBox() Box { return n.boundingBox }

// SetBoundingBox overrides the local-space bounding box. Shape kinds
// recompute their box when their geometry changes.
func (n *Node) SetBoundingBox(b Box) { n.boundingBox = b }

// PointerInside reports whether the pointer was over the node last frame.
func (n *Node) PointerInside() bool { return n.pointerInside }

// InViewport reports whether the node intersected the viewport last frame.
func (n *Node) InViewport() bool { return n.inViewport }

// IsMask reports whether the node is a clip mask.
func (n *Node) IsMask() bool { return kindTable[n.Kind].isMask }

// --- Tree manipulation ---

// Add reparents each child under n. Children that are nil, n itself, or
// already direct children are skipped. A child is removed from its previous
// parent first, and OnAdd fires on it and every descendant.
// Panics if a child is an ancestor of n.
func (n *Node) Add(children ...*Node) *Node {
	for _, child := range children {
		if child == nil || child == n || child.parent == n {
			continue
		}
		if globalDebug {
			debugCheckDisposed(n, "Add (parent)")
			debugCheckDisposed(child, "Add (child)")
		}
		if isAncestor(child, n) {
			logger.Warn("add would create a cycle, skipped", "parent", n.Name, "child", child.Name)
			continue
		}
		if child.parent != nil {
			child.parent.Remove(child)
		}
		child.parent = n
		child.level = n.level + 1
		n.children = append(n.children, child)
		child.Traverse(func(d *Node) bool {
			if d != child {
				d.level = d.parent.level + 1
			}
			if d.OnAdd != nil {
				d.OnAdd(n)
			}
			d.matrixDirty = true
			return false
		})
		if globalDebug {
			debugCheckTreeDepth(child)
			debugCheckChildCount(n)
		}
	}
	return n
}

// Remove detaches each direct child from n, resets its level to zero and
// fires OnRemove on it and every descendant. Non-children are ignored.
func (n *Node) Remove(children ...*Node) *Node {
	for _, child := range children {
		if child == nil || child.parent != n {
			continue
		}
		n.removeChildByPtr(child)
		child.parent = nil
		child.level = 0
		child.Traverse(func(d *Node) bool {
			if d != child {
				d.level = d.parent.level + 1
			}
			if d.OnRemove != nil {
				d.OnRemove(n)
			}
			d.matrixDirty = true
			return false
		})
	}
	return n
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

// Clear removes every child.
func (n *Node) Clear() {
	kids := make([]*Node, len(n.children))
	copy(kids, n.children)
	n.Remove(kids...)
}

// Destroy detaches the node from its parent and releases its children,
// recursively. A destroyed node must not be reused.
func (n *Node) Destroy() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	kids := n.children
	n.children = nil
	for _, child := range kids {
		child.parent = nil
		child.dispose()
	}
	n.Masks = nil
	n.UserData = nil
	n.OnAdd = nil
	n.OnRemove = nil
	n.OnUpdate = nil
	n.DrawFunc = nil
	n.HitTest = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
	n.OnPointerOver = nil
	n.OnDoubleClick = nil
	n.OnButtonPressed = nil
	n.OnButtonDown = nil
	n.OnButtonUp = nil
	n.OnDragStart = nil
	n.OnDrag = nil
	n.OnDragEnd = nil
}

// IsDisposed returns true if this node has been destroyed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Traversal ---

// Traverse calls fn on n and then on every descendant, depth first, in child
// order. Returning true from fn stops the walk; Traverse reports whether it
// was stopped.
func (n *Node) Traverse(fn func(*Node) bool) bool {
	if fn(n) {
		return true
	}
	for _, child := range n.children {
		if child.Traverse(fn) {
			return true
		}
	}
	return false
}

// TraverseVisible is Traverse restricted to visible nodes; an invisible
// node hides its whole subtree.
func (n *Node) TraverseVisible(fn func(*Node) bool) bool {
	if !n.Visible {
		return false
	}
	if fn(n) {
		return true
	}
	for _, child := range n.children {
		if child.TraverseVisible(fn) {
			return true
		}
	}
	return false
}

// TraverseAncestors calls fn on the parent, grandparent and so on up to the
// root. Returning true from fn stops the walk.
func (n *Node) TraverseAncestors(fn func(*Node) bool) bool {
	for p := n.parent; p != nil; p = p.parent {
		if fn(p) {
			return true
		}
	}
	return false
}

// FindByName returns the first node in the subtree (n included) with the
// given name.
func (n *Node) FindByName(name string) *Node {
	return n.find(func(d *Node) bool { return d.Name == name })
}

// FindByUUID returns the node in the subtree (n included) with the given
// UUID.
func (n *Node) FindByUUID(id string) *Node {
	return n.find(func(d *Node) bool { return d.UUID == id })
}

func (n *Node) find(match func(*Node) bool) *Node {
	var found *Node
	n.Traverse(func(d *Node) bool {
		if match(d) {
			found = d
			return true
		}
		return false
	})
	return found
}

// Root returns the topmost ancestor of n (n itself when detached).
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
