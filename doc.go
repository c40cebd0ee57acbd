// Package salinity is an interactive 2D scene graph: shapes, text and masks
// arranged in a transform hierarchy, drawn through a pan/zoom/rotate camera,
// and manipulated with the pointer.
//
// The core package has no window or GPU dependency. It draws through the
// [Surface] interface and reads input from [InputEvent]s fed by a host.
// Two backends ship with it: salinity/ebitenhost runs a window on
// [Ebitengine], and salinity/ggsurface renders headless through [gg].
//
// # Quick start
//
//	scene := salinity.NewGroup("scene")
//	box := salinity.NewBoxNode("box")
//	box.Draggable = true
//	scene.Add(box)
//
//	cam := salinity.NewCamera()
//	r := salinity.NewRenderer(surface, salinity.DefaultConfig())
//	r.AddController(salinity.NewCameraControls(cam))
//	r.AddController(salinity.NewSelectControls())
//
//	// once per frame, after feeding the host's input events:
//	r.Render(scene, cam, dt)
//
// # Scene graph
//
// Every element is a [Node]. Its [NodeKind] picks the shape: group, box,
// circle, line, text or box mask. Nodes carry a local position, scale,
// rotation and origin, composed into a local matrix and multiplied down the
// tree into a global matrix. Children inherit their parent's transform and
// opacity. [Node.Attach] reparents a node without moving it on screen.
//
// Scenes can also be described in TOML and built with [LoadScene].
//
// # Frames
//
// [Renderer.Render] runs one frame: it resolves input edges, refreshes the
// camera, runs controllers, orders the visible nodes by layer and depth,
// dispatches pointer events to the topmost node under the pointer, updates
// every node and draws the visible set back to front. A single drag slot
// tracks the node being dragged; while it is held the pointer is locked so
// other controls ignore the press.
//
// # Controllers
//
// [CameraControls] pans, zooms toward the pointer, rotates and focuses on
// double click. [SelectControls] handles click, shift and ctrl selection
// and surrounds the selection with a [ResizeTool] gizmo. [Animator] drives
// [TweenGroup]s built on [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gg]: https://github.com/gogpu/gg
// [gween]: https://github.com/tanema/gween
package salinity
