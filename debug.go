package salinity

import (
	"fmt"
	"time"
)

// Stats holds per-frame counts and stage timings. Timings are only measured
// in debug mode.
type Stats struct {
	Nodes    int // nodes in the scene tree
	Visible  int // nodes collected by the visible traversal
	Culled   int // visible nodes outside the viewport
	Drawn    int // nodes that issued draw calls
	Frame    uint64
	Traverse time.Duration
	Sort     time.Duration
	Dispatch time.Duration
	Update   time.Duration
	Draw     time.Duration
}

// Total returns the sum of the stage timings.
func (s Stats) Total() time.Duration {
	return s.Traverse + s.Sort + s.Dispatch + s.Update + s.Draw
}

// globalDebug mirrors the most recently set Renderer debug flag so that node
// tree operations can run their checks without a renderer reference.
var globalDebug bool

// debugLog writes the frame's stats at debug level.
func (r *Renderer) debugLog() {
	if !r.debug {
		return
	}
	s := r.stats
	logger.Debug("frame",
		"n", s.Frame,
		"traverse", s.Traverse,
		"sort", s.Sort,
		"dispatch", s.Dispatch,
		"update", s.Update,
		"draw", s.Draw,
		"total", s.Total(),
	)
	logger.Debug("nodes", "n", s.Frame, "total", s.Nodes, "visible", s.Visible, "culled", s.Culled, "drawn", s.Drawn)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("salinity debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds threshold", "depth", depth, "max", debugMaxTreeDepth, "node", n.Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logger.Warn("child count exceeds threshold", "node", n.Name, "children", len(n.children), "max", debugMaxChildCount)
	}
}
