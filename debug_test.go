package salinity

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// ---- Debug mode tests ------------------------------------------------------

func TestDebugMode_DisposedNodePanics(t *testing.T) {
	g := newTestRig()
	g.r.SetDebug(true)
	defer g.r.SetDebug(false)

	parent := NewGroup("parent")
	g.scene.Add(parent)
	child := NewBoxNode("child")
	child.Destroy()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on Add with disposed node, got none")
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, "disposed") {
			t.Errorf("panic message should mention 'disposed', got: %s", msg)
		}
	}()
	parent.Add(child)
}

func TestDebugMode_DisposedParentPanics(t *testing.T) {
	g := newTestRig()
	g.r.SetDebug(true)
	defer g.r.SetDebug(false)

	parent := NewGroup("parent")
	parent.Destroy()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on Add to disposed parent, got none")
		}
	}()
	parent.Add(NewBoxNode("child"))
}

func TestDebugMode_OffAllowsDisposed(t *testing.T) {
	parent := NewGroup("parent")
	child := NewBoxNode("child")
	child.Destroy()

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic with debug off: %v", r)
		}
	}()
	parent.Add(child)
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	defer SetLogger(nil)

	g := newTestRig()
	g.r.SetDebug(true)
	defer g.r.SetDebug(false)

	n := g.scene
	for i := 0; i < debugMaxTreeDepth+1; i++ {
		c := NewGroup("deep")
		n.Add(c)
		n = c
	}
	if !strings.Contains(buf.String(), "tree depth exceeds threshold") {
		t.Errorf("expected depth warning, got: %s", buf.String())
	}
}

func TestDebugMode_FrameLog(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	defer SetLogger(nil)

	g := newTestRig()
	cfg := DefaultConfig()
	cfg.Debug = true
	g.r.SetConfig(cfg)
	defer g.r.SetDebug(false)
	g.scene.Add(solidBox("a", "#ff0000"))
	g.frame()

	out := buf.String()
	if !strings.Contains(out, "frame") || !strings.Contains(out, "drawn=1") {
		t.Errorf("frame log missing stats: %s", out)
	}
}

func TestStatsTotal(t *testing.T) {
	s := Stats{
		Traverse: time.Millisecond,
		Sort:     2 * time.Millisecond,
		Dispatch: 3 * time.Millisecond,
		Update:   4 * time.Millisecond,
		Draw:     5 * time.Millisecond,
	}
	if got := s.Total(); got != 15*time.Millisecond {
		t.Errorf("Total = %v, want 15ms", got)
	}
}
