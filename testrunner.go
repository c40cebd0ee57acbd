package salinity

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Amount float64 `json:"amount,omitempty"`
	Key    KeyCode `json:"key,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"screenshot": true, "click": true, "doubleclick": true, "press": true,
	"move": true, "release": true, "drag": true, "wheel": true,
	"keydown": true, "keyup": true, "wait": true,
}

// TestRunner sequences injected input and screenshots across frames for
// automated visual testing. Attach it with Renderer.SetTestRunner.
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON input script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if (st.Action == "keydown" || st.Action == "keyup") && st.Key == "" {
			return nil, fmt.Errorf("parse test script: step %d: %s needs a key", i, st.Action)
		}
	}
	return &TestRunner{steps: sc.Steps}, nil
}

// SetTestRunner attaches runner. It advances once per Render call, before
// input is resolved.
func (r *Renderer) SetTestRunner(runner *TestRunner) {
	r.testRunner = runner
}

// Done reports whether every step has been executed and its input consumed.
func (t *TestRunner) Done() bool {
	return t.done
}

// step advances the runner by one frame.
func (t *TestRunner) step(r *Renderer) {
	if t.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if r.Injecting() {
		return
	}
	if t.waitCount > 0 {
		t.waitCount--
		return
	}
	if t.cursor >= len(t.steps) {
		t.done = true
		return
	}

	st := t.steps[t.cursor]
	t.cursor++

	switch st.Action {
	case "screenshot":
		r.Screenshot(st.Label)
	case "click":
		r.InjectClick(st.X, st.Y)
	case "doubleclick":
		r.InjectDoubleClick(st.X, st.Y)
	case "press":
		r.InjectPress(st.X, st.Y)
	case "move":
		r.InjectMove(st.X, st.Y)
	case "release":
		r.InjectRelease(st.X, st.Y)
	case "drag":
		r.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		r.InjectWheel(st.X, st.Y, st.Amount)
	case "keydown":
		r.InjectKey(st.Key, true)
	case "keyup":
		r.InjectKey(st.Key, false)
	case "wait":
		if st.Frames > 0 {
			t.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if t.cursor >= len(t.steps) && t.waitCount == 0 && !r.Injecting() {
		t.done = true
	}
}
