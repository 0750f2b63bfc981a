package scanline

import (
	"encoding/json"
	"fmt"
	"log"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Node   string  `json:"node,omitempty"`
	Label  string  `json:"label,omitempty"`
	X      int     `json:"x,omitempty"`
	Y      int     `json:"y,omitempty"`
	Alpha  float32 `json:"alpha,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// Actions understood by the test runner.
const (
	actionMove       = "move"       // SetPos(x, y) on node
	actionAlpha      = "alpha"      // SetAlpha(alpha) on node
	actionShow       = "show"       // SetVisible(true) on node
	actionHide       = "hide"       // SetVisible(false) on node
	actionWait       = "wait"       // skip frames
	actionRender     = "render"     // force a full redraw
	actionScreenshot = "screenshot" // queue a screenshot
)

// TestRunner sequences scene mutations and screenshots across frames for
// automated visual testing. Attach to a Scene via SetTestRunner; one step
// runs per Scene.Update.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case actionMove, actionAlpha, actionShow, actionHide:
			if st.Node == "" {
				return nil, fmt.Errorf("parse test script: step %d (%s) needs a node", i, st.Action)
			}
		case actionWait, actionRender, actionScreenshot:
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called at the start of Scene.Update each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case actionScreenshot:
		s.Screenshot(st.Label)
	case actionRender:
		s.root.MarkDirty()
	case actionWait:
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		n := s.root.FindByName(st.Node)
		if n == nil {
			log.Printf("scanline: test runner: step %d: node %q not found", r.cursor-1, st.Node)
			break
		}
		switch st.Action {
		case actionMove:
			n.SetPos(st.X, st.Y)
		case actionAlpha:
			n.SetAlpha(st.Alpha)
		case actionShow:
			n.SetVisible(true)
		case actionHide:
			n.SetVisible(false)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
