package scanline

import (
	"os"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "move", "node": "box", "x": 10, "y": 20},
			{"action": "wait", "frames": 3},
			{"action": "screenshot", "label": "after-move"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Node != "box" || runner.steps[1].X != 10 || runner.steps[1].Y != 20 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	tests := []struct {
		name, data string
	}{
		{"not json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "click"}]}`},
		{"move without node", `{"steps": [{"action": "move", "x": 1}]}`},
		{"hide without node", `{"steps": [{"action": "hide"}]}`},
	}
	for _, tt := range tests {
		if _, err := LoadTestScript([]byte(tt.data)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestRunnerStep_Mutations(t *testing.T) {
	s := NewScene()
	box := s.NewNode("box", NewBox(ColorRed))
	s.Root().AddChild(box)

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "move", "node": "box", "x": 5, "y": 6},
		{"action": "alpha", "node": "box", "alpha": 0.5},
		{"action": "hide", "node": "box"},
		{"action": "show", "node": "box"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	s.Update(0)
	if box.X() != 5 || box.Y() != 6 {
		t.Errorf("pos = (%d, %d), want (5, 6)", box.X(), box.Y())
	}
	s.Update(0)
	if box.Alpha() != 0.5 {
		t.Errorf("Alpha = %v, want 0.5", box.Alpha())
	}
	s.Update(0)
	if box.Visible() {
		t.Error("box should be hidden")
	}
	s.Update(0)
	if !box.Visible() {
		t.Error("box should be visible")
	}
	if !runner.Done() {
		t.Error("runner should be done after the last step")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewScene()
	box := s.NewNode("box", nil)
	s.Root().AddChild(box)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "move", "node": "box", "x": 1}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	for i := range 3 {
		s.Update(0)
		if box.X() != 0 {
			t.Fatalf("moved during wait frame %d", i)
		}
	}
	s.Update(0)
	if box.X() != 1 {
		t.Errorf("X = %d, want 1 after the wait", box.X())
	}
}

func TestRunnerStep_MissingNode(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "hide", "node": "ghost"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	s.Update(0) // logs, must not panic
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerScreenshotAndRender(t *testing.T) {
	s, disp, buf := newTestScene(4, 4)
	s.ScreenshotDir = t.TempDir()
	addBox(s, s.Root(), "box", ColorRed, 0, 0, 2, 2)
	mustRender(t, s, buf)

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "render"},
		{"action": "screenshot", "label": "full"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	disp.ResetStats()
	s.Update(0)
	mustRender(t, s, buf)
	if disp.Transfers() != 4 {
		t.Errorf("Transfers = %d, want 4 after a forced redraw", disp.Transfers())
	}

	s.Update(0)
	mustRender(t, s, buf)
	entries, err := os.ReadDir(s.ScreenshotDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("screenshots = %d, want 1", len(entries))
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}
