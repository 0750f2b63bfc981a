package scanline

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPosition(t *testing.T) {
	n := NewNode("n", nil)
	n.SetPos(0, 0)
	g := TweenPosition(n, 10, 20, 1, ease.Linear)
	if g.Target() != n {
		t.Error("Target should be n")
	}

	g.Update(0.5)
	if n.X() != 5 || n.Y() != 10 {
		t.Errorf("halfway = (%d, %d), want (5, 10)", n.X(), n.Y())
	}
	if g.Done {
		t.Error("Done too early")
	}
	g.Update(0.5)
	if n.X() != 10 || n.Y() != 20 {
		t.Errorf("end = (%d, %d), want (10, 20)", n.X(), n.Y())
	}
	if !g.Done {
		t.Error("Done should be true at the end")
	}
}

func TestTweenOnlyDirtiesOnChange(t *testing.T) {
	n := NewNode("n", nil)
	g := TweenPosition(n, 1, 0, 10, ease.Linear)
	n.dirty = false
	g.Update(0.1) // 0.01 px, rounds to 0
	if n.IsDirty() {
		t.Error("sub-pixel progress should not mark the node dirty")
	}
}

func TestTweenSize(t *testing.T) {
	n := NewNode("n", nil)
	n.SetSize(10, 10)
	g := TweenSize(n, 20, 4, 1, ease.Linear)
	g.Update(1)
	if n.Width() != 20 || n.Height() != 4 {
		t.Errorf("size = %dx%d, want 20x4", n.Width(), n.Height())
	}
}

func TestTweenAlpha(t *testing.T) {
	n := NewNode("n", nil)
	g := TweenAlpha(n, 0, 1, ease.Linear)
	g.Update(0.25)
	if a := n.Alpha(); a < 0.74 || a > 0.76 {
		t.Errorf("Alpha = %v, want 0.75", a)
	}
	g.Update(1)
	if n.Alpha() != 0 {
		t.Errorf("Alpha = %v, want 0", n.Alpha())
	}
}

func TestTweenReset(t *testing.T) {
	n := NewNode("n", nil)
	g := TweenPosition(n, 8, 0, 1, ease.Linear)
	g.Update(1)
	g.Reset()
	if g.Done {
		t.Error("Done should be false after Reset")
	}
	g.Update(0)
	if n.X() != 0 {
		t.Errorf("X after Reset = %d, want 0", n.X())
	}
}

func TestTweenNilTarget(t *testing.T) {
	g := &TweenGroup{}
	g.Update(0.1)
	if !g.Done {
		t.Error("group without target should finish")
	}
}

func TestSceneTweensRunAndDrop(t *testing.T) {
	s := NewScene()
	n := s.NewNode("n", NewBox(ColorRed))
	s.Root().AddChild(n)
	s.AddTween(TweenPosition(n, 4, 0, 0.5, ease.Linear))
	s.AddTween(TweenAlpha(n, 0.5, 1, ease.Linear))
	s.AddTween(nil)
	if s.NumTweens() != 2 {
		t.Fatalf("NumTweens = %d, want 2", s.NumTweens())
	}

	s.Update(0.5)
	if n.X() != 4 {
		t.Errorf("X = %d, want 4", n.X())
	}
	if s.NumTweens() != 1 {
		t.Errorf("NumTweens = %d, want 1 after the move finished", s.NumTweens())
	}
	s.Update(0.5)
	if s.NumTweens() != 0 {
		t.Errorf("NumTweens = %d, want 0", s.NumTweens())
	}
}

func TestTweenDrivesRender(t *testing.T) {
	s, disp, buf := newTestScene(8, 1)
	n := addBox(s, s.Root(), "box", ColorRed, 0, 0, 1, 1)
	mustRender(t, s, buf)
	s.AddTween(TweenPosition(n, 7, 0, 1, ease.Linear))
	for range 10 {
		s.Update(0.1)
		mustRender(t, s, buf)
	}
	assertPixel(t, disp, 7, 0, ColorRed)
	assertPixel(t, disp, 0, 0, ColorBlack)
	assertPixel(t, disp, 3, 0, ColorBlack)
}
