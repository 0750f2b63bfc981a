package scanline

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 values on a Node simultaneously. Create one
// via the convenience constructors (TweenPosition, TweenSize, TweenAlpha)
// and either call Update(dt) each frame or register it with Scene.AddTween.
// Values are written through the node's setters, so the node is marked
// dirty only when a value actually changes.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	apply  func(v [2]float32)
	target *Node
	Done   bool
}

// Target returns the animated node.
func (g *TweenGroup) Target() *Node { return g.target }

// Update advances all tweens by dt seconds and applies the values. A group
// without a target finishes immediately.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target == nil {
		g.Done = true
		return
	}

	var vals [2]float32
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = val
		if !finished {
			allDone = false
		}
	}
	g.apply(vals)
	g.Done = allDone
}

// Reset rewinds the tweens to their start values.
func (g *TweenGroup) Reset() {
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
	}
	g.Done = false
}

// TweenPosition creates a TweenGroup that moves node to (toX, toY) over the
// given duration in seconds using the easing function.
func TweenPosition(node *Node, toX, toY int, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X()), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y()), float32(toY), duration, fn)
	g.apply = func(v [2]float32) {
		x, y := roundPx(v[0]), roundPx(v[1])
		if x != node.X() || y != node.Y() {
			node.SetPos(x, y)
		}
	}
	return g
}

// TweenSize creates a TweenGroup that resizes node to (toW, toH).
func TweenSize(node *Node, toW, toH int, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.Width()), float32(toW), duration, fn)
	g.tweens[1] = gween.New(float32(node.Height()), float32(toH), duration, fn)
	g.apply = func(v [2]float32) {
		w, h := roundPx(v[0]), roundPx(v[1])
		if w != node.Width() || h != node.Height() {
			node.SetSize(w, h)
		}
	}
	return g
}

// TweenAlpha creates a TweenGroup that fades node to the target alpha.
func TweenAlpha(node *Node, to float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(node.Alpha(), to, duration, fn)
	g.apply = func(v [2]float32) {
		node.SetAlpha(v[0])
	}
	return g
}

func roundPx(v float32) int {
	return int(math.Round(float64(v)))
}

// AddTween registers g to be advanced by Scene.Update. Finished groups are
// dropped automatically.
func (s *Scene) AddTween(g *TweenGroup) {
	if g == nil {
		return
	}
	s.tweens = append(s.tweens, g)
}

// NumTweens returns the number of running tween groups.
func (s *Scene) NumTweens() int { return len(s.tweens) }

// updateTweens advances registered tweens and compacts out finished ones.
func (s *Scene) updateTweens(dt float64) {
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(float32(dt))
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(s.tweens[len(live):])
	s.tweens = live
}
