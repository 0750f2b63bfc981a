package scanline

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// gradientSteps is the resolution of a gradient's lookup table.
const gradientSteps = 256

// GradientStop is one color stop of a LinearGradient. Pos is in [0, 1].
type GradientStop struct {
	Color Color
	Alpha float32
	Pos   float32
}

// LinearGradient fills its area with colors interpolated between stops along
// the line from (X0, Y0) to (X1, Y1). The end points are fractions of the
// drawable's size, so (0, 0)-(1, 0) runs left to right whatever the node's
// width.
//
// The gradient position is advanced incrementally per column; SkipPixel
// advances it like CalcPixel does.
type LinearGradient struct {
	NopDrawable

	X0, Y0, X1, Y1 float32

	// Lab interpolates in CIE L*a*b* instead of RGB, which avoids the muddy
	// midpoints of RGB blends between saturated colors.
	Lab bool

	stops []GradientStop
	lut   [gradientSteps]Color
	lutA  [gradientSteps]float32
	built bool
	lab   bool

	width, height int

	// Per-frame cursor.
	startX int
	t, dt  float32
}

// NewLinearGradient creates a left-to-right gradient between two opaque
// colors.
func NewLinearGradient(from, to Color) *LinearGradient {
	g := &LinearGradient{X1: 1}
	g.AddStop(from, 1, 0)
	g.AddStop(to, 1, 1)
	return g
}

// NewVerticalGradient creates a top-to-bottom gradient between two opaque
// colors.
func NewVerticalGradient(from, to Color) *LinearGradient {
	g := &LinearGradient{Y1: 1}
	g.AddStop(from, 1, 0)
	g.AddStop(to, 1, 1)
	return g
}

// AddStop inserts a stop, keeping stops sorted by position. pos and alpha
// are clamped to [0, 1].
func (g *LinearGradient) AddStop(c Color, alpha, pos float32) {
	s := GradientStop{Color: c, Alpha: AlphaClamp(alpha), Pos: AlphaClamp(pos)}
	i := len(g.stops)
	for i > 0 && g.stops[i-1].Pos > s.Pos {
		i--
	}
	g.stops = append(g.stops, GradientStop{})
	copy(g.stops[i+1:], g.stops[i:])
	g.stops[i] = s
	g.built = false
}

// ClearStops removes every stop.
func (g *LinearGradient) ClearStops() {
	g.stops = g.stops[:0]
	g.built = false
}

// Stops returns the gradient's stops in position order. The returned slice
// MUST NOT be mutated.
func (g *LinearGradient) Stops() []GradientStop { return g.stops }

// Resize sets the size the end points are relative to.
func (g *LinearGradient) Resize(w, h int) {
	g.width, g.height = w, h
}

// BeginRender rebuilds the lookup table if the stops changed and prepares
// the cursor for updateArea.
func (g *LinearGradient) BeginRender(updateArea Rect) {
	if !g.built || g.lab != g.Lab {
		g.buildLUT()
	}
	g.startX = updateArea.X
}

// BeginLine positions the cursor at the first column of line ly.
func (g *LinearGradient) BeginLine(ly int) {
	px0 := g.X0 * float32(max(g.width-1, 0))
	py0 := g.Y0 * float32(max(g.height-1, 0))
	dx := (g.X1 - g.X0) * float32(max(g.width-1, 0))
	dy := (g.Y1 - g.Y0) * float32(max(g.height-1, 0))
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		g.t, g.dt = 0, 0
		return
	}
	g.t = ((float32(g.startX)-px0)*dx + (float32(ly)-py0)*dy) / len2
	g.dt = dx / len2
}

// CalcPixel returns the color at the cursor and advances it.
func (g *LinearGradient) CalcPixel(_, _ int) (Color, float32) {
	i := g.index()
	g.t += g.dt
	return g.lut[i], g.lutA[i]
}

// CalcMaskPixel returns the alpha at the cursor and advances it.
func (g *LinearGradient) CalcMaskPixel(_, _ int) float32 {
	i := g.index()
	g.t += g.dt
	return g.lutA[i]
}

// SkipPixel advances the cursor.
func (g *LinearGradient) SkipPixel(_, _ int) {
	g.t += g.dt
}

// At returns the interpolated color and alpha at position t in [0, 1].
func (g *LinearGradient) At(t float32) (Color, float32) {
	if !g.built || g.lab != g.Lab {
		g.buildLUT()
	}
	i := lutIndex(t)
	return g.lut[i], g.lutA[i]
}

func (g *LinearGradient) index() int {
	return lutIndex(g.t)
}

func lutIndex(t float32) int {
	t = AlphaClamp(t)
	return int(t*(gradientSteps-1) + 0.5)
}

func (g *LinearGradient) buildLUT() {
	g.built = true
	g.lab = g.Lab
	if len(g.stops) == 0 {
		clear(g.lut[:])
		clear(g.lutA[:])
		return
	}
	k := 0
	for i := range gradientSteps {
		pos := float32(i) / (gradientSteps - 1)
		for k < len(g.stops)-1 && g.stops[k+1].Pos < pos {
			k++
		}
		a := g.stops[k]
		if pos <= a.Pos || k == len(g.stops)-1 {
			g.lut[i], g.lutA[i] = a.Color, a.Alpha
			continue
		}
		b := g.stops[k+1]
		f := (pos - a.Pos) / (b.Pos - a.Pos)
		g.lut[i] = g.mix(a.Color, b.Color, f)
		g.lutA[i] = a.Alpha + (b.Alpha-a.Alpha)*f
	}
}

func (g *LinearGradient) mix(a, b Color, f float32) Color {
	if !g.Lab {
		return Blend(a, b, f)
	}
	ca, _ := colorful.MakeColor(a.RGBA())
	cb, _ := colorful.MakeColor(b.RGBA())
	r, gr, bl := ca.BlendLab(cb, float64(f)).Clamped().RGB255()
	return RGB(r, gr, bl)
}
