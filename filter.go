package scanline

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Filter post-processes the pixels a node produces. Filters share the
// lifecycle hooks of Drawable so that stateful filters see the same line and
// column sequence as the node they are attached to. For columns where the
// node's combined alpha is zero, SkipPixel is called instead of FilterPixel.
type Filter interface {
	BeginRender(updateArea Rect)
	BeginLine(ly int)
	// FilterPixel returns the filtered color and alpha for local (lx, ly).
	FilterPixel(lx, ly int, c Color, a float32) (Color, float32)
	SkipPixel(lx, ly int)
	EndRender()
}

// NopFilter implements the Filter lifecycle hooks as no-ops and passes pixels
// through unchanged. Embed it in stateless filters.
type NopFilter struct{}

func (NopFilter) BeginRender(Rect) {}
func (NopFilter) BeginLine(int) {}
func (NopFilter) SkipPixel(int, int) {}
func (NopFilter) EndRender() {}

func (NopFilter) FilterPixel(_, _ int, c Color, a float32) (Color, float32) {
	return c, a
}

// --- TintFilter ---

// TintFilter blends every pixel towards Color by Amount (0-1).
type TintFilter struct {
	NopFilter
	Color  Color
	Amount float32
}

// NewTintFilter creates a tint filter. amount is clamped to [0, 1].
func NewTintFilter(c Color, amount float32) *TintFilter {
	return &TintFilter{Color: c, Amount: AlphaClamp(amount)}
}

func (f *TintFilter) FilterPixel(_, _ int, c Color, a float32) (Color, float32) {
	return Tint(c, f.Color, f.Amount), a
}

// --- ShadeFilter ---

// ShadeFilter darkens (negative Amount) or lightens (positive Amount) pixels.
// Amount is in [-1, 1].
type ShadeFilter struct {
	NopFilter
	Amount float32
}

// NewShadeFilter creates a shade filter. amount is clamped to [-1, 1].
func NewShadeFilter(amount float32) *ShadeFilter {
	return &ShadeFilter{Amount: max(-1, min(1, amount))}
}

func (f *ShadeFilter) FilterPixel(_, _ int, c Color, a float32) (Color, float32) {
	if f.Amount < 0 {
		return Darken(c, -f.Amount), a
	}
	return Lighten(c, f.Amount), a
}

// --- ColorMaskFilter ---

// ColorMaskFilter makes pixels of exactly Color fully transparent (a
// chroma key).
type ColorMaskFilter struct {
	NopFilter
	Color Color
}

// NewColorMaskFilter creates a color mask filter.
func NewColorMaskFilter(c Color) *ColorMaskFilter {
	return &ColorMaskFilter{Color: c & 0xffffff}
}

func (f *ColorMaskFilter) FilterPixel(_, _ int, c Color, a float32) (Color, float32) {
	if c&0xffffff == f.Color {
		return c, 0
	}
	return c, a
}

// --- FuzzyColorMaskFilter ---

// FuzzyColorMaskFilter makes pixels transparent when every channel is within
// Threshold (0-1, as a fraction of 255) of Color.
type FuzzyColorMaskFilter struct {
	NopFilter
	Color     Color
	Threshold float32
}

// NewFuzzyColorMaskFilter creates a fuzzy color mask filter.
func NewFuzzyColorMaskFilter(c Color, threshold float32) *FuzzyColorMaskFilter {
	return &FuzzyColorMaskFilter{Color: c, Threshold: AlphaClamp(threshold)}
}

func (f *FuzzyColorMaskFilter) FilterPixel(_, _ int, c Color, a float32) (Color, float32) {
	if channelDiff(c.R(), f.Color.R()) <= f.Threshold &&
		channelDiff(c.G(), f.Color.G()) <= f.Threshold &&
		channelDiff(c.B(), f.Color.B()) <= f.Threshold {
		return c, 0
	}
	return c, a
}

func channelDiff(a, b uint8) float32 {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return float32(d) / 255
}

// --- HSVFilter ---

// HSVFilter shifts hue (degrees), saturation and value (both fractions) of
// every pixel. Saturation and value are clamped after shifting; hue wraps.
type HSVFilter struct {
	NopFilter
	H, S, V float64
}

// NewHSVFilter creates an HSV shift filter.
func NewHSVFilter(h, s, v float64) *HSVFilter {
	return &HSVFilter{H: h, S: s, V: v}
}

func (f *HSVFilter) FilterPixel(_, _ int, c Color, a float32) (Color, float32) {
	src := colorful.Color{
		R: float64(c.R()) / 255,
		G: float64(c.G()) / 255,
		B: float64(c.B()) / 255,
	}
	h, s, v := src.Hsv()
	h = math.Mod(h+f.H, 360)
	if h < 0 {
		h += 360
	}
	s = math.Max(0, math.Min(1, s+f.S))
	v = math.Max(0, math.Min(1, v+f.V))
	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return RGB(r, g, b), a
}
