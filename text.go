package scanline

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// TextAlign controls horizontal alignment of the lines of a Text.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align text to the left edge (default)
	TextAlignCenter                  // center text horizontally
	TextAlignRight                   // align text to the right edge
)

// Font is the interface for text measurement and rasterization.
type Font interface {
	// MeasureString returns the size of a single line of text.
	MeasureString(s string) (width, height int)
	// LineHeight returns the distance between baselines.
	LineHeight() int
	// DrawString rasterizes a single line with its top-left corner at
	// (x, y), writing coverage into dst.
	DrawString(dst *image.Alpha, x, y int, s string)
}

// --- Text ---

// Text draws a string in a single color. The string is rasterized into an
// alpha mask once per change and sampled per pixel.
type Text struct {
	Color Color
	Align TextAlign

	content string
	font    Font
	mask    *image.Alpha
	lines   []string
	dirty   bool

	// owner is the node drawing the text, marked dirty by SetText and
	// SetFont.
	owner *Node
}

// NewText creates a text drawable. A nil font selects DefaultFont.
func NewText(content string, f Font, c Color) *Text {
	if f == nil {
		f = DefaultFont()
	}
	return &Text{Color: c, content: content, font: f, dirty: true}
}

// Text returns the current string.
func (t *Text) Text() string { return t.content }

// SetText changes the string and marks the owning node dirty. The node is
// not resized; call Node.SetDrawable again to fit it. A Text assigned to
// Node.Drawable directly has no owner and needs Node.MarkDirty.
func (t *Text) SetText(s string) {
	if s == t.content {
		return
	}
	t.content = s
	t.invalidate()
}

// Font returns the font in use.
func (t *Text) Font() Font { return t.font }

// SetFont changes the font and marks the owning node dirty.
func (t *Text) SetFont(f Font) {
	if f == nil {
		f = DefaultFont()
	}
	t.font = f
	t.invalidate()
}

func (t *Text) invalidate() {
	t.dirty = true
	if t.owner != nil {
		t.owner.MarkDirty()
	}
}

func (t *Text) bindNode(n *Node) { t.owner = n }

func (t *Text) unbindNode(n *Node) {
	if t.owner == n {
		t.owner = nil
	}
}

// Size returns the size of the rasterized text.
func (t *Text) Size() (int, int) {
	m := t.layout()
	b := m.Bounds()
	return b.Dx(), b.Dy()
}

// layout re-rasterizes the text if it changed and returns the mask.
func (t *Text) layout() *image.Alpha {
	if !t.dirty && t.mask != nil {
		return t.mask
	}
	t.dirty = false
	t.lines = strings.Split(t.content, "\n")

	lh := t.font.LineHeight()
	widths := make([]int, len(t.lines))
	maxW := 0
	for i, line := range t.lines {
		w, _ := t.font.MeasureString(line)
		widths[i] = w
		maxW = max(maxW, w)
	}
	t.mask = image.NewAlpha(image.Rect(0, 0, maxW, lh*len(t.lines)))
	for i, line := range t.lines {
		x := 0
		switch t.Align {
		case TextAlignLeft:
		case TextAlignCenter:
			x = (maxW - widths[i]) / 2
		case TextAlignRight:
			x = maxW - widths[i]
		}
		t.font.DrawString(t.mask, x, i*lh, line)
	}
	return t.mask
}

func (t *Text) BeginRender(Rect) { t.layout() }
func (t *Text) BeginLine(int) {}
func (t *Text) SkipPixel(int, int) {}
func (t *Text) EndRender() {}

// CalcPixel returns the text color with the glyph coverage as alpha.
func (t *Text) CalcPixel(lx, ly int) (Color, float32) {
	return t.Color, t.CalcMaskPixel(lx, ly)
}

func (t *Text) CalcMaskPixel(lx, ly int) float32 {
	m := t.layout()
	if !image.Pt(lx, ly).In(m.Rect) {
		return 0
	}
	return float32(m.Pix[m.PixOffset(lx, ly)]) / 255
}

// --- FaceFont ---

// FaceFont renders text with a golang.org/x/image font.Face, such as
// basicfont.Face7x13 or an opentype face.
type FaceFont struct {
	face font.Face
}

// NewFaceFont wraps face. A nil face selects basicfont.Face7x13.
func NewFaceFont(face font.Face) *FaceFont {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &FaceFont{face: face}
}

var defaultFont *FaceFont

// DefaultFont returns a FaceFont over basicfont.Face7x13.
func DefaultFont() *FaceFont {
	if defaultFont == nil {
		defaultFont = NewFaceFont(nil)
	}
	return defaultFont
}

// Face returns the wrapped face.
func (f *FaceFont) Face() font.Face { return f.face }

func (f *FaceFont) MeasureString(s string) (int, int) {
	return font.MeasureString(f.face, s).Ceil(), f.LineHeight()
}

func (f *FaceFont) LineHeight() int {
	return f.face.Metrics().Height.Ceil()
}

func (f *FaceFont) DrawString(dst *image.Alpha, x, y int, s string) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: f.face,
		Dot:  fixed.P(x, y+f.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// --- TinyFont ---

// TinyFont renders text with a tinyfont bitmap font, the format used by
// TinyGo display drivers. Glyphs are drawn through an in-memory
// drivers.Displayer.
type TinyFont struct {
	font   tinyfont.Fonter
	ascent int
	height int
}

// NewTinyFont wraps f, for example &tinyfont.Org01.
func NewTinyFont(f tinyfont.Fonter) *TinyFont {
	tf := &TinyFont{font: f, height: int(f.GetYAdvance())}
	tf.ascent = tf.measureAscent()
	return tf
}

// measureAscent finds how far glyphs reach above the baseline by drawing a
// sample line with the baseline at the bottom of a scratch canvas.
func (f *TinyFont) measureAscent() int {
	const sample = "AQbdfhkl|"
	if f.height == 0 {
		return 0
	}
	w, _ := tinyfont.LineWidth(f.font, sample)
	scratch := image.NewAlpha(image.Rect(0, 0, int(w)+1, 2*f.height))
	base := 2*f.height - 1
	tinyfont.WriteLine(&alphaCanvas{dst: scratch}, f.font, 0, int16(base), sample, color.RGBA{A: 0xff})
	for y := 0; y < scratch.Rect.Dy(); y++ {
		row := scratch.Pix[y*scratch.Stride : y*scratch.Stride+scratch.Rect.Dx()]
		for _, a := range row {
			if a != 0 {
				return base - y
			}
		}
	}
	return f.height - 1
}

func (f *TinyFont) MeasureString(s string) (int, int) {
	_, outbox := tinyfont.LineWidth(f.font, s)
	return int(outbox), f.height
}

func (f *TinyFont) LineHeight() int { return f.height }

func (f *TinyFont) DrawString(dst *image.Alpha, x, y int, s string) {
	c := &alphaCanvas{dst: dst}
	tinyfont.WriteLine(c, f.font, int16(x), int16(y+f.ascent), s, color.RGBA{A: 0xff})
}

// alphaCanvas is a drivers.Displayer that records coverage into an
// *image.Alpha.
type alphaCanvas struct {
	dst *image.Alpha
}

var _ drivers.Displayer = (*alphaCanvas)(nil)

func (c *alphaCanvas) Size() (x, y int16) {
	b := c.dst.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (c *alphaCanvas) SetPixel(x, y int16, col color.RGBA) {
	c.dst.SetAlpha(int(x), int(y), color.Alpha{A: col.A})
}

func (c *alphaCanvas) Display() error { return nil }
