package scanline

// Border is one side of a Box outline.
type Border struct {
	Size  int
	Color Color
	Alpha float32
}

// Borders holds the four sides of a Box outline.
type Borders struct {
	Left, Top, Right, Bottom Border
}

// UniformBorders returns borders with the same size, color and alpha on
// every side.
func UniformBorders(size int, c Color, alpha float32) Borders {
	b := Border{Size: size, Color: c, Alpha: AlphaClamp(alpha)}
	return Borders{Left: b, Top: b, Right: b, Bottom: b}
}

// Box fills its node with a solid color or a gradient, with an optional
// border on each side.
type Box struct {
	Color    Color
	Alpha    float32
	Gradient *LinearGradient
	Borders  Borders

	width, height int
}

// NewBox creates an opaque box of color c.
func NewBox(c Color) *Box {
	return &Box{Color: c, Alpha: 1}
}

// NewGradientBox creates a box filled with g.
func NewGradientBox(g *LinearGradient) *Box {
	return &Box{Alpha: 1, Gradient: g}
}

// Resize records the node size, which the borders are measured against.
func (b *Box) Resize(w, h int) {
	b.width, b.height = w, h
	if b.Gradient != nil {
		b.Gradient.Resize(w, h)
	}
}

func (b *Box) BeginRender(updateArea Rect) {
	if b.Gradient != nil {
		b.Gradient.BeginRender(updateArea)
	}
}

func (b *Box) BeginLine(ly int) {
	if b.Gradient != nil {
		b.Gradient.BeginLine(ly)
	}
}

// CalcPixel returns the border color on the outline and the fill elsewhere.
// The gradient cursor advances on border pixels too.
func (b *Box) CalcPixel(lx, ly int) (Color, float32) {
	if br, ok := b.border(lx, ly); ok {
		if b.Gradient != nil {
			b.Gradient.SkipPixel(lx, ly)
		}
		return br.Color, br.Alpha
	}
	if b.Gradient != nil {
		c, a := b.Gradient.CalcPixel(lx, ly)
		return c, a * b.Alpha
	}
	return b.Color, b.Alpha
}

func (b *Box) CalcMaskPixel(lx, ly int) float32 {
	_, a := b.CalcPixel(lx, ly)
	return a
}

func (b *Box) SkipPixel(lx, ly int) {
	if b.Gradient != nil {
		b.Gradient.SkipPixel(lx, ly)
	}
}

func (b *Box) EndRender() {
	if b.Gradient != nil {
		b.Gradient.EndRender()
	}
}

// border returns the side covering (lx, ly). Top and bottom take precedence
// over left and right at the corners.
func (b *Box) border(lx, ly int) (Border, bool) {
	switch {
	case b.Borders.Top.Size > 0 && ly < b.Borders.Top.Size:
		return b.Borders.Top, true
	case b.Borders.Bottom.Size > 0 && ly >= b.height-b.Borders.Bottom.Size:
		return b.Borders.Bottom, true
	case b.Borders.Left.Size > 0 && lx < b.Borders.Left.Size:
		return b.Borders.Left, true
	case b.Borders.Right.Size > 0 && lx >= b.width-b.Borders.Right.Size:
		return b.Borders.Right, true
	}
	return Border{}, false
}
