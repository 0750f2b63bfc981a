package scanline

import (
	"fmt"
	"image"
)

// Rect is an axis-aligned integer rectangle. It keeps two redundant
// representations in sync: the corners (X, Y)-(X2, Y2), both inclusive, and
// the size (Width, Height). A rect with zero width or height is empty.
//
// The fields are exported for reading. Use the setters to modify a rect so the
// two representations never diverge.
type Rect struct {
	X, Y          int
	X2, Y2        int
	Width, Height int
}

// NewRect returns a rect with the given top-left corner and size.
func NewRect(x, y, w, h int) Rect {
	var r Rect
	r.SetPosAndSize(x, y, w, h)
	return r
}

// EmptyRect returns a cleared rect.
func EmptyRect() Rect {
	var r Rect
	r.Clear()
	return r
}

// Clear resets the rect to empty at the origin.
func (r *Rect) Clear() {
	r.X, r.Y = 0, 0
	r.X2, r.Y2 = -1, -1
	r.Width, r.Height = 0, 0
}

// Set copies other into r.
func (r *Rect) Set(other Rect) {
	*r = other
}

// SetCorners sets the top-left and bottom-right corners. Swapped corners are
// normalized so that (X, Y) is always the top-left.
func (r *Rect) SetCorners(x, y, x2, y2 int) {
	if x2 < x {
		x, x2 = x2, x
	}
	if y2 < y {
		y, y2 = y2, y
	}
	r.X, r.Y = x, y
	r.X2, r.Y2 = x2, y2
	r.Width = x2 - x + 1
	r.Height = y2 - y + 1
}

// SetWidth sets the width and adjusts X2. A negative width moves X left by
// that amount and uses its magnitude.
func (r *Rect) SetWidth(w int) {
	if w < 0 {
		r.X += w
		w = -w
	}
	r.Width = w
	r.X2 = r.X + w - 1
}

// SetHeight sets the height and adjusts Y2. A negative height moves Y up by
// that amount and uses its magnitude.
func (r *Rect) SetHeight(h int) {
	if h < 0 {
		r.Y += h
		h = -h
	}
	r.Height = h
	r.Y2 = r.Y + h - 1
}

// SetSize sets width and height.
func (r *Rect) SetSize(w, h int) {
	r.SetWidth(w)
	r.SetHeight(h)
}

// SetPos moves the top-left corner, keeping the size.
func (r *Rect) SetPos(x, y int) {
	r.X, r.Y = x, y
	r.X2 = x + r.Width - 1
	r.Y2 = y + r.Height - 1
}

// SetPos2 moves the bottom-right corner, keeping the top-left. A corner above
// or left of the top-left collapses the rect to empty.
func (r *Rect) SetPos2(x2, y2 int) {
	if x2 < r.X {
		x2 = r.X - 1
	}
	if y2 < r.Y {
		y2 = r.Y - 1
	}
	r.X2, r.Y2 = x2, y2
	r.Width = x2 - r.X + 1
	r.Height = y2 - r.Y + 1
}

// SetPosAndSize sets the top-left corner and the size together.
func (r *Rect) SetPosAndSize(x, y, w, h int) {
	if w < 0 {
		x += w
		w = -w
	}
	if h < 0 {
		y += h
		h = -h
	}
	r.X, r.Y = x, y
	r.Width, r.Height = w, h
	r.X2 = x + w - 1
	r.Y2 = y + h - 1
}

// Translate moves the rect by (dx, dy).
func (r *Rect) Translate(dx, dy int) {
	r.X += dx
	r.Y += dy
	r.X2 += dx
	r.Y2 += dy
}

// IsEmpty reports whether the rect has zero width or height.
func (r Rect) IsEmpty() bool {
	return r.Width == 0 || r.Height == 0
}

// Contains reports whether the point lies inside the rect. Edges are inside.
func (r Rect) Contains(x, y int) bool {
	if r.IsEmpty() {
		return false
	}
	return x >= r.X && x <= r.X2 && y >= r.Y && y <= r.Y2
}

// ContainsX reports whether column x lies within the horizontal span.
func (r Rect) ContainsX(x int) bool {
	if r.IsEmpty() {
		return false
	}
	return x >= r.X && x <= r.X2
}

// ContainsY reports whether row y lies within the vertical span.
func (r Rect) ContainsY(y int) bool {
	if r.IsEmpty() {
		return false
	}
	return y >= r.Y && y <= r.Y2
}

// Overlaps reports whether any pixel of other is also in r.
func (r Rect) Overlaps(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return other.X2 >= r.X && other.X <= r.X2 &&
		other.Y2 >= r.Y && other.Y <= r.Y2
}

// Clip intersects r with other. A disjoint result collapses to zero width
// and/or height instead of a negative span.
func (r *Rect) Clip(other Rect) {
	if other.IsEmpty() {
		r.SetPos2(r.X-1, r.Y-1)
		return
	}
	if r.X < other.X {
		r.X = other.X
	}
	if r.X2 > other.X2 {
		r.X2 = other.X2
	}
	if r.Y < other.Y {
		r.Y = other.Y
	}
	if r.Y2 > other.Y2 {
		r.Y2 = other.Y2
	}
	r.normalizeSpan()
}

// ClipPosAndSize intersects r with the area at (x, y) of size (w, h).
func (r *Rect) ClipPosAndSize(x, y, w, h int) {
	r.Clip(NewRect(x, y, w, h))
}

// Grow expands r to the union of r and other. Growing an empty rect copies
// other; growing by an empty rect leaves r unchanged.
func (r *Rect) Grow(other Rect) {
	if other.IsEmpty() {
		return
	}
	if r.IsEmpty() {
		*r = other
		return
	}
	if r.X > other.X {
		r.X = other.X
	}
	if r.X2 < other.X2 {
		r.X2 = other.X2
	}
	if r.Y > other.Y {
		r.Y = other.Y
	}
	if r.Y2 < other.Y2 {
		r.Y2 = other.Y2
	}
	r.Width = r.X2 - r.X + 1
	r.Height = r.Y2 - r.Y + 1
}

// GrowPosAndSize expands r to include the area at (x, y) of size (w, h).
func (r *Rect) GrowPosAndSize(x, y, w, h int) {
	r.Grow(NewRect(x, y, w, h))
}

// Equals reports whether both rects cover the same pixels. All empty rects
// are equal.
func (r Rect) Equals(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return r.IsEmpty() && other.IsEmpty()
	}
	return r.X == other.X && r.Y == other.Y && r.X2 == other.X2 && r.Y2 == other.Y2
}

// Image converts r to an image.Rectangle (exclusive max corner).
func (r Rect) Image() image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	return image.Rect(r.X, r.Y, r.X2+1, r.Y2+1)
}

// RectFromImage converts an image.Rectangle to a Rect.
func RectFromImage(ir image.Rectangle) Rect {
	return NewRect(ir.Min.X, ir.Min.Y, ir.Dx(), ir.Dy())
}

func (r Rect) String() string {
	if r.IsEmpty() {
		return "Rect(empty)"
	}
	return fmt.Sprintf("Rect(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// normalizeSpan re-derives Width and Height from the corners, collapsing an
// inverted span to zero.
func (r *Rect) normalizeSpan() {
	if r.X > r.X2 {
		r.X2 = r.X - 1
	}
	if r.Y > r.Y2 {
		r.Y2 = r.Y - 1
	}
	r.Width = r.X2 - r.X + 1
	r.Height = r.Y2 - r.Y + 1
}
