package scanline

import "runtime"

// lineRow is one of the two rows of a LineBuffer.
type lineRow struct {
	pixels []Color
	y      int
	x, x2  int
}

// LineBuffer is a two-row double buffer between the compositor and a
// Display. The compositor writes the front row while the back row is being
// transferred; Flip swaps them.
type LineBuffer struct {
	display Display
	rows    [2]lineRow
	front   int
	back    int

	rect   Rect // the whole display
	region Rect // the writable part of the display

	err       error
	transfers int
}

// NewLineBuffer creates a line buffer sized to display. Panics if display is
// nil.
func NewLineBuffer(display Display) *LineBuffer {
	if display == nil {
		panic("scanline: NewLineBuffer requires a display")
	}
	w, h := display.Width(), display.Height()
	b := &LineBuffer{display: display, back: 1}
	b.rect = NewRect(0, 0, w, h)
	b.region = b.rect
	b.rows[0].pixels = make([]Color, w)
	b.rows[1].pixels = make([]Color, w)
	b.ResetRegion()
	return b
}

// Display returns the display the buffer transfers to.
func (b *LineBuffer) Display() Display { return b.display }

// Rect returns the display rectangle, positioned at (0, 0).
func (b *LineBuffer) Rect() Rect { return b.rect }

// Region returns the rectangle currently being written.
func (b *LineBuffer) Region() Rect { return b.region }

// Y returns the display row the front row will be transferred to.
func (b *LineBuffer) Y() int { return b.rows[b.front].y }

// SetRegion restricts writing to r, clipped to the display, and moves the
// front row to the top of the region. It also starts a new error frame.
func (b *LineBuffer) SetRegion(r Rect) {
	b.region = r
	b.region.Clip(b.rect)
	b.err = nil
	b.ResetRegion()
}

// ResetRegion moves the front row back to the top of the current region.
func (b *LineBuffer) ResetRegion() {
	row := &b.rows[b.front]
	row.y = b.region.Y
	row.x = b.region.X
	row.x2 = b.region.X2
}

// Pixel sets column x of the front row to c.
func (b *LineBuffer) Pixel(c Color, x int) {
	b.rows[b.front].pixels[x] = c
}

// PixelAt returns column x of the front row.
func (b *LineBuffer) PixelAt(x int) Color {
	return b.rows[b.front].pixels[x]
}

// Blend mixes c into column x of the front row with alpha a.
func (b *LineBuffer) Blend(c Color, a float32, x int) {
	px := &b.rows[b.front].pixels[x]
	*px = Blend(*px, c, a)
}

// Clear fills the region's span of the front row with c.
func (b *LineBuffer) Clear(c Color) {
	row := &b.rows[b.front]
	if row.x2 < row.x {
		return
	}
	span := row.pixels[row.x : row.x2+1]
	for i := range span {
		span[i] = c
	}
}

// Flip swaps the rows, advances the new front row to the next line of the
// region (wrapping to the top), waits until the display is ready and
// transfers the back row. The transfer error, if any, is returned and also
// kept for Err.
func (b *LineBuffer) Flip() error {
	b.back = b.front
	b.front ^= 1
	back := &b.rows[b.back]
	front := &b.rows[b.front]

	front.y = back.y + 1
	if front.y > b.region.Y2 {
		front.y = b.region.Y
	}
	front.x = back.x
	front.x2 = back.x2

	b.wait()
	if back.x2 < back.x {
		return nil
	}
	b.transfers++
	err := b.display.Draw(back.y, back.x, back.x2, back.pixels[back.x:back.x2+1])
	if err != nil && b.err == nil {
		b.err = err
	}
	return err
}

// Sync blocks until the display has finished the last transfer.
func (b *LineBuffer) Sync() {
	b.wait()
}

// Flush waits for the last transfer and, if the display buffers rows,
// pushes them to the panel. A flush error is kept for Err like a transfer
// error.
func (b *LineBuffer) Flush() error {
	b.wait()
	f, ok := b.display.(Flusher)
	if !ok {
		return nil
	}
	err := f.Flush()
	if err != nil && b.err == nil {
		b.err = err
	}
	return err
}

// Err returns the first transfer error since the last SetRegion.
func (b *LineBuffer) Err() error { return b.err }

// Transfers returns the number of rows handed to the display so far.
func (b *LineBuffer) Transfers() int { return b.transfers }

// wait yields to other goroutines until the display reports ready.
func (b *LineBuffer) wait() {
	for !b.display.Ready() {
		runtime.Gosched()
	}
}
