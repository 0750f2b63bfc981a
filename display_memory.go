package scanline

import (
	"image"
	"image/draw"
)

// RowTransfer records one Draw call received by a MemoryDisplay.
type RowTransfer struct {
	Y, X, X2 int
}

// MemoryDisplay is a Display backed by an in-memory frame. It is always
// ready, and can record every transfer it receives.
type MemoryDisplay struct {
	frame *image.RGBA

	// Record enables the transfer log returned by Rows.
	Record bool
	// Fail, when set, is consulted before each transfer; a non-nil result
	// is returned from Draw and the row is not written.
	Fail func(y int) error

	rows      []RowTransfer
	transfers int
}

// NewMemoryDisplay creates a w x h display filled with black.
func NewMemoryDisplay(w, h int) *MemoryDisplay {
	if w <= 0 || h <= 0 {
		panic("scanline: display size must be positive")
	}
	d := &MemoryDisplay{frame: image.NewRGBA(image.Rect(0, 0, w, h))}
	draw.Draw(d.frame, d.frame.Rect, image.Black, image.Point{}, draw.Src)
	return d
}

func (d *MemoryDisplay) Width() int  { return d.frame.Rect.Dx() }
func (d *MemoryDisplay) Height() int { return d.frame.Rect.Dy() }
func (d *MemoryDisplay) Ready() bool { return true }

// Draw writes pixels into row y starting at column x.
func (d *MemoryDisplay) Draw(y, x, x2 int, pixels []Color) error {
	if d.Fail != nil {
		if err := d.Fail(y); err != nil {
			return err
		}
	}
	d.transfers++
	if d.Record {
		d.rows = append(d.rows, RowTransfer{Y: y, X: x, X2: x2})
	}
	i := d.frame.PixOffset(x, y)
	for _, c := range pixels[:x2-x+1] {
		p := d.frame.Pix[i : i+4 : i+4]
		p[0], p[1], p[2], p[3] = c.R(), c.G(), c.B(), 0xff
		i += 4
	}
	return nil
}

// At returns the color of the pixel at (x, y).
func (d *MemoryDisplay) At(x, y int) Color {
	i := d.frame.PixOffset(x, y)
	p := d.frame.Pix[i : i+3 : i+3]
	return RGB(p[0], p[1], p[2])
}

// Transfers returns the number of rows drawn since creation or the last
// ResetStats.
func (d *MemoryDisplay) Transfers() int { return d.transfers }

// Rows returns the recorded transfers. Only populated when Record is set.
func (d *MemoryDisplay) Rows() []RowTransfer { return d.rows }

// ResetStats clears the transfer counter and log.
func (d *MemoryDisplay) ResetStats() {
	d.transfers = 0
	d.rows = d.rows[:0]
}

// Snapshot returns a copy of the frame.
func (d *MemoryDisplay) Snapshot() image.Image {
	img := image.NewRGBA(d.frame.Rect)
	copy(img.Pix, d.frame.Pix)
	return img
}

// Frame returns the live frame. It changes as rows are drawn.
func (d *MemoryDisplay) Frame() *image.RGBA { return d.frame }
