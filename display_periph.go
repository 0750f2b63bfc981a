package scanline

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/display"
)

// DrawerDisplay adapts a periph.io display.Drawer (SSD1306, SSD1322, ...)
// to the Display seam. Each row is drawn as a one-pixel-high image.
type DrawerDisplay struct {
	dev    display.Drawer
	bounds image.Rectangle
	row    *image.RGBA
}

// NewDrawerDisplay wraps dev. Panics if dev is nil.
func NewDrawerDisplay(dev display.Drawer) *DrawerDisplay {
	if dev == nil {
		panic("scanline: NewDrawerDisplay requires a device")
	}
	b := dev.Bounds()
	return &DrawerDisplay{
		dev:    dev,
		bounds: b,
		row:    image.NewRGBA(image.Rect(0, 0, b.Dx(), 1)),
	}
}

func (d *DrawerDisplay) Width() int  { return d.bounds.Dx() }
func (d *DrawerDisplay) Height() int { return d.bounds.Dy() }

// Ready is always true: Drawer.Draw is synchronous.
func (d *DrawerDisplay) Ready() bool { return true }

func (d *DrawerDisplay) Draw(y, x, x2 int, pixels []Color) error {
	i := d.row.PixOffset(x, 0)
	for _, c := range pixels[:x2-x+1] {
		p := d.row.Pix[i : i+4 : i+4]
		p[0], p[1], p[2], p[3] = c.R(), c.G(), c.B(), 0xff
		i += 4
	}
	o := d.bounds.Min
	dst := image.Rect(o.X+x, o.Y+y, o.X+x2+1, o.Y+y+1)
	if err := d.dev.Draw(dst, d.row, image.Pt(x, 0)); err != nil {
		return fmt.Errorf("%s: draw row %d: %w", d.dev, y, err)
	}
	return nil
}

// Halt stops the device.
func (d *DrawerDisplay) Halt() error {
	return d.dev.Halt()
}
