package scanline

import (
	"fmt"

	"tinygo.org/x/drivers"
)

// DisplayerDisplay adapts a TinyGo display driver (ST7735, ILI9341,
// SSD1306, ...) to the Display seam. Rows are written with SetPixel;
// Flush calls the driver's Display to push its buffer, if it has one.
type DisplayerDisplay struct {
	dev  drivers.Displayer
	w, h int
}

// NewDisplayerDisplay wraps dev. Panics if dev is nil.
func NewDisplayerDisplay(dev drivers.Displayer) *DisplayerDisplay {
	if dev == nil {
		panic("scanline: NewDisplayerDisplay requires a device")
	}
	w, h := dev.Size()
	return &DisplayerDisplay{dev: dev, w: int(w), h: int(h)}
}

func (d *DisplayerDisplay) Width() int  { return d.w }
func (d *DisplayerDisplay) Height() int { return d.h }

// Ready is always true: SetPixel is synchronous.
func (d *DisplayerDisplay) Ready() bool { return true }

func (d *DisplayerDisplay) Draw(y, x, x2 int, pixels []Color) error {
	if y < 0 || y >= d.h || x < 0 || x2 >= d.w {
		return fmt.Errorf("row %d [%d, %d] outside %dx%d display", y, x, x2, d.w, d.h)
	}
	for i, c := range pixels[:x2-x+1] {
		d.dev.SetPixel(int16(x+i), int16(y), c.RGBA())
	}
	return nil
}

// Flush pushes the driver's buffer to the panel.
func (d *DisplayerDisplay) Flush() error {
	if err := d.dev.Display(); err != nil {
		return fmt.Errorf("display flush: %w", err)
	}
	return nil
}
