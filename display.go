package scanline

import "image"

// Display is the seam between the compositor and the hardware. A LineBuffer
// hands it one row at a time.
//
// Draw transfers pixels to row y, columns x through x2 inclusive; pixels[0]
// is the color at column x. The display may keep reading pixels after Draw
// returns (a DMA transfer, say) until it next reports Ready: the line buffer
// does not write to that row again before then.
type Display interface {
	Width() int
	Height() int
	Ready() bool
	Draw(y, x, x2 int, pixels []Color) error
}

// Snapshotter is implemented by displays that can return the current frame
// contents, such as MemoryDisplay. Scene screenshots require it.
type Snapshotter interface {
	Snapshot() image.Image
}
