// Package ebitensim runs a scanline scene in a desktop window using
// Ebitengine. The window stands in for the microcontroller's panel: rows are
// written into it through the same Display seam a hardware driver uses, so
// partial updates and transfer counts behave as they would on the device.
package ebitensim

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/scanline"
)

// RunConfig configures Run. The zero value opens a 320x240 window at 2x
// scale and 60 TPS.
type RunConfig struct {
	Title  string
	Width  int // panel width in pixels
	Height int // panel height in pixels
	Scale  int // window pixels per panel pixel

	// ShowStats overlays the last frame's line and transfer counts.
	ShowStats bool
	// TPS is the number of scene updates and renders per second.
	TPS int

	// Update, if set, is called before the scene is updated each tick.
	// Returning an error stops the loop; ErrQuit stops it cleanly.
	Update func(dt float64) error
}

// ErrQuit can be returned from RunConfig.Update to close the window without
// an error.
var ErrQuit = errors.New("ebitensim: quit")

func (c *RunConfig) applyDefaults() {
	if c.Title == "" {
		c.Title = "scanline"
	}
	if c.Width <= 0 {
		c.Width = 320
	}
	if c.Height <= 0 {
		c.Height = 240
	}
	if c.Scale <= 0 {
		c.Scale = 2
	}
	if c.TPS <= 0 {
		c.TPS = 60
	}
}

// Display is a scanline.Display backed by an RGBA frame that is uploaded to
// the window each draw.
type Display struct {
	frame *image.RGBA
	rows  int
}

// NewDisplay creates a w x h display.
func NewDisplay(w, h int) *Display {
	return &Display{frame: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (d *Display) Width() int  { return d.frame.Rect.Dx() }
func (d *Display) Height() int { return d.frame.Rect.Dy() }
func (d *Display) Ready() bool { return true }

func (d *Display) Draw(y, x, x2 int, pixels []scanline.Color) error {
	if y < 0 || y >= d.Height() || x < 0 || x2 >= d.Width() {
		return fmt.Errorf("ebitensim: row %d [%d, %d] out of bounds", y, x, x2)
	}
	i := d.frame.PixOffset(x, y)
	for _, c := range pixels[:x2-x+1] {
		p := d.frame.Pix[i : i+4 : i+4]
		p[0], p[1], p[2], p[3] = c.R(), c.G(), c.B(), 0xff
		i += 4
	}
	d.rows++
	return nil
}

// Snapshot returns a copy of the frame.
func (d *Display) Snapshot() image.Image {
	img := image.NewRGBA(d.frame.Rect)
	copy(img.Pix, d.frame.Pix)
	return img
}

// Rows returns the number of rows transferred since creation.
func (d *Display) Rows() int { return d.rows }

type game struct {
	scene   *scanline.Scene
	display *Display
	buf     *scanline.LineBuffer
	screen  *ebiten.Image
	cfg     RunConfig
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrQuit
	}
	dt := 1.0 / float64(ebiten.TPS())
	if g.cfg.Update != nil {
		if err := g.cfg.Update(dt); err != nil {
			return err
		}
	}
	g.scene.Update(dt)
	return g.scene.Render(g.buf)
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.screen == nil {
		g.screen = ebiten.NewImage(g.display.Width(), g.display.Height())
	}
	g.screen.WritePixels(g.display.frame.Pix)
	screen.DrawImage(g.screen, nil)
	if g.cfg.ShowStats {
		st := g.scene.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %.0f\nlines %d\nrows %d",
			ebiten.ActualFPS(), st.Lines, st.Transfers))
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.display.Width(), g.display.Height()
}

// Run opens a window and drives scene until the window is closed, Escape is
// pressed, or RunConfig.Update returns an error.
func Run(scene *scanline.Scene, cfg RunConfig) error {
	if scene == nil {
		return errors.New("ebitensim: nil scene")
	}
	cfg.applyDefaults()

	d := NewDisplay(cfg.Width, cfg.Height)
	g := &game{
		scene:   scene,
		display: d,
		buf:     scanline.NewLineBuffer(d),
		cfg:     cfg,
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)

	err := ebiten.RunGame(g)
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}
