package scanline

import "image"

// SpriteTransform flips or rotates a sprite's pixels.
type SpriteTransform uint8

const (
	TransformNone SpriteTransform = iota
	TransformFlipH
	TransformFlipV
	TransformRotate180 // same as flipping both ways
)

// SpriteBlend selects how a sprite's pixels are colored.
type SpriteBlend uint8

const (
	// BlendNormal draws the image's own colors.
	BlendNormal SpriteBlend = iota
	// BlendStamp uses the image only as an alpha mask and draws Color.
	BlendStamp
)

// Sprite draws an image, or one region of an atlas page.
type Sprite struct {
	Transform SpriteTransform
	Blend     SpriteBlend
	// Color is the stamp color in BlendStamp mode.
	Color Color

	img    image.Image
	rgba   *image.RGBA // fast path when img is an *image.RGBA
	region Region

	// row is the page row of the current line, cached by BeginLine for
	// unrotated regions.
	row int
}

// NewSprite creates a sprite drawing the whole of img.
func NewSprite(img image.Image) *Sprite {
	b := img.Bounds()
	return NewSpriteRegion(img, Region{
		X: b.Min.X, Y: b.Min.Y,
		Width: b.Dx(), Height: b.Dy(),
		OriginalW: b.Dx(), OriginalH: b.Dy(),
	})
}

// NewSpriteRegion creates a sprite drawing region r of page. A nil page draws
// nothing.
func NewSpriteRegion(page image.Image, r Region) *Sprite {
	s := &Sprite{}
	s.SetRegion(page, r)
	return s
}

// SetRegion switches the sprite to region r of page, as when stepping
// through animation frames.
func (s *Sprite) SetRegion(page image.Image, r Region) {
	s.img = page
	s.rgba, _ = page.(*image.RGBA)
	s.region = r
}

// Region returns the region being drawn.
func (s *Sprite) Region() Region { return s.region }

// Size returns the untrimmed size of the sprite.
func (s *Sprite) Size() (int, int) {
	w, h := s.region.OriginalW, s.region.OriginalH
	if w == 0 || h == 0 {
		w, h = s.region.Width, s.region.Height
	}
	return w, h
}

func (s *Sprite) BeginRender(Rect) {}
func (s *Sprite) SkipPixel(int, int) {}
func (s *Sprite) EndRender() {}

func (s *Sprite) BeginLine(ly int) {
	_, h := s.Size()
	if s.Transform == TransformFlipV || s.Transform == TransformRotate180 {
		ly = h - 1 - ly
	}
	s.row = ly - s.region.OffsetY
}

// CalcPixel samples the image at (lx, ly) after applying the transform.
// Pixels outside the trimmed region are transparent.
func (s *Sprite) CalcPixel(lx, _ int) (Color, float32) {
	if s.img == nil {
		return 0, 0
	}
	w, _ := s.Size()
	if s.Transform == TransformFlipH || s.Transform == TransformRotate180 {
		lx = w - 1 - lx
	}
	x, y := lx-s.region.OffsetX, s.row
	if x < 0 || y < 0 || x >= s.region.Width || y >= s.region.Height {
		return 0, 0
	}
	c, a := samplePage(s.img, s.rgba, s.region, x, y)
	if a == 0 {
		return 0, 0
	}
	if s.Blend == BlendStamp {
		c = s.Color
	}
	return c, a
}

func (s *Sprite) CalcMaskPixel(lx, ly int) float32 {
	_, a := s.CalcPixel(lx, ly)
	return a
}

// samplePage reads the pixel at (x, y) of region r, in unrotated region
// coordinates. rgba, when non-nil, must be img as an *image.RGBA.
func samplePage(img image.Image, rgba *image.RGBA, r Region, x, y int) (Color, float32) {
	var px, py int
	if r.Rotated {
		// Stored 90 degrees clockwise.
		px, py = r.X+r.Height-1-y, r.Y+x
	} else {
		px, py = r.X+x, r.Y+y
	}
	if rgba != nil {
		if !image.Pt(px, py).In(rgba.Rect) {
			return 0, 0
		}
		i := rgba.PixOffset(px, py)
		p := rgba.Pix[i : i+4 : i+4]
		if p[3] == 0 {
			return 0, 0
		}
		return unpremultiply(p[0], p[1], p[2], p[3])
	}
	return ColorFrom(img.At(px, py))
}

// unpremultiply converts premultiplied RGBA bytes to a Color and alpha.
func unpremultiply(r, g, b, a uint8) (Color, float32) {
	if a == 0xff {
		return RGB(r, g, b), 1
	}
	ua := uint32(a)
	r = uint8(min(uint32(r)*255/ua, 255))
	g = uint8(min(uint32(g)*255/ua, 255))
	b = uint8(min(uint32(b)*255/ua, 255))
	return RGB(r, g, b), float32(a) / 255
}
