package scanline

import "image/color"

// Color is a 24-bit RGB color packed as 0xRRGGBB. Alpha travels separately as
// a float32 in [0, 1] so producers can scale it without unpacking.
type Color uint32

// Common colors.
const (
	ColorBlack   Color = 0x000000
	ColorWhite   Color = 0xffffff
	ColorRed     Color = 0xff0000
	ColorGreen   Color = 0x00ff00
	ColorBlue    Color = 0x0000ff
	ColorMagenta Color = 0xff00ff
)

// RGB packs 8-bit components into a Color.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// ColorFrom converts any color.Color to a Color, dropping alpha. The alpha is
// returned separately, un-premultiplying the components if needed.
func ColorFrom(c color.Color) (Color, float32) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB(n.R, n.G, n.B), float32(n.A) / 255
}

// R returns the red component.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green component.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue component.
func (c Color) B() uint8 { return uint8(c) }

// RGBA converts to an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: 0xff}
}

// RGB565 packs the color into the 16-bit format used by most SPI TFT
// controllers.
func (c Color) RGB565() uint16 {
	return uint16(c.R()&0xf8)<<8 | uint16(c.G()&0xfc)<<3 | uint16(c.B())>>3
}

// ColorFrom565 expands a 16-bit RGB565 value, replicating the high bits into
// the low ones so that white stays white.
func ColorFrom565(v uint16) Color {
	r := uint8(v>>8) & 0xf8
	g := uint8(v>>3) & 0xfc
	b := uint8(v<<3) & 0xf8
	return RGB(r|r>>5, g|g>>6, b|b>>5)
}

// Gray returns the luminance of the color as 0-255.
func (c Color) Gray() uint8 {
	return uint8((299*uint32(c.R()) + 587*uint32(c.G()) + 114*uint32(c.B())) / 1000)
}

// AlphaClamp clamps a to [0, 1].
func AlphaClamp(a float32) float32 {
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

// alpha8 converts a float alpha to 0-255, rounding to nearest.
func alpha8(a float32) uint32 {
	return uint32(AlphaClamp(a)*255 + 0.5)
}

// Blend composites src over dst with alpha a.
func Blend(dst, src Color, a float32) Color {
	a8 := alpha8(a)
	switch a8 {
	case 0:
		return dst
	case 255:
		return src
	}
	inv := 255 - a8
	r := (uint32(src.R())*a8 + uint32(dst.R())*inv + 127) / 255
	g := (uint32(src.G())*a8 + uint32(dst.G())*inv + 127) / 255
	b := (uint32(src.B())*a8 + uint32(dst.B())*inv + 127) / 255
	return Color(r<<16 | g<<8 | b)
}

// Tint moves c towards t by amount (0 leaves c, 1 gives t).
func Tint(c, t Color, amount float32) Color {
	return Blend(c, t, amount)
}

// Darken moves c towards black by amount.
func Darken(c Color, amount float32) Color {
	return Blend(c, ColorBlack, amount)
}

// Lighten moves c towards white by amount.
func Lighten(c Color, amount float32) Color {
	return Blend(c, ColorWhite, amount)
}
