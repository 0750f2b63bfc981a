package scanline

import (
	"image/color"
	"testing"
)

func TestColorComponents(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	if c != 0x123456 {
		t.Fatalf("RGB = %#06x, want 0x123456", uint32(c))
	}
	if c.R() != 0x12 || c.G() != 0x34 || c.B() != 0x56 {
		t.Errorf("components = %#x %#x %#x", c.R(), c.G(), c.B())
	}
	if got := c.RGBA(); got != (color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}) {
		t.Errorf("RGBA = %v", got)
	}
}

func TestColorFrom(t *testing.T) {
	c, a := ColorFrom(color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	if c != RGB(200, 100, 50) {
		t.Errorf("color = %#06x, want %#06x", uint32(c), uint32(RGB(200, 100, 50)))
	}
	if a < 0.50 || a > 0.51 {
		t.Errorf("alpha = %v, want ~0.502", a)
	}
}

func TestColor565RoundTripExtremes(t *testing.T) {
	for _, c := range []Color{ColorBlack, ColorWhite, ColorRed, ColorGreen, ColorBlue} {
		if got := ColorFrom565(c.RGB565()); got != c {
			t.Errorf("565 round trip of %#06x = %#06x", uint32(c), uint32(got))
		}
	}
	if ColorWhite.RGB565() != 0xffff {
		t.Errorf("white 565 = %#04x, want 0xffff", ColorWhite.RGB565())
	}
}

func TestBlendEndpoints(t *testing.T) {
	dst, src := RGB(10, 20, 30), RGB(200, 210, 220)
	if got := Blend(dst, src, 1); got != src {
		t.Errorf("Blend(a=1) = %#06x, want src", uint32(got))
	}
	if got := Blend(dst, src, 0); got != dst {
		t.Errorf("Blend(a=0) = %#06x, want dst", uint32(got))
	}
}

func TestBlendStaysBetweenInputs(t *testing.T) {
	dst, src := RGB(0, 255, 100), RGB(255, 0, 100)
	for _, a := range []float32{0.1, 0.25, 0.5, 0.75, 0.9} {
		got := Blend(dst, src, a)
		if !between(got.R(), dst.R(), src.R()) ||
			!between(got.G(), dst.G(), src.G()) ||
			!between(got.B(), dst.B(), src.B()) {
			t.Errorf("Blend(a=%v) = %#06x, outside inputs", a, uint32(got))
		}
	}
	half := Blend(ColorBlack, ColorWhite, 0.5)
	if half.R() < 127 || half.R() > 128 {
		t.Errorf("half blend R = %d, want 127 or 128", half.R())
	}
}

func between(v, a, b uint8) bool {
	if a > b {
		a, b = b, a
	}
	return v >= a && v <= b
}

func TestAlphaClamp(t *testing.T) {
	tests := []struct{ in, want float32 }{
		{-1, 0}, {0, 0}, {0.3, 0.3}, {1, 1}, {2, 1},
	}
	for _, tt := range tests {
		if got := AlphaClamp(tt.in); got != tt.want {
			t.Errorf("AlphaClamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDarkenLighten(t *testing.T) {
	c := RGB(100, 100, 100)
	if got := Darken(c, 1); got != ColorBlack {
		t.Errorf("Darken(1) = %#06x, want black", uint32(got))
	}
	if got := Lighten(c, 1); got != ColorWhite {
		t.Errorf("Lighten(1) = %#06x, want white", uint32(got))
	}
	if got := Darken(c, 0.5); got.R() >= 100 {
		t.Errorf("Darken(0.5).R = %d, want < 100", got.R())
	}
}
