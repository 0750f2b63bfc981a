package scanline

import "testing"

func TestNopFilterPassesThrough(t *testing.T) {
	var f NopFilter
	c, a := f.FilterPixel(0, 0, ColorRed, 0.5)
	if c != ColorRed || a != 0.5 {
		t.Errorf("FilterPixel = (%#06x, %v), want (red, 0.5)", uint32(c), a)
	}
}

func TestTintFilter(t *testing.T) {
	f := NewTintFilter(ColorBlue, 1)
	if c, a := f.FilterPixel(0, 0, ColorRed, 0.75); c != ColorBlue || a != 0.75 {
		t.Errorf("full tint = (%#06x, %v), want (blue, 0.75)", uint32(c), a)
	}
	f = NewTintFilter(ColorBlue, 0)
	if c, _ := f.FilterPixel(0, 0, ColorRed, 1); c != ColorRed {
		t.Errorf("zero tint = %#06x, want red", uint32(c))
	}
	if NewTintFilter(ColorBlue, 3).Amount != 1 {
		t.Error("amount should clamp to 1")
	}
}

func TestShadeFilter(t *testing.T) {
	gray := RGB(128, 128, 128)
	if c, _ := NewShadeFilter(-1).FilterPixel(0, 0, gray, 1); c != ColorBlack {
		t.Errorf("Shade(-1) = %#06x, want black", uint32(c))
	}
	if c, _ := NewShadeFilter(1).FilterPixel(0, 0, gray, 1); c != ColorWhite {
		t.Errorf("Shade(1) = %#06x, want white", uint32(c))
	}
	c, _ := NewShadeFilter(-0.5).FilterPixel(0, 0, gray, 1)
	if c.R() >= 128 || c.R() == 0 {
		t.Errorf("Shade(-0.5).R = %d, want darker but not black", c.R())
	}
	if NewShadeFilter(-5).Amount != -1 {
		t.Error("amount should clamp to -1")
	}
}

func TestColorMaskFilter(t *testing.T) {
	f := NewColorMaskFilter(ColorMagenta)
	if _, a := f.FilterPixel(0, 0, ColorMagenta, 1); a != 0 {
		t.Errorf("masked alpha = %v, want 0", a)
	}
	if _, a := f.FilterPixel(0, 0, RGB(254, 0, 255), 1); a != 1 {
		t.Errorf("near-miss alpha = %v, want 1", a)
	}
}

func TestFuzzyColorMaskFilter(t *testing.T) {
	f := NewFuzzyColorMaskFilter(ColorMagenta, 0.05)
	tests := []struct {
		c    Color
		want float32
	}{
		{ColorMagenta, 0},
		{RGB(250, 5, 250), 0},
		{RGB(200, 0, 255), 1},
		{ColorGreen, 1},
	}
	for _, tt := range tests {
		if _, a := f.FilterPixel(0, 0, tt.c, 1); a != tt.want {
			t.Errorf("FilterPixel(%#06x) alpha = %v, want %v", uint32(tt.c), a, tt.want)
		}
	}
}

func TestHSVFilterHueShift(t *testing.T) {
	f := NewHSVFilter(120, 0, 0)
	if c, _ := f.FilterPixel(0, 0, ColorRed, 1); c != ColorGreen {
		t.Errorf("red +120 = %#06x, want green", uint32(c))
	}
	f = NewHSVFilter(-120, 0, 0)
	if c, _ := f.FilterPixel(0, 0, ColorRed, 1); c != ColorBlue {
		t.Errorf("red -120 = %#06x, want blue", uint32(c))
	}
}

func TestHSVFilterDesaturate(t *testing.T) {
	f := NewHSVFilter(0, -1, 0)
	c, a := f.FilterPixel(0, 0, ColorRed, 0.5)
	if c.R() != c.G() || c.G() != c.B() {
		t.Errorf("desaturated = %#06x, want gray", uint32(c))
	}
	if a != 0.5 {
		t.Errorf("alpha = %v, want 0.5", a)
	}
}

func TestHSVFilterValueClamps(t *testing.T) {
	f := NewHSVFilter(0, 0, -2)
	if c, _ := f.FilterPixel(0, 0, ColorWhite, 1); c != ColorBlack {
		t.Errorf("value -2 = %#06x, want black", uint32(c))
	}
}

func TestFilterChainOrder(t *testing.T) {
	// Mask then tint: the mask sees the original color.
	s, disp, buf := newTestScene(2, 1)
	s.SetBackgroundColor(ColorWhite)
	n := s.NewNode("n", DrawableFunc(func(lx, _ int) (Color, float32) {
		if lx == 0 {
			return ColorMagenta, 1
		}
		return ColorRed, 1
	}))
	n.SetBounds(0, 0, 2, 1)
	n.AddFilter(NewColorMaskFilter(ColorMagenta))
	n.AddFilter(NewTintFilter(ColorBlue, 1))
	s.Root().AddChild(n)
	mustRender(t, s, buf)

	assertPixel(t, disp, 0, 0, ColorWhite)
	assertPixel(t, disp, 1, 0, ColorBlue)
}
