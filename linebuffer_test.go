package scanline

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestNewLineBufferNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on nil display")
		}
	}()
	NewLineBuffer(nil)
}

func TestLineBufferRect(t *testing.T) {
	buf := NewLineBuffer(NewMemoryDisplay(8, 6))
	if got := buf.Rect(); got != NewRect(0, 0, 8, 6) {
		t.Errorf("Rect = %v, want 8x6 at origin", got)
	}
	if got := buf.Region(); got != buf.Rect() {
		t.Errorf("Region = %v, want the whole display", got)
	}
}

func TestLineBufferSetRegionClips(t *testing.T) {
	buf := NewLineBuffer(NewMemoryDisplay(8, 6))
	buf.SetRegion(NewRect(-2, 4, 20, 20))
	if got, want := buf.Region(), NewRect(0, 4, 8, 2); got != want {
		t.Errorf("Region = %v, want %v", got, want)
	}
	if buf.Y() != 4 {
		t.Errorf("Y = %d, want 4", buf.Y())
	}
}

func TestLineBufferFlipTransfersRegionSpan(t *testing.T) {
	disp := NewMemoryDisplay(8, 4)
	disp.Record = true
	buf := NewLineBuffer(disp)
	buf.SetRegion(NewRect(2, 1, 3, 2))

	for range 2 {
		buf.Clear(ColorRed)
		if err := buf.Flip(); err != nil {
			t.Fatalf("Flip: %v", err)
		}
	}
	want := []RowTransfer{{Y: 1, X: 2, X2: 4}, {Y: 2, X: 2, X2: 4}}
	rows := disp.Rows()
	if len(rows) != len(want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
	if disp.At(2, 1) != ColorRed || disp.At(4, 2) != ColorRed {
		t.Error("region pixels should be red")
	}
	if disp.At(1, 1) != ColorBlack || disp.At(5, 2) != ColorBlack || disp.At(2, 0) != ColorBlack {
		t.Error("pixels outside the region should be untouched")
	}
	if buf.Transfers() != 2 {
		t.Errorf("Transfers = %d, want 2", buf.Transfers())
	}
}

func TestLineBufferFlipWraps(t *testing.T) {
	buf := NewLineBuffer(NewMemoryDisplay(4, 4))
	buf.SetRegion(NewRect(0, 1, 4, 2))
	for range 2 {
		_ = buf.Flip()
	}
	if buf.Y() != 1 {
		t.Errorf("Y after a full region = %d, want 1 (wrapped)", buf.Y())
	}
}

func TestLineBufferRowsAlternate(t *testing.T) {
	buf := NewLineBuffer(NewMemoryDisplay(4, 4))
	buf.Pixel(ColorRed, 0)
	_ = buf.Flip()
	// The new front row is the other buffer.
	buf.Pixel(ColorBlue, 0)
	if buf.PixelAt(0) != ColorBlue {
		t.Error("PixelAt should read the front row")
	}
	_ = buf.Flip()
	if buf.PixelAt(0) != ColorRed {
		t.Error("after two flips the first row should be front again")
	}
}

func TestLineBufferBlend(t *testing.T) {
	buf := NewLineBuffer(NewMemoryDisplay(2, 1))
	buf.Pixel(ColorBlack, 0)
	buf.Blend(ColorWhite, 1, 0)
	if buf.PixelAt(0) != ColorWhite {
		t.Errorf("Blend(a=1) = %#06x, want white", uint32(buf.PixelAt(0)))
	}
	buf.Pixel(ColorBlack, 1)
	buf.Blend(ColorWhite, 0.5, 1)
	if r := buf.PixelAt(1).R(); r < 127 || r > 128 {
		t.Errorf("Blend(a=0.5).R = %d, want ~128", r)
	}
}

func TestLineBufferEmptyRegionSkipsTransfer(t *testing.T) {
	disp := NewMemoryDisplay(4, 4)
	buf := NewLineBuffer(disp)
	buf.SetRegion(NewRect(10, 10, 2, 2))
	if err := buf.Flip(); err != nil {
		t.Fatalf("Flip: %v", err)
	}
	if disp.Transfers() != 0 {
		t.Errorf("Transfers = %d, want 0", disp.Transfers())
	}
}

func TestLineBufferKeepsFirstError(t *testing.T) {
	errFirst := errors.New("first")
	disp := NewMemoryDisplay(4, 4)
	disp.Fail = func(y int) error {
		if y == 0 {
			return errFirst
		}
		return errors.New("later")
	}
	buf := NewLineBuffer(disp)
	buf.SetRegion(buf.Rect())
	for range 3 {
		_ = buf.Flip()
	}
	if !errors.Is(buf.Err(), errFirst) {
		t.Errorf("Err = %v, want %v", buf.Err(), errFirst)
	}
	buf.SetRegion(buf.Rect())
	if buf.Err() != nil {
		t.Errorf("Err after SetRegion = %v, want nil", buf.Err())
	}
}

// slowDisplay is busy for a fixed number of Ready polls after each Draw.
type slowDisplay struct {
	*MemoryDisplay
	busyPolls int
	remaining int
	polls     atomic.Int32
}

func (d *slowDisplay) Ready() bool {
	d.polls.Add(1)
	if d.remaining > 0 {
		d.remaining--
		return false
	}
	return true
}

func (d *slowDisplay) Draw(y, x, x2 int, pixels []Color) error {
	if d.remaining > 0 {
		panic("Draw called while display busy")
	}
	d.remaining = d.busyPolls
	return d.MemoryDisplay.Draw(y, x, x2, pixels)
}

func TestLineBufferWaitsForReady(t *testing.T) {
	disp := &slowDisplay{MemoryDisplay: NewMemoryDisplay(4, 4), busyPolls: 3}
	buf := NewLineBuffer(disp)
	for range 4 {
		if err := buf.Flip(); err != nil {
			t.Fatalf("Flip: %v", err)
		}
	}
	buf.Sync()
	if disp.remaining != 0 {
		t.Error("Sync returned while display busy")
	}
	if disp.Transfers() != 4 {
		t.Errorf("Transfers = %d, want 4", disp.Transfers())
	}
}

type flushDisplay struct {
	*MemoryDisplay
	flushes int
	err     error
}

func (d *flushDisplay) Flush() error {
	d.flushes++
	return d.err
}

func TestLineBufferFlush(t *testing.T) {
	errFlush := errors.New("flush failed")
	disp := &flushDisplay{MemoryDisplay: NewMemoryDisplay(2, 2), err: errFlush}
	buf := NewLineBuffer(disp)
	if err := buf.Flush(); !errors.Is(err, errFlush) {
		t.Errorf("Flush = %v, want %v", err, errFlush)
	}
	if disp.flushes != 1 {
		t.Errorf("flushes = %d, want 1", disp.flushes)
	}
	if !errors.Is(buf.Err(), errFlush) {
		t.Errorf("Err = %v, want %v", buf.Err(), errFlush)
	}

	plain := NewLineBuffer(NewMemoryDisplay(2, 2))
	if err := plain.Flush(); err != nil {
		t.Errorf("Flush without Flusher = %v, want nil", err)
	}
}
