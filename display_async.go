package scanline

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"
)

// Flusher is implemented by displays that buffer rows and need a final push
// once a frame is complete. LineBuffer.Flush forwards to it.
type Flusher interface {
	Flush() error
}

// AsyncConfig configures an AsyncDisplay. The zero value is usable.
type AsyncConfig struct {
	// RowDelay simulates the time a transfer takes on the bus.
	RowDelay time.Duration
}

type asyncRow struct {
	y, x, x2 int
	pixels   []Color
}

// AsyncDisplay wraps a Display and performs each transfer on a worker
// goroutine, the way a DMA engine frees the CPU during an SPI transfer. It
// reports not ready while a row is in flight, so the line buffer overlaps
// compositing the next line with the current transfer.
//
// A transfer error is reported by the Draw or Flush call that follows it, and
// by Err.
type AsyncDisplay struct {
	inner Display
	cfg   AsyncConfig

	busy atomic.Bool
	jobs chan asyncRow
	done chan struct{}

	mu      sync.Mutex
	pending error
	first   error

	closeOnce sync.Once
}

// NewAsyncDisplay starts the transfer worker for inner. Call Close to stop
// it.
func NewAsyncDisplay(inner Display, cfg AsyncConfig) *AsyncDisplay {
	if inner == nil {
		panic("scanline: NewAsyncDisplay requires a display")
	}
	d := &AsyncDisplay{
		inner: inner,
		cfg:   cfg,
		jobs:  make(chan asyncRow, 1),
		done:  make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *AsyncDisplay) run() {
	defer close(d.done)
	for row := range d.jobs {
		if d.cfg.RowDelay > 0 {
			time.Sleep(d.cfg.RowDelay)
		}
		for !d.inner.Ready() {
			time.Sleep(time.Microsecond)
		}
		if err := d.inner.Draw(row.y, row.x, row.x2, row.pixels); err != nil {
			err = fmt.Errorf("async transfer row %d: %w", row.y, err)
			d.mu.Lock()
			if d.pending == nil {
				d.pending = err
			}
			if d.first == nil {
				d.first = err
			}
			d.mu.Unlock()
		}
		d.busy.Store(false)
	}
}

func (d *AsyncDisplay) Width() int  { return d.inner.Width() }
func (d *AsyncDisplay) Height() int { return d.inner.Height() }

// Ready reports whether the previous transfer has finished.
func (d *AsyncDisplay) Ready() bool { return !d.busy.Load() }

// Draw queues the row and returns immediately. pixels must not be modified
// until Ready reports true again. The returned error belongs to an earlier
// transfer.
func (d *AsyncDisplay) Draw(y, x, x2 int, pixels []Color) error {
	for !d.busy.CompareAndSwap(false, true) {
		time.Sleep(time.Microsecond)
	}
	d.jobs <- asyncRow{y: y, x: x, x2: x2, pixels: pixels}

	d.mu.Lock()
	err := d.pending
	d.pending = nil
	d.mu.Unlock()
	return err
}

// Wait blocks until the worker is idle.
func (d *AsyncDisplay) Wait() {
	for d.busy.Load() {
		time.Sleep(time.Microsecond)
	}
}

// Flush waits for the last row and flushes the wrapped display if it
// buffers rows. It returns any transfer error not yet reported by Draw.
func (d *AsyncDisplay) Flush() error {
	d.Wait()
	d.mu.Lock()
	err := d.pending
	d.pending = nil
	d.mu.Unlock()
	if f, ok := d.inner.(Flusher); ok {
		return errors.Join(err, f.Flush())
	}
	return err
}

// Err returns the first transfer error seen by the worker.
func (d *AsyncDisplay) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.first
}

// Snapshot waits for the last row and returns the wrapped display's frame,
// or nil if it cannot provide one.
func (d *AsyncDisplay) Snapshot() image.Image {
	d.Wait()
	if s, ok := d.inner.(Snapshotter); ok {
		return s.Snapshot()
	}
	return nil
}

// Close waits for the last transfer and stops the worker. The display must
// not be drawn to afterwards.
func (d *AsyncDisplay) Close() error {
	d.closeOnce.Do(func() {
		close(d.jobs)
		<-d.done
	})
	return d.Err()
}
