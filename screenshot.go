package scanline

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// next Render. The resulting PNG is written to ScreenshotDir with a
// timestamped filename. The buffer's display must implement Snapshotter.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots captures the display contents for every queued label and
// writes each as a PNG file. Called at the end of Render.
func (s *Scene) flushScreenshots(buf *LineBuffer) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	snap, ok := buf.Display().(Snapshotter)
	if !ok {
		log.Printf("scanline: screenshot: display %T cannot snapshot", buf.Display())
		return
	}
	buf.Sync()
	img := snap.Snapshot()
	if img == nil {
		log.Printf("scanline: screenshot: display %T returned no frame", buf.Display())
		return
	}

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		log.Printf("scanline: screenshot: mkdir %s: %v", s.ScreenshotDir, err)
		return
	}

	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.screenshotQueue {
		path := filepath.Join(s.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			log.Printf("scanline: screenshot: %v", err)
		}
	}
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
