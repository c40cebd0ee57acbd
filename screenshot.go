package salinity

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Screenshot queues a labeled screenshot. The host captures it with
// FlushScreenshots once the frame is drawn. The PNG is written to
// ScreenshotDir with a timestamped filename.
func (r *Renderer) Screenshot(label string) {
	r.screenshotQueue = append(r.screenshotQueue, label)
}

// PendingScreenshots reports whether labels are waiting for a capture.
func (r *Renderer) PendingScreenshots() bool { return len(r.screenshotQueue) > 0 }

// FlushScreenshots writes img once per queued label and empties the queue.
// Hosts call it at the end of a frame with the drawn surface.
func (r *Renderer) FlushScreenshots(img image.Image) error {
	if len(r.screenshotQueue) == 0 {
		return nil
	}
	defer func() { r.screenshotQueue = r.screenshotQueue[:0] }()

	if err := os.MkdirAll(r.ScreenshotDir, 0o755); err != nil {
		return fmt.Errorf("screenshot: mkdir %s: %w", r.ScreenshotDir, err)
	}
	stamp := time.Now().Format("20060102_150405")
	for _, label := range r.screenshotQueue {
		path := filepath.Join(r.ScreenshotDir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			return fmt.Errorf("screenshot: %w", err)
		}
		logger.Info("screenshot", "path", path)
	}
	return nil
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
