package backdrop

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled screenshot to be captured when the current
// frame is presented. The PNG is written to ScreenshotDir with a timestamped
// filename. Safe to call from frame callbacks and listeners.
func (h *Host) Screenshot(label string) {
	h.screenshotQueue = append(h.screenshotQueue, label)
}

// PendingScreenshots returns the number of queued screenshot labels.
func (h *Host) PendingScreenshots() int {
	return len(h.screenshotQueue)
}

// FlushScreenshots writes every queued screenshot of screen.
func (h *Host) FlushScreenshots(screen *ebiten.Image) {
	if len(h.screenshotQueue) == 0 {
		return
	}
	bounds := screen.Bounds()
	w, hgt := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*hgt)
	screen.ReadPixels(pixels)
	h.FlushScreenshotsImage(unpremultiply(pixels, w, hgt))
}

// FlushScreenshotsImage writes img once for every queued label. Use it with
// canvases that are not ebiten images, such as SoftwareCanvas.Snapshot.
func (h *Host) FlushScreenshotsImage(img image.Image) {
	if len(h.screenshotQueue) == 0 {
		return
	}
	if err := os.MkdirAll(h.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[backdrop] screenshot: mkdir %s: %v\n", h.ScreenshotDir, err)
		h.screenshotQueue = h.screenshotQueue[:0]
		return
	}

	stamp := time.Now().Format("20060102_150405")
	for _, label := range h.screenshotQueue {
		path := fmt.Sprintf("%s/%s_%s.png", h.ScreenshotDir, stamp, sanitizeLabel(label))
		if err := WritePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[backdrop] screenshot: %v\n", err)
		}
	}
	h.screenshotQueue = h.screenshotQueue[:0]
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// WritePNG encodes img to a PNG file at path.
func WritePNG(path string, img image.Image) error {
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
