package backdrop

import "errors"

// ErrNoSurface is returned by a Surface that cannot produce a drawing
// context. Components treat it as "render nothing".
var ErrNoSurface = errors.New("backdrop: drawing surface unavailable")

// Canvas is a 2D drawing context addressed in logical pixels. Implementations
// scale to physical pixels by the ratio passed to Resize.
type Canvas interface {
	// Resize sizes the backing store to width x height logical pixels at the
	// given device pixel ratio and clears it.
	Resize(width, height, dpr float64)
	// Size returns the logical size set by the last Resize.
	Size() (width, height float64)
	// Clear makes every pixel transparent.
	Clear()
	FillRect(x, y, w, h float64, c Color)
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
	FillCircle(cx, cy, r float64, c Color)
	// Glow draws a radial gradient centred on (cx, cy) with radius r. The
	// inner solid fraction of r is drawn at c; beyond it alpha falls to zero
	// at r.
	Glow(cx, cy, r, solid float64, c Color, blend BlendMode)
	// FillQuad fills a convex quad with per-corner colors, interpolated
	// across the surface.
	FillQuad(pts [4]Vec2, colors [4]Color)
}

// Surface hands out the drawing context a component renders into.
type Surface interface {
	Context() (Canvas, error)
}

// acquire returns the canvas behind s, or nil when s is nil or cannot
// produce one.
func acquire(s Surface) Canvas {
	if s == nil {
		return nil
	}
	c, err := s.Context()
	if err != nil || c == nil {
		return nil
	}
	return c
}

// rectQuad returns the corners of an axis-aligned rectangle in clockwise
// order starting top-left.
func rectQuad(x, y, w, h float64) [4]Vec2 {
	return [4]Vec2{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}
