package backdrop

import (
	"image"
	"image/color"
	"math"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
)

// SoftwareCanvas renders on the CPU through an HTML5-canvas style API. It
// needs no window or GPU, so it backs headless stills and tests that want
// real pixels.
//
// Blend modes other than BlendNormal are drawn as BlendNormal, and FillQuad
// interpolates along the quad's first diagonal only.
type SoftwareCanvas struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
	w, h    float64
	dpr     float64
}

// NewSoftwareCanvas creates an empty software canvas; call Resize before
// drawing.
func NewSoftwareCanvas() *SoftwareCanvas {
	return &SoftwareCanvas{dpr: 1}
}

// Context implements Surface.
func (s *SoftwareCanvas) Context() (Canvas, error) {
	if s == nil {
		return nil, ErrNoSurface
	}
	return s, nil
}

// Size implements Canvas.
func (s *SoftwareCanvas) Size() (float64, float64) {
	return s.w, s.h
}

// Resize implements Canvas.
func (s *SoftwareCanvas) Resize(width, height, dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	pw := max(int(math.Floor(width*dpr)), 1)
	ph := max(int(math.Floor(height*dpr)), 1)
	s.backend = softwarebackend.New(pw, ph)
	s.cv = canvas.New(s.backend)
	s.cv.SetTransform(dpr, 0, 0, dpr, 0, 0)
	s.w, s.h, s.dpr = width, height, dpr
}

// Clear implements Canvas.
func (s *SoftwareCanvas) Clear() {
	if s.cv == nil {
		return
	}
	s.cv.ClearRect(0, 0, s.w, s.h)
}

// FillRect implements Canvas.
func (s *SoftwareCanvas) FillRect(x, y, w, h float64, c Color) {
	if s.cv == nil || c.A <= 0 {
		return
	}
	s.cv.SetFillStyle(straight(c))
	s.cv.FillRect(x, y, w, h)
}

// StrokeLine implements Canvas.
func (s *SoftwareCanvas) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	if s.cv == nil || c.A <= 0 {
		return
	}
	s.cv.SetStrokeStyle(straight(c))
	s.cv.SetLineWidth(width)
	s.cv.BeginPath()
	s.cv.MoveTo(x0, y0)
	s.cv.LineTo(x1, y1)
	s.cv.Stroke()
}

// FillCircle implements Canvas.
func (s *SoftwareCanvas) FillCircle(cx, cy, r float64, c Color) {
	if s.cv == nil || c.A <= 0 || r <= 0 {
		return
	}
	s.cv.SetFillStyle(straight(c))
	s.cv.BeginPath()
	s.cv.Arc(cx, cy, r, 0, 2*math.Pi, false)
	s.cv.Fill()
}

// Glow implements Canvas with a radial gradient fill.
func (s *SoftwareCanvas) Glow(cx, cy, r, solid float64, c Color, _ BlendMode) {
	if s.cv == nil || c.A <= 0 || r <= 0 {
		return
	}
	g := s.cv.CreateRadialGradient(cx, cy, 0, cx, cy, r)
	g.AddColorStop(0, straight(c))
	g.AddColorStop(clamp01(solid), straight(c))
	g.AddColorStop(1, straight(c.WithAlpha(0)))
	s.cv.SetFillStyle(g)
	s.cv.FillRect(cx-r, cy-r, 2*r, 2*r)
}

// FillQuad implements Canvas. Colors are interpolated from corner 0 to
// corner 2.
func (s *SoftwareCanvas) FillQuad(pts [4]Vec2, colors [4]Color) {
	if s.cv == nil {
		return
	}
	g := s.cv.CreateLinearGradient(pts[0].X, pts[0].Y, pts[2].X, pts[2].Y)
	g.AddColorStop(0, straight(colors[0]))
	g.AddColorStop(1, straight(colors[2]))
	s.cv.SetFillStyle(g)
	s.cv.BeginPath()
	s.cv.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.cv.LineTo(p.X, p.Y)
	}
	s.cv.ClosePath()
	s.cv.Fill()
}

// Image returns the rendered pixels (premultiplied), or nil before Resize.
func (s *SoftwareCanvas) Image() *image.RGBA {
	if s.backend == nil {
		return nil
	}
	return s.backend.Image
}

// Snapshot returns a straight-alpha copy of the rendered pixels.
func (s *SoftwareCanvas) Snapshot() *image.NRGBA {
	img := s.Image()
	if img == nil {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	b := img.Bounds()
	return unpremultiply(img.Pix, b.Dx(), b.Dy())
}

func straight(c Color) color.NRGBA {
	return c.NRGBA()
}
