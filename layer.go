package backdrop

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Layer is a persistent offscreen canvas backed by an *ebiten.Image. It is
// owned by exactly one component and is not recycled between frames.
type Layer struct {
	image  *ebiten.Image
	w, h   float64
	dpr    float64
	closed bool
	verts  [4]ebiten.Vertex
}

// NewLayer creates an empty layer. The backing image is allocated by the
// first Resize.
func NewLayer() *Layer {
	return &Layer{dpr: 1}
}

// Context implements Surface.
func (l *Layer) Context() (Canvas, error) {
	if l == nil || l.closed {
		return nil, ErrNoSurface
	}
	return l, nil
}

// Image returns the underlying *ebiten.Image, or nil before the first Resize.
func (l *Layer) Image() *ebiten.Image {
	return l.image
}

// Size implements Canvas.
func (l *Layer) Size() (float64, float64) {
	return l.w, l.h
}

// Resize deallocates the old image and creates one of
// floor(width*dpr) x floor(height*dpr) physical pixels.
func (l *Layer) Resize(width, height, dpr float64) {
	if l.closed {
		return
	}
	if dpr <= 0 {
		dpr = 1
	}
	pw := max(int(math.Floor(width*dpr)), 1)
	ph := max(int(math.Floor(height*dpr)), 1)
	if l.image != nil {
		b := l.image.Bounds()
		if b.Dx() == pw && b.Dy() == ph {
			l.w, l.h, l.dpr = width, height, dpr
			l.image.Clear()
			return
		}
		l.image.Deallocate()
	}
	l.image = ebiten.NewImage(pw, ph)
	l.w, l.h, l.dpr = width, height, dpr
}

// Clear implements Canvas.
func (l *Layer) Clear() {
	if l.image != nil {
		l.image.Clear()
	}
}

// FillRect implements Canvas.
func (l *Layer) FillRect(x, y, w, h float64, c Color) {
	if l.image == nil || c.A <= 0 {
		return
	}
	s := l.dpr
	vector.DrawFilledRect(l.image, float32(x*s), float32(y*s), float32(w*s), float32(h*s), premultiplied(c), false)
}

// StrokeLine implements Canvas.
func (l *Layer) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	if l.image == nil || c.A <= 0 {
		return
	}
	s := l.dpr
	vector.StrokeLine(l.image, float32(x0*s), float32(y0*s), float32(x1*s), float32(y1*s), float32(width*s), premultiplied(c), true)
}

// FillCircle implements Canvas.
func (l *Layer) FillCircle(cx, cy, r float64, c Color) {
	if l.image == nil || c.A <= 0 || r <= 0 {
		return
	}
	s := l.dpr
	vector.DrawFilledCircle(l.image, float32(cx*s), float32(cy*s), float32(r*s), premultiplied(c), true)
}

// Glow implements Canvas by scaling a cached falloff sprite.
func (l *Layer) Glow(cx, cy, r, solid float64, c Color, blend BlendMode) {
	if l.image == nil || c.A <= 0 || r <= 0 {
		return
	}
	tex := glowTexture(solid)
	size := float64(tex.Bounds().Dx())
	s := l.dpr
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(2*r*s/size, 2*r*s/size)
	op.GeoM.Translate((cx-r)*s, (cy-r)*s)
	a := clamp01(c.A)
	op.ColorScale.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
	op.Blend = blend.EbitenBlend()
	op.Filter = ebiten.FilterLinear
	l.image.DrawImage(tex, &op)
}

// FillQuad implements Canvas with two triangles over a white source pixel.
func (l *Layer) FillQuad(pts [4]Vec2, colors [4]Color) {
	if l.image == nil {
		return
	}
	s := l.dpr
	for i := range l.verts {
		v := &l.verts[i]
		v.DstX = float32(pts[i].X * s)
		v.DstY = float32(pts[i].Y * s)
		// Center of the 3x3 white image avoids sampling its edge.
		v.SrcX = 1.5
		v.SrcY = 1.5
		v.ColorR = float32(clamp01(colors[i].R))
		v.ColorG = float32(clamp01(colors[i].G))
		v.ColorB = float32(clamp01(colors[i].B))
		v.ColorA = float32(clamp01(colors[i].A))
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModeStraightAlpha
	l.image.DrawTriangles(l.verts[:], quadIndices, whiteSource(), &op)
}

// DrawTo composites the layer onto dst at the given opacity and blend mode.
// dst is addressed in logical pixels.
func (l *Layer) DrawTo(dst *ebiten.Image, opacity float64, blend BlendMode) {
	if l.image == nil || dst == nil || opacity <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(1/l.dpr, 1/l.dpr)
	op.Filter = ebiten.FilterLinear
	op.ColorScale.ScaleAlpha(float32(clamp01(opacity)))
	op.Blend = blend.EbitenBlend()
	dst.DrawImage(l.image, &op)
}

// Dispose deallocates the underlying image. Context reports ErrNoSurface
// afterwards.
func (l *Layer) Dispose() {
	if l.image != nil {
		l.image.Deallocate()
		l.image = nil
	}
	l.closed = true
}

var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

var (
	whiteImage *ebiten.Image
	glowCache  = map[int]*ebiten.Image{}
)

// whiteSource returns a lazily created 3x3 white image for untextured
// triangles.
func whiteSource() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
	}
	return whiteImage
}

const glowTextureRadius = 64

// glowTexture returns a cached falloff sprite for the given solid fraction,
// quantized to tenths.
func glowTexture(solid float64) *ebiten.Image {
	key := int(math.Round(clamp01(solid) * 10))
	if img, ok := glowCache[key]; ok {
		return img
	}
	size := glowTextureRadius * 2
	img := ebiten.NewImage(size, size)
	img.WritePixels(glowPixels(glowTextureRadius, float64(key)/10))
	glowCache[key] = img
	return img
}

// glowPixels renders a premultiplied white radial falloff: alpha 1 inside
// solid*radius, falling linearly to 0 at radius.
func glowPixels(radius int, solid float64) []byte {
	size := radius * 2
	pix := make([]byte, size*size*4)
	r := float64(radius)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			a := uint8(glowAlpha(math.Sqrt(dx*dx+dy*dy)/r, solid) * 255)
			off := (y*size + x) * 4
			pix[off+0] = a // premultiplied white
			pix[off+1] = a
			pix[off+2] = a
			pix[off+3] = a
		}
	}
	return pix
}

// glowAlpha is the falloff at normalized distance d from the centre.
func glowAlpha(d, solid float64) float64 {
	switch {
	case d >= 1:
		return 0
	case d <= solid:
		return 1
	default:
		return 1 - (d-solid)/(1-solid)
	}
}

// premultiplied converts c to a premultiplied color.RGBA.
func premultiplied(c Color) color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R*a) * 255),
		G: uint8(clamp01(c.G*a) * 255),
		B: uint8(clamp01(c.B*a) * 255),
		A: uint8(a * 255),
	}
}
