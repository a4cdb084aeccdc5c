package backdrop

import "math"

// affine is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type affine [6]float64

// identityTransform is the identity affine matrix.
var identityTransform = affine{1, 0, 0, 1, 0, 0}

func translation(x, y float64) affine {
	return affine{1, 0, 0, 1, x, y}
}

func scaling(sx, sy float64) affine {
	return affine{sx, 0, 0, sy, 0, 0}
}

// rotation rotates by deg degrees, clockwise on a y-down surface.
func rotation(deg float64) affine {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return affine{cos, sin, -sin, cos, 0, 0}
}

// then returns the transform that applies m first and n second.
func (m affine) then(n affine) affine {
	return affine{
		n[0]*m[0] + n[2]*m[1],
		n[1]*m[0] + n[3]*m[1],
		n[0]*m[2] + n[2]*m[3],
		n[1]*m[2] + n[3]*m[3],
		n[0]*m[4] + n[2]*m[5] + n[4],
		n[1]*m[4] + n[3]*m[5] + n[5],
	}
}

// apply transforms the point (x, y).
func (m affine) apply(x, y float64) Vec2 {
	return Vec2{m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]}
}

// scale returns the mean linear scale factor of m, used for stroke widths and
// radii.
func (m affine) scale() float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[2]*m[1]))
}

// quad transforms the corners of the rectangle (x, y, w, h).
func (m affine) quad(x, y, w, h float64) [4]Vec2 {
	r := rectQuad(x, y, w, h)
	for i := range r {
		r[i] = m.apply(r[i].X, r[i].Y)
	}
	return r
}

// sliceFit maps a vbW x vbH view box onto a width x height viewport so the
// box covers the viewport and is centred, cropping the overflow.
func sliceFit(vbW, vbH, width, height float64) affine {
	s := max(width/vbW, height/vbH)
	return scaling(s, s).then(translation((width-vbW*s)/2, (height-vbH*s)/2))
}
