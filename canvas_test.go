package backdrop

import (
	"math"
	"testing"
)

// drawCall is one recorded Canvas operation.
type drawCall struct {
	op    string
	args  []float64
	color Color
	blend BlendMode
}

// recordCanvas is a Canvas and Surface that records draw calls since the
// last Clear.
type recordCanvas struct {
	w, h, dpr float64
	resizes   int
	clears    int
	calls     []drawCall
}

func (r *recordCanvas) Context() (Canvas, error) { return r, nil }

func (r *recordCanvas) Resize(width, height, dpr float64) {
	r.w, r.h, r.dpr = width, height, dpr
	r.resizes++
	r.calls = r.calls[:0]
}

func (r *recordCanvas) Size() (float64, float64) { return r.w, r.h }

func (r *recordCanvas) Clear() {
	r.clears++
	r.calls = r.calls[:0]
}

func (r *recordCanvas) FillRect(x, y, w, h float64, c Color) {
	r.calls = append(r.calls, drawCall{op: "rect", args: []float64{x, y, w, h}, color: c})
}

func (r *recordCanvas) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	r.calls = append(r.calls, drawCall{op: "line", args: []float64{x0, y0, x1, y1, width}, color: c})
}

func (r *recordCanvas) FillCircle(cx, cy, rad float64, c Color) {
	r.calls = append(r.calls, drawCall{op: "circle", args: []float64{cx, cy, rad}, color: c})
}

func (r *recordCanvas) Glow(cx, cy, rad, solid float64, c Color, blend BlendMode) {
	r.calls = append(r.calls, drawCall{op: "glow", args: []float64{cx, cy, rad, solid}, color: c, blend: blend})
}

func (r *recordCanvas) FillQuad(pts [4]Vec2, colors [4]Color) {
	args := make([]float64, 0, 8)
	for _, p := range pts {
		args = append(args, p.X, p.Y)
	}
	r.calls = append(r.calls, drawCall{op: "quad", args: args, color: colors[0]})
}

func (r *recordCanvas) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

// failSurface never yields a canvas.
type failSurface struct{}

func (failSurface) Context() (Canvas, error) { return nil, ErrNoSurface }

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertWithin(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v ± %v", name, got, want, tol)
	}
}

func TestAcquireNilAndFailingSurface(t *testing.T) {
	if acquire(nil) != nil {
		t.Error("acquire(nil) should return nil")
	}
	if acquire(failSurface{}) != nil {
		t.Error("acquire(failSurface) should return nil")
	}
	rc := &recordCanvas{}
	if acquire(rc) != rc {
		t.Error("acquire should return the surface's canvas")
	}
}

func TestLayerContextAfterDispose(t *testing.T) {
	l := NewLayer()
	l.Dispose()
	if _, err := l.Context(); err != ErrNoSurface {
		t.Errorf("Context after Dispose err = %v, want ErrNoSurface", err)
	}
}

func TestGlowAlpha(t *testing.T) {
	tests := []struct {
		d, solid, want float64
	}{
		{0, 0, 1},
		{0.5, 0, 0.5},
		{1, 0, 0},
		{0.3, 0.6, 1},
		{0.8, 0.6, 0.5},
		{1.2, 0.6, 0},
	}
	for _, tt := range tests {
		assertNear(t, "glowAlpha", glowAlpha(tt.d, tt.solid), tt.want)
	}
}

func TestRectQuadClockwise(t *testing.T) {
	q := rectQuad(10, 20, 30, 40)
	want := [4]Vec2{{10, 20}, {40, 20}, {40, 60}, {10, 60}}
	if q != want {
		t.Errorf("rectQuad = %v, want %v", q, want)
	}
}
