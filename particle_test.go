package backdrop

import (
	"testing"
	"time"
)

func newTestField(seed uint64) *ParticleField {
	return NewParticleField(FieldConfig{Seed: seed})
}

func TestParticleFieldCounts(t *testing.T) {
	tests := []struct {
		name string
		cfg  HostConfig
		want int
	}{
		{"desktop", HostConfig{Width: 1280, Height: 800}, 140},
		{"mobile flag", HostConfig{Width: 1280, Height: 800, Mobile: true}, 60},
		{"narrow", HostConfig{Width: 400, Height: 800}, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField(1)
			if !f.Mount(NewHost(tt.cfg), &recordCanvas{}) {
				t.Fatal("Mount failed")
			}
			if got := len(f.Particles()); got != tt.want {
				t.Errorf("particles = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParticleFieldResetInvariants(t *testing.T) {
	f := newTestField(7)
	f.Reset(1280, 800, false)
	cfg := f.Config()
	floor := MinAlpha(cfg.MinAlpha, 1)
	for i, p := range f.Particles() {
		if p.X < 0 || p.X > 1280 || p.Y < 0 || p.Y > 800 {
			t.Fatalf("particle %d at (%v, %v) outside the viewport", i, p.X, p.Y)
		}
		if p.Alpha < floor || p.Alpha > 1 {
			t.Fatalf("particle %d alpha = %v, want [%v, 1]", i, p.Alpha, floor)
		}
		if !cfg.Velocity.Contains(p.VX) || !cfg.Velocity.Contains(p.VY) {
			t.Fatalf("particle %d velocity (%v, %v) out of range", i, p.VX, p.VY)
		}
		if !cfg.Radius.Contains(p.Radius) {
			t.Fatalf("particle %d radius = %v", i, p.Radius)
		}
	}
}

func TestParticleFieldStepKeepsInvariants(t *testing.T) {
	f := newTestField(3)
	f.Reset(640, 480, false)
	m := f.Config().WrapMargin
	for range 2000 {
		f.Step()
	}
	floor := MinAlpha(f.Config().MinAlpha, f.Intensity())
	for i, p := range f.Particles() {
		if p.X < -m || p.X > 640+m || p.Y < -m || p.Y > 480+m {
			t.Fatalf("particle %d at (%v, %v) escaped the wrap margin", i, p.X, p.Y)
		}
		if p.Alpha < floor || p.Alpha > 1 {
			t.Fatalf("particle %d alpha = %v", i, p.Alpha)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, want float64
	}{
		{50, 50},
		{-20, -20},
		{-20.5, 120},
		{120, 120},
		{120.5, -20},
	}
	for _, tt := range tests {
		assertNear(t, "wrap", wrap(tt.v, 100, 20), tt.want)
	}
}

func TestTwinkleBounces(t *testing.T) {
	p := Particle{Alpha: 0.99, AlphaDelta: 0.05}
	twinkle(&p, 0.2)
	if p.Alpha != 1 || p.AlphaDelta >= 0 {
		t.Errorf("top bounce: alpha = %v, delta = %v", p.Alpha, p.AlphaDelta)
	}
	p = Particle{Alpha: 0.21, AlphaDelta: -0.05}
	twinkle(&p, 0.2)
	if p.Alpha != 0.2 || p.AlphaDelta <= 0 {
		t.Errorf("floor bounce: alpha = %v, delta = %v", p.Alpha, p.AlphaDelta)
	}
}

func TestIntensityScalars(t *testing.T) {
	prevDist, prevWidth, prevGlow := 0.0, 0.0, 0.0
	for _, in := range []float64{0.6, 0.8, 1, 1.2, 1.6} {
		d := MaxConnectDistance(160, in)
		w := LineWidth(in)
		g := NodeGlow(0.5, in)
		if d <= prevDist || w <= prevWidth || g <= prevGlow {
			t.Errorf("intensity %v: scalars not increasing (%v, %v, %v)", in, d, w, g)
		}
		prevDist, prevWidth, prevGlow = d, w, g
	}
	assertNear(t, "MaxConnectDistance(160, 1)", MaxConnectDistance(160, 1), 224)
	assertNear(t, "MinAlpha(0.18, 0.2)", MinAlpha(0.18, 0.2), 0.09)
	assertNear(t, "MinAlpha(0.18, 1.5)", MinAlpha(0.18, 1.5), 0.27)
}

func TestLineAlpha(t *testing.T) {
	assertNear(t, "floor", LineAlpha(0, 0, 159, 160, 1), 0.02)
	assertNear(t, "close", LineAlpha(1, 1, 0, 160, 1), 0.36)
	// Intensity above 1 does not brighten lines.
	assertNear(t, "capped", LineAlpha(1, 1, 0, 160, 1.6), 0.36)
	if LineAlpha(1, 1, 80, 160, 1) >= LineAlpha(1, 1, 40, 160, 1) {
		t.Error("closer pairs should be brighter")
	}
}

func TestGridMatchesBruteForce(t *testing.T) {
	f := NewParticleField(FieldConfig{Seed: 11, DesktopCount: 400})
	f.Reset(1280, 800, false)
	ps := f.Particles()
	maxDist := MaxConnectDistance(f.Config().ConnectDistance, 1)

	type pair struct{ a, b int }
	brute := map[pair]float64{}
	forEachPairBrute(ps, maxDist, func(a, b int, d float64) { brute[pair{a, b}] = d })

	var g pairGrid
	g.build(ps, maxDist, -20, -20, 1300, 820)
	grid := map[pair]float64{}
	g.forEachPair(ps, maxDist, func(a, b int, d float64) {
		if a >= b {
			t.Fatalf("pair (%d, %d) not ordered", a, b)
		}
		if _, dup := grid[pair{a, b}]; dup {
			t.Fatalf("pair (%d, %d) reported twice", a, b)
		}
		grid[pair{a, b}] = d
	})

	if len(grid) != len(brute) {
		t.Fatalf("grid found %d pairs, brute force %d", len(grid), len(brute))
	}
	for p, d := range brute {
		gd, ok := grid[p]
		if !ok {
			t.Fatalf("grid missed pair %v", p)
		}
		assertNear(t, "distance", gd, d)
	}
}

func TestParticleFieldDraw(t *testing.T) {
	f := newTestField(5)
	rc := &recordCanvas{}
	f.Mount(NewHost(HostConfig{Width: 1280, Height: 800}), rc)
	h := f.host
	h.Tick(16 * time.Millisecond)

	if rc.calls[0].op != "rect" {
		t.Fatalf("first call = %q, want the overlay rect", rc.calls[0].op)
	}
	assertNear(t, "overlay alpha", rc.calls[0].color.A, 0.99)
	if got := rc.count("circle"); got != 140 {
		t.Errorf("circles = %d, want 140", got)
	}
	if got := rc.count("line"); got != f.Connections() {
		t.Errorf("lines = %d, Connections = %d", got, f.Connections())
	}
	for _, c := range rc.calls {
		if c.op == "line" && (c.color.A < 0.02 || c.color.A > 1) {
			t.Fatalf("line alpha = %v", c.color.A)
		}
	}
	if f.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", f.Frames())
	}
}

func TestParticleFieldReducedMotion(t *testing.T) {
	h := NewHost(HostConfig{ReducedMotion: true})
	rc := &recordCanvas{}
	f := newTestField(2)
	if !f.Mount(h, rc) {
		t.Fatal("Mount failed")
	}
	if h.PendingFrames() != 0 {
		t.Errorf("PendingFrames = %d, want 0", h.PendingFrames())
	}
	if rc.count("circle") != 140 {
		t.Errorf("static draw circles = %d, want 140", rc.count("circle"))
	}
	before := rc.clears
	h.Resize(1000, 700, 1)
	if rc.clears != before+1 {
		t.Error("resize should redraw a static field")
	}
	for i := range 10 {
		h.Tick(time.Duration(i) * time.Millisecond)
	}
	if f.Frames() != 0 || rc.clears != before+1 {
		t.Error("static field should not animate")
	}
}

func TestParticleFieldFailedSurface(t *testing.T) {
	h := NewHost(HostConfig{})
	f := newTestField(1)
	if f.Mount(h, failSurface{}) {
		t.Fatal("Mount should fail without a canvas")
	}
	if f.Mounted() || h.PendingFrames() != 0 || h.ListenerCount(EventResize) != 0 {
		t.Error("failed mount should leave no work behind")
	}
	f.Draw()
	f.Unmount()
}

func TestParticleFieldUnmount(t *testing.T) {
	h := NewHost(HostConfig{})
	f := newTestField(1)
	f.Mount(h, &recordCanvas{})
	h.Tick(time.Millisecond)
	f.Unmount()
	f.Unmount()
	if h.PendingFrames() != 0 || h.ListenerCount(EventResize) != 0 {
		t.Errorf("after Unmount: frames = %d, resize listeners = %d",
			h.PendingFrames(), h.ListenerCount(EventResize))
	}
	if f.Mounted() {
		t.Error("Mounted after Unmount")
	}
}

func TestParticleFieldResizeRegenerates(t *testing.T) {
	h := NewHost(HostConfig{Width: 1280, Height: 800})
	rc := &recordCanvas{}
	f := newTestField(9)
	f.Mount(h, rc)
	h.Resize(500, 400, 3)
	if len(f.Particles()) != 60 {
		t.Errorf("particles after narrowing = %d, want 60", len(f.Particles()))
	}
	if rc.dpr != 2 {
		t.Errorf("canvas dpr = %v, want capped at 2", rc.dpr)
	}
	for _, p := range f.Particles() {
		if p.X > 500 || p.Y > 400 {
			t.Fatalf("particle at (%v, %v) outside the resized viewport", p.X, p.Y)
		}
	}
	h.Resize(500, 400, 0.5)
	if rc.dpr != 1 {
		t.Errorf("canvas dpr = %v, want raised to 1", rc.dpr)
	}
}
