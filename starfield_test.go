package backdrop

import (
	"math"
	"testing"
	"time"
)

func mountStarfield(t *testing.T, cfg HostConfig, sc StarfieldConfig) (*Starfield, *Host, *recordCanvas) {
	t.Helper()
	if sc.Seed == 0 {
		sc.Seed = 42
	}
	h := NewHost(cfg)
	rc := &recordCanvas{}
	s := NewStarfield(sc)
	if !s.Mount(h, rc) {
		t.Fatal("Mount failed")
	}
	return s, h, rc
}

func TestHeartTarget(t *testing.T) {
	p := HeartTarget(0, 150, 1280, 800)
	assertNear(t, "x", p.X, 640)
	assertNear(t, "y", p.Y, 324.4)

	// Every target lies within the heart's bounding box.
	scale := 800 * 0.4
	for i := range 150 {
		p := HeartTarget(i, 150, 1280, 800)
		if math.Abs(p.X-640) > scale/2+1e-9 {
			t.Fatalf("target %d x = %v outside the heart", i, p.X)
		}
	}
	if HeartTarget(0, 0, 100, 100) != HeartTarget(0, 1, 100, 100) {
		t.Error("zero total should behave like one")
	}
}

func TestStepMorphReachesBoundsExactly(t *testing.T) {
	m, steps := 0.0, 0
	for m < 1 {
		m = stepMorph(m, true, 0.06)
		steps++
	}
	if m != 1 || steps != 17 {
		t.Errorf("rising: m = %v after %d steps, want 1 after 17", m, steps)
	}
	steps = 0
	for m > 0 {
		m = stepMorph(m, false, 0.06)
		steps++
	}
	if m != 0 || steps != 17 {
		t.Errorf("falling: m = %v after %d steps, want 0 after 17", m, steps)
	}
	if stepMorph(1, true, 0.06) != 1 || stepMorph(0, false, 0.06) != 0 {
		t.Error("stepMorph should hold at its bounds")
	}
}

func TestStarfieldCounts(t *testing.T) {
	s, _, _ := mountStarfield(t, HostConfig{Width: 1280, Height: 800}, StarfieldConfig{})
	if len(s.Stars()) != 150 {
		t.Errorf("desktop stars = %d, want 150", len(s.Stars()))
	}
	s, _, _ = mountStarfield(t, HostConfig{Width: 1280, Height: 800, Mobile: true}, StarfieldConfig{})
	if len(s.Stars()) != 40 {
		t.Errorf("mobile stars = %d, want 40", len(s.Stars()))
	}
	for _, st := range s.Stars() {
		if st.Layer < 0 || st.Layer >= 3 {
			t.Fatalf("layer = %d", st.Layer)
		}
		if st.Color != starWhite && st.Color != starCool && st.Color != starWarm {
			t.Fatalf("color %v outside the palette", st.Color)
		}
	}
}

func TestStarfieldGathersIntoHeartAndScatters(t *testing.T) {
	s, h, _ := mountStarfield(t, HostConfig{Width: 1280, Height: 800}, StarfieldConfig{})
	origin := make([]Vec2, len(s.Stars()))
	for i := range origin {
		origin[i] = s.DrawnPosition(i)
	}

	s.SetProgress(0.99)
	now := time.Duration(0)
	tick := func() {
		now += 16 * time.Millisecond
		h.Tick(now)
	}
	for range 17 {
		tick()
	}
	if s.Morph() != 1 || !s.HeartDesired() {
		t.Fatalf("morph = %v, want 1", s.Morph())
	}
	n := len(s.Stars())
	for i := range n {
		want := HeartTarget(i, n, 1280, 800)
		got := s.DrawnPosition(i)
		assertNear(t, "docked x", got.X, want.X)
		assertNear(t, "docked y", got.Y, want.Y)
	}

	// Docked stars hold still.
	before := s.DrawnPosition(3)
	for range 5 {
		tick()
	}
	if s.DrawnPosition(3) != before {
		t.Error("docked star moved")
	}

	s.SetProgress(0.5)
	for range 17 {
		tick()
	}
	if s.Morph() != 0 || s.HeartDesired() {
		t.Fatalf("morph = %v, want 0", s.Morph())
	}
	for i := range n {
		got := s.DrawnPosition(i)
		// One frame of drift at most since returning to the origin.
		assertWithin(t, "scattered x", got.X, origin[i].X, 0.1)
		assertWithin(t, "scattered y", got.Y, origin[i].Y, 0.1)
	}
}

func TestStarfieldMorphIsContinuous(t *testing.T) {
	s, h, _ := mountStarfield(t, HostConfig{Width: 1280, Height: 800}, StarfieldConfig{})
	n := len(s.Stars())
	prev := make([]Vec2, n)
	for i := range n {
		prev[i] = s.DrawnPosition(i)
	}
	bound := 0.06*math.Hypot(1280, 800) + 0.1

	// Reverse direction mid-morph in both directions.
	schedule := []float64{}
	for range 8 {
		schedule = append(schedule, 1)
	}
	for range 4 {
		schedule = append(schedule, 0)
	}
	for range 20 {
		schedule = append(schedule, 1)
	}
	for range 10 {
		schedule = append(schedule, 0)
	}
	for range 5 {
		schedule = append(schedule, 1)
	}
	for range 13 {
		schedule = append(schedule, 0)
	}

	for f, p := range schedule {
		s.SetProgress(p)
		h.Tick(time.Duration(f+1) * 16 * time.Millisecond)
		for i := range n {
			cur := s.DrawnPosition(i)
			if d := math.Hypot(cur.X-prev[i].X, cur.Y-prev[i].Y); d > bound {
				t.Fatalf("frame %d star %d jumped %v (bound %v)", f, i, d, bound)
			}
			prev[i] = cur
		}
	}
}

func TestStarfieldThresholdConfigurable(t *testing.T) {
	s, h, _ := mountStarfield(t, HostConfig{}, StarfieldConfig{HeartThreshold: 0.5})
	s.SetProgress(0.6)
	h.Tick(time.Millisecond)
	if !s.HeartDesired() || s.Morph() == 0 {
		t.Error("progress past a custom threshold should start the morph")
	}
	s.SetProgress(0.49)
	h.Tick(2 * time.Millisecond)
	if s.HeartDesired() {
		t.Error("progress below the threshold should release the heart")
	}
}

func TestStarfieldParallax(t *testing.T) {
	s, h, _ := mountStarfield(t, HostConfig{Width: 1280, Height: 800}, StarfieldConfig{})
	if s.ParallaxOffset(0) != (Vec2{}) {
		t.Errorf("offset at the centre = %v, want zero", s.ParallaxOffset(0))
	}
	h.MovePointer(1280, 800)
	off := s.ParallaxOffset(0)
	assertNear(t, "layer 0 x", off.X, 2.56)
	assertNear(t, "layer 0 y", off.Y, 1.6)
	off = s.ParallaxOffset(2)
	assertNear(t, "layer 2 x", off.X, 7.68)

	d, dh, _ := mountStarfield(t, HostConfig{}, StarfieldConfig{DisableParallax: true})
	if dh.ListenerCount(EventPointerMove) != 0 {
		t.Error("disabled parallax should not listen to the pointer")
	}
	dh.MovePointer(0, 0)
	if d.ParallaxOffset(2) != (Vec2{}) {
		t.Error("disabled parallax should not offset stars")
	}
}

func TestStarfieldDraw(t *testing.T) {
	s, h, rc := mountStarfield(t, HostConfig{}, StarfieldConfig{})
	h.Tick(500 * time.Millisecond)
	if got := rc.count("glow"); got != len(s.Stars()) {
		t.Fatalf("glows = %d, want %d", got, len(s.Stars()))
	}
	for _, c := range rc.calls {
		if c.blend != BlendAdd {
			t.Fatal("stars should be drawn additively")
		}
		if c.color.A <= 0 || c.color.A > 1 {
			t.Fatalf("star alpha = %v", c.color.A)
		}
		if c.args[2] < 1 {
			t.Fatalf("glow radius = %v, want >= 1", c.args[2])
		}
	}
}

func TestStarfieldReducedMotion(t *testing.T) {
	s, h, rc := mountStarfield(t, HostConfig{ReducedMotion: true}, StarfieldConfig{})
	if h.PendingFrames() != 0 {
		t.Errorf("PendingFrames = %d, want 0", h.PendingFrames())
	}
	if h.ListenerCount(EventPointerMove) != 0 {
		t.Error("reduced motion should not listen to the pointer")
	}
	if rc.count("glow") != 150 {
		t.Errorf("static glows = %d, want 150", rc.count("glow"))
	}
	h.Tick(time.Second)
	if s.Frames() != 0 {
		t.Error("static starfield should not animate")
	}
	s.Unmount()
	if h.ListenerCount(EventResize) != 0 {
		t.Error("Unmount should remove the resize listener")
	}
}

func TestStarfieldResizeWhileDockedReformsHeart(t *testing.T) {
	s, h, _ := mountStarfield(t, HostConfig{Width: 1280, Height: 800}, StarfieldConfig{})
	s.SetProgress(1)
	for i := range 20 {
		h.Tick(time.Duration(i) * time.Millisecond)
	}
	h.Resize(1000, 900, 1)
	if s.Morph() != 1 {
		t.Fatalf("morph after resize = %v, want 1", s.Morph())
	}
	n := len(s.Stars())
	want := HeartTarget(5, n, 1000, 900)
	got := s.DrawnPosition(5)
	assertNear(t, "x", got.X, want.X)
	assertNear(t, "y", got.Y, want.Y)
}

func TestStarfieldFailedSurface(t *testing.T) {
	h := NewHost(HostConfig{})
	s := NewStarfield(StarfieldConfig{})
	if s.Mount(h, failSurface{}) {
		t.Fatal("Mount should fail")
	}
	if h.PendingFrames() != 0 || h.ListenerCount(EventPointerMove) != 0 || h.ListenerCount(EventResize) != 0 {
		t.Error("failed mount should leave no work behind")
	}
}
