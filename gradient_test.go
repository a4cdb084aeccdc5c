package backdrop

import (
	"testing"
	"time"
)

func TestWarmFactor(t *testing.T) {
	g := NewPageGradient(GradientConfig{})
	assertNear(t, "top", g.WarmFactor(0), 0)
	assertNear(t, "bottom", g.WarmFactor(1), 0.18)
	assertNear(t, "overscroll", g.WarmFactor(5), 0.18)
	if g.WarmFactor(0.25) <= 0.25*0.18 {
		t.Error("gamma below 1 should warm early")
	}
}

func TestPageGradientVariables(t *testing.T) {
	h := NewHost(HostConfig{Width: 1280, Height: 800, DocumentHeight: 2400})
	tracker := NewScrollTracker()
	g := NewPageGradient(GradientConfig{})
	rc := &recordCanvas{}
	if !g.Mount(h, tracker, rc) {
		t.Fatal("Mount failed")
	}
	tracker.Start(h)

	get := func(name string) string {
		v, ok := h.Style().Get(name)
		if !ok {
			t.Fatalf("%s not set", name)
		}
		return v
	}
	if got := get("--sunset-top"); got != "#1a1030" {
		t.Errorf("--sunset-top at top = %s, want #1a1030", got)
	}
	if got := get("--sunset-bottom-light"); got != "#ffafc8" {
		t.Errorf("--sunset-bottom-light at top = %s, want #ffafc8", got)
	}

	h.ScrollTo(1600)
	h.Tick(16 * time.Millisecond)
	if got := get("--sunset-top"); got != "#1c1234" {
		t.Errorf("--sunset-top at bottom = %s, want #1c1234", got)
	}
	dark, _ := g.Stops()
	if dark[0].Hex() != "#1c1234" {
		t.Errorf("Stops()[0] = %s", dark[0].Hex())
	}
	assertNear(t, "Factor", g.Factor(), 0.18)
}

func TestPageGradientDrawsOnlyOnChange(t *testing.T) {
	h := NewHost(HostConfig{Width: 1280, Height: 800, DocumentHeight: 2400})
	tracker := NewScrollTracker()
	g := NewPageGradient(GradientConfig{})
	rc := &recordCanvas{}
	g.Mount(h, tracker, rc)
	tracker.Start(h)
	if h.PendingFrames() != 0 {
		t.Fatalf("PendingFrames = %d, want 0", h.PendingFrames())
	}
	draws := g.Draws()
	for i := range 5 {
		h.Tick(time.Duration(i) * time.Millisecond)
	}
	if g.Draws() != draws {
		t.Error("gradient redrew without a change")
	}
	if got := rc.count("quad"); got != 2 {
		t.Errorf("quads = %d, want 2", got)
	}

	h.Resize(1000, 700, 1)
	if g.Draws() != draws+1 {
		t.Errorf("draws after resize = %d, want %d", g.Draws(), draws+1)
	}
	q := rc.calls[1].args
	assertNear(t, "lower half top", q[1], 350)
	assertNear(t, "lower half right", q[2], 1000)
}

func TestPageGradientUseLight(t *testing.T) {
	h := NewHost(HostConfig{})
	rc := &recordCanvas{}
	g := NewPageGradient(GradientConfig{UseLight: true})
	g.Mount(h, NewScrollTracker(), rc)
	g.SetProgress(0)
	want := MustHex("#ffe8e2").Color(1)
	if rc.calls[0].color != want {
		t.Errorf("top color = %v, want %v", rc.calls[0].color, want)
	}
}

func TestPageGradientWithoutCanvas(t *testing.T) {
	h := NewHost(HostConfig{})
	tracker := NewScrollTracker()
	g := NewPageGradient(GradientConfig{})
	if g.Mount(h, tracker, failSurface{}) {
		t.Fatal("Mount should report no canvas")
	}
	tracker.Start(h)
	if _, ok := h.Style().Get("--sunset-mid"); !ok {
		t.Error("variables should be written without a canvas")
	}
	if g.Draws() != 0 {
		t.Errorf("Draws = %d, want 0", g.Draws())
	}
	g.Unmount()
	if h.ListenerCount(EventResize) != 1 {
		// Only the tracker's own listener remains.
		t.Errorf("resize listeners = %d, want 1", h.ListenerCount(EventResize))
	}
}
