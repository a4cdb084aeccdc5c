package backdrop

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

// captureStderr runs fn and returns what it wrote to stderr. Output must fit
// in the pipe buffer.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestDebugLogFormat(t *testing.T) {
	out := captureStderr(t, func() {
		debugLog("starfield", frameStats{
			stepTime:    2 * time.Millisecond,
			drawTime:    3 * time.Millisecond,
			particles:   150,
			connections: 0,
			morph:       0.5,
		})
	})
	for _, want := range []string{
		"[backdrop] starfield step: 2ms | draw: 3ms | total: 5ms",
		"particles: 150",
		"morph: 0.500",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDebugScrollLogFormat(t *testing.T) {
	out := captureStderr(t, func() { debugScrollLog(1, 1.6, 0.9) })
	want := "[backdrop] scroll raw: 1.000 | intensity: 1.600 | glass: 0.900\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestDebugModeLogsFrames(t *testing.T) {
	h := NewHost(HostConfig{Width: 1280, Height: 800, DocumentHeight: 2400})
	h.SetDebugMode(true)
	tracker := NewScrollTracker()
	c := NewComposer(ComposerConfig{Field: FieldConfig{Seed: 1}})
	s := NewStarfield(StarfieldConfig{Seed: 1})

	out := captureStderr(t, func() {
		c.Mount(h, tracker, &recordCanvas{}, &recordCanvas{}, &recordCanvas{})
		s.Mount(h, &recordCanvas{})
		tracker.Start(h)
		h.Tick(16 * time.Millisecond)
	})
	for _, want := range []string{"[backdrop] field step:", "[backdrop] starfield particles: 150", "[backdrop] scroll raw:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReleaseModeIsQuiet(t *testing.T) {
	h := NewHost(HostConfig{})
	f := NewParticleField(FieldConfig{Seed: 1})
	out := captureStderr(t, func() {
		f.Mount(h, &recordCanvas{})
		h.Tick(time.Millisecond)
	})
	if out != "" {
		t.Errorf("release mode wrote %q", out)
	}
}
