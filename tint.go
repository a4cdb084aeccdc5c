package backdrop

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// Section color style variables.
const (
	HueVar        = "--h"
	SaturationVar = "--s"
	LightnessVar  = "--l"
)

// Section color defaults.
const (
	DefaultHueStart   = 270
	DefaultHueEnd     = 140
	DefaultSaturation = 78
	DefaultLightness  = 22
)

// Section is one vertical block of the page that gets its own color
// variables and tinted overlay.
type Section struct {
	ID      string
	Variant Variant
	// Top and Height are in document coordinates.
	Top, Height float64

	HueStart, HueEnd      float64
	Saturation, Lightness float64

	// Style holds the section's --h, --s and --l.
	Style StyleVars

	target [3]float64 // hue, saturation, lightness
	shown  [3]float64
	tween  *TweenGroup
	seen   bool
}

// NewSection creates a section with the default hue sweep.
func NewSection(id string, top, height float64) *Section {
	return &Section{
		ID:         id,
		Variant:    VariantDefault,
		Top:        top,
		Height:     height,
		HueStart:   DefaultHueStart,
		HueEnd:     DefaultHueEnd,
		Saturation: DefaultSaturation,
		Lightness:  DefaultLightness,
	}
}

// Progress returns how far the section's top has travelled up the viewport:
// 0 with the top at the viewport bottom, 1 once it reaches the viewport top.
func (s *Section) Progress(scrollY, viewportHeight float64) float64 {
	top := s.Top - scrollY
	return clamp01(1 - top/max(viewportHeight, 1))
}

// ColorAt returns the rounded hue, saturation and lightness for the section
// at the given scroll offset.
func (s *Section) ColorAt(scrollY, viewportHeight float64) (hue, sat, light int) {
	p := s.Progress(scrollY, viewportHeight)
	hue = int(math.Round(s.HueStart + (s.HueEnd-s.HueStart)*p))
	sat = int(math.Round(s.Saturation))
	light = int(math.Round(s.Lightness - min(8, p*12)))
	return hue, sat, light
}

// Shown returns the overlay color currently displayed, which trails the
// target during a transition.
func (s *Section) Shown() (hue, sat, light float64) {
	return s.shown[0], s.shown[1], s.shown[2]
}

// OverlayColors returns the two ends of the 135° overlay gradient for the
// given hue, saturation and lightness.
func OverlayColors(hue, sat, light float64) (from, to Color) {
	return HSL(hue, sat, light, 0.95), HSL(hue+40, sat, light-12, 0.66)
}

// SectionConfig is the YAML form of a Section. Nil color fields take the
// defaults.
type SectionConfig struct {
	ID         string   `yaml:"id"`
	Variant    Variant  `yaml:"variant"`
	Top        float64  `yaml:"top"`
	Height     float64  `yaml:"height"`
	HueStart   *float64 `yaml:"hueStart"`
	HueEnd     *float64 `yaml:"hueEnd"`
	Saturation *float64 `yaml:"saturation"`
	Lightness  *float64 `yaml:"lightness"`
}

// Section builds a Section from the config.
func (cfg SectionConfig) Section() *Section {
	s := NewSection(cfg.ID, cfg.Top, cfg.Height)
	if cfg.Variant != "" {
		s.Variant = cfg.Variant
	}
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&s.HueStart, cfg.HueStart)
	set(&s.HueEnd, cfg.HueEnd)
	set(&s.Saturation, cfg.Saturation)
	set(&s.Lightness, cfg.Lightness)
	return s
}

// DefaultTintTransition is how long a section overlay takes to reach a new
// color.
const DefaultTintTransition = 420 * time.Millisecond

// SectionColorTinter keeps each section's color variables in step with the
// scroll position and draws the tinted section overlays.
type SectionColorTinter struct {
	sections   []*Section
	transition time.Duration

	host        *Host
	unsubscribe func()
	resizeID    ListenerID
	canvas      Canvas
	loop        frameLoop
	last        time.Duration
	static      bool
}

// NewSectionColorTinter creates an unmounted tinter for sections.
func NewSectionColorTinter(sections ...*Section) *SectionColorTinter {
	return &SectionColorTinter{sections: sections, transition: DefaultTintTransition}
}

// SetTransition changes the overlay transition time. Zero or less snaps.
func (t *SectionColorTinter) SetTransition(d time.Duration) {
	t.transition = d
}

// Sections returns the tinted sections.
func (t *SectionColorTinter) Sections() []*Section {
	return t.sections
}

// Mount subscribes to tracker and, if surf yields a canvas, starts drawing
// overlays. Color variables are maintained either way. Mount reports whether
// a canvas was acquired.
func (t *SectionColorTinter) Mount(h *Host, tracker *ScrollTracker, surf Surface) bool {
	t.Unmount()
	t.host = h
	t.static = h.ReducedMotion()
	t.canvas = acquire(surf)
	if t.canvas != nil {
		t.canvas.Resize(h.Width(), h.Height(), max(1, h.DevicePixelRatio()))
		t.resizeID = h.AddListener(EventResize, t.onResize)
	}
	t.unsubscribe = tracker.Subscribe(func(ScrollProgress) { t.update() })
	if t.canvas == nil {
		return false
	}
	t.Draw()
	if !t.static {
		t.last = h.Now()
		t.loop.start(h, t.frame)
	}
	return true
}

// Unmount stops drawing and drops the subscription. Overlays still in
// transition jump to their target.
func (t *SectionColorTinter) Unmount() {
	t.loop.stop()
	for _, s := range t.sections {
		s.tween.Finish()
		s.tween = nil
	}
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
	if t.host != nil {
		t.host.RemoveListener(t.resizeID)
	}
	t.resizeID = 0
	t.canvas = nil
	t.host = nil
}

func (t *SectionColorTinter) onResize() {
	t.canvas.Resize(t.host.Width(), t.host.Height(), max(1, t.host.DevicePixelRatio()))
	if t.static {
		t.Draw()
	}
}

// update writes every section's variables and retargets its overlay.
func (t *SectionColorTinter) update() {
	if t.host == nil {
		return
	}
	sy, vh := t.host.ScrollY(), t.host.Height()
	for _, s := range t.sections {
		hue, sat, light := s.ColorAt(sy, vh)
		s.Style.SetInt(HueVar, hue)
		s.Style.SetInt(SaturationVar, sat)
		s.Style.SetInt(LightnessVar, light)

		target := [3]float64{float64(hue), float64(sat), float64(light)}
		if s.seen && target == s.target {
			continue
		}
		s.target = target
		if !s.seen || t.static || t.transition <= 0 {
			s.seen = true
			s.shown = target
			s.tween = nil
			continue
		}
		s.tween = TweenValues(
			[]*float64{&s.shown[0], &s.shown[1], &s.shown[2]},
			target[:],
			float32(t.transition.Seconds()), ease.Linear)
	}
	if t.static {
		t.Draw()
	}
}

func (t *SectionColorTinter) frame(now time.Duration) {
	dt := float32((now - t.last).Seconds())
	t.last = now
	for _, s := range t.sections {
		if s.tween == nil {
			continue
		}
		s.tween.Update(dt)
		if s.tween.Done {
			s.tween = nil
		}
	}
	t.Draw()
}

// Draw clears the canvas and fills every on-screen section with its overlay
// gradient, running from the top-left corner to the bottom-right.
func (t *SectionColorTinter) Draw() {
	c := t.canvas
	if c == nil || t.host == nil {
		return
	}
	c.Clear()
	w, vh, sy := t.host.Width(), t.host.Height(), t.host.ScrollY()
	for _, s := range t.sections {
		top := s.Top - sy
		if top > vh || top+s.Height < 0 {
			continue
		}
		from, to := OverlayColors(s.shown[0], s.shown[1], s.shown[2])
		mid := Color{
			R: lerp(from.R, to.R, 0.5),
			G: lerp(from.G, to.G, 0.5),
			B: lerp(from.B, to.B, 0.5),
			A: lerp(from.A, to.A, 0.5),
		}
		c.FillQuad(rectQuad(0, top, w, s.Height), [4]Color{from, mid, to, mid})
	}
}
