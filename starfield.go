package backdrop

import (
	"math"
	"math/rand/v2"
	"time"
)

// Star is a Particle with a sinusoidal twinkle.
type Star struct {
	Particle
	// TwinkleSpeed is in radians per millisecond.
	TwinkleSpeed float64
	TwinklePhase float64
}

// StarfieldConfig controls a Starfield. Zero fields take the defaults noted
// on each field.
type StarfieldConfig struct {
	// DesktopCount is the star count for desktop hosts. Default 150.
	DesktopCount int `yaml:"desktopCount"`
	// MobileCount is the star count for mobile hosts. Default 40.
	MobileCount int `yaml:"mobileCount"`
	// Layers is the number of depth buckets. Default 3.
	Layers int `yaml:"layers"`
	// DisableParallax turns off the pointer parallax offset.
	DisableParallax bool `yaml:"disableParallax"`
	// ParallaxStrength scales the pointer offset per layer. Default 0.004.
	ParallaxStrength float64 `yaml:"parallaxStrength"`
	// HeartThreshold is the scroll progress at which the stars gather into
	// the heart. Default 0.98.
	HeartThreshold float64 `yaml:"heartThreshold"`
	// HeartMorphSpeed is the morph step per frame. Default 0.06.
	HeartMorphSpeed float64 `yaml:"heartMorphSpeed"`
	// WrapMargin is the toroidal wrap margin. Default 20.
	WrapMargin float64 `yaml:"wrapMargin"`
	// Seed seeds the star generator; zero picks a random seed.
	Seed uint64 `yaml:"seed"`
}

func (cfg StarfieldConfig) withDefaults() StarfieldConfig {
	if cfg.DesktopCount <= 0 {
		cfg.DesktopCount = 150
	}
	if cfg.MobileCount <= 0 {
		cfg.MobileCount = 40
	}
	if cfg.Layers <= 0 {
		cfg.Layers = 3
	}
	if cfg.ParallaxStrength <= 0 {
		cfg.ParallaxStrength = 0.004
	}
	if cfg.HeartThreshold <= 0 {
		cfg.HeartThreshold = 0.98
	}
	if cfg.HeartMorphSpeed <= 0 {
		cfg.HeartMorphSpeed = 0.06
	}
	if cfg.WrapMargin <= 0 {
		cfg.WrapMargin = 20
	}
	return cfg
}

// Star palette: mostly white, some cool blue, a few warm.
var (
	starWarm  = MustHex("#FFD8A8")
	starCool  = MustHex("#BFD8FF")
	starWhite = MustHex("#ffffff")
)

// morphEpsilon snaps the morph scalar to its bounds so repeated float steps
// land exactly on 0 and 1.
const morphEpsilon = 1e-9

// HeartTarget returns the point for star i of total on the parametric heart
// curve, scaled to 40% of the smaller viewport side and centred slightly
// above the middle.
func HeartTarget(i, total int, width, height float64) Vec2 {
	if total <= 0 {
		total = 1
	}
	t := float64(i) / float64(total) * 2 * math.Pi
	x := 16 * math.Pow(math.Sin(t), 3)
	y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
	scale := min(width, height) * 0.4
	cx := width / 2
	cy := height/2 - scale*0.08
	return Vec2{cx + x/32*scale, cy - y/32*scale}
}

// Starfield is a layered field of twinkling stars that gathers into a heart
// when the page is scrolled to the bottom and scatters again when it is
// scrolled back.
type Starfield struct {
	config StarfieldConfig
	rng    *rand.Rand
	stars  []Star

	progress     float64
	morph        float64
	heartDesired bool
	// docked is set once morph reaches 1 and cleared when it returns to 0;
	// drift is suspended while it is set.
	docked bool

	host      *Host
	canvas    Canvas
	width     float64
	height    float64
	loop      frameLoop
	resizeID  ListenerID
	pointerID ListenerID
	static    bool
	// pointer is the last pointer position seen by the listener; it stays at
	// the viewport centre when no listener is registered.
	pointer Vec2

	stats frameStats
}

// NewStarfield creates an unmounted starfield.
func NewStarfield(cfg StarfieldConfig) *Starfield {
	cfg = cfg.withDefaults()
	return &Starfield{
		config: cfg,
		rng:    newRand(cfg.Seed),
	}
}

// Config returns the effective configuration.
func (s *Starfield) Config() StarfieldConfig {
	return s.config
}

// Mount acquires a drawing context from surf and starts animating. It
// returns false, and does nothing further, if surf cannot produce one.
//
// Under reduced motion no frame callback is requested and no pointer
// listener is added: the stars are drawn once and redrawn only on resize.
func (s *Starfield) Mount(h *Host, surf Surface) bool {
	s.Unmount()
	c := acquire(surf)
	if c == nil {
		return false
	}
	s.host = h
	s.canvas = c
	s.static = h.ReducedMotion()
	s.resize()
	s.resizeID = h.AddListener(EventResize, s.onResize)
	if s.static {
		s.Draw(h.Now())
		return true
	}
	if !s.config.DisableParallax {
		s.pointerID = h.AddListener(EventPointerMove, s.onPointer)
	}
	s.loop.start(h, s.frame)
	return true
}

// Unmount cancels the frame callback and removes listeners.
func (s *Starfield) Unmount() {
	s.loop.stop()
	if s.host != nil {
		s.host.RemoveListener(s.resizeID)
		s.host.RemoveListener(s.pointerID)
	}
	s.resizeID, s.pointerID = 0, 0
	s.host = nil
	s.canvas = nil
}

// Mounted reports whether the starfield holds a drawing context.
func (s *Starfield) Mounted() bool {
	return s.canvas != nil
}

// SetProgress stores the latest scroll progress. The morph reads it on the
// next frame.
func (s *Starfield) SetProgress(raw float64) {
	s.progress = raw
}

// Morph returns the blend between drift (0) and heart (1).
func (s *Starfield) Morph() float64 {
	return s.morph
}

// HeartDesired reports whether the last frame saw progress at or past the
// heart threshold.
func (s *Starfield) HeartDesired() bool {
	return s.heartDesired
}

// Stars returns the live stars. The returned slice MUST NOT be resized.
func (s *Starfield) Stars() []Star {
	return s.stars
}

// Frames returns how many animation frames have run since Mount.
func (s *Starfield) Frames() int {
	return s.loop.frames
}

func (s *Starfield) onPointer() {
	s.pointer = s.host.Pointer()
}

func (s *Starfield) onResize() {
	s.resize()
	if s.static {
		s.Draw(s.host.Now())
	}
}

func (s *Starfield) resize() {
	s.width, s.height = s.host.Width(), s.host.Height()
	if s.pointerID == 0 {
		s.pointer = Vec2{s.width / 2, s.height / 2}
	}
	s.canvas.Resize(s.width, s.height, max(1, s.host.DevicePixelRatio()))
	s.Reset(s.width, s.height, s.host.Mobile())
}

// Reset regenerates every star over a width x height area. The morph
// scalar is kept, so a resize at the bottom of the page re-forms the heart.
func (s *Starfield) Reset(width, height float64, mobile bool) {
	s.width, s.height = width, height
	n := s.config.DesktopCount
	if mobile {
		n = s.config.MobileCount
	}
	s.stars = s.stars[:0]
	for i := range n {
		layer := s.rng.IntN(s.config.Layers)
		depth := float64(layer + 1)
		st := Star{
			Particle: Particle{
				X:      s.rng.Float64() * width,
				Y:      s.rng.Float64() * height,
				VX:     (s.rng.Float64() - 0.5) * 0.02 * depth,
				VY:     (s.rng.Float64() - 0.5) * 0.02 * depth,
				Alpha:  0.5 + s.rng.Float64()*0.5,
				Radius: s.rng.Float64()*1.2*depth + 0.3,
				Layer:  layer,
				Color:  s.pickColor(),
			},
			TwinkleSpeed: 0.001 + s.rng.Float64()*0.007,
			TwinklePhase: s.rng.Float64() * 2 * math.Pi,
		}
		st.StartX, st.StartY = st.X, st.Y
		if s.docked {
			t := HeartTarget(i, n, width, height)
			st.X, st.Y = t.X, t.Y
		}
		s.stars = append(s.stars, st)
	}
}

func (s *Starfield) pickColor() RGB {
	if s.rng.Float64() > 0.94 {
		return starWarm
	}
	if s.rng.Float64() > 0.7 {
		return starCool
	}
	return starWhite
}

func (s *Starfield) frame(now time.Duration) {
	var t0 time.Time
	debug := s.host != nil && s.host.debug
	if debug {
		t0 = time.Now()
	}
	s.Step()
	if debug {
		s.stats.stepTime = time.Since(t0)
		t0 = time.Now()
	}
	s.Draw(now)
	if debug {
		s.stats.drawTime = time.Since(t0)
		s.stats.particles = len(s.stars)
		s.stats.morph = s.morph
		debugLog("starfield", s.stats)
	}
}

// Step advances the morph toward the heart or away from it, then drifts the
// stars unless they are docked on the heart.
func (s *Starfield) Step() {
	desired := s.progress >= s.config.HeartThreshold
	if desired && !s.heartDesired {
		s.snapshot()
	}
	s.heartDesired = desired

	prev := s.morph
	s.morph = stepMorph(s.morph, desired, s.config.HeartMorphSpeed)
	if s.morph == 1 {
		s.docked = true
	}
	if s.morph == 0 && prev > 0 {
		// Resume drift from where the star is drawn, not from the heart.
		for i := range s.stars {
			st := &s.stars[i]
			st.X, st.Y = st.StartX, st.StartY
		}
		s.docked = false
	}

	m := s.config.WrapMargin
	n := len(s.stars)
	for i := range s.stars {
		st := &s.stars[i]
		if s.docked {
			t := HeartTarget(i, n, s.width, s.height)
			st.X, st.Y = t.X, t.Y
			continue
		}
		depth := float64(st.Layer + 1)
		st.X = wrap(st.X+st.VX*depth, s.width, m)
		st.Y = wrap(st.Y+st.VY*depth, s.height, m)
	}
}

// snapshot records each star's drawn position as its morph origin. Mid-morph
// the drawn position already lies on the origin→target segment, so the
// existing origin is kept and the path stays continuous.
func (s *Starfield) snapshot() {
	if s.morph > 0 {
		return
	}
	for i := range s.stars {
		st := &s.stars[i]
		st.StartX, st.StartY = st.X, st.Y
	}
}

// stepMorph moves m one step toward 1 if desired, else toward 0.
func stepMorph(m float64, desired bool, speed float64) float64 {
	if desired {
		if m < 1 {
			m = min(1, m+speed)
			if 1-m < morphEpsilon {
				m = 1
			}
		}
		return m
	}
	if m > 0 {
		m = max(0, m-speed)
		if m < morphEpsilon {
			m = 0
		}
	}
	return m
}

// DrawnPosition returns where star i is drawn, before parallax.
func (s *Starfield) DrawnPosition(i int) Vec2 {
	st := &s.stars[i]
	if s.morph <= 0 {
		return Vec2{st.X, st.Y}
	}
	t := HeartTarget(i, len(s.stars), s.width, s.height)
	return Vec2{lerp(st.StartX, t.X, s.morph), lerp(st.StartY, t.Y, s.morph)}
}

// ParallaxOffset returns the draw-time offset for a star on layer.
func (s *Starfield) ParallaxOffset(layer int) Vec2 {
	if s.config.DisableParallax {
		return Vec2{}
	}
	k := s.config.ParallaxStrength * float64(layer+1)
	return Vec2{(s.pointer.X - s.width/2) * k, (s.pointer.Y - s.height/2) * k}
}

// Draw clears the canvas and draws every star as an additive glow. now
// drives the twinkle.
func (s *Starfield) Draw(now time.Duration) {
	c := s.canvas
	if c == nil {
		return
	}
	c.Clear()
	ms := float64(now) / float64(time.Millisecond)
	for i := range s.stars {
		st := &s.stars[i]
		tw := math.Sin(ms*st.TwinkleSpeed+st.TwinklePhase)*0.25 + 0.75
		pos := s.DrawnPosition(i)
		off := s.ParallaxOffset(st.Layer)
		r := max(1, st.Radius*6)
		c.Glow(pos.X+off.X, pos.Y+off.Y, r, 0.6, st.Color.Color(min(1, st.Alpha*tw)), BlendAdd)
	}
}
