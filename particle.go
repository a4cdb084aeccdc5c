package backdrop

import (
	"math"
	"math/rand/v2"
	"time"
)

// Particle holds per-particle simulation state shared by ParticleField and
// Starfield.
type Particle struct {
	X, Y       float64
	VX, VY     float64
	Alpha      float64 // twinkle brightness
	AlphaDelta float64 // twinkle step per frame; sign is the direction
	Radius     float64
	Layer      int // depth bucket; 0 is the deepest
	Color      RGB
	// StartX and StartY are the morph origin, recorded when a morph begins.
	StartX, StartY float64
}

// FieldConfig controls how a ParticleField spawns and renders particles.
// Zero fields take the defaults noted on each field.
type FieldConfig struct {
	// DesktopCount is the particle count for desktop hosts. Default 140.
	DesktopCount int `yaml:"desktopCount"`
	// MobileCount is the particle count for mobile hosts. Default 60.
	MobileCount int `yaml:"mobileCount"`
	// Velocity is the per-axis drift range in pixels per frame. Default ±0.08.
	Velocity Range `yaml:"velocity"`
	// Alpha is the initial twinkle brightness range. Default [0.35, 1].
	Alpha Range `yaml:"alpha"`
	// AlphaDelta is the twinkle step range per frame. Default ±0.01.
	AlphaDelta Range `yaml:"alphaDelta"`
	// Radius is the node radius range. Default [0.6, 2.4].
	Radius Range `yaml:"radius"`
	// MinAlpha is the twinkle floor at intensity 1. Default 0.18.
	MinAlpha float64 `yaml:"minAlpha"`
	// WrapMargin is how far past an edge a particle travels before it
	// reappears on the opposite edge. Default 20.
	WrapMargin float64 `yaml:"wrapMargin"`
	// ConnectDistance is the base connection distance. Default 160.
	ConnectDistance float64 `yaml:"connectDistance"`
	// MaxDPR caps the device pixel ratio of the backing canvas. Default 2.
	MaxDPR float64 `yaml:"maxDPR"`
	// Color is the node and line color. Default white.
	Color *RGB `yaml:"color"`
	// Overlay darkens the whole field before particles are drawn.
	// Default rgba(6, 10, 30, 0.99).
	Overlay *Color `yaml:"overlay"`
	// GridThreshold is the particle count above which connections are found
	// through a spatial grid instead of checking every pair. Default 200.
	GridThreshold int `yaml:"gridThreshold"`
	// Seed seeds the particle generator; zero picks a random seed.
	Seed uint64 `yaml:"seed"`
}

func (cfg FieldConfig) withDefaults() FieldConfig {
	if cfg.DesktopCount <= 0 {
		cfg.DesktopCount = 140
	}
	if cfg.MobileCount <= 0 {
		cfg.MobileCount = 60
	}
	if cfg.Velocity == (Range{}) {
		cfg.Velocity = Range{-0.08, 0.08}
	}
	if cfg.Alpha == (Range{}) {
		cfg.Alpha = Range{0.35, 1}
	}
	if cfg.AlphaDelta == (Range{}) {
		cfg.AlphaDelta = Range{-0.01, 0.01}
	}
	if cfg.Radius == (Range{}) {
		cfg.Radius = Range{0.6, 2.4}
	}
	if cfg.MinAlpha <= 0 {
		cfg.MinAlpha = 0.18
	}
	if cfg.WrapMargin <= 0 {
		cfg.WrapMargin = 20
	}
	if cfg.ConnectDistance <= 0 {
		cfg.ConnectDistance = 160
	}
	if cfg.MaxDPR <= 0 {
		cfg.MaxDPR = 2
	}
	if cfg.Color == nil {
		white := RGB{255, 255, 255}
		cfg.Color = &white
	}
	if cfg.Overlay == nil {
		overlay := Color{R: 6.0 / 255, G: 10.0 / 255, B: 30.0 / 255, A: 0.99}
		cfg.Overlay = &overlay
	}
	if cfg.GridThreshold <= 0 {
		cfg.GridThreshold = 200
	}
	return cfg
}

// MinAlpha returns the twinkle floor for the given base floor and intensity.
func MinAlpha(base, intensity float64) float64 {
	return base * max(0.5, intensity)
}

// MaxConnectDistance returns the connection distance at intensity.
func MaxConnectDistance(base, intensity float64) float64 {
	return base * (0.8 + 0.6*intensity)
}

// LineWidth returns the connection stroke width at intensity.
func LineWidth(intensity float64) float64 {
	return 0.7 + 0.6*intensity
}

// LineAlpha returns the opacity of a connection between particles with
// brightness a1 and a2 at distance d. Visible lines never drop below 0.02.
func LineAlpha(a1, a2, d, maxDist, intensity float64) float64 {
	t := 1 - d/maxDist
	return clamp(max(0.02, (a1+a2)*0.18*t*min(1, intensity)), 0, 1)
}

// NodeRadius returns the drawn radius of a node.
func NodeRadius(radius, alpha, intensity float64) float64 {
	return radius * (0.8 + alpha*1.2) * (0.7 + intensity*0.9)
}

// NodeGlow returns the glow spread drawn around a node.
func NodeGlow(alpha, intensity float64) float64 {
	return 6 * alpha * (0.8 + intensity)
}

// ParticleField is a network of drifting, twinkling particles joined by
// lines when they come close. It owns its canvas and its frame callback.
type ParticleField struct {
	config    FieldConfig
	rng       *rand.Rand
	particles []Particle
	intensity float64

	host     *Host
	canvas   Canvas
	width    float64
	height   float64
	loop     frameLoop
	resizeID ListenerID
	static   bool

	grid  pairGrid
	stats frameStats
}

// NewParticleField creates an unmounted field.
func NewParticleField(cfg FieldConfig) *ParticleField {
	cfg = cfg.withDefaults()
	return &ParticleField{
		config:    cfg,
		rng:       newRand(cfg.Seed),
		intensity: 1,
	}
}

// Config returns the effective configuration.
func (f *ParticleField) Config() FieldConfig {
	return f.config
}

// Mount acquires a drawing context from s, sizes it to h's viewport and
// starts the frame loop. If s cannot produce a context the field stays
// unmounted, does no per-frame work, and Mount returns false.
//
// Under reduced motion the field is drawn once and only redrawn on resize.
func (f *ParticleField) Mount(h *Host, s Surface) bool {
	f.Unmount()
	c := acquire(s)
	if c == nil {
		return false
	}
	f.host = h
	f.canvas = c
	f.static = h.ReducedMotion()
	f.resize()
	f.resizeID = h.AddListener(EventResize, f.onResize)
	if f.static {
		f.Draw()
	} else {
		f.loop.start(h, f.frame)
	}
	return true
}

// Unmount cancels the frame callback and removes listeners. Safe to call on
// an unmounted field.
func (f *ParticleField) Unmount() {
	f.loop.stop()
	if f.host != nil {
		f.host.RemoveListener(f.resizeID)
	}
	f.resizeID = 0
	f.host = nil
	f.canvas = nil
}

// Mounted reports whether the field holds a drawing context.
func (f *ParticleField) Mounted() bool {
	return f.canvas != nil
}

// SetIntensity sets the scalar that scales twinkle floor, connection
// distance, line opacity and node glow. It takes effect on the next frame.
func (f *ParticleField) SetIntensity(v float64) {
	f.intensity = v
}

// Intensity returns the current intensity.
func (f *ParticleField) Intensity() float64 {
	return f.intensity
}

// Particles returns the live particles. The returned slice MUST NOT be
// resized.
func (f *ParticleField) Particles() []Particle {
	return f.particles
}

// Frames returns how many animation frames have run since Mount.
func (f *ParticleField) Frames() int {
	return f.loop.frames
}

// Connections returns the number of lines drawn by the last Draw.
func (f *ParticleField) Connections() int {
	return f.stats.connections
}

func (f *ParticleField) onResize() {
	f.resize()
	if f.static {
		f.Draw()
	}
}

// resize sizes the canvas to the viewport and regenerates every particle.
func (f *ParticleField) resize() {
	f.width, f.height = f.host.Width(), f.host.Height()
	f.canvas.Resize(f.width, f.height, clamp(f.host.DevicePixelRatio(), 1, f.config.MaxDPR))
	f.Reset(f.width, f.height, f.host.Mobile())
}

// Reset clears the field and spawns a fresh particle set over a width x
// height area. mobile selects the reduced count.
func (f *ParticleField) Reset(width, height float64, mobile bool) {
	f.width, f.height = width, height
	n := f.config.DesktopCount
	if mobile {
		n = f.config.MobileCount
	}
	f.particles = f.particles[:0]
	minA := MinAlpha(f.config.MinAlpha, f.intensity)
	for range n {
		p := Particle{
			X:          f.rng.Float64() * width,
			Y:          f.rng.Float64() * height,
			VX:         f.config.Velocity.Random(f.rng),
			VY:         f.config.Velocity.Random(f.rng),
			Alpha:      f.config.Alpha.Random(f.rng),
			AlphaDelta: f.config.AlphaDelta.Random(f.rng),
			Radius:     f.config.Radius.Random(f.rng),
			Color:      *f.config.Color,
		}
		p.Alpha = clamp(p.Alpha, minA, 1)
		p.StartX, p.StartY = p.X, p.Y
		f.particles = append(f.particles, p)
	}
}

func (f *ParticleField) frame(time.Duration) {
	var t0 time.Time
	debug := f.host != nil && f.host.debug
	if debug {
		t0 = time.Now()
	}
	f.Step()
	if debug {
		f.stats.stepTime = time.Since(t0)
		t0 = time.Now()
	}
	f.Draw()
	if debug {
		f.stats.drawTime = time.Since(t0)
		f.stats.particles = len(f.particles)
		debugLog("field", f.stats)
	}
}

// Step advances every particle by one frame: drift, toroidal wrap and
// twinkle.
func (f *ParticleField) Step() {
	minA := MinAlpha(f.config.MinAlpha, f.intensity)
	m := f.config.WrapMargin
	for i := range f.particles {
		p := &f.particles[i]
		p.X += p.VX
		p.Y += p.VY
		p.X = wrap(p.X, f.width, m)
		p.Y = wrap(p.Y, f.height, m)
		twinkle(p, minA)
	}
}

// wrap moves v to the opposite edge once it is more than margin outside
// [0, size].
func wrap(v, size, margin float64) float64 {
	if v < -margin {
		return size + margin
	}
	if v > size+margin {
		return -margin
	}
	return v
}

// twinkle steps the particle's alpha and bounces it between floor and 1.
func twinkle(p *Particle, floor float64) {
	p.Alpha += p.AlphaDelta
	if p.Alpha < floor {
		p.Alpha = floor
		p.AlphaDelta = math.Abs(p.AlphaDelta)
	}
	if p.Alpha > 1 {
		p.Alpha = 1
		p.AlphaDelta = -math.Abs(p.AlphaDelta)
	}
}

// ForEachConnection calls fn for every unordered pair of particles closer
// than the current connection distance.
func (f *ParticleField) ForEachConnection(fn func(a, b int, d float64)) {
	maxDist := MaxConnectDistance(f.config.ConnectDistance, f.intensity)
	if len(f.particles) <= f.config.GridThreshold {
		forEachPairBrute(f.particles, maxDist, fn)
		return
	}
	m := f.config.WrapMargin
	f.grid.build(f.particles, maxDist, -m, -m, f.width+m, f.height+m)
	f.grid.forEachPair(f.particles, maxDist, fn)
}

// Draw clears the canvas and redraws the overlay, connections and nodes.
// It does nothing on an unmounted field.
func (f *ParticleField) Draw() {
	c := f.canvas
	if c == nil {
		return
	}
	in := f.intensity
	c.Clear()
	c.FillRect(0, 0, f.width, f.height, *f.config.Overlay)

	maxDist := MaxConnectDistance(f.config.ConnectDistance, in)
	lw := LineWidth(in)
	base := f.config.Color.Color(1)
	f.stats.connections = 0
	f.ForEachConnection(func(a, b int, d float64) {
		pa, pb := &f.particles[a], &f.particles[b]
		c.StrokeLine(pa.X, pa.Y, pb.X, pb.Y, lw, base.WithAlpha(LineAlpha(pa.Alpha, pb.Alpha, d, maxDist, in)))
		f.stats.connections++
	})

	for i := range f.particles {
		p := &f.particles[i]
		r := NodeRadius(p.Radius, p.Alpha, in)
		spread := NodeGlow(p.Alpha, in)
		glowA := clamp01(p.Alpha * 0.9 * in)
		if spread > 0 && glowA > 0 {
			c.Glow(p.X, p.Y, r+spread, r/(r+spread), base.WithAlpha(glowA*0.5), BlendNormal)
		}
		c.FillCircle(p.X, p.Y, r, base.WithAlpha(min(1, p.Alpha*1.1*min(1.4, in))))
	}
}
