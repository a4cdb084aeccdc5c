package backdrop

import "time"

// Z-order of the composer's layers, lowest first.
const (
	ZParticles = 0
	ZNetwork   = 10
	ZDecor     = 20
)

// GlassVar is the root style variable the composer writes the panel glass
// darkness to.
const GlassVar = "--glass-darkness"

// ComposerConfig controls a Composer and the layers it owns.
type ComposerConfig struct {
	Field   FieldConfig   `yaml:"field"`
	Network NetworkConfig `yaml:"network"`
	Decor   DecorConfig   `yaml:"decor"`
	// HideDecor leaves the decor layer out of the stack.
	HideDecor bool `yaml:"hideDecor"`
	// Gamma shapes raw scroll progress before it maps to intensity and
	// glass. Default 0.92.
	Gamma float64 `yaml:"gamma"`
}

func (cfg ComposerConfig) withDefaults() ComposerConfig {
	if cfg.Gamma <= 0 {
		cfg.Gamma = 0.92
	}
	return cfg
}

// Intensity range driven by scroll progress.
const (
	MinIntensity = 0.6
	MaxIntensity = 1.6
)

// Glass darkness range driven by scroll progress.
const (
	MinGlass = 0.48
	MaxGlass = 0.9
)

// IntensityFor maps eased progress to the shared intensity scalar.
func IntensityFor(eased float64) float64 {
	return MinIntensity + (MaxIntensity-MinIntensity)*eased
}

// GlassFor maps eased progress to the glass darkness, clamped to [0, 1].
func GlassFor(eased float64) float64 {
	return clamp01(MinGlass + (MaxGlass-MinGlass)*eased)
}

// Composer stacks a ParticleField, a NetworkLayer and a DecorLayer and
// drives all three from one intensity scalar derived from scroll progress.
// It also publishes the glass darkness style variable.
type Composer struct {
	config  ComposerConfig
	field   *ParticleField
	network *NetworkLayer
	decor   *DecorLayer

	host        *Host
	tracker     *ScrollTracker
	unsubscribe func()
	resizeID    ListenerID
	netCanvas   Canvas
	decorCanvas Canvas
	loop        frameLoop
	last        time.Duration
	static      bool

	intensity float64
	glass     float64
}

// NewComposer creates an unmounted composer and its layers.
func NewComposer(cfg ComposerConfig) *Composer {
	cfg = cfg.withDefaults()
	return &Composer{
		config:    cfg,
		field:     NewParticleField(cfg.Field),
		network:   NewNetworkLayer(cfg.Network),
		decor:     NewDecorLayer(cfg.Decor),
		intensity: 1,
		glass:     MinGlass,
	}
}

// Field returns the particle layer.
func (c *Composer) Field() *ParticleField { return c.field }

// Network returns the network layer.
func (c *Composer) Network() *NetworkLayer { return c.network }

// Decor returns the decor layer.
func (c *Composer) Decor() *DecorLayer { return c.decor }

// Intensity returns the intensity most recently pushed to the layers.
func (c *Composer) Intensity() float64 { return c.intensity }

// Glass returns the glass darkness most recently written.
func (c *Composer) Glass() float64 { return c.glass }

// Mount attaches the composer to h, subscribes to tracker and mounts each
// layer on its surface. A layer whose surface cannot produce a canvas is
// skipped; decor is skipped entirely when HideDecor is set. Mount reports
// whether at least one layer mounted.
func (c *Composer) Mount(h *Host, tracker *ScrollTracker, field, network, decor Surface) bool {
	c.Unmount()
	c.host = h
	c.tracker = tracker
	c.static = h.ReducedMotion()

	ok := c.field.Mount(h, field)
	c.netCanvas = acquire(network)
	if !c.config.HideDecor {
		c.decorCanvas = acquire(decor)
	}
	c.resize()
	ok = ok || c.netCanvas != nil || c.decorCanvas != nil

	c.resizeID = h.AddListener(EventResize, c.onResize)
	c.unsubscribe = tracker.Subscribe(c.onProgress)
	if c.netCanvas != nil || c.decorCanvas != nil {
		c.draw()
		if !c.static {
			c.last = h.Now()
			c.loop.start(h, c.frame)
		}
	}
	return ok
}

// Unmount unmounts every layer, cancels the frame callback and drops the
// subscription and listeners.
func (c *Composer) Unmount() {
	c.field.Unmount()
	c.loop.stop()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if c.host != nil {
		c.host.RemoveListener(c.resizeID)
	}
	c.resizeID = 0
	c.netCanvas, c.decorCanvas = nil, nil
	c.network.attach(nil, 0, 0)
	c.decor.attach(nil, 0, 0)
	c.host, c.tracker = nil, nil
}

func (c *Composer) onProgress(p ScrollProgress) {
	eased := p.Eased(c.config.Gamma)
	c.intensity = 1
	if p.Scrollable {
		c.intensity = IntensityFor(eased)
	}
	c.glass = GlassFor(eased)
	if c.host == nil {
		return
	}
	c.host.Style().SetFloat(GlassVar, c.glass, 3)
	c.field.SetIntensity(c.intensity)
	c.network.SetIntensity(c.intensity)
	c.decor.SetIntensity(c.intensity)
	c.decor.setScroll(c.host.ScrollY())
	if c.host.debug {
		debugScrollLog(p.Raw, c.intensity, c.glass)
	}
	if c.static {
		c.field.Draw()
		c.draw()
	}
}

func (c *Composer) onResize() {
	c.resize()
	if c.static {
		c.draw()
	}
}

func (c *Composer) resize() {
	w, h, dpr := c.host.Width(), c.host.Height(), max(1, c.host.DevicePixelRatio())
	if c.netCanvas != nil {
		c.netCanvas.Resize(w, h, dpr)
	}
	if c.decorCanvas != nil {
		c.decorCanvas.Resize(w, h, dpr)
	}
	c.network.attach(c.netCanvas, w, h)
	c.decor.attach(c.decorCanvas, w, h)
}

func (c *Composer) frame(now time.Duration) {
	dt := now - c.last
	c.last = now
	if dt > 0 {
		c.network.Advance(dt)
	}
	c.draw()
}

func (c *Composer) draw() {
	c.network.Draw()
	c.decor.Draw()
}
