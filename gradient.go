package backdrop

// Page gradient style variables, top to bottom.
var (
	SunsetVars      = [3]string{"--sunset-top", "--sunset-mid", "--sunset-bottom"}
	SunsetLightVars = [3]string{"--sunset-top-light", "--sunset-mid-light", "--sunset-bottom-light"}
)

// GradientConfig controls a PageGradient. Nil stops take the defaults.
type GradientConfig struct {
	// Gamma shapes raw progress before it becomes the warm factor.
	// Default 0.65.
	Gamma float64 `yaml:"gamma"`
	// MaxWarmth caps the warm factor. Default 0.18.
	MaxWarmth float64 `yaml:"maxWarmth"`
	// Dark and DarkWarm are the dark theme stops at the top and bottom of
	// the page.
	Dark     *[3]RGB `yaml:"dark"`
	DarkWarm *[3]RGB `yaml:"darkWarm"`
	// Light and LightWarm are the light theme stops.
	Light     *[3]RGB `yaml:"light"`
	LightWarm *[3]RGB `yaml:"lightWarm"`
	// UseLight draws the light stops instead of the dark ones.
	UseLight bool `yaml:"useLight"`
}

func (cfg GradientConfig) withDefaults() GradientConfig {
	if cfg.Gamma <= 0 {
		cfg.Gamma = 0.65
	}
	if cfg.MaxWarmth <= 0 {
		cfg.MaxWarmth = 0.18
	}
	stops := func(dst **[3]RGB, a, b, c string) {
		if *dst == nil {
			*dst = &[3]RGB{MustHex(a), MustHex(b), MustHex(c)}
		}
	}
	stops(&cfg.Dark, "#1a1030", "#2a1448", "#d46c92")
	stops(&cfg.DarkWarm, "#241a47", "#3a1f5c", "#ff86a8")
	stops(&cfg.Light, "#ffe8e2", "#ffd0dc", "#ffafc8")
	stops(&cfg.LightWarm, "#ffdcd2", "#ffc1d6", "#ff98b9")
	return cfg
}

// PageGradient is the vertical three-stop page background that warms
// slightly as the page is scrolled.
type PageGradient struct {
	config GradientConfig
	factor float64
	dark   [3]RGB
	light  [3]RGB

	host        *Host
	unsubscribe func()
	resizeID    ListenerID
	canvas      Canvas
	draws       int
}

// NewPageGradient creates an unmounted gradient at zero warmth.
func NewPageGradient(cfg GradientConfig) *PageGradient {
	cfg = cfg.withDefaults()
	return &PageGradient{config: cfg, dark: *cfg.Dark, light: *cfg.Light}
}

// WarmFactor returns the blend toward the warm stops for raw progress.
func (g *PageGradient) WarmFactor(raw float64) float64 {
	return min(g.config.MaxWarmth, Ease(raw, g.config.Gamma)*g.config.MaxWarmth)
}

// Factor returns the current warm factor.
func (g *PageGradient) Factor() float64 { return g.factor }

// Stops returns the current dark and light stops.
func (g *PageGradient) Stops() (dark, light [3]RGB) { return g.dark, g.light }

// Draws returns how many times the gradient has been drawn.
func (g *PageGradient) Draws() int { return g.draws }

// Mount subscribes to tracker and draws into surf when it yields a canvas.
// The sunset variables are written either way. The gradient only redraws
// when progress or the viewport changes, so it has no frame loop.
func (g *PageGradient) Mount(h *Host, tracker *ScrollTracker, surf Surface) bool {
	g.Unmount()
	g.host = h
	g.canvas = acquire(surf)
	if g.canvas != nil {
		g.canvas.Resize(h.Width(), h.Height(), max(1, h.DevicePixelRatio()))
		g.resizeID = h.AddListener(EventResize, g.onResize)
	}
	g.unsubscribe = tracker.Subscribe(g.onProgress)
	return g.canvas != nil
}

// Unmount drops the subscription and listener.
func (g *PageGradient) Unmount() {
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
	if g.host != nil {
		g.host.RemoveListener(g.resizeID)
	}
	g.resizeID = 0
	g.canvas = nil
	g.host = nil
}

func (g *PageGradient) onProgress(p ScrollProgress) {
	g.SetProgress(p.Raw)
}

// SetProgress recomputes the stops for raw progress, writes the sunset
// variables to the host and redraws.
func (g *PageGradient) SetProgress(raw float64) {
	g.factor = g.WarmFactor(raw)
	for i := range g.dark {
		g.dark[i] = Mix(g.config.Dark[i], g.config.DarkWarm[i], g.factor)
		g.light[i] = Mix(g.config.Light[i], g.config.LightWarm[i], g.factor)
	}
	if g.host != nil {
		st := g.host.Style()
		for i := range g.dark {
			st.Set(SunsetVars[i], g.dark[i].Hex())
			st.Set(SunsetLightVars[i], g.light[i].Hex())
		}
	}
	g.Draw()
}

func (g *PageGradient) onResize() {
	g.canvas.Resize(g.host.Width(), g.host.Height(), max(1, g.host.DevicePixelRatio()))
	g.Draw()
}

// Draw fills the canvas with the current stops, top to middle and middle to
// bottom.
func (g *PageGradient) Draw() {
	c := g.canvas
	if c == nil {
		return
	}
	stops := g.dark
	if g.config.UseLight {
		stops = g.light
	}
	w, h := c.Size()
	top, mid, bot := stops[0].Color(1), stops[1].Color(1), stops[2].Color(1)
	c.Clear()
	c.FillQuad(rectQuad(0, 0, w, h/2), [4]Color{top, top, mid, mid})
	c.FillQuad(rectQuad(0, h/2, w, h/2), [4]Color{mid, mid, bot, bot})
	g.draws++
}
