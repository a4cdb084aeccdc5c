package backdrop

// DecorMinWidth is the narrowest viewport that shows decor clusters.
const DecorMinWidth = 1280

// Variant tunes decor density for a kind of page section.
type Variant string

const (
	VariantExperience Variant = "experience"
	VariantProjects   Variant = "projects"
	VariantSkills     Variant = "skills"
	VariantEducation  Variant = "education"
	VariantContact    Variant = "contact"
	VariantDefault    Variant = "default"
)

// Multiplier returns the decor opacity multiplier for v. Unknown variants
// use 0.9.
func (v Variant) Multiplier() float64 {
	switch v {
	case VariantExperience:
		return 1.0
	case VariantProjects:
		return 0.95
	case VariantSkills, VariantContact:
		return 0.9
	case VariantEducation:
		return 0.85
	case VariantDefault, "":
		return 0.92
	}
	return 0.9
}

// DecorOpacity returns the opacity multiplier applied to every cluster of a
// variant at intensity.
func DecorOpacity(v Variant, intensity float64) float64 {
	return v.Multiplier() * clamp(intensity, 0.25, 1.6)
}

// Glyph is a small chart-like drawing used by decor clusters.
type Glyph string

const (
	GlyphBars Glyph = "bars"
	GlyphLine Glyph = "line"
	GlyphDots Glyph = "dots"
)

// DecorPlacement positions one cluster. X is the horizontal offset of the
// glyph centre from the viewport centre in pixels; Y is the vertical position
// as a fraction of the region height.
type DecorPlacement struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Scale   float64 `yaml:"scale"`
	Rotate  float64 `yaml:"rotate"` // degrees
	Opacity float64 `yaml:"opacity"`
	Glyph   Glyph   `yaml:"glyph"`
}

// DecorConfig controls a DecorLayer. Empty fields take the defaults noted on
// each field.
type DecorConfig struct {
	// Left and Right are the cluster placements on each side. Default four
	// line and dots clusters per side.
	Left  []DecorPlacement `yaml:"left"`
	Right []DecorPlacement `yaml:"right"`
	// GlyphWidth is the drawn width of a glyph at scale 1. Default 192.
	GlyphWidth float64 `yaml:"glyphWidth"`
	// Color is the glyph color. Default #5eead4.
	Color *RGB `yaml:"color"`
	// ColorAlpha is the glyph color's own alpha. Default 0.7.
	ColorAlpha float64 `yaml:"colorAlpha"`
}

func (cfg DecorConfig) withDefaults() DecorConfig {
	if len(cfg.Left) == 0 {
		cfg.Left = []DecorPlacement{
			{-420, 0.08, 0.9, -6, 0.15, GlyphLine},
			{-480, 0.35, 0.85, 4, 0.18, GlyphLine},
			{-520, 0.62, 1.05, -3, 0.12, GlyphDots},
			{-460, 0.88, 0.95, 2, 0.14, GlyphLine},
		}
	}
	if len(cfg.Right) == 0 {
		cfg.Right = []DecorPlacement{
			{420, 0.12, 1.1, 6, 0.16, GlyphLine},
			{500, 0.42, 0.8, -4, 0.14, GlyphLine},
			{560, 0.70, 0.9, 5, 0.13, GlyphDots},
			{460, 0.92, 1.0, -2, 0.15, GlyphLine},
		}
	}
	if cfg.GlyphWidth <= 0 {
		cfg.GlyphWidth = 192
	}
	if cfg.Color == nil {
		teal := MustHex("#5eead4")
		cfg.Color = &teal
	}
	if cfg.ColorAlpha <= 0 {
		cfg.ColorAlpha = 0.7
	}
	return cfg
}

// DecorRegion is a vertical band of the document that carries its own set of
// clusters, usually one page section.
type DecorRegion struct {
	Variant Variant `yaml:"variant"`
	// Top and Height are in document coordinates.
	Top    float64 `yaml:"top"`
	Height float64 `yaml:"height"`
}

// DecorLayer draws small chart glyphs in the side margins of each region.
// With no regions it decorates the viewport itself with the default variant.
type DecorLayer struct {
	config    DecorConfig
	regions   []DecorRegion
	intensity float64
	canvas    Canvas
	width     float64
	height    float64
	scrollY   float64
	drawn     int
}

// NewDecorLayer creates a decor layer at intensity 1.
func NewDecorLayer(cfg DecorConfig) *DecorLayer {
	return &DecorLayer{config: cfg.withDefaults(), intensity: 1}
}

// SetRegions replaces the decorated regions.
func (d *DecorLayer) SetRegions(regions []DecorRegion) {
	d.regions = append(d.regions[:0], regions...)
}

// SetIntensity sets the scalar applied through DecorOpacity.
func (d *DecorLayer) SetIntensity(v float64) {
	d.intensity = v
}

// Visible reports whether the viewport is wide enough for decor.
func (d *DecorLayer) Visible() bool {
	return d.width >= DecorMinWidth
}

// Drawn returns how many clusters the last Draw produced.
func (d *DecorLayer) Drawn() int {
	return d.drawn
}

func (d *DecorLayer) attach(c Canvas, width, height float64) {
	d.canvas = c
	d.width, d.height = width, height
}

func (d *DecorLayer) setScroll(y float64) {
	d.scrollY = y
}

// Draw clears the canvas and, when the viewport is wide enough, draws every
// region's clusters that intersect the viewport.
func (d *DecorLayer) Draw() {
	c := d.canvas
	d.drawn = 0
	if c == nil {
		return
	}
	c.Clear()
	if !d.Visible() {
		return
	}
	regions := d.regions
	if len(regions) == 0 {
		regions = []DecorRegion{{Variant: VariantDefault, Top: d.scrollY, Height: d.height}}
	}
	for _, r := range regions {
		top := r.Top - d.scrollY
		if top > d.height || top+r.Height < 0 {
			continue
		}
		mul := DecorOpacity(r.Variant, d.intensity)
		for _, side := range [][]DecorPlacement{d.config.Left, d.config.Right} {
			for _, p := range side {
				d.drawGlyph(c, p, d.width/2+p.X, top+p.Y*r.Height, p.Opacity*mul)
				d.drawn++
			}
		}
	}
}

// glyphShape holds a glyph in its own view box units.
type glyphShape struct {
	viewW, viewH float64
	rects        [][4]float64
	line         []Vec2
	dots         []Vec2
	dotR         float64
}

var glyphShapes = map[Glyph]glyphShape{
	GlyphBars: {
		viewW: 100, viewH: 60,
		rects: [][4]float64{{6, 24, 10, 30}, {24, 10, 10, 44}, {42, 18, 10, 36}, {60, 6, 10, 48}},
	},
	GlyphLine: {
		viewW: 120, viewH: 60,
		line: []Vec2{{6, 44}, {30, 30}, {54, 36}, {78, 18}, {102, 24}},
		dots: []Vec2{{30, 30}, {78, 18}},
		dotR: 2.2,
	},
	GlyphDots: {
		viewW: 80, viewH: 60,
		dots: []Vec2{{12, 12}, {30, 30}, {54, 42}, {68, 18}},
		dotR: 2.5,
	},
}

// drawGlyph draws p's glyph centred on (cx, cy), scaled and rotated about its
// centre.
func (d *DecorLayer) drawGlyph(c Canvas, p DecorPlacement, cx, cy, opacity float64) {
	g, ok := glyphShapes[p.Glyph]
	if !ok || opacity <= 0 {
		return
	}
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}
	px := d.config.GlyphWidth / g.viewW
	m := translation(-g.viewW/2, -g.viewH/2).
		then(scaling(px*scale, px*scale)).
		then(rotation(p.Rotate)).
		then(translation(cx, cy))
	s := m.scale()
	col := d.config.Color.Color(clamp01(d.config.ColorAlpha * opacity))

	for _, r := range g.rects {
		q := m.quad(r[0], r[1], r[2], r[3])
		c.FillQuad(q, [4]Color{col, col, col, col})
	}
	for i := 1; i < len(g.line); i++ {
		a, b := m.apply(g.line[i-1].X, g.line[i-1].Y), m.apply(g.line[i].X, g.line[i].Y)
		c.StrokeLine(a.X, a.Y, b.X, b.Y, 2*s, col)
	}
	for _, dot := range g.dots {
		pt := m.apply(dot.X, dot.Y)
		c.FillCircle(pt.X, pt.Y, g.dotR*s, col)
	}
}
