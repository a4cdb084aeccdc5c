package backdrop

import (
	"time"

	"github.com/tanema/gween/ease"
)

// Network view box. Shapes are authored in these units and fitted to the
// viewport so the box covers it.
const (
	networkViewW = 1440
	networkViewH = 900
)

// NetworkConfig controls a NetworkLayer. Zero fields take the defaults noted
// on each field.
type NetworkConfig struct {
	// Opacity is the opacity of the whole layer. Default 0.7.
	Opacity float64 `yaml:"opacity"`
	// DriftPeriod is the duration of one leg of the horizontal drift.
	// Default 40s.
	DriftPeriod time.Duration `yaml:"driftPeriod"`
	// DriftDistance is the drift amplitude in view box units. Default 40.
	DriftDistance float64 `yaml:"driftDistance"`
}

func (cfg NetworkConfig) withDefaults() NetworkConfig {
	if cfg.Opacity <= 0 {
		cfg.Opacity = 0.7
	}
	if cfg.DriftPeriod <= 0 {
		cfg.DriftPeriod = 40 * time.Second
	}
	if cfg.DriftDistance <= 0 {
		cfg.DriftDistance = 40
	}
	return cfg
}

type networkBand struct {
	x, y, w, h float64
	rotate     float64 // degrees about the view box origin
}

type networkNode struct {
	x, y, r float64
}

var (
	networkBands = []networkBand{
		{-200, 150, 900, 260, -8},
		{400, 520, 900, 260, -12},
	}
	networkLines = [][]Vec2{
		{{80, 140}, {260, 110}, {420, 180}, {620, 150}, {820, 210}, {1040, 190}, {1260, 240}},
		{{60, 360}, {260, 330}, {520, 380}, {760, 340}, {980, 420}, {1220, 390}},
		{{120, 620}, {340, 580}, {560, 640}, {780, 600}, {1020, 660}, {1280, 640}},
	}
	networkNodes   = buildNetworkNodes()
	networkScatter = buildNetworkScatter()
)

// buildNetworkNodes places the glowing nodes along the three lines,
// alternating between two rows per line.
func buildNetworkNodes() []networkNode {
	rows := []struct {
		xs     []float64
		y0, y1 float64
		r      float64
	}{
		{[]float64{140, 260, 420, 620, 820, 1040, 1260}, 140, 190, 10},
		{[]float64{60, 260, 520, 760, 980, 1220}, 360, 410, 9},
		{[]float64{120, 340, 560, 780, 1020, 1280}, 620, 670, 11},
	}
	var nodes []networkNode
	for _, row := range rows {
		for i, x := range row.xs {
			y := row.y0
			if i%2 == 1 {
				y = row.y1
			}
			nodes = append(nodes, networkNode{x, y, row.r})
		}
	}
	return nodes
}

func buildNetworkScatter() []networkNode {
	xs := []float64{80, 220, 360, 520, 680, 840, 1000, 1180, 1340, 1400, 60, 300, 200, 460}
	stars := make([]networkNode, len(xs))
	for i, x := range xs {
		stars[i] = networkNode{x, 120 + float64(i%4)*160, 2.6}
	}
	return stars
}

// NetworkIntensity clamps intensity to the range the network layer responds
// to.
func NetworkIntensity(intensity float64) float64 {
	return clamp(intensity, 0.4, 1.6)
}

// NetworkLayer draws soft diagonal bands, three network polylines, glowing
// nodes and a scatter of small stars, all drifting slowly sideways.
type NetworkLayer struct {
	config    NetworkConfig
	intensity float64
	drift     *pingPong
	offset    float64
	canvas    Canvas
	width     float64
	height    float64
}

// NewNetworkLayer creates a network layer at intensity 1.
func NewNetworkLayer(cfg NetworkConfig) *NetworkLayer {
	cfg = cfg.withDefaults()
	amp := float32(cfg.DriftDistance)
	return &NetworkLayer{
		config:    cfg,
		intensity: 1,
		drift:     newPingPong(-amp/2, amp/2, float32(cfg.DriftPeriod.Seconds()), ease.Linear),
	}
}

// Opacity returns the opacity the layer is composited at.
func (n *NetworkLayer) Opacity() float64 {
	return n.config.Opacity
}

// SetIntensity sets the scalar that scales every shape's opacity.
func (n *NetworkLayer) SetIntensity(v float64) {
	n.intensity = v
}

// Offset returns the current horizontal drift in view box units.
func (n *NetworkLayer) Offset() float64 {
	return n.offset
}

func (n *NetworkLayer) attach(c Canvas, width, height float64) {
	n.canvas = c
	n.width, n.height = width, height
}

// Advance moves the drift forward by dt.
func (n *NetworkLayer) Advance(dt time.Duration) {
	n.offset = n.drift.Update(float32(dt.Seconds()))
}

// Draw clears the canvas and redraws every shape.
func (n *NetworkLayer) Draw() {
	c := n.canvas
	if c == nil {
		return
	}
	c.Clear()
	k := NetworkIntensity(n.intensity)
	view := translation(n.offset, 0).then(sliceFit(networkViewW, networkViewH, n.width, n.height))
	s := view.scale()

	// Band fill runs white 0.06k -> 0.12k along the box diagonal, then the
	// whole band is multiplied by a 0.06k fill opacity.
	fill := 0.06 * k
	lo, hi := ColorWhite.WithAlpha(0.06*k*fill), ColorWhite.WithAlpha(0.12*k*fill)
	mid := ColorWhite.WithAlpha(0.09 * k * fill)
	for _, b := range networkBands {
		m := rotation(b.rotate).then(view)
		c.FillQuad(m.quad(b.x, b.y, b.w, b.h), [4]Color{lo, mid, hi, mid})
	}

	for _, line := range networkLines {
		minX, minY, maxX, maxY := polyBounds(line)
		for i := 1; i < len(line); i++ {
			a, b := line[i-1], line[i]
			// Gradient position of the segment midpoint within the line's
			// bounding box.
			t := ((a.X+b.X)/2-minX)/max(maxX-minX, 1)/2 + ((a.Y+b.Y)/2-minY)/max(maxY-minY, 1)/2
			pa, pb := view.apply(a.X, a.Y), view.apply(b.X, b.Y)
			c.StrokeLine(pa.X, pa.Y, pb.X, pb.Y, 1.2*s, ColorWhite.WithAlpha(lerp(0.06*k, 0.12*k, t)))
		}
	}

	glow := ColorWhite.WithAlpha(0.36 * k)
	for _, nd := range networkNodes {
		p := view.apply(nd.x, nd.y)
		c.Glow(p.X, p.Y, nd.r*s, 0, glow, BlendNormal)
	}

	dot := ColorWhite.WithAlpha(0.18 * k)
	for _, st := range networkScatter {
		p := view.apply(st.x, st.y)
		c.FillCircle(p.X, p.Y, st.r*s, dot)
	}
}

func polyBounds(pts []Vec2) (minX, minY, maxX, maxY float64) {
	if len(pts) == 0 {
		return
	}
	minX, minY = pts[0].X, pts[0].Y
	maxX, maxY = minX, minY
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return
}
