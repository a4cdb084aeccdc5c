package backdrop

import (
	"image"
	"image/color"
	"image/draw"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Z-order of the page-level layers around the composer's.
const (
	ZGradient  = -20
	ZSections  = 30
	ZStarfield = 40
)

// Layer names reported by Backdrop.Layers.
const (
	LayerGradient  = "gradient"
	LayerParticles = "particles"
	LayerNetwork   = "network"
	LayerDecor     = "decor"
	LayerSections  = "sections"
	LayerStarfield = "starfield"
)

// StackLayer is one composited layer of a Backdrop.
type StackLayer struct {
	Name    string
	Z       int
	Surface Surface
	Opacity float64
	// Blend is the mode the layer is composited with by Draw.
	Blend BlendMode
}

// Backdrop is the whole animated page background: the page gradient, the
// composer's particle, network and decor layers, the tinted section overlays
// and the starfield on top, all fed by one ScrollTracker.
type Backdrop struct {
	config    Config
	tracker   *ScrollTracker
	gradient  *PageGradient
	composer  *Composer
	tinter    *SectionColorTinter
	starfield *Starfield
	sections  []*Section

	// NewSurface creates the surface for each layer on Mount. Defaults to
	// NewLayer, which renders through Ebitengine.
	NewSurface func() Surface

	host        *Host
	layers      []StackLayer
	unsubscribe func()
}

// NewBackdrop builds an unmounted backdrop from cfg.
func NewBackdrop(cfg Config) *Backdrop {
	b := &Backdrop{
		config:    cfg,
		tracker:   NewScrollTracker(),
		gradient:  NewPageGradient(cfg.Gradient),
		composer:  NewComposer(cfg.Composer),
		starfield: NewStarfield(cfg.Starfield),
	}
	regions := make([]DecorRegion, 0, len(cfg.Sections))
	for _, sc := range cfg.Sections {
		s := sc.Section()
		b.sections = append(b.sections, s)
		regions = append(regions, DecorRegion{Variant: s.Variant, Top: s.Top, Height: s.Height})
	}
	b.composer.Decor().SetRegions(regions)
	b.tinter = NewSectionColorTinter(b.sections...)
	if cfg.TintTransition != 0 {
		b.tinter.SetTransition(cfg.TintTransition)
	}
	return b
}

// Config returns the configuration the backdrop was built from.
func (b *Backdrop) Config() Config { return b.config }

// Tracker returns the shared scroll tracker.
func (b *Backdrop) Tracker() *ScrollTracker { return b.tracker }

// Gradient returns the page gradient.
func (b *Backdrop) Gradient() *PageGradient { return b.gradient }

// Composer returns the analytics background composer.
func (b *Backdrop) Composer() *Composer { return b.composer }

// Tinter returns the section tinter.
func (b *Backdrop) Tinter() *SectionColorTinter { return b.tinter }

// Starfield returns the starfield.
func (b *Backdrop) Starfield() *Starfield { return b.starfield }

// Sections returns the page sections.
func (b *Backdrop) Sections() []*Section { return b.sections }

// Host returns the host the backdrop is mounted on, or nil.
func (b *Backdrop) Host() *Host { return b.host }

// Layers returns the mounted layers in z-order.
func (b *Backdrop) Layers() []StackLayer { return b.layers }

// Mount creates a surface per layer, mounts every component on h and starts
// the scroll tracker. Layers whose surface yields no canvas are left out.
func (b *Backdrop) Mount(h *Host) {
	b.Unmount()
	b.host = h
	if b.config.Debug {
		h.SetDebugMode(true)
	}
	newSurface := b.NewSurface
	if newSurface == nil {
		newSurface = func() Surface { return NewLayer() }
	}
	add := func(name string, z int, s Surface, opacity float64, ok bool) {
		if ok {
			b.layers = append(b.layers, StackLayer{Name: name, Z: z, Surface: s, Opacity: opacity, Blend: layerBlend(name)})
		} else {
			dispose(s)
		}
	}

	gs := newSurface()
	add(LayerGradient, ZGradient, gs, 1, b.gradient.Mount(h, b.tracker, gs))

	fs, ns, ds := newSurface(), newSurface(), newSurface()
	b.composer.Mount(h, b.tracker, fs, ns, ds)
	add(LayerParticles, ZParticles, fs, 1, b.composer.Field().Mounted())
	add(LayerNetwork, ZNetwork, ns, b.composer.Network().Opacity(), b.composer.netCanvas != nil)
	add(LayerDecor, ZDecor, ds, 1, b.composer.decorCanvas != nil)

	ts := newSurface()
	add(LayerSections, ZSections, ts, 1, b.tinter.Mount(h, b.tracker, ts))

	if !b.config.HideStarfield {
		ss := newSurface()
		add(LayerStarfield, ZStarfield, ss, 1, b.starfield.Mount(h, ss))
		b.unsubscribe = b.tracker.Subscribe(func(p ScrollProgress) {
			b.starfield.SetProgress(p.Raw)
		})
	}

	sort.SliceStable(b.layers, func(i, j int) bool { return b.layers[i].Z < b.layers[j].Z })
	b.tracker.Start(h)
}

// Unmount stops every component and the tracker and releases the surfaces.
// It leaves no frame callbacks or listeners behind on the host.
func (b *Backdrop) Unmount() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
	b.starfield.Unmount()
	b.tinter.Unmount()
	b.composer.Unmount()
	b.gradient.Unmount()
	b.tracker.Stop()
	for _, l := range b.layers {
		dispose(l.Surface)
	}
	b.layers = nil
	b.host = nil
}

// layerBlend returns the composite mode for a named layer. Section overlays
// only lift what is beneath them.
func layerBlend(name string) BlendMode {
	if name == LayerSections {
		return BlendScreen
	}
	return BlendNormal
}

func dispose(s Surface) {
	if l, ok := s.(*Layer); ok {
		l.Dispose()
	}
}

// Draw composites every Ebitengine-backed layer onto screen in z-order.
func (b *Backdrop) Draw(screen *ebiten.Image) {
	for _, l := range b.layers {
		if layer, ok := l.Surface.(*Layer); ok {
			layer.DrawTo(screen, l.Opacity, l.Blend)
		}
	}
}

// Composite draws every software-rendered layer onto dst in z-order. Every
// layer is blended source-over, whatever its Blend.
func (b *Backdrop) Composite(dst *image.RGBA) {
	for _, l := range b.layers {
		sc, ok := l.Surface.(*SoftwareCanvas)
		if !ok || sc.Image() == nil {
			continue
		}
		mask := image.NewUniform(color.Alpha{A: uint8(clamp01(l.Opacity) * 255)})
		draw.DrawMask(dst, dst.Bounds(), sc.Image(), image.Point{}, mask, image.Point{}, draw.Over)
	}
}
