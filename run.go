package backdrop

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the window size. Zero uses the backdrop's host
	// size.
	Width, Height int
	// ShowFPS draws an FPS counter in the top-left corner.
	ShowFPS bool
	// WheelStep is the scroll distance per wheel notch. Default 60.
	WheelStep float64
	// ClearColor fills the window before the layers are drawn.
	ClearColor Color
	// TestScript, if set, drives the host from a JSON test script and
	// closes the window once the script has finished and its screenshots
	// are written.
	TestScript *TestRunner
}

// game implements ebiten.Game for Run.
type game struct {
	backdrop *Backdrop
	host     *Host
	input    inputState
	fps      *fpsOverlay
	clear    Color
	now      time.Duration
	width    int
	height   int
}

// Run mounts b on a new Host sized from cfg and runs it in a window until
// the window is closed or the test script finishes. It blocks.
func Run(b *Backdrop, cfg RunConfig) error {
	hc := b.Config().Host
	if cfg.Width > 0 && cfg.Height > 0 {
		hc.Width, hc.Height = float64(cfg.Width), float64(cfg.Height)
	}
	h := NewHost(hc)
	if cfg.TestScript != nil {
		h.SetTestRunner(cfg.TestScript)
	}
	b.Mount(h)
	defer b.Unmount()

	g := &game{
		backdrop: b,
		host:     h,
		input:    inputState{wheelStep: cfg.WheelStep},
		clear:    cfg.ClearColor,
		width:    int(h.Width()),
		height:   int(h.Height()),
	}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

// Update implements ebiten.Game. Each tick advances the host clock by one
// tick period, so time is deterministic under a test script.
func (g *game) Update() error {
	step := time.Second / time.Duration(ebiten.TPS())
	g.now += step
	g.input.process(g.host)
	g.host.Tick(g.now)
	if g.fps != nil {
		g.fps.update(step.Seconds(), g.backdrop)
	}
	if r := g.host.testRunner; r != nil && r.Done() && g.host.PendingScreenshots() == 0 {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *game) Draw(screen *ebiten.Image) {
	if g.clear.A > 0 {
		screen.Fill(premultiplied(g.clear))
	}
	g.backdrop.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.host.FlushScreenshots(screen)
}

// Layout implements ebiten.Game. A window resize is forwarded to the host.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.host.Resize(float64(outsideWidth), float64(outsideHeight), g.host.DevicePixelRatio())
	}
	return g.width, g.height
}
