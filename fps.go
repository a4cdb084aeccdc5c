package backdrop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay shows the current FPS, TPS and scroll progress in the corner of
// the window. The text is refreshed about every 0.5 seconds.
type fpsOverlay struct {
	img        *ebiten.Image
	lastUpdate float64
}

func newFPSOverlay() *fpsOverlay {
	// 120x48 fits three lines of debug text.
	return &fpsOverlay{img: ebiten.NewImage(120, 48), lastUpdate: 1}
}

func (f *fpsOverlay) update(dt float64, b *Backdrop) {
	f.lastUpdate += dt
	if f.lastUpdate < 0.5 {
		return
	}
	f.lastUpdate = 0

	f.img.Clear()
	// Semi-transparent background for readability
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nScroll: %.2f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), b.Tracker().Latest().Raw))
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(f.img, nil)
}
