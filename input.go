package backdrop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Scroll steps used when mapping window input to Host scrolling.
const (
	defaultWheelStep = 60.0 // pixels per wheel notch
	arrowStep        = 40.0 // pixels per arrow key press
	arrowHoldStep    = 12.0 // pixels per tick while an arrow key is held
	pageFraction     = 0.9  // page keys scroll this fraction of the viewport
	holdDelayTicks   = 15   // ticks before a held arrow key starts repeating
)

// keyScroll returns how far a just-pressed key scrolls a viewport of the
// given height. absolute is set for Home and End, in which case dy is the
// target offset rather than a delta.
func keyScroll(key ebiten.Key, viewport, maxScroll float64) (dy float64, absolute, ok bool) {
	switch key {
	case ebiten.KeyPageDown, ebiten.KeySpace:
		return viewport * pageFraction, false, true
	case ebiten.KeyPageUp:
		return -viewport * pageFraction, false, true
	case ebiten.KeyArrowDown:
		return arrowStep, false, true
	case ebiten.KeyArrowUp:
		return -arrowStep, false, true
	case ebiten.KeyHome:
		return 0, true, true
	case ebiten.KeyEnd:
		return maxScroll, true, true
	}
	return 0, false, false
}

// wheelScroll converts a vertical wheel delta to a scroll delta. Ebitengine
// reports positive y for wheel-up, which scrolls the page up.
func wheelScroll(wy, step float64) float64 {
	if step <= 0 {
		step = defaultWheelStep
	}
	return -wy * step
}

var scrollKeys = []ebiten.Key{
	ebiten.KeyPageDown, ebiten.KeySpace, ebiten.KeyPageUp,
	ebiten.KeyArrowDown, ebiten.KeyArrowUp, ebiten.KeyHome, ebiten.KeyEnd,
}

// inputState maps window input onto a Host once per tick.
type inputState struct {
	wheelStep  float64
	lastX      int
	lastY      int
	seenCursor bool
	touchIDs   []ebiten.TouchID
	touchY     map[ebiten.TouchID]int
}

func (in *inputState) process(h *Host) {
	_, wy := ebiten.Wheel()
	if wy != 0 {
		h.ScrollBy(wheelScroll(wy, in.wheelStep))
	}

	for _, k := range scrollKeys {
		if inpututil.IsKeyJustPressed(k) {
			if dy, abs, ok := keyScroll(k, h.Height(), h.MaxScroll()); ok {
				if abs {
					h.ScrollTo(dy)
				} else {
					h.ScrollBy(dy)
				}
			}
		}
	}
	if inpututil.KeyPressDuration(ebiten.KeyArrowDown) > holdDelayTicks {
		h.ScrollBy(arrowHoldStep)
	}
	if inpututil.KeyPressDuration(ebiten.KeyArrowUp) > holdDelayTicks {
		h.ScrollBy(-arrowHoldStep)
	}

	mx, my := ebiten.CursorPosition()
	if !in.seenCursor || mx != in.lastX || my != in.lastY {
		in.seenCursor = true
		in.lastX, in.lastY = mx, my
		h.MovePointer(float64(mx), float64(my))
	}

	in.processTouches(h)
}

// processTouches scrolls by the vertical drag of the first active touch.
func (in *inputState) processTouches(h *Host) {
	if in.touchY == nil {
		in.touchY = make(map[ebiten.TouchID]int)
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		delete(in.touchY, id)
	}
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	for i, id := range in.touchIDs {
		_, y := ebiten.TouchPosition(id)
		prev, ok := in.touchY[id]
		in.touchY[id] = y
		if ok && i == 0 && y != prev {
			h.ScrollBy(float64(prev - y))
		}
	}
}
