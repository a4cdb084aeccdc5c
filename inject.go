package backdrop

type syntheticKind uint8

const (
	syntheticScrollTo syntheticKind = iota
	syntheticScrollBy
	syntheticPointer
	syntheticResize
)

// syntheticEvent is a queued Host input, applied at the start of a frame
// exactly as real input from the runner would be.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
	w, h float64
	dpr  float64
}

// InjectScrollTo queues an absolute scroll. Consumed on the next Tick.
func (h *Host) InjectScrollTo(y float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: syntheticScrollTo, y: y})
}

// InjectScrollBy queues a relative scroll. Consumed on the next Tick.
func (h *Host) InjectScrollBy(dy float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: syntheticScrollBy, y: dy})
}

// InjectPointer queues a pointer move.
func (h *Host) InjectPointer(x, y float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: syntheticPointer, x: x, y: y})
}

// InjectResize queues a viewport resize.
func (h *Host) InjectResize(w, hgt, dpr float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: syntheticResize, w: w, h: hgt, dpr: dpr})
}

// InjectScrollSweep queues a scroll from fromY to toY spread linearly over
// frames frames (minimum 1).
func (h *Host) InjectScrollSweep(fromY, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		h.InjectScrollTo(fromY + (toY-fromY)*t)
	}
}

// processInjected pops one event from the queue and applies it. Returns true
// if an event was consumed.
func (h *Host) processInjected() bool {
	if len(h.injectQueue) == 0 {
		return false
	}
	evt := h.injectQueue[0]
	copy(h.injectQueue, h.injectQueue[1:])
	h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]

	switch evt.kind {
	case syntheticScrollTo:
		h.ScrollTo(evt.y)
	case syntheticScrollBy:
		h.ScrollBy(evt.y)
	case syntheticPointer:
		h.MovePointer(evt.x, evt.y)
	case syntheticResize:
		h.Resize(evt.w, evt.h, evt.dpr)
	}
	return true
}
