package backdrop

import "time"

// EventType identifies a kind of Host event.
type EventType uint8

const (
	EventScroll      EventType = iota // scroll offset changed
	EventResize                       // viewport size or pixel ratio changed
	EventPointerMove                  // pointer moved
	eventTypeCount
)

// MobileBreakpoint is the viewport width below which a Host reports the
// mobile device class even when HostConfig.Mobile is false.
const MobileBreakpoint = 768

// HostConfig describes the initial state of a Host.
type HostConfig struct {
	// Width and Height are the viewport size in logical pixels.
	// Defaults to 1280x800.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// DevicePixelRatio is physical pixels per logical pixel. Defaults to 1.
	DevicePixelRatio float64 `yaml:"devicePixelRatio"`
	// DocumentHeight is the total scrollable height of the page.
	// Defaults to Height (nothing to scroll).
	DocumentHeight float64 `yaml:"documentHeight"`
	// ReducedMotion mirrors the "prefers-reduced-motion" preference. It is
	// read once by components when they mount.
	ReducedMotion bool `yaml:"reducedMotion"`
	// Mobile forces the reduced particle counts.
	Mobile bool `yaml:"mobile"`
}

// FrameFunc is a per-frame callback. now is the Host clock at the start of
// the frame.
type FrameFunc func(now time.Duration)

// FrameHandle identifies a requested frame callback. The zero value is never
// issued.
type FrameHandle uint64

// ListenerID identifies a registered event listener. The zero value is never
// issued.
type ListenerID uint64

type frameRequest struct {
	handle FrameHandle
	fn     FrameFunc
}

type listener struct {
	id ListenerID
	fn func()
}

// Host is the environment a backdrop runs in. It owns viewport metrics,
// scroll and pointer state, the per-frame callback queue, event listeners
// and the root StyleVars.
//
// Frame callbacks requested while a frame is running are deferred to the next
// Tick, so a callback that re-requests itself runs once per frame.
//
// Host is not safe for concurrent use; drive it from one goroutine.
type Host struct {
	width, height float64
	dpr           float64
	docHeight     float64
	scrollY       float64
	pointer       Vec2
	reducedMotion bool
	mobile        bool

	now        time.Duration
	nextHandle FrameHandle
	frames     []frameRequest
	back       []frameRequest
	running    []frameRequest

	nextListener ListenerID
	listeners    [eventTypeCount][]listener

	style StyleVars
	debug bool

	// Automation (inject.go, testrunner.go, screenshot.go).
	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	screenshotQueue []string
	// ScreenshotDir is where queued screenshots are written. Defaults to
	// "screenshots".
	ScreenshotDir string
}

// NewHost creates a Host from cfg, filling zero fields with defaults.
func NewHost(cfg HostConfig) *Host {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 800
	}
	if cfg.DevicePixelRatio <= 0 {
		cfg.DevicePixelRatio = 1
	}
	if cfg.DocumentHeight < cfg.Height {
		cfg.DocumentHeight = cfg.Height
	}
	return &Host{
		width:         cfg.Width,
		height:        cfg.Height,
		dpr:           cfg.DevicePixelRatio,
		docHeight:     cfg.DocumentHeight,
		pointer:       Vec2{cfg.Width / 2, cfg.Height / 2},
		reducedMotion: cfg.ReducedMotion,
		mobile:        cfg.Mobile,
		ScreenshotDir: "screenshots",
	}
}

// Width returns the viewport width in logical pixels.
func (h *Host) Width() float64 { return h.width }

// Height returns the viewport height in logical pixels.
func (h *Host) Height() float64 { return h.height }

// DevicePixelRatio returns physical pixels per logical pixel.
func (h *Host) DevicePixelRatio() float64 { return h.dpr }

// ScrollY returns the vertical scroll offset.
func (h *Host) ScrollY() float64 { return h.scrollY }

// ScrollHeight returns the total document height.
func (h *Host) ScrollHeight() float64 { return h.docHeight }

// MaxScroll returns the largest reachable scroll offset.
func (h *Host) MaxScroll() float64 {
	return max(h.docHeight-h.height, 0)
}

// Pointer returns the last pointer position in viewport coordinates.
func (h *Host) Pointer() Vec2 { return h.pointer }

// ReducedMotion reports the reduced-motion preference.
func (h *Host) ReducedMotion() bool { return h.reducedMotion }

// Mobile reports whether the host is in the mobile device class, either by
// configuration or because the viewport is narrower than MobileBreakpoint.
func (h *Host) Mobile() bool {
	return h.mobile || h.width < MobileBreakpoint
}

// Now returns the clock value of the current or most recent frame.
func (h *Host) Now() time.Duration { return h.now }

// Style returns the root style variables.
func (h *Host) Style() *StyleVars { return &h.style }

// SetDebugMode enables per-frame stats on stderr for components mounted on
// this host.
func (h *Host) SetDebugMode(enabled bool) { h.debug = enabled }

// Resize changes the viewport and dispatches EventResize. The scroll offset
// is clamped to the new range.
func (h *Host) Resize(width, height, dpr float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if dpr <= 0 {
		dpr = 1
	}
	h.width, h.height, h.dpr = width, height, dpr
	if h.docHeight < height {
		h.docHeight = height
	}
	h.scrollY = clamp(h.scrollY, 0, h.MaxScroll())
	h.dispatch(EventResize)
}

// SetDocumentHeight changes the scrollable height. Like a layout change in a
// browser it dispatches nothing; the next scroll or resize picks it up.
func (h *Host) SetDocumentHeight(height float64) {
	h.docHeight = max(height, h.height)
	h.scrollY = clamp(h.scrollY, 0, h.MaxScroll())
}

// ScrollTo moves the scroll offset to y, clamped to [0, MaxScroll], and
// dispatches EventScroll if it changed.
func (h *Host) ScrollTo(y float64) {
	y = clamp(y, 0, h.MaxScroll())
	if y == h.scrollY {
		return
	}
	h.scrollY = y
	h.dispatch(EventScroll)
}

// ScrollBy scrolls by dy logical pixels.
func (h *Host) ScrollBy(dy float64) {
	h.ScrollTo(h.scrollY + dy)
}

// MovePointer records the pointer position and dispatches EventPointerMove.
func (h *Host) MovePointer(x, y float64) {
	h.pointer = Vec2{x, y}
	h.dispatch(EventPointerMove)
}

// AddListener registers fn for events of type t.
func (h *Host) AddListener(t EventType, fn func()) ListenerID {
	if t >= eventTypeCount || fn == nil {
		return 0
	}
	h.nextListener++
	id := h.nextListener
	h.listeners[t] = append(h.listeners[t], listener{id: id, fn: fn})
	return id
}

// RemoveListener unregisters a listener. Unknown or already removed IDs are
// ignored.
func (h *Host) RemoveListener(id ListenerID) {
	if id == 0 {
		return
	}
	for t := range h.listeners {
		ls := h.listeners[t]
		for i, l := range ls {
			if l.id == id {
				h.listeners[t] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of listeners registered for t.
func (h *Host) ListenerCount(t EventType) int {
	if t >= eventTypeCount {
		return 0
	}
	return len(h.listeners[t])
}

func (h *Host) dispatch(t EventType) {
	ls := h.listeners[t]
	if len(ls) == 0 {
		return
	}
	// Listeners may unregister themselves; iterate a snapshot.
	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		l.fn()
	}
}

// RequestFrame schedules fn to run on the next Tick.
func (h *Host) RequestFrame(fn FrameFunc) FrameHandle {
	if fn == nil {
		return 0
	}
	h.nextHandle++
	h.frames = append(h.frames, frameRequest{handle: h.nextHandle, fn: fn})
	return h.nextHandle
}

// CancelFrame removes a pending frame callback. Handles that already ran or
// were already cancelled are ignored.
func (h *Host) CancelFrame(handle FrameHandle) {
	if handle == 0 {
		return
	}
	for i := range h.frames {
		if h.frames[i].handle == handle {
			h.frames = append(h.frames[:i], h.frames[i+1:]...)
			return
		}
	}
	for i := range h.running {
		if h.running[i].handle == handle {
			h.running[i].fn = nil
			return
		}
	}
}

// PendingFrames returns the number of frame callbacks waiting for the next
// Tick.
func (h *Host) PendingFrames() int {
	return len(h.frames)
}

// Tick advances the clock to now, applies at most one scripted or injected
// event, and runs every frame callback that was requested before this call.
func (h *Host) Tick(now time.Duration) {
	h.now = now
	if h.testRunner != nil {
		h.testRunner.step(h)
	}
	h.processInjected()

	batch := h.frames
	h.frames = h.back[:0]
	h.running = batch
	for i := range batch {
		fn := batch[i].fn
		if fn == nil {
			continue
		}
		batch[i].fn = nil
		fn(now)
	}
	h.running = nil
	h.back = batch[:0]
}
