package backdrop

import (
	"math"
	"time"
)

// ScrollProgress is the normalized scroll position of a document.
type ScrollProgress struct {
	// Raw is scrollY / maxScroll clamped to [0, 1].
	Raw float64
	// Scrollable is false when the document is no taller than the viewport.
	Scrollable bool
}

// Eased returns Raw shaped by Ease.
func (p ScrollProgress) Eased(gamma float64) float64 {
	return Ease(p.Raw, gamma)
}

// RawProgress returns scrollY / max(scrollHeight-viewportHeight, 1) clamped
// to [0, 1].
func RawProgress(scrollY, scrollHeight, viewportHeight float64) float64 {
	maxScroll := max(scrollHeight-viewportHeight, 1)
	return clamp01(scrollY / maxScroll)
}

// Ease applies the power curve raw^gamma. gamma below 1 front-loads the
// response; gamma <= 0 returns raw unchanged.
func Ease(raw, gamma float64) float64 {
	raw = clamp01(raw)
	if gamma <= 0 || gamma == 1 {
		return raw
	}
	return math.Pow(raw, gamma)
}

type scrollSubscription struct {
	id int
	fn func(ScrollProgress)
}

// ScrollTracker is the single shared scroll subscription of a page. It
// listens for scroll and resize on a Host, collapses bursts of events into
// one recompute per frame, and hands the result to every subscriber.
type ScrollTracker struct {
	host       *Host
	latest     ScrollProgress
	pending    bool
	frame      FrameHandle
	scrollID   ListenerID
	resizeID   ListenerID
	subs       []scrollSubscription
	nextSub    int
	recomputes int
}

// NewScrollTracker creates a stopped tracker.
func NewScrollTracker() *ScrollTracker {
	return &ScrollTracker{}
}

// Start attaches the tracker to h and computes the progress once
// synchronously. Starting an already started tracker moves it to h.
func (t *ScrollTracker) Start(h *Host) {
	t.Stop()
	t.host = h
	t.scrollID = h.AddListener(EventScroll, t.schedule)
	t.resizeID = h.AddListener(EventResize, t.schedule)
	t.recompute(h.Now())
}

// Stop cancels any pending recompute and removes the tracker's listeners.
// Calling Stop on a stopped tracker is a no-op.
func (t *ScrollTracker) Stop() {
	if t.host == nil {
		return
	}
	t.host.CancelFrame(t.frame)
	t.host.RemoveListener(t.scrollID)
	t.host.RemoveListener(t.resizeID)
	t.frame, t.scrollID, t.resizeID = 0, 0, 0
	t.pending = false
	t.host = nil
}

// Subscribe registers fn to receive every recomputed progress. If the
// tracker is running fn is called immediately with the latest value. The
// returned func unsubscribes; calling it more than once is harmless.
func (t *ScrollTracker) Subscribe(fn func(ScrollProgress)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	t.nextSub++
	id := t.nextSub
	t.subs = append(t.subs, scrollSubscription{id: id, fn: fn})
	if t.host != nil {
		fn(t.latest)
	}
	return func() {
		for i, s := range t.subs {
			if s.id == id {
				t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
				return
			}
		}
	}
}

// Latest returns the most recently computed progress.
func (t *ScrollTracker) Latest() ScrollProgress {
	return t.latest
}

// Pending reports whether a recompute is scheduled for the next frame.
func (t *ScrollTracker) Pending() bool {
	return t.pending
}

// Recomputes returns how many times progress has been computed.
func (t *ScrollTracker) Recomputes() int {
	return t.recomputes
}

func (t *ScrollTracker) schedule() {
	if t.pending || t.host == nil {
		return
	}
	t.pending = true
	t.frame = t.host.RequestFrame(t.recompute)
}

func (t *ScrollTracker) recompute(time.Duration) {
	t.pending = false
	t.frame = 0
	h := t.host
	if h == nil {
		return
	}
	t.latest = ScrollProgress{
		Raw:        RawProgress(h.ScrollY(), h.ScrollHeight(), h.Height()),
		Scrollable: h.ScrollHeight() > h.Height(),
	}
	t.recomputes++
	subs := make([]scrollSubscription, len(t.subs))
	copy(subs, t.subs)
	for _, s := range subs {
		s.fn(t.latest)
	}
}
