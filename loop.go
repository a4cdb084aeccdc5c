package backdrop

import "time"

// frameLoop owns one recurring frame callback on a Host. The callback
// re-requests itself after running, so exactly one request is outstanding
// while the loop runs.
type frameLoop struct {
	host    *Host
	handle  FrameHandle
	fn      FrameFunc
	running bool
	frames  int
}

func (l *frameLoop) start(h *Host, fn FrameFunc) {
	l.stop()
	l.host = h
	l.fn = fn
	l.running = true
	l.handle = h.RequestFrame(l.tick)
}

func (l *frameLoop) tick(now time.Duration) {
	l.handle = 0
	if !l.running {
		return
	}
	l.frames++
	l.fn(now)
	// fn may have stopped the loop.
	if l.running {
		l.handle = l.host.RequestFrame(l.tick)
	}
}

func (l *frameLoop) stop() {
	if l.host != nil && l.handle != 0 {
		l.host.CancelFrame(l.handle)
	}
	l.handle = 0
	l.running = false
}
