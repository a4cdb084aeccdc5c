package backdrop

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one with
// TweenValues and call Update(dt) each frame; the group writes each value
// straight to its field.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g == nil || g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Finish jumps every field to its end value.
func (g *TweenGroup) Finish() {
	if g == nil || g.Done {
		return
	}
	for i := 0; i < g.count; i++ {
		val, _ := g.tweens[i].Update(1 << 20)
		*g.fields[i] = float64(val)
	}
	g.Done = true
}

// TweenValues creates a TweenGroup that animates each field toward the value
// at the same index of to. At most 4 fields are animated; extras are ignored.
func TweenValues(fields []*float64, to []float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	for i := 0; i < len(fields) && i < len(to) && i < len(g.tweens); i++ {
		g.tweens[i] = gween.New(float32(*fields[i]), float32(to[i]), duration, fn)
		g.fields[i] = fields[i]
		g.count++
	}
	return g
}

// pingPong eases a value from one bound to the other and back, forever.
type pingPong struct {
	from, to float32
	duration float32
	fn       ease.TweenFunc
	tween    *gween.Tween
	forward  bool
	value    float64
}

func newPingPong(from, to, duration float32, fn ease.TweenFunc) *pingPong {
	return &pingPong{
		from:     from,
		to:       to,
		duration: duration,
		fn:       fn,
		tween:    gween.New(from, to, duration, fn),
		forward:  true,
		value:    float64(from),
	}
}

// Update advances by dt seconds and returns the current value.
func (p *pingPong) Update(dt float32) float64 {
	val, finished := p.tween.Update(dt)
	p.value = float64(val)
	if finished {
		p.forward = !p.forward
		if p.forward {
			p.tween = gween.New(p.from, p.to, p.duration, p.fn)
		} else {
			p.tween = gween.New(p.to, p.from, p.duration, p.fn)
		}
	}
	return p.value
}
