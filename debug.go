package backdrop

import (
	"fmt"
	"os"
	"time"
)

// frameStats holds per-frame timing and draw metrics for one component.
// Only populated when the host is in debug mode.
type frameStats struct {
	stepTime    time.Duration
	drawTime    time.Duration
	particles   int
	connections int
	morph       float64
}

// debugLog prints one component's frame stats to stderr.
func debugLog(component string, stats frameStats) {
	_, _ = fmt.Fprintf(os.Stderr,
		"[backdrop] %s step: %v | draw: %v | total: %v\n",
		component, stats.stepTime, stats.drawTime, stats.stepTime+stats.drawTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[backdrop] %s particles: %d | connections: %d | morph: %.3f\n",
		component, stats.particles, stats.connections, stats.morph)
}

// debugScrollLog prints a recomputed scroll progress and the scalars derived
// from it.
func debugScrollLog(raw, intensity, glass float64) {
	_, _ = fmt.Fprintf(os.Stderr,
		"[backdrop] scroll raw: %.3f | intensity: %.3f | glass: %.3f\n",
		raw, intensity, glass)
}
