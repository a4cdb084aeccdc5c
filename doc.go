// Package backdrop renders the animated, scroll-driven background of a
// single-page portfolio on [Ebitengine].
//
// A [Host] stands in for the browser window. It owns the viewport size and
// device pixel ratio, the scroll offset, the pointer, the reduced-motion
// preference, event listeners, a per-frame callback queue and the root
// [StyleVars]. Components mount on a Host and render into a [Canvas].
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window, maps
// wheel, keyboard, cursor and touch input to the host and ticks frames:
//
//	b := backdrop.NewBackdrop(backdrop.DefaultConfig())
//	backdrop.Run(b, backdrop.RunConfig{
//		Title: "Portfolio", Width: 1280, Height: 800,
//	})
//
// For full control, create a Host yourself, call [Backdrop.Mount], and
// drive it with [Host.Tick] and [Backdrop.Draw] from your own [ebiten.Game].
//
// # Layers
//
// A [Backdrop] stacks, bottom to top:
//
//   - [PageGradient]: a three-stop vertical gradient that warms as the page
//     is scrolled. Writes --sunset-top, --sunset-mid, --sunset-bottom and
//     their -light variants.
//   - [Composer]: a [ParticleField] network, a [NetworkLayer] of drifting
//     bands and lines, and a [DecorLayer] of chart glyphs in the side
//     margins. All three follow one intensity scalar derived from scroll
//     progress. Writes --glass-darkness.
//   - [SectionColorTinter]: per-section overlays whose hue sweeps as each
//     section travels up the viewport. Writes --h, --s and --l on each
//     [Section].
//   - [Starfield]: twinkling stars with pointer parallax that gather into a
//     heart once the page is scrolled to the bottom.
//
// Scroll progress is computed by one shared [ScrollTracker], which collapses
// bursts of scroll and resize events into at most one recompute per frame.
//
// # Reduced motion
//
// When [HostConfig.ReducedMotion] is set, components draw once when mounted
// and again only when the viewport or scroll progress changes. They request
// no per-frame callbacks and the starfield registers no pointer listener.
//
// # Headless rendering
//
// [SoftwareCanvas] draws on the CPU. Set [Backdrop.NewSurface] to return one
// and combine the layers with [Backdrop.Composite] to render stills without
// a window.
//
// # Automation
//
// [LoadTestScript] parses a JSON script of scroll, sweep, pointer, resize,
// wait and screenshot steps. Attach it with [Host.SetTestRunner] or
// [RunConfig.TestScript]; screenshots are written as PNG files to
// [Host.ScreenshotDir].
//
// [Ebitengine]: https://ebitengine.org
package backdrop
