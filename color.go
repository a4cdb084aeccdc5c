package backdrop

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a packed 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#rgb" or "#rrggbb" (the leading '#' is optional).
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// MustHex is ParseHex for package-level palettes; it panics on bad input.
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Color converts c to a float Color with the given alpha.
func (c RGB) Color(alpha float64) Color {
	return Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: alpha,
	}
}

// Mix interpolates a toward b by t, channel by channel. Each channel is
// rounded and clamped to [0, 255]. t is not clamped.
func Mix(a, b RGB, t float64) RGB {
	return RGB{
		R: mixChannel(a.R, b.R, t),
		G: mixChannel(a.G, b.G, t),
		B: mixChannel(a.B, b.B, t),
	}
}

func mixChannel(a, b uint8, t float64) uint8 {
	v := math.Round(lerp(float64(a), float64(b), t))
	return uint8(clamp(v, 0, 255))
}

// MixHex is Mix over hex strings.
func MixHex(from, to string, t float64) (string, error) {
	a, err := ParseHex(from)
	if err != nil {
		return "", err
	}
	b, err := ParseHex(to)
	if err != nil {
		return "", err
	}
	return Mix(a, b, t).Hex(), nil
}

// HSL builds a Color from hue in degrees, saturation and lightness in
// percent, and alpha in [0, 1]. Hue wraps; saturation and lightness clamp.
func HSL(h, s, l, a float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsl(h, clamp01(s/100), clamp01(l/100)).Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: a}
}
