package animation

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Tint lightens (factor > 0) or darkens (factor < 0) a hex accent
// color. The TUI uses stepped tints of the mood accent to render glow
// and pulse frames.
func Tint(hex string, factor float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	h, s, l := c.Hsl()
	l += factor
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	return colorful.Hsl(h, s, l).Clamped().Hex()
}

// Ramp returns n tints of hex stepping from darker to lighter around
// the base color, for animation frame cycling.
func Ramp(hex string, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	if n == 1 {
		out[0] = hex
		return out
	}
	span := 0.30
	for i := 0; i < n; i++ {
		factor := -span/2 + span*float64(i)/float64(n-1)
		out[i] = Tint(hex, factor)
	}
	return out
}
