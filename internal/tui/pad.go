package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncatePad fits s into exactly width display cells, truncating with
// an ellipsis or padding with spaces. Wide runes count per cell.
func truncatePad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := runewidth.StringWidth(s)
	if w == width {
		return s
	}
	if w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return runewidth.Truncate(s, width, "…")
}
