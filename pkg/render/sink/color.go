package sink

import (
	"image/color"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// parseColor resolves CSS color names and hex strings. Empty strings and
// "none" resolve to transparent; unknown names fall back to black.
func parseColor(s string, alpha float64) gg.RGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	var c gg.RGBA
	switch {
	case s == "" || s == "none" || s == "transparent":
		return gg.RGBA{}
	case strings.HasPrefix(s, "#"):
		c = gg.Hex(s)
	default:
		named, ok := colornames.Map[s]
		if !ok {
			named = color.RGBA{A: 0xff}
		}
		c = gg.FromColor(named)
	}
	if alpha >= 0 && alpha < 1 {
		c.A *= alpha
	}
	return c
}

func isNone(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "" || s == "none" || s == "transparent"
}
