package curve

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// argb unpacks a 0xAARRGGBB literal.
func argb(c uint32) color.NRGBA {
	return color.NRGBA{
		A: uint8(c >> 24),
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
	}
}

// ParseColor accepts "#RRGGBB" and "#AARRGGBB". A missing alpha channel is
// fully opaque.
func ParseColor(s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("color %q: missing leading '#'", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	switch len(hex) {
	case 6:
		return argb(0xff000000 | uint32(v)), nil
	case 8:
		return argb(uint32(v)), nil
	default:
		return color.NRGBA{}, fmt.Errorf("color %q: want 6 or 8 hex digits, got %d", s, len(hex))
	}
}

// FormatColor is the inverse of ParseColor and always includes alpha.
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}
