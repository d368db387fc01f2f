package curve

import (
	"image/color"

	"gioui.org/f32"
)

type gradientKey struct {
	height     float32
	start, end color.NRGBA
}

// gradientCache holds the background gradient for the last height and
// color pair it was asked for.
type gradientCache struct {
	key      gradientKey
	valid    bool
	gradient Gradient
	builds   int
}

// get returns a vertical gradient running from start at a quarter of the
// height to end at the bottom, rebuilding it only when a key changes.
func (c *gradientCache) get(height float32, start, end color.NRGBA) Gradient {
	key := gradientKey{height: height, start: start, end: end}
	if c.valid && c.key == key {
		return c.gradient
	}
	c.key = key
	c.valid = true
	c.builds++
	c.gradient = Gradient{
		Stop1:  f32.Pt(0, height*0.25),
		Color1: start,
		Stop2:  f32.Pt(0, height),
		Color2: end,
	}
	return c.gradient
}
