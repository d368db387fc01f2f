// Package glyph turns vector icons and image files into pre-decoded
// images usable as curve.IconHandle values.
package glyph

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	"golang.org/x/exp/shiny/iconvg"
	"golang.org/x/exp/shiny/materialdesign/icons"
	xdraw "golang.org/x/image/draw"

	"git.sr.ht/~whereswaldon/curveview/curve"
)

// ErrUnknownGlyph is returned by Named for names without a built-in icon.
var ErrUnknownGlyph = errors.New("unknown glyph")

// builtin maps weather condition names to material icons.
var builtin = map[string][]byte{
	"sun":    icons.ImageWBSunny,
	"cloud":  icons.FileCloud,
	"cloudy": icons.ImageWBCloudy,
	"snow":   icons.PlacesACUnit,
	"storm":  icons.ImageFlashOn,
}

// Names lists the conditions Named understands.
func Names() []string {
	return []string{"sun", "cloud", "cloudy", "snow", "storm"}
}

// Source returns the IconVG data of a built-in condition icon.
func Source(name string) ([]byte, bool) {
	src, ok := builtin[name]
	return src, ok
}

// FromIconVG rasterizes IconVG data size pixels wide in color c. The
// height follows the icon's aspect ratio.
func FromIconVG(src []byte, size int, c color.NRGBA) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("glyph size %d is not positive", size)
	}
	m, err := iconvg.DecodeMetadata(src)
	if err != nil {
		return nil, fmt.Errorf("failed decoding icon metadata: %w", err)
	}
	dx, dy := m.ViewBox.AspectRatio()
	img := image.NewRGBA(image.Rectangle{Max: image.Pt(size, int(float32(size)*dy/dx))})
	var z iconvg.Rasterizer
	z.SetDstImage(img, img.Bounds(), draw.Src)
	m.Palette[0] = color.RGBAModel.Convert(c).(color.RGBA)
	if err := iconvg.Decode(&z, src, &iconvg.DecodeOptions{Palette: &m.Palette}); err != nil {
		return nil, fmt.Errorf("failed rasterizing icon: %w", err)
	}
	return img, nil
}

// Named rasterizes the built-in icon for a weather condition.
func Named(name string, size int, c color.NRGBA) (*image.RGBA, error) {
	src, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownGlyph)
	}
	return FromIconVG(src, size, c)
}

// Load decodes an image file and scales it to fit a size by size square.
// Pass size 0 to keep the file's dimensions.
func Load(path string, size int) (image.Image, error) {
	img, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed loading glyph %q: %w", path, err)
	}
	if size <= 0 {
		return img, nil
	}
	b := img.Bounds()
	w, h := size, size
	if b.Dx() > b.Dy() {
		h = max(1, size*b.Dy()/b.Dx())
	} else if b.Dy() > b.Dx() {
		w = max(1, size*b.Dx()/b.Dy())
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst, nil
}

// Columns assigns icon to each of n columns.
func Columns(icon curve.IconHandle, n int) map[int]curve.IconHandle {
	m := make(map[int]curve.IconHandle, n)
	for i := 0; i < n; i++ {
		m[i] = icon
	}
	return m
}

// Conditions builds per-column icons from condition names, sharing one
// rasterization per distinct name. Empty names leave their column bare.
func Conditions(names []string, size int, c color.NRGBA) (map[int]curve.IconHandle, error) {
	cache := make(map[string]curve.IconHandle)
	out := make(map[int]curve.IconHandle)
	for i, name := range names {
		if name == "" {
			continue
		}
		icon, ok := cache[name]
		if !ok {
			img, err := Named(name, size, c)
			if err != nil {
				return nil, fmt.Errorf("column %d: %w", i, err)
			}
			icon = img
			cache[name] = icon
		}
		out[i] = icon
	}
	return out, nil
}
