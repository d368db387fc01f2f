// Package snapshot renders a curve.View into an in-memory image, so a
// chart can be drawn without a window or GPU.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	"gioui.org/f32"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"git.sr.ht/~whereswaldon/curveview/curve"
)

// Canvas is a curve.Canvas backed by a gg raster context.
type Canvas struct {
	dc    *gg.Context
	font  *truetype.Font
	faces map[float32]font.Face
}

var _ curve.Canvas = (*Canvas)(nil)

// New returns a transparent canvas of the given size.
func New(width, height int) (*Canvas, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed parsing label font: %w", err)
	}
	return &Canvas{
		dc:    gg.NewContext(width, height),
		font:  f,
		faces: make(map[float32]font.Face),
	}, nil
}

// Image returns the pixels drawn so far.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the canvas to w as a PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// Fill paints the whole canvas with col. Use it for a background before
// rendering a view.
func (c *Canvas) Fill(col color.NRGBA) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

func (c *Canvas) face(size float32) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	// At 72 DPI a point is a pixel.
	f := truetype.NewFace(c.font, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[size] = f
	return f
}

func (c *Canvas) trace(p curve.Path) {
	c.dc.NewSubPath()
	for _, s := range p.Segments {
		switch s.Kind {
		case curve.SegmentMove:
			c.dc.MoveTo(float64(s.To.X), float64(s.To.Y))
		case curve.SegmentLine:
			c.dc.LineTo(float64(s.To.X), float64(s.To.Y))
		case curve.SegmentCube:
			c.dc.CubicTo(
				float64(s.Ctrl0.X), float64(s.Ctrl0.Y),
				float64(s.Ctrl1.X), float64(s.Ctrl1.Y),
				float64(s.To.X), float64(s.To.Y),
			)
		case curve.SegmentClose:
			c.dc.ClosePath()
		}
	}
}

func (c *Canvas) FillPath(p curve.Path, g curve.Gradient) {
	grad := gg.NewLinearGradient(
		float64(g.Stop1.X), float64(g.Stop1.Y),
		float64(g.Stop2.X), float64(g.Stop2.Y),
	)
	grad.AddColorStop(0, g.Color1)
	grad.AddColorStop(1, g.Color2)
	c.trace(p)
	c.dc.SetFillStyle(grad)
	c.dc.Fill()
}

func (c *Canvas) StrokePath(p curve.Path, width float32, col color.NRGBA) {
	c.trace(p)
	c.dc.SetColor(col)
	c.dc.SetLineWidth(float64(width))
	c.dc.SetLineCapRound()
	c.dc.Stroke()
}

func (c *Canvas) FillRect(b curve.Box, col color.NRGBA) {
	c.dc.DrawRectangle(float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy()))
	c.dc.SetColor(col)
	c.dc.Fill()
}

func (c *Canvas) FillCircle(center f32.Point, radius float32, col color.NRGBA) {
	if radius <= 0 {
		return
	}
	c.dc.DrawCircle(float64(center.X), float64(center.Y), float64(radius))
	c.dc.SetColor(col)
	c.dc.Fill()
}

func (c *Canvas) MeasureText(s string, size float32) curve.TextMetrics {
	f := c.face(size)
	c.dc.SetFontFace(f)
	w, _ := c.dc.MeasureString(s)
	m := f.Metrics()
	return curve.TextMetrics{
		Width:   float32(w),
		Ascent:  float32(m.Ascent.Ceil()),
		Descent: float32(m.Descent.Ceil()),
	}
}

func (c *Canvas) DrawText(s string, origin f32.Point, size float32, col color.NRGBA) {
	c.dc.SetFontFace(c.face(size))
	c.dc.SetColor(col)
	c.dc.DrawString(s, float64(origin.X), float64(origin.Y))
}

func (c *Canvas) DrawImage(img curve.IconHandle, b curve.Box) {
	sz := img.Bounds().Size()
	if sz.X == 0 || sz.Y == 0 {
		return
	}
	c.dc.Push()
	defer c.dc.Pop()
	c.dc.Translate(float64(b.Min.X), float64(b.Min.Y))
	c.dc.Scale(float64(b.Dx())/float64(sz.X), float64(b.Dy())/float64(sz.Y))
	o := img.Bounds().Min
	c.dc.DrawImage(img, -o.X, -o.Y)
}

// Render draws v at width by height pixels over background and writes
// the result to w as a PNG.
func Render(v *curve.View, width, height int, background color.NRGBA, w io.Writer) error {
	c, err := New(width, height)
	if err != nil {
		return err
	}
	c.Fill(background)
	v.Resize(curve.Rect{Width: float32(width), Height: float32(height)})
	if err := v.Render(c); err != nil {
		return fmt.Errorf("failed rendering %dx%d snapshot: %w", width, height, err)
	}
	return c.EncodePNG(w)
}

// RenderFile is Render writing to the named file.
func RenderFile(v *curve.View, width, height int, background color.NRGBA, path string) (err error) {
	if width <= 0 || height <= 0 || width > math.MaxInt16 || height > math.MaxInt16 {
		return fmt.Errorf("invalid snapshot size %dx%d", width, height)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed creating snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := Render(v, width, height, background, f); err != nil {
		return err
	}
	log.WithFields(log.Fields{"path": path, "width": width, "height": height}).Info("wrote snapshot")
	return nil
}
