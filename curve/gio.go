package curve

import (
	"image"
	"image/color"
	"reflect"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// GioCanvas draws into the operation list of a Gio layout context.
type GioCanvas struct {
	gtx    layout.Context
	th     *material.Theme
	images map[IconHandle]paint.ImageOp
}

var _ Canvas = (*GioCanvas)(nil)

// NewGioCanvas returns a canvas drawing with gtx's ops. Text uses th's
// shaper and typeface. images, when non-nil, caches the image ops built
// for icons across frames. Only pointer-typed icons are cached.
func NewGioCanvas(gtx layout.Context, th *material.Theme, images map[IconHandle]paint.ImageOp) *GioCanvas {
	return &GioCanvas{gtx: gtx, th: th, images: images}
}

func (g *GioCanvas) pathSpec(p Path) clip.PathSpec {
	var cp clip.Path
	cp.Begin(g.gtx.Ops)
	for _, s := range p.Segments {
		switch s.Kind {
		case SegmentMove:
			cp.MoveTo(s.To)
		case SegmentLine:
			cp.LineTo(s.To)
		case SegmentCube:
			cp.CubeTo(s.Ctrl0, s.Ctrl1, s.To)
		case SegmentClose:
			cp.Close()
		}
	}
	return cp.End()
}

func (g *GioCanvas) FillPath(p Path, grad Gradient) {
	defer clip.Outline{Path: g.pathSpec(p)}.Op().Push(g.gtx.Ops).Pop()
	paint.LinearGradientOp{
		Stop1:  grad.Stop1,
		Color1: grad.Color1,
		Stop2:  grad.Stop2,
		Color2: grad.Color2,
	}.Add(g.gtx.Ops)
	paint.PaintOp{}.Add(g.gtx.Ops)
}

func (g *GioCanvas) StrokePath(p Path, width float32, c color.NRGBA) {
	paint.FillShape(g.gtx.Ops, c, clip.Stroke{
		Path:  g.pathSpec(p),
		Width: width,
	}.Op())
	// Gio strokes end flat; cap both ends with a disc.
	if len(p.Segments) > 0 {
		g.FillCircle(p.Start(), width/2, c)
		g.FillCircle(p.End(), width/2, c)
	}
}

func (g *GioCanvas) FillRect(b Box, c color.NRGBA) {
	var p Path
	p.MoveTo(b.Min)
	p.LineTo(f32.Pt(b.Max.X, b.Min.Y))
	p.LineTo(b.Max)
	p.LineTo(f32.Pt(b.Min.X, b.Max.Y))
	p.Close()
	paint.FillShape(g.gtx.Ops, c, clip.Outline{Path: g.pathSpec(p)}.Op())
}

func (g *GioCanvas) FillCircle(center f32.Point, radius float32, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	paint.FillShape(g.gtx.Ops, c, clip.Ellipse{
		Min: image.Pt(int(round(center.X-radius)), int(round(center.Y-radius))),
		Max: image.Pt(int(round(center.X+radius)), int(round(center.Y+radius))),
	}.Op(g.gtx.Ops))
}

// label records the layout of a single line of text without drawing it.
func (g *GioCanvas) label(s string, size float32, c color.NRGBA) (layout.Dimensions, op.CallOp) {
	gtx := g.gtx
	gtx.Constraints = layout.Constraints{Max: image.Pt(1<<20, 1<<20)}
	l := material.Label(g.th, unit.Sp(size/nonZero(gtx.Metric.PxPerSp)), s)
	l.Color = c
	l.MaxLines = 1
	macro := op.Record(gtx.Ops)
	dims := l.Layout(gtx)
	return dims, macro.Stop()
}

func (g *GioCanvas) MeasureText(s string, size float32) TextMetrics {
	dims, _ := g.label(s, size, color.NRGBA{})
	return TextMetrics{
		Width:   float32(dims.Size.X),
		Ascent:  float32(dims.Size.Y - dims.Baseline),
		Descent: float32(dims.Baseline),
	}
}

func (g *GioCanvas) DrawText(s string, origin f32.Point, size float32, c color.NRGBA) {
	dims, call := g.label(s, size, c)
	ascent := float32(dims.Size.Y - dims.Baseline)
	defer op.Offset(image.Pt(int(round(origin.X)), int(round(origin.Y-ascent)))).Push(g.gtx.Ops).Pop()
	call.Add(g.gtx.Ops)
}

func (g *GioCanvas) DrawImage(img IconHandle, b Box) {
	// Non-pointer images may not be comparable, so they cannot be map keys.
	cacheable := g.images != nil && reflect.TypeOf(img).Kind() == reflect.Pointer
	var (
		imgOp  paint.ImageOp
		cached bool
	)
	if cacheable {
		imgOp, cached = g.images[img]
	}
	if !cached {
		imgOp = paint.NewImageOp(img)
		if cacheable {
			g.images[img] = imgOp
		}
	}
	sz := imgOp.Size()
	if sz.X == 0 || sz.Y == 0 {
		return
	}
	scale := f32.Pt(b.Dx()/float32(sz.X), b.Dy()/float32(sz.Y))
	defer op.Affine(f32.Affine2D{}.Scale(f32.Point{}, scale).Offset(b.Min)).Push(g.gtx.Ops).Pop()
	defer clip.Rect{Max: sz}.Push(g.gtx.Ops).Pop()
	imgOp.Add(g.gtx.Ops)
	paint.PaintOp{}.Add(g.gtx.Ops)
}
