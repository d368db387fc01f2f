package curve

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// Widget presents a View as a Gio widget. Pressing a column selects it.
type Widget struct {
	*View
	// Inset pads the drawing area inside the widget's bounds.
	Inset layout.Inset

	images map[IconHandle]paint.ImageOp
}

func NewWidget(style Style) *Widget {
	return &Widget{
		View:   NewView(style),
		images: make(map[IconHandle]paint.ImageOp),
	}
}

// SetData replaces the samples and icons and forgets image ops built for
// the previous icons.
func (w *Widget) SetData(samples []float32, icons map[int]IconHandle) {
	clear(w.images)
	w.View.SetData(samples, icons)
}

// Measure fits a 3:2 landscape box into max, preferring the full width.
func Measure(max image.Point) image.Point {
	height := max.X * 2 / 3
	if height <= max.Y {
		return image.Pt(max.X, height)
	}
	return image.Pt(max.Y*3/2, max.Y)
}

// Update processes pointer input. Only presses are handled; every other
// kind of pointer event is ignored.
func (w *Widget) Update(gtx C) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: w,
			Kinds:  pointer.Press,
		})
		if !ok {
			break
		}
		if e, ok := ev.(pointer.Event); ok && e.Kind == pointer.Press {
			w.Press(e.Position)
		}
	}
}

func (w *Widget) Layout(gtx C, th *material.Theme) D {
	size := gtx.Constraints.Constrain(Measure(gtx.Constraints.Max))
	w.SetMetric(gtx.Metric)
	w.Resize(Rect{
		Width:  float32(size.X),
		Height: float32(size.Y),
		Insets: Insets{
			Top:    float32(gtx.Dp(w.Inset.Top)),
			Right:  float32(gtx.Dp(w.Inset.Right)),
			Bottom: float32(gtx.Dp(w.Inset.Bottom)),
			Left:   float32(gtx.Dp(w.Inset.Left)),
		},
	})
	w.Update(gtx)

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, w)
	// Nothing is drawn while the data cannot be plotted; the View has
	// already logged why.
	_ = w.Render(NewGioCanvas(gtx, th, w.images))
	return D{Size: size}
}
