package curve

import (
	"image"
	"image/color"
	"testing"

	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/input"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure(t *testing.T) {
	type testcase struct {
		name string
		max  image.Point
		want image.Point
	}
	for _, tc := range []testcase{
		{name: "wide", max: image.Pt(600, 1000), want: image.Pt(600, 400)},
		{name: "exact", max: image.Pt(300, 200), want: image.Pt(300, 200)},
		{name: "short", max: image.Pt(900, 200), want: image.Pt(300, 200)},
		{name: "empty", max: image.Pt(0, 0), want: image.Pt(0, 0)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Measure(tc.max))
		})
	}
}

func testTheme() *material.Theme {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	return th
}

func TestWidgetPress(t *testing.T) {
	var r input.Router
	th := testTheme()
	w := NewWidget(DefaultStyle())
	w.SetData(forecast, nil)

	gtx := layout.Context{
		Ops:         new(op.Ops),
		Source:      r.Source(),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Constraints: layout.Exact(image.Pt(300, 200)),
	}
	dims := w.Layout(gtx, th)
	assert.Equal(t, image.Pt(300, 200), dims.Size)
	r.Frame(gtx.Ops)

	g, err := w.Geometry()
	require.NoError(t, err)
	r.Queue(pointer.Event{
		Kind:     pointer.Press,
		Source:   pointer.Mouse,
		Buttons:  pointer.ButtonPrimary,
		Position: f32.Pt(g.Anchors[5].X, 20),
	})
	gtx.Ops.Reset()
	w.Layout(gtx, th)
	r.Frame(gtx.Ops)

	assert.Equal(t, 5, w.Selected())
	assert.Equal(t, 5, w.Current())
}

func TestWidgetLayoutWithoutData(t *testing.T) {
	var r input.Router
	w := NewWidget(DefaultStyle())
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Source:      r.Source(),
		Constraints: layout.Exact(image.Pt(300, 200)),
	}
	dims := w.Layout(gtx, testTheme())
	assert.Equal(t, image.Pt(300, 200), dims.Size)
	_, err := w.Geometry()
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestWidgetInset(t *testing.T) {
	var r input.Router
	w := NewWidget(DefaultStyle())
	w.Inset = layout.UniformInset(10)
	w.SetData(forecast, nil)
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Source:      r.Source(),
		Metric:      unit.Metric{PxPerDp: 2, PxPerSp: 2},
		Constraints: layout.Exact(image.Pt(300, 200)),
	}
	w.Layout(gtx, testTheme())
	g, err := w.Geometry()
	require.NoError(t, err)
	assert.Equal(t, float32(20), g.Left)
	assert.Equal(t, float32(20), g.Top)
	assert.Equal(t, float32(180), g.Bottom)
	assert.InDelta(t, 260.0/7, g.ColumnWidth, 1e-4)
}

func TestWidgetSetDataClearsImages(t *testing.T) {
	w := NewWidget(DefaultStyle())
	icon := image.NewRGBA(image.Rect(0, 0, 2, 2))
	w.images[icon] = paint.NewImageOp(icon)
	w.SetData(forecast, map[int]IconHandle{0: icon})
	assert.Empty(t, w.images)
	assert.Equal(t, len(forecast), w.Len())
}

// rowImage is a value-typed image holding a slice, so it is not comparable.
type rowImage struct {
	pix []color.NRGBA
}

func (r rowImage) ColorModel() color.Model { return color.NRGBAModel }
func (r rowImage) Bounds() image.Rectangle { return image.Rect(0, 0, len(r.pix), 1) }
func (r rowImage) At(x, y int) color.Color { return r.pix[x] }

func TestWidgetValueImages(t *testing.T) {
	var r input.Router
	w := NewWidget(DefaultStyle())
	red := color.NRGBA{R: 0xff, A: 0xff}
	pointerIcon := image.NewRGBA(image.Rect(0, 0, 2, 2))
	w.SetData(forecast, map[int]IconHandle{
		0: rowImage{pix: []color.NRGBA{red, red}},
		1: pointerIcon,
	})
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Source:      r.Source(),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Constraints: layout.Exact(image.Pt(300, 200)),
	}
	for i := 0; i < 2; i++ {
		assert.NotPanics(t, func() { w.Layout(gtx, testTheme()) })
		gtx.Ops.Reset()
	}
	assert.Len(t, w.images, 1)
	assert.Contains(t, w.images, IconHandle(pointerIcon))
}
