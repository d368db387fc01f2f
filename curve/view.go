package curve

import (
	"maps"

	"gioui.org/f32"
	"gioui.org/unit"
	log "github.com/sirupsen/logrus"
)

// View owns the state of a temperature curve: its samples, the column
// selection and the marker position. Resize, SetData and Render may be
// called in any order; geometry is rebuilt eagerly whenever an input that
// affects it changes, so Render never computes layout.
//
// A View is not safe for concurrent use.
type View struct {
	style  Style
	metric unit.Metric
	rect   Rect

	series Series
	icons  map[int]IconHandle

	current  int
	selected int

	geom     Geometry
	geomErr  error
	gradient gradientCache
}

// NewView returns an empty View. Its marker starts on column zero and no
// column is selected.
func NewView(style Style) *View {
	v := &View{
		style:    style,
		metric:   unit.Metric{PxPerDp: 1, PxPerSp: 1},
		selected: -1,
	}
	v.rebuild()
	return v
}

// Resize sets the drawing rectangle. Geometry is only rebuilt when the
// rectangle actually changes.
func (v *View) Resize(r Rect) {
	if r == v.rect {
		return
	}
	v.rect = r
	v.rebuild()
}

// SetMetric sets the Dp and Sp scale used to resolve the Style.
func (v *View) SetMetric(m unit.Metric) {
	if m == v.metric {
		return
	}
	v.metric = m
	v.rebuild()
}

// SetData replaces the samples and the per-column icons. Both are copied.
// A marker or selection that no longer names a column is reset.
func (v *View) SetData(samples []float32, icons map[int]IconHandle) {
	v.series = NewSeries(samples)
	v.icons = maps.Clone(icons)
	if !v.series.Valid(v.current) {
		v.current = 0
	}
	if !v.series.Valid(v.selected) {
		v.selected = -1
	}
	v.rebuild()
}

// SetCurrentIndex moves the marker and the selection highlight to column
// i. Indices outside the series are ignored.
func (v *View) SetCurrentIndex(i int) {
	if !v.series.Valid(i) {
		return
	}
	v.current = i
	v.selected = i
}

// SetIconSize changes how large column icons are drawn. It does not
// affect the curve.
func (v *View) SetIconSize(size unit.Dp) {
	v.style.IconSize = size
}

// SetStyle replaces the whole style.
func (v *View) SetStyle(s Style) {
	v.style = s
	v.rebuild()
}

func (v *View) Style() Style {
	return v.style
}

// Press handles a pointer-down at pt. Only the horizontal position
// matters. It reports whether pt hit a column, in which case that column
// becomes both selected and current.
func (v *View) Press(pt f32.Point) bool {
	if v.geomErr != nil {
		return false
	}
	i, ok := v.geom.HitTest(pt.X)
	if !ok {
		return false
	}
	v.current = i
	v.selected = i
	return true
}

// Selected returns the highlighted column, or -1.
func (v *View) Selected() int { return v.selected }

// Current returns the column carrying the marker.
func (v *View) Current() int { return v.current }

func (v *View) Len() int { return v.series.Len() }

func (v *View) Series() Series { return v.series }

// Max returns the largest sample, which the top of the band stands for.
func (v *View) Max() float32 { return v.series.RangeMax }

// Min returns the smallest sample.
func (v *View) Min() float32 { return v.series.RangeMin }

// Geometry returns the last computed layout, or the reason none is
// available.
func (v *View) Geometry() (Geometry, error) {
	return v.geom, v.geomErr
}

func (v *View) rebuild() {
	px := v.style.pixels(v.metric, v.rect.Height)
	v.geom, v.geomErr = Build(v.series.values, v.rect, px.lineWidth, px.axisOverlay)
	if v.geomErr != nil && v.series.Len() > 0 && v.rect != (Rect{}) {
		log.WithError(v.geomErr).WithField("samples", v.series.Len()).Debug("curve geometry unavailable")
	}
}

// Render paints the view onto c. It draws nothing and returns the
// geometry error when the current data or size cannot be plotted.
func (v *View) Render(c Canvas) error {
	if v.geomErr != nil {
		return v.geomErr
	}
	px := v.style.pixels(v.metric, v.rect.Height)
	g := v.gradient.get(v.rect.Height, v.style.GradientStart, v.style.GradientEnd)
	c.FillPath(v.geom.Fill, g)
	c.StrokePath(v.geom.Curve, px.lineWidth, v.style.LineColor)
	for i := range v.geom.Anchors {
		col := v.geom.Column(i)
		if i == v.selected {
			v.drawSelection(c, i, col, px)
		}
		if icon := v.icons[i]; icon != nil {
			left := col.Min.X + (col.Dx()-px.iconSize)/2
			top := col.Max.Y - px.iconSize - px.iconPadding
			c.DrawImage(icon, Box{
				Min: f32.Pt(left, top),
				Max: f32.Pt(left+px.iconSize, top+px.iconSize),
			})
		}
	}
	v.drawMarker(c, px)
	return nil
}

func (v *View) drawSelection(c Canvas, i int, col Box, px pixels) {
	c.FillRect(col, v.style.SelectedBlockColor)
	text := v.style.Unit.Label(v.series.At(i))
	m := c.MeasureText(text, px.labelSize)
	// Center the label within the overlay strip, or just below the top
	// edge when the strip is too short to hold it.
	strip := max(px.axisOverlay, m.Ascent+m.Descent)
	baseline := col.Min.Y + (strip+m.Ascent-m.Descent)/2
	c.DrawText(text, f32.Pt(col.Min.X+(col.Dx()-m.Width)/2, baseline), px.labelSize, v.style.SelectedBlockTextColor)
}

func (v *View) drawMarker(c Canvas, px pixels) {
	p := v.geom.Anchors[v.current]
	radius := px.lineWidth * 4.5
	c.FillCircle(p, radius, v.style.MarkerColor)
	c.FillCircle(p, radius-px.lineWidth, v.style.MarkerAccentColor)
}
