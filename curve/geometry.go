package curve

import (
	"errors"
	"fmt"
	"math"

	"gioui.org/f32"
)

var (
	ErrEmptySeries     = errors.New("series has no samples")
	ErrNonPositiveMax  = errors.New("series maximum is not positive")
	ErrNonFiniteSample = errors.New("series has a NaN or infinite sample")
	ErrDegenerateRect  = errors.New("drawing rectangle leaves no room to plot")
)

// Geometry is everything a View needs to paint one series, computed by
// Build.
type Geometry struct {
	// Anchors holds one point per sample, at the horizontal center of the
	// sample's column.
	Anchors []f32.Point
	// Curve passes through every anchor and extends half a column past
	// the first and last one.
	Curve Path
	// Fill is Curve closed along the bottom of the plotting area.
	Fill Path

	Left, Top, Bottom   float32
	ColumnWidth         float32
	BandTop, BandHeight float32
	Max                 float32
}

// Check reports why samples cannot be plotted at any size, or nil when
// they can.
func Check(samples []float32) error {
	_, err := sampleMax(samples)
	return err
}

func sampleMax(samples []float32) (float32, error) {
	if len(samples) == 0 {
		return 0, ErrEmptySeries
	}
	maximum := samples[0]
	for i, v := range samples {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return 0, fmt.Errorf("sample %d is %v: %w", i, v, ErrNonFiniteSample)
		}
		maximum = max(maximum, v)
	}
	if maximum <= 0 {
		return 0, fmt.Errorf("max %v: %w", maximum, ErrNonPositiveMax)
	}
	return maximum, nil
}

// Build lays samples out inside r. strokeWidth is the curve's line width
// and axisOverlay the height reserved above the band for the selection
// highlight. Build is pure: the same inputs always produce the same
// coordinates. Samples below zero sit on the bottom of the band.
func Build(samples []float32, r Rect, strokeWidth, axisOverlay float32) (Geometry, error) {
	maximum, err := sampleMax(samples)
	if err != nil {
		return Geometry{}, err
	}
	n := len(samples)
	colWidth := (r.Width - r.Insets.Left - r.Insets.Right) / float32(n)
	bandHeight := r.Height - r.Insets.Top - r.Insets.Bottom - strokeWidth*4 - axisOverlay
	if !(colWidth > 0) || !(bandHeight > 0) {
		return Geometry{}, fmt.Errorf("%vx%v px for %d samples: %w", r.Width, r.Height, n, ErrDegenerateRect)
	}
	g := Geometry{
		Anchors:     make([]f32.Point, n),
		Left:        r.Insets.Left,
		Top:         r.Insets.Top,
		Bottom:      r.Height - r.Insets.Bottom,
		ColumnWidth: colWidth,
		BandTop:     r.Insets.Top + strokeWidth*1.5 + axisOverlay,
		BandHeight:  bandHeight,
		Max:         maximum,
	}
	for i, v := range samples {
		g.Anchors[i] = f32.Point{
			X: g.Left + float32(i)*colWidth + colWidth/2,
			Y: g.BandTop + (bandHeight - max(v, 0)/maximum*bandHeight),
		}
	}
	g.Curve = curvePath(g.Anchors, colWidth/2)
	g.Fill = g.Curve.Clone()
	g.Fill.LineTo(f32.Pt(g.Curve.End().X, g.Bottom))
	g.Fill.LineTo(f32.Pt(g.Left, g.Bottom))
	g.Fill.Close()
	return g, nil
}

// curvePath joins the anchors with cubic segments whose control points
// both sit at the horizontal midpoint between neighbours, each at its own
// endpoint's height. The path starts and ends with flat runs of length
// halfGap so the curve spans every column fully.
func curvePath(anchors []f32.Point, halfGap float32) Path {
	var p Path
	first := anchors[0]
	start := f32.Pt(first.X-halfGap, first.Y)
	p.MoveTo(start)
	p.CubeTo(start, first, first)
	for i := 0; i < len(anchors)-1; i++ {
		from, to := anchors[i], anchors[i+1]
		mid := (from.X + to.X) / 2
		p.CubeTo(f32.Pt(mid, from.Y), f32.Pt(mid, to.Y), to)
	}
	last := anchors[len(anchors)-1]
	end := f32.Pt(last.X+halfGap, last.Y)
	p.CubeTo(last, end, end)
	return p
}

// Len returns the number of columns.
func (g Geometry) Len() int {
	return len(g.Anchors)
}

// Column returns the full-height bounds of column i.
func (g Geometry) Column(i int) Box {
	left := g.Left + float32(i)*g.ColumnWidth
	return Box{
		Min: f32.Pt(left, g.Top),
		Max: f32.Pt(left+g.ColumnWidth, g.Bottom),
	}
}

// HitTest maps a horizontal pointer position to the column under it.
func (g Geometry) HitTest(x float32) (int, bool) {
	return HitTest(x, g.Left, g.ColumnWidth, g.Len())
}
