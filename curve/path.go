package curve

import (
	"image"
	"image/color"

	"gioui.org/f32"
)

// IconHandle is a pre-decoded glyph drawn at the bottom of a column. The
// view never loads or decodes images itself.
type IconHandle = image.Image

// Insets are the edge paddings of a drawing rectangle, in pixels.
type Insets struct {
	Top, Right, Bottom, Left float32
}

// Rect describes the area a View draws into, in pixels.
type Rect struct {
	Width, Height float32
	Insets        Insets
}

// Box is an axis-aligned rectangle in pixels.
type Box struct {
	Min, Max f32.Point
}

func (b Box) Dx() float32 { return b.Max.X - b.Min.X }
func (b Box) Dy() float32 { return b.Max.Y - b.Min.Y }

type SegmentKind uint8

const (
	SegmentMove SegmentKind = iota
	SegmentLine
	SegmentCube
	SegmentClose
)

// Segment is one drawing command of a Path. Ctrl0 and Ctrl1 are only
// meaningful for SegmentCube.
type Segment struct {
	Kind         SegmentKind
	Ctrl0, Ctrl1 f32.Point
	To           f32.Point
}

// Path is a backend-independent vector path. Canvases replay its segments
// into their own path types.
type Path struct {
	Segments []Segment
}

func (p *Path) MoveTo(to f32.Point) {
	p.Segments = append(p.Segments, Segment{Kind: SegmentMove, To: to})
}

func (p *Path) LineTo(to f32.Point) {
	p.Segments = append(p.Segments, Segment{Kind: SegmentLine, To: to})
}

func (p *Path) CubeTo(ctrl0, ctrl1, to f32.Point) {
	p.Segments = append(p.Segments, Segment{Kind: SegmentCube, Ctrl0: ctrl0, Ctrl1: ctrl1, To: to})
}

func (p *Path) Close() {
	p.Segments = append(p.Segments, Segment{Kind: SegmentClose})
}

// Start returns the point of the first segment.
func (p Path) Start() f32.Point {
	if len(p.Segments) == 0 {
		return f32.Point{}
	}
	return p.Segments[0].To
}

// End returns the pen position after the last segment that moves it.
func (p Path) End() f32.Point {
	for i := len(p.Segments) - 1; i >= 0; i-- {
		if p.Segments[i].Kind != SegmentClose {
			return p.Segments[i].To
		}
	}
	return f32.Point{}
}

// Clone returns a copy of p that shares no memory with it.
func (p Path) Clone() Path {
	return Path{Segments: append([]Segment(nil), p.Segments...)}
}

// Gradient is a linear two-stop gradient. Colors are padded beyond the
// stops.
type Gradient struct {
	Stop1, Stop2   f32.Point
	Color1, Color2 color.NRGBA
}

// TextMetrics describes a measured single line of text. Ascent and Descent
// are both positive distances from the baseline.
type TextMetrics struct {
	Width, Ascent, Descent float32
}

// Canvas is the drawing surface a View renders onto.
type Canvas interface {
	FillPath(p Path, g Gradient)
	StrokePath(p Path, width float32, c color.NRGBA)
	FillRect(b Box, c color.NRGBA)
	FillCircle(center f32.Point, radius float32, c color.NRGBA)
	MeasureText(s string, size float32) TextMetrics
	// DrawText draws s with its baseline starting at origin.
	DrawText(s string, origin f32.Point, size float32, c color.NRGBA)
	DrawImage(img IconHandle, b Box)
}
