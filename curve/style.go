package curve

import (
	"image/color"

	"gioui.org/unit"
)

// Style holds the colors and sizes of a View. The zero value is not
// useful; start from DefaultStyle.
type Style struct {
	GradientStart color.NRGBA
	GradientEnd   color.NRGBA
	LineColor     color.NRGBA
	LineWidth     unit.Dp

	SelectedBlockColor     color.NRGBA
	SelectedBlockTextColor color.NRGBA
	LabelSize              unit.Sp
	Unit                   Unit

	MarkerColor       color.NRGBA
	MarkerAccentColor color.NRGBA

	IconSize          unit.Dp
	IconBottomPadding unit.Dp

	// AxisOverlay is reserved above the plotting band so the selection
	// highlight can extend past the curve's highest point. The reserved
	// height is AxisOverlay plus AxisOverlayRatio of the view's height.
	AxisOverlay      unit.Dp
	AxisOverlayRatio float32
}

// DefaultStyle returns white-on-transparent styling suited to a dark or
// colored background.
func DefaultStyle() Style {
	return Style{
		GradientStart:          argb(0x33FFFFFF),
		GradientEnd:            color.NRGBA{},
		LineColor:              argb(0xFFFFFFFF),
		LineWidth:              2,
		SelectedBlockColor:     argb(0x66FFFFFF),
		SelectedBlockTextColor: argb(0xFFFFFFFF),
		LabelSize:              44,
		Unit:                   Celsius,
		MarkerColor:            argb(0xFFFFFFFF),
		MarkerAccentColor:      argb(0xFF6EACFF),
		IconSize:               40,
		IconBottomPadding:      20,
		AxisOverlayRatio:       0.2,
	}
}

// pixels are the Dp and Sp sizes of a Style converted for one metric and
// view height.
type pixels struct {
	lineWidth   float32
	labelSize   float32
	iconSize    float32
	iconPadding float32
	axisOverlay float32
}

func (s Style) pixels(m unit.Metric, height float32) pixels {
	dp := nonZero(m.PxPerDp)
	sp := nonZero(m.PxPerSp)
	return pixels{
		lineWidth:   float32(s.LineWidth) * dp,
		labelSize:   float32(s.LabelSize) * sp,
		iconSize:    float32(s.IconSize) * dp,
		iconPadding: float32(s.IconBottomPadding) * dp,
		axisOverlay: float32(s.AxisOverlay)*dp + s.AxisOverlayRatio*height,
	}
}

func nonZero(v float32) float32 {
	if v == 0 {
		return 1
	}
	return v
}
