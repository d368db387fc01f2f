package main

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"

	"git.sr.ht/~whereswaldon/curveview/backend"
	"git.sr.ht/~whereswaldon/curveview/curve"
	"git.sr.ht/~whereswaldon/curveview/glyph"
)

// Panel shows a forecast as a curve above a table of its rows. Pressing
// a column or a row selects that sample in both.
type Panel struct {
	chart    *curve.Widget
	keyTable component.GridState
	rows     []widget.Clickable
	forecast backend.Forecast
	// conditionIcons caches the table's icon per condition name; nil
	// entries mark names without one.
	conditionIcons map[string]*widget.Icon
}

func NewPanel(style curve.Style) *Panel {
	p := &Panel{
		chart:          curve.NewWidget(style),
		conditionIcons: make(map[string]*widget.Icon),
	}
	p.chart.Inset = layout.Inset{Top: 8, Bottom: 8}
	return p
}

// SetForecast replaces the displayed forecast. icons are drawn under
// the matching columns.
func (p *Panel) SetForecast(f backend.Forecast, icons map[int]curve.IconHandle) {
	style := p.chart.Style()
	if style.Unit != f.Unit {
		style.Unit = f.Unit
		p.chart.SetStyle(style)
	}
	p.chart.SetData(f.Values, icons)
	if len(p.rows) != len(f.Values) {
		p.rows = make([]widget.Clickable, len(f.Values))
	}
	p.forecast = f
}

func (p *Panel) Select(i int) {
	p.chart.SetCurrentIndex(i)
}

func (p *Panel) Selected() int {
	return p.chart.Selected()
}

func (p *Panel) Update(gtx C) {
	for i := range p.rows {
		if p.rows[i].Clicked(gtx) {
			p.chart.SetCurrentIndex(i)
		}
	}
}

func (p *Panel) conditionIcon(name string) *widget.Icon {
	if icon, ok := p.conditionIcons[name]; ok {
		return icon
	}
	var icon *widget.Icon
	if src, ok := glyph.Source(name); ok {
		icon, _ = widget.NewIcon(src)
	}
	p.conditionIcons[name] = icon
	return icon
}

func (p *Panel) Layout(gtx C, th *material.Theme) D {
	p.Update(gtx)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return p.chart.Layout(gtx, th)
		}),
		layout.Flexed(1, func(gtx C) D {
			return p.layoutTable(gtx, th)
		}),
	)
}

func (p *Panel) layoutTable(gtx C, th *material.Theme) D {
	table := component.Table(th, &p.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	conditionColWidth := gtx.Dp(60)
	valueColWidth := gtx.Dp(100)
	labelColWidth := gtx.Constraints.Max.X - conditionColWidth - valueColWidth - gtx.Dp(table.VScrollbarStyle.Width())
	rowHeight := gtx.Sp(24)
	const (
		labelCol = iota
		valueCol
		conditionCol
		numCols
	)
	selected := p.chart.Selected()
	return table.Layout(gtx, len(p.forecast.Values), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case labelCol:
				size = labelColWidth
			case valueCol:
				size = valueColWidth
			case conditionCol:
				size = conditionColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case labelCol:
				l = material.Body1(th, "Day")
			case valueCol:
				l = material.Body1(th, p.forecast.Heading)
				l.Alignment = text.End
			case conditionCol:
				l = material.Body1(th, "")
			default:
				l = material.Body1(th, "???")
			}
			l.Color = th.ContrastFg
			l.MaxLines = 1
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, func(gtx C) D {
					return layout.UniformInset(2).Layout(gtx, l.Layout)
				},
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			if row == selected {
				highlight := th.Fg
				highlight.A = 50
				paint.FillShape(gtx.Ops, highlight, clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return p.rows[row].Layout(gtx, func(gtx C) D {
				return layout.UniformInset(2).Layout(gtx, func(gtx C) D {
					switch col {
					case labelCol:
						return material.Body2(th, p.forecast.Labels[row]).Layout(gtx)
					case valueCol:
						l := material.Body2(th, p.forecast.Unit.Label(p.forecast.Values[row]))
						l.Alignment = text.End
						return l.Layout(gtx)
					case conditionCol:
						if row >= len(p.forecast.Conditions) {
							return D{Size: gtx.Constraints.Min}
						}
						icon := p.conditionIcon(p.forecast.Conditions[row])
						if icon == nil {
							return material.Body2(th, p.forecast.Conditions[row]).Layout(gtx)
						}
						return layout.Center.Layout(gtx, func(gtx C) D {
							sz := gtx.Dp(unit.Dp(16))
							gtx.Constraints = layout.Exact(image.Pt(sz, sz))
							return icon.Layout(gtx, th.Fg)
						})
					default:
						return D{Size: gtx.Constraints.Max}
					}
				})
			})
		})
}
