package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	log "github.com/sirupsen/logrus"

	"git.sr.ht/~whereswaldon/curveview/backend"
	"git.sr.ht/~whereswaldon/curveview/curve"
	"git.sr.ht/~whereswaldon/curveview/glyph"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// iconRasterSize is the pixel size column icons are rasterized at. The
// chart scales them to the style's icon size.
const iconRasterSize = 96

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer
	cfg  config

	panel   *Panel
	openBtn widget.Clickable
	loaded  bool
	status  string

	th             *material.Theme
	forecastStream *stream.Stream[backend.Forecast]
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, cfg config) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	th.Palette = material.Palette{
		Bg:         cfg.background,
		Fg:         cfg.style.LineColor,
		ContrastBg: cfg.style.SelectedBlockColor,
		ContrastFg: cfg.style.SelectedBlockTextColor,
	}
	return &UI{
		ws:             ws,
		expl:           expl,
		cfg:            cfg,
		th:             th,
		panel:          NewPanel(cfg.style),
		status:         "No forecast yet.",
		forecastStream: stream.New(ws.Controller, ws.Bundle.Datasource.Forecasts),
	}
}

// Update the state of the UI from new forecasts and input.
func (ui *UI) Update(gtx C) {
	if f, isNew := ui.forecastStream.ReadNew(gtx); isNew {
		ui.apply(f)
	}
	if ui.openBtn.Clicked(gtx) {
		go func() {
			err := ui.ws.Bundle.Datasource.LoadFromFile(ui.expl)
			if err != nil && !errors.Is(err, explorer.ErrUserDecline) {
				log.WithError(err).Warn("failed opening forecast")
			}
		}()
	}
}

func (ui *UI) apply(f backend.Forecast) {
	name := "forecast"
	if f.Path != "" {
		name = filepath.Base(f.Path)
	}
	if f.Err != nil {
		// Keep showing the last good forecast.
		ui.status = fmt.Sprintf("%s: %v", name, f.Err)
		return
	}
	if err := curve.Check(f.Values); err != nil {
		ui.status = fmt.Sprintf("%s: cannot plot: %v", name, err)
		return
	}
	ui.panel.SetForecast(f, forecastIcons(f, ui.cfg.glyph, ui.cfg.style.LineColor))
	if !ui.loaded {
		ui.panel.Select(ui.cfg.selected)
		ui.loaded = true
	}
	chart := ui.panel.chart
	ui.status = fmt.Sprintf("%s: %d samples from %s to %s", name, chart.Len(), f.Unit.Label(chart.Min()), f.Unit.Label(chart.Max()))
}

// forecastIcons picks column icons for f: its own conditions when it has
// them, otherwise fallback under every column. fallback names a built-in
// glyph or an image file; empty means no icons.
func forecastIcons(f backend.Forecast, fallback string, c color.NRGBA) map[int]curve.IconHandle {
	if f.Conditions != nil {
		icons, err := glyph.Conditions(f.Conditions, iconRasterSize, c)
		if err == nil {
			return icons
		}
		log.WithError(err).Warn("failed drawing forecast conditions")
	}
	if fallback == "" {
		return nil
	}
	icon, err := fallbackIcon(fallback, c)
	if err != nil {
		log.WithError(err).Warn("failed drawing column icon")
		return nil
	}
	return glyph.Columns(icon, len(f.Values))
}

func fallbackIcon(name string, c color.NRGBA) (curve.IconHandle, error) {
	if _, ok := glyph.Source(name); ok {
		img, err := glyph.Named(name, iconRasterSize, c)
		if err != nil {
			return nil, err
		}
		return img, nil
	}
	return glyph.Load(name, iconRasterSize)
}

func (ui *UI) layoutHeader(gtx C) D {
	return layout.UniformInset(8).Layout(gtx, func(gtx C) D {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Flexed(1, func(gtx C) D {
				l := material.Body1(ui.th, ui.status)
				l.MaxLines = 1
				return l.Layout(gtx)
			}),
			layout.Rigid(func(gtx C) D {
				return material.Button(ui.th, &ui.openBtn, "Open Forecast").Layout(gtx)
			}),
		)
	})
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(ui.layoutHeader),
		layout.Flexed(1, func(gtx C) D {
			return ui.panel.Layout(gtx, ui.th)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body1(ui.th, ui.status).Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.openBtn, "Open Forecast").Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	paint.Fill(gtx.Ops, ui.cfg.background)
	if ui.loaded {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
