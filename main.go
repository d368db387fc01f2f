package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/x/explorer"
	log "github.com/sirupsen/logrus"

	"git.sr.ht/~whereswaldon/curveview/backend"
	"git.sr.ht/~whereswaldon/curveview/curve"
	"git.sr.ht/~whereswaldon/curveview/glyph"
	"git.sr.ht/~whereswaldon/curveview/snapshot"
)

// sampleForecast is shown when no forecast file is given.
const sampleForecast = `day, high (℃), condition
Mon, 25, sun
Tue, 30, sun
Wed, 28, cloudy
Thu, 24, cloud
Fri, 36, sun
Sat, 29, storm
Sun, 27, cloud
`

type config struct {
	dataPath     string
	snapshotPath string
	width        int
	height       int
	selected     int
	glyph        string
	background   color.NRGBA
	style        curve.Style
}

func colorFlag(fs *flag.FlagSet, dst *color.NRGBA, name, usage string) {
	fs.Func(name, fmt.Sprintf("%s as #RRGGBB or #AARRGGBB (default %s)", usage, curve.FormatColor(*dst)), func(s string) error {
		c, err := curve.ParseColor(s)
		if err != nil {
			return err
		}
		*dst = c
		return nil
	})
}

func parseFlags(fs *flag.FlagSet, args []string) (config, error) {
	cfg := config{
		background: color.NRGBA{R: 0x2d, G: 0x6f, B: 0xd6, A: 0xff},
		style:      curve.DefaultStyle(),
	}
	var (
		lineWidth = fs.Float64("line-width", float64(cfg.style.LineWidth), "curve stroke width in dp")
		iconSize  = fs.Float64("icon-size", float64(cfg.style.IconSize), "column icon size in dp")
		logLevel  = fs.String("log-level", "info", "one of "+strings.Join(levelNames(), ", "))
	)
	fs.StringVar(&cfg.dataPath, "data", "", "forecast CSV to display; it is reloaded whenever it changes")
	fs.StringVar(&cfg.snapshotPath, "snapshot", "", "render the forecast to this PNG file and exit instead of opening a window")
	fs.IntVar(&cfg.width, "width", 600, "snapshot width in pixels")
	fs.IntVar(&cfg.height, "height", 400, "snapshot height in pixels")
	fs.IntVar(&cfg.selected, "select", 2, "column selected when the first forecast loads")
	fs.StringVar(&cfg.glyph, "glyph", "cloud", "icon under every column of forecasts without a condition column: one of "+strings.Join(glyph.Names(), ", ")+", an image file, or empty for none")
	colorFlag(fs, &cfg.background, "background", "window and snapshot background")
	colorFlag(fs, &cfg.style.LineColor, "line-color", "curve color")
	colorFlag(fs, &cfg.style.GradientStart, "gradient-start", "fill color below the curve")
	colorFlag(fs, &cfg.style.GradientEnd, "gradient-end", "fill color at the bottom")
	colorFlag(fs, &cfg.style.SelectedBlockColor, "selection-color", "selected column highlight")
	colorFlag(fs, &cfg.style.MarkerAccentColor, "marker-color", "marker center")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags]\n\n", fs.Name())
		fmt.Fprintf(fs.Output(), "Shows a temperature forecast as a curve. Forecasts are CSV files with a\n")
		fmt.Fprintf(fs.Output(), "header row followed by one row per sample:\n\n%s\n", sampleForecast)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		return cfg, err
	}
	log.SetLevel(level)
	if *lineWidth <= 0 {
		return cfg, fmt.Errorf("line width must be positive, got %v", *lineWidth)
	}
	cfg.style.LineWidth = unit.Dp(*lineWidth)
	cfg.style.IconSize = unit.Dp(*iconSize)
	if cfg.glyph != "" {
		if _, ok := glyph.Source(cfg.glyph); !ok {
			if _, err := os.Stat(cfg.glyph); err != nil {
				return cfg, fmt.Errorf("glyph %q is not a built-in icon or an image file: %w", cfg.glyph, err)
			}
		}
	}
	return cfg, nil
}

func levelNames() []string {
	names := make([]string, len(log.AllLevels))
	for i, l := range log.AllLevels {
		names[i] = l.String()
	}
	return names
}

func main() {
	fs := flag.NewFlagSet("curveview", flag.ExitOnError)
	cfg, err := parseFlags(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.snapshotPath != "" {
		if err := snapshotMain(cfg); err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bundle, err := backend.NewBundle(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.dataPath != "" {
		if err := bundle.Datasource.Open(cfg.dataPath); err != nil {
			log.Fatal(err)
		}
	} else {
		bundle.Datasource.LoadFromReader("sample", io.NopCloser(strings.NewReader(sampleForecast)))
	}

	go func() {
		w := app.NewWindow(app.Title("Forecast"), app.Size(unit.Dp(420), unit.Dp(640)))
		if err := loop(ctx, w, bundle, cfg); err != nil {
			log.Fatal(err)
		}
		bundle.Datasource.Close()
		os.Exit(0)
	}()

	app.Main()
}

// loadForecast reads the configured forecast once.
func loadForecast(cfg config) (backend.Forecast, error) {
	if cfg.dataPath == "" {
		return backend.ParseForecast(strings.NewReader(sampleForecast))
	}
	f, err := os.Open(cfg.dataPath)
	if err != nil {
		return backend.Forecast{}, fmt.Errorf("failed opening forecast: %w", err)
	}
	defer f.Close()
	forecast, err := backend.ParseForecast(f)
	if err != nil {
		return backend.Forecast{}, fmt.Errorf("failed parsing %q: %w", cfg.dataPath, err)
	}
	forecast.Path = cfg.dataPath
	return forecast, nil
}

func snapshotMain(cfg config) error {
	f, err := loadForecast(cfg)
	if err != nil {
		return err
	}
	cfg.style.Unit = f.Unit
	v := curve.NewView(cfg.style)
	v.SetData(f.Values, forecastIcons(f, cfg.glyph, cfg.style.LineColor))
	v.SetCurrentIndex(cfg.selected)
	return snapshot.RenderFile(v, cfg.width, cfg.height, cfg.background, cfg.snapshotPath)
}

func loop(ctx context.Context, w *app.Window, bundle backend.Bundle, cfg config) error {
	ws := backend.NewWindowState(ctx, bundle, w)
	expl := explorer.NewExplorer(w)
	ui := NewUI(ws, expl, cfg)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
