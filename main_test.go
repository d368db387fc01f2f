package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gioui.org/unit"
	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/curveview/backend"
	"git.sr.ht/~whereswaldon/curveview/curve"
)

func parseTestFlags(args ...string) (config, error) {
	fs := flag.NewFlagSet("curveview", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return parseFlags(fs, args)
}

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := parseTestFlags()
	require.NoError(t, err)
	assert.Equal(t, curve.DefaultStyle(), cfg.style)
	assert.Equal(t, 2, cfg.selected)
	assert.Equal(t, "cloud", cfg.glyph)
	assert.Empty(t, cfg.dataPath)
	assert.Empty(t, cfg.snapshotPath)
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseTestFlags(
		"-data", "week.csv",
		"-select", "4",
		"-line-width", "3",
		"-line-color", "#FF0000",
		"-gradient-start", "#80102030",
		"-background", "#000000",
		"-glyph", "",
	)
	require.NoError(t, err)
	assert.Equal(t, "week.csv", cfg.dataPath)
	assert.Equal(t, 4, cfg.selected)
	assert.Equal(t, unit.Dp(3), cfg.style.LineWidth)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, cfg.style.LineColor)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}, cfg.style.GradientStart)
	assert.Equal(t, color.NRGBA{A: 0xff}, cfg.background)
	assert.Empty(t, cfg.glyph)
}

func TestParseFlagsErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-line-color", "red"},
		{"-line-width", "0"},
		{"-glyph", "hail"},
		{"-log-level", "loud"},
	} {
		_, err := parseTestFlags(args...)
		assert.Error(t, err, "%v", args)
	}
}

func TestSampleForecast(t *testing.T) {
	f, err := backend.ParseForecast(strings.NewReader(sampleForecast))
	require.NoError(t, err)
	assert.Equal(t, []float32{25, 30, 28, 24, 36, 29, 27}, f.Values)
	assert.Len(t, forecastIcons(f, "", color.NRGBA{A: 0xff}), 7)
}

func TestForecastIconsFallback(t *testing.T) {
	f := backend.Forecast{Values: []float32{1, 2, 3}}
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	icons := forecastIcons(f, "sun", white)
	require.Len(t, icons, 3)
	assert.Same(t, icons[0], icons[2])
	assert.Nil(t, forecastIcons(f, "", white))
}

func TestGlyphImageFile(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	path := filepath.Join(t.TempDir(), "drop.png")
	out, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(out, src))
	require.NoError(t, out.Close())

	cfg, err := parseTestFlags("-glyph", path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.glyph)

	f := backend.Forecast{Values: []float32{1, 2, 3}}
	icons := forecastIcons(f, cfg.glyph, color.NRGBA{A: 0xff})
	require.Len(t, icons, 3)
	assert.Equal(t, image.Pt(iconRasterSize, iconRasterSize), icons[0].Bounds().Size())
	assert.Same(t, icons[0], icons[2])
}

func TestApplyUnplottable(t *testing.T) {
	cfg, err := parseTestFlags("-glyph", "")
	require.NoError(t, err)
	ui := &UI{cfg: cfg, panel: NewPanel(cfg.style)}

	ui.apply(backend.Forecast{Path: "/tmp/cold.csv", Values: []float32{-5, -2}})
	assert.False(t, ui.loaded)
	assert.Contains(t, ui.status, "cold.csv: cannot plot")
	assert.Contains(t, ui.status, curve.ErrNonPositiveMax.Error())

	ui.apply(backend.Forecast{Path: "week.csv", Values: []float32{-5, 3, 2}})
	assert.True(t, ui.loaded)
	assert.Equal(t, "week.csv: 3 samples from -5℃ to 3℃", ui.status)
	assert.Equal(t, 2, ui.panel.Selected())

	ui.apply(backend.Forecast{Path: "week.csv", Values: []float32{1, float32(math.Inf(1))}})
	assert.Contains(t, ui.status, curve.ErrNonFiniteSample.Error())
	// The last plottable forecast stays on screen.
	assert.Equal(t, 3, ui.panel.chart.Len())
}

func TestSnapshotMain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecast.png")
	cfg, err := parseTestFlags("-snapshot", path, "-width", "300", "-height", "200")
	require.NoError(t, err)
	require.NoError(t, snapshotMain(cfg))

	img, err := gg.LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	cfg.dataPath = filepath.Join(t.TempDir(), "missing.csv")
	assert.Error(t, snapshotMain(cfg))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
