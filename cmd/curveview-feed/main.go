package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: emit a synthetic temperature forecast as CSV
Usage:

 %[1]s -output forecast.csv & curveview -data forecast.csv

Every interval the forecast advances by one day: the first day is dropped
and a new one is appended, drifting randomly around the base temperature.
When writing to a file the whole forecast is replaced atomically, so a
viewer following the file never sees a partial write.

`, os.Args[0])
	flag.PrintDefaults()
}

// Generator produces a rolling forecast as a random walk.
type Generator struct {
	rng    *rand.Rand
	Base   float64
	Spread float64
	Start  time.Time
	Values []float64
}

// NewGenerator returns a forecast of days values around base.
func NewGenerator(rng *rand.Rand, days int, base, spread float64, start time.Time) *Generator {
	g := &Generator{
		rng:    rng,
		Base:   base,
		Spread: spread,
		Start:  start,
	}
	prev := base
	for i := 0; i < days; i++ {
		prev = g.next(prev)
		g.Values = append(g.Values, prev)
	}
	return g
}

// next steps the walk from prev, pulling it back towards the base so it
// never drifts more than spread away.
func (g *Generator) next(prev float64) float64 {
	v := prev + (g.rng.Float64()*2-1)*g.Spread/2 + (g.Base-prev)/4
	return min(max(v, g.Base-g.Spread), g.Base+g.Spread)
}

// Advance drops the first day and appends a new last one.
func (g *Generator) Advance() {
	if len(g.Values) == 0 {
		return
	}
	last := g.Values[len(g.Values)-1]
	g.Values = append(g.Values[1:], g.next(last))
	g.Start = g.Start.AddDate(0, 0, 1)
}

func (g *Generator) condition(v float64) string {
	switch {
	case v >= g.Base+g.Spread*0.6:
		return "sun"
	case v <= g.Base-g.Spread*0.6:
		return "storm"
	case v < g.Base:
		return "cloud"
	default:
		return "cloudy"
	}
}

// WriteCSV writes the forecast in the format curveview reads.
func (g *Generator) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "high (℃)", "condition"}); err != nil {
		return err
	}
	for i, v := range g.Values {
		day := g.Start.AddDate(0, 0, i).Format("Mon 2")
		if err := cw.Write([]string{day, strconv.FormatFloat(v, 'f', 1, 64), g.condition(v)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeFile replaces path with the current forecast.
func writeFile(g *Generator, path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed creating temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(tmp.Name()))
		}
	}()
	if err := g.WriteCSV(tmp); err != nil {
		return errors.Join(err, tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func main() {
	flag.Usage = usage
	dur := flag.Duration("sample-interval", time.Second, "Interval between advancing the forecast by one day")
	outputName := flag.String("output", "-", "Output file for the CSV forecast, or - for stdout")
	count := flag.Int("count", 7, "Number of days in the forecast")
	base := flag.Float64("base", 25, "Temperature the forecast drifts around")
	spread := flag.Float64("spread", 8, "Largest distance from the base temperature")
	seed := flag.Int64("seed", 0, "Random seed; 0 picks one from the clock")
	flag.Parse()
	if *count < 1 {
		log.Fatalf("count must be at least 1, got %d", *count)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.WithFields(log.Fields{"seed": *seed, "days": *count}).Info("starting forecast feed")

	g := NewGenerator(rand.New(rand.NewSource(*seed)), *count, *base, *spread, time.Now())
	emit := func() error {
		if *outputName == "-" {
			return g.WriteCSV(os.Stdout)
		}
		return writeFile(g, *outputName)
	}
	if err := emit(); err != nil {
		log.Fatalf("failed writing forecast: %v", err)
	}

	ticker := time.NewTicker(*dur)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer ticker.Stop()
	for {
		select {
		case <-sigChan:
			// We've gotten an interrupt; shut down.
			return
		case <-ticker.C:
			g.Advance()
			if err := emit(); err != nil {
				log.WithError(err).Error("failed writing forecast")
				continue
			}
			log.WithField("start", g.Start.Format(time.DateOnly)).Debug("advanced forecast")
		}
	}
}
