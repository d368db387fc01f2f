package backend

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"git.sr.ht/~whereswaldon/curveview/curve"
)

var (
	ErrNoHeader  = errors.New("forecast has no header row")
	ErrNoSamples = errors.New("forecast has no samples")
)

// Forecast is one parsed forecast file. Err is set instead of the data
// when a load failed.
type Forecast struct {
	Path string
	// Heading is the header of the column the values came from.
	Heading string
	Unit    curve.Unit
	Labels  []string
	Values  []float32
	// Conditions names a weather condition per sample, or is empty when
	// the file has no condition column.
	Conditions []string
	Err        error
}

// unitMarkers are looked for in column headings, in order.
var unitMarkers = []struct {
	marker string
	unit   curve.Unit
}{
	{"(℃)", curve.Celsius},
	{"(C)", curve.Celsius},
	{"(℉)", curve.Fahrenheit},
	{"(F)", curve.Fahrenheit},
	{"(K)", curve.Kelvin},
}

func headingUnit(heading string) (curve.Unit, bool) {
	for _, m := range unitMarkers {
		if strings.Contains(heading, m.marker) {
			return m.unit, true
		}
	}
	return curve.Celsius, false
}

func isConditionHeading(heading string) bool {
	h := strings.TrimSpace(heading)
	return strings.EqualFold(h, "condition") || strings.EqualFold(h, "icon")
}

// ParseForecast reads a CSV forecast. The first row holds headings. The
// first column labels each row, and the values come from the first column
// whose heading names a temperature unit, such as "high (℃)", or from the
// second column if none does. An optional "condition" column names the
// weather for each row. Rows whose value does not parse are skipped.
func ParseForecast(r io.Reader) (Forecast, error) {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	csvReader.Comment = '#'
	headings, err := csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Forecast{}, ErrNoHeader
		}
		return Forecast{}, fmt.Errorf("failed reading forecast headings: %w", err)
	}
	valueIdx, conditionIdx := -1, -1
	unit := curve.Celsius
	for i, heading := range headings {
		if i == 0 {
			continue
		}
		if u, ok := headingUnit(heading); ok && valueIdx < 0 {
			valueIdx = i
			unit = u
		}
		if isConditionHeading(heading) && conditionIdx < 0 {
			conditionIdx = i
		}
	}
	if valueIdx < 0 {
		if len(headings) < 2 {
			return Forecast{}, fmt.Errorf("forecast has %d columns: %w", len(headings), ErrNoSamples)
		}
		valueIdx = 1
	}
	f := Forecast{
		Heading: strings.TrimSpace(headings[valueIdx]),
		Unit:    unit,
	}
	hasConditions := false
	for row := 2; ; row++ {
		rec, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Forecast{}, fmt.Errorf("failed reading forecast row %d: %w", row, err)
		}
		if valueIdx >= len(rec) {
			log.WithField("row", row).Warn("forecast row has no value")
			continue
		}
		cell := strings.TrimSpace(rec[valueIdx])
		if len(cell) < 1 {
			// Skip null cells.
			continue
		}
		v, err := strconv.ParseFloat(cell, 32)
		if err != nil {
			log.WithFields(log.Fields{"row": row, "value": cell}).Warn("failed parsing forecast value")
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			log.WithFields(log.Fields{"row": row, "value": cell}).Warn("skipping non-finite forecast value")
			continue
		}
		var condition string
		if conditionIdx >= 0 && conditionIdx < len(rec) {
			condition = strings.ToLower(strings.TrimSpace(rec[conditionIdx]))
			hasConditions = hasConditions || condition != ""
		}
		f.Labels = append(f.Labels, strings.TrimSpace(rec[0]))
		f.Values = append(f.Values, float32(v))
		f.Conditions = append(f.Conditions, condition)
	}
	if len(f.Values) == 0 {
		return Forecast{}, ErrNoSamples
	}
	if !hasConditions {
		f.Conditions = nil
	}
	return f, nil
}
