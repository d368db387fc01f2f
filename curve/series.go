package curve

import "slices"

// Series represents the samples shown by a View, one per column.
type Series struct {
	values             []float32
	RangeMax, RangeMin float32
}

// NewSeries copies values into a new Series.
func NewSeries(values []float32) Series {
	var s Series
	s.values = make([]float32, 0, len(values))
	for _, v := range values {
		s.Append(v)
	}
	return s
}

// Append adds a sample to the end of the series and widens its range.
func (s *Series) Append(value float32) {
	if len(s.values) < 1 {
		s.RangeMax = value
		s.RangeMin = value
	}
	s.values = append(s.values, value)
	s.RangeMax = max(s.RangeMax, value)
	s.RangeMin = min(s.RangeMin, value)
}

func (s Series) Len() int {
	return len(s.values)
}

// At returns the sample in column i.
func (s Series) At(i int) float32 {
	return s.values[i]
}

// Valid reports whether i names a sample of the series.
func (s Series) Valid(i int) bool {
	return i >= 0 && i < len(s.values)
}

// Values returns a copy of the samples.
func (s Series) Values() []float32 {
	return slices.Clone(s.values)
}
