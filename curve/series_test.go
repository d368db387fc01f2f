package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeries(t *testing.T) {
	s := Series{}
	sampleCount := 10
	for i := 0; i < sampleCount; i++ {
		s.Append(float32(i))
		if s.RangeMax != float32(i) {
			t.Errorf("expected running max %d after sample %d, got %f", i, i, s.RangeMax)
		}
	}
	assert.Equal(t, sampleCount, s.Len())
	assert.Equal(t, float32(0), s.RangeMin)
	assert.True(t, s.Valid(0))
	assert.True(t, s.Valid(sampleCount-1))
	assert.False(t, s.Valid(sampleCount))
	assert.False(t, s.Valid(-1))
}

func TestNewSeriesCopies(t *testing.T) {
	values := []float32{25, 30, 28, 24, 36, 29, 27}
	s := NewSeries(values)
	values[4] = 100
	assert.Equal(t, float32(36), s.At(4))
	assert.Equal(t, float32(36), s.RangeMax)
	assert.Equal(t, float32(24), s.RangeMin)

	out := s.Values()
	out[0] = -1
	assert.Equal(t, float32(25), s.At(0))
}

func TestSeriesFirstSampleSetsRange(t *testing.T) {
	// A negative first sample must not leave the zero value as maximum.
	s := NewSeries([]float32{-5, -2, -9})
	assert.Equal(t, float32(-2), s.RangeMax)
	assert.Equal(t, float32(-9), s.RangeMin)
}
