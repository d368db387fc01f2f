package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHitTestColumns(t *testing.T) {
	g, err := Build(forecast, exampleRect(), 2, 40)
	require.NoError(t, err)
	for i := range forecast {
		col := g.Column(i)
		for _, x := range []float32{col.Min.X + 0.01, (col.Min.X + col.Max.X) / 2, col.Max.X - 0.01} {
			idx, ok := g.HitTest(x)
			assert.True(t, ok, "x=%v should hit column %d", x, i)
			assert.Equal(t, i, idx, "x=%v", x)
		}
	}
}

func TestHitTestOutside(t *testing.T) {
	type testcase struct {
		name string
		x    float32
	}
	width := float32(300)
	for _, tc := range []testcase{
		{name: "just left", x: -0.5},
		{name: "far left", x: -1000},
		{name: "just right", x: width + 0.5},
		{name: "past right", x: width + 25},
	} {
		t.Run(tc.name, func(t *testing.T) {
			idx, ok := HitTest(tc.x, 0, width/7, 7)
			assert.False(t, ok)
			assert.Equal(t, -1, idx)
		})
	}
}

func TestHitTestInsets(t *testing.T) {
	// Columns start after the left inset, so the inset itself is a miss.
	idx, ok := HitTest(10, 20, 40, 3)
	assert.False(t, ok)
	assert.Equal(t, -1, idx)

	idx, ok = HitTest(61, 20, 40, 3)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestHitTestDegenerate(t *testing.T) {
	_, ok := HitTest(5, 0, 10, 0)
	assert.False(t, ok)
	_, ok = HitTest(5, 0, 0, 3)
	assert.False(t, ok)
	var g Geometry
	_, ok = g.HitTest(0)
	assert.False(t, ok)
}
