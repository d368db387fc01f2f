package curve

import (
	"math"

	"golang.org/x/exp/constraints"
)

// HitTest returns the index of the column containing x when n columns of
// columnWidth pixels start at left. Positions outside the columns report
// false rather than being clamped to the nearest column.
func HitTest(x, left, columnWidth float32, n int) (index int, ok bool) {
	if n <= 0 || !(columnWidth > 0) {
		return -1, false
	}
	col := floor((x - left) / columnWidth)
	if !(col >= 0 && col < float32(n)) {
		return -1, false
	}
	return int(col), true
}

func floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

func round[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Round(float64(a)))
}
