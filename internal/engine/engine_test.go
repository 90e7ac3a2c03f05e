package engine

import (
	"math"
)

// boundSource pins every draw to the low or high end of its range.
type boundSource struct {
	high bool
}

func (s boundSource) IntN(n int) int {
	if s.high {
		return n - 1
	}
	return 0
}

func (s boundSource) Float64() float64 {
	if s.high {
		return math.Nextafter(1, 0)
	}
	return 0
}

var (
	lowSource  Source = boundSource{}
	highSource Source = boundSource{high: true}
)
