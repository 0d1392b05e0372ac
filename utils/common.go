package utils

import "math"

const (
	NODETOL = 1.e-12
	// ROUNDOFF is the relative tolerance used when deciding whether two
	// abscissae are the same point.
	ROUNDOFF = 100 * 2.220446049250313e-16
)

// EqualWithinRoundoff compares a and b relative to the larger of their
// magnitudes, with an absolute floor of ROUNDOFF near zero.
func EqualWithinRoundoff(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= ROUNDOFF*scale
}
