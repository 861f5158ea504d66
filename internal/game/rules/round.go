package rules

import "math"

// Round rounds to the nearest integer, with halves rounded up toward positive infinity.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Round2 rounds x to two decimal places.
func Round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
