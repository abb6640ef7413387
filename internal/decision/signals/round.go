package signals

import "math"

// ScorePrecision is the number of decimals emitted scores carry.
const ScorePrecision = 2

// Round rounds v to the given number of decimals. Exact halves go to the even
// neighbour, so 0.125 becomes 0.12.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(v*p) / p
}
