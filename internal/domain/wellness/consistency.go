package wellness

import (
	"math"
)

const ConsistencyWindow = 7

var consistencyTiers = []tier{
	{5, 10},
	{10, 8},
	{15, 6},
	{20, 4},
}

// Consistency rewards low day-to-day variation of total scores. Anything but a full
// week of history scores neutral.
func Consistency(last7DayTotals []float64) float64 {
	if len(last7DayTotals) != ConsistencyWindow {
		return NeutralScore
	}

	sd := StdDev(last7DayTotals)
	for _, t := range consistencyTiers {
		if sd < t.threshold {
			return t.score
		}
	}
	return 2
}

// StdDev is the population standard deviation of values.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(values)))
}
