package wellness

var (
	restingHeartRateTiers = []tier{
		{60, 6.0},
		{70, 5.0},
		{80, 4.0},
		{90, 2.5},
	}
	bloodOxygenTiers = []tier{
		{97, 4.0},
		{95, 3.5},
		{92, 2.5},
		{90, 1.5},
	}
)

// HeartHealth scores resting heart rate (max 6) and blood oxygen (max 4).
// age is accepted for future age-adjusted thresholds and currently ignored.
func HeartHealth(restingHeartRate, bloodOxygenPercent *float64, age int) float64 {
	var score float64
	if restingHeartRate != nil {
		score += atMost(*restingHeartRate, restingHeartRateTiers, 1.0)
	}
	if bloodOxygenPercent != nil {
		score += atLeast(*bloodOxygenPercent, bloodOxygenTiers, 0.5)
	}
	return clampComponent(score)
}
