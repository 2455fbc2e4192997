package wellness

var sleepDurationTiers = []tier{
	{7.83, 5.0},
	{7.0, 4.5},
	{6.5, 4.0},
	{6.0, 3.0},
	{5.0, 2.0},
}

// SleepQuality adds duration (max 5), stage (max 3) and interruption (max 2) scores.
// Stage and interruption scores need both of their inputs.
func SleepQuality(totalHours, deepHours, remHours *float64, awakenings *int, minutesAwake *float64) float64 {
	if totalHours == nil {
		return NeutralScore
	}

	score := atLeast(*totalHours, sleepDurationTiers, 1.0)

	if deepHours != nil && remHours != nil && *totalHours > 0 {
		score += sleepStageScore(*deepHours / *totalHours, *remHours / *totalHours)
	}

	if minutesAwake != nil && awakenings != nil {
		score += sleepInterruptionScore(*minutesAwake, *awakenings)
	}

	return clampComponent(score)
}

func sleepStageScore(deepFraction, remFraction float64) float64 {
	var deep, rem float64
	switch {
	case deepFraction >= 0.13 && deepFraction <= 0.23:
		deep = 1.5
	case deepFraction >= 0.10 && deepFraction <= 0.27:
		deep = 1.0
	default:
		deep = 0.5
	}

	switch {
	case remFraction >= 0.20 && remFraction <= 0.25:
		rem = 1.5
	case remFraction >= 0.15 && remFraction <= 0.30:
		rem = 1.0
	default:
		rem = 0.5
	}
	return deep + rem
}

func sleepInterruptionScore(minutesAwake float64, awakenings int) float64 {
	switch {
	case minutesAwake <= 11 && awakenings <= 2:
		return 2.0
	case minutesAwake <= 25 && awakenings <= 4:
		return 1.5
	case minutesAwake <= 40 && awakenings <= 6:
		return 1.0
	default:
		return 0.5
	}
}
