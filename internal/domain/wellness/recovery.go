package wellness

// HRVBaseline is the expected heart rate variability in ms for age.
func HRVBaseline(age int) float64 {
	switch {
	case age < 30:
		return 60
	case age < 40:
		return 55
	case age < 50:
		return 45
	case age < 60:
		return 40
	default:
		return 35
	}
}

func Recovery(hrv *float64, age int) float64 {
	if hrv == nil {
		return NeutralScore
	}
	baseline := HRVBaseline(age)

	return atLeast(*hrv, []tier{
		{1.2 * baseline, 10},
		{baseline, 8},
		{0.8 * baseline, 6},
		{0.6 * baseline, 4},
	}, 2)
}
