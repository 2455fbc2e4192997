package wellness

var (
	stepTiers = []tier{
		{10000, 4.0},
		{7500, 3.5},
		{5000, 2.5},
		{2500, 1.5},
	}
	activeMinuteTiers = []tier{
		{40, 3.0},
		{25, 2.5},
		{15, 2.0},
		{10, 1.0},
	}
	workoutMinuteTiers = []tier{
		{30, 3.0},
		{20, 2.0},
		{10, 1.0},
	}
)

// PhysicalActivity sums independent step, active minute and workout scores.
// An absent signal contributes nothing.
func PhysicalActivity(steps, activeMinutes, workoutMinutes *int) float64 {
	var score float64

	if steps != nil {
		score += atLeast(float64(*steps), stepTiers, 0.5)
	}

	if activeMinutes != nil {
		score += atLeast(float64(*activeMinutes), activeMinuteTiers, 0.5)
	}

	if workoutMinutes != nil {
		w := *workoutMinutes
		if w > 0 {
			score += atLeast(float64(w), workoutMinuteTiers, 0.5)
		}
	}

	return clampComponent(score)
}
