package wellness

import (
	"math"
	"time"
)

const (
	WeightCardiovascularFitness = 0.25
	WeightSleepQuality          = 0.25
	WeightPhysicalActivity      = 0.20
	WeightHeartHealth           = 0.15
	WeightRecovery              = 0.10
	WeightConsistency           = 0.05
)

const (
	MinComponentScore = 0.0
	MaxComponentScore = 10.0
	MaxTotalScore     = 100.0

	NeutralScore = 5.0
)

// Calculator turns a Snapshot into Components. It holds no state besides the clock
// and is safe for concurrent use.
type Calculator struct {
	Now func() time.Time
}

func NewCalculator() *Calculator {
	return &Calculator{Now: time.Now}
}

func (c *Calculator) Calculate(s Snapshot) Components {
	comp := Components{
		CardiovascularFitness: clampComponent(CardiovascularFitness(s.VO2Max, s.Age, s.Sex)),
		SleepQuality: clampComponent(SleepQuality(
			s.TotalSleepHours,
			s.DeepSleepHours,
			s.REMSleepHours,
			s.SleepAwakenings,
			s.MinutesAwakeDuringSleep,
		)),
		PhysicalActivity: clampComponent(PhysicalActivity(s.Steps, s.ActiveMinutes, s.WorkoutMinutes)),
		HeartHealth:      clampComponent(HeartHealth(s.RestingHeartRate, s.BloodOxygenPercent, s.Age)),
		Recovery:         clampComponent(Recovery(s.HeartRateVariability, s.Age)),
		Consistency:      clampComponent(Consistency(s.Last7DayTotalScores)),
	}

	comp.TotalScore = TotalScore(comp)
	comp.Category = Categorize(comp.TotalScore)
	comp.CalculatedAt = c.now()
	return comp
}

func (c *Calculator) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// TotalScore is the weighted sum of the six components scaled to [0,100].
// The sum is rounded to 1e-6 so category boundaries are not hit by float noise.
func TotalScore(c Components) float64 {
	sum := c.CardiovascularFitness*WeightCardiovascularFitness +
		c.SleepQuality*WeightSleepQuality +
		c.PhysicalActivity*WeightPhysicalActivity +
		c.HeartHealth*WeightHeartHealth +
		c.Recovery*WeightRecovery +
		c.Consistency*WeightConsistency

	total := math.Round(sum*10*1e6) / 1e6
	return math.Max(0, math.Min(MaxTotalScore, total))
}

func Categorize(total float64) Category {
	switch {
	case total >= 85:
		return CategoryExcellent
	case total >= 70:
		return CategoryGood
	case total >= 55:
		return CategoryFair
	case total >= 40:
		return CategoryBelowAverage
	default:
		return CategoryNeedsImprovement
	}
}

func clampComponent(v float64) float64 {
	return math.Max(MinComponentScore, math.Min(MaxComponentScore, v))
}

type tier struct {
	threshold float64
	score     float64
}

// atLeast returns the score of the first tier whose threshold v reaches.
func atLeast(v float64, tiers []tier, fallback float64) float64 {
	for _, t := range tiers {
		if v >= t.threshold {
			return t.score
		}
	}
	return fallback
}

// atMost is atLeast for metrics where lower is better.
func atMost(v float64, tiers []tier, fallback float64) float64 {
	for _, t := range tiers {
		if v <= t.threshold {
			return t.score
		}
	}
	return fallback
}
