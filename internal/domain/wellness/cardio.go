package wellness

import (
	"strings"
)

const (
	SexMale   = "male"
	SexFemale = "female"
)

// VO2Benchmark holds VO2 max thresholds in mL/kg/min.
type VO2Benchmark struct {
	Excellent float64
	Good      float64
	Fair      float64
}

type vo2Bracket struct {
	floor  int
	male   VO2Benchmark
	female VO2Benchmark
}

// Ordered by age floor. Ages outside the listed decades have no benchmark.
var vo2Brackets = []vo2Bracket{
	{floor: 20, male: VO2Benchmark{55, 48, 41}, female: VO2Benchmark{49, 42, 35}},
	{floor: 30, male: VO2Benchmark{52, 45, 38}, female: VO2Benchmark{46, 39, 32}},
	{floor: 40, male: VO2Benchmark{49, 42, 35}, female: VO2Benchmark{43, 36, 29}},
	{floor: 50, male: VO2Benchmark{46, 39, 32}, female: VO2Benchmark{40, 33, 26}},
	{floor: 60, male: VO2Benchmark{43, 36, 29}, female: VO2Benchmark{37, 30, 23}},
}

// LookupVO2Benchmark finds the thresholds for the decade bracket of age.
func LookupVO2Benchmark(age int, sex string) (VO2Benchmark, bool) {
	if age < 0 {
		return VO2Benchmark{}, false
	}
	floor := age / 10 * 10
	for _, b := range vo2Brackets {
		if b.floor != floor {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(sex)) {
		case SexMale:
			return b.male, true
		case SexFemale:
			return b.female, true
		default:
			return VO2Benchmark{}, false
		}
	}
	return VO2Benchmark{}, false
}

func CardiovascularFitness(vo2Max *float64, age int, sex string) float64 {
	if vo2Max == nil {
		return NeutralScore
	}
	b, ok := LookupVO2Benchmark(age, sex)
	if !ok {
		return NeutralScore
	}

	return atLeast(*vo2Max, []tier{
		{b.Excellent, 10},
		{b.Good, 7.5},
		{b.Fair, 5.0},
		{0.85 * b.Fair, 3.0},
	}, 1.0)
}
