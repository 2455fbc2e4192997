package wellness

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.October, 19, 8, 30, 0, 0, time.UTC)

func newTestCalculator() *Calculator {
	return &Calculator{Now: func() time.Time { return fixedNow }}
}

func TestWeightsSumToOne(t *testing.T) {
	sum := WeightCardiovascularFitness +
		WeightSleepQuality +
		WeightPhysicalActivity +
		WeightHeartHealth +
		WeightRecovery +
		WeightConsistency
	require.InDelta(t, 1.0, sum, 1e-12)
}

func TestCalculateEmptySnapshot(t *testing.T) {
	c := newTestCalculator().Calculate(Snapshot{})

	require.Equal(t, NeutralScore, c.CardiovascularFitness)
	require.Equal(t, NeutralScore, c.SleepQuality)
	require.Equal(t, 0.0, c.PhysicalActivity)
	require.Equal(t, 0.0, c.HeartHealth)
	require.Equal(t, NeutralScore, c.Recovery)
	require.Equal(t, NeutralScore, c.Consistency)
	require.Equal(t, 32.5, c.TotalScore)
	require.Equal(t, CategoryNeedsImprovement, c.Category)
	require.Equal(t, fixedNow, c.CalculatedAt)
}

func TestCalculateBestSnapshot(t *testing.T) {
	c := newTestCalculator().Calculate(Snapshot{
		VO2Max:                  lo.ToPtr(60.0),
		Age:                     28,
		Sex:                     "Female",
		TotalSleepHours:         lo.ToPtr(8.0),
		DeepSleepHours:          lo.ToPtr(1.4),
		REMSleepHours:           lo.ToPtr(1.8),
		SleepAwakenings:         lo.ToPtr(1),
		MinutesAwakeDuringSleep: lo.ToPtr(5.0),
		Steps:                   lo.ToPtr(12000),
		ActiveMinutes:           lo.ToPtr(45),
		WorkoutMinutes:          lo.ToPtr(35),
		RestingHeartRate:        lo.ToPtr(55.0),
		BloodOxygenPercent:      lo.ToPtr(99.0),
		HeartRateVariability:    lo.ToPtr(80.0),
		Last7DayTotalScores:     []float64{90, 91, 89, 90, 92, 90, 88},
	})

	require.Equal(t, Components{
		CardiovascularFitness: 10,
		SleepQuality:          10,
		PhysicalActivity:      10,
		HeartHealth:           10,
		Recovery:              10,
		Consistency:           10,
		TotalScore:            100,
		Category:              CategoryExcellent,
		CalculatedAt:          fixedNow,
	}, c)
}

func TestCardiovascularFitness(t *testing.T) {
	tests := []struct {
		name string
		vo2  *float64
		age  int
		sex  string
		want float64
	}{
		{"absent", nil, 35, "male", 5.0},
		{"good threshold is inclusive", lo.ToPtr(45.0), 35, "male", 7.5},
		{"excellent", lo.ToPtr(52.0), 35, "male", 10},
		{"fair", lo.ToPtr(38.0), 35, "male", 5.0},
		{"near fair", lo.ToPtr(33.0), 35, "male", 3.0},
		{"poor", lo.ToPtr(30.0), 35, "male", 1.0},
		{"case insensitive sex", lo.ToPtr(45.0), 35, "MALE", 7.5},
		{"female bracket", lo.ToPtr(49.0), 25, "female", 10},
		{"top bracket", lo.ToPtr(40.0), 65, "male", 7.5},
		{"unknown sex", lo.ToPtr(60.0), 35, "other", 5.0},
		{"empty sex", lo.ToPtr(60.0), 35, "", 5.0},
		{"below lowest bracket", lo.ToPtr(60.0), 19, "male", 5.0},
		{"above top bracket", lo.ToPtr(60.0), 70, "male", 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CardiovascularFitness(tt.vo2, tt.age, tt.sex))
		})
	}
}

func TestLookupVO2Benchmark(t *testing.T) {
	b, ok := LookupVO2Benchmark(35, "male")
	require.True(t, ok)
	require.Equal(t, VO2Benchmark{Excellent: 52, Good: 45, Fair: 38}, b)

	_, ok = LookupVO2Benchmark(-5, "male")
	require.False(t, ok)
}

func TestSleepQuality(t *testing.T) {
	tests := []struct {
		name         string
		total        *float64
		deep, rem    *float64
		awakenings   *int
		minutesAwake *float64
		want         float64
	}{
		{name: "absent", want: 5.0},
		{name: "duration only", total: lo.ToPtr(6.2), want: 3.0},
		{name: "short sleep", total: lo.ToPtr(4.0), want: 1.0},
		{name: "long sleep", total: lo.ToPtr(7.9), want: 5.0},
		{name: "stages need both", total: lo.ToPtr(8.0), deep: lo.ToPtr(1.4), want: 5.0},
		{name: "stages ideal", total: lo.ToPtr(8.0), deep: lo.ToPtr(1.4), rem: lo.ToPtr(1.8), want: 8.0},
		{name: "stages acceptable", total: lo.ToPtr(8.0), deep: lo.ToPtr(2.0), rem: lo.ToPtr(1.3), want: 7.0},
		{name: "stages poor", total: lo.ToPtr(8.0), deep: lo.ToPtr(0.2), rem: lo.ToPtr(4.0), want: 6.0},
		{name: "zero total skips stages", total: lo.ToPtr(0.0), deep: lo.ToPtr(0.0), rem: lo.ToPtr(0.0), want: 1.0},
		{name: "interruptions need both", total: lo.ToPtr(7.0), awakenings: lo.ToPtr(1), want: 4.5},
		{name: "few interruptions", total: lo.ToPtr(7.0), awakenings: lo.ToPtr(2), minutesAwake: lo.ToPtr(11.0), want: 6.5},
		{name: "some interruptions", total: lo.ToPtr(7.0), awakenings: lo.ToPtr(4), minutesAwake: lo.ToPtr(20.0), want: 6.0},
		{name: "many interruptions", total: lo.ToPtr(7.0), awakenings: lo.ToPtr(6), minutesAwake: lo.ToPtr(40.0), want: 5.5},
		{name: "restless", total: lo.ToPtr(7.0), awakenings: lo.ToPtr(9), minutesAwake: lo.ToPtr(10.0), want: 5.0},
		{
			name:         "full",
			total:        lo.ToPtr(8.0),
			deep:         lo.ToPtr(1.4),
			rem:          lo.ToPtr(1.8),
			awakenings:   lo.ToPtr(1),
			minutesAwake: lo.ToPtr(5.0),
			want:         10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SleepQuality(tt.total, tt.deep, tt.rem, tt.awakenings, tt.minutesAwake)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPhysicalActivity(t *testing.T) {
	tests := []struct {
		name                    string
		steps, active, workouts *int
		want                    float64
	}{
		{name: "absent", want: 0},
		{name: "zero values still count", steps: lo.ToPtr(0), active: lo.ToPtr(0), workouts: lo.ToPtr(0), want: 1.0},
		{name: "steps only", steps: lo.ToPtr(7500), want: 3.5},
		{name: "active only", active: lo.ToPtr(15), want: 2.0},
		{name: "short workout", workouts: lo.ToPtr(5), want: 0.5},
		{name: "moderate day", steps: lo.ToPtr(5000), active: lo.ToPtr(25), workouts: lo.ToPtr(20), want: 7.0},
		{name: "max", steps: lo.ToPtr(10000), active: lo.ToPtr(40), workouts: lo.ToPtr(30), want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, PhysicalActivity(tt.steps, tt.active, tt.workouts))
		})
	}
}

func TestHeartHealth(t *testing.T) {
	require.Equal(t, 10.0, HeartHealth(lo.ToPtr(58.0), lo.ToPtr(98.0), 40))
	require.Equal(t, 1.5, HeartHealth(lo.ToPtr(95.0), lo.ToPtr(89.0), 40))
	require.Equal(t, 4.0, HeartHealth(nil, lo.ToPtr(97.0), 40))
	require.Equal(t, 2.5, HeartHealth(lo.ToPtr(90.0), nil, 40))
	require.Equal(t, 0.0, HeartHealth(nil, nil, 40))
	require.Equal(t,
		HeartHealth(lo.ToPtr(72.0), lo.ToPtr(94.0), 20),
		HeartHealth(lo.ToPtr(72.0), lo.ToPtr(94.0), 80),
	)
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		hrv  *float64
		age  int
		want float64
	}{
		{nil, 25, 5.0},
		{lo.ToPtr(72.0), 25, 10},
		{lo.ToPtr(60.0), 25, 8},
		{lo.ToPtr(48.0), 25, 6},
		{lo.ToPtr(36.0), 25, 4},
		{lo.ToPtr(35.0), 25, 2},
		{lo.ToPtr(42.0), 65, 10},
		{lo.ToPtr(55.0), 35, 8},
		{lo.ToPtr(45.0), 45, 8},
		{lo.ToPtr(40.0), 55, 8},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Recovery(tt.hrv, tt.age), "hrv=%v age=%d", lo.FromPtr(tt.hrv), tt.age)
	}
}

func TestConsistency(t *testing.T) {
	require.Equal(t, 10.0, Consistency([]float64{70, 70, 70, 70, 70, 70, 70}))
	require.Equal(t, 5.0, Consistency([]float64{70, 70, 70, 70, 70, 70}))
	require.Equal(t, 5.0, Consistency(nil))
	require.Equal(t, 5.0, Consistency(make([]float64, 8)))
	require.Equal(t, 8.0, Consistency([]float64{60, 70, 80, 60, 70, 80, 70}))
	require.Equal(t, 2.0, Consistency([]float64{10, 90, 10, 90, 10, 90, 50}))
}

func TestStdDev(t *testing.T) {
	require.Equal(t, 0.0, StdDev(nil))
	require.Equal(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}))
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		total float64
		want  Category
	}{
		{100, CategoryExcellent},
		{85, CategoryExcellent},
		{84.99, CategoryGood},
		{70, CategoryGood},
		{69.99, CategoryFair},
		{55, CategoryFair},
		{54.99, CategoryBelowAverage},
		{40, CategoryBelowAverage},
		{39.99, CategoryNeedsImprovement},
		{0, CategoryNeedsImprovement},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Categorize(tt.total), "total=%v", tt.total)
	}
}

func TestTotalScoreMonotonicPerComponent(t *testing.T) {
	base := Components{
		CardiovascularFitness: 5,
		SleepQuality:          5,
		PhysicalActivity:      5,
		HeartHealth:           5,
		Recovery:              5,
		Consistency:           5,
	}
	baseTotal := TotalScore(base)
	require.Equal(t, 50.0, baseTotal)

	bumps := []func(c *Components){
		func(c *Components) { c.CardiovascularFitness += 0.5 },
		func(c *Components) { c.SleepQuality += 0.5 },
		func(c *Components) { c.PhysicalActivity += 0.5 },
		func(c *Components) { c.HeartHealth += 0.5 },
		func(c *Components) { c.Recovery += 0.5 },
		func(c *Components) { c.Consistency += 0.5 },
	}
	for i, bump := range bumps {
		c := base
		bump(&c)
		require.Greater(t, TotalScore(c), baseTotal, "component %d", i)
	}
}

func TestComponentsMonotonicInFavourableDirection(t *testing.T) {
	prev := -1.0
	for steps := 0; steps <= 15000; steps += 250 {
		got := PhysicalActivity(lo.ToPtr(steps), nil, nil)
		require.GreaterOrEqual(t, got, prev, "steps=%d", steps)
		prev = got
	}

	prev = -1.0
	for vo2 := 0.0; vo2 <= 70; vo2 += 0.5 {
		got := CardiovascularFitness(lo.ToPtr(vo2), 35, "male")
		require.GreaterOrEqual(t, got, prev, "vo2=%v", vo2)
		prev = got
	}

	prev = -1.0
	for hr := 110.0; hr >= 40; hr-- {
		got := HeartHealth(lo.ToPtr(hr), nil, 35)
		require.GreaterOrEqual(t, got, prev, "hr=%v", hr)
		prev = got
	}

	prev = -1.0
	for spo2 := 85.0; spo2 <= 100; spo2 += 0.5 {
		got := HeartHealth(nil, lo.ToPtr(spo2), 35)
		require.GreaterOrEqual(t, got, prev, "spo2=%v", spo2)
		prev = got
	}

	prev = -1.0
	for hrv := 0.0; hrv <= 120; hrv++ {
		got := Recovery(lo.ToPtr(hrv), 35)
		require.GreaterOrEqual(t, got, prev, "hrv=%v", hrv)
		prev = got
	}

	prev = -1.0
	for hours := 0.0; hours <= 10; hours += 0.25 {
		got := SleepQuality(lo.ToPtr(hours), nil, nil, nil, nil)
		require.GreaterOrEqual(t, got, prev, "hours=%v", hours)
		prev = got
	}
}

func TestCalculateStaysInBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	maybeFloat := func(from, to float64) *float64 {
		if rnd.Intn(4) == 0 {
			return nil
		}
		v := from + rnd.Float64()*(to-from)
		return &v
	}
	maybeInt := func(from, to int) *int {
		if rnd.Intn(4) == 0 {
			return nil
		}
		v := from + rnd.Intn(to-from+1)
		return &v
	}
	sexes := []string{"male", "female", "Male", "x", ""}

	calc := newTestCalculator()
	for i := 0; i < 2000; i++ {
		s := Snapshot{
			VO2Max:                  maybeFloat(-10, 90),
			Age:                     rnd.Intn(100),
			Sex:                     sexes[rnd.Intn(len(sexes))],
			TotalSleepHours:         maybeFloat(-1, 14),
			DeepSleepHours:          maybeFloat(-1, 4),
			REMSleepHours:           maybeFloat(-1, 4),
			SleepAwakenings:         maybeInt(-1, 20),
			MinutesAwakeDuringSleep: maybeFloat(-5, 120),
			Steps:                   maybeInt(-100, 40000),
			ActiveMinutes:           maybeInt(-5, 300),
			WorkoutMinutes:          maybeInt(-5, 300),
			RestingHeartRate:        maybeFloat(30, 130),
			BloodOxygenPercent:      maybeFloat(70, 100),
			HeartRateVariability:    maybeFloat(0, 200),
		}
		if rnd.Intn(2) == 0 {
			s.Last7DayTotalScores = make([]float64, 5+rnd.Intn(4))
			for j := range s.Last7DayTotalScores {
				s.Last7DayTotalScores[j] = rnd.Float64() * 100
			}
		}

		c := calc.Calculate(s)
		for _, v := range []float64{
			c.CardiovascularFitness,
			c.SleepQuality,
			c.PhysicalActivity,
			c.HeartHealth,
			c.Recovery,
			c.Consistency,
		} {
			require.GreaterOrEqual(t, v, MinComponentScore)
			require.LessOrEqual(t, v, MaxComponentScore)
		}
		require.GreaterOrEqual(t, c.TotalScore, 0.0)
		require.LessOrEqual(t, c.TotalScore, MaxTotalScore)
		require.Equal(t, Categorize(c.TotalScore), c.Category)
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	s := Snapshot{
		VO2Max:           lo.ToPtr(45.0),
		Age:              35,
		Sex:              "male",
		RestingHeartRate: lo.ToPtr(58.0),
		Steps:            lo.ToPtr(6400),
	}
	calc := newTestCalculator()
	require.Equal(t, calc.Calculate(s), calc.Calculate(s))
}

func TestTrend(t *testing.T) {
	day1 := Components{TotalScore: 70, CalculatedAt: fixedNow.AddDate(0, 0, -1)}
	day2 := Components{TotalScore: 76, CalculatedAt: fixedNow}

	require.Equal(t, 6.0, Trend([]Components{day1, day2}))
	require.Equal(t, -6.0, Trend([]Components{day2, day1}))
	require.Equal(t, 0.0, Trend([]Components{day1}))
	require.Equal(t, 0.0, Trend(nil))
}

func TestDay(t *testing.T) {
	late := time.Date(2026, time.October, 19, 22, 30, 0, 0, time.UTC)

	require.Equal(t, time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), Day(late, time.UTC))
	require.Equal(t, time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC), Day(late, time.FixedZone("UTC+3", 3*3600)))
	require.True(t, Day(late, time.UTC).Equal(Day(late.Add(-time.Hour), time.UTC)))
}

func TestComponentsJSONRoundTrip(t *testing.T) {
	in := newTestCalculator().Calculate(Snapshot{VO2Max: lo.ToPtr(45.0), Age: 35, Sex: "male"})

	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.Contains(t, string(data), `"cardiovascularFitness":7.5`)
	require.Contains(t, string(data), `"category":"Needs Improvement"`)

	var out Components
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, in, out)
}
