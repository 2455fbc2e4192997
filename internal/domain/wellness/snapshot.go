package wellness

// Snapshot is the set of readings fed into a single calculation.
// Nil pointers mean the reading is unknown; zero is a real value.
type Snapshot struct {
	VO2Max *float64
	Age    int
	Sex    string

	TotalSleepHours         *float64
	DeepSleepHours          *float64
	REMSleepHours           *float64
	SleepAwakenings         *int
	MinutesAwakeDuringSleep *float64

	Steps          *int
	ActiveMinutes  *int
	WorkoutMinutes *int

	RestingHeartRate   *float64
	BloodOxygenPercent *float64

	HeartRateVariability *float64

	// Last7DayTotalScores is used only when it holds exactly 7 values.
	Last7DayTotalScores []float64
}
