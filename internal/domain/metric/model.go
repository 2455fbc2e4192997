package metric

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrReadingExists = errors.New("reading already exists")
	ErrUnknownKind   = errors.New("unknown reading kind")
)

type Kind string

const (
	KindVO2Max               Kind = "vo2_max"
	KindRestingHeartRate     Kind = "resting_heart_rate"
	KindBloodOxygen          Kind = "blood_oxygen"
	KindHeartRateVariability Kind = "heart_rate_variability"
	KindSleepTotalHours      Kind = "sleep_total_hours"
	KindSleepDeepHours       Kind = "sleep_deep_hours"
	KindSleepREMHours        Kind = "sleep_rem_hours"
	KindSleepAwakenings      Kind = "sleep_awakenings"
	KindSleepAwakeMinutes    Kind = "sleep_awake_minutes"
	KindSteps                Kind = "steps"
	KindActiveMinutes        Kind = "active_minutes"
	KindWorkoutMinutes       Kind = "workout_minutes"
)

var Kinds = []Kind{
	KindVO2Max,
	KindRestingHeartRate,
	KindBloodOxygen,
	KindHeartRateVariability,
	KindSleepTotalHours,
	KindSleepDeepHours,
	KindSleepREMHours,
	KindSleepAwakenings,
	KindSleepAwakeMinutes,
	KindSteps,
	KindActiveMinutes,
	KindWorkoutMinutes,
}

// Cumulative kinds are summed over a day instead of taking the latest value.
func (k Kind) Cumulative() bool {
	switch k {
	case KindSteps, KindActiveMinutes, KindWorkoutMinutes:
		return true
	default:
		return false
	}
}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Reading is one health sample reported by a device or app.
type Reading struct {
	ReadingID  string
	UserID     string
	Kind       Kind
	Value      float64
	RecordedAt time.Time
	CreatedAt  time.Time
}

func New(readingID, userID string, kind Kind, value float64, recordedAt time.Time) *Reading {
	return &Reading{
		ReadingID:  readingID,
		UserID:     userID,
		Kind:       kind,
		Value:      value,
		RecordedAt: recordedAt.UTC(),
		CreatedAt:  time.Now().UTC(),
	}
}
