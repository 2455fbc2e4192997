package wellness

import (
	"time"
)

const EventScoreCalculated = "wellness.score_calculated"

type Category string

const (
	CategoryExcellent        Category = "Excellent"
	CategoryGood             Category = "Good"
	CategoryFair             Category = "Fair"
	CategoryBelowAverage     Category = "Below Average"
	CategoryNeedsImprovement Category = "Needs Improvement"
)

// Components is an immutable calculation result.
type Components struct {
	CardiovascularFitness float64   `json:"cardiovascularFitness"`
	SleepQuality          float64   `json:"sleepQuality"`
	PhysicalActivity      float64   `json:"physicalActivity"`
	HeartHealth           float64   `json:"heartHealth"`
	Recovery              float64   `json:"recovery"`
	Consistency           float64   `json:"consistency"`
	TotalScore            float64   `json:"totalScore"`
	Category              Category  `json:"category"`
	CalculatedAt          time.Time `json:"calculatedAt"`
}

// Record is a score stored in history under its natural key (UserID, Date).
type Record struct {
	UserID string
	Date   time.Time
	Components
}

func NewRecord(userID string, date time.Time, c Components) *Record {
	return &Record{
		UserID:     userID,
		Date:       date,
		Components: c,
	}
}

// Day truncates t to its calendar date in loc. The result is midnight UTC so dates
// compare with Equal regardless of the location they were derived in.
func Day(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Trend is the difference between the two newest totals of an ascending history.
func Trend(ascending []Components) float64 {
	if len(ascending) < 2 {
		return 0
	}
	last := ascending[len(ascending)-1]
	prev := ascending[len(ascending)-2]
	return last.TotalScore - prev.TotalScore
}

type ScoreCalculatedEvent struct {
	At         time.Time
	UserID     string
	Date       time.Time
	TotalScore float64
	Category   Category
}

func (e ScoreCalculatedEvent) Type() string {
	return EventScoreCalculated
}

func (e ScoreCalculatedEvent) PublishedAt() time.Time {
	return e.At
}
