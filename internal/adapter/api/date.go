package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date encoded as "2006-01-02". RFC 3339 timestamps are accepted
// on input and reduced to their calendar date.
type Date struct {
	time.Time
}

func NewDate(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	y, m, d := t.UTC().Date()
	return &Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		ts, tsErr := time.Parse(time.RFC3339, s)
		if tsErr != nil {
			return fmt.Errorf("date must look like %s: %w", time.DateOnly, err)
		}
		y, m, day := ts.Date()
		t = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}

	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

// Ptr returns the date as midnight UTC, or nil for a nil date.
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
