package wellnessapp

import (
	"context"
	"github.com/burenotti/go_wellness_backend/internal/domain/metric"
	"github.com/burenotti/go_wellness_backend/internal/domain/profile"
	"github.com/burenotti/go_wellness_backend/internal/domain/wellness"
	"time"
)

type IdentityProvider interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

type ProfileProvider interface {
	GetProfileByID(ctx context.Context, userID string) (*profile.Profile, error)
}

// HealthProvider resolves one reading kind for the window [from, to).
// ok is false when nothing is known.
type HealthProvider interface {
	Reading(ctx context.Context, userID string, kind metric.Kind, from, to time.Time) (value float64, ok bool, err error)
}

type HistoryStore interface {
	// FetchRecent returns records dated on or after since, newest first.
	FetchRecent(ctx context.Context, userID string, since time.Time) ([]*wellness.Record, error)
	Upsert(ctx context.Context, r *wellness.Record) error
}

type Calculator interface {
	Calculate(s wellness.Snapshot) wellness.Components
}
