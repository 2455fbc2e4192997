package api

import (
	"context"
	"github.com/burenotti/go_wellness_backend/internal/app/authapp"
	wellnessapp "github.com/burenotti/go_wellness_backend/internal/app/wellness"
	"github.com/burenotti/go_wellness_backend/internal/domain/auth"
	"github.com/burenotti/go_wellness_backend/internal/domain/metric"
	"github.com/burenotti/go_wellness_backend/internal/domain/profile"
	"github.com/burenotti/go_wellness_backend/internal/domain/wellness"
	"time"
)

type AuthService interface {
	CreateUser(ctx context.Context, userID, email, password string) (*auth.User, error)
	Login(ctx context.Context, device auth.Device, email, password string) (authapp.Tokens, error)
	Logout(ctx context.Context, userID, authorizationID string) error
	Refresh(ctx context.Context, refreshToken string) (authapp.Tokens, error)
}

type ProfileService interface {
	CreateProfile(ctx context.Context, userID, firstName, lastName string, birthDate *time.Time, sex string) (*profile.Profile, error)
	GetProfileByID(ctx context.Context, userID string) (*profile.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update profile.Update) (*profile.Profile, error)
}

type ReadingService interface {
	RecordReading(ctx context.Context, readingID, userID string, kind metric.Kind, value float64, recordedAt time.Time) (*metric.Reading, error)
	ListReadings(ctx context.Context, userID string, kind metric.Kind, limit int) ([]*metric.Reading, error)
}

type WellnessService interface {
	Refresh(ctx context.Context) wellnessapp.State
	Recompute(ctx context.Context) wellnessapp.State
	History(ctx context.Context, days int) ([]*wellness.Record, error)
	Trend(ctx context.Context) (float64, error)
}
