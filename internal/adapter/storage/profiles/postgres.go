package profilestorage

import (
	"context"
	"database/sql"
	"errors"
	"github.com/burenotti/go_wellness_backend/internal/adapter/storage"
	"github.com/burenotti/go_wellness_backend/internal/adapter/storage/pgutil"
	"github.com/burenotti/go_wellness_backend/internal/domain"
	"github.com/burenotti/go_wellness_backend/internal/domain/profile"
	"github.com/leporo/sqlf"
	"github.com/r3labs/diff"
	"time"
)

type PostgresStorage struct {
	base *pgutil.BasePostgresStorage
}

func NewPostgresStorage(db storage.DBContext) *PostgresStorage {
	return &PostgresStorage{
		base: pgutil.NewBasePostgresStorage(db),
	}
}

func (s *PostgresStorage) Add(ctx context.Context, p *profile.Profile) error {
	q := sqlf.InsertInto("profiles").
		Set("user_id", p.UserID).
		Set("first_name", p.FirstName).
		Set("last_name", p.LastName).
		Set("birth_date", p.BirthDate).
		Set("sex", p.Sex).
		Set("created_at", p.CreatedAt).
		Set("updated_at", p.UpdatedAt)

	if _, err := q.ExecAndClose(ctx, s.base.DB); err != nil {
		if pgutil.ViolatesConstraint(err, "profiles_pkey") {
			return profile.ErrProfileExists
		}
		return storage.InternalError(err)
	}

	return nil
}

func (s *PostgresStorage) GetByID(ctx context.Context, userID string) (*profile.Profile, error) {
	var r profileRow
	q := sqlf.From("profiles p").
		Where("p.user_id = ?", userID).
		Select("p.user_id").To(&r.UserID).
		Select("p.first_name").To(&r.FirstName).
		Select("p.last_name").To(&r.LastName).
		Select("p.birth_date").To(&r.BirthDate).
		Select("p.sex").To(&r.Sex).
		Select("p.created_at").To(&r.CreatedAt).
		Select("p.updated_at").To(&r.UpdatedAt)

	if err := q.QueryRowAndClose(ctx, s.base.DB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, storage.InternalError(err)
	}

	return &profile.Profile{
		UserID:    r.UserID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		BirthDate: r.BirthDate,
		Sex:       r.Sex,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

// Persist writes only the columns that differ from the stored profile.
func (s *PostgresStorage) Persist(ctx context.Context, p *profile.Profile) error {
	stored, err := s.GetByID(ctx, p.UserID)
	if err != nil {
		return err
	}

	changes, err := diff.Diff(stored, p)
	if err != nil {
		return storage.InternalError(err)
	}
	if len(changes) == 0 {
		return nil
	}

	q := sqlf.Update("profiles").Where("user_id = ?", p.UserID)
	q = pgutil.MakeUpdateQuery(q, changes)

	res, err := q.ExecAndClose(ctx, s.base.DB)
	return pgutil.AssertUpdated(res, err, profile.ErrProfileNotFound)
}

func (s *PostgresStorage) CollectEvents() []domain.Event {
	return s.base.CollectEvents()
}

func (s *PostgresStorage) Close() error {
	s.base.Close()
	return nil
}

type profileRow struct {
	UserID    string
	FirstName string
	LastName  string
	BirthDate *time.Time
	Sex       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
