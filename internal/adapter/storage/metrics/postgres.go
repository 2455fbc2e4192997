package metricstorage

import (
	"context"
	"database/sql"
	"errors"
	"github.com/burenotti/go_wellness_backend/internal/adapter/storage"
	"github.com/burenotti/go_wellness_backend/internal/adapter/storage/pgutil"
	"github.com/burenotti/go_wellness_backend/internal/domain"
	"github.com/burenotti/go_wellness_backend/internal/domain/metric"
	"github.com/leporo/sqlf"
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

func (s *PostgresStorage) Add(ctx context.Context, r *metric.Reading) error {
	q := sqlf.InsertInto("health_readings").
		Set("reading_id", r.ReadingID).
		Set("user_id", r.UserID).
		Set("kind", string(r.Kind)).
		Set("value", r.Value).
		Set("recorded_at", r.RecordedAt).
		Set("created_at", r.CreatedAt)

	if _, err := q.ExecAndClose(ctx, s.base.DB); err != nil {
		if pgutil.ViolatesConstraint(err, "health_readings_pkey") {
			return metric.ErrReadingExists
		}
		return storage.InternalError(err)
	}

	return nil
}

func (s *PostgresStorage) list(ctx context.Context, modify func(stmt *sqlf.Stmt)) ([]*metric.Reading, error) {
	var (
		tmp  metric.Reading
		kind string
	)

	q := sqlf.From("health_readings r").
		Select("r.reading_id").To(&tmp.ReadingID).
		Select("r.user_id").To(&tmp.UserID).
		Select("r.kind").To(&kind).
		Select("r.value").To(&tmp.Value).
		Select("r.recorded_at").To(&tmp.RecordedAt).
		Select("r.created_at").To(&tmp.CreatedAt)

	modify(q)

	var result []*metric.Reading
	err := q.QueryAndClose(ctx, s.base.DB, func(rows *sql.Rows) {
		r := tmp
		r.Kind = metric.Kind(kind)
		result = append(result, &r)
	})

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, storage.InternalError(err)
	}
	return result, nil
}

// ListByUser returns readings newest first. An empty kind matches every kind.
func (s *PostgresStorage) ListByUser(
	ctx context.Context,
	userID string,
	kind metric.Kind,
	limit int,
) ([]*metric.Reading, error) {
	return s.list(ctx, func(stmt *sqlf.Stmt) {
		stmt.Where("r.user_id = ?", userID)
		if kind != "" {
			stmt.Where("r.kind = ?", string(kind))
		}
		stmt.OrderBy("r.recorded_at DESC").Limit(limit)
	})
}

// Value resolves a reading for the window [from, to). Cumulative kinds are summed
// inside the window, other kinds take the newest value recorded before to.
func (s *PostgresStorage) Value(
	ctx context.Context,
	userID string,
	kind metric.Kind,
	from, to time.Time,
) (float64, bool, error) {
	if kind.Cumulative() {
		return s.sum(ctx, userID, kind, from, to)
	}
	return s.latest(ctx, userID, kind, to)
}

func (s *PostgresStorage) sum(
	ctx context.Context,
	userID string,
	kind metric.Kind,
	from, to time.Time,
) (float64, bool, error) {
	var (
		total float64
		count int
	)

	q := sqlf.From("health_readings").
		Select("COALESCE(SUM(value), 0)").To(&total).
		Select("COUNT(*)").To(&count).
		Where("user_id = ?", userID).
		Where("kind = ?", string(kind)).
		Where("recorded_at >= ?", from).
		Where("recorded_at < ?", to)

	if err := q.QueryRowAndClose(ctx, s.base.DB); err != nil {
		return 0, false, storage.InternalError(err)
	}
	return total, count > 0, nil
}

func (s *PostgresStorage) latest(
	ctx context.Context,
	userID string,
	kind metric.Kind,
	before time.Time,
) (float64, bool, error) {
	var value float64

	q := sqlf.From("health_readings").
		Select("value").To(&value).
		Where("user_id = ?", userID).
		Where("kind = ?", string(kind)).
		Where("recorded_at < ?", before).
		OrderBy("recorded_at DESC").
		Limit(1)

	if err := q.QueryRowAndClose(ctx, s.base.DB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, storage.InternalError(err)
	}
	return value, true, nil
}

func (s *PostgresStorage) CollectEvents() []domain.Event {
	return s.base.CollectEvents()
}

func (s *PostgresStorage) Close() error {
	s.base.Close()
	return nil
}
