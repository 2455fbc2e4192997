package scorestorage

import (
	"context"
	"database/sql"
	"errors"
	"github.com/burenotti/go_wellness_backend/internal/adapter/storage"
	"github.com/burenotti/go_wellness_backend/internal/adapter/storage/pgutil"
	"github.com/burenotti/go_wellness_backend/internal/domain"
	"github.com/burenotti/go_wellness_backend/internal/domain/wellness"
	"github.com/leporo/sqlf"
	"time"
)

const upsertClause = `ON CONFLICT (user_id, score_date) DO UPDATE SET
	cardiovascular_fitness = EXCLUDED.cardiovascular_fitness,
	sleep_quality = EXCLUDED.sleep_quality,
	physical_activity = EXCLUDED.physical_activity,
	heart_health = EXCLUDED.heart_health,
	recovery = EXCLUDED.recovery,
	consistency = EXCLUDED.consistency,
	total_score = EXCLUDED.total_score,
	category = EXCLUDED.category,
	calculated_at = EXCLUDED.calculated_at`

type PostgresStorage struct {
	base *pgutil.BasePostgresStorage
}

func NewPostgresStorage(db storage.DBContext) *PostgresStorage {
	return &PostgresStorage{
		base: pgutil.NewBasePostgresStorage(db),
	}
}

func UpsertQuery(r *wellness.Record) *sqlf.Stmt {
	return sqlf.InsertInto("wellness_scores").
		Set("user_id", r.UserID).
		Set("score_date", r.Date.Format(time.DateOnly)).
		Set("cardiovascular_fitness", r.CardiovascularFitness).
		Set("sleep_quality", r.SleepQuality).
		Set("physical_activity", r.PhysicalActivity).
		Set("heart_health", r.HeartHealth).
		Set("recovery", r.Recovery).
		Set("consistency", r.Consistency).
		Set("total_score", r.TotalScore).
		Set("category", string(r.Category)).
		Set("calculated_at", r.CalculatedAt).
		Clause(upsertClause)
}

// Upsert writes the record under (user_id, score_date); the last writer wins.
func (s *PostgresStorage) Upsert(ctx context.Context, r *wellness.Record) error {
	if _, err := UpsertQuery(r).ExecAndClose(ctx, s.base.DB); err != nil {
		return storage.InternalError(err)
	}

	s.base.Emit(wellness.ScoreCalculatedEvent{
		At:         time.Now().UTC(),
		UserID:     r.UserID,
		Date:       r.Date,
		TotalScore: r.TotalScore,
		Category:   r.Category,
	})
	return nil
}

// FetchRecent returns records dated on or after since, newest first.
func (s *PostgresStorage) FetchRecent(ctx context.Context, userID string, since time.Time) ([]*wellness.Record, error) {
	var (
		tmp      wellness.Record
		category string
	)

	q := sqlf.From("wellness_scores s").
		Select("s.user_id").To(&tmp.UserID).
		Select("s.score_date").To(&tmp.Date).
		Select("s.cardiovascular_fitness").To(&tmp.CardiovascularFitness).
		Select("s.sleep_quality").To(&tmp.SleepQuality).
		Select("s.physical_activity").To(&tmp.PhysicalActivity).
		Select("s.heart_health").To(&tmp.HeartHealth).
		Select("s.recovery").To(&tmp.Recovery).
		Select("s.consistency").To(&tmp.Consistency).
		Select("s.total_score").To(&tmp.TotalScore).
		Select("s.category").To(&category).
		Select("s.calculated_at").To(&tmp.CalculatedAt).
		Where("s.user_id = ?", userID).
		Where("s.score_date >= ?", since.Format(time.DateOnly)).
		OrderBy("s.score_date DESC")

	var result []*wellness.Record
	err := q.QueryAndClose(ctx, s.base.DB, func(rows *sql.Rows) {
		r := tmp
		r.Category = wellness.Category(category)
		r.Date = wellness.Day(r.Date, time.UTC)
		r.CalculatedAt = r.CalculatedAt.UTC()
		result = append(result, &r)
	})

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, storage.InternalError(err)
	}
	return result, nil
}

func (s *PostgresStorage) CollectEvents() []domain.Event {
	return s.base.CollectEvents()
}

func (s *PostgresStorage) Close() error {
	s.base.Close()
	return nil
}
