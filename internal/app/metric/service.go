package metricservice

import (
	"context"
	"github.com/burenotti/go_wellness_backend/internal/app/unitofwork"
	"github.com/burenotti/go_wellness_backend/internal/domain/metric"
	"log/slog"
	"time"
)

const DefaultListLimit = 100

type Service struct {
	logger *slog.Logger
	uow    *unitofwork.UnitOfWork[*AtomicContext]
}

func New(logger *slog.Logger, uow *unitofwork.UnitOfWork[*AtomicContext]) *Service {
	return &Service{logger: logger, uow: uow}
}

func (s *Service) RecordReading(
	ctx context.Context,
	readingID, userID string,
	kind metric.Kind,
	value float64,
	recordedAt time.Time,
) (r *metric.Reading, err error) {
	err = s.uow.Atomic(ctx, func(ctx *AtomicContext) error {
		r = metric.New(readingID, userID, kind, value, recordedAt)
		if err := ctx.ReadingStorage.Add(ctx.Context(), r); err != nil {
			return err
		}
		return ctx.Commit()
	})
	return
}

func (s *Service) ListReadings(
	ctx context.Context,
	userID string,
	kind metric.Kind,
	limit int,
) (readings []*metric.Reading, err error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	err = s.uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		readings, err = ctx.ReadingStorage.ListByUser(ctx.Context(), userID, kind, limit)
		return err
	})
	return
}

// Reading is the health provider read used by the wellness orchestrator.
func (s *Service) Reading(
	ctx context.Context,
	userID string,
	kind metric.Kind,
	from, to time.Time,
) (value float64, ok bool, err error) {
	err = s.uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		value, ok, err = ctx.ReadingStorage.Value(ctx.Context(), userID, kind, from, to)
		return err
	})
	return
}
