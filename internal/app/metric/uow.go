package metricservice

import (
	"context"
	"github.com/burenotti/go_wellness_backend/internal/adapter/storage"
	metricstorage "github.com/burenotti/go_wellness_backend/internal/adapter/storage/metrics"
	"github.com/burenotti/go_wellness_backend/internal/domain"
	"github.com/burenotti/go_wellness_backend/internal/domain/metric"
	"time"
)

type ReadingStorage interface {
	Add(ctx context.Context, r *metric.Reading) error
	ListByUser(ctx context.Context, userID string, kind metric.Kind, limit int) ([]*metric.Reading, error)
	Value(ctx context.Context, userID string, kind metric.Kind, from, to time.Time) (float64, bool, error)
	CollectEvents() []domain.Event
	Close() error
}

type AtomicContext struct {
	ctx            context.Context
	db             storage.DBContext
	ReadingStorage ReadingStorage
}

func NewAtomicContext(ctx context.Context, dbContext storage.DBContext) (*AtomicContext, error) {
	return &AtomicContext{
		ctx:            ctx,
		db:             dbContext,
		ReadingStorage: metricstorage.NewPostgresStorage(dbContext),
	}, nil
}

func (a *AtomicContext) Context() context.Context {
	return a.ctx
}

func (a *AtomicContext) Commit() error {
	return a.db.Commit()
}

func (a *AtomicContext) Close() error {
	return a.ReadingStorage.Close()
}

func (a *AtomicContext) CollectEvents() []domain.Event {
	return a.ReadingStorage.CollectEvents()
}
