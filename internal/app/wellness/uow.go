package wellnessapp

import (
	"context"
	"github.com/burenotti/go_wellness_backend/internal/adapter/storage"
	scorestorage "github.com/burenotti/go_wellness_backend/internal/adapter/storage/scores"
	"github.com/burenotti/go_wellness_backend/internal/app/unitofwork"
	"github.com/burenotti/go_wellness_backend/internal/domain"
	"github.com/burenotti/go_wellness_backend/internal/domain/wellness"
	"time"
)

type ScoreStorage interface {
	Upsert(ctx context.Context, r *wellness.Record) error
	FetchRecent(ctx context.Context, userID string, since time.Time) ([]*wellness.Record, error)
	CollectEvents() []domain.Event
	Close() error
}

type AtomicContext struct {
	ctx          context.Context
	db           storage.DBContext
	ScoreStorage ScoreStorage
}

func NewAtomicContext(ctx context.Context, dbContext storage.DBContext) (*AtomicContext, error) {
	return &AtomicContext{
		ctx:          ctx,
		db:           dbContext,
		ScoreStorage: scorestorage.NewPostgresStorage(dbContext),
	}, nil
}

func (a *AtomicContext) Context() context.Context {
	return a.ctx
}

func (a *AtomicContext) Commit() error {
	return a.db.Commit()
}

func (a *AtomicContext) Close() error {
	return a.ScoreStorage.Close()
}

func (a *AtomicContext) CollectEvents() []domain.Event {
	return a.ScoreStorage.CollectEvents()
}

// History is the HistoryStore backed by the score storage. Upserts commit before the
// score_calculated event is published.
type History struct {
	uow *unitofwork.UnitOfWork[*AtomicContext]
}

func NewHistory(uow *unitofwork.UnitOfWork[*AtomicContext]) *History {
	return &History{uow: uow}
}

func (h *History) FetchRecent(ctx context.Context, userID string, since time.Time) (records []*wellness.Record, err error) {
	err = h.uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		records, err = ctx.ScoreStorage.FetchRecent(ctx.Context(), userID, since)
		return err
	})
	return
}

func (h *History) Upsert(ctx context.Context, r *wellness.Record) error {
	return h.uow.Atomic(ctx, func(ctx *AtomicContext) error {
		if err := ctx.ScoreStorage.Upsert(ctx.Context(), r); err != nil {
			return err
		}
		return ctx.Commit()
	})
}
