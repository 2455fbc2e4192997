package profileapp

import (
	"context"
	"github.com/burenotti/go_wellness_backend/internal/app/unitofwork"
	"github.com/burenotti/go_wellness_backend/internal/domain/profile"
	"log/slog"
	"time"
)

type Service struct {
	logger *slog.Logger
	uow    *unitofwork.UnitOfWork[*AtomicContext]
}

func New(
	logger *slog.Logger,
	uow *unitofwork.UnitOfWork[*AtomicContext],
) *Service {
	return &Service{
		logger: logger,
		uow:    uow,
	}
}

func (s *Service) CreateProfile(
	ctx context.Context,
	userID string,
	firstName string,
	lastName string,
	birthDate *time.Time,
	sex string,
) (p *profile.Profile, err error) {
	err = s.uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		if p, err = profile.New(userID, firstName, lastName, birthDate, sex); err != nil {
			return err
		}
		if err := ctx.ProfileStorage.Add(ctx.Context(), p); err != nil {
			return err
		}

		return ctx.Commit()
	})
	return
}

// GetProfileByID also serves as the profile provider of the wellness orchestrator.
func (s *Service) GetProfileByID(
	ctx context.Context,
	userID string,
) (p *profile.Profile, err error) {
	err = s.uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		p, err = ctx.ProfileStorage.GetByID(ctx.Context(), userID)
		return err
	})
	return
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	userID string,
	update profile.Update,
) (p *profile.Profile, err error) {
	err = s.uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		if p, err = ctx.ProfileStorage.GetByID(ctx.Context(), userID); err != nil {
			return err
		}
		if err := p.Apply(update); err != nil {
			return err
		}
		if err := ctx.ProfileStorage.Persist(ctx.Context(), p); err != nil {
			return err
		}
		return ctx.Commit()
	})
	return
}
