package authapp

import (
	"context"
	"github.com/burenotti/go_wellness_backend/internal/app/unitofwork"
	"github.com/burenotti/go_wellness_backend/internal/domain/auth"
	"log/slog"
	"time"
)

type Service struct {
	logger     *slog.Logger
	uow        *unitofwork.UnitOfWork[*AtomicContext]
	Authorizer *Authorizer
}

func NewService(
	authorizer *Authorizer,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	logger *slog.Logger,
) *Service {
	return &Service{
		logger:     logger,
		uow:        uow,
		Authorizer: authorizer,
	}
}

func (s *Service) CreateUser(
	ctx context.Context,
	userID string,
	email string,
	password string,
) (u *auth.User, err error) {
	err = s.uow.Atomic(ctx, func(ctx *AtomicContext) error {
		u = auth.NewUser(userID, email, password, s.Authorizer)
		if err := ctx.UserStorage.Add(ctx.Context(), u); err != nil {
			return err
		}

		return ctx.Commit()
	})
	return
}

func (s *Service) Login(
	ctx context.Context,
	device auth.Device,
	email string,
	password string,
) (tokens Tokens, err error) {
	err = s.uow.Atomic(ctx, func(ctx *AtomicContext) error {
		u, err := ctx.UserStorage.GetByEmail(ctx.Context(), email)
		if err != nil {
			return err
		}

		a, err := u.Authorize(s.Authorizer, password, device)
		if err != nil {
			return err
		}

		accessToken, err := s.Authorizer.GenerateAccessToken(u, a)
		if err != nil {
			return err
		}

		if err := ctx.UserStorage.Persist(ctx.Context(), u); err != nil {
			return err
		}

		tokens = Tokens{
			AccessToken:  accessToken,
			RefreshToken: a.Secret,
		}
		return ctx.Commit()
	})
	return
}

func (s *Service) Logout(
	ctx context.Context,
	userID string,
	authorizationID string,
) error {
	return s.uow.Atomic(ctx, func(ctx *AtomicContext) error {
		u, err := ctx.UserStorage.GetByID(ctx.Context(), userID)
		if err != nil {
			return err
		}

		if err := u.Logout(authorizationID); err != nil {
			return err
		}

		if err := ctx.UserStorage.Persist(ctx.Context(), u); err != nil {
			return err
		}

		return ctx.Commit()
	})
}

// Refresh issues a new access token for a still active refresh secret.
func (s *Service) Refresh(
	ctx context.Context,
	refreshToken string,
) (tokens Tokens, err error) {
	err = s.uow.Atomic(ctx, func(ctx *AtomicContext) error {
		u, err := ctx.UserStorage.GetByAuthSecret(ctx.Context(), refreshToken)
		if err != nil {
			return err
		}

		a, err := u.ActiveAuthBySecret(refreshToken, time.Now())
		if err != nil {
			return err
		}

		tokens.AccessToken, err = s.Authorizer.GenerateAccessToken(u, a)
		tokens.RefreshToken = a.Secret
		return err
	})
	return
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
}
