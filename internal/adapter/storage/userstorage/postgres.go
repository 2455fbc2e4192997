package userstorage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/burenotti/go_wellness_backend/internal/adapter/storage"
	"github.com/burenotti/go_wellness_backend/internal/adapter/storage/pgutil"
	"github.com/burenotti/go_wellness_backend/internal/domain"
	"github.com/burenotti/go_wellness_backend/internal/domain/auth"
	"github.com/leporo/sqlf"
	"github.com/r3labs/diff"
	"github.com/samber/lo"
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

func (s *PostgresStorage) Add(ctx context.Context, u *auth.User) error {
	q := sqlf.InsertInto("users").
		Set("user_id", u.UserID).
		Set("email", u.Email).
		Set("password_hash", u.PasswordHash).
		Set("created_at", u.CreatedAt).
		Set("updated_at", u.UpdatedAt)

	if _, err := q.ExecAndClose(ctx, s.base.DB); err != nil {
		if pgutil.ViolatesConstraint(err, "users_pkey") {
			return errors.Join(fmt.Errorf("user exists: %w", err), auth.ErrUserExists)
		}
		if pgutil.ViolatesConstraint(err, "users_email_key") {
			return auth.ErrUserEmailDuplicate
		}
		return storage.InternalError(err)
	}

	for _, a := range u.Authorizations {
		if err := s.addAuth(ctx, u.UserID, a); err != nil {
			return err
		}
	}

	s.base.MarkSeen(u.UserID, u)
	return nil
}

func (s *PostgresStorage) addAuth(ctx context.Context, userID string, a *auth.Authorization) error {
	addAuth := sqlf.InsertInto("authorizations").
		Set("authorization_id", a.ID).
		Set("secret", a.Secret).
		Set("logout_at", a.LogoutAt).
		Set("created_at", a.CreatedAt).
		Set("valid_until", a.ValidUntil).
		Set("user_id", userID)

	addDevice := sqlf.InsertInto("devices").
		Set("authorization_id", a.ID).
		Set("os", a.Device.OS).
		Set("device_model", a.Device.Model).
		Set("ip_address", a.Device.IPAddress).
		Set("browser", a.Device.Browser)

	if _, err := addAuth.ExecAndClose(ctx, s.base.DB); err != nil {
		if pgutil.ViolatesConstraint(err, "authorizations_pkey") {
			return auth.ErrAuthorizationExists
		}
		return storage.InternalError(err)
	}

	if _, err := addDevice.ExecAndClose(ctx, s.base.DB); err != nil {
		if pgutil.ViolatesConstraint(err, "devices_pkey") {
			return auth.ErrDeviceExists
		}
		return storage.InternalError(err)
	}

	return nil
}

func (s *PostgresStorage) get(ctx context.Context, where string, args ...any) ([]*auth.User, error) {
	var tmp userWithAuthRow

	q := sqlf.From("users u").
		LeftJoin("authorizations a", "u.user_id = a.user_id").
		LeftJoin("devices d", "d.authorization_id = a.authorization_id").
		Where(where, args...).
		Select("u.user_id").To(&tmp.UserID).
		Select("u.email").To(&tmp.Email).
		Select("u.password_hash").To(&tmp.PasswordHash).
		Select("u.created_at").To(&tmp.CreatedAt).
		Select("u.updated_at").To(&tmp.UpdatedAt).
		Select("a.authorization_id").To(&tmp.AuthorizationID).
		Select("a.secret").To(&tmp.Secret).
		Select("a.valid_until").To(&tmp.AuthValidUntil).
		Select("a.logout_at").To(&tmp.LogoutAt).
		Select("a.created_at").To(&tmp.AuthCreatedAt).
		Select("d.os").To(&tmp.OS).
		Select("d.browser").To(&tmp.Browser).
		Select("d.device_model").To(&tmp.Model).
		Select("d.ip_address").To(&tmp.IPAddress)

	var fetched []userWithAuthRow
	err := q.QueryAndClose(ctx, s.base.DB, func(rows *sql.Rows) {
		fetched = append(fetched, tmp)
	})

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, storage.InternalError(err)
	}

	return rowsToDomain(fetched), nil
}

func (s *PostgresStorage) getOne(ctx context.Context, where string, args ...any) (*auth.User, error) {
	users, err := s.get(ctx, where, args...)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, auth.ErrUserNotFound
	}
	s.base.MarkSeen(users[0].UserID, users[0])
	return users[0], nil
}

func (s *PostgresStorage) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.getOne(ctx, "u.email = ?", email)
}

func (s *PostgresStorage) GetByID(ctx context.Context, userID string) (*auth.User, error) {
	return s.getOne(ctx, "u.user_id = ?", userID)
}

func (s *PostgresStorage) GetByAuthSecret(ctx context.Context, secret string) (*auth.User, error) {
	return s.getOne(ctx, "u.user_id = (SELECT user_id FROM authorizations WHERE secret = ?)", secret)
}

func (s *PostgresStorage) Persist(ctx context.Context, u *auth.User) error {
	users, err := s.get(ctx, "u.user_id = ?", u.UserID)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return fmt.Errorf("can't persist auth data: %w", auth.ErrUserNotFound)
	}
	dbState := users[0]

	if changes, _ := diff.Diff(dbState, u); len(changes) != 0 {
		q := sqlf.Update("users").Where("user_id = ?", u.UserID)
		q = pgutil.MakeUpdateQuery(q, changes)

		res, err := q.ExecAndClose(ctx, s.base.DB)
		if err := pgutil.AssertUpdated(res, err, auth.ErrUserNotFound); err != nil {
			return err
		}
	}

	dbAuths := lo.KeyBy(dbState.Authorizations, func(a *auth.Authorization) string {
		return a.ID
	})

	for _, a := range u.Authorizations {
		stored, ok := dbAuths[a.ID]
		if !ok {
			if err := s.addAuth(ctx, u.UserID, a); err != nil {
				return err
			}
			continue
		}
		if err := s.persistAuth(ctx, stored, a); err != nil {
			return err
		}
	}

	s.base.MarkSeen(u.UserID, u)
	return nil
}

func (s *PostgresStorage) persistAuth(ctx context.Context, source, changed *auth.Authorization) error {
	changes, _ := diff.Diff(source, changed)
	if len(changes) == 0 {
		return nil
	}

	q := sqlf.Update("authorizations").Where("authorization_id = ?", source.ID)
	q = pgutil.MakeUpdateQuery(q, changes)

	if _, err := q.ExecAndClose(ctx, s.base.DB); err != nil {
		return storage.InternalError(err)
	}
	return nil
}

func (s *PostgresStorage) CollectEvents() []domain.Event {
	return s.base.CollectEvents()
}

func (s *PostgresStorage) Close() error {
	s.base.Close()
	return nil
}

type userWithAuthRow struct {
	UserID       string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	AuthorizationID *string
	Secret          *string
	LogoutAt        *time.Time
	AuthCreatedAt   *time.Time
	AuthValidUntil  *time.Time

	IPAddress *string
	Browser   *string
	OS        *string
	Model     *string
}

func rowsToDomain(rows []userWithAuthRow) []*auth.User {
	var order []string
	users := make(map[string]*auth.User)

	for _, row := range rows {
		u, ok := users[row.UserID]
		if !ok {
			u = &auth.User{
				UserID:         row.UserID,
				Email:          row.Email,
				PasswordHash:   row.PasswordHash,
				CreatedAt:      row.CreatedAt,
				UpdatedAt:      row.UpdatedAt,
				Authorizations: make([]*auth.Authorization, 0),
			}
			users[row.UserID] = u
			order = append(order, row.UserID)
		}
		if row.AuthorizationID == nil {
			continue
		}
		u.Authorizations = append(u.Authorizations, &auth.Authorization{
			ID:         *row.AuthorizationID,
			Secret:     lo.FromPtr(row.Secret),
			CreatedAt:  lo.FromPtr(row.AuthCreatedAt),
			ValidUntil: lo.FromPtr(row.AuthValidUntil),
			LogoutAt:   row.LogoutAt,
			Device: auth.Device{
				Browser:   lo.FromPtr(row.Browser),
				OS:        lo.FromPtr(row.OS),
				IPAddress: lo.FromPtr(row.IPAddress),
				Model:     lo.FromPtr(row.Model),
			},
		})
	}

	return lo.Map(order, func(id string, _ int) *auth.User {
		return users[id]
	})
}
