package authapp

import (
	"context"
	"testing"
	"time"

	"github.com/burenotti/go_wellness_backend/internal/domain/auth"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthorizer() *Authorizer {
	return &Authorizer{
		Cost:             bcrypt.MinCost,
		Secret:           "test-secret",
		AccessTokenTTL:   time.Hour,
		AuthorizationTTL: 24 * time.Hour,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	a := newTestAuthorizer()
	u := auth.NewUser("user-1", "ann@example.com", "password123", a)

	authorization, err := u.Authorize(a, "password123", auth.Device{Browser: "Firefox"})
	require.NoError(t, err)
	require.NotEmpty(t, authorization.Secret)

	token, err := a.GenerateAccessToken(u, authorization)
	require.NoError(t, err)

	data, err := a.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", data.UserID)
	require.Equal(t, authorization.ID, data.Authorization)
}

func TestAuthorizeRejectsWrongPassword(t *testing.T) {
	a := newTestAuthorizer()
	u := auth.NewUser("user-1", "ann@example.com", "password123", a)

	_, err := u.Authorize(a, "wrong-password", auth.Device{})
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestValidateAccessTokenErrors(t *testing.T) {
	a := newTestAuthorizer()
	u := auth.NewUser("user-1", "ann@example.com", "password123", a)
	authorization, err := u.Authorize(a, "password123", auth.Device{})
	require.NoError(t, err)

	other := newTestAuthorizer()
	other.Secret = "another-secret"
	foreign, err := other.GenerateAccessToken(u, authorization)
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(foreign)
	require.ErrorIs(t, err, ErrAccessTokenInvalid)

	expired := newTestAuthorizer()
	expired.AccessTokenTTL = -time.Minute
	stale, err := expired.GenerateAccessToken(u, authorization)
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(stale)
	require.ErrorIs(t, err, ErrAccessTokenExpired)

	_, err = a.ValidateAccessToken("not-a-token")
	require.ErrorIs(t, err, ErrAccessTokenInvalid)
}

func TestContextIdentity(t *testing.T) {
	var id ContextIdentity

	_, ok := id.CurrentUserID(context.Background())
	require.False(t, ok)

	ctx := WithAccessToken(context.Background(), &AccessTokenData{UserID: "user-1"})
	userID, ok := id.CurrentUserID(ctx)
	require.True(t, ok)
	require.Equal(t, "user-1", userID)
}
