package authapp

import (
	"context"
)

type contextKey string

const accessTokenKey contextKey = "access-token"

func WithAccessToken(ctx context.Context, data *AccessTokenData) context.Context {
	return context.WithValue(ctx, accessTokenKey, data)
}

func AccessTokenFromContext(ctx context.Context) (*AccessTokenData, bool) {
	data, ok := ctx.Value(accessTokenKey).(*AccessTokenData)
	return data, ok && data != nil
}

// ContextIdentity reports the user whose access token was validated for the request.
type ContextIdentity struct{}

func (ContextIdentity) CurrentUserID(ctx context.Context) (string, bool) {
	data, ok := AccessTokenFromContext(ctx)
	if !ok || data.UserID == "" {
		return "", false
	}
	return data.UserID, true
}
