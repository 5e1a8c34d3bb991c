package middleware

import (
	"context"
	"time"

	id "curio/pkg/domain"
)

// Context keys for request-scoped values set by middleware.
type (
	contextKeyRequestID   struct{}
	contextKeyUserID      struct{}
	contextKeyTokenJTI    struct{}
	contextKeyTokenExpiry struct{}
)

// GetRequestID retrieves the request ID assigned by the RequestID middleware.
func GetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(contextKeyRequestID{}).(string)
	if !ok {
		return ""
	}
	return requestID
}

// GetUserID retrieves the authenticated user ID. Zero when the request did
// not pass through RequireAuth.
func GetUserID(ctx context.Context) id.UserID {
	userID, ok := ctx.Value(contextKeyUserID{}).(id.UserID)
	if !ok {
		return 0
	}
	return userID
}

// GetTokenJTI retrieves the JWT ID of the bearer token, used by logout to
// revoke the exact token that authenticated the request.
func GetTokenJTI(ctx context.Context) string {
	jti, ok := ctx.Value(contextKeyTokenJTI{}).(string)
	if !ok {
		return ""
	}
	return jti
}

// WithUserID injects an authenticated user ID; exported for handler tests.
func WithUserID(ctx context.Context, userID id.UserID) context.Context {
	return context.WithValue(ctx, contextKeyUserID{}, userID)
}

func withRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID{}, requestID)
}

func withTokenJTI(ctx context.Context, jti string) context.Context {
	return context.WithValue(ctx, contextKeyTokenJTI{}, jti)
}

// GetTokenExpiry retrieves the expiry of the bearer token, letting logout
// revoke it for exactly its remaining lifetime.
func GetTokenExpiry(ctx context.Context) time.Time {
	expiry, ok := ctx.Value(contextKeyTokenExpiry{}).(time.Time)
	if !ok {
		return time.Time{}
	}
	return expiry
}

func withTokenExpiry(ctx context.Context, expiry time.Time) context.Context {
	return context.WithValue(ctx, contextKeyTokenExpiry{}, expiry)
}
