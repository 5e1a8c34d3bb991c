package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	jwttoken "curio/internal/jwt_token"
	"curio/internal/user"
	dErrors "curio/pkg/domain-errors"
	"curio/pkg/platform/sentinel"
)

// UserDirectory is the read-only user lookup the auth service needs.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// RevocationList records revoked token IDs until their natural expiry.
type RevocationList interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Service issues and revokes access tokens. Account management lives in the
// user package; this service only authenticates.
type Service struct {
	users       UserDirectory
	tokens      *jwttoken.JWTService
	revocations RevocationList
	tokenTTL    time.Duration
}

func NewService(users UserDirectory, tokens *jwttoken.JWTService, revocations RevocationList, tokenTTL time.Duration) *Service {
	return &Service{
		users:       users,
		tokens:      tokens,
		revocations: revocations,
		tokenTTL:    tokenTTL,
	}
}

// Login verifies credentials and returns a signed access token. Lookup
// misses and bad passwords produce the same error so the endpoint does not
// leak which emails exist.
func (s *Service) Login(ctx context.Context, email, password string) (string, time.Duration, error) {
	invalidCredentials := dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")

	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", 0, invalidCredentials
	}
	if err != nil {
		return "", 0, dErrors.New(dErrors.CodeInternal, "failed to look up user")
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", 0, invalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(u.ID, s.tokenTTL)
	if err != nil {
		return "", 0, dErrors.New(dErrors.CodeInternal, "failed to sign token")
	}
	return token, s.tokenTTL, nil
}

// Logout revokes the presented token's JTI until the token expires. Tokens
// without a known expiry are revoked for the maximum token lifetime, which
// covers whatever validity they had left.
func (s *Service) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return dErrors.New(dErrors.CodeBadRequest, "token has no revocable id")
	}

	ttl := s.tokenTTL
	if remaining := time.Until(expiresAt); !expiresAt.IsZero() && remaining > 0 {
		ttl = remaining
	}
	if err := s.revocations.RevokeToken(ctx, jti, ttl); err != nil {
		return dErrors.New(dErrors.CodeInternal, "failed to revoke token")
	}
	return nil
}
