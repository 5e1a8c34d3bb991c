package user

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"curio/internal/platform/metrics"
	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
	"curio/pkg/platform/sentinel"
)

// Service owns user registration and lookup.
type Service struct {
	store   Store
	metrics *metrics.Metrics
}

func NewService(store Store, m *metrics.Metrics) *Service {
	return &Service{store: store, metrics: m}
}

// Register validates, hashes the password, and creates the account.
func (s *Service) Register(ctx context.Context, email, firstName, lastName, password string) (*User, error) {
	if err := ValidateNew(email, firstName, lastName, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to hash password")
	}

	created, err := s.store.Create(ctx, &User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hash),
	})
	if errors.Is(err, sentinel.ErrConflict) {
		return nil, dErrors.New(dErrors.CodeConflict, "email is already registered")
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to create user")
	}

	if s.metrics != nil {
		s.metrics.IncrementUsersCreated()
	}
	return created, nil
}

// Get returns the user or not_found.
func (s *Service) Get(ctx context.Context, userID id.UserID) (*User, error) {
	u, err := s.store.GetByID(ctx, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "user "+userID.String()+" not found")
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to load user")
	}
	return u, nil
}
