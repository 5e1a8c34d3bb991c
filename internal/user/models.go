package user

import (
	"strings"
	"time"

	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
)

// User is an account that can authenticate and verify items.
//
// Invariants:
//   - Email is non-empty, contains '@', and is unique (case-insensitive)
//   - FirstName and LastName are non-empty, at most 80 characters
//   - PasswordHash is a bcrypt hash and never serialized
type User struct {
	ID           id.UserID `json:"user_id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName is the display name denormalized onto verification responses.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ValidateNew checks the registration invariants before hashing.
func ValidateNew(email, firstName, lastName, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return dErrors.New(dErrors.CodeInvalidInput, "email must be a valid address")
	}
	if firstName == "" || len(firstName) > 80 {
		return dErrors.New(dErrors.CodeInvalidInput, "first_name must be 1-80 characters")
	}
	if lastName == "" || len(lastName) > 80 {
		return dErrors.New(dErrors.CodeInvalidInput, "last_name must be 1-80 characters")
	}
	if len(password) < 8 {
		return dErrors.New(dErrors.CodeInvalidInput, "password must be at least 8 characters")
	}
	return nil
}
