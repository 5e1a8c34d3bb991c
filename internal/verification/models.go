// Package verification holds the verification record model shared by the
// store, service and handler subpackages. A record is a user's timestamped
// confirmation that an item still exists, with an optional note. Records
// are append-only; nothing updates or deletes them.
package verification

import (
	"strings"
	"time"
	"unicode/utf8"

	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
)

type Record struct {
	ID        id.VerificationID `json:"verification_id"`
	UserID    id.UserID         `json:"user_id"`
	ItemID    id.ItemID         `json:"item_id"`
	Note      *string           `json:"note,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// NormalizeNote trims a note and converts blank input to absent. Notes
// longer than 500 characters are rejected.
func NormalizeNote(note string) (*string, error) {
	trimmed := strings.TrimSpace(note)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > 500 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "note must be at most 500 characters")
	}
	return &trimmed, nil
}
