// Package policy decides whether a user may verify an item. The rule is
// one verification per user per item per UTC calendar day. The day is a
// wall-clock window, not a rolling 24 hours: a record from 23:59 stops
// blocking at the next midnight.
package policy

import (
	"time"

	dErrors "curio/pkg/domain-errors"
)

// DayStart returns the UTC midnight opening the calendar day containing t.
// Callers compute it fresh per check so long-lived processes never carry a
// stale boundary.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Evaluate returns nil when verification is allowed, or the policy
// rejection when a record already exists in today's window.
func Evaluate(alreadyVerifiedToday bool) error {
	if alreadyVerifiedToday {
		return dErrors.New(dErrors.CodeAlreadyVerified, "item already verified by this user today")
	}
	return nil
}
