// Package domain holds the typed identifiers shared across resource
// packages. IDs are server-assigned, monotonically increasing int64 values
// (BIGSERIAL in PostgreSQL, a counter in the in-memory stores).
package domain

import (
	"strconv"

	dErrors "curio/pkg/domain-errors"
)

type (
	UserID         int64
	ItemID         int64
	CategoryID     int64
	TagID          int64
	CityID         int64
	VerificationID int64
)

// parseID enforces the shared invariant: route and token IDs must be
// positive base-10 integers.
func parseID(raw, name string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, name+" must be a positive integer")
	}
	return n, nil
}

func ParseUserID(raw string) (UserID, error) {
	n, err := parseID(raw, "user id")
	return UserID(n), err
}

func ParseItemID(raw string) (ItemID, error) {
	n, err := parseID(raw, "item id")
	return ItemID(n), err
}

func ParseCategoryID(raw string) (CategoryID, error) {
	n, err := parseID(raw, "category id")
	return CategoryID(n), err
}

func ParseTagID(raw string) (TagID, error) {
	n, err := parseID(raw, "tag id")
	return TagID(n), err
}

func ParseCityID(raw string) (CityID, error) {
	n, err := parseID(raw, "city id")
	return CityID(n), err
}

func ParseVerificationID(raw string) (VerificationID, error) {
	n, err := parseID(raw, "verification id")
	return VerificationID(n), err
}

func (id UserID) String() string         { return strconv.FormatInt(int64(id), 10) }
func (id ItemID) String() string         { return strconv.FormatInt(int64(id), 10) }
func (id CategoryID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id TagID) String() string          { return strconv.FormatInt(int64(id), 10) }
func (id CityID) String() string         { return strconv.FormatInt(int64(id), 10) }
func (id VerificationID) String() string { return strconv.FormatInt(int64(id), 10) }
