// Package domainerrors defines the coded error type that crosses the
// service boundary. Services create these; the HTTP layer translates the
// code to a status, never the other way around.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code identifies the kind of domain failure. Codes are part of the API
// contract: they appear verbatim in JSON error envelopes.
type Code string

const (
	CodeBadRequest      Code = "bad_request"
	CodeInvalidInput    Code = "invalid_input"
	CodeUnauthorized    Code = "unauthorized"
	CodeNotFound        Code = "not_found"
	CodeConflict        Code = "conflict"
	CodeAlreadyVerified Code = "already_verified"
	CodeInternal        Code = "internal_error"
)

// Error is a value type so two errors with the same code and description
// compare equal, which keeps errors.Is usable in tests.
type Error struct {
	Code        Code
	Description string
}

func (e Error) Error() string {
	if e.Description == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Description
}

// New constructs a domain error with the given code and human-readable
// description. The description is client-visible for non-internal codes.
func New(code Code, description string) Error {
	return Error{Code: code, Description: description}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ToHTTPStatus maps a domain error code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidInput, CodeAlreadyVerified:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
