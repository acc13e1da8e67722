package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for every failure a service can report. Controllers map
// these to HTTP statuses; anything unrecognized becomes a 500 with a generic
// message so store internals never leak to clients.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAssertion   = errors.New("invalid authentication assertion")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("not authenticated")
	ErrForbidden          = errors.New("not enough permissions")
	ErrNotFound           = errors.New("resource not found")
	ErrEmptyQuestionSet   = errors.New("no questions available to score")
	ErrUnknownUser        = errors.New("unknown user")
)

// ValidationError carries a single human-readable reason for rejecting input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func Validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Status returns the HTTP status code for err, plus whether the error is one
// of the typed failures whose message is safe to forward to the client.
func Status(err error) (int, bool) {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest, true
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusConflict, true
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidAssertion),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, true
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, true
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, ErrEmptyQuestionSet):
		return http.StatusConflict, true
	default:
		return http.StatusInternalServerError, false
	}
}
