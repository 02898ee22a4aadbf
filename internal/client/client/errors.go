package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable           = errors.New("server unavailable")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
	ErrResponseTooLarge      = errors.New("response too large")

	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")

	ErrAddressLimitReached = errors.New("shipping address limit reached")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrMissingAddress      = errors.New("shipping address is missing or incomplete")
)

// DefaultErrorMessage is shown when a failed response carries no message.
const DefaultErrorMessage = "Something went wrong"

// APIError is a non-2xx response decoded from the backend error envelope.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
	RequestID  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Is maps status codes onto the package sentinels, so callers can write
// errors.Is(err, client.ErrNotFound).
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusGone
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrValidation:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	}
	return false
}

// FieldError returns the first message reported for a form field.
func (e *APIError) FieldError(field string) string {
	if msgs := e.Fields[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}
