package services

import (
	"errors"
	"fmt"

	"github.com/HSouheill/itam_backend/repositories"
)

var (
	// ErrUnauthenticated is returned when a credential is missing or invalid
	ErrUnauthenticated = errors.New("unauthorized")
	// ErrForbidden is returned when the caller may not act on the target
	ErrForbidden = errors.New("forbidden access")
	// ErrNotFound is returned when the addressed document does not exist
	ErrNotFound = repositories.ErrNotFound
	// ErrNotPending is returned when a transition targets a processed request
	ErrNotPending = errors.New("request has already been processed")
	// ErrOutOfStock is returned when approving a request for an asset with no stock
	ErrOutOfStock = errors.New("asset is out of stock")
)

// ValidationError reports a malformed or disallowed input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError from a format string
func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// PaymentProviderError wraps a failure of the external payment API
type PaymentProviderError struct {
	Err error
}

func (e *PaymentProviderError) Error() string {
	return "payment provider error: " + e.Err.Error()
}

func (e *PaymentProviderError) Unwrap() error {
	return e.Err
}

// IsConflict reports whether err is a state conflict (409)
func IsConflict(err error) bool {
	return errors.Is(err, ErrNotPending) || errors.Is(err, ErrOutOfStock)
}
