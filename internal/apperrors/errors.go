package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrProviderUnavailable indicates that a rate provider could not deliver a usable answer.
var ErrProviderUnavailable = errors.New("provider unavailable")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error that matches ErrNotFound.
func NewNotFoundError(message string) error {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError returns an error that matches ErrValidation.
func NewValidationError(message string) error {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// ProviderUnavailableError is the single failure kind surfaced by rate providers
// and by the resilience layer around them.
type ProviderUnavailableError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *ProviderUnavailableError) Error() string {
	msg := fmt.Sprintf("provider %s unavailable: %s", e.Provider, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderUnavailableError) Unwrap() error {
	return e.Err
}

// Is makes every ProviderUnavailableError match ErrProviderUnavailable.
func (e *ProviderUnavailableError) Is(target error) bool {
	return target == ErrProviderUnavailable
}

// NewProviderUnavailableError wraps cause (which may be nil) for the named provider.
func NewProviderUnavailableError(provider, reason string, cause error) error {
	return &ProviderUnavailableError{Provider: provider, Reason: reason, Err: cause}
}
