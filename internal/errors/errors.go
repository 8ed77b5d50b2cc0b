// Package errors provides domain-specific error types and sentinel errors
// for the action server edge. Action handlers themselves never fail; these
// errors cover request decoding, dispatch, rate limiting and catalog loading.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrUnknownAction indicates no action is registered under the requested name.
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidInput indicates the action call could not be decoded.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimitExceeded indicates a sender exceeded its request budget.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrUnauthorized indicates the action endpoint token did not match.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTemplateMissing indicates a reply the handlers need is absent from the catalog.
	ErrTemplateMissing = errors.New("template missing")

	// ErrCatalogInvalid indicates the reply catalog failed schema validation.
	ErrCatalogInvalid = errors.New("catalog invalid")
)

// IsUnknownAction reports whether err is or wraps ErrUnknownAction.
func IsUnknownAction(err error) bool {
	return errors.Is(err, ErrUnknownAction)
}

// IsInvalidInput reports whether err is or wraps ErrInvalidInput.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsRateLimitExceeded reports whether err is or wraps ErrRateLimitExceeded.
func IsRateLimitExceeded(err error) bool {
	return errors.Is(err, ErrRateLimitExceeded)
}

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// CatalogError describes why a reply catalog was rejected.
type CatalogError struct {
	Source   string   // file path or "embedded"
	Problems []string // one entry per schema violation or missing reply
	Err      error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog %s: %v (%d problems, first: %s)", e.Source, e.Err, len(e.Problems), e.first())
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

func (e *CatalogError) first() string {
	if len(e.Problems) == 0 {
		return "none"
	}
	return e.Problems[0]
}

// NewCatalogError creates a catalog error wrapping one of the catalog sentinels.
func NewCatalogError(source string, err error, problems []string) *CatalogError {
	return &CatalogError{
		Source:   source,
		Problems: problems,
		Err:      err,
	}
}
