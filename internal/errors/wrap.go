package errors

import (
	"errors"
	"fmt"
)

// ErrorWrapper tags errors from one module operation with a message that is
// safe to put in an error body.
type ErrorWrapper struct {
	module    string
	operation string
}

// NewWrapper creates a wrapper for operation within module.
func NewWrapper(module, operation string) *ErrorWrapper {
	return &ErrorWrapper{module: module, operation: operation}
}

// Wrap returns nil for a nil err.
func (w *ErrorWrapper) Wrap(err error, userMessage string) error {
	if err == nil {
		return nil
	}
	return w.wrap(err, userMessage)
}

// Wrapf is Wrap with a formatted user message.
func (w *ErrorWrapper) Wrapf(err error, userMessageFormat string, args ...any) error {
	if err == nil {
		return nil
	}
	return w.wrap(err, fmt.Sprintf(userMessageFormat, args...))
}

func (w *ErrorWrapper) wrap(err error, userMessage string) *WrappedError {
	return &WrappedError{
		Module:      w.module,
		Operation:   w.operation,
		Cause:       err,
		UserMessage: userMessage,
	}
}

// WrappedError carries the internal cause for logs and Sentry alongside the
// message returned to the dialogue runtime.
type WrappedError struct {
	Module      string // e.g. "webhook"
	Operation   string // e.g. "run_action"
	Cause       error
	UserMessage string
}

func (e *WrappedError) Error() string {
	return fmt.Sprintf("[%s:%s] %s: %v", e.Module, e.Operation, e.UserMessage, e.Cause)
}

func (e *WrappedError) Unwrap() error {
	return e.Cause
}

// GetUserMessage returns the outermost WrappedError's user message anywhere
// in err's chain, or err's own text when there is none.
func GetUserMessage(err error) string {
	if err == nil {
		return ""
	}
	var wrapped *WrappedError
	if errors.As(err, &wrapped) {
		return wrapped.UserMessage
	}
	return err.Error()
}
