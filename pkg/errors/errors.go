// Package errors provides coded errors for the slkit managers.
//
// Manager-level failures carry a stable string code so callers (and the CLI
// exit-code mapping) can branch without string-matching messages. Transport
// failures from pkg/session are never wrapped into these; they propagate
// as-is.
package errors

import (
	"errors"
	"fmt"
)

// Code identifies a class of manager-level failure.
type Code string

const (
	// ErrCodeNotFound means the remote object for the given id is absent.
	ErrCodeNotFound Code = "NOT_FOUND"

	// ErrCodeBillingMissing means the object exists but carries no billing
	// item, so it cannot be cancelled.
	ErrCodeBillingMissing Code = "BILLING_ITEM_NOT_FOUND"

	// ErrCodeEmptySelection means a catalog query matched nothing.
	ErrCodeEmptySelection Code = "EMPTY_SELECTION"

	// ErrCodeInvalidInput means caller-supplied arguments were rejected
	// before any remote call was made.
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// ErrCodeInternal is a catch-all for unexpected local failures.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a coded error with the given message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf returns a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns a coded error wrapping err.
func Wrap(code Code, err error, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// IsCode reports whether any error in err's chain carries the given code.
func IsCode(err error, code Code) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}
