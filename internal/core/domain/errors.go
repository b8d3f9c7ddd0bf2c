package domain

import (
	"context"
	"errors"
	"fmt"
)

// Domain errors represent the four failure kinds visible to callers.
// Lower layers wrap these with fmt.Errorf("...: %w", ...) so that
// errors.Is keeps working across package boundaries.
var (
	// ErrInvalidArgument indicates malformed input from the caller.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates a well-formed identifier with no corresponding document.
	ErrNotFound = errors.New("not found")

	// ErrFetchFailure indicates a remote source error or an unparseable payload
	// with no usable cached fallback.
	ErrFetchFailure = errors.New("fetch failure")

	// ErrIOFailure indicates local storage is unavailable.
	ErrIOFailure = errors.New("io failure")
)

// Kind classifies an error for callers.
type Kind string

// Available error kinds.
const (
	KindInvalidArgument Kind = "invalid_argument"
	KindNotFound        Kind = "not_found"
	KindFetchFailure    Kind = "fetch_failure"
	KindIOFailure       Kind = "io_failure"
)

// Retryable reports whether repeating the same call may succeed.
// InvalidArgument and NotFound need new input first.
func (k Kind) Retryable() bool {
	return k == KindFetchFailure || k == KindIOFailure
}

// String returns the string representation.
func (k Kind) String() string {
	return string(k)
}

// sentinel returns the sentinel error matching the kind.
func (k Kind) sentinel() error {
	switch k {
	case KindInvalidArgument:
		return ErrInvalidArgument
	case KindNotFound:
		return ErrNotFound
	case KindIOFailure:
		return ErrIOFailure
	default:
		return ErrFetchFailure
	}
}

// Error is the only error type returned across the query facade.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// NewError creates an Error of the given kind.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// KindOf classifies err. Errors that carry no known kind, including
// context cancellation, are treated as fetch failures.
func KindOf(err error) Kind {
	var de *Error
	switch {
	case errors.As(err, &de):
		return de.Kind
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrIOFailure):
		return KindIOFailure
	default:
		return KindFetchFailure
	}
}

// AsError converts any error into an *Error, keeping the original as cause.
// A nil error stays nil.
func AsError(err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	msg := err.Error()
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "timed out: " + msg
	}
	return &Error{Kind: KindOf(err), Message: msg, Err: err}
}
