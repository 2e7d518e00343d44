package pagination

import (
	"errors"
	"fmt"
)

// Common errors returned by the paginator.
var (
	// ErrUnsupportedOperation is returned when no pagination strategy is
	// registered for the requested operation.
	ErrUnsupportedOperation = errors.New("operation does not support pagination")

	// ErrMalformedResponse is returned when a response lacks the items field
	// or the paging metadata its strategy requires.
	ErrMalformedResponse = errors.New("malformed paginated response")

	// ErrAPIFailure is returned when a response reports ok=false.
	ErrAPIFailure = errors.New("api call failed")

	// ErrCancelled is returned when the context is cancelled between calls.
	ErrCancelled = errors.New("pagination cancelled")

	// ErrSessionConsumed is returned when a page sequence is ranged over twice.
	ErrSessionConsumed = errors.New("pagination session already consumed")
)

// Kind classifies pagination errors.
type Kind string

const (
	// KindUnsupported means no strategy is registered for the operation.
	KindUnsupported Kind = "unsupported_operation"

	// KindInvalidOptions means the base arguments hold illegal pagination values.
	KindInvalidOptions Kind = "invalid_options"

	// KindTransport means the Caller failed or the server reported ok=false.
	KindTransport Kind = "transport"

	// KindMalformed means a response violated its strategy's contract.
	KindMalformed Kind = "malformed_response"

	// KindCancelled means the context ended before the next call.
	KindCancelled Kind = "cancelled"
)

// Error is a pagination failure with the operation and page it happened on.
type Error struct {
	Kind      Kind
	Operation string
	// Page is the 1-based number of the page being requested, 0 if no
	// request was attempted.
	Page int
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("paginate %s (%s, page %d): %v", e.Operation, e.Kind, e.Page, e.Err)
	}
	return fmt.Sprintf("paginate %s (%s): %v", e.Operation, e.Kind, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of a pagination error, or "" for other errors.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return ""
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
