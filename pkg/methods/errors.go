package methods

import "errors"

// Errors returned while building a Registry or validating request options.
var (
	// ErrEmptyOperation is returned for a declaration without an operation name.
	ErrEmptyOperation = errors.New("empty operation identifier")

	// ErrUnknownStrategy is returned for a strategy name that is not recognised.
	ErrUnknownStrategy = errors.New("unknown pagination strategy")

	// ErrMissingItemsField is returned for a cursor capability without an items field.
	ErrMissingItemsField = errors.New("cursor capability requires an items field")

	// ErrConflictingCapability is returned when an operation is declared more than once.
	ErrConflictingCapability = errors.New("operation declared with more than one capability")

	// ErrInvalidOptions is returned when pagination arguments hold illegal values.
	ErrInvalidOptions = errors.New("invalid pagination options")
)
