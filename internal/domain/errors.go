package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	// KindInvalidArgument marks a malformed input value: empty, wrong type, or not a URL.
	KindInvalidArgument Kind = iota + 1
	// KindRange marks a numeric value outside its allowed bounds.
	KindRange
	// KindPersistence marks a database handle, statement, binding, or execution failure,
	// including a violated insert/update/delete identity precondition.
	KindPersistence
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindRange:
		return "range"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Sentinel errors for matching with errors.Is.
var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrRange           = &Error{Kind: KindRange}
	ErrPersistence     = &Error{Kind: KindPersistence}
)

// Error is the single error type returned by entity validation and persistence.
type Error struct {
	Kind Kind
	// Field names the offending field for validation errors.
	Field   string
	Message string
	Err     error
}

// Error returns the message, followed by the cause when there is one.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Field == "" && t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// InvalidArgument returns a KindInvalidArgument error.
func InvalidArgument(msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

// OutOfRange returns a KindRange error.
func OutOfRange(msg string) *Error {
	return &Error{Kind: KindRange, Message: msg}
}

// Persistence returns a KindPersistence error wrapping cause, which may be nil.
func Persistence(msg string, cause error) *Error {
	return &Error{Kind: KindPersistence, Message: msg, Err: cause}
}
