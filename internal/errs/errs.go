// Package errs defines the error kinds shared by the contacts and notes
// aggregates. Every error raised by the core wraps exactly one kind so the
// command layer can decide how to present it.
package errs

import (
	"errors"
	"fmt"
)

// Kinds.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrNotSet        = errors.New("not set")
	ErrAlreadyExists = errors.New("already exists")
)

// Error is a user-displayable message tagged with a kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// New returns an *Error of the given kind.
func New(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf is New with formatting.
func Newf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Invalid is shorthand for an ErrInvalidInput error.
func Invalid(format string, args ...any) *Error {
	return Newf(ErrInvalidInput, format, args...)
}

// KindOf reports which kind err carries, or nil if it carries none.
func KindOf(err error) error {
	for _, k := range []error{ErrInvalidInput, ErrNotFound, ErrNotSet, ErrAlreadyExists} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
