// Package xerrors defines the kind-tagged error taxonomy shared across
// aquarius's components.
package xerrors

import "fmt"

// Kind identifies the stage at which an operation failed.
type Kind string

const (
	Parse        Kind = "parse"
	Connect      Kind = "connect"
	Handshake    Kind = "handshake"
	Send         Kind = "send"
	Receive      Kind = "receive"
	TaskJoin     Kind = "task_join"
	Precondition Kind = "precondition"
)

// Error wraps an underlying cause with a Kind, following ordinary Go
// error-wrapping idiom (errors.Is/errors.As work through Unwrap).
type Error struct {
	Kind   Kind
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New constructs an Error with no underlying cause.
func New(kind Kind, detail string) error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap constructs an Error around an underlying cause.
func Wrap(kind Kind, detail string, cause error) error {
	if cause == nil {
		return New(kind, detail)
	}
	return &Error{Kind: kind, Detail: detail, Cause: cause}
}

// Is reports whether err is (or wraps) an *Error of the given kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return false
}
