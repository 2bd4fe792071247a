// Package apperr defines the error type used for the sentinel errors
// reported by reps
package apperr

import "fmt"

// Error is an application error with a message that may act as a format
// template.
type Error struct {
	Cause   error
	Message string
	tmpl    string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}

	return e.Message
}

// Fmt returns a copy of the error with its message formatted using the
// provided arguments.
func (e *Error) Fmt(a ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, a...),
		Cause:   e.Cause,
		tmpl:    e.template(),
	}
}

// Wrap returns a copy of the error that wraps err.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message: e.Message,
		Cause:   err,
		tmpl:    e.template(),
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target was derived from the same sentinel error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.template() == e.template()
}

func (e *Error) template() string {
	if e.tmpl != "" {
		return e.tmpl
	}

	return e.Message
}
