package apperr

import "errors"

// Kind classifies an application error so handlers can map it to an
// HTTP status without inspecting message strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindValidation
	KindUnauthorized
)

// Error is a typed application error. Services return these; the
// handler layer translates them into response envelopes.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports that an entity is absent, or absent from the
// caller's perspective when ownership is part of the lookup.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Forbidden reports that the caller lacks permission on an entity
// that is known to exist.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Conflict reports a uniqueness or self-reference violation.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Validation reports a malformed request detected at the boundary.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Unauthorized reports a failed credential check.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Unknown wraps an unexpected failure, e.g. storage unavailability.
func Unknown(message string, err error) *Error {
	return &Error{Kind: KindUnknown, Message: message, Err: err}
}

// KindOf extracts the Kind from an error chain. Errors that are not
// *Error are treated as unknown failures.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}
