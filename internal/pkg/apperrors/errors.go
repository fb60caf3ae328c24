package apperrors

import "errors"

// Sentinel errors for the application taxonomy. Services wrap these in an
// *Error carrying the user-facing message; the HTTP layer maps the sentinel
// to a status code with errors.Is.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrTeapot           = errors.New("i am a teapot")
	ErrInternal         = errors.New("internal server error")
)

// Error is an application error with a stable user-facing message and
// optional structured data for the response envelope.
type Error struct {
	Err     error
	Message string
	Data    any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *Error) Unwrap() error {
	return e.Err
}

// WithData attaches structured data to the error
func (e *Error) WithData(data any) *Error {
	e.Data = data
	return e
}

// NewBadRequest creates a 400-class error (malformed input or invalid state
// transition).
func NewBadRequest(message string) *Error {
	return &Error{Err: ErrBadRequest, Message: message}
}

// NewUnauthorized creates a 401-class error.
func NewUnauthorized(message string) *Error {
	return &Error{Err: ErrUnauthorized, Message: message}
}

// NewForbidden creates a 403-class error (authenticated but not permitted).
func NewForbidden(message string) *Error {
	return &Error{Err: ErrPermissionDenied, Message: message}
}

// NewNotFound creates a 404-class error. Also used when the caller is not a
// party to the entity, to avoid leaking existence.
func NewNotFound(message string) *Error {
	return &Error{Err: ErrNotFound, Message: message}
}

// NewConflict creates a 409-class error (concurrent-update precondition
// failure).
func NewConflict(message string) *Error {
	return &Error{Err: ErrConflict, Message: message}
}

// NewInternal creates a 500-class error. The underlying cause's message is
// exposed as auxiliary data for diagnostics, per the response contract.
func NewInternal(message string, cause error) *Error {
	e := &Error{Err: ErrInternal, Message: message}
	if cause != nil {
		e.Data = cause.Error()
	}
	return e
}
