package apperror

import (
	"errors"
	"net/http"
)

// Error kinds. Services wrap failures with one of these so handlers can pick a status code.
var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrUpstreamFormat = errors.New("upstream format error")
	ErrService        = errors.New("service error")
)

// Error carries a client-facing message next to its kind and the underlying cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

// New builds an Error without an underlying cause.
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error around cause.
func Wrap(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Detail returns the underlying cause message that may be shown to clients.
// Upstream format failures never expose the raw model output.
func (e *Error) Detail() string {
	if e.Err == nil || errors.Is(e.Kind, ErrUpstreamFormat) {
		return ""
	}
	return e.Err.Error()
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// As extracts an *Error from err. Errors of any other type are reported as service failures
// with the provided fallback message.
func As(err error, fallback string) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrService, fallback, err)
}
