// Package apperr maps domain failures onto HTTP statuses and the public
// messages clients see in {"error": ...} bodies.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrTooManyRequests = errors.New("too many requests")
)

const internalMessage = "Internal server error"

// Error pairs a sentinel kind with the message returned to the client.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Kind.Error() + ": " + e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func New(kind error, msg string) *Error { return &Error{Kind: kind, Message: msg} }

func InvalidInput(msg string) *Error { return New(ErrInvalidInput, msg) }

func Unauthorized(msg string) *Error { return New(ErrUnauthorized, msg) }

func Conflict(msg string) *Error { return New(ErrConflict, msg) }

func NotFound(msg string) *Error { return New(ErrNotFound, msg) }

// Status returns the HTTP status for err. Unclassified errors are 500.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text for err. Internal details never leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	switch Status(err) {
	case http.StatusBadRequest:
		return "Bad request"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusNotFound:
		return "Not found"
	case http.StatusConflict:
		return "Conflict"
	case http.StatusTooManyRequests:
		return "Too many requests"
	default:
		return internalMessage
	}
}
