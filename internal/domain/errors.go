package domain

import (
	"errors"
	"net/http"
)

// Error kinds. Every user-facing failure wraps exactly one of these.
var (
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrAuth               = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUnknownSymbol      = errors.New("unknown symbol")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrNoHistory          = errors.New("no history")
	ErrQuoteUnavailable   = errors.New("quote unavailable")
)

var statusByKind = map[error]int{
	ErrValidation:         http.StatusBadRequest,
	ErrConflict:           http.StatusConflict,
	ErrAuth:               http.StatusUnauthorized,
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrUnknownSymbol:      http.StatusBadRequest,
	ErrInvalidInput:       http.StatusBadRequest,
	ErrInsufficientFunds:  http.StatusBadRequest,
	ErrInsufficientShares: http.StatusBadRequest,
	ErrNoHistory:          http.StatusBadRequest,
	ErrQuoteUnavailable:   http.StatusServiceUnavailable,
}

// Error is a failure that can be shown to the user as is.
type Error struct {
	Kind    error  // One of the Err* kinds above
	Message string // Text for the apology page
	Err     error  // Underlying cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Is matches the error kind, so errors.Is(err, ErrConflict) works.
func (e *Error) Is(target error) bool { return e.Kind == target }

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	if s, ok := statusByKind[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// NewError builds an Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError builds an Error of the given kind around a cause.
func WrapError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// StatusOf maps any error to the status code it is reported with.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status()
	}
	return http.StatusInternalServerError
}

// MessageOf returns the user-facing text for err, hiding internal details.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return http.StatusText(http.StatusInternalServerError)
}
