// Package apperrors defines the error taxonomy shared by the service,
// repository, and handler layers. Every business failure carries a Kind so
// handlers can map it to an HTTP status without string matching.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies an error for callers.
type Kind string

const (
	KindInvalidArgument     Kind = "INVALID_ARGUMENT"
	KindUnauthenticated     Kind = "UNAUTHENTICATED"
	KindMalformedCredential Kind = "MALFORMED_CREDENTIAL"
	KindInvalidCredential   Kind = "INVALID_CREDENTIAL"
	KindInsufficientRole    Kind = "INSUFFICIENT_ROLE"
	KindNotFound            Kind = "NOT_FOUND"
	KindConflict            Kind = "CONFLICT"
	KindStoreUnavailable    Kind = "STORE_UNAVAILABLE"
)

// Error is the concrete error type used across the service. Msg is a short
// diagnostic safe to return to clients; Err, if set, is the wrapped cause and
// stays server-side.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidArgument reports malformed or out-of-range client input.
func InvalidArgument(msg string) error {
	return &Error{Kind: KindInvalidArgument, Msg: msg}
}

// Unauthenticated reports a request with no credential at all.
func Unauthenticated(msg string) error {
	return &Error{Kind: KindUnauthenticated, Msg: msg}
}

// MalformedCredential reports a credential header that cannot be parsed.
func MalformedCredential(msg string) error {
	return &Error{Kind: KindMalformedCredential, Msg: msg}
}

// InvalidCredential reports a token that fails verification.
func InvalidCredential(msg string, err error) error {
	return &Error{Kind: KindInvalidCredential, Msg: msg, Err: err}
}

// InsufficientRole reports a verified principal lacking the required role.
func InsufficientRole(msg string) error {
	return &Error{Kind: KindInsufficientRole, Msg: msg}
}

// NotFound reports a missing product.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Conflict reports a duplicate product name.
func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// StoreUnavailable wraps a persistence-layer failure.
func StoreUnavailable(msg string, err error) error {
	return &Error{Kind: KindStoreUnavailable, Msg: msg, Err: err}
}

// KindOf returns the Kind of an error, or KindStoreUnavailable for errors
// that did not originate in this taxonomy.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStoreUnavailable
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the client-safe message of an error. Wrapped causes are
// deliberately excluded so driver internals never leak into responses.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Msg
	}
	return "Server error"
}

// StatusOf maps an error to the HTTP status handlers should return.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindUnauthenticated, KindMalformedCredential, KindInvalidCredential:
		return http.StatusUnauthorized
	case KindInsufficientRole:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
