// Package apierror provides standardized error response structures for the API
// and the error taxonomy the services report with. All errors returned to
// clients go through this package to ensure consistency and to prevent leaking
// internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// ── Service error taxonomy ────────────────────────────────────────────────────

// Kind classifies a service failure.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a classified service error. Msg is safe to show to clients; Err
// (when set) is the underlying cause and is only logged.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindInternal {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validacion reports a malformed or missing input. No mutation was performed.
func Validacion(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }

// ValidacionDe wraps a rule error (e.g. from package calculo) as a validation failure.
func ValidacionDe(err error) *Error {
	return &Error{Kind: KindValidation, Msg: err.Error(), Err: err}
}

// NoEncontrado reports a missing entity. Entities of another tenant are reported
// the same way so existence never leaks across tenants.
func NoEncontrado(msg string) *Error { return &Error{Kind: KindNotFound, Msg: msg} }

// Conflicto reports a uniqueness violation.
func Conflicto(msg string) *Error { return &Error{Kind: KindConflict, Msg: msg} }

// Interno wraps a storage or transaction failure.
func Interno(err error) *Error {
	return &Error{Kind: KindInternal, Msg: "error interno", Err: err}
}

// KindOf returns the kind of err; unclassified errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is classified as k.
func Is(err error, k Kind) bool { return err != nil && KindOf(err) == k }

// Status maps err to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Envelope returns the client-facing body for err; internal causes are replaced
// by a generic message.
func Envelope(err error) *APIError {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return New(e.Msg)
	}
	return New("Error interno del servidor")
}
