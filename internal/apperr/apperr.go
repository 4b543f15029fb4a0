// Package apperr defines the structured failures raised by services and
// handlers. The error middleware is the only place that turns them into
// response bodies.
package apperr

import (
	"fmt"
	"net/http"
	"strings"
)

type Kind int

const (
	// Validation is a caller input defect; Rules lists every violated rule.
	Validation Kind = iota + 1
	// NotFound means a referenced entity is absent.
	NotFound
	// Auth means a missing or invalid credential on a protected route.
	Auth
	// Conflict is a uniqueness violation (duplicate key).
	Conflict
	// BadID is an identifier that does not parse as a valid reference.
	BadID
	// TokenInvalid and TokenExpired cover signed-URL style token failures
	// surfaced outside the auth middleware.
	TokenInvalid
	TokenExpired
	// Internal is everything else; rendered as a plain 500.
	Internal
)

type Error struct {
	Kind    Kind
	Message string
	// Field names the offending input for BadID and Conflict errors.
	Field string
	// Rules carries the full list of violated validation rules.
	Rules []string
	Err   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Rules) > 0 {
		return strings.Join(e.Rules, "; ")
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case NotFound, BadID, TokenInvalid, TokenExpired:
		return http.StatusNotFound
	case Auth:
		return http.StatusUnauthorized
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validationf(rules ...string) *Error {
	return &Error{Kind: Validation, Rules: rules}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

func Authf(format string, args ...any) *Error {
	return &Error{Kind: Auth, Message: fmt.Sprintf(format, args...)}
}

// Duplicate reports a uniqueness violation on the named field.
func Duplicate(field string) *Error {
	return &Error{
		Kind:    Conflict,
		Field:   field,
		Message: fmt.Sprintf("Duplicate key %s entered", field),
	}
}

// InvalidID reports an identifier that does not have a valid reference shape.
func InvalidID(field string) *Error {
	return &Error{
		Kind:    BadID,
		Field:   field,
		Message: fmt.Sprintf("Resources not found with this id.. Invalid %s", field),
	}
}

func InvalidToken() *Error {
	return &Error{Kind: TokenInvalid, Message: "Your URL is invalid please try again later"}
}

func ExpiredToken() *Error {
	return &Error{Kind: TokenExpired, Message: "Your URL is expired please try again later"}
}

func Internalf(err error, format string, args ...any) *Error {
	return &Error{Kind: Internal, Message: fmt.Sprintf(format, args...), Err: err}
}
