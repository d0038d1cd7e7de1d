// Package apperr defines the closed set of failure kinds a request can end in and
// how each kind is presented to callers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies one failure class.
type Kind int

const (
	KindUnauthorized Kind = iota + 1
	KindForbidden
	KindNotFound
	KindBadRequest
	KindInternal
	KindExternalAPI
	KindDatabase
	KindConfig
)

// String returns the kind name used in logs and metric labels.
func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindInternal:
		return "internal"
	case KindExternalAPI:
		return "external_api"
	case KindDatabase:
		return "database"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	case KindExternalAPI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Detail is internal unless Kind is KindBadRequest.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnauthorized:
		return "Authentication required"
	case KindForbidden:
		return "Permission denied"
	case KindNotFound:
		return "Resource not found"
	case KindBadRequest:
		return "Invalid request: " + e.Detail
	case KindInternal:
		return "Internal server error: " + e.Detail
	case KindExternalAPI:
		return "External API error: " + e.Detail
	case KindDatabase:
		return "Database error: " + e.Detail
	case KindConfig:
		return "Configuration error: " + e.Detail
	default:
		return e.Detail
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so errors.Is(err, apperr.ExternalAPI(""))
// checks the class without comparing details.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Status returns the HTTP status code for the error.
func (e *Error) Status() int {
	return e.Kind.Status()
}

// PublicMessage returns the message that is safe to show to the caller.
func (e *Error) PublicMessage() string {
	switch e.Kind {
	case KindBadRequest:
		return e.Detail
	case KindInternal:
		return "Internal server error"
	case KindExternalAPI:
		return "External service error"
	case KindDatabase:
		return "Database error"
	case KindConfig:
		return "Server configuration error"
	default:
		return e.Error()
	}
}

// Sensitive reports whether Detail must stay out of responses and only be logged.
func (e *Error) Sensitive() bool {
	switch e.Kind {
	case KindInternal, KindExternalAPI, KindDatabase, KindConfig:
		return true
	default:
		return false
	}
}

func Unauthorized() *Error { return &Error{Kind: KindUnauthorized} }

func Forbidden() *Error { return &Error{Kind: KindForbidden} }

func NotFound() *Error { return &Error{Kind: KindNotFound} }

func BadRequest(detail string) *Error { return &Error{Kind: KindBadRequest, Detail: detail} }

func Internal(detail string) *Error { return &Error{Kind: KindInternal, Detail: detail} }

func ExternalAPI(detail string) *Error { return &Error{Kind: KindExternalAPI, Detail: detail} }

func Database(detail string) *Error { return &Error{Kind: KindDatabase, Detail: detail} }

func Config(detail string) *Error { return &Error{Kind: KindConfig, Detail: detail} }

// Wrap classifies err under kind, prefixing its text with a formatted context.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	detail := fmt.Sprintf(format, args...)
	if err != nil {
		detail = detail + ": " + err.Error()
	}
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// From returns err as an *Error. Unclassified errors become KindInternal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Kind: KindInternal, Detail: err.Error(), Err: err}
}

// KindOf returns the kind of err, or zero when err is nil.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	return From(err).Kind
}
