// Package apperr defines the error taxonomy for the analyze pipeline and its
// mapping to HTTP status codes. Pipeline stages return these so the HTTP
// layer can answer with the right status without inspecting error strings.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a pipeline failure.
type Kind int

// Failure kinds, in order of whose fault they are.
const (
	// KindValidation covers bad or missing caller input.
	KindValidation Kind = iota

	// KindNotFound covers inputs that validated but led nowhere: no address
	// embedded in a scraped page, no trading pairs for a token.
	KindNotFound

	// KindUpstream covers non-success or malformed responses from the page
	// fetch or the market-data API.
	KindUpstream

	// KindInternal covers everything unexpected.
	KindInternal
)

// Error carries a kind and a short, user-visible message. The wrapped cause
// stays server-side and is only ever logged.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a caller-input error.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds a nothing-discoverable error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Upstream builds an upstream-failure error wrapping its cause.
func Upstream(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindUpstream, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Internal builds an unexpected-failure error wrapping its cause.
func Internal(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindInternal, Msg: fmt.Sprintf(format, args...), Err: err}
}

// HTTPStatus maps an error to the response status code. Anything that is not
// an *Error is treated as internal.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the short user-visible error string. Wrapped causes and
// anything outside the taxonomy stay hidden from callers.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Msg
	}
	return "internal error"
}
