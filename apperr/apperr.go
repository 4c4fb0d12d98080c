// Package apperr defines the error kinds visible at the streaming core's
// boundary, using sentinel errors joined with errors.Join so a caller can
// match a specific cause with errors.Is while still printing every
// contributing error.
package apperr

import (
	"errors"
	"strconv"
)

var (
	// ErrNotFound covers a missing task, message, preset, or original text.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers a task already in progress, or a wrong-state HITL resume.
	ErrConflict = errors.New("conflict")

	// ErrValidation covers malformed input or an unsupported assistant id.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable covers an agent runtime or attachment fetch that could not be reached.
	ErrUnavailable = errors.New("upstream unavailable")

	// ErrTimeout covers an agent runtime or attachment fetch that timed out.
	ErrTimeout = errors.New("upstream timeout")

	// ErrUpstreamHTTP covers a non-2xx response from the agent runtime.
	ErrUpstreamHTTP = errors.New("upstream http error")

	// ErrStorage covers a database read/write failure.
	ErrStorage = errors.New("storage failure")

	// ErrTransport covers a Redis failure.
	ErrTransport = errors.New("transport failure")

	// ErrInternal is the catch-all; it never exposes stack traces externally.
	ErrInternal = errors.New("internal error")
)

// UpstreamHTTPError carries the status code and body of a non-2xx agent response.
type UpstreamHTTPError struct {
	Status int
	Body   string
}

func (e *UpstreamHTTPError) Error() string {
	return "upstream http error: status " + strconv.Itoa(e.Status)
}

func (e *UpstreamHTTPError) Unwrap() error {
	return ErrUpstreamHTTP
}

// NewUpstreamHTTPError wraps a non-2xx agent response as an ErrUpstreamHTTP.
func NewUpstreamHTTPError(status int, body string) error {
	return errors.Join(ErrUpstreamHTTP, &UpstreamHTTPError{Status: status, Body: body})
}

// Opaque renders the short, opaque message persisted for systemic failures,
// per the propagation policy: "System error (<Kind>). Check the server logs for details."
func Opaque(kind string) string {
	return "System error (" + kind + "). Check the server logs for details."
}
