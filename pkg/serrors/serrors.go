// Package serrors provides semantic errors for the registrar. A semantic error
// carries a Kind (what went wrong, e.g. NOT_FOUND), an optional cause and an
// optional message that is safe to show to users. Handlers translate kinds into
// HTTP statuses; field level validation problems travel as FieldErrors.
package serrors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind is implemented by all semantic error kinds created with NewKind.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind. Kinds are comparable sentinels and
// can be matched with errors.Is through the Error wrapper.
func NewKind(name string) Kind { return kind{s: name} }

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrUnauthorized indicates missing or invalid authentication.
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	// ErrForbidden indicates the caller may not perform the operation.
	ErrForbidden = NewKind("FORBIDDEN")
	// ErrBadRequest indicates the client sent invalid data.
	ErrBadRequest = NewKind("BAD_REQUEST")
	// ErrConflict indicates a state conflict, e.g. an invalid status transition
	// or a domain that already exists.
	ErrConflict = NewKind("CONFLICT")
	// ErrInternal indicates an internal server error.
	ErrInternal = NewKind("INTERNAL")
	// ErrTimeout indicates the operation timed out.
	ErrTimeout = NewKind("TIMEOUT")
	// ErrUnavailable indicates the service is temporarily unavailable.
	ErrUnavailable = NewKind("UNAVAILABLE")
	// ErrRateLimited indicates too many requests.
	ErrRateLimited = NewKind("RATE_LIMITED")
)

var statusCodes = map[Kind]int{ //nolint: gochecknoglobals
	ErrNotFound:     http.StatusNotFound,
	ErrUnauthorized: http.StatusUnauthorized,
	ErrForbidden:    http.StatusForbidden,
	ErrBadRequest:   http.StatusBadRequest,
	ErrConflict:     http.StatusConflict,
	ErrInternal:     http.StatusInternalServerError,
	ErrTimeout:      http.StatusGatewayTimeout,
	ErrUnavailable:  http.StatusServiceUnavailable,
	ErrRateLimited:  http.StatusTooManyRequests,
}

// FieldErrors maps a form field name to the messages describing why its value
// was rejected. The empty key holds errors that concern the form as a whole.
type FieldErrors map[string][]string

// Add appends a message for the field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Empty reports whether no messages were recorded.
func (f FieldErrors) Empty() bool { return len(f) == 0 }

// Merge copies all messages of other into f.
func (f FieldErrors) Merge(other FieldErrors) {
	for k, msgs := range other {
		f[k] = append(f[k], msgs...)
	}
}

// String renders the messages deterministically, sorted by field.
func (f FieldErrors) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(f[k], "; "))
	}

	return strings.Join(parts, ", ")
}

// Error is a semantic error carrying a kind, an optional wrapped cause, an
// optional message and optional field errors.
//
// errors.Is matches either the kind or anything in the cause chain, and
// errors.As does the same for type targets.
//
// Error() renders "<msg>: <cause>", "<msg>", "<cause>" or the kind name,
// depending on which parts are set.
type Error struct {
	kind   Kind
	err    error
	msg    string
	fields FieldErrors
}

// With constructs a semantic error with a formatted message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a semantic error wrapping a cause.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly creates a semantic error carrying only the kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Invalid creates a BAD_REQUEST error carrying field errors.
func Invalid(fields FieldErrors, msgFmt string, args ...any) *Error {
	return &Error{kind: ErrBadRequest, msg: fmt.Sprintf(msgFmt, args...), fields: fields}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	case e.kind != nil:
		return e.kind.Error()
	default:
		return "unknown error"
	}
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// Is matches against the kind or the wrapped cause.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}

	return e.err != nil && errors.Is(e.err, target)
}

// As extracts the kind or a type from the cause chain.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}

	return e.err != nil && errors.As(e.err, target)
}

// Kind returns the kind of the error, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message attached to the error.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause, which may be nil.
func (e *Error) Cause() error { return e.err }

// Fields returns the field errors, which may be nil.
func (e *Error) Fields() FieldErrors { return e.fields }

// FieldsOf returns the field errors of the first semantic error in the chain.
func FieldsOf(err error) FieldErrors {
	var se *Error
	if errors.As(err, &se) {
		return se.fields
	}

	return nil
}

// KindOf returns the kind of the first semantic error in the chain, or
// ErrInternal when err carries no kind.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) && se.kind != nil {
		return se.kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}

	return ErrInternal
}

// StatusCode maps err onto an HTTP status code.
func StatusCode(err error) int {
	if code, ok := statusCodes[KindOf(err)]; ok {
		return code
	}

	return http.StatusInternalServerError
}
