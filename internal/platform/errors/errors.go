package errors

import (
	stderrors "errors"
	"net/http"
)

// Domain is the error domain for admin panel errors.
const Domain = "github.com/louisbranch/adminpanel"

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs/telemetry)
	Status   int               // Upstream HTTP status for rejected calls, zero otherwise
	Metadata map[string]string // Additional context for templating
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Kind reports the failure class of this error.
func (e *Error) Kind() Kind {
	return e.Code.Kind()
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates a domain error with metadata for i18n templating.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Rejected creates an error for an upstream response outside the 2xx range.
func Rejected(message string, status int) *Error {
	code := CodeUpstreamRejected
	if status == http.StatusNotFound {
		code = CodeUpstreamNotFound
	}
	return &Error{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// As returns the first domain error in err's chain.
func As(err error) (*Error, bool) {
	var target *Error
	if stderrors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// KindOf classifies any error. Unknown errors are treated as transport
// failures because they originate below the domain layer.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	if e, ok := As(err); ok {
		return e.Kind()
	}
	return KindTransport
}

// CodeOf returns the domain code carried by err, or CodeUnknown.
func CodeOf(err error) Code {
	if e, ok := As(err); ok {
		return e.Code
	}
	return CodeUnknown
}

// StatusOf returns the upstream HTTP status recorded on err, or zero.
func StatusOf(err error) int {
	if e, ok := As(err); ok {
		return e.Status
	}
	return 0
}
