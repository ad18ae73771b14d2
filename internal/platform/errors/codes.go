// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Transport errors
	CodeUpstreamUnavailable Code = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamTimeout     Code = "UPSTREAM_TIMEOUT"
	CodeUpstreamMalformed   Code = "UPSTREAM_MALFORMED"

	// Validation errors
	CodeUserNameEmpty  Code = "USER_NAME_EMPTY"
	CodeUserEmailEmpty Code = "USER_EMAIL_EMPTY"
	CodeUserIDEmpty    Code = "USER_ID_EMPTY"
	CodeEditNotOpen    Code = "EDIT_DIALOG_NOT_OPEN"

	// Server-rejected errors
	CodeUpstreamRejected Code = "UPSTREAM_REJECTED"
	CodeUpstreamNotFound Code = "UPSTREAM_NOT_FOUND"

	// Location replay errors
	CodeLocationSampleInvalid Code = "LOCATION_SAMPLE_INVALID"
)

// Kind groups codes into the failure classes surfaced to operators.
type Kind string

const (
	KindNone       Kind = ""
	KindTransport  Kind = "transport"
	KindValidation Kind = "validation"
	KindRejected   Kind = "rejected"
)

// Kind maps domain codes to their failure class.
func (c Code) Kind() Kind {
	switch c {
	case CodeUserNameEmpty,
		CodeUserEmailEmpty,
		CodeUserIDEmpty,
		CodeEditNotOpen,
		CodeLocationSampleInvalid:
		return KindValidation

	case CodeUpstreamRejected,
		CodeUpstreamNotFound:
		return KindRejected

	default:
		return KindTransport
	}
}

// HTTPStatus maps domain codes to the status used when answering the browser.
func (c Code) HTTPStatus() int {
	switch c.Kind() {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindRejected:
		if c == CodeUpstreamNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	default:
		if c == CodeUpstreamTimeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	}
}

// MessageKey returns the localization key for the code.
func (c Code) MessageKey() string {
	switch c {
	case CodeUpstreamUnavailable:
		return "error.upstream_unavailable"
	case CodeUpstreamTimeout:
		return "error.upstream_timeout"
	case CodeUpstreamMalformed:
		return "error.upstream_malformed"
	case CodeUserNameEmpty:
		return "error.user_name_required"
	case CodeUserEmailEmpty:
		return "error.user_email_required"
	case CodeUserIDEmpty:
		return "error.user_id_required"
	case CodeEditNotOpen:
		return "error.edit_not_open"
	case CodeUpstreamRejected:
		return "error.upstream_rejected"
	case CodeUpstreamNotFound:
		return "error.user_not_found"
	case CodeLocationSampleInvalid:
		return "error.location_sample_invalid"
	default:
		return "error.unknown"
	}
}
