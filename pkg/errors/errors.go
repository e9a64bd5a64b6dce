package errors

import (
	"errors"
	"fmt"
)

// ValidationCode identifies a locally detected rule violation.
type ValidationCode string

const (
	CodeMixedStatus          ValidationCode = "MIXED_STATUS"
	CodeRollbackForbidden    ValidationCode = "ROLLBACK_FORBIDDEN"
	CodeDuplicateTracking    ValidationCode = "DUPLICATE_TRACKING_CODE"
	CodeMissingRequiredField ValidationCode = "MISSING_REQUIRED_FIELD"
	CodeTransitionNotAllowed ValidationCode = "TRANSITION_NOT_ALLOWED"
)

// ErrValidation is returned when a batch or order fails local rule checks.
// It is always raised before any network call is attempted.
type ErrValidation struct {
	Code    ValidationCode
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return string(e.Code)
}

// ErrPermission is returned when the backend rejects a field the acting role
// should never have been able to send. Payload projection is supposed to make
// this unreachable, so seeing one means a projection defect.
type ErrPermission struct {
	Role  string
	Field string
}

func (e *ErrPermission) Error() string {
	return fmt.Sprintf("role %s is not permitted to write field %s", e.Role, e.Field)
}

// ErrTransport wraps network failures and malformed responses. Safe to retry.
type ErrTransport struct {
	Err error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *ErrTransport) Unwrap() error { return e.Err }

// ErrBackend is returned when the backend answers with an explicit failure
// envelope or a non-2xx status.
type ErrBackend struct {
	StatusCode int
	Message    string
}

func (e *ErrBackend) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fallbackMessage(e.StatusCode)
}

// fallbackMessage maps well-known status codes to a generic operator-facing
// message when the backend did not supply one.
func fallbackMessage(status int) string {
	switch status {
	case 400:
		return "the request was rejected by the order backend"
	case 402:
		return "payment is required before this operation"
	case 403:
		return "you do not have permission to perform this operation"
	case 404:
		return "the order no longer exists on the backend"
	case 409:
		return "the order was modified by someone else"
	default:
		return fmt.Sprintf("order backend returned status %d", status)
	}
}

// IsValidation reports whether err is a local validation failure, optionally
// narrowed to a specific code (pass "" to match any).
func IsValidation(err error, code ValidationCode) bool {
	var ve *ErrValidation
	if !errors.As(err, &ve) {
		return false
	}
	return code == "" || ve.Code == code
}

// IsTransport reports whether err is retryable at the transport level.
func IsTransport(err error) bool {
	var te *ErrTransport
	return errors.As(err, &te)
}

// IsBackend reports whether the backend explicitly rejected the call.
func IsBackend(err error) bool {
	var be *ErrBackend
	return errors.As(err, &be)
}

// Kind is the machine-distinguishable classification reported to the UI.
type Kind string

const (
	KindValidation Kind = "validation"
	KindPermission Kind = "permission"
	KindTransport  Kind = "transport"
	KindBackend    Kind = "backend"
	KindUnknown    Kind = "unknown"
)

// Classify returns the taxonomy kind plus a single human-readable message for
// err. The UI never branches on anything finer than the kind.
func Classify(err error) (Kind, string) {
	var ve *ErrValidation
	if errors.As(err, &ve) {
		return KindValidation, ve.Error()
	}
	var pe *ErrPermission
	if errors.As(err, &pe) {
		return KindPermission, pe.Error()
	}
	var te *ErrTransport
	if errors.As(err, &te) {
		return KindTransport, te.Error()
	}
	var be *ErrBackend
	if errors.As(err, &be) {
		return KindBackend, be.Error()
	}
	return KindUnknown, err.Error()
}
