package provider

import "errors"

// Kind classifies a provider failure. The set is closed: every failure
// leaving this package carries exactly one of these kinds, and callers map
// kinds to transport status codes without inspecting message text.
type Kind string

const (
	KindConfiguration  Kind = "configuration"
	KindValidation     Kind = "validation"
	KindAuthentication Kind = "authentication"
	KindRateLimit      Kind = "rate_limit"
	KindUnknown        Kind = "unknown"
)

// ErrNotConfigured is the sentinel for a missing credential. It is wrapped
// into configuration errors so callers can detect the condition with
// errors.Is regardless of message text.
var ErrNotConfigured = errors.New("provider is not configured")

// Error is a typed provider failure.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying failure for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates a typed error without an underlying cause.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError creates a typed error around an underlying cause.
func WrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}
