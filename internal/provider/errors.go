package provider

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies every failure the broker can surface to the client. The
// resolution-time kinds never reach a provider; the provider-layer kinds wrap
// upstream HTTP failures.
type Kind string

const (
	KindInvalidRequest    Kind = "invalid_request"
	KindThreadNotFound    Kind = "thread_not_found"
	KindModelNotFound     Kind = "model_not_found"
	KindVisionUnsupported Kind = "vision_unsupported"
	KindImagesTooLarge    Kind = "images_too_large"
	KindContextOverflow   Kind = "context_overflow"
	KindAutoUnresolved    Kind = "auto_unresolved"
	KindNoVisionModel     Kind = "no_vision_model_available"

	KindAuthError        Kind = "auth_error"
	KindRateLimited      Kind = "rate_limited"
	KindTransportError   Kind = "transport_error"
	KindProviderInternal Kind = "provider_internal"

	KindInternal Kind = "internal_error"
)

// Error is the structured failure carried through the tool kernel. Message is
// human-readable and safe to show: it never contains keys or upstream bodies.
type Error struct {
	Kind       Kind
	Provider   string
	Message    string
	RetryAfter string
}

func (e *Error) Error() string {
	sb := strings.Builder{}
	if e.Provider != "" {
		sb.WriteString(e.Provider)
		sb.WriteString(": ")
	}

	sb.WriteString(string(e.Kind))

	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}

	if e.RetryAfter != "" {
		sb.WriteString(" (retry after ")
		sb.WriteString(e.RetryAfter)
		sb.WriteString(")")
	}

	return sb.String()
}

// NewError builds a kinded error with a formatted message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithProvider tags the error with the provider's friendly name.
func (e *Error) WithProvider(name string) *Error {
	e.Provider = name
	return e
}

// KindOf extracts the kind, defaulting to KindInternal for untyped errors.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}

	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
