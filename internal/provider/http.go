package provider

import (
	"errors"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/pkg/httpclient"
)

// WrapHTTPError converts an outbound HTTP failure into a kinded error. The
// upstream body is mined for a short message only; it is never attached
// verbatim.
func WrapHTTPError(friendlyName string, err error) *Error {
	var httpErr *httpclient.Error
	if !errors.As(err, &httpErr) {
		return &Error{Kind: KindTransportError, Provider: friendlyName, Message: err.Error()}
	}

	message := gjson.GetBytes(httpErr.Body, "error.message").String()
	if message == "" {
		message = http.StatusText(httpErr.StatusCode)
	}

	return &Error{
		Kind:       kindForStatus(httpErr.StatusCode),
		Provider:   friendlyName,
		Message:    message,
		RetryAfter: httpErr.RetryAfter,
	}
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuthError
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status == http.StatusNotFound:
		return KindModelNotFound
	case status >= 500:
		return KindProviderInternal
	default:
		return KindInvalidRequest
	}
}

// CallTimeout returns the per-request deadline for a model. Reasoning models
// routinely run for minutes.
func CallTimeout(caps *catalog.ModelCapabilities) time.Duration {
	switch caps.Category {
	case catalog.CategoryReasoning, catalog.CategoryExtendedReasoning:
		return 600 * time.Second
	default:
		return 120 * time.Second
	}
}

// GenerateAttempts bounds transport-level retries inside one Generate call.
const GenerateAttempts = 3
