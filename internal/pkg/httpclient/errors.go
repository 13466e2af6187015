package httpclient

import (
	"fmt"
	"net/http"
)

// Error is an HTTP-level failure (status >= 400) with the raw body preserved
// so adapters can decode provider-specific error payloads.
type Error struct {
	Method     string `json:"method"`
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
	Body       []byte `json:"body"`

	// RetryAfter is the Retry-After header value when the upstream sent one.
	RetryAfter string `json:"retry_after,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s - %s with status %s", e.Method, e.URL, e.Status)
}

// IsHTTPStatusCodeRetryable reports whether a status code may be retried.
// 429 and 5xx are retryable; other 4xx are not.
func IsHTTPStatusCodeRetryable(statusCode int) bool {
	if statusCode == http.StatusTooManyRequests {
		return true
	}

	if statusCode >= 400 && statusCode < 500 {
		return false
	}

	return statusCode >= 500
}
