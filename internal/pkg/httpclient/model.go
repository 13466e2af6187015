// Package httpclient provides a generic HTTP request/response shape shared by
// every provider adapter, plus a client with bounded transport retries.
package httpclient

import (
	"net/http"
	"net/url"
)

// Request is a provider-agnostic HTTP request built by an adapter.
type Request struct {
	Method  string      `json:"method"`
	URL     string      `json:"url"`
	Query   url.Values  `json:"query,omitempty"`
	Headers http.Header `json:"headers,omitempty"`
	Body    []byte      `json:"body,omitempty"`

	// Auth is applied as a header at send time so request bodies can be logged
	// without key material.
	Auth *AuthConfig `json:"auth,omitempty"`
}

// AuthConfig represents authentication configuration.
type AuthConfig struct {
	// Type is "bearer" or "api_key".
	Type string `json:"type"`

	// APIKey is the credential value.
	APIKey string `json:"api_key,omitempty"`

	// HeaderKey names the header when Type is "api_key".
	HeaderKey string `json:"header_key,omitempty"`
}

const (
	AuthTypeBearer = "bearer"
	AuthTypeAPIKey = "api_key"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int         `json:"status_code"`
	Headers    http.Header `json:"headers,omitempty"`
	Body       []byte      `json:"body,omitempty"`

	// Request points back at what produced this response.
	Request *Request `json:"-"`
}
