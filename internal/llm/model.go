// Package llm defines the unified request and response model shared by every
// provider adapter. The shape follows the OpenAI chat completion schema; other
// providers translate to and from it.
package llm

// Request is the provider-agnostic generation request assembled by the tool
// kernel. Adapters translate it into their native wire format.
type Request struct {
	// Model is the canonical model name on the wire.
	Model string `json:"model"`

	// Messages is the ordered conversation to send, oldest first.
	Messages []Message `json:"messages"`

	// SystemPrompt is carried separately because some providers take it out of
	// band (Gemini systemInstruction) and some models reject it entirely.
	SystemPrompt string `json:"system_prompt,omitempty"`

	// Temperature is nil when the model's policy forbids it on the wire.
	Temperature *float64 `json:"temperature,omitempty"`

	// MaxOutputTokens caps the completion; derived from the token allocation.
	MaxOutputTokens int `json:"max_output_tokens,omitempty"`

	// ThinkingMode is one of minimal, low, medium, high, max. Empty disables
	// extended thinking. Ignored by adapters whose model cannot think.
	ThinkingMode string `json:"thinking_mode,omitempty"`

	// UseWebSearch asks providers that support grounding to enable it.
	UseWebSearch bool `json:"use_web_search,omitempty"`
}

// Message is one conversation entry.
type Message struct {
	// Role is "user" or "assistant".
	Role string `json:"role"`

	// Content is the text body.
	Content string `json:"content"`

	// Images carries attachments for vision models.
	Images []Image `json:"images,omitempty"`
}

// Image is a decoded attachment ready for the wire.
type Image struct {
	// MIMEType like "image/png".
	MIMEType string `json:"mime_type"`

	// Data is the base64-encoded payload without the data: prefix.
	Data string `json:"data"`
}

// Response is the unified generation result.
type Response struct {
	// Content is the assistant text.
	Content string `json:"content"`

	// Model is the model that actually served the request, as reported by the
	// provider (may differ from the requested name on aggregators).
	Model string `json:"model"`

	// FinishReason is the provider's stop reason, normalized to lowercase.
	FinishReason string `json:"finish_reason,omitempty"`

	Usage Usage `json:"usage"`

	// ProviderMetadata carries provider-specific extras for diagnostics.
	ProviderMetadata map[string]any `json:"provider_metadata,omitempty"`
}

// Usage is the token accounting reported by the provider.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)
