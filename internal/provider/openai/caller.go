package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/llm"
	"github.com/neuromux/neuromux/internal/log"
	"github.com/neuromux/neuromux/internal/provider"
	"github.com/neuromux/neuromux/internal/pkg/httpclient"
)

// Caller speaks the chat completions wire protocol against any compatible
// base URL. The native provider, the aggregator, and custom endpoints all
// reuse it.
type Caller struct {
	client       *httpclient.HttpClient
	friendlyName string
	baseURL      string
	apiKey       string
	extraHeaders http.Header
}

type CallerOption func(*Caller)

// WithHTTPClient substitutes the transport, used by tests.
func WithHTTPClient(client *httpclient.HttpClient) CallerOption {
	return func(c *Caller) { c.client = client }
}

// WithHeader adds a static header to every request.
func WithHeader(key, value string) CallerOption {
	return func(c *Caller) {
		if c.extraHeaders == nil {
			c.extraHeaders = make(http.Header)
		}

		c.extraHeaders.Set(key, value)
	}
}

func NewCaller(friendlyName, baseURL, apiKey string, opts ...CallerOption) *Caller {
	c := &Caller{
		client:       httpclient.NewHttpClient(),
		friendlyName: friendlyName,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		apiKey:       apiKey,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Complete performs one blocking chat completion.
func (c *Caller) Complete(ctx context.Context, req *llm.Request, caps *catalog.ModelCapabilities) (*llm.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, provider.CallTimeout(caps))
	defer cancel()

	wireReq, err := c.buildRequest(req, caps)
	if err != nil {
		return nil, err
	}

	// The chat completions protocol has no portable grounding switch.
	if req.UseWebSearch {
		log.Debug(ctx, "web search not supported on this wire, flag ignored",
			log.String("provider", c.friendlyName))
	}

	body, err := json.Marshal(wireReq)
	if err != nil {
		return nil, provider.NewError(provider.KindInternal, "encode request: %v", err).WithProvider(c.friendlyName)
	}

	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")

	for key, values := range c.extraHeaders {
		for _, v := range values {
			headers.Add(key, v)
		}
	}

	httpResp, err := c.client.DoWithRetry(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.baseURL + "/chat/completions",
		Headers: headers,
		Body:    body,
		Auth:    &httpclient.AuthConfig{Type: httpclient.AuthTypeBearer, APIKey: c.apiKey},
	}, provider.GenerateAttempts)
	if err != nil {
		return nil, provider.WrapHTTPError(c.friendlyName, err)
	}

	var wireResp chatResponse
	if err := json.Unmarshal(httpResp.Body, &wireResp); err != nil {
		return nil, provider.NewError(provider.KindProviderInternal, "malformed response: %v", err).WithProvider(c.friendlyName)
	}

	if len(wireResp.Choices) == 0 {
		return nil, provider.NewError(provider.KindProviderInternal, "response contains no choices").WithProvider(c.friendlyName)
	}

	first := wireResp.Choices[0]

	if log.DebugEnabled(ctx) {
		log.Debug(ctx, "chat completion finished",
			log.String("provider", c.friendlyName),
			log.String("model", wireResp.Model),
			log.String("finish_reason", first.FinishReason),
			log.Int("output_tokens", wireResp.Usage.CompletionTokens))
	}

	return &llm.Response{
		Content:      first.Message.Content,
		Model:        firstNonEmpty(wireResp.Model, req.Model),
		FinishReason: strings.ToLower(first.FinishReason),
		Usage: llm.Usage{
			InputTokens:  wireResp.Usage.PromptTokens,
			OutputTokens: wireResp.Usage.CompletionTokens,
			TotalTokens:  wireResp.Usage.TotalTokens,
		},
		ProviderMetadata: map[string]any{"id": wireResp.ID},
	}, nil
}

func (c *Caller) buildRequest(req *llm.Request, caps *catalog.ModelCapabilities) (*chatRequest, error) {
	wire := &chatRequest{
		Model:               req.Model,
		MaxCompletionTokens: req.MaxOutputTokens,
	}

	// Fixed-policy models reject the parameter outright, so it stays off the
	// wire entirely for them.
	if req.Temperature != nil && caps.SupportsTemperature && caps.Temperature.OnWire() {
		wire.Temperature = req.Temperature
	}

	if req.SystemPrompt != "" {
		role := llm.RoleSystem
		if !caps.SupportsSystemPrompt {
			role = llm.RoleUser
		}

		wire.Messages = append(wire.Messages, chatMessage{Role: role, Content: req.SystemPrompt})
	}

	for _, msg := range req.Messages {
		if len(msg.Images) == 0 {
			wire.Messages = append(wire.Messages, chatMessage{Role: msg.Role, Content: msg.Content})
			continue
		}

		if !caps.SupportsImages {
			return nil, provider.NewError(provider.KindVisionUnsupported,
				"model %s does not accept image input", caps.CanonicalName).WithProvider(c.friendlyName)
		}

		parts := []contentPart{{Type: "text", Text: msg.Content}}
		for _, img := range msg.Images {
			parts = append(parts, contentPart{
				Type:     "image_url",
				ImageURL: &imageURL{URL: fmt.Sprintf("data:%s;base64,%s", img.MIMEType, img.Data)},
			})
		}

		wire.Messages = append(wire.Messages, chatMessage{Role: msg.Role, Content: parts})
	}

	if len(wire.Messages) == 0 {
		return nil, provider.NewError(provider.KindInvalidRequest, "messages are required").WithProvider(c.friendlyName)
	}

	return wire, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
