// Package gemini adapts the Google generative language API. It is the only
// native adapter with extended thinking support; the requested mode maps to a
// token budget in the generation config.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/llm"
	"github.com/neuromux/neuromux/internal/log"
	"github.com/neuromux/neuromux/internal/provider"
	"github.com/neuromux/neuromux/internal/pkg/httpclient"
	"github.com/neuromux/neuromux/internal/restriction"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// maxThinkingTokens is the ceiling of the thinking budget scale; the
	// thinking mode picks a fraction of it.
	maxThinkingTokens = 32_768
)

// thinkingFractions maps a thinking mode to its share of maxThinkingTokens.
var thinkingFractions = map[string]float64{
	"minimal": 0.005,
	"low":     0.08,
	"medium":  0.33,
	"high":    0.67,
	"max":     1.0,
}

// ThinkingBudget converts a mode into a token budget, 0 for unknown or empty.
func ThinkingBudget(mode string) int {
	fraction, ok := thinkingFractions[strings.ToLower(mode)]
	if !ok {
		return 0
	}

	return int(fraction * maxThinkingTokens)
}

type Config struct {
	APIKey  string `conf:"api_key" yaml:"api_key" json:"api_key"`
	BaseURL string `conf:"base_url" yaml:"base_url" json:"base_url"`
}

type Provider struct {
	provider.Base

	client  *httpclient.HttpClient
	baseURL string
	apiKey  string
}

type Option func(*Provider)

// WithHTTPClient substitutes the transport, used by tests.
func WithHTTPClient(client *httpclient.HttpClient) Option {
	return func(p *Provider) { p.client = client }
}

func New(cfg Config, restrictions *restriction.Service, opts ...Option) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	p := &Provider{
		Base:    provider.NewBase(catalog.ProviderGoogle, "Google", provider.PriorityGoogle, catalog.Models(catalog.ProviderGoogle), restrictions),
		client:  httpclient.NewHttpClient(),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  cfg.APIKey,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

func (p *Provider) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	caps, ok := p.Capabilities(req.Model)
	if !ok {
		return nil, provider.NewError(provider.KindModelNotFound, "model %q is not served here", req.Model).WithProvider(p.FriendlyName())
	}

	ctx, cancel := context.WithTimeout(ctx, provider.CallTimeout(caps))
	defer cancel()

	wireReq, err := p.buildRequest(req, caps)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(wireReq)
	if err != nil {
		return nil, provider.NewError(provider.KindInternal, "encode request: %v", err).WithProvider(p.FriendlyName())
	}

	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")

	httpResp, err := p.client.DoWithRetry(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, req.Model),
		Headers: headers,
		Body:    body,
		Auth:    &httpclient.AuthConfig{Type: httpclient.AuthTypeAPIKey, APIKey: p.apiKey, HeaderKey: "x-goog-api-key"},
	}, provider.GenerateAttempts)
	if err != nil {
		return nil, provider.WrapHTTPError(p.FriendlyName(), err)
	}

	var wireResp generateResponse
	if err := json.Unmarshal(httpResp.Body, &wireResp); err != nil {
		return nil, provider.NewError(provider.KindProviderInternal, "malformed response: %v", err).WithProvider(p.FriendlyName())
	}

	if len(wireResp.Candidates) == 0 {
		return nil, provider.NewError(provider.KindProviderInternal, "response contains no candidates").WithProvider(p.FriendlyName())
	}

	first := wireResp.Candidates[0]

	var sb strings.Builder
	for _, pt := range first.Content.Parts {
		sb.WriteString(pt.Text)
	}

	if log.DebugEnabled(ctx) {
		log.Debug(ctx, "generation finished",
			log.String("provider", p.FriendlyName()),
			log.String("model", req.Model),
			log.String("finish_reason", first.FinishReason),
			log.Int("output_tokens", wireResp.UsageMetadata.CandidatesTokenCount))
	}

	model := wireResp.ModelVersion
	if model == "" {
		model = req.Model
	}

	return &llm.Response{
		Content:      sb.String(),
		Model:        model,
		FinishReason: strings.ToLower(first.FinishReason),
		Usage: llm.Usage{
			InputTokens:  wireResp.UsageMetadata.PromptTokenCount,
			OutputTokens: wireResp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:  wireResp.UsageMetadata.TotalTokenCount,
		},
	}, nil
}

func (p *Provider) buildRequest(req *llm.Request, caps *catalog.ModelCapabilities) (*generateRequest, error) {
	wire := &generateRequest{}

	if req.SystemPrompt != "" {
		wire.SystemInstruction = &content{Parts: []part{{Text: req.SystemPrompt}}}
	}

	for _, msg := range req.Messages {
		role := "user"
		if msg.Role == llm.RoleAssistant {
			role = "model"
		}

		parts := []part{}
		if msg.Content != "" {
			parts = append(parts, part{Text: msg.Content})
		}

		if len(msg.Images) > 0 && !caps.SupportsImages {
			return nil, provider.NewError(provider.KindVisionUnsupported,
				"model %s does not accept image input", caps.CanonicalName).WithProvider(p.FriendlyName())
		}

		for _, img := range msg.Images {
			parts = append(parts, part{InlineData: &inlineData{MIMEType: img.MIMEType, Data: img.Data}})
		}

		if len(parts) == 0 {
			continue
		}

		wire.Contents = append(wire.Contents, content{Role: role, Parts: parts})
	}

	if len(wire.Contents) == 0 {
		return nil, provider.NewError(provider.KindInvalidRequest, "messages are required").WithProvider(p.FriendlyName())
	}

	cfg := &generationConfig{MaxOutputTokens: req.MaxOutputTokens}

	if req.Temperature != nil && caps.SupportsTemperature && caps.Temperature.OnWire() {
		cfg.Temperature = req.Temperature
	}

	if caps.SupportsExtendedThinking && req.ThinkingMode != "" {
		if budget := ThinkingBudget(req.ThinkingMode); budget > 0 {
			cfg.ThinkingConfig = &thinkingConfig{ThinkingBudget: budget}
		}
	}

	if req.UseWebSearch {
		wire.Tools = []wireTool{{GoogleSearch: &struct{}{}}}
	}

	wire.GenerationConfig = cfg

	return wire, nil
}
