// Package custom adapts an arbitrary OpenAI-compatible endpoint, typically a
// local inference server. Capabilities are declared, not discovered: the
// single configured model gets a conservative catalog entry.
package custom

import (
	"context"
	"errors"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/llm"
	"github.com/neuromux/neuromux/internal/provider"
	"github.com/neuromux/neuromux/internal/provider/openai"
	"github.com/neuromux/neuromux/internal/restriction"
)

type Config struct {
	// BaseURL points at the endpoint root, e.g. http://localhost:11434/v1.
	BaseURL string `conf:"base_url" yaml:"base_url" json:"base_url"`

	// APIKey is optional; many local servers accept any value.
	APIKey string `conf:"api_key" yaml:"api_key" json:"api_key"`

	// ModelName is the single model the endpoint serves.
	ModelName string `conf:"model_name" yaml:"model_name" json:"model_name"`
}

type Provider struct {
	provider.Base

	caller *openai.Caller
}

func New(cfg Config, restrictions *restriction.Service, opts ...openai.CallerOption) (*Provider, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("custom: base URL is required")
	}

	if cfg.ModelName == "" {
		return nil, errors.New("custom: model name is required")
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		// The chat completions protocol always sends an Authorization header;
		// local servers ignore the value.
		apiKey = "unused"
	}

	entries := []catalog.ModelCapabilities{catalog.CustomEntry(cfg.ModelName)}

	return &Provider{
		Base:   provider.NewBase(catalog.ProviderCustom, "Custom", provider.PriorityCustom, entries, restrictions),
		caller: openai.NewCaller("Custom", cfg.BaseURL, apiKey, opts...),
	}, nil
}

func (p *Provider) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	caps, ok := p.Capabilities(req.Model)
	if !ok {
		return nil, provider.NewError(provider.KindModelNotFound, "model %q is not served here", req.Model).WithProvider(p.FriendlyName())
	}

	return p.caller.Complete(ctx, req, caps)
}
