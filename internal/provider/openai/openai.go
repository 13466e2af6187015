// Package openai adapts the native OpenAI chat completions API. The caller
// half is shared with the aggregator and custom-endpoint providers, which
// speak the same wire format.
package openai

import (
	"context"
	"errors"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/llm"
	"github.com/neuromux/neuromux/internal/provider"
	"github.com/neuromux/neuromux/internal/restriction"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Config struct {
	APIKey  string `conf:"api_key" yaml:"api_key" json:"api_key"`
	BaseURL string `conf:"base_url" yaml:"base_url" json:"base_url"`
}

type Provider struct {
	provider.Base

	caller *Caller
}

func New(cfg Config, restrictions *restriction.Service, opts ...CallerOption) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Provider{
		Base:   provider.NewBase(catalog.ProviderOpenAI, "OpenAI", provider.PriorityOpenAI, catalog.Models(catalog.ProviderOpenAI), restrictions),
		caller: NewCaller("OpenAI", baseURL, cfg.APIKey, opts...),
	}, nil
}

func (p *Provider) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	caps, ok := p.Capabilities(req.Model)
	if !ok {
		return nil, provider.NewError(provider.KindModelNotFound, "model %q is not served here", req.Model).WithProvider(p.FriendlyName())
	}

	return p.caller.Complete(ctx, req, caps)
}
