// Package openrouter adapts the OpenRouter aggregator. It is wire-compatible
// with chat completions; model names follow the owner/model convention and it
// acts as the catch-all provider with the lowest priority.
package openrouter

import (
	"context"
	"errors"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/llm"
	"github.com/neuromux/neuromux/internal/provider"
	"github.com/neuromux/neuromux/internal/provider/openai"
	"github.com/neuromux/neuromux/internal/restriction"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

type Config struct {
	APIKey  string `conf:"api_key" yaml:"api_key" json:"api_key"`
	BaseURL string `conf:"base_url" yaml:"base_url" json:"base_url"`
}

type Provider struct {
	provider.Base

	caller *openai.Caller
}

func New(cfg Config, restrictions *restriction.Service, opts ...openai.CallerOption) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter: API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	// OpenRouter asks clients to identify themselves for routing analytics.
	opts = append([]openai.CallerOption{
		openai.WithHeader("HTTP-Referer", "https://github.com/neuromux/neuromux"),
		openai.WithHeader("X-Title", "neuromux"),
	}, opts...)

	return &Provider{
		Base:   provider.NewBase(catalog.ProviderOpenRouter, "OpenRouter", provider.PriorityOpenRouter, catalog.Models(catalog.ProviderOpenRouter), restrictions),
		caller: openai.NewCaller("OpenRouter", baseURL, cfg.APIKey, opts...),
	}, nil
}

func (p *Provider) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	caps, ok := p.Capabilities(req.Model)
	if !ok {
		return nil, provider.NewError(provider.KindModelNotFound, "model %q is not served here", req.Model).WithProvider(p.FriendlyName())
	}

	return p.caller.Complete(ctx, req, caps)
}
