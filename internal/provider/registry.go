package provider

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/log"
)

// Registry owns the configured providers and answers every "which model, on
// which provider" question. Read-only after New.
type Registry struct {
	providers []Provider
	// owner maps lowercase canonical name to the provider that serves it.
	// An earlier-priority provider wins a contested name.
	owner map[string]Provider

	defaultVisionModel string
}

// RegistryOption customizes construction.
type RegistryOption func(*Registry)

// WithDefaultVisionModel sets the preferred model for vision auto-selection.
func WithDefaultVisionModel(name string) RegistryOption {
	return func(r *Registry) { r.defaultVisionModel = name }
}

// NewRegistry sorts providers by priority and builds the canonical-name
// ownership table. At least one provider is required.
func NewRegistry(ctx context.Context, providers []Provider, opts ...RegistryOption) (*Registry, error) {
	if len(providers) == 0 {
		return nil, errors.New("no providers configured: set at least one API key")
	}

	r := &Registry{
		providers: make([]Provider, len(providers)),
		owner:     map[string]Provider{},
	}

	copy(r.providers, providers)
	sort.SliceStable(r.providers, func(i, j int) bool {
		return r.providers[i].Priority() < r.providers[j].Priority()
	})

	for _, opt := range opts {
		opt(r)
	}

	for _, p := range r.providers {
		models := p.ListModels()
		exposed := 0

		for _, name := range models {
			key := strings.ToLower(name)
			if _, taken := r.owner[key]; taken {
				continue
			}

			r.owner[key] = p
			exposed++
		}

		log.Info(ctx, "provider registered",
			log.String("provider", p.FriendlyName()),
			log.Int("models", len(models)),
			log.Int("exposed", exposed))
	}

	if len(r.owner) == 0 {
		return nil, errors.New("every configured provider exposes zero models; check the allowed-model restrictions")
	}

	return r, nil
}

// Providers returns the providers in priority order.
func (r *Registry) Providers() []Provider {
	return r.providers
}

// Exposed returns the canonical names the provider serves after cross-provider
// deduplication, in the provider's own listing order.
func (r *Registry) Exposed(p Provider) []string {
	return lo.Filter(p.ListModels(), func(name string, _ int) bool {
		return r.owner[strings.ToLower(name)] == p
	})
}

// AllModels returns every servable canonical name across providers, in
// priority then listing order.
func (r *Registry) AllModels() []string {
	var names []string
	for _, p := range r.providers {
		names = append(names, r.Exposed(p)...)
	}

	return names
}

// Resolve maps a user-supplied model name to its owning provider and canonical
// name. "auto" is rejected: callers must go through SelectAuto first.
func (r *Registry) Resolve(name string) (Provider, string, error) {
	name = strings.TrimSpace(name)

	if strings.EqualFold(name, "auto") {
		return nil, "", NewError(KindAutoUnresolved, "auto is not a concrete model; selection must run first")
	}

	for _, p := range r.providers {
		canonical, ok := p.ResolveAlias(name)
		if !ok {
			continue
		}

		owner := r.owner[strings.ToLower(canonical)]
		if owner == nil {
			continue
		}

		return owner, canonical, nil
	}

	return nil, "", NewError(KindModelNotFound,
		"model %q is not available; choose one of: %s", name, strings.Join(r.AllModels(), ", "))
}

// Capabilities looks up the entry for an already-resolved canonical name.
func (r *Registry) Capabilities(canonicalName string) (*catalog.ModelCapabilities, bool) {
	p, ok := r.owner[strings.ToLower(canonicalName)]
	if !ok {
		return nil, false
	}

	return p.Capabilities(canonicalName)
}

// categoryRanking lists the candidate categories for a tool category, best
// first. Vision is special-cased in SelectAuto.
var categoryRanking = map[catalog.Category][]catalog.Category{
	catalog.CategoryFast:              {catalog.CategoryFast, catalog.CategoryBalanced},
	catalog.CategoryBalanced:          {catalog.CategoryBalanced, catalog.CategoryFast, catalog.CategoryReasoning},
	catalog.CategoryReasoning:         {catalog.CategoryReasoning, catalog.CategoryExtendedReasoning, catalog.CategoryBalanced},
	catalog.CategoryExtendedReasoning: {catalog.CategoryExtendedReasoning, catalog.CategoryReasoning},
}

// preferredModels names the per-family default within a category. A preferred
// model that is restricted away or absent simply loses the preference.
var preferredModels = map[catalog.ProviderType]map[catalog.Category]string{
	catalog.ProviderGoogle: {
		catalog.CategoryFast:              "gemini-2.5-flash",
		catalog.CategoryBalanced:          "gemini-2.5-flash",
		catalog.CategoryReasoning:         "gemini-2.5-pro",
		catalog.CategoryExtendedReasoning: "gemini-2.5-pro",
	},
	catalog.ProviderOpenAI: {
		catalog.CategoryFast:              "o4-mini",
		catalog.CategoryBalanced:          "gpt-4o",
		catalog.CategoryReasoning:         "o4-mini",
		catalog.CategoryExtendedReasoning: "o3",
	},
	catalog.ProviderOpenRouter: {
		catalog.CategoryFast:              "google/gemini-2.5-flash",
		catalog.CategoryBalanced:          "anthropic/claude-sonnet-4",
		catalog.CategoryReasoning:         "deepseek/deepseek-r1",
		catalog.CategoryExtendedReasoning: "anthropic/claude-opus-4",
	},
}

// SelectAuto picks a concrete canonical name for auto mode given the tool's
// category and whether the request carries images. Deterministic: preference
// table, then provider priority, then lexical canonical order.
func (r *Registry) SelectAuto(category catalog.Category, hasImages bool) (Provider, string, error) {
	if category == catalog.CategoryVision {
		if p, name, ok := r.selectVision(); ok {
			return p, name, nil
		}

		return nil, "", NewError(KindNoVisionModel, "no configured model accepts image input")
	}

	// The operator's configured vision default short-circuits category
	// ranking when the request carries images.
	if hasImages {
		if p, name, ok := r.preferredVisionModel(); ok {
			return p, name, nil
		}
	}

	ranking, ok := categoryRanking[category]
	if !ok {
		ranking = categoryRanking[catalog.CategoryBalanced]
	}

	for _, cat := range ranking {
		if p, name, ok := r.selectInCategory(cat, hasImages); ok {
			return p, name, nil
		}
	}

	if hasImages {
		return nil, "", NewError(KindNoVisionModel,
			"no configured model in category %q accepts image input", category)
	}

	return nil, "", NewError(KindModelNotFound, "no configured model fits category %q", category)
}

func (r *Registry) preferredVisionModel() (Provider, string, bool) {
	if r.defaultVisionModel == "" {
		return nil, "", false
	}

	p, canonical, err := r.Resolve(r.defaultVisionModel)
	if err != nil {
		return nil, "", false
	}

	caps, ok := p.Capabilities(canonical)
	if !ok || !caps.SupportsImages {
		return nil, "", false
	}

	return p, canonical, true
}

func (r *Registry) selectVision() (Provider, string, bool) {
	if p, name, ok := r.preferredVisionModel(); ok {
		return p, name, ok
	}

	for _, p := range r.providers {
		if name, ok := r.pickFrom(p, func(caps *catalog.ModelCapabilities) bool {
			return caps.SupportsImages
		}, preferredModels[p.Type()][catalog.CategoryBalanced]); ok {
			return p, name, true
		}
	}

	return nil, "", false
}

func (r *Registry) selectInCategory(cat catalog.Category, needImages bool) (Provider, string, bool) {
	for _, p := range r.providers {
		if name, ok := r.pickFrom(p, func(caps *catalog.ModelCapabilities) bool {
			if caps.Category != cat {
				return false
			}

			return !needImages || caps.SupportsImages
		}, preferredModels[p.Type()][cat]); ok {
			return p, name, true
		}
	}

	return nil, "", false
}

// pickFrom scans one provider's exposed models for matches, preferring the
// family default and otherwise the lexically smallest canonical name.
func (r *Registry) pickFrom(p Provider, match func(*catalog.ModelCapabilities) bool, preferred string) (string, bool) {
	var candidates []string

	for _, name := range r.Exposed(p) {
		caps, ok := p.Capabilities(name)
		if !ok || !match(caps) {
			continue
		}

		if preferred != "" && strings.EqualFold(name, preferred) {
			return name, true
		}

		candidates = append(candidates, name)
	}

	if len(candidates) == 0 {
		return "", false
	}

	sort.Strings(candidates)

	return candidates[0], true
}
