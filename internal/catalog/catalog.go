// Package catalog is the static table of known models and their capabilities.
// It is read-only after init; the provider registry layers restrictions and
// credentials on top of it.
package catalog

import (
	"strings"

	"github.com/samber/lo"
)

// ProviderType identifies a model family adapter.
type ProviderType string

const (
	ProviderGoogle     ProviderType = "google"
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderCustom     ProviderType = "custom"
)

// Category buckets models by what they are good at; auto mode selects by it.
type Category string

const (
	CategoryFast              Category = "fast"
	CategoryBalanced          Category = "balanced"
	CategoryReasoning         Category = "reasoning"
	CategoryExtendedReasoning Category = "extended_reasoning"
	CategoryVision            Category = "vision"
)

// TemperatureKind discriminates the temperature policy.
type TemperatureKind string

const (
	TemperatureRange    TemperatureKind = "range"
	TemperatureFixed    TemperatureKind = "fixed"
	TemperatureDiscrete TemperatureKind = "discrete"
)

// TemperaturePolicy validates and corrects a requested temperature.
type TemperaturePolicy struct {
	Kind   TemperatureKind `json:"kind"`
	Lo     float64         `json:"lo,omitempty"`
	Hi     float64         `json:"hi,omitempty"`
	Fixed  float64         `json:"fixed,omitempty"`
	Values []float64       `json:"values,omitempty"`
}

// RangePolicy allows any temperature in [lo, hi].
func RangePolicy(lo, hi float64) TemperaturePolicy {
	return TemperaturePolicy{Kind: TemperatureRange, Lo: lo, Hi: hi}
}

// FixedPolicy pins the temperature; the value is dropped from the wire request.
func FixedPolicy(v float64) TemperaturePolicy {
	return TemperaturePolicy{Kind: TemperatureFixed, Fixed: v}
}

// DiscretePolicy allows only the listed values.
func DiscretePolicy(values ...float64) TemperaturePolicy {
	return TemperaturePolicy{Kind: TemperatureDiscrete, Values: values}
}

// Validate reports whether t satisfies the policy.
func (p TemperaturePolicy) Validate(t float64) bool {
	switch p.Kind {
	case TemperatureFixed:
		return t == p.Fixed
	case TemperatureDiscrete:
		return lo.Contains(p.Values, t)
	default:
		return t >= p.Lo && t <= p.Hi
	}
}

// Correct clamps t to the nearest permitted value. The second return reports
// whether a correction was applied.
func (p TemperaturePolicy) Correct(t float64) (float64, bool) {
	if p.Validate(t) {
		return t, false
	}

	switch p.Kind {
	case TemperatureFixed:
		return p.Fixed, true
	case TemperatureDiscrete:
		best := p.Values[0]
		for _, v := range p.Values[1:] {
			if abs(v-t) < abs(best-t) {
				best = v
			}
		}

		return best, true
	default:
		if t < p.Lo {
			return p.Lo, true
		}

		return p.Hi, true
	}
}

// OnWire reports whether the temperature may be sent to the provider at all.
func (p TemperaturePolicy) OnWire() bool {
	return p.Kind != TemperatureFixed
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}

	return f
}

// ModelCapabilities describes one catalog entry.
type ModelCapabilities struct {
	Provider      ProviderType `json:"provider"`
	CanonicalName string       `json:"canonical_name"`
	FriendlyName  string       `json:"friendly_name,omitempty"`
	Aliases       []string     `json:"aliases,omitempty"`
	ContextTokens int          `json:"context_tokens"`
	Category      Category     `json:"category"`

	SupportsImages        bool     `json:"supports_images"`
	MaxImageBytes         int64    `json:"max_image_bytes"`
	SupportedImageFormats []string `json:"supported_image_formats,omitempty"`

	SupportsExtendedThinking bool `json:"supports_extended_thinking"`
	SupportsSystemPrompt     bool `json:"supports_system_prompt"`
	SupportsTemperature      bool `json:"supports_temperature"`

	Temperature TemperaturePolicy `json:"temperature"`
}

// SupportsImageFormat checks a lowercase extension like "png" or "jpeg".
func (m *ModelCapabilities) SupportsImageFormat(format string) bool {
	return lo.Contains(m.SupportedImageFormats, strings.ToLower(format))
}

// Models returns the static entries for a provider, in declaration order.
func Models(p ProviderType) []ModelCapabilities {
	switch p {
	case ProviderGoogle:
		return googleModels
	case ProviderOpenAI:
		return openaiModels
	case ProviderOpenRouter:
		return openRouterModels
	default:
		return nil
	}
}

// Lookup finds an entry by canonical name, case-insensitively.
func Lookup(p ProviderType, canonicalName string) (*ModelCapabilities, bool) {
	models := Models(p)
	for i := range models {
		if strings.EqualFold(models[i].CanonicalName, canonicalName) {
			return &models[i], true
		}
	}

	return nil, false
}

// ResolveAlias maps an alias or canonical name to the canonical name.
// Resolution is case-insensitive. Returns false when the provider does not
// know the name at all.
func ResolveAlias(p ProviderType, name string) (string, bool) {
	name = strings.TrimSpace(name)

	models := Models(p)
	for i := range models {
		m := &models[i]
		if strings.EqualFold(m.CanonicalName, name) {
			return m.CanonicalName, true
		}

		for _, alias := range m.Aliases {
			if strings.EqualFold(alias, name) {
				return m.CanonicalName, true
			}
		}
	}

	return "", false
}

// visionFormats is the default accepted set for vision-capable models.
var visionFormats = []string{"png", "jpeg", "gif", "webp"}
