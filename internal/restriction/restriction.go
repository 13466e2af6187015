// Package restriction parses per-provider model allow-lists from the
// environment and answers allow/deny questions after alias resolution, so an
// alias can never bypass a restriction on its canonical name.
package restriction

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/log"
)

// Service holds the parsed allow-lists. Immutable after Parse.
type Service struct {
	// allowed maps provider -> set of canonical names. A provider missing from
	// the map is unrestricted.
	allowed map[catalog.ProviderType]map[string]struct{}
}

// Parse builds the service from raw comma-separated env strings. Tokens that
// resolve to no known model are logged and skipped; they never abort startup.
func Parse(ctx context.Context, lists map[catalog.ProviderType]string) *Service {
	s := &Service{allowed: map[catalog.ProviderType]map[string]struct{}{}}

	for provider, raw := range lists {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		set := map[string]struct{}{}

		for _, token := range strings.Split(raw, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}

			canonical, ok := catalog.ResolveAlias(provider, token)
			if !ok {
				log.Warn(ctx, "allowed-models entry does not match any known model",
					log.String("provider", string(provider)), log.String("name", token))

				continue
			}

			set[strings.ToLower(canonical)] = struct{}{}
		}

		// An allow-list where every token was unknown still restricts: the
		// operator asked for a subset, and the subset is empty.
		s.allowed[provider] = set
	}

	return s
}

// IsAllowed reports whether the canonical name may be served by the provider.
func (s *Service) IsAllowed(provider catalog.ProviderType, canonicalName string) bool {
	set, restricted := s.allowed[provider]
	if !restricted {
		return true
	}

	_, ok := set[strings.ToLower(canonicalName)]

	return ok
}

// Restricted reports whether the provider has an allow-list at all.
func (s *Service) Restricted(provider catalog.ProviderType) bool {
	_, ok := s.allowed[provider]

	return ok
}

// Filter keeps the canonical names the provider may serve, preserving order.
func (s *Service) Filter(provider catalog.ProviderType, names []string) []string {
	return lo.Filter(names, func(name string, _ int) bool {
		return s.IsAllowed(provider, name)
	})
}

// Allowed returns the sorted-by-input allow-list, or nil when unrestricted.
func (s *Service) Allowed(provider catalog.ProviderType) []string {
	set, ok := s.allowed[provider]
	if !ok {
		return nil
	}

	return lo.Keys(set)
}
