package provider

import (
	"context"
	"strings"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/restriction"
)

// Base implements the catalog-backed half of the Provider contract. Adapters
// embed it and add Generate.
type Base struct {
	providerType catalog.ProviderType
	friendlyName string
	priority     int
	entries      []catalog.ModelCapabilities
	restrictions *restriction.Service
}

// NewBase wires a static capability table to a restriction service. A nil
// restriction service means unrestricted.
func NewBase(pt catalog.ProviderType, friendlyName string, priority int, entries []catalog.ModelCapabilities, restrictions *restriction.Service) Base {
	if restrictions == nil {
		restrictions = restriction.Parse(context.Background(), nil)
	}

	return Base{
		providerType: pt,
		friendlyName: friendlyName,
		priority:     priority,
		entries:      entries,
		restrictions: restrictions,
	}
}

func (b *Base) Type() catalog.ProviderType { return b.providerType }

func (b *Base) FriendlyName() string { return b.friendlyName }

func (b *Base) Priority() int { return b.priority }

func (b *Base) ListModels() []string {
	names := make([]string, 0, len(b.entries))
	for i := range b.entries {
		if b.restrictions.IsAllowed(b.providerType, b.entries[i].CanonicalName) {
			names = append(names, b.entries[i].CanonicalName)
		}
	}

	return names
}

func (b *Base) ResolveAlias(name string) (string, bool) {
	canonical, ok := resolveIn(b.entries, name)
	if !ok || !b.restrictions.IsAllowed(b.providerType, canonical) {
		return "", false
	}

	return canonical, true
}

func (b *Base) Capabilities(name string) (*catalog.ModelCapabilities, bool) {
	canonical, ok := b.ResolveAlias(name)
	if !ok {
		return nil, false
	}

	for i := range b.entries {
		if b.entries[i].CanonicalName == canonical {
			return &b.entries[i], true
		}
	}

	return nil, false
}

func (b *Base) ValidateModel(name string) bool {
	_, ok := b.ResolveAlias(name)
	return ok
}

// Allowed exposes the restriction state for diagnostics (listmodels).
func (b *Base) Allowed() []string {
	return b.restrictions.Allowed(b.providerType)
}

func resolveIn(entries []catalog.ModelCapabilities, name string) (string, bool) {
	name = strings.TrimSpace(name)

	for i := range entries {
		m := &entries[i]
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
