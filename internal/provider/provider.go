// Package provider defines the adapter contract every model family implements
// and the registry that resolves names and auto-mode selections across them.
package provider

import (
	"context"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/llm"
)

// Provider is one configured model family. Implementations are safe for
// concurrent use; everything except Generate is read-only after construction.
type Provider interface {
	Type() catalog.ProviderType
	FriendlyName() string

	// Priority orders providers for deduplication and resolution; lower wins.
	Priority() int

	// ListModels returns the canonical names this provider may serve, with
	// restrictions already applied, in catalog order.
	ListModels() []string

	// Capabilities returns the entry for a canonical name or alias, or false
	// when unknown or restricted away.
	Capabilities(name string) (*catalog.ModelCapabilities, bool)

	// ValidateModel reports whether the name (canonical or alias) is servable.
	ValidateModel(name string) bool

	// ResolveAlias maps an alias or canonical name to the canonical name.
	// A name restricted away behaves as if unknown.
	ResolveAlias(name string) (string, bool)

	// Generate performs one blocking completion. Failures are *Error with a
	// provider-layer kind; retries for transport errors happen inside.
	Generate(ctx context.Context, req *llm.Request) (*llm.Response, error)
}

// Priorities for the built-in families. Native providers beat aggregators so
// a model reachable both ways goes through its own API.
const (
	PriorityGoogle     = 1
	PriorityOpenAI     = 2
	PriorityCustom     = 3
	PriorityOpenRouter = 4
)
