package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/provider"
)

// ListModels reports every configured provider and its models: aliases,
// context window, capability flags, and whether the entry is hidden by a
// restriction or served by a higher-priority provider. Pure registry data; no
// upstream call.
func (k *Kernel) ListModels(_ context.Context) (*Result, error) {
	var sb strings.Builder

	sb.WriteString("# Available models\n")

	total := 0

	for _, p := range k.registry.Providers() {
		fmt.Fprintf(&sb, "\n## %s (%s)\n\n", p.FriendlyName(), p.Type())

		exposed := k.registry.Exposed(p)
		total += len(exposed)

		for _, entry := range providerEntries(p) {
			name := entry.CanonicalName

			if !p.ValidateModel(name) {
				fmt.Fprintf(&sb, "- %s — hidden by restriction\n", name)
				continue
			}

			caps, ok := p.Capabilities(name)
			if !ok {
				continue
			}

			sb.WriteString("- " + name)

			if len(caps.Aliases) > 0 {
				sb.WriteString(" (aliases: " + strings.Join(caps.Aliases, ", ") + ")")
			}

			fmt.Fprintf(&sb, " — %s tokens, %s", formatTokens(caps.ContextTokens), caps.Category)

			if caps.SupportsImages {
				sb.WriteString(", vision")
			}

			if caps.SupportsExtendedThinking {
				sb.WriteString(", thinking")
			}

			if !lo.Contains(exposed, name) {
				sb.WriteString(" — served by a higher-priority provider")
			}

			sb.WriteString("\n")
		}
	}

	return &Result{
		Status:      StatusSuccess,
		Content:     sb.String(),
		ContentType: "text",
		Metadata: map[string]any{
			"providers": len(k.registry.Providers()),
			"models":    total,
		},
	}, nil
}

// providerEntries returns the full catalog for the provider's family,
// restricted entries included, so the report can show what is hidden. Custom
// providers have no static catalog; their exposed set is the whole story.
func providerEntries(p provider.Provider) []catalog.ModelCapabilities {
	if entries := catalog.Models(p.Type()); entries != nil {
		return entries
	}

	var entries []catalog.ModelCapabilities

	for _, name := range p.ListModels() {
		if caps, ok := p.Capabilities(name); ok {
			entries = append(entries, *caps)
		}
	}

	return entries
}

func formatTokens(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%dK", n/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
