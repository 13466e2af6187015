// Package budget partitions a model's context window into content and
// response shares. The ratios are policy, chosen so large-context models
// spend proportionally more on conversation history and less on response
// headroom.
package budget

import "github.com/neuromux/neuromux/internal/catalog"

// largeContextThreshold switches to the generous split.
const largeContextThreshold = 1_000_000

// ModelContext carries the window of the model a request resolved to.
type ModelContext struct {
	Capabilities  *catalog.ModelCapabilities
	ContextTokens int
}

// TokenAllocation is the fixed partition of the context window.
//
// Invariants: ContentBudget+ResponseReserve == ContextTokens and
// FileBudget+HistoryBudget <= ContentBudget; the remainder of ContentBudget
// is headroom for the current prompt.
type TokenAllocation struct {
	ContextTokens   int
	ContentBudget   int
	ResponseReserve int
	FileBudget      int
	HistoryBudget   int
}

// MaxOutputTokens is the completion cap sent to the provider.
func (a TokenAllocation) MaxOutputTokens() int {
	return a.ResponseReserve
}

// NewModelContext builds the context for a resolved model.
func NewModelContext(caps *catalog.ModelCapabilities) *ModelContext {
	return &ModelContext{Capabilities: caps, ContextTokens: caps.ContextTokens}
}

// Allocate applies the fixed split policy.
func (m *ModelContext) Allocate() TokenAllocation {
	contentPct, filePct, historyPct := 0.60, 0.40, 0.40
	if m.ContextTokens >= largeContextThreshold {
		contentPct, filePct, historyPct = 0.80, 0.35, 0.45
	}

	content := int(float64(m.ContextTokens) * contentPct)

	return TokenAllocation{
		ContextTokens:   m.ContextTokens,
		ContentBudget:   content,
		ResponseReserve: m.ContextTokens - content,
		FileBudget:      int(float64(content) * filePct),
		HistoryBudget:   int(float64(content) * historyPct),
	}
}
