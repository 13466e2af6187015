package tools

import (
	"context"
	"strings"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/provider"
)

// PrecommitRequest is the input for pending-change validation. The caller
// supplies the changed files (or diff files) directly; the server never runs
// version control itself.
type PrecommitRequest struct {
	CommonRequest

	// Prompt states the intent of the change set.
	Prompt string `json:"prompt"`

	// CompareTo names the ref or baseline the change is against, if any.
	CompareTo string `json:"compare_to,omitempty"`
}

func (k *Kernel) Precommit(ctx context.Context, req *PrecommitRequest) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, provider.NewError(provider.KindInvalidRequest, "prompt is required")
	}

	if len(req.Files) == 0 {
		return nil, provider.NewError(provider.KindInvalidRequest, "files are required: pass the changed files or a diff")
	}

	prompt := "Change intent: " + req.Prompt
	if req.CompareTo != "" {
		prompt += "\nBaseline: " + req.CompareTo
	}

	return k.Execute(ctx, &Invocation{
		ToolName:           "precommit",
		Category:           catalog.CategoryReasoning,
		SystemPrompt:       precommitSystemPrompt,
		DefaultTemperature: 0.2,
		PromptField:        "prompt",
		Prompt:             prompt,
		Suggestions: []string{
			"Resubmit after addressing the NEEDS WORK findings",
		},
		Request: &req.CommonRequest,
	})
}
