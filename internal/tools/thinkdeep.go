package tools

import (
	"context"
	"strings"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/provider"
)

// ThinkDeepRequest is the input for extended multi-angle reasoning.
type ThinkDeepRequest struct {
	CommonRequest

	// Prompt is the problem statement or current thinking to extend.
	Prompt string `json:"prompt"`

	// ProblemContext adds background the prompt itself omits.
	ProblemContext string `json:"problem_context,omitempty"`

	// FocusAreas steers the analysis (e.g. "performance", "security").
	FocusAreas []string `json:"focus_areas,omitempty"`
}

func (k *Kernel) ThinkDeep(ctx context.Context, req *ThinkDeepRequest) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, provider.NewError(provider.KindInvalidRequest, "prompt is required")
	}

	var sb strings.Builder

	sb.WriteString(req.Prompt)

	if req.ProblemContext != "" {
		sb.WriteString("\n\nCONTEXT:\n" + req.ProblemContext)
	}

	if len(req.FocusAreas) > 0 {
		sb.WriteString("\n\nFOCUS ON: " + strings.Join(req.FocusAreas, ", "))
	}

	return k.Execute(ctx, &Invocation{
		ToolName:           "thinkdeep",
		Category:           catalog.CategoryExtendedReasoning,
		SystemPrompt:       thinkdeepSystemPrompt,
		DefaultTemperature: 0.7,
		PromptField:        "prompt",
		Prompt:             sb.String(),
		Suggestions: []string{
			"Challenge a specific assumption from the analysis",
			"Ask consensus to have other models weigh in",
		},
		Request: &req.CommonRequest,
	})
}
