package tools

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/provider"
)

var refactorTypes = []string{"codesmells", "decompose", "modernize", "organization"}

// RefactorRequest is the input for refactoring analysis.
type RefactorRequest struct {
	CommonRequest

	// Prompt states the refactoring goal.
	Prompt string `json:"prompt"`

	// RefactorType is one of codesmells, decompose, modernize, organization.
	RefactorType string `json:"refactor_type,omitempty"`

	// StyleGuideExamples are paths whose style the output should follow.
	StyleGuideExamples []string `json:"style_guide_examples,omitempty"`
}

func (k *Kernel) Refactor(ctx context.Context, req *RefactorRequest) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, provider.NewError(provider.KindInvalidRequest, "prompt is required")
	}

	if len(req.Files) == 0 {
		return nil, provider.NewError(provider.KindInvalidRequest, "files are required for refactoring analysis")
	}

	refactorType := req.RefactorType
	if refactorType == "" {
		refactorType = "codesmells"
	}

	if !lo.Contains(refactorTypes, refactorType) {
		return nil, provider.NewError(provider.KindInvalidRequest,
			"refactor_type must be one of: %s", strings.Join(refactorTypes, ", "))
	}

	common := req.CommonRequest
	common.Files = append(append([]string{}, common.Files...), req.StyleGuideExamples...)

	return k.Execute(ctx, &Invocation{
		ToolName:           "refactor",
		Category:           catalog.CategoryReasoning,
		SystemPrompt:       refactorSystemPrompt,
		DefaultTemperature: 0.2,
		PromptField:        "prompt",
		Prompt:             "Refactor type: " + refactorType + "\n\n" + req.Prompt,
		Suggestions: []string{
			"Apply one proposal and resubmit for the next pass",
		},
		Request: &common,
	})
}
