package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/provider"
)

var reviewTypes = []string{"full", "security", "performance", "quick"}

// CodeReviewRequest is the input for professional code review.
type CodeReviewRequest struct {
	CommonRequest

	// Prompt states the review goal or known concerns.
	Prompt string `json:"prompt"`

	// ReviewType is one of full, security, performance, quick.
	ReviewType string `json:"review_type,omitempty"`

	// SeverityFilter drops findings below the given severity.
	SeverityFilter string `json:"severity_filter,omitempty"`
}

func (k *Kernel) CodeReview(ctx context.Context, req *CodeReviewRequest) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, provider.NewError(provider.KindInvalidRequest, "prompt is required")
	}

	if len(req.Files) == 0 {
		return nil, provider.NewError(provider.KindInvalidRequest, "files are required for a code review")
	}

	reviewType := req.ReviewType
	if reviewType == "" {
		reviewType = "full"
	}

	if !lo.Contains(reviewTypes, reviewType) {
		return nil, provider.NewError(provider.KindInvalidRequest,
			"review_type must be one of: %s", strings.Join(reviewTypes, ", "))
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Review type: %s\n", reviewType)

	if req.SeverityFilter != "" {
		fmt.Fprintf(&sb, "Only report findings of severity %s or higher.\n", req.SeverityFilter)
	}

	sb.WriteString("\n" + req.Prompt)

	return k.Execute(ctx, &Invocation{
		ToolName:           "codereview",
		Category:           catalog.CategoryReasoning,
		SystemPrompt:       codereviewSystemPrompt,
		DefaultTemperature: 0.2,
		PromptField:        "prompt",
		Prompt:             sb.String(),
		Suggestions: []string{
			"Ask for fixes to a specific finding",
			"Run testgen to cover an uncovered path the review found",
		},
		Request: &req.CommonRequest,
	})
}
