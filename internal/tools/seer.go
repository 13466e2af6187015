package tools

import (
	"context"
	"strings"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/provider"
)

// SeerRequest is the input for dedicated image analysis.
type SeerRequest struct {
	CommonRequest

	// Prompt is the question to answer about the images.
	Prompt string `json:"prompt"`
}

// Seer answers questions about images. Unlike the other tools, images are the
// primary input here, so selection runs in the vision category and a request
// without images is rejected outright.
func (k *Kernel) Seer(ctx context.Context, req *SeerRequest) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, provider.NewError(provider.KindInvalidRequest, "prompt is required")
	}

	if len(req.Images) == 0 {
		return nil, provider.NewError(provider.KindInvalidRequest, "images are required: pass file paths or data URLs")
	}

	return k.Execute(ctx, &Invocation{
		ToolName:           "seer",
		Category:           catalog.CategoryVision,
		SystemPrompt:       seerSystemPrompt,
		DefaultTemperature: 0.5,
		PromptField:        "prompt",
		Prompt:             req.Prompt,
		Suggestions: []string{
			"Ask a follow-up about a region of the same images",
		},
		Request: &req.CommonRequest,
	})
}
