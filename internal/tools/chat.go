package tools

import (
	"context"
	"strings"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/provider"
)

// ChatRequest is the input for general collaborative chat.
type ChatRequest struct {
	CommonRequest

	// Prompt is the question or discussion topic.
	Prompt string `json:"prompt"`
}

func (k *Kernel) Chat(ctx context.Context, req *ChatRequest) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, provider.NewError(provider.KindInvalidRequest, "prompt is required")
	}

	return k.Execute(ctx, &Invocation{
		ToolName:           "chat",
		Category:           catalog.CategoryBalanced,
		SystemPrompt:       chatSystemPrompt,
		DefaultTemperature: 0.5,
		PromptField:        "prompt",
		Prompt:             req.Prompt,
		Suggestions: []string{
			"Continue the discussion with a follow-up question",
			"Ask for a deeper analysis of any point via thinkdeep",
		},
		Request: &req.CommonRequest,
	})
}
