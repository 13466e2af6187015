package tools

import (
	"context"
	"strings"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/provider"
)

// DebugRequest is the input for root-cause analysis.
type DebugRequest struct {
	CommonRequest

	// Prompt describes the failure: symptoms, expected behavior.
	Prompt string `json:"prompt"`

	// ErrorContext carries stack traces or failing logs verbatim.
	ErrorContext string `json:"error_context,omitempty"`

	// RuntimeInfo describes the environment (OS, versions, flags).
	RuntimeInfo string `json:"runtime_info,omitempty"`
}

func (k *Kernel) Debug(ctx context.Context, req *DebugRequest) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, provider.NewError(provider.KindInvalidRequest, "prompt is required")
	}

	var sb strings.Builder

	sb.WriteString(req.Prompt)

	if req.ErrorContext != "" {
		sb.WriteString("\n\nERROR OUTPUT:\n" + req.ErrorContext)
	}

	if req.RuntimeInfo != "" {
		sb.WriteString("\n\nRUNTIME:\n" + req.RuntimeInfo)
	}

	return k.Execute(ctx, &Invocation{
		ToolName:           "debug",
		Category:           catalog.CategoryReasoning,
		SystemPrompt:       debugSystemPrompt,
		DefaultTemperature: 0.2,
		PromptField:        "prompt",
		Prompt:             sb.String(),
		Suggestions: []string{
			"Report the result of the suggested experiment",
			"Attach the files the top hypothesis implicates",
		},
		Request: &req.CommonRequest,
	})
}
