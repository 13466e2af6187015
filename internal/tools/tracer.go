package tools

import (
	"context"
	"strings"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/provider"
)

// TracerRequest is the input for call-path and dependency tracing.
type TracerRequest struct {
	CommonRequest

	// Prompt names the target to trace and what to learn about it.
	Prompt string `json:"prompt"`

	// TraceMode is precision (one call path end to end) or dependencies
	// (inbound and outbound mapping).
	TraceMode string `json:"trace_mode,omitempty"`
}

func (k *Kernel) Tracer(ctx context.Context, req *TracerRequest) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, provider.NewError(provider.KindInvalidRequest, "prompt is required")
	}

	if len(req.Files) == 0 {
		return nil, provider.NewError(provider.KindInvalidRequest, "files are required for tracing")
	}

	mode := req.TraceMode
	if mode == "" {
		mode = "precision"
	}

	if mode != "precision" && mode != "dependencies" {
		return nil, provider.NewError(provider.KindInvalidRequest, "trace_mode must be precision or dependencies")
	}

	return k.Execute(ctx, &Invocation{
		ToolName:           "tracer",
		Category:           catalog.CategoryReasoning,
		SystemPrompt:       tracerSystemPrompt,
		DefaultTemperature: 0.2,
		PromptField:        "prompt",
		Prompt:             "Trace mode: " + mode + "\n\n" + req.Prompt,
		Suggestions: []string{
			"Trace a branch the tree surfaced",
		},
		Request: &req.CommonRequest,
	})
}
