package tools

import (
	"context"
	"strings"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/provider"
)

// AnalyzeRequest is the input for code and architecture analysis.
type AnalyzeRequest struct {
	CommonRequest

	// Prompt is the question to answer about the files.
	Prompt string `json:"prompt"`

	// AnalysisType narrows the lens (architecture, performance, security,
	// quality, general).
	AnalysisType string `json:"analysis_type,omitempty"`
}

func (k *Kernel) Analyze(ctx context.Context, req *AnalyzeRequest) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, provider.NewError(provider.KindInvalidRequest, "prompt is required")
	}

	if len(req.Files) == 0 {
		return nil, provider.NewError(provider.KindInvalidRequest, "files are required for analysis")
	}

	prompt := req.Prompt
	if req.AnalysisType != "" {
		prompt = "Analysis type: " + req.AnalysisType + "\n\n" + prompt
	}

	return k.Execute(ctx, &Invocation{
		ToolName:           "analyze",
		Category:           catalog.CategoryReasoning,
		SystemPrompt:       analyzeSystemPrompt,
		DefaultTemperature: 0.2,
		PromptField:        "prompt",
		Prompt:             prompt,
		Suggestions: []string{
			"Drill into one of the cited files",
			"Ask tracer to follow a specific call path",
		},
		Request: &req.CommonRequest,
	})
}
