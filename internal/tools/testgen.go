package tools

import (
	"context"
	"strings"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/provider"
)

// TestGenRequest is the input for test generation.
type TestGenRequest struct {
	CommonRequest

	// Prompt scopes what to test (a function, a behavior, an edge).
	Prompt string `json:"prompt"`

	// TestExamples are paths to existing tests that establish conventions.
	TestExamples []string `json:"test_examples,omitempty"`
}

func (k *Kernel) TestGen(ctx context.Context, req *TestGenRequest) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, provider.NewError(provider.KindInvalidRequest, "prompt is required")
	}

	if len(req.Files) == 0 {
		return nil, provider.NewError(provider.KindInvalidRequest, "files are required: pass the code under test")
	}

	// Style samples ride along with the code under test; the fences keep
	// them distinguishable by path.
	common := req.CommonRequest
	common.Files = append(append([]string{}, common.Files...), req.TestExamples...)

	return k.Execute(ctx, &Invocation{
		ToolName:           "testgen",
		Category:           catalog.CategoryReasoning,
		SystemPrompt:       testgenSystemPrompt,
		DefaultTemperature: 0.2,
		PromptField:        "prompt",
		Prompt:             req.Prompt,
		Suggestions: []string{
			"Ask for additional edge cases on a specific function",
		},
		Request: &common,
	})
}
