package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/neuromux/neuromux/internal/conversation"
	"github.com/neuromux/neuromux/internal/llm"
	"github.com/neuromux/neuromux/internal/log"
	"github.com/neuromux/neuromux/internal/provider"
)

// PlannerRequest records one step of an interactive plan.
type PlannerRequest struct {
	// Step is the content of this planning step.
	Step string `json:"step"`

	// StepNumber is 1-based.
	StepNumber int `json:"step_number"`

	// TotalSteps is the current estimate; it may grow as planning continues.
	TotalSteps int `json:"total_steps"`

	// NextStepRequired is false on the final step.
	NextStepRequired bool `json:"next_step_required"`

	ContinuationID string `json:"continuation_id,omitempty"`
}

// Planner is bookkeeping, not generation: it never calls a model. Each call
// records one step into the conversation thread so later tool calls can pick
// the plan up as history.
func (k *Kernel) Planner(ctx context.Context, req *PlannerRequest) (*Result, error) {
	if strings.TrimSpace(req.Step) == "" {
		return nil, provider.NewError(provider.KindInvalidRequest, "step is required")
	}

	if req.StepNumber < 1 {
		return nil, provider.NewError(provider.KindInvalidRequest, "step_number must be at least 1")
	}

	totalSteps := req.TotalSteps
	if totalSteps < req.StepNumber {
		totalSteps = req.StepNumber
	}

	ctx = log.ContextWithRequest(ctx, "planner", uuid.NewString())

	turn := conversation.Turn{
		Role:     llm.RoleUser,
		Content:  fmt.Sprintf("Plan step %d/%d: %s", req.StepNumber, totalSteps, req.Step),
		ToolName: "planner",
	}

	var (
		thread *conversation.Thread
		err    error
	)

	if req.ContinuationID != "" {
		thread, err = k.store.Append(ctx, req.ContinuationID, turn)
	} else {
		thread, err = k.store.Create(ctx, "planner", turn)
	}

	if err != nil {
		return nil, err
	}

	status := StatusSuccess
	content := fmt.Sprintf("Plan complete after %d steps.", req.StepNumber)

	if req.NextStepRequired {
		status = StatusMoreStepsRequired
		content = fmt.Sprintf("Step %d of %d recorded. Continue with step %d using the continuation id.",
			req.StepNumber, totalSteps, req.StepNumber+1)
	}

	return &Result{
		Status:      status,
		Content:     content,
		ContentType: "text",
		Metadata: map[string]any{
			"step_number":        req.StepNumber,
			"total_steps":        totalSteps,
			"next_step_required": req.NextStepRequired,
		},
		ContinuationOffer: &ContinuationOffer{
			ThreadID:       thread.ID,
			RemainingTurns: k.store.RemainingTurns(thread),
			TotalTokens:    thread.TotalTokens(),
		},
	}, nil
}
