package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/neuromux/neuromux/internal/budget"
	"github.com/neuromux/neuromux/internal/conversation"
	"github.com/neuromux/neuromux/internal/llm"
	"github.com/neuromux/neuromux/internal/log"
	"github.com/neuromux/neuromux/internal/provider"
)

// consensusFanOut bounds how many upstream calls run at once.
const consensusFanOut = 4

// ConsensusRequest asks several models the same question.
type ConsensusRequest struct {
	CommonRequest

	// Prompt is the question put to every model.
	Prompt string `json:"prompt"`

	// Models names at least two models to consult, canonical or alias.
	Models []string `json:"models"`
}

type consensusVerdict struct {
	requested string
	canonical string
	provider  string
	content   string
	usage     llm.Usage
	err       error
}

// Consensus fans the same prompt out to every named model, waits for all of
// them, and stitches the answers into one per-model report. Individual model
// failures become sections of the report; the call fails only when every
// model does.
func (k *Kernel) Consensus(ctx context.Context, req *ConsensusRequest) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, provider.NewError(provider.KindInvalidRequest, "prompt is required")
	}

	models := lo.Uniq(req.Models)
	if len(models) < 2 {
		return nil, provider.NewError(provider.KindInvalidRequest, "consensus needs at least two distinct models")
	}

	ctx = log.ContextWithRequest(ctx, "consensus", uuid.NewString())

	if len(req.Prompt) > k.cfg.PromptSizeLimit {
		return &Result{
			Status:      StatusClarificationRequested,
			ContentType: "text",
			Content: fmt.Sprintf(
				"The prompt field is %d characters, above the %d character limit. Save the content to a file and resubmit it via the files parameter.",
				len(req.Prompt), k.cfg.PromptSizeLimit),
		}, nil
	}

	var thread *conversation.Thread

	files := req.Files
	if req.ContinuationID != "" {
		var err error

		thread, err = k.store.Load(ctx, req.ContinuationID)
		if err != nil {
			return nil, err
		}

		files = mergeNewestFirst(req.Files, thread.Files())
	}

	// Every name must resolve before any upstream call is made; a typo in
	// the list is the caller's error, not a per-model failure.
	verdicts := make([]consensusVerdict, len(models))

	for i, name := range models {
		prov, canonical, err := k.registry.Resolve(name)
		if err != nil {
			return nil, err
		}

		verdicts[i] = consensusVerdict{requested: name, canonical: canonical, provider: prov.FriendlyName()}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(consensusFanOut)

	for i := range verdicts {
		g.Go(func() error {
			verdicts[i].content, verdicts[i].usage, verdicts[i].err =
				k.consultModel(gctx, verdicts[i].requested, req, thread, files)
			return nil
		})
	}

	_ = g.Wait() // goroutines report through the verdict slice

	var (
		failures  *multierror.Error
		succeeded int
	)

	for i := range verdicts {
		if verdicts[i].err != nil {
			failures = multierror.Append(failures, verdicts[i].err)

			log.Warn(ctx, "consensus model failed",
				log.String("model", verdicts[i].canonical),
				log.Cause(verdicts[i].err))

			continue
		}

		succeeded++
	}

	if succeeded == 0 {
		return nil, provider.NewError(provider.KindProviderInternal,
			"every consulted model failed: %v", failures.ErrorOrNil())
	}

	content, usage := renderConsensus(verdicts)

	result := &Result{
		Status:      StatusSuccess,
		Content:     content,
		ContentType: "text",
		Metadata: map[string]any{
			"models_consulted": len(verdicts),
			"models_succeeded": succeeded,
			"input_tokens":     usage.InputTokens,
			"output_tokens":    usage.OutputTokens,
		},
	}

	offer, err := k.maintainThread(ctx, &Invocation{
		ToolName: "consensus",
		Prompt:   req.Prompt,
		Suggestions: []string{
			"Ask one model to critique the points the others disagreed on",
		},
	}, thread, &llm.Response{
		Content: content,
		Model:   "consensus",
		Usage:   usage,
	}, files, nil)
	if err != nil {
		return nil, err
	}

	result.ContinuationOffer = offer

	return result, nil
}

// consultModel runs one model's leg of the fan-out: its own allocation, its
// own history and file rendering, one Generate.
func (k *Kernel) consultModel(ctx context.Context, model string, req *ConsensusRequest, thread *conversation.Thread, files []string) (string, llm.Usage, error) {
	prov, canonical, err := k.registry.Resolve(model)
	if err != nil {
		return "", llm.Usage{}, err
	}

	caps, ok := prov.Capabilities(canonical)
	if !ok {
		return "", llm.Usage{}, provider.NewError(provider.KindInternal, "no capabilities for resolved model %s", canonical)
	}

	allocation := budget.NewModelContext(caps).Allocate()

	var history conversation.History
	if thread != nil {
		history = conversation.BuildHistory(thread, allocation.HistoryBudget)
	}

	fileSection, err := renderFiles(files, allocation.FileBudget)
	if err != nil {
		return "", llm.Usage{}, err
	}

	resp, err := prov.Generate(ctx, &llm.Request{
		Model:        canonical,
		SystemPrompt: consensusSystemPrompt,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: assembleUserContent(history.Text, req.Prompt, fileSection),
		}},
		Temperature:     k.resolveTemperature(ctx, req.Temperature, 0.2, caps),
		MaxOutputTokens: allocation.MaxOutputTokens(),
		UseWebSearch:    req.UseWebSearch,
	})
	if err != nil {
		return "", llm.Usage{}, err
	}

	return resp.Content, resp.Usage, nil
}

func renderConsensus(verdicts []consensusVerdict) (string, llm.Usage) {
	var (
		sb    strings.Builder
		usage llm.Usage
	)

	for i := range verdicts {
		v := &verdicts[i]

		fmt.Fprintf(&sb, "## %s (%s)\n\n", v.canonical, v.provider)

		if v.err != nil {
			fmt.Fprintf(&sb, "This model could not be consulted: %v\n\n", v.err)
			continue
		}

		sb.WriteString(strings.TrimSpace(v.content))
		sb.WriteString("\n\n")

		usage.InputTokens += v.usage.InputTokens
		usage.OutputTokens += v.usage.OutputTokens
		usage.TotalTokens += v.usage.TotalTokens
	}

	return strings.TrimSpace(sb.String()), usage
}
