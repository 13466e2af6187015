// Package tools implements the request kernel shared by every tool and the
// tool definitions themselves. The kernel owns the common call sequence:
// prompt-size gate, continuation reconstruction, model selection, temperature
// correction, request assembly, the provider call, sentinel post-processing,
// and thread maintenance.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/neuromux/neuromux/internal/budget"
	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/conversation"
	"github.com/neuromux/neuromux/internal/llm"
	"github.com/neuromux/neuromux/internal/log"
	"github.com/neuromux/neuromux/internal/provider"
)

// Statuses a tool response can carry. Clarification-style statuses are
// successful responses, not errors.
const (
	StatusSuccess                = "success"
	StatusClarificationRequested = "clarification_requested"
	StatusFilesRequired          = "files_required_to_continue"
	StatusTestSampleNeeded       = "test_sample_needed"
	StatusMoreStepsRequired      = "more_steps_required"
)

// CommonRequest carries the fields every model-backed tool accepts.
type CommonRequest struct {
	Model          string   `json:"model,omitempty"`
	Temperature    *float64 `json:"temperature,omitempty"`
	ThinkingMode   string   `json:"thinking_mode,omitempty"`
	UseWebSearch   bool     `json:"use_websearch,omitempty"`
	ContinuationID string   `json:"continuation_id,omitempty"`
	Files          []string `json:"files,omitempty"`
	Images         []string `json:"images,omitempty"`
}

// Config is the kernel's slice of the process configuration.
type Config struct {
	DefaultModel        string
	DefaultThinkingMode string
	PromptSizeLimit     int
}

// Kernel executes tool invocations against the registry and the conversation
// store. Stateless per call; safe for concurrent use.
type Kernel struct {
	registry *provider.Registry
	store    *conversation.Store
	cfg      Config
}

func NewKernel(registry *provider.Registry, store *conversation.Store, cfg Config) *Kernel {
	return &Kernel{registry: registry, store: store, cfg: cfg}
}

// Registry exposes the provider registry for data-only tools.
func (k *Kernel) Registry() *provider.Registry {
	return k.registry
}

// Store exposes the conversation store for data-only tools.
func (k *Kernel) Store() *conversation.Store {
	return k.store
}

// Invocation is one tool's parameterization of the kernel sequence.
type Invocation struct {
	ToolName           string
	Category           catalog.Category
	SystemPrompt       string
	DefaultTemperature float64

	// PromptField names the top-level text field for gate error messages.
	PromptField string
	// Prompt is the tool's assembled main content, already validated
	// non-empty by the tool's schema handling.
	Prompt string

	// Suggestions seed the continuation offer.
	Suggestions []string

	Request *CommonRequest
}

// ContinuationOffer invites the client to keep the conversation going.
type ContinuationOffer struct {
	ThreadID       string   `json:"thread_id"`
	RemainingTurns int      `json:"remaining_turns"`
	TotalTokens    int      `json:"total_tokens"`
	Suggestions    []string `json:"suggestions,omitempty"`
}

// Result is the kernel's successful outcome; errors travel as *provider.Error.
type Result struct {
	Status            string
	Content           string
	ContentType       string
	Metadata          map[string]any
	ContinuationOffer *ContinuationOffer
}

// Execute runs the full kernel sequence for a model-backed tool.
func (k *Kernel) Execute(ctx context.Context, inv *Invocation) (*Result, error) {
	req := inv.Request
	ctx = log.ContextWithRequest(ctx, inv.ToolName, uuid.NewString())

	// Step 2: prompt-size gate. Oversized inline text must come back as a
	// file so it lands under the file budget instead of the wire prompt.
	if len(inv.Prompt) > k.cfg.PromptSizeLimit {
		return &Result{
			Status:      StatusClarificationRequested,
			ContentType: "text",
			Content: fmt.Sprintf(
				"The %s field is %d characters, above the %d character limit. Save the content to a file and resubmit it via the files parameter.",
				inv.PromptField, len(inv.Prompt), k.cfg.PromptSizeLimit),
		}, nil
	}

	// Step 3: continuation reconstruction.
	var (
		thread  *conversation.Thread
		history conversation.History
	)

	files := req.Files
	images := req.Images

	if req.ContinuationID != "" {
		var err error

		thread, err = k.store.Load(ctx, req.ContinuationID)
		if err != nil {
			return nil, err
		}

		// Request-provided paths are the newest references and win the
		// dedup over thread-aggregated ones.
		files = mergeNewestFirst(req.Files, thread.Files())
		images = mergeNewestFirst(req.Images, thread.Images())
	}

	// Step 4: model selection.
	prov, canonical, caps, err := k.selectModel(ctx, req.Model, inv.Category, len(images) > 0)
	if err != nil {
		return nil, err
	}

	loadedImages, err := loadImages(images, caps)
	if err != nil {
		return nil, err
	}

	// Step 5: temperature resolution.
	temperature := k.resolveTemperature(ctx, req.Temperature, inv.DefaultTemperature, caps)

	// Step 6: request assembly under the token allocation.
	allocation := budget.NewModelContext(caps).Allocate()

	if thread != nil {
		history = conversation.BuildHistory(thread, allocation.HistoryBudget)
	}

	fileSection, err := renderFiles(files, allocation.FileBudget)
	if err != nil {
		return nil, err
	}

	thinkingMode := req.ThinkingMode
	if thinkingMode == "" && caps.SupportsExtendedThinking {
		thinkingMode = k.cfg.DefaultThinkingMode
	}

	llmReq := &llm.Request{
		Model:        canonical,
		SystemPrompt: inv.SystemPrompt,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: assembleUserContent(history.Text, inv.Prompt, fileSection),
			Images:  loadedImages,
		}},
		Temperature:     temperature,
		MaxOutputTokens: allocation.MaxOutputTokens(),
		ThinkingMode:    thinkingMode,
		UseWebSearch:    req.UseWebSearch,
	}

	// Step 7: provider call.
	resp, err := prov.Generate(ctx, llmReq)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Status:      StatusSuccess,
		Content:     resp.Content,
		ContentType: "text",
		Metadata: map[string]any{
			"model_used":    canonical,
			"provider_type": string(prov.Type()),
			"input_tokens":  resp.Usage.InputTokens,
			"output_tokens": resp.Usage.OutputTokens,
		},
	}

	// Step 8: sentinel post-process. A structured status means the model is
	// asking for more input; nothing is persisted.
	if status, ok := detectSentinel(resp.Content); ok {
		result.Status = status
		result.ContentType = "json"

		return result, nil
	}

	// Step 9: thread maintenance.
	offer, err := k.maintainThread(ctx, inv, thread, resp, files, images)
	if err != nil {
		return nil, err
	}

	result.ContinuationOffer = offer

	return result, nil
}

func (k *Kernel) selectModel(ctx context.Context, requested string, category catalog.Category, hasImages bool) (provider.Provider, string, *catalog.ModelCapabilities, error) {
	effective := strings.TrimSpace(requested)
	if effective == "" {
		effective = k.cfg.DefaultModel
	}

	var (
		prov      provider.Provider
		canonical string
		err       error
	)

	if strings.EqualFold(effective, "auto") {
		prov, canonical, err = k.registry.SelectAuto(category, hasImages)
	} else {
		prov, canonical, err = k.registry.Resolve(effective)
	}

	if err != nil {
		return nil, "", nil, err
	}

	caps, ok := prov.Capabilities(canonical)
	if !ok {
		return nil, "", nil, provider.NewError(provider.KindInternal, "no capabilities for resolved model %s", canonical)
	}

	if hasImages && !caps.SupportsImages {
		return nil, "", nil, provider.NewError(provider.KindVisionUnsupported,
			"model %s does not accept image input; pick a vision-capable model or drop the images", canonical)
	}

	log.Debug(ctx, "model selected",
		log.String("model", canonical),
		log.String("provider", prov.FriendlyName()),
		log.Bool("auto", strings.EqualFold(effective, "auto")))

	return prov, canonical, caps, nil
}

func (k *Kernel) resolveTemperature(ctx context.Context, requested *float64, toolDefault float64, caps *catalog.ModelCapabilities) *float64 {
	if !caps.SupportsTemperature {
		return nil
	}

	desired := toolDefault
	if requested != nil {
		desired = *requested
	}

	corrected, changed := caps.Temperature.Correct(desired)
	if changed {
		log.Warn(ctx, "temperature outside model policy, corrected",
			log.String("model", caps.CanonicalName),
			log.Float64("requested", desired),
			log.Float64("corrected", corrected))
	}

	return &corrected
}

func (k *Kernel) maintainThread(ctx context.Context, inv *Invocation, thread *conversation.Thread, resp *llm.Response, files, images []string) (*ContinuationOffer, error) {
	userTurn := conversation.Turn{
		Role:        llm.RoleUser,
		Content:     inv.Prompt,
		ToolName:    inv.ToolName,
		Files:       files,
		Images:      images,
		InputTokens: resp.Usage.InputTokens,
	}
	assistantTurn := conversation.Turn{
		Role:         llm.RoleAssistant,
		Content:      resp.Content,
		ToolName:     inv.ToolName,
		ModelName:    resp.Model,
		OutputTokens: resp.Usage.OutputTokens,
	}

	var err error

	if thread != nil {
		thread, err = k.store.Append(ctx, thread.ID, userTurn, assistantTurn)
	} else {
		thread, err = k.store.Create(ctx, inv.ToolName, userTurn)
		if err == nil {
			thread, err = k.store.Append(ctx, thread.ID, assistantTurn)
		}
	}

	if err != nil {
		return nil, err
	}

	return &ContinuationOffer{
		ThreadID:       thread.ID,
		RemainingTurns: k.store.RemainingTurns(thread),
		TotalTokens:    thread.TotalTokens(),
		Suggestions:    inv.Suggestions,
	}, nil
}

func assembleUserContent(history, prompt, fileSection string) string {
	var sections []string

	if history != "" {
		sections = append(sections,
			"=== CONVERSATION HISTORY ===\n"+history+"=== END HISTORY ===")
	}

	sections = append(sections, "=== CURRENT REQUEST ===\n"+prompt)

	if fileSection != "" {
		sections = append(sections, fileSection)
	}

	return strings.Join(sections, "\n\n")
}

// mergeNewestFirst concatenates request paths (newest) and thread paths,
// keeping the first occurrence of each.
func mergeNewestFirst(request, fromThread []string) []string {
	return lo.Uniq(append(append([]string{}, request...), fromThread...))
}
