package tools

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/conversation"
	"github.com/neuromux/neuromux/internal/llm"
	"github.com/neuromux/neuromux/internal/pkg/xcache"
	"github.com/neuromux/neuromux/internal/provider"
)

type fakeProvider struct {
	provider.Base

	mu       sync.Mutex
	requests []*llm.Request
	generate func(ctx context.Context, req *llm.Request) (*llm.Response, error)
}

func (f *fakeProvider) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.generate != nil {
		return f.generate(ctx, req)
	}

	return &llm.Response{
		Content:      "answer from " + req.Model,
		Model:        req.Model,
		FinishReason: "stop",
		Usage:        llm.Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}, nil
}

func (f *fakeProvider) sent() []*llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*llm.Request, len(f.requests))
	copy(out, f.requests)

	return out
}

func fakeEntries() []catalog.ModelCapabilities {
	return []catalog.ModelCapabilities{
		{
			Provider:             catalog.ProviderCustom,
			CanonicalName:        "quill-large",
			Aliases:              []string{"quill"},
			ContextTokens:        200_000,
			Category:             catalog.CategoryBalanced,
			SupportsSystemPrompt: true,
			SupportsTemperature:  true,
			Temperature:          catalog.RangePolicy(0, 1),
		},
		{
			Provider:             catalog.ProviderCustom,
			CanonicalName:        "quill-mini",
			ContextTokens:        100_000,
			Category:             catalog.CategoryFast,
			SupportsSystemPrompt: true,
			SupportsTemperature:  true,
			Temperature:          catalog.RangePolicy(0, 1),
		},
		{
			Provider:                 catalog.ProviderCustom,
			CanonicalName:            "quill-think",
			ContextTokens:            200_000,
			Category:                 catalog.CategoryExtendedReasoning,
			SupportsSystemPrompt:     true,
			SupportsExtendedThinking: true,
			SupportsTemperature:      true,
			Temperature:              catalog.RangePolicy(0, 1),
		},
		{
			Provider:              catalog.ProviderCustom,
			CanonicalName:         "quill-vision",
			Aliases:               []string{"qv"},
			ContextTokens:         200_000,
			Category:              catalog.CategoryBalanced,
			SupportsImages:        true,
			MaxImageBytes:         1024,
			SupportedImageFormats: []string{"png", "jpeg"},
			SupportsSystemPrompt:  true,
			SupportsTemperature:   true,
			Temperature:           catalog.RangePolicy(0, 1),
		},
		{
			Provider:             catalog.ProviderCustom,
			CanonicalName:        "quill-pinned",
			ContextTokens:        100_000,
			Category:             catalog.CategoryReasoning,
			SupportsSystemPrompt: true,
			SupportsTemperature:  true,
			Temperature:          catalog.DiscretePolicy(0.1, 0.9),
		},
	}
}

func newTestKernel(t *testing.T) (*Kernel, *fakeProvider) {
	t.Helper()

	fake := &fakeProvider{
		Base: provider.NewBase(catalog.ProviderCustom, "Quill", provider.PriorityCustom, fakeEntries(), nil),
	}

	registry, err := provider.NewRegistry(context.Background(), []provider.Provider{fake})
	require.NoError(t, err)

	cache := xcache.NewMemoryWithOptions[conversation.Thread](time.Hour, time.Hour)
	store := conversation.NewStore(cache, 3*time.Hour, 10)

	return NewKernel(registry, store, Config{
		DefaultModel:        "quill-large",
		DefaultThinkingMode: "medium",
		PromptSizeLimit:     2000,
	}), fake
}

func pngDataURL(size int) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(make([]byte, size))
}

func TestChatHappyPath(t *testing.T) {
	k, fake := newTestKernel(t)

	result, err := k.Chat(context.Background(), &ChatRequest{Prompt: "compare mutexes and channels"})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "answer from quill-large", result.Content)
	assert.Equal(t, "quill-large", result.Metadata["model_used"])
	assert.Equal(t, "custom", result.Metadata["provider_type"])

	require.NotNil(t, result.ContinuationOffer)
	assert.NotEmpty(t, result.ContinuationOffer.ThreadID)
	assert.Equal(t, 8, result.ContinuationOffer.RemainingTurns)

	sent := fake.sent()
	require.Len(t, sent, 1)
	assert.NotEmpty(t, sent[0].SystemPrompt)
	require.Len(t, sent[0].Messages, 1)
	assert.Contains(t, sent[0].Messages[0].Content, "=== CURRENT REQUEST ===")
	assert.Contains(t, sent[0].Messages[0].Content, "compare mutexes and channels")
	assert.NotContains(t, sent[0].Messages[0].Content, "CONVERSATION HISTORY")
	require.NotNil(t, sent[0].Temperature)
	assert.InDelta(t, 0.5, *sent[0].Temperature, 1e-9)
}

func TestChatPersistsTimestampedTurns(t *testing.T) {
	k, _ := newTestKernel(t)
	ctx := context.Background()

	result, err := k.Chat(ctx, &ChatRequest{Prompt: "hello"})
	require.NoError(t, err)
	require.NotNil(t, result.ContinuationOffer)

	thread, err := k.Store().Load(ctx, result.ContinuationOffer.ThreadID)
	require.NoError(t, err)
	require.Len(t, thread.Turns, 2)

	for i, turn := range thread.Turns {
		assert.False(t, turn.At.IsZero(), "turn %d has zero timestamp", i)
	}
}

func TestChatEmptyPromptRejected(t *testing.T) {
	k, fake := newTestKernel(t)

	_, err := k.Chat(context.Background(), &ChatRequest{Prompt: "   "})
	assert.True(t, provider.IsKind(err, provider.KindInvalidRequest))
	assert.Empty(t, fake.sent())
}

func TestPromptSizeGate(t *testing.T) {
	k, fake := newTestKernel(t)

	result, err := k.Chat(context.Background(), &ChatRequest{Prompt: strings.Repeat("x", 3000)})
	require.NoError(t, err)

	assert.Equal(t, StatusClarificationRequested, result.Status)
	assert.Contains(t, result.Content, "files parameter")
	assert.Empty(t, fake.sent(), "an oversized prompt must not reach the provider")
}

func TestContinuationCarriesHistory(t *testing.T) {
	k, fake := newTestKernel(t)
	ctx := context.Background()

	first, err := k.Chat(ctx, &ChatRequest{Prompt: "what is a goroutine leak"})
	require.NoError(t, err)

	second, err := k.Chat(ctx, &ChatRequest{
		CommonRequest: CommonRequest{ContinuationID: first.ContinuationOffer.ThreadID},
		Prompt:        "how do I detect one",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ContinuationOffer.ThreadID, second.ContinuationOffer.ThreadID)

	sent := fake.sent()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[1].Messages[0].Content, "=== CONVERSATION HISTORY ===")
	assert.Contains(t, sent[1].Messages[0].Content, "what is a goroutine leak")
	assert.Contains(t, sent[1].Messages[0].Content, "answer from quill-large")

	thread, err := k.Store().Load(ctx, second.ContinuationOffer.ThreadID)
	require.NoError(t, err)
	assert.Equal(t, 4, thread.TotalTurns())
}

func TestContinuationUnknownThread(t *testing.T) {
	k, _ := newTestKernel(t)

	_, err := k.Chat(context.Background(), &ChatRequest{
		CommonRequest: CommonRequest{ContinuationID: "b2b9e1f0-0000-0000-0000-000000000000"},
		Prompt:        "hello again",
	})
	assert.True(t, provider.IsKind(err, provider.KindThreadNotFound))
}

func TestSentinelResponseNotPersisted(t *testing.T) {
	k, fake := newTestKernel(t)
	fake.generate = func(_ context.Context, req *llm.Request) (*llm.Response, error) {
		return &llm.Response{
			Content: `{"status": "files_required_to_continue", "files_needed": ["internal/server/server.go"]}`,
			Model:   req.Model,
		}, nil
	}

	result, err := k.Chat(context.Background(), &ChatRequest{Prompt: "review the server"})
	require.NoError(t, err)

	assert.Equal(t, StatusFilesRequired, result.Status)
	assert.Equal(t, "json", result.ContentType)
	assert.Nil(t, result.ContinuationOffer, "a clarification round must not open a thread")
}

func TestProseMentioningStatusIsNotSentinel(t *testing.T) {
	k, fake := newTestKernel(t)
	fake.generate = func(_ context.Context, req *llm.Request) (*llm.Response, error) {
		return &llm.Response{
			Content: `The tool may reply with {"status": "files_required_to_continue"} when context is missing.`,
			Model:   req.Model,
		}, nil
	}

	result, err := k.Chat(context.Background(), &ChatRequest{Prompt: "explain the protocol"})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	assert.NotNil(t, result.ContinuationOffer)
}

func TestFilesRenderedWithFences(t *testing.T) {
	k, fake := newTestKernel(t)

	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0o600))

	_, err := k.Analyze(context.Background(), &AnalyzeRequest{
		CommonRequest: CommonRequest{Files: []string{path}},
		Prompt:        "what does this do",
	})
	require.NoError(t, err)

	sent := fake.sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Messages[0].Content, "--- BEGIN FILE: "+path+" ---")
	assert.Contains(t, sent[0].Messages[0].Content, "--- END FILE: "+path+" ---")
	assert.Contains(t, sent[0].Messages[0].Content, "package main")
}

func TestRelativeFilePathRejected(t *testing.T) {
	k, _ := newTestKernel(t)

	_, err := k.Analyze(context.Background(), &AnalyzeRequest{
		CommonRequest: CommonRequest{Files: []string{"relative/main.go"}},
		Prompt:        "what does this do",
	})
	assert.True(t, provider.IsKind(err, provider.KindInvalidRequest))
}

func TestImagesOnTextModelRejected(t *testing.T) {
	k, fake := newTestKernel(t)

	_, err := k.Chat(context.Background(), &ChatRequest{
		CommonRequest: CommonRequest{
			Model:  "quill-large",
			Images: []string{pngDataURL(16)},
		},
		Prompt: "describe this",
	})
	assert.True(t, provider.IsKind(err, provider.KindVisionUnsupported))
	assert.Empty(t, fake.sent())
}

func TestImageTotalSizeBoundary(t *testing.T) {
	k, fake := newTestKernel(t)
	ctx := context.Background()

	// Exactly at the limit passes.
	result, err := k.Seer(ctx, &SeerRequest{
		CommonRequest: CommonRequest{
			Model:  "quill-vision",
			Images: []string{pngDataURL(1024)},
		},
		Prompt: "what is pictured",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.Status)

	sent := fake.sent()
	require.Len(t, sent, 1)
	require.Len(t, sent[0].Messages[0].Images, 1)
	assert.Equal(t, "image/png", sent[0].Messages[0].Images[0].MIMEType)

	// One byte over fails with the size kind.
	_, err = k.Seer(ctx, &SeerRequest{
		CommonRequest: CommonRequest{
			Model:  "quill-vision",
			Images: []string{pngDataURL(1025)},
		},
		Prompt: "what is pictured",
	})
	assert.True(t, provider.IsKind(err, provider.KindImagesTooLarge))
}

func TestUnsupportedImageFormatRejected(t *testing.T) {
	k, _ := newTestKernel(t)

	gif := "data:image/gif;base64," + base64.StdEncoding.EncodeToString(make([]byte, 8))

	_, err := k.Seer(context.Background(), &SeerRequest{
		CommonRequest: CommonRequest{
			Model:  "quill-vision",
			Images: []string{gif},
		},
		Prompt: "what is pictured",
	})
	assert.True(t, provider.IsKind(err, provider.KindImagesTooLarge))
}

func TestTemperatureCorrectedToPolicy(t *testing.T) {
	k, fake := newTestKernel(t)

	temp := 0.5

	_, err := k.Chat(context.Background(), &ChatRequest{
		CommonRequest: CommonRequest{Model: "quill-pinned", Temperature: &temp},
		Prompt:        "hello",
	})
	require.NoError(t, err)

	sent := fake.sent()
	require.Len(t, sent, 1)
	require.NotNil(t, sent[0].Temperature)
	assert.InDelta(t, 0.1, *sent[0].Temperature, 1e-9)
}

func TestThinkingModeDefaultApplied(t *testing.T) {
	k, fake := newTestKernel(t)

	_, err := k.ThinkDeep(context.Background(), &ThinkDeepRequest{
		CommonRequest: CommonRequest{Model: "quill-think"},
		Prompt:        "why does the scheduler starve this goroutine",
	})
	require.NoError(t, err)

	sent := fake.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "medium", sent[0].ThinkingMode)
}

func TestThinkingModeSkippedForPlainModel(t *testing.T) {
	k, fake := newTestKernel(t)

	_, err := k.Chat(context.Background(), &ChatRequest{Prompt: "hello"})
	require.NoError(t, err)

	sent := fake.sent()
	require.Len(t, sent, 1)
	assert.Empty(t, sent[0].ThinkingMode)
}

func TestToolInputValidation(t *testing.T) {
	k, _ := newTestKernel(t)
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
	}{
		{"codereview without files", func() error {
			_, err := k.CodeReview(ctx, &CodeReviewRequest{Prompt: "review"})
			return err
		}},
		{"codereview bad review type", func() error {
			_, err := k.CodeReview(ctx, &CodeReviewRequest{
				CommonRequest: CommonRequest{Files: []string{"/tmp/a.go"}},
				Prompt:        "review",
				ReviewType:    "thorough",
			})
			return err
		}},
		{"analyze without files", func() error {
			_, err := k.Analyze(ctx, &AnalyzeRequest{Prompt: "analyze"})
			return err
		}},
		{"precommit without files", func() error {
			_, err := k.Precommit(ctx, &PrecommitRequest{Prompt: "validate"})
			return err
		}},
		{"testgen without files", func() error {
			_, err := k.TestGen(ctx, &TestGenRequest{Prompt: "cover the parser"})
			return err
		}},
		{"refactor bad type", func() error {
			_, err := k.Refactor(ctx, &RefactorRequest{
				CommonRequest: CommonRequest{Files: []string{"/tmp/a.go"}},
				Prompt:        "improve",
				RefactorType:  "rewrite",
			})
			return err
		}},
		{"tracer bad mode", func() error {
			_, err := k.Tracer(ctx, &TracerRequest{
				CommonRequest: CommonRequest{Files: []string{"/tmp/a.go"}},
				Prompt:        "trace main",
				TraceMode:     "everything",
			})
			return err
		}},
		{"seer without images", func() error {
			_, err := k.Seer(ctx, &SeerRequest{Prompt: "look"})
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, provider.IsKind(tc.call(), provider.KindInvalidRequest))
		})
	}
}
