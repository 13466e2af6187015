package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuromux/neuromux/internal/llm"
	"github.com/neuromux/neuromux/internal/provider"
)

func TestConsensusAllModelsAnswer(t *testing.T) {
	k, fake := newTestKernel(t)

	result, err := k.Consensus(context.Background(), &ConsensusRequest{
		Prompt: "should we shard the cache",
		Models: []string{"quill-large", "quill-mini"},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Contains(t, result.Content, "## quill-large (Quill)")
	assert.Contains(t, result.Content, "## quill-mini (Quill)")
	assert.Contains(t, result.Content, "answer from quill-large")
	assert.Contains(t, result.Content, "answer from quill-mini")
	assert.Equal(t, 2, result.Metadata["models_consulted"])
	assert.Equal(t, 2, result.Metadata["models_succeeded"])
	assert.NotNil(t, result.ContinuationOffer)

	assert.Len(t, fake.sent(), 2)
}

func TestConsensusAliasResolvesToCanonical(t *testing.T) {
	k, _ := newTestKernel(t)

	result, err := k.Consensus(context.Background(), &ConsensusRequest{
		Prompt: "pick a serialization format",
		Models: []string{"quill", "quill-mini"},
	})
	require.NoError(t, err)
	assert.Contains(t, result.Content, "## quill-large (Quill)")
}

func TestConsensusPartialFailureStillReports(t *testing.T) {
	k, fake := newTestKernel(t)
	fake.generate = func(_ context.Context, req *llm.Request) (*llm.Response, error) {
		if req.Model == "quill-mini" {
			return nil, provider.NewError(provider.KindRateLimited, "slow down").WithProvider("custom")
		}

		return &llm.Response{Content: "answer from " + req.Model, Model: req.Model}, nil
	}

	result, err := k.Consensus(context.Background(), &ConsensusRequest{
		Prompt: "should we shard the cache",
		Models: []string{"quill-large", "quill-mini"},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, 1, result.Metadata["models_succeeded"])
	assert.Contains(t, result.Content, "answer from quill-large")
	assert.Contains(t, result.Content, "could not be consulted")
}

func TestConsensusAllFailuresIsAnError(t *testing.T) {
	k, fake := newTestKernel(t)
	fake.generate = func(_ context.Context, _ *llm.Request) (*llm.Response, error) {
		return nil, provider.NewError(provider.KindProviderInternal, "upstream down")
	}

	_, err := k.Consensus(context.Background(), &ConsensusRequest{
		Prompt: "should we shard the cache",
		Models: []string{"quill-large", "quill-mini"},
	})
	assert.True(t, provider.IsKind(err, provider.KindProviderInternal))
}

func TestConsensusInputValidation(t *testing.T) {
	k, _ := newTestKernel(t)
	ctx := context.Background()

	_, err := k.Consensus(ctx, &ConsensusRequest{Prompt: "q", Models: []string{"quill-large"}})
	assert.True(t, provider.IsKind(err, provider.KindInvalidRequest))

	// Duplicates collapse before the minimum is checked.
	_, err = k.Consensus(ctx, &ConsensusRequest{Prompt: "q", Models: []string{"quill-large", "quill-large"}})
	assert.True(t, provider.IsKind(err, provider.KindInvalidRequest))

	_, err = k.Consensus(ctx, &ConsensusRequest{Prompt: "q", Models: []string{"quill-large", "no-such-model"}})
	assert.True(t, provider.IsKind(err, provider.KindModelNotFound))

	_, err = k.Consensus(ctx, &ConsensusRequest{Models: []string{"quill-large", "quill-mini"}})
	assert.True(t, provider.IsKind(err, provider.KindInvalidRequest))
}

func TestConsensusContinuation(t *testing.T) {
	k, _ := newTestKernel(t)
	ctx := context.Background()

	first, err := k.Consensus(ctx, &ConsensusRequest{
		Prompt: "should we shard the cache",
		Models: []string{"quill-large", "quill-mini"},
	})
	require.NoError(t, err)

	followUp, err := k.Chat(ctx, &ChatRequest{
		CommonRequest: CommonRequest{ContinuationID: first.ContinuationOffer.ThreadID},
		Prompt:        "summarize the disagreement",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ContinuationOffer.ThreadID, followUp.ContinuationOffer.ThreadID)
}
