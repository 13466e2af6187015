package openrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuromux/neuromux/internal/llm"
	"github.com/neuromux/neuromux/internal/pkg/httpclient"
	"github.com/neuromux/neuromux/internal/provider/openai"
)

func TestGenerate_OwnerModelNamesAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "neuromux", r.Header.Get("X-Title"))

		_, _ = w.Write([]byte(`{
			"model": "anthropic/claude-sonnet-4",
			"choices": [{"message": {"role": "assistant", "content": "routed"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 3, "completion_tokens": 2, "total_tokens": 5}
		}`))
	}))
	defer srv.Close()

	p, err := New(Config{APIKey: "or-key", BaseURL: srv.URL}, nil,
		openai.WithHTTPClient(httpclient.NewHttpClientWithClient(srv.Client())))
	require.NoError(t, err)

	canonical, ok := p.ResolveAlias("sonnet")
	require.True(t, ok)
	assert.Equal(t, "anthropic/claude-sonnet-4", canonical)

	resp, err := p.Generate(context.Background(), &llm.Request{
		Model:    canonical,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "routed", resp.Content)
}
