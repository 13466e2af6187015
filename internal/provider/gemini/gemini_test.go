package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/neuromux/neuromux/internal/llm"
	"github.com/neuromux/neuromux/internal/provider"
	"github.com/neuromux/neuromux/internal/pkg/httpclient"
)

const responseBody = `{
	"candidates": [{
		"content": {"role": "model", "parts": [{"text": "hello "}, {"text": "world"}]},
		"finishReason": "STOP"
	}],
	"usageMetadata": {"promptTokenCount": 10, "candidatesTokenCount": 4, "totalTokenCount": 14},
	"modelVersion": "gemini-2.5-pro-001"
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := New(Config{APIKey: "test-key", BaseURL: srv.URL}, nil,
		WithHTTPClient(httpclient.NewHttpClientWithClient(srv.Client())))
	require.NoError(t, err)

	return p
}

func TestGenerate_Success(t *testing.T) {
	var captured []byte

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-pro:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		captured, _ = io.ReadAll(r.Body)

		_, _ = w.Write([]byte(responseBody))
	})

	temp := 0.2
	resp, err := p.Generate(context.Background(), &llm.Request{
		Model:           "gemini-2.5-pro",
		SystemPrompt:    "be brief",
		Messages:        []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
		Temperature:     &temp,
		MaxOutputTokens: 2048,
		ThinkingMode:    "high",
	})
	require.NoError(t, err)

	assert.Equal(t, "hello world", resp.Content)
	assert.Equal(t, "gemini-2.5-pro-001", resp.Model)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 4, resp.Usage.OutputTokens)

	assert.Equal(t, "be brief", gjson.GetBytes(captured, "systemInstruction.parts.0.text").String())
	assert.Equal(t, "user", gjson.GetBytes(captured, "contents.0.role").String())
	assert.Equal(t, 0.2, gjson.GetBytes(captured, "generationConfig.temperature").Float())
	assert.Equal(t, int64(2048), gjson.GetBytes(captured, "generationConfig.maxOutputTokens").Int())
	assert.Equal(t, int64(21954), gjson.GetBytes(captured, "generationConfig.thinkingConfig.thinkingBudget").Int())
}

func TestGenerate_AssistantRoleMapsToModel(t *testing.T) {
	var captured []byte

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(responseBody))
	})

	_, err := p.Generate(context.Background(), &llm.Request{
		Model: "flash",
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "hi"},
			{Role: llm.RoleAssistant, Content: "hello"},
			{Role: llm.RoleUser, Content: "continue"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "model", gjson.GetBytes(captured, "contents.1.role").String())
}

func TestGenerate_NoThinkingConfigOnNonThinkingModel(t *testing.T) {
	var captured []byte

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(responseBody))
	})

	_, err := p.Generate(context.Background(), &llm.Request{
		Model:        "gemini-2.0-flash-lite",
		Messages:     []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
		ThinkingMode: "high",
	})
	require.NoError(t, err)

	assert.False(t, gjson.GetBytes(captured, "generationConfig.thinkingConfig").Exists())
}

func TestGenerate_InlineImages(t *testing.T) {
	var captured []byte

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(responseBody))
	})

	_, err := p.Generate(context.Background(), &llm.Request{
		Model: "pro",
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: "what is this",
			Images:  []llm.Image{{MIMEType: "image/png", Data: "aGVsbG8="}},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "image/png", gjson.GetBytes(captured, "contents.0.parts.1.inlineData.mimeType").String())
	assert.Equal(t, "aGVsbG8=", gjson.GetBytes(captured, "contents.0.parts.1.inlineData.data").String())
}

func TestGenerate_AuthErrorMapping(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	})

	_, err := p.Generate(context.Background(), &llm.Request{
		Model:    "pro",
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
	})
	require.Error(t, err)
	assert.True(t, provider.IsKind(err, provider.KindAuthError))
	assert.NotContains(t, err.Error(), "test-key")
}

func TestThinkingBudget(t *testing.T) {
	assert.Equal(t, 163, ThinkingBudget("minimal"))
	assert.Equal(t, 2621, ThinkingBudget("low"))
	assert.Equal(t, 10813, ThinkingBudget("medium"))
	assert.Equal(t, 21954, ThinkingBudget("high"))
	assert.Equal(t, 32768, ThinkingBudget("max"))
	assert.Equal(t, 0, ThinkingBudget(""))
	assert.Equal(t, 0, ThinkingBudget("warp"))
}
