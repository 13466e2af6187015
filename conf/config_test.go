package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.DefaultModel)
	assert.Equal(t, "high", cfg.DefaultThinkingMode)
	assert.Equal(t, 3, cfg.Conversation.TTLHours)
	assert.Equal(t, 20, cfg.Conversation.MaxTurns)
	assert.Equal(t, 50000, cfg.PromptSizeLimit)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.True(t, cfg.OpenAI.Configured())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("DEFAULT_MODEL", "gemini-2.5-pro")
	t.Setenv("DEFAULT_THINKING_MODE_THINKDEEP", "low")
	t.Setenv("CONVERSATION_TIMEOUT_HOURS", "6")
	t.Setenv("MAX_CONVERSATION_TURNS", "10")
	t.Setenv("MCP_PROMPT_SIZE_LIMIT", "1000")
	t.Setenv("GOOGLE_ALLOWED_MODELS", "gemini-2.5-pro,gemini-2.5-flash")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-pro", cfg.DefaultModel)
	assert.Equal(t, "low", cfg.DefaultThinkingMode)
	assert.Equal(t, 6, cfg.Conversation.TTLHours)
	assert.Equal(t, 10, cfg.Conversation.MaxTurns)
	assert.Equal(t, 1000, cfg.PromptSizeLimit)
	assert.Equal(t, "gemini-2.5-pro,gemini-2.5-flash", cfg.Gemini.AllowedModels)
}

func TestLoad_UnknownThinkingModeFallsBack(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DEFAULT_THINKING_MODE_THINKDEEP", "turbo")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "high", cfg.DefaultThinkingMode)
}

func TestScrubKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"real key", "sk-abc123", "sk-abc123"},
		{"blank", "   ", ""},
		{"placeholder", "your_openai_api_key_here", ""},
		{"placeholder mixed case", "YOUR_GEMINI_API_KEY_HERE", ""},
		{"leading whitespace", "  sk-abc  ", "sk-abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scrubKey(tt.in))
		})
	}
}

func TestValidate_NoProviders(t *testing.T) {
	cfg := Config{
		Conversation: ConversationConfig{TTLHours: 3, MaxTurns: 20},
	}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no provider is configured")
}

func TestValidate_OK(t *testing.T) {
	cfg := Config{
		Custom:       CustomConfig{BaseURL: "http://localhost:11434/v1"},
		Conversation: ConversationConfig{TTLHours: 3, MaxTurns: 20},
	}
	require.NoError(t, Validate(cfg))
}

func TestValidate_PlaceholderKeyIsNotAProvider(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "your_openai_api_key_here")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.OpenAI.Configured())
	require.Error(t, Validate(cfg))
}
