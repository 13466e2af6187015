// Package conf loads the process configuration from the environment.
package conf

import (
	"context"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/neuromux/neuromux/internal/log"
)

// ThinkingModes are the recognized extended-thinking levels, weakest first.
var ThinkingModes = []string{"minimal", "low", "medium", "high", "max"}

const (
	DefaultModel           = "auto"
	DefaultThinkingMode    = "high"
	DefaultTTLHours        = 3
	DefaultMaxTurns        = 20
	DefaultPromptSizeLimit = 50000
	DefaultConcurrency     = 8
)

// ProviderConfig holds the credential and restriction list for one provider.
type ProviderConfig struct {
	APIKey        string `yaml:"api_key" json:"-"`
	AllowedModels string `yaml:"allowed_models" json:"allowed_models"`
}

// Configured reports whether a usable credential is present.
func (p ProviderConfig) Configured() bool {
	return p.APIKey != ""
}

// CustomConfig targets an arbitrary OpenAI-compatible endpoint, typically a
// local inference server. The key is optional because local servers often
// accept unauthenticated requests.
type CustomConfig struct {
	BaseURL   string `yaml:"base_url" json:"base_url"`
	APIKey    string `yaml:"api_key" json:"-"`
	ModelName string `yaml:"model_name" json:"model_name"`
}

func (c CustomConfig) Configured() bool {
	return c.BaseURL != ""
}

// ConversationConfig bounds the threading layer.
type ConversationConfig struct {
	TTLHours int `yaml:"ttl_hours" json:"ttl_hours"`
	MaxTurns int `yaml:"max_turns" json:"max_turns"`
}

// Config is the full process configuration.
type Config struct {
	DefaultModel        string `yaml:"default_model" json:"default_model"`
	DefaultVisionModel  string `yaml:"default_vision_model" json:"default_vision_model"`
	DefaultThinkingMode string `yaml:"default_thinking_mode" json:"default_thinking_mode"`

	Gemini     ProviderConfig `yaml:"gemini" json:"gemini"`
	OpenAI     ProviderConfig `yaml:"openai" json:"openai"`
	OpenRouter ProviderConfig `yaml:"openrouter" json:"openrouter"`
	Custom     CustomConfig   `yaml:"custom" json:"custom"`

	Conversation    ConversationConfig `yaml:"conversation" json:"conversation"`
	PromptSizeLimit int                `yaml:"prompt_size_limit" json:"prompt_size_limit"`
	MaxConcurrency  int                `yaml:"max_concurrency" json:"max_concurrency"`

	RedisURL string `yaml:"redis_url" json:"redis_url"`

	Log log.Config `yaml:"log" json:"log"`
}

var envBindings = map[string]string{
	"default_model":             "DEFAULT_MODEL",
	"default_vision_model":      "DEFAULT_VISION_MODEL",
	"default_thinking_mode":     "DEFAULT_THINKING_MODE_THINKDEEP",
	"gemini.api_key":            "GEMINI_API_KEY",
	"gemini.allowed_models":     "GOOGLE_ALLOWED_MODELS",
	"openai.api_key":            "OPENAI_API_KEY",
	"openai.allowed_models":     "OPENAI_ALLOWED_MODELS",
	"openrouter.api_key":        "OPENROUTER_API_KEY",
	"openrouter.allowed_models": "OPENROUTER_ALLOWED_MODELS",
	"custom.base_url":           "CUSTOM_API_URL",
	"custom.api_key":            "CUSTOM_API_KEY",
	"custom.model_name":         "CUSTOM_MODEL_NAME",
	"conversation.ttl_hours":    "CONVERSATION_TIMEOUT_HOURS",
	"conversation.max_turns":    "MAX_CONVERSATION_TURNS",
	"prompt_size_limit":         "MCP_PROMPT_SIZE_LIMIT",
	"max_concurrency":           "MAX_CONCURRENT_REQUESTS",
	"redis_url":                 "REDIS_URL",
	"log.level":                 "LOG_LEVEL",
	"log.file.path":             "LOG_FILE",
}

// Load reads the configuration from the environment and normalizes it.
func Load() (Config, error) {
	v := viper.New()
	for key, env := range envBindings {
		// BindEnv only fails on zero arguments.
		_ = v.BindEnv(key, env)
	}

	cfg := Config{
		DefaultModel:        orDefault(v.GetString("default_model"), DefaultModel),
		DefaultVisionModel:  v.GetString("default_vision_model"),
		DefaultThinkingMode: orDefault(v.GetString("default_thinking_mode"), DefaultThinkingMode),
		Gemini: ProviderConfig{
			APIKey:        scrubKey(v.GetString("gemini.api_key")),
			AllowedModels: v.GetString("gemini.allowed_models"),
		},
		OpenAI: ProviderConfig{
			APIKey:        scrubKey(v.GetString("openai.api_key")),
			AllowedModels: v.GetString("openai.allowed_models"),
		},
		OpenRouter: ProviderConfig{
			APIKey:        scrubKey(v.GetString("openrouter.api_key")),
			AllowedModels: v.GetString("openrouter.allowed_models"),
		},
		Custom: CustomConfig{
			BaseURL:   strings.TrimSpace(v.GetString("custom.base_url")),
			APIKey:    scrubKey(v.GetString("custom.api_key")),
			ModelName: strings.TrimSpace(v.GetString("custom.model_name")),
		},
		Conversation: ConversationConfig{
			TTLHours: positiveOr(cast.ToInt(v.Get("conversation.ttl_hours")), DefaultTTLHours),
			MaxTurns: positiveOr(cast.ToInt(v.Get("conversation.max_turns")), DefaultMaxTurns),
		},
		PromptSizeLimit: positiveOr(cast.ToInt(v.Get("prompt_size_limit")), DefaultPromptSizeLimit),
		MaxConcurrency:  positiveOr(cast.ToInt(v.Get("max_concurrency")), DefaultConcurrency),
		RedisURL:        strings.TrimSpace(v.GetString("redis_url")),
		Log: log.Config{
			Level: v.GetString("log.level"),
			Name:  "neuromux",
			File:  log.FileConfig{Path: v.GetString("log.file.path")},
		},
	}

	cfg.DefaultThinkingMode = normalizeThinkingMode(cfg.DefaultThinkingMode)

	return cfg, nil
}

// Validate returns every configuration problem at once.
func Validate(cfg Config) error {
	var result *multierror.Error

	if !cfg.Gemini.Configured() && !cfg.OpenAI.Configured() &&
		!cfg.OpenRouter.Configured() && !cfg.Custom.Configured() {
		result = multierror.Append(result, errNoProviders)
	}

	if cfg.Conversation.TTLHours <= 0 {
		result = multierror.Append(result, errBadTTL)
	}

	if cfg.Conversation.MaxTurns < 2 {
		result = multierror.Append(result, errBadMaxTurns)
	}

	return result.ErrorOrNil()
}

// scrubKey treats blanks and documented placeholder values as absent so that a
// copied sample env file does not masquerade as a configured provider.
func scrubKey(key string) string {
	key = strings.TrimSpace(key)
	lower := strings.ToLower(key)

	if strings.HasPrefix(lower, "your_") && strings.HasSuffix(lower, "_here") {
		return ""
	}

	return key
}

func normalizeThinkingMode(mode string) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	for _, m := range ThinkingModes {
		if m == mode {
			return mode
		}
	}

	log.Warn(context.Background(), "unknown thinking mode, falling back to default",
		log.String("mode", mode), log.String("default", DefaultThinkingMode))

	return DefaultThinkingMode
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}

	return strings.TrimSpace(s)
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}

	return v
}
