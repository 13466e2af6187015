package conf

import "errors"

var (
	errNoProviders = errors.New("no provider is configured: set at least one of GEMINI_API_KEY, OPENAI_API_KEY, OPENROUTER_API_KEY or CUSTOM_API_URL")
	errBadTTL      = errors.New("conversation ttl must be a positive number of hours")
	errBadMaxTurns = errors.New("max conversation turns must be at least 2")
)
