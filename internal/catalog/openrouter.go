package catalog

// openRouterModels are the aggregator entries. Canonical names use the
// owner/model convention OpenRouter expects on the wire. The table is the
// curated subset the server is willing to route to, not the full marketplace.
var openRouterModels = []ModelCapabilities{
	{
		Provider:              ProviderOpenRouter,
		CanonicalName:         "openai/gpt-4o",
		FriendlyName:          "GPT-4o (OpenRouter)",
		ContextTokens:         128_000,
		Category:              CategoryBalanced,
		SupportsImages:        true,
		MaxImageBytes:         20 * mb,
		SupportedImageFormats: visionFormats,
		SupportsSystemPrompt:  true,
		SupportsTemperature:   true,
		Temperature:           RangePolicy(0, 2),
	},
	{
		Provider:              ProviderOpenRouter,
		CanonicalName:         "anthropic/claude-sonnet-4",
		FriendlyName:          "Claude Sonnet 4",
		Aliases:               []string{"sonnet", "claude-sonnet"},
		ContextTokens:         200_000,
		Category:              CategoryBalanced,
		SupportsImages:        true,
		MaxImageBytes:         5 * mb,
		SupportedImageFormats: []string{"png", "jpeg", "gif", "webp"},
		SupportsSystemPrompt:  true,
		SupportsTemperature:   true,
		Temperature:           RangePolicy(0, 1),
	},
	{
		Provider:                 ProviderOpenRouter,
		CanonicalName:            "anthropic/claude-opus-4",
		FriendlyName:             "Claude Opus 4",
		Aliases:                  []string{"opus", "claude-opus"},
		ContextTokens:            200_000,
		Category:                 CategoryExtendedReasoning,
		SupportsImages:           true,
		MaxImageBytes:            5 * mb,
		SupportedImageFormats:    []string{"png", "jpeg", "gif", "webp"},
		SupportsExtendedThinking: true,
		SupportsSystemPrompt:     true,
		SupportsTemperature:      true,
		Temperature:              RangePolicy(0, 1),
	},
	{
		Provider:                 ProviderOpenRouter,
		CanonicalName:            "google/gemini-2.5-pro",
		FriendlyName:             "Gemini 2.5 Pro (OpenRouter)",
		ContextTokens:            1_048_576,
		Category:                 CategoryExtendedReasoning,
		SupportsImages:           true,
		MaxImageBytes:            20 * mb,
		SupportedImageFormats:    visionFormats,
		SupportsExtendedThinking: true,
		SupportsSystemPrompt:     true,
		SupportsTemperature:      true,
		Temperature:              RangePolicy(0, 2),
	},
	{
		Provider:              ProviderOpenRouter,
		CanonicalName:         "google/gemini-2.5-flash",
		FriendlyName:          "Gemini 2.5 Flash (OpenRouter)",
		ContextTokens:         1_048_576,
		Category:              CategoryFast,
		SupportsImages:        true,
		MaxImageBytes:         20 * mb,
		SupportedImageFormats: visionFormats,
		SupportsSystemPrompt:  true,
		SupportsTemperature:   true,
		Temperature:           RangePolicy(0, 2),
	},
	{
		Provider:             ProviderOpenRouter,
		CanonicalName:        "deepseek/deepseek-r1",
		FriendlyName:         "DeepSeek R1",
		Aliases:              []string{"r1", "deepseek"},
		ContextTokens:        65_536,
		Category:             CategoryReasoning,
		SupportsSystemPrompt: true,
		SupportsTemperature:  true,
		Temperature:          RangePolicy(0, 2),
	},
	{
		Provider:             ProviderOpenRouter,
		CanonicalName:        "mistralai/mistral-large",
		FriendlyName:         "Mistral Large",
		Aliases:              []string{"mistral"},
		ContextTokens:        128_000,
		Category:             CategoryBalanced,
		SupportsSystemPrompt: true,
		SupportsTemperature:  true,
		Temperature:          RangePolicy(0, 1),
	},
	{
		Provider:             ProviderOpenRouter,
		CanonicalName:        "meta-llama/llama-3.3-70b-instruct",
		FriendlyName:         "Llama 3.3 70B",
		Aliases:              []string{"llama", "llama3"},
		ContextTokens:        131_072,
		Category:             CategoryFast,
		SupportsSystemPrompt: true,
		SupportsTemperature:  true,
		Temperature:          RangePolicy(0, 2),
	},
}
