package catalog

// openaiModels are the native OpenAI API entries. Reasoning models carry a
// fixed temperature policy: the API rejects the parameter, so it is dropped
// from the wire request.
var openaiModels = []ModelCapabilities{
	{
		Provider:              ProviderOpenAI,
		CanonicalName:         "gpt-4o",
		FriendlyName:          "GPT-4o",
		Aliases:               []string{"4o", "gpt4o"},
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
		Provider:              ProviderOpenAI,
		CanonicalName:         "gpt-4.1",
		FriendlyName:          "GPT-4.1",
		Aliases:               []string{"4.1", "gpt4.1"},
		ContextTokens:         1_047_576,
		Category:              CategoryBalanced,
		SupportsImages:        true,
		MaxImageBytes:         20 * mb,
		SupportedImageFormats: visionFormats,
		SupportsSystemPrompt:  true,
		SupportsTemperature:   true,
		Temperature:           RangePolicy(0, 2),
	},
	{
		Provider:             ProviderOpenAI,
		CanonicalName:        "o3",
		FriendlyName:         "O3",
		ContextTokens:        200_000,
		Category:             CategoryExtendedReasoning,
		SupportsSystemPrompt: true,
		Temperature:          FixedPolicy(1),
	},
	{
		Provider:             ProviderOpenAI,
		CanonicalName:        "o3-mini",
		FriendlyName:         "O3 Mini",
		Aliases:              []string{"mini", "o3mini"},
		ContextTokens:        200_000,
		Category:             CategoryReasoning,
		SupportsSystemPrompt: true,
		Temperature:          FixedPolicy(1),
	},
	{
		Provider:             ProviderOpenAI,
		CanonicalName:        "o4-mini",
		FriendlyName:         "O4 Mini",
		Aliases:              []string{"o4mini"},
		ContextTokens:        200_000,
		Category:             CategoryReasoning,
		SupportsSystemPrompt: true,
		Temperature:          FixedPolicy(1),
	},
}
