package catalog

const mb = 1 << 20

// googleModels are the native Gemini API entries.
// Reference: https://ai.google.dev/gemini-api/docs/models
var googleModels = []ModelCapabilities{
	{
		Provider:                 ProviderGoogle,
		CanonicalName:            "gemini-2.5-pro",
		FriendlyName:             "Gemini 2.5 Pro",
		Aliases:                  []string{"pro", "gemini-pro", "gemini pro"},
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
		Provider:                 ProviderGoogle,
		CanonicalName:            "gemini-2.5-flash",
		FriendlyName:             "Gemini 2.5 Flash",
		Aliases:                  []string{"flash", "gemini-flash", "flash-2.5"},
		ContextTokens:            1_048_576,
		Category:                 CategoryFast,
		SupportsImages:           true,
		MaxImageBytes:            20 * mb,
		SupportedImageFormats:    visionFormats,
		SupportsExtendedThinking: true,
		SupportsSystemPrompt:     true,
		SupportsTemperature:      true,
		Temperature:              RangePolicy(0, 2),
	},
	{
		Provider:             ProviderGoogle,
		CanonicalName:        "gemini-2.0-flash-lite",
		FriendlyName:         "Gemini 2.0 Flash Lite",
		Aliases:              []string{"flash-lite", "flashlite"},
		ContextTokens:        1_048_576,
		Category:             CategoryFast,
		SupportsSystemPrompt: true,
		SupportsTemperature:  true,
		Temperature:          RangePolicy(0, 2),
	},
}
