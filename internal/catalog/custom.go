package catalog

// CustomEntry declares capabilities for a model served by an arbitrary
// OpenAI-compatible endpoint. Local inference servers expose no capability
// discovery, so the entry is conservative: generous context, no vision, full
// temperature range.
func CustomEntry(name string) ModelCapabilities {
	return ModelCapabilities{
		Provider:             ProviderCustom,
		CanonicalName:        name,
		FriendlyName:         name + " (custom)",
		ContextTokens:        131_072,
		Category:             CategoryBalanced,
		SupportsSystemPrompt: true,
		SupportsTemperature:  true,
		Temperature:          RangePolicy(0, 2),
	}
}
