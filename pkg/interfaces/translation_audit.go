package interfaces

// TranslationAuditOptions configures translation completeness checks.
type TranslationAuditOptions struct {
	// RequiredFields maps a locale code to the translation fields that must
	// carry a non-empty value for the locale to count as complete. When a
	// locale has no entry, presence of the translation row is sufficient.
	RequiredFields map[string][]string

	// IncludeTrendInsights extends the audit to localized trend narratives.
	IncludeTrendInsights bool
}

// TranslationGap describes a career missing coverage for one locale.
type TranslationGap struct {
	Slug           string   `json:"slug"`
	Locale         string   `json:"locale"`
	MissingFields  []string `json:"missing_fields,omitempty"`
	MissingInsight bool     `json:"missing_insight,omitempty"`
}
