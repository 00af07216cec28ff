package domain

import "strings"

// Provenance identifies which tier of the fallback chain supplied a resolved
// field value: the requested locale, the catalog default locale, or the raw
// career slug when no text exists anywhere.
type Provenance string

const (
	// ProvenanceRequested means the value came from the requested locale.
	ProvenanceRequested Provenance = "requested"
	// ProvenanceDefault means the value fell back to the default locale.
	ProvenanceDefault Provenance = "default"
	// ProvenanceRaw means no localized text exists; the raw slug stands in.
	ProvenanceRaw Provenance = "raw"
)

// TranslationSource records how a translation row was authored. It is an
// explicit column rather than a prefix convention embedded in the text.
type TranslationSource string

const (
	SourceHuman   TranslationSource = "human"
	SourceMachine TranslationSource = "machine"
	SourceImport  TranslationSource = "import"
)

// NormalizeTranslationSource maps free-form input onto a known source,
// defaulting to SourceImport for unknown values.
func NormalizeTranslationSource(raw string) TranslationSource {
	switch TranslationSource(strings.ToLower(strings.TrimSpace(raw))) {
	case SourceHuman:
		return SourceHuman
	case SourceMachine:
		return SourceMachine
	default:
		return SourceImport
	}
}

// TrendDirection captures the movement of a market trend score.
type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"
	TrendStable  TrendDirection = "stable"
	TrendFalling TrendDirection = "falling"
)

// CareerLevel enumerates seniority tiers used by structured filters.
type CareerLevel string

const (
	LevelEntry     CareerLevel = "entry"
	LevelMid       CareerLevel = "mid"
	LevelSenior    CareerLevel = "senior"
	LevelExecutive CareerLevel = "executive"
)

// ValidCareerLevel reports whether the value is a known seniority tier.
func ValidCareerLevel(value string) bool {
	switch CareerLevel(strings.ToLower(strings.TrimSpace(value))) {
	case LevelEntry, LevelMid, LevelSenior, LevelExecutive:
		return true
	default:
		return false
	}
}
