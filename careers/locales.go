package careers

import "strings"

// DefaultLocaleCode is the terminal locale of the fallback chain. Every
// career with any localized content is expected to have full coverage here.
const DefaultLocaleCode = "en"

// SupportedLocaleCodes is the closed set of catalog languages (ISO 639-1).
var SupportedLocaleCodes = []string{
	"en", "es", "fr", "de", "pt", "it", "ja", "ko", "zh", "ru", "ar",
}

var supportedLocaleIndex = func() map[string]struct{} {
	index := make(map[string]struct{}, len(SupportedLocaleCodes))
	for _, code := range SupportedLocaleCodes {
		index[code] = struct{}{}
	}
	return index
}()

// IsSupportedLocale reports whether code belongs to the closed locale set.
// Unsupported codes are not an error anywhere in the catalog; they simply
// degrade to the default locale during resolution.
func IsSupportedLocale(code string) bool {
	_, ok := supportedLocaleIndex[NormalizeLocaleCode(code)]
	return ok
}

// NormalizeLocaleCode lower-cases and trims a locale code.
func NormalizeLocaleCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// LocaleDisplayNames maps supported codes to their English display names,
// used when seeding locale rows.
var LocaleDisplayNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"pt": "Portuguese",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"ru": "Russian",
	"ar": "Arabic",
}
