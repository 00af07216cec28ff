package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

func CareerUUID(slug string) uuid.UUID {
	return UUID("go-catalog:career:" + strings.ToLower(strings.TrimSpace(slug)))
}

func LocaleUUID(localeCode string) uuid.UUID {
	return UUID("go-catalog:locale:" + strings.ToLower(strings.TrimSpace(localeCode)))
}

func TranslationUUID(careerID uuid.UUID, localeID uuid.UUID) uuid.UUID {
	return UUID("go-catalog:career_translation:" + careerID.String() + ":" + localeID.String())
}

func TrendUUID(careerID uuid.UUID) uuid.UUID {
	return UUID("go-catalog:trend:" + careerID.String())
}

func TrendInsightUUID(trendID uuid.UUID, localeID uuid.UUID) uuid.UUID {
	return UUID("go-catalog:trend_insight:" + trendID.String() + ":" + localeID.String())
}
