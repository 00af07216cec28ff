package careers

import (
	"context"
	"sort"
	"strings"

	catalogcareers "github.com/goliatone/go-catalog/careers"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	"github.com/google/uuid"
)

// AuditTranslations walks the catalog and reports, for each career, the
// locales in required that lack a translation row or leave a required
// field empty. Results are ordered by slug then locale so scheduled runs
// produce stable reports.
func (s *service) AuditTranslations(ctx context.Context, required []string, opts interfaces.TranslationAuditOptions) ([]interfaces.TranslationGap, error) {
	locales := normalizeAuditLocales(required)
	if len(locales) == 0 {
		return nil, nil
	}

	localeIDs := make(map[string]uuid.UUID, len(locales))
	for _, code := range locales {
		loc, err := s.locales.GetByCode(ctx, code)
		if err != nil {
			return nil, ErrUnknownLocale
		}
		localeIDs[code] = loc.ID
	}

	records, err := s.careers.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}

	var gaps []interfaces.TranslationGap
	for _, record := range records {
		if record == nil {
			continue
		}

		translations, err := s.careers.ListTranslations(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		byLocale := make(map[uuid.UUID]*CareerTranslation, len(translations))
		for _, tr := range translations {
			if tr != nil {
				byLocale[tr.LocaleID] = tr
			}
		}

		insightLocales, err := s.insightLocalesForCareer(ctx, record.ID, opts)
		if err != nil {
			return nil, err
		}

		for _, code := range locales {
			gap := interfaces.TranslationGap{Slug: record.Slug, Locale: code}

			tr := byLocale[localeIDs[code]]
			if tr == nil {
				gap.MissingFields = requiredFieldsForLocale(code, opts)
				if len(gap.MissingFields) == 0 {
					gap.MissingFields = []string{"title"}
				}
			} else {
				gap.MissingFields = missingTranslationFields(tr, requiredFieldsForLocale(code, opts))
			}

			if opts.IncludeTrendInsights && insightLocales != nil {
				if _, ok := insightLocales[localeIDs[code]]; !ok {
					gap.MissingInsight = true
				}
			}

			if len(gap.MissingFields) > 0 || gap.MissingInsight {
				gaps = append(gaps, gap)
			}
		}
	}

	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Slug != gaps[j].Slug {
			return gaps[i].Slug < gaps[j].Slug
		}
		return gaps[i].Locale < gaps[j].Locale
	})
	return gaps, nil
}

// insightLocalesForCareer returns the set of locale IDs with a localized
// trend insight, or nil when the career has no trend annotation or the
// audit does not cover insights.
func (s *service) insightLocalesForCareer(ctx context.Context, careerID uuid.UUID, opts interfaces.TranslationAuditOptions) (map[uuid.UUID]struct{}, error) {
	if !opts.IncludeTrendInsights {
		return nil, nil
	}

	trend, err := s.trends.GetByCareer(ctx, careerID)
	if err != nil {
		if catalogcareers.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	insights, err := s.trends.ListInsights(ctx, trend.ID)
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]struct{}, len(insights))
	for _, insight := range insights {
		if insight != nil && strings.TrimSpace(insight.Insight) != "" {
			out[insight.LocaleID] = struct{}{}
		}
	}
	return out, nil
}

func normalizeAuditLocales(required []string) []string {
	seen := make(map[string]struct{}, len(required))
	out := make([]string, 0, len(required))
	for _, code := range required {
		normalized := catalogcareers.NormalizeLocaleCode(code)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

func requiredFieldsForLocale(code string, opts interfaces.TranslationAuditOptions) []string {
	if fields, ok := opts.RequiredFields[code]; ok {
		return fields
	}
	return opts.RequiredFields["*"]
}

func missingTranslationFields(tr *CareerTranslation, required []string) []string {
	var missing []string
	for _, field := range required {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "title":
			if strings.TrimSpace(tr.Title) == "" {
				missing = append(missing, "title")
			}
		case "summary":
			if tr.Summary == nil || strings.TrimSpace(*tr.Summary) == "" {
				missing = append(missing, "summary")
			}
		case "description":
			if strings.TrimSpace(tr.Description) == "" {
				missing = append(missing, "description")
			}
		case "skills":
			if len(tr.Skills) == 0 {
				missing = append(missing, "skills")
			}
		}
	}
	return missing
}
