package careers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-catalog/domain"
	"github.com/goliatone/go-catalog/internal/careers"
	"github.com/google/uuid"
)

func newTestStores() (*careers.MemoryCareerRepository, *careers.MemoryTrendRepository, *careers.MemoryLocaleRepository, map[string]uuid.UUID) {
	careerStore := careers.NewMemoryCareerRepository()
	trendStore := careers.NewMemoryTrendRepository()
	localeStore := careers.NewMemoryLocaleRepository()

	ids := map[string]uuid.UUID{}
	for _, code := range []string{"en", "es", "ja"} {
		id := uuid.New()
		ids[code] = id
		localeStore.Put(&careers.Locale{
			ID:        id,
			Code:      code,
			Display:   code,
			IsActive:  true,
			IsDefault: code == "en",
		})
	}
	return careerStore, trendStore, localeStore, ids
}

func TestServiceCreateSuccess(t *testing.T) {
	careerStore, trendStore, localeStore, localeIDs := newTestStores()

	svc := careers.NewService(careerStore, trendStore, localeStore, careers.WithClock(func() time.Time {
		return time.Unix(0, 0)
	}))

	summary := "Builds and maintains software systems"
	req := careers.CreateCareerRequest{
		Slug:           "software-developer",
		Category:       "Technology",
		Level:          domain.LevelMid,
		SalaryMin:      70000,
		SalaryMax:      120000,
		RemoteFriendly: true,
		Translations: []careers.TranslationInput{
			{
				Locale:      "en",
				Title:       "Software Developer",
				Summary:     &summary,
				Description: "Designs, codes, and ships software.",
				Skills:      []string{"go", "sql"},
				Source:      domain.SourceHuman,
			},
		},
	}

	ctx := context.Background()
	result, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if result.Slug != req.Slug {
		t.Fatalf("expected slug %q got %q", req.Slug, result.Slug)
	}
	if result.Category != "technology" {
		t.Fatalf("expected normalized category, got %q", result.Category)
	}
	if len(result.Translations) != 1 {
		t.Fatalf("expected 1 translation got %d", len(result.Translations))
	}
	if result.Translations[0].LocaleID != localeIDs["en"] {
		t.Fatalf("expected locale ID %s got %s", localeIDs["en"], result.Translations[0].LocaleID)
	}
}

func TestServiceCreateRejectsDuplicateSlug(t *testing.T) {
	careerStore, trendStore, localeStore, _ := newTestStores()
	svc := careers.NewService(careerStore, trendStore, localeStore)

	ctx := context.Background()
	if _, err := svc.Create(ctx, careers.CreateCareerRequest{Slug: "nurse", Category: "healthcare"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, careers.CreateCareerRequest{Slug: "nurse", Category: "healthcare"}); !errors.Is(err, careers.ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	careerStore, trendStore, localeStore, _ := newTestStores()
	svc := careers.NewService(careerStore, trendStore, localeStore)
	ctx := context.Background()

	cases := []struct {
		name string
		req  careers.CreateCareerRequest
		want error
	}{
		{"missing slug", careers.CreateCareerRequest{Category: "tech"}, careers.ErrSlugRequired},
		{"invalid slug", careers.CreateCareerRequest{Slug: "Data Analyst!", Category: "tech"}, careers.ErrSlugInvalid},
		{"missing category", careers.CreateCareerRequest{Slug: "data-analyst"}, careers.ErrCategoryRequired},
		{"bad level", careers.CreateCareerRequest{Slug: "data-analyst", Category: "tech", Level: "guru"}, careers.ErrLevelInvalid},
		{"inverted salary", careers.CreateCareerRequest{Slug: "data-analyst", Category: "tech", SalaryMin: 90000, SalaryMax: 50000}, careers.ErrSalaryRangeInvalid},
		{
			"unknown locale",
			careers.CreateCareerRequest{
				Slug: "data-analyst", Category: "tech",
				Translations: []careers.TranslationInput{{Locale: "xx", Title: "Data Analyst"}},
			},
			careers.ErrUnknownLocale,
		},
		{
			"duplicate locale",
			careers.CreateCareerRequest{
				Slug: "data-analyst", Category: "tech",
				Translations: []careers.TranslationInput{
					{Locale: "en", Title: "Data Analyst"},
					{Locale: "en", Title: "Analyst"},
				},
			},
			careers.ErrDuplicateLocale,
		},
		{
			"empty title",
			careers.CreateCareerRequest{
				Slug: "data-analyst", Category: "tech",
				Translations: []careers.TranslationInput{{Locale: "en", Title: "  "}},
			},
			careers.ErrTitleRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestServiceUpsertTranslationReplacesRow(t *testing.T) {
	careerStore, trendStore, localeStore, localeIDs := newTestStores()
	svc := careers.NewService(careerStore, trendStore, localeStore)
	ctx := context.Background()

	record, err := svc.Create(ctx, careers.CreateCareerRequest{
		Slug:     "nurse",
		Category: "healthcare",
		Translations: []careers.TranslationInput{
			{Locale: "en", Title: "Nurse"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.UpsertTranslation(ctx, careers.UpsertTranslationRequest{
		CareerID: record.ID,
		Locale:   "es",
		Title:    "Enfermero",
		Skills:   []string{"cuidado de pacientes"},
		Source:   domain.SourceMachine,
	}); err != nil {
		t.Fatalf("upsert es: %v", err)
	}

	// second upsert for the same locale replaces rather than duplicates
	if _, err := svc.UpsertTranslation(ctx, careers.UpsertTranslationRequest{
		CareerID: record.ID,
		Locale:   "es",
		Title:    "Enfermera",
		Source:   domain.SourceHuman,
	}); err != nil {
		t.Fatalf("upsert es again: %v", err)
	}

	codes, err := svc.AvailableLocales(ctx, record.ID)
	if err != nil {
		t.Fatalf("available locales: %v", err)
	}
	if len(codes) != 2 {
		t.Fatalf("expected 2 locales, got %v", codes)
	}

	translations, err := careerStore.ListTranslations(ctx, record.ID)
	if err != nil {
		t.Fatalf("list translations: %v", err)
	}
	var es *careers.CareerTranslation
	for _, tr := range translations {
		if tr.LocaleID == localeIDs["es"] {
			es = tr
		}
	}
	if es == nil {
		t.Fatal("expected es translation")
	}
	if es.Title != "Enfermera" || es.Source != domain.SourceHuman {
		t.Fatalf("expected replaced row, got %q (%s)", es.Title, es.Source)
	}
}

func TestServiceDeleteTranslation(t *testing.T) {
	careerStore, trendStore, localeStore, _ := newTestStores()
	svc := careers.NewService(careerStore, trendStore, localeStore)
	ctx := context.Background()

	record, err := svc.Create(ctx, careers.CreateCareerRequest{
		Slug:     "teacher",
		Category: "education",
		Translations: []careers.TranslationInput{
			{Locale: "en", Title: "Teacher"},
			{Locale: "es", Title: "Profesor"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteTranslation(ctx, record.ID, "es"); err != nil {
		t.Fatalf("delete translation: %v", err)
	}

	codes, err := svc.AvailableLocales(ctx, record.ID)
	if err != nil {
		t.Fatalf("available locales: %v", err)
	}
	if len(codes) != 1 || codes[0] != "en" {
		t.Fatalf("expected only en, got %v", codes)
	}

	if err := svc.DeleteTranslation(ctx, record.ID, "xx"); !errors.Is(err, careers.ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale, got %v", err)
	}
}

func TestServiceUpdateAttributes(t *testing.T) {
	careerStore, trendStore, localeStore, _ := newTestStores()
	svc := careers.NewService(careerStore, trendStore, localeStore)
	ctx := context.Background()

	record, err := svc.Create(ctx, careers.CreateCareerRequest{
		Slug:      "ux-designer",
		Category:  "design",
		SalaryMin: 50000,
		SalaryMax: 90000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	level := domain.LevelSenior
	remote := true
	updated, err := svc.Update(ctx, careers.UpdateCareerRequest{
		ID:             record.ID,
		Level:          &level,
		RemoteFriendly: &remote,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Level != domain.LevelSenior || !updated.RemoteFriendly {
		t.Fatalf("expected updated attributes, got %+v", updated)
	}

	badMin := 100000
	if _, err := svc.Update(ctx, careers.UpdateCareerRequest{ID: record.ID, SalaryMin: &badMin}); !errors.Is(err, careers.ErrSalaryRangeInvalid) {
		t.Fatalf("expected ErrSalaryRangeInvalid, got %v", err)
	}
}

func TestServiceSetTrend(t *testing.T) {
	careerStore, trendStore, localeStore, localeIDs := newTestStores()
	svc := careers.NewService(careerStore, trendStore, localeStore)
	ctx := context.Background()

	record, err := svc.Create(ctx, careers.CreateCareerRequest{Slug: "data-scientist", Category: "technology"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	trend, err := svc.SetTrend(ctx, careers.SetTrendRequest{
		CareerID:   record.ID,
		Score:      0.92,
		Direction:  domain.TrendRising,
		GrowthRate: 21.5,
		Insights: map[string]string{
			"en": "Demand keeps outpacing supply.",
			"es": "La demanda sigue superando la oferta.",
		},
	})
	if err != nil {
		t.Fatalf("set trend: %v", err)
	}
	if trend.Direction != domain.TrendRising {
		t.Fatalf("expected rising trend, got %s", trend.Direction)
	}

	insights, err := trendStore.ListInsights(ctx, trend.ID)
	if err != nil {
		t.Fatalf("list insights: %v", err)
	}
	if len(insights) != 2 {
		t.Fatalf("expected 2 insights, got %d", len(insights))
	}
	found := false
	for _, insight := range insights {
		if insight.LocaleID == localeIDs["es"] {
			found = true
		}
	}
	if !found {
		t.Fatal("expected es insight")
	}
}

func TestServiceSetTrendDisabled(t *testing.T) {
	careerStore, trendStore, localeStore, _ := newTestStores()
	svc := careers.NewService(careerStore, trendStore, localeStore, careers.WithTrendsEnabled(false))

	_, err := svc.SetTrend(context.Background(), careers.SetTrendRequest{CareerID: uuid.New()})
	if !errors.Is(err, careers.ErrTrendsDisabled) {
		t.Fatalf("expected ErrTrendsDisabled, got %v", err)
	}
}
