package catalog_test

import (
	"context"
	"testing"

	catalog "github.com/goliatone/go-catalog"
	"github.com/goliatone/go-catalog/domain"
	"github.com/goliatone/go-catalog/internal/di"
	"github.com/goliatone/go-catalog/pkg/testsupport"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestModuleResolvesWithFallback(t *testing.T) {
	ctx := context.Background()

	module, err := catalog.New(catalog.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	created, err := module.Careers().Create(ctx, catalog.CreateCareerRequest{
		Slug:     "software-developer",
		Category: "technology",
		Level:    domain.LevelMid,
		Translations: []catalog.TranslationInput{
			{
				Locale:      "en",
				Title:       "Software Developer",
				Description: "Designs and ships software.",
				Skills:      []string{"go", "sql"},
				Source:      domain.SourceHuman,
			},
		},
	})
	if err != nil {
		t.Fatalf("create career: %v", err)
	}

	view, err := module.Resolve(ctx, catalog.ResolveRequest{Slug: "software-developer", Locale: "ja"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	title := view.Fields["title"]
	if title.Provenance != domain.ProvenanceDefault || title.Value != "Software Developer" {
		t.Fatalf("expected en fallback title, got %+v", title)
	}

	// a translation written through the module is visible on the next read
	if _, err := module.UpsertTranslation(ctx, catalog.UpsertTranslationRequest{
		CareerID: created.ID,
		Locale:   "ja",
		Title:    "ソフトウェア開発者",
		Source:   domain.SourceMachine,
	}); err != nil {
		t.Fatalf("upsert translation: %v", err)
	}

	view, err = module.Resolve(ctx, catalog.ResolveRequest{Slug: "software-developer", Locale: "ja"})
	if err != nil {
		t.Fatalf("resolve after upsert: %v", err)
	}
	title = view.Fields["title"]
	if title.Provenance != domain.ProvenanceRequested || title.Value != "ソフトウェア開発者" {
		t.Fatalf("expected fresh ja title, got %+v", title)
	}
}

func TestModuleSearchScenario(t *testing.T) {
	ctx := context.Background()

	module, err := catalog.New(catalog.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	seed := func(slug, title, category string, remote bool) {
		t.Helper()
		if _, err := module.Careers().Create(ctx, catalog.CreateCareerRequest{
			Slug:           slug,
			Category:       category,
			RemoteFriendly: remote,
			Translations: []catalog.TranslationInput{
				{Locale: "en", Title: title},
			},
		}); err != nil {
			t.Fatalf("seed %s: %v", slug, err)
		}
	}

	seed("data-analyst", "Data Analyst", "technology", true)
	seed("data-scientist", "Data Scientist", "technology", true)
	seed("big-data-engineer", "Big Data Engineer", "technology", true)
	seed("nurse", "Registered Nurse", "healthcare", false)

	result, err := module.Search(ctx, catalog.SearchRequest{
		Query:  "data",
		Filter: catalog.Filter{Category: "technology"},
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Total != 3 {
		t.Fatalf("expected 3 matches, got %d", result.Total)
	}
	if result.HasMore {
		t.Fatal("expected hasMore false")
	}
	if result.Items[0].Slug != "data-analyst" {
		t.Fatalf("expected prefix match first, got %s", result.Items[0].Slug)
	}
	if result.Items[len(result.Items)-1].Slug != "big-data-engineer" {
		t.Fatalf("expected substring match last, got %s", result.Items[len(result.Items)-1].Slug)
	}
}

func TestModuleWithBunStorage(t *testing.T) {
	ctx := context.Background()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	registerCatalogModels(t, bunDB)
	seedCatalogLocales(t, bunDB)

	module, err := catalog.New(catalog.DefaultConfig(), di.WithBunDB(bunDB))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	created, err := module.Careers().Create(ctx, catalog.CreateCareerRequest{
		Slug:     "nurse",
		Category: "healthcare",
		Translations: []catalog.TranslationInput{
			{Locale: "en", Title: "Registered Nurse", Skills: []string{"patient care"}},
			{Locale: "es", Title: "Enfermero titulado"},
		},
	})
	if err != nil {
		t.Fatalf("create career: %v", err)
	}

	fetched, err := module.Careers().GetBySlug(ctx, "nurse")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if fetched.ID != created.ID {
		t.Fatalf("expected %s got %s", created.ID, fetched.ID)
	}

	view, err := module.Resolve(ctx, catalog.ResolveRequest{Slug: "nurse", Locale: "es"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if view.Fields["title"].Value != "Enfermero titulado" {
		t.Fatalf("expected es title, got %+v", view.Fields["title"])
	}
	if view.Fields["skills"].Provenance != domain.ProvenanceDefault {
		t.Fatalf("expected skills fallback, got %+v", view.Fields["skills"])
	}

	codes, err := module.Careers().AvailableLocales(ctx, created.ID)
	if err != nil {
		t.Fatalf("available locales: %v", err)
	}
	if len(codes) != 2 {
		t.Fatalf("expected 2 locales, got %v", codes)
	}
}

func registerCatalogModels(t *testing.T, db *bun.DB) {
	t.Helper()
	ctx := context.Background()
	models := []any{
		(*catalog.Locale)(nil),
		(*catalog.Career)(nil),
		(*catalog.CareerTranslation)(nil),
		(*catalog.TrendAnnotation)(nil),
		(*catalog.TrendInsight)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table %T: %v", model, err)
		}
	}
	if _, err := db.ExecContext(ctx, "CREATE UNIQUE INDEX IF NOT EXISTS idx_career_translations_career_locale ON career_translations(career_id, locale_id)"); err != nil {
		t.Fatalf("create index idx_career_translations_career_locale: %v", err)
	}
	if _, err := db.ExecContext(ctx, "CREATE UNIQUE INDEX IF NOT EXISTS idx_careers_slug ON careers(slug)"); err != nil {
		t.Fatalf("create index idx_careers_slug: %v", err)
	}
}

func seedCatalogLocales(t *testing.T, db *bun.DB) {
	t.Helper()
	ctx := context.Background()

	for _, seed := range []struct {
		code      string
		display   string
		isDefault bool
	}{
		{"en", "English", true},
		{"es", "Spanish", false},
		{"ja", "Japanese", false},
	} {
		locale := &catalog.Locale{
			ID:        uuid.New(),
			Code:      seed.code,
			Display:   seed.display,
			IsActive:  true,
			IsDefault: seed.isDefault,
		}
		if _, err := db.NewInsert().Model(locale).Exec(ctx); err != nil {
			t.Fatalf("insert locale %s: %v", seed.code, err)
		}
	}
}
