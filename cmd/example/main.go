package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"

	catalog "github.com/goliatone/go-catalog"
	"github.com/goliatone/go-catalog/careers"
	"github.com/goliatone/go-catalog/domain"
	"github.com/goliatone/go-catalog/internal/di"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func main() {
	ctx := context.Background()

	cfg := catalog.DefaultConfig()
	cfg.DefaultLocale = "en"
	cfg.I18N.Locales = []string{"en", "es", "ja"}
	cfg.Features.Trends = true
	cfg.Commands.Enabled = true
	cfg.Logging.Level = "info"

	var opts []di.Option
	if len(os.Args) > 1 && os.Args[1] == "sqlite" {
		bunDB, err := openSQLite(ctx)
		if err != nil {
			log.Fatalf("open sqlite: %v", err)
		}
		defer bunDB.Close()
		opts = append(opts, di.WithBunDB(bunDB))
	}

	module, err := catalog.New(cfg, opts...)
	if err != nil {
		log.Fatalf("new catalog: %v", err)
	}

	if err := run(ctx, module); err != nil {
		log.Fatalf("example: %v", err)
	}
}

func run(ctx context.Context, module *catalog.Module) error {
	seeds := []catalog.CreateCareerRequest{
		{
			Slug:           "data-analyst",
			Category:       "technology",
			Level:          domain.LevelEntry,
			SalaryMin:      55000,
			SalaryMax:      90000,
			RemoteFriendly: true,
			Translations: []catalog.TranslationInput{
				{
					Locale:      "en",
					Title:       "Data Analyst",
					Summary:     strptr("Turns raw data into decisions."),
					Description: "Builds reports and dashboards, answers business questions with data.",
					Skills:      []string{"sql", "spreadsheets", "statistics"},
					Source:      domain.SourceHuman,
				},
				{
					Locale: "es",
					Title:  "Analista de datos",
					Source: domain.SourceMachine,
				},
			},
		},
		{
			Slug:           "data-scientist",
			Category:       "technology",
			Level:          domain.LevelSenior,
			SalaryMin:      95000,
			SalaryMax:      160000,
			RemoteFriendly: true,
			Translations: []catalog.TranslationInput{
				{
					Locale: "en",
					Title:  "Data Scientist",
					Skills: []string{"python", "machine learning"},
					Source: domain.SourceHuman,
				},
			},
		},
		{
			Slug:     "nurse",
			Category: "healthcare",
			Level:    domain.LevelMid,
			Translations: []catalog.TranslationInput{
				{Locale: "en", Title: "Registered Nurse", Source: domain.SourceHuman},
			},
		},
	}

	var analystID uuid.UUID
	for _, seed := range seeds {
		created, err := module.Careers().Create(ctx, seed)
		if err != nil {
			return fmt.Errorf("create %s: %w", seed.Slug, err)
		}
		if created.Slug == "data-analyst" {
			analystID = created.ID
		}
	}

	if _, err := module.Careers().SetTrend(ctx, catalog.SetTrendRequest{
		CareerID:   analystID,
		Score:      78,
		Direction:  domain.TrendRising,
		GrowthRate: 12.5,
		Insights: map[string]string{
			"en": "Demand keeps growing as companies invest in analytics.",
		},
	}); err != nil {
		return fmt.Errorf("set trend: %w", err)
	}

	// Spanish view: title resolves in es, everything else falls back to en.
	view, err := module.Resolve(ctx, catalog.ResolveRequest{Slug: "data-analyst", Locale: "es"})
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}
	printJSON("resolved view (es)", view)

	result, err := module.Search(ctx, catalog.SearchRequest{
		Query:  "data",
		Locale: "en",
		Filter: catalog.Filter{Category: "technology"},
	})
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	printJSON("search results", result)

	if handler := module.TranslationCheckHandler(); handler != nil {
		gaps := catalog.CheckTranslationsCommand{Locales: []string{"es", "ja"}}
		if err := handler.Execute(ctx, gaps); err != nil {
			return fmt.Errorf("translation audit: %w", err)
		}
	}

	module.ClearResolutions()
	return nil
}

func openSQLite(ctx context.Context) (*bun.DB, error) {
	sqlDB, err := sql.Open("sqlite3", "file:catalog_example?mode=memory&cache=shared")
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	db := bun.NewDB(sqlDB, sqlitedialect.New())

	models := []any{
		(*careers.Locale)(nil),
		(*careers.Career)(nil),
		(*careers.CareerTranslation)(nil),
		(*careers.TrendAnnotation)(nil),
		(*careers.TrendInsight)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return nil, fmt.Errorf("create table %T: %w", model, err)
		}
	}

	for _, seed := range []struct {
		code      string
		display   string
		isDefault bool
	}{
		{"en", "English", true},
		{"es", "Spanish", false},
		{"ja", "Japanese", false},
	} {
		locale := &careers.Locale{
			ID:        uuid.New(),
			Code:      seed.code,
			Display:   seed.display,
			IsActive:  true,
			IsDefault: seed.isDefault,
		}
		if _, err := db.NewInsert().Model(locale).Exec(ctx); err != nil {
			return nil, fmt.Errorf("seed locale %s: %w", seed.code, err)
		}
	}

	return db, nil
}

func strptr(s string) *string { return &s }

func printJSON(label string, value any) {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		log.Printf("%s: marshal failed: %v", label, err)
		return
	}
	fmt.Printf("== %s ==\n%s\n\n", label, payload)
}
