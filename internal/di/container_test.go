package di_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-catalog/internal/di"
	"github.com/goliatone/go-catalog/internal/runtimeconfig"
	"github.com/goliatone/go-catalog/pkg/testsupport"
)

func TestNewContainerMemoryDefaults(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	if container.CareersService() == nil {
		t.Fatal("expected careers service")
	}
	if container.Resolver() == nil {
		t.Fatal("expected resolver")
	}
	if container.SearchComposer() == nil {
		t.Fatal("expected search composer")
	}

	codes, err := container.LocaleRepository().List(context.Background())
	if err != nil {
		t.Fatalf("list locales: %v", err)
	}
	if len(codes) != 11 {
		t.Fatalf("expected 11 seeded locales, got %d", len(codes))
	}
}

func TestNewContainerRejectsUnsupportedDefaultLocale(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultLocale = "xx"

	if _, err := di.NewContainer(cfg); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestNewContainerWithSQLDB(t *testing.T) {
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "sqlite"

	container, err := di.NewContainer(cfg, di.WithSQLDB(sqlDB))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.CareerRepository() == nil {
		t.Fatal("expected bun career repository")
	}
}

func TestNewBunDBDialectSelection(t *testing.T) {
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	for _, provider := range []string{"sqlite", "postgres", "pg", ""} {
		db := di.NewBunDB(sqlDB, provider)
		if db == nil {
			t.Fatalf("expected bun db for provider %q", provider)
		}
	}
}
