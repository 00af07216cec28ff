package search_test

import (
	"context"
	"errors"
	"testing"
	"time"

	catalogcareers "github.com/goliatone/go-catalog/careers"
	"github.com/goliatone/go-catalog/domain"
	"github.com/goliatone/go-catalog/internal/careers"
	"github.com/goliatone/go-catalog/internal/resolver"
	"github.com/goliatone/go-catalog/internal/search"
	"github.com/google/uuid"
)

type searchFixture struct {
	careers  *careers.MemoryCareerRepository
	resolver *resolver.Resolver
	composer *search.Composer
	enID     uuid.UUID
	esID     uuid.UUID
}

func newSearchFixture(t *testing.T) *searchFixture {
	t.Helper()

	careerStore := careers.NewMemoryCareerRepository()
	trendStore := careers.NewMemoryTrendRepository()
	localeStore := careers.NewMemoryLocaleRepository()

	enID, esID := uuid.New(), uuid.New()
	localeStore.Put(&careers.Locale{ID: enID, Code: "en", Display: "English", IsActive: true, IsDefault: true})
	localeStore.Put(&careers.Locale{ID: esID, Code: "es", Display: "Spanish", IsActive: true})

	r := resolver.New(careerStore, trendStore, localeStore)
	return &searchFixture{
		careers:  careerStore,
		resolver: r,
		composer: search.New(careerStore, r),
		enID:     enID,
		esID:     esID,
	}
}

func (f *searchFixture) seed(t *testing.T, slug, title, category string, level domain.CareerLevel, salaryMin, salaryMax int, remote bool) {
	t.Helper()

	record := &careers.Career{
		ID:             uuid.New(),
		Slug:           slug,
		Category:       category,
		Level:          level,
		SalaryMin:      salaryMin,
		SalaryMax:      salaryMax,
		RemoteFriendly: remote,
	}
	record.Translations = []*careers.CareerTranslation{{
		ID:       uuid.New(),
		CareerID: record.ID,
		LocaleID: f.enID,
		Title:    title,
	}}
	if _, err := f.careers.Create(context.Background(), record); err != nil {
		t.Fatalf("seed %s: %v", slug, err)
	}
}

func seedCatalog(t *testing.T, f *searchFixture) {
	f.seed(t, "data-analyst", "Data Analyst", "technology", domain.LevelEntry, 55000, 85000, true)
	f.seed(t, "data-scientist", "Data Scientist", "technology", domain.LevelMid, 90000, 150000, true)
	f.seed(t, "database-administrator", "Database Administrator", "technology", domain.LevelMid, 70000, 110000, false)
	f.seed(t, "nurse", "Registered Nurse", "healthcare", domain.LevelEntry, 60000, 95000, false)
	f.seed(t, "big-data-engineer", "Big Data Engineer", "technology", domain.LevelSenior, 110000, 170000, true)
}

func TestSearchPrefixBeforeSubstring(t *testing.T) {
	f := newSearchFixture(t)
	seedCatalog(t, f)

	result, err := f.composer.Search(context.Background(), search.Request{Query: "data"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if result.Total != 4 {
		t.Fatalf("expected 4 matches, got %d", result.Total)
	}

	got := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		got = append(got, item.Slug)
	}
	// prefix matches in slug order, then substring matches
	want := []string{"data-analyst", "data-scientist", "database-administrator", "big-data-engineer"}
	for i, slug := range want {
		if got[i] != slug {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestSearchStructuredFilterWithText(t *testing.T) {
	f := newSearchFixture(t)
	seedCatalog(t, f)

	remote := true
	result, err := f.composer.Search(context.Background(), search.Request{
		Query: "data",
		Filter: careers.Filter{
			Category:       "technology",
			RemoteFriendly: &remote,
		},
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if result.Total != 3 {
		t.Fatalf("expected 3 matches, got %d", result.Total)
	}
	if result.HasMore {
		t.Fatal("expected hasMore false when the page covers all matches")
	}
	for _, item := range result.Items {
		if item.Category != "technology" || !item.RemoteFriendly {
			t.Fatalf("filter leaked item %+v", item)
		}
	}
}

func TestSearchEmptyQueryReturnsFilteredSet(t *testing.T) {
	f := newSearchFixture(t)
	seedCatalog(t, f)

	result, err := f.composer.Search(context.Background(), search.Request{
		Filter: careers.Filter{Category: "healthcare"},
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Total != 1 || result.Items[0].Slug != "nurse" {
		t.Fatalf("expected nurse only, got %+v", result.Items)
	}
}

func TestSearchEmptyRequestReturnsWholeCatalog(t *testing.T) {
	f := newSearchFixture(t)
	seedCatalog(t, f)

	result, err := f.composer.Search(context.Background(), search.Request{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Total != 5 {
		t.Fatalf("expected full catalog, got %d", result.Total)
	}
}

func TestSearchPagination(t *testing.T) {
	f := newSearchFixture(t)
	seedCatalog(t, f)

	first, err := f.composer.Search(context.Background(), search.Request{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(first.Items) != 2 || first.Total != 5 || !first.HasMore {
		t.Fatalf("unexpected first page %+v", first)
	}

	last, err := f.composer.Search(context.Background(), search.Request{Page: 3, PageSize: 2})
	if err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if len(last.Items) != 1 || last.HasMore {
		t.Fatalf("unexpected last page %+v", last)
	}

	beyond, err := f.composer.Search(context.Background(), search.Request{Page: 9, PageSize: 2})
	if err != nil {
		t.Fatalf("page 9: %v", err)
	}
	if len(beyond.Items) != 0 || beyond.HasMore {
		t.Fatalf("expected empty page beyond the end, got %+v", beyond)
	}
}

func TestSearchMatchesFallbackTitles(t *testing.T) {
	f := newSearchFixture(t)
	f.seed(t, "electrician", "Electrician", "trades", domain.LevelEntry, 50000, 80000, false)

	// searching in Spanish still finds the career through its English title
	result, err := f.composer.Search(context.Background(), search.Request{Query: "electr", Locale: "es"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("expected fallback title match, got %d", result.Total)
	}
	item := result.Items[0]
	if item.Title.Provenance != domain.ProvenanceDefault {
		t.Fatalf("expected default provenance title, got %+v", item.Title)
	}
}

func (f *searchFixture) seedDescribed(t *testing.T, slug, title, description string) {
	t.Helper()

	record := &careers.Career{
		ID:       uuid.New(),
		Slug:     slug,
		Category: "technology",
		Level:    domain.LevelMid,
	}
	record.Translations = []*careers.CareerTranslation{{
		ID:          uuid.New(),
		CareerID:    record.ID,
		LocaleID:    f.enID,
		Title:       title,
		Description: description,
	}}
	if _, err := f.careers.Create(context.Background(), record); err != nil {
		t.Fatalf("seed %s: %v", slug, err)
	}
}

func TestSearchMatchesDescriptions(t *testing.T) {
	f := newSearchFixture(t)
	f.seedDescribed(t, "actuary", "Actuary", "Applies statistics to price risk.")

	result, err := f.composer.Search(context.Background(), search.Request{Query: "statistics"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Total != 1 || result.Items[0].Slug != "actuary" {
		t.Fatalf("expected description-only match, got %+v", result.Items)
	}
}

func TestSearchRanksDescriptionHitsAfterTitles(t *testing.T) {
	f := newSearchFixture(t)
	f.seedDescribed(t, "actuary", "Actuary", "Applies statistics to price risk.")
	f.seedDescribed(t, "statistician", "Statistician", "Designs studies and analyses data.")

	result, err := f.composer.Search(context.Background(), search.Request{Query: "stat"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected 2 matches, got %d", result.Total)
	}
	if result.Items[0].Slug != "statistician" || result.Items[1].Slug != "actuary" {
		t.Fatalf("expected title match before description match, got %+v", result.Items)
	}
}

type flakyCareerLister struct {
	delegate search.CareerLister
	calls    int
	failures int
}

func (l *flakyCareerLister) List(ctx context.Context, filter careers.Filter) ([]*careers.Career, error) {
	l.calls++
	if l.calls <= l.failures {
		return nil, catalogcareers.WrapTransient(errors.New("connection reset"), "list careers")
	}
	return l.delegate.List(ctx, filter)
}

func TestSearchRetriesTransientListFailure(t *testing.T) {
	f := newSearchFixture(t)
	f.seed(t, "nurse", "Registered Nurse", "healthcare", domain.LevelEntry, 60000, 95000, false)

	flaky := &flakyCareerLister{delegate: f.careers, failures: 1}
	composer := search.New(flaky, f.resolver, search.WithRetryBackoff(time.Millisecond))

	result, err := composer.Search(context.Background(), search.Request{Query: "nurse"})
	if err != nil {
		t.Fatalf("search after transient failure: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("expected 1 match, got %d", result.Total)
	}
	if flaky.calls != 2 {
		t.Fatalf("expected one retry, got %d calls", flaky.calls)
	}
}

func TestSearchSurfacesExhaustedTransientFailure(t *testing.T) {
	f := newSearchFixture(t)

	flaky := &flakyCareerLister{delegate: f.careers, failures: 2}
	composer := search.New(flaky, f.resolver, search.WithRetryBackoff(time.Millisecond))

	if _, err := composer.Search(context.Background(), search.Request{}); !catalogcareers.IsTransient(err) {
		t.Fatalf("expected transient error after retry exhausted, got %v", err)
	}
	if flaky.calls != 2 {
		t.Fatalf("expected exactly one retry, got %d calls", flaky.calls)
	}
}

func TestSearchRejectsOversizedPage(t *testing.T) {
	f := newSearchFixture(t)

	if _, err := f.composer.Search(context.Background(), search.Request{PageSize: 5000}); err == nil {
		t.Fatal("expected validation error for oversized page")
	}
}

func TestSearchSalaryFilter(t *testing.T) {
	f := newSearchFixture(t)
	seedCatalog(t, f)

	min := 100000
	result, err := f.composer.Search(context.Background(), search.Request{
		Filter: careers.Filter{SalaryMin: &min},
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	// careers whose range reaches 100k: data-scientist, database-administrator, big-data-engineer
	if result.Total != 3 {
		t.Fatalf("expected 3 careers above salary floor, got %d", result.Total)
	}
}
