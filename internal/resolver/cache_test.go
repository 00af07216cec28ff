package resolver_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-catalog/domain"
	"github.com/goliatone/go-catalog/internal/resolver"
)

func sampleView(slug string) *resolver.ResolvedView {
	return &resolver.ResolvedView{
		Slug:   slug,
		Locale: "en",
		Fields: map[string]resolver.FieldValue{
			resolver.FieldTitle: {Value: "Title", Provenance: domain.ProvenanceRequested, Locale: "en"},
		},
	}
}

func TestCacheKeyIgnoresFieldOrder(t *testing.T) {
	a := resolver.CacheKey("nurse", "es", []string{"title", "skills"})
	b := resolver.CacheKey("nurse", "es", []string{"skills", "title"})
	if a != b {
		t.Fatalf("expected order-insensitive keys, got %q vs %q", a, b)
	}

	c := resolver.CacheKey("nurse", "es", []string{"title"})
	if a == c {
		t.Fatal("expected distinct keys for distinct field sets")
	}
	d := resolver.CacheKey("nurse", "fr", []string{"title", "skills"})
	if a == d {
		t.Fatal("expected distinct keys per locale")
	}
}

func TestCacheExpiresEntries(t *testing.T) {
	now := time.Unix(0, 0)
	cache := resolver.NewCache(time.Minute, resolver.WithCacheClock(func() time.Time {
		return now
	}))

	key := resolver.CacheKey("nurse", "en", resolver.DefaultFields)
	cache.Set("nurse", key, sampleView("nurse"))

	if _, ok := cache.Get("nurse", key); !ok {
		t.Fatal("expected entry before expiry")
	}

	now = now.Add(time.Minute + time.Second)
	if _, ok := cache.Get("nurse", key); ok {
		t.Fatal("expected entry to expire")
	}
	if cache.Len() != 0 {
		t.Fatalf("expected lazy eviction to drop entry, got %d", cache.Len())
	}
}

func TestCacheInvalidateDropsAllVariants(t *testing.T) {
	cache := resolver.NewCache(time.Minute)

	enKey := resolver.CacheKey("nurse", "en", resolver.DefaultFields)
	esKey := resolver.CacheKey("nurse", "es", resolver.DefaultFields)
	otherKey := resolver.CacheKey("chef", "en", resolver.DefaultFields)

	cache.Set("nurse", enKey, sampleView("nurse"))
	cache.Set("nurse", esKey, sampleView("nurse"))
	cache.Set("chef", otherKey, sampleView("chef"))

	cache.Invalidate("nurse")

	if _, ok := cache.Get("nurse", enKey); ok {
		t.Fatal("expected en variant dropped")
	}
	if _, ok := cache.Get("nurse", esKey); ok {
		t.Fatal("expected es variant dropped")
	}
	if _, ok := cache.Get("chef", otherKey); !ok {
		t.Fatal("expected unrelated career to survive")
	}
}

func TestCacheClear(t *testing.T) {
	cache := resolver.NewCache(time.Minute)
	key := resolver.CacheKey("nurse", "en", resolver.DefaultFields)
	cache.Set("nurse", key, sampleView("nurse"))

	cache.Clear()
	if cache.Len() != 0 {
		t.Fatalf("expected empty cache, got %d entries", cache.Len())
	}
}

func TestCacheGetReturnsDefensiveCopy(t *testing.T) {
	cache := resolver.NewCache(time.Minute)
	key := resolver.CacheKey("nurse", "en", resolver.DefaultFields)
	cache.Set("nurse", key, sampleView("nurse"))

	view, ok := cache.Get("nurse", key)
	if !ok {
		t.Fatal("expected entry")
	}
	view.Fields[resolver.FieldTitle] = resolver.FieldValue{Value: "mutated"}

	again, ok := cache.Get("nurse", key)
	if !ok {
		t.Fatal("expected entry")
	}
	if again.Fields[resolver.FieldTitle].Value != "Title" {
		t.Fatalf("expected cached view untouched, got %+v", again.Fields[resolver.FieldTitle])
	}
}
