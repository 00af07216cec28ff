package cachecmd

import (
	"context"
	"testing"

	"github.com/goliatone/go-catalog/internal/logging"
)

type stubCache struct {
	invalidated []string
	clearCalls  int
}

func (s *stubCache) Invalidate(slug string) {
	s.invalidated = append(s.invalidated, slug)
}

func (s *stubCache) ClearCache() {
	s.clearCalls++
}

func TestClearCacheHandlerClearsEverything(t *testing.T) {
	cache := &stubCache{}
	handler := NewClearCacheHandler(cache, logging.NoOp())

	if err := handler.Execute(context.Background(), ClearCacheCommand{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if cache.clearCalls != 1 {
		t.Fatalf("expected one clear, got %d", cache.clearCalls)
	}
	if len(cache.invalidated) != 0 {
		t.Fatalf("expected no slug invalidation, got %v", cache.invalidated)
	}
}

func TestClearCacheHandlerScopesToSlug(t *testing.T) {
	cache := &stubCache{}
	handler := NewClearCacheHandler(cache, logging.NoOp())

	if err := handler.Execute(context.Background(), ClearCacheCommand{Slug: "nurse"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if cache.clearCalls != 0 {
		t.Fatalf("expected no full clear, got %d", cache.clearCalls)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "nurse" {
		t.Fatalf("expected nurse invalidation, got %v", cache.invalidated)
	}
}
