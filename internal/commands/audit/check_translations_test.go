package auditcmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/pkg/interfaces"
)

type stubAuditor struct {
	gaps     []interfaces.TranslationGap
	err      error
	calls    int
	required []string
	opts     interfaces.TranslationAuditOptions
}

func (s *stubAuditor) AuditTranslations(_ context.Context, required []string, opts interfaces.TranslationAuditOptions) ([]interfaces.TranslationGap, error) {
	s.calls++
	s.required = required
	s.opts = opts
	if s.err != nil {
		return nil, s.err
	}
	return s.gaps, nil
}

func TestCheckTranslationsHandlerAuditsSupportedSetByDefault(t *testing.T) {
	auditor := &stubAuditor{}
	handler := NewCheckTranslationsHandler(auditor, logging.NoOp())

	if err := handler.Execute(context.Background(), CheckTranslationsCommand{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if auditor.calls != 1 {
		t.Fatalf("expected one audit call, got %d", auditor.calls)
	}
	if len(auditor.required) != 11 {
		t.Fatalf("expected the full locale set, got %v", auditor.required)
	}
}

func TestCheckTranslationsHandlerScopesLocales(t *testing.T) {
	auditor := &stubAuditor{
		gaps: []interfaces.TranslationGap{{Slug: "nurse", Locale: "ja", MissingFields: []string{"title"}}},
	}
	handler := NewCheckTranslationsHandler(auditor, logging.NoOp())

	msg := CheckTranslationsCommand{Locales: []string{"es", "ja"}, IncludeTrends: true}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(auditor.required) != 2 {
		t.Fatalf("expected 2 locales, got %v", auditor.required)
	}
	if !auditor.opts.IncludeTrendInsights {
		t.Fatal("expected trend insights to be included")
	}
}

func TestCheckTranslationsHandlerRejectsUnsupportedLocale(t *testing.T) {
	auditor := &stubAuditor{}
	handler := NewCheckTranslationsHandler(auditor, logging.NoOp())

	err := handler.Execute(context.Background(), CheckTranslationsCommand{Locales: []string{"xx"}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if auditor.calls != 0 {
		t.Fatalf("expected no audit call, got %d", auditor.calls)
	}
}

func TestCheckTranslationsHandlerPropagatesError(t *testing.T) {
	auditor := &stubAuditor{err: errors.New("boom")}
	handler := NewCheckTranslationsHandler(auditor, logging.NoOp())

	err := handler.Execute(context.Background(), CheckTranslationsCommand{})
	if err == nil {
		t.Fatal("expected error from auditor")
	}
	if !errors.Is(err, auditor.err) {
		t.Fatalf("expected auditor error, got %v", err)
	}
}

func TestCheckTranslationsHandlerCronDefaults(t *testing.T) {
	handler := NewCheckTranslationsHandler(&stubAuditor{}, logging.NoOp())
	if handler.CronOptions().Expression != "@daily" {
		t.Fatalf("expected daily cron, got %q", handler.CronOptions().Expression)
	}

	custom := NewCheckTranslationsHandler(&stubAuditor{}, logging.NoOp(), CheckWithCronExpression("@hourly"))
	if custom.CronOptions().Expression != "@hourly" {
		t.Fatalf("expected hourly cron, got %q", custom.CronOptions().Expression)
	}
}
