package resolver

import (
	"context"
	"errors"
	"strings"
	"time"

	catalogcareers "github.com/goliatone/go-catalog/careers"
	"github.com/goliatone/go-catalog/domain"
	"github.com/goliatone/go-catalog/internal/careers"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	"github.com/google/uuid"
)

// ErrSlugRequired is returned when a resolution request carries no slug.
var ErrSlugRequired = errors.New("resolver: slug is required")

// DefaultRetryBackoff is the pause between the first attempt and the single
// retry granted to transient store failures.
const DefaultRetryBackoff = 150 * time.Millisecond

// CareerReader is the slice of career storage the resolver needs.
type CareerReader interface {
	GetBySlug(ctx context.Context, slug string) (*careers.Career, error)
	ListTranslations(ctx context.Context, careerID uuid.UUID) ([]*careers.CareerTranslation, error)
}

// TrendReader is the slice of trend storage the resolver needs.
type TrendReader interface {
	GetByCareer(ctx context.Context, careerID uuid.UUID) (*careers.TrendAnnotation, error)
	ListInsights(ctx context.Context, trendID uuid.UUID) ([]*careers.TrendInsight, error)
}

// LocaleReader resolves locale codes to identifiers.
type LocaleReader interface {
	GetByCode(ctx context.Context, code string) (*careers.Locale, error)
}

// Resolver renders careers in a requested locale, filling gaps per field
// from the default locale and finally from the raw slug. Resolution never
// fails because text is missing; only an absent career or an exhausted
// store error surfaces.
type Resolver struct {
	careers CareerReader
	trends  TrendReader
	locales LocaleReader
	cache   *Cache
	backoff time.Duration
	trendOn bool
	logger  interfaces.Logger
}

// Option configures the resolver at construction time.
type Option func(*Resolver)

// WithCache installs the resolution cache. Without one every request goes
// to the store.
func WithCache(cache *Cache) Option {
	return func(r *Resolver) {
		r.cache = cache
	}
}

// WithRetryBackoff sets the pause before the single transient retry.
func WithRetryBackoff(backoff time.Duration) Option {
	return func(r *Resolver) {
		if backoff > 0 {
			r.backoff = backoff
		}
	}
}

// WithTrends toggles trend enrichment on resolved views.
func WithTrends(enabled bool) Option {
	return func(r *Resolver) {
		r.trendOn = enabled
	}
}

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New constructs a resolver over the given storage.
func New(careerRepo CareerReader, trendRepo TrendReader, localeRepo LocaleReader, opts ...Option) *Resolver {
	r := &Resolver{
		careers: careerRepo,
		trends:  trendRepo,
		locales: localeRepo,
		backoff: DefaultRetryBackoff,
		trendOn: true,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve renders one career in the requested locale. Unsupported locale
// codes are not rejected; their requests simply resolve through the default
// tier. Successful views are cached unless the context was cancelled.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*ResolvedView, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}

	locale := catalogcareers.NormalizeLocaleCode(req.Locale)
	if locale == "" {
		locale = catalogcareers.DefaultLocaleCode
	}
	fields := normalizeFields(req.Fields)

	key := CacheKey(slug, locale, fields)
	if r.cache != nil {
		if view, ok := r.cache.Get(slug, key); ok {
			r.logger.Trace("resolver.cache.hit", "career_slug", slug, "locale", locale)
			return view, nil
		}
	}

	view, err := r.resolveFromStore(ctx, slug, locale, fields)
	if err != nil {
		return nil, err
	}

	if r.cache != nil && ctx.Err() == nil {
		r.cache.Set(slug, key, view)
	}
	return view, nil
}

// Invalidate drops cached views for one career. Translation writers call
// this so readers never serve stale text for a full TTL window.
func (r *Resolver) Invalidate(slug string) {
	if r.cache != nil {
		r.cache.Invalidate(strings.TrimSpace(slug))
	}
}

// ClearCache empties the resolution cache.
func (r *Resolver) ClearCache() {
	if r.cache != nil {
		r.cache.Clear()
	}
}

func (r *Resolver) resolveFromStore(ctx context.Context, slug, locale string, fields []string) (*ResolvedView, error) {
	career, err := RetryTransient(ctx, r.backoff, func() (*careers.Career, error) {
		return r.careers.GetBySlug(ctx, slug)
	})
	if err != nil {
		return nil, err
	}

	translations, err := RetryTransient(ctx, r.backoff, func() ([]*careers.CareerTranslation, error) {
		return r.careers.ListTranslations(ctx, career.ID)
	})
	if err != nil {
		return nil, err
	}

	requested, fallback := r.pickTranslations(ctx, locale, translations)

	view := &ResolvedView{
		Slug:   slug,
		Locale: locale,
		Fields: make(map[string]FieldValue, len(fields)),
	}
	for _, field := range fields {
		view.Fields[field] = resolveField(field, slug, locale, requested, fallback)
	}

	if r.trendOn {
		trend, err := r.resolveTrend(ctx, career.ID, slug, locale)
		if err != nil {
			return nil, err
		}
		view.Trend = trend
	}

	r.logProvenance(slug, locale, view)
	return view, nil
}

// pickTranslations selects the requested-locale row and the default-locale
// row out of the career's translations. Either may be nil.
func (r *Resolver) pickTranslations(ctx context.Context, locale string, translations []*careers.CareerTranslation) (*careers.CareerTranslation, *careers.CareerTranslation) {
	requestedID := r.localeID(ctx, locale)
	fallbackID := r.localeID(ctx, catalogcareers.DefaultLocaleCode)

	var requested, fallback *careers.CareerTranslation
	for _, tr := range translations {
		if tr == nil {
			continue
		}
		if requestedID != uuid.Nil && tr.LocaleID == requestedID {
			requested = tr
		}
		if fallbackID != uuid.Nil && tr.LocaleID == fallbackID {
			fallback = tr
		}
	}
	if locale == catalogcareers.DefaultLocaleCode {
		fallback = nil
	}
	return requested, fallback
}

func (r *Resolver) localeID(ctx context.Context, code string) uuid.UUID {
	loc, err := r.locales.GetByCode(ctx, code)
	if err != nil || loc == nil {
		return uuid.Nil
	}
	return loc.ID
}

func resolveField(field, slug, locale string, requested, fallback *careers.CareerTranslation) FieldValue {
	if value, ok := fieldValue(field, requested); ok {
		value.Provenance = domain.ProvenanceRequested
		value.Locale = locale
		return value
	}
	if value, ok := fieldValue(field, fallback); ok {
		value.Provenance = domain.ProvenanceDefault
		value.Locale = catalogcareers.DefaultLocaleCode
		return value
	}
	if field == FieldSkills {
		return FieldValue{Values: []string{}, Provenance: domain.ProvenanceRaw}
	}
	return FieldValue{Value: slug, Provenance: domain.ProvenanceRaw}
}

// fieldValue extracts one field from a translation row, reporting whether
// the row carries usable text for it. Empty values count as absent so a
// half-filled machine translation still falls through per field.
func fieldValue(field string, tr *careers.CareerTranslation) (FieldValue, bool) {
	if tr == nil {
		return FieldValue{}, false
	}
	switch field {
	case FieldTitle:
		if strings.TrimSpace(tr.Title) != "" {
			return FieldValue{Value: tr.Title}, true
		}
	case FieldSummary:
		if tr.Summary != nil && strings.TrimSpace(*tr.Summary) != "" {
			return FieldValue{Value: *tr.Summary}, true
		}
	case FieldDescription:
		if strings.TrimSpace(tr.Description) != "" {
			return FieldValue{Value: tr.Description}, true
		}
	case FieldSkills:
		if len(tr.Skills) > 0 {
			return FieldValue{Values: append([]string(nil), tr.Skills...)}, true
		}
	}
	return FieldValue{}, false
}

func (r *Resolver) resolveTrend(ctx context.Context, careerID uuid.UUID, slug, locale string) (*ResolvedTrend, error) {
	annotation, err := RetryTransient(ctx, r.backoff, func() (*careers.TrendAnnotation, error) {
		return r.trends.GetByCareer(ctx, careerID)
	})
	if err != nil {
		if catalogcareers.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	insights, err := RetryTransient(ctx, r.backoff, func() ([]*careers.TrendInsight, error) {
		return r.trends.ListInsights(ctx, annotation.ID)
	})
	if err != nil {
		return nil, err
	}

	trend := &ResolvedTrend{
		Score:      annotation.Score,
		Direction:  annotation.Direction,
		GrowthRate: annotation.GrowthRate,
	}

	requestedID := r.localeID(ctx, locale)
	fallbackID := r.localeID(ctx, catalogcareers.DefaultLocaleCode)

	var requested, fallback *careers.TrendInsight
	for _, insight := range insights {
		if insight == nil || strings.TrimSpace(insight.Insight) == "" {
			continue
		}
		if requestedID != uuid.Nil && insight.LocaleID == requestedID {
			requested = insight
		}
		if fallbackID != uuid.Nil && insight.LocaleID == fallbackID {
			fallback = insight
		}
	}

	switch {
	case requested != nil:
		trend.Insight = &FieldValue{Value: requested.Insight, Provenance: domain.ProvenanceRequested, Locale: locale}
	case fallback != nil && locale != catalogcareers.DefaultLocaleCode:
		trend.Insight = &FieldValue{Value: fallback.Insight, Provenance: domain.ProvenanceDefault, Locale: catalogcareers.DefaultLocaleCode}
	}
	return trend, nil
}

// RetryTransient runs op and, when it fails with a transient store error,
// waits one backoff and tries exactly once more. Domain errors pass
// through. The search composer shares this for its own store reads.
func RetryTransient[T any](ctx context.Context, backoff time.Duration, op func() (T, error)) (T, error) {
	result, err := op()
	if err == nil || !catalogcareers.IsTransient(err) {
		return result, err
	}

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-time.After(backoff):
	}
	return op()
}

func (r *Resolver) logProvenance(slug, locale string, view *ResolvedView) {
	degraded := 0
	for _, value := range view.Fields {
		if value.Provenance != domain.ProvenanceRequested {
			degraded++
		}
	}
	if degraded > 0 {
		r.logger.Debug("resolver.fallback", "career_slug", slug, "locale", locale, "degraded_fields", degraded)
	}
}
