package careers

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryCareerRepository is an in-memory implementation for scaffolding and tests.
type MemoryCareerRepository struct {
	mu           sync.RWMutex
	careers      map[uuid.UUID]*Career
	slugIndex    map[string]uuid.UUID
	translations map[uuid.UUID]map[uuid.UUID]*CareerTranslation
}

// NewMemoryCareerRepository creates an empty in-memory career repository.
func NewMemoryCareerRepository() *MemoryCareerRepository {
	return &MemoryCareerRepository{
		careers:      make(map[uuid.UUID]*Career),
		slugIndex:    make(map[string]uuid.UUID),
		translations: make(map[uuid.UUID]map[uuid.UUID]*CareerTranslation),
	}
}

// Create inserts the supplied career and its translations.
func (m *MemoryCareerRepository) Create(_ context.Context, record *Career) (*Career, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneCareer(record)
	m.careers[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID

	for _, tr := range copied.Translations {
		if tr == nil {
			continue
		}
		m.putTranslationLocked(tr)
	}
	return m.careerWithTranslationsLocked(copied.ID), nil
}

// GetByID retrieves a career by identifier.
func (m *MemoryCareerRepository) GetByID(_ context.Context, id uuid.UUID) (*Career, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.careers[id]; !ok {
		return nil, &NotFoundError{Resource: "career", Key: id.String()}
	}
	return m.careerWithTranslationsLocked(id), nil
}

// GetBySlug retrieves a career by slug, returning NotFoundError when absent.
func (m *MemoryCareerRepository) GetBySlug(_ context.Context, slug string) (*Career, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "career", Key: slug}
	}
	return m.careerWithTranslationsLocked(id), nil
}

// List returns careers matching the structured filter, ordered by slug.
func (m *MemoryCareerRepository) List(_ context.Context, filter Filter) ([]*Career, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Career, 0, len(m.careers))
	for id, rec := range m.careers {
		if !filter.Matches(rec) {
			continue
		}
		out = append(out, m.careerWithTranslationsLocked(id))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

// Update replaces the stored career's language-agnostic attributes.
func (m *MemoryCareerRepository) Update(_ context.Context, record *Career) (*Career, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.careers[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "career", Key: record.ID.String()}
	}

	copied := cloneCareer(record)
	copied.CreatedAt = existing.CreatedAt
	m.careers[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return m.careerWithTranslationsLocked(copied.ID), nil
}

// ListTranslations returns all translation rows for the career.
func (m *MemoryCareerRepository) ListTranslations(_ context.Context, careerID uuid.UUID) ([]*CareerTranslation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byLocale := m.translations[careerID]
	out := make([]*CareerTranslation, 0, len(byLocale))
	for _, tr := range byLocale {
		out = append(out, cloneTranslation(tr))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LocaleID.String() < out[j].LocaleID.String()
	})
	return out, nil
}

// UpsertTranslation creates or replaces the row for one (career, locale) pair.
func (m *MemoryCareerRepository) UpsertTranslation(_ context.Context, record *CareerTranslation) (*CareerTranslation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.careers[record.CareerID]; !ok {
		return nil, &NotFoundError{Resource: "career", Key: record.CareerID.String()}
	}
	copied := cloneTranslation(record)
	m.putTranslationLocked(copied)
	return cloneTranslation(copied), nil
}

// DeleteTranslation removes the row for one (career, locale) pair.
func (m *MemoryCareerRepository) DeleteTranslation(_ context.Context, careerID, localeID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byLocale, ok := m.translations[careerID]
	if !ok {
		return nil
	}
	delete(byLocale, localeID)
	return nil
}

func (m *MemoryCareerRepository) putTranslationLocked(tr *CareerTranslation) {
	byLocale, ok := m.translations[tr.CareerID]
	if !ok {
		byLocale = make(map[uuid.UUID]*CareerTranslation)
		m.translations[tr.CareerID] = byLocale
	}
	byLocale[tr.LocaleID] = tr
}

func (m *MemoryCareerRepository) careerWithTranslationsLocked(id uuid.UUID) *Career {
	rec := m.careers[id]
	if rec == nil {
		return nil
	}
	copied := cloneCareer(rec)
	byLocale := m.translations[id]
	copied.Translations = make([]*CareerTranslation, 0, len(byLocale))
	for _, tr := range byLocale {
		copied.Translations = append(copied.Translations, cloneTranslation(tr))
	}
	sort.Slice(copied.Translations, func(i, j int) bool {
		return copied.Translations[i].LocaleID.String() < copied.Translations[j].LocaleID.String()
	})
	return copied
}

func cloneCareer(src *Career) *Career {
	if src == nil {
		return nil
	}

	copied := *src
	copied.Metadata = cloneMap(src.Metadata)
	copied.Translations = nil
	copied.Trend = nil
	if len(src.Translations) > 0 {
		copied.Translations = make([]*CareerTranslation, 0, len(src.Translations))
		for _, tr := range src.Translations {
			if tr == nil {
				continue
			}
			copied.Translations = append(copied.Translations, cloneTranslation(tr))
		}
	}
	return &copied
}

func cloneTranslation(src *CareerTranslation) *CareerTranslation {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Skills = append([]string(nil), src.Skills...)
	copied.Locale = nil
	return &copied
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// MemoryLocaleRepository stores locales by code.
type MemoryLocaleRepository struct {
	mu      sync.RWMutex
	locales map[string]*Locale
}

// NewMemoryLocaleRepository constructs the repository.
func NewMemoryLocaleRepository() *MemoryLocaleRepository {
	return &MemoryLocaleRepository{
		locales: make(map[string]*Locale),
	}
}

// Put inserts or replaces a locale.
func (m *MemoryLocaleRepository) Put(locale *Locale) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *locale
	m.locales[strings.ToLower(locale.Code)] = &copied
}

// GetByCode resolves a locale by its code.
func (m *MemoryLocaleRepository) GetByCode(_ context.Context, code string) (*Locale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	locale, ok := m.locales[strings.ToLower(code)]
	if !ok {
		return nil, &NotFoundError{Resource: "locale", Key: code}
	}
	copied := *locale
	return &copied, nil
}

// List returns all registered locales ordered by code.
func (m *MemoryLocaleRepository) List(_ context.Context) ([]*Locale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Locale, 0, len(m.locales))
	for _, locale := range m.locales {
		copied := *locale
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Code < out[j].Code
	})
	return out, nil
}

// MemoryTrendRepository stores trend annotations keyed by career.
type MemoryTrendRepository struct {
	mu       sync.RWMutex
	trends   map[uuid.UUID]*TrendAnnotation
	insights map[uuid.UUID]map[uuid.UUID]*TrendInsight
}

// NewMemoryTrendRepository constructs the repository.
func NewMemoryTrendRepository() *MemoryTrendRepository {
	return &MemoryTrendRepository{
		trends:   make(map[uuid.UUID]*TrendAnnotation),
		insights: make(map[uuid.UUID]map[uuid.UUID]*TrendInsight),
	}
}

// GetByCareer fetches the trend annotation for a career.
func (m *MemoryTrendRepository) GetByCareer(_ context.Context, careerID uuid.UUID) (*TrendAnnotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	trend, ok := m.trends[careerID]
	if !ok {
		return nil, &NotFoundError{Resource: "trend_annotation", Key: careerID.String()}
	}
	copied := *trend
	copied.Insights = nil
	return &copied, nil
}

// Upsert creates or replaces the annotation for a career.
func (m *MemoryTrendRepository) Upsert(_ context.Context, record *TrendAnnotation) (*TrendAnnotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	copied.Insights = nil
	m.trends[record.CareerID] = &copied
	out := copied
	return &out, nil
}

// ListInsights returns localized insight rows for a trend annotation.
func (m *MemoryTrendRepository) ListInsights(_ context.Context, trendID uuid.UUID) ([]*TrendInsight, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byLocale := m.insights[trendID]
	out := make([]*TrendInsight, 0, len(byLocale))
	for _, insight := range byLocale {
		copied := *insight
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LocaleID.String() < out[j].LocaleID.String()
	})
	return out, nil
}

// UpsertInsight creates or replaces one localized insight row.
func (m *MemoryTrendRepository) UpsertInsight(_ context.Context, record *TrendInsight) (*TrendInsight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byLocale, ok := m.insights[record.TrendID]
	if !ok {
		byLocale = make(map[uuid.UUID]*TrendInsight)
		m.insights[record.TrendID] = byLocale
	}
	copied := *record
	byLocale[record.LocaleID] = &copied
	out := copied
	return &out, nil
}
