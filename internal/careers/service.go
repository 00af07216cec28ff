package careers

import (
	"context"
	"errors"
	"strings"
	"time"

	catalogcareers "github.com/goliatone/go-catalog/careers"
	"github.com/goliatone/go-catalog/domain"
	"github.com/goliatone/go-catalog/internal/identity"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	"github.com/google/uuid"
)

// Service exposes career catalog management use-cases.
type Service interface {
	Create(ctx context.Context, req CreateCareerRequest) (*Career, error)
	Get(ctx context.Context, id uuid.UUID) (*Career, error)
	GetBySlug(ctx context.Context, slug string) (*Career, error)
	List(ctx context.Context, filter Filter) ([]*Career, error)
	Update(ctx context.Context, req UpdateCareerRequest) (*Career, error)
	UpsertTranslation(ctx context.Context, req UpsertTranslationRequest) (*CareerTranslation, error)
	DeleteTranslation(ctx context.Context, careerID uuid.UUID, locale string) error
	AvailableLocales(ctx context.Context, id uuid.UUID) ([]string, error)
	SetTrend(ctx context.Context, req SetTrendRequest) (*TrendAnnotation, error)
	AuditTranslations(ctx context.Context, required []string, opts interfaces.TranslationAuditOptions) ([]interfaces.TranslationGap, error)
}

// CreateCareerRequest captures the information required to create a career.
type CreateCareerRequest struct {
	Slug           string
	Category       string
	Level          domain.CareerLevel
	SalaryMin      int
	SalaryMax      int
	RemoteFriendly bool
	Metadata       map[string]any
	Translations   []TranslationInput
}

// TranslationInput represents localized fields supplied during create or upsert.
type TranslationInput struct {
	Locale      string
	Title       string
	Summary     *string
	Description string
	Skills      []string
	Source      domain.TranslationSource
}

// UpdateCareerRequest captures administrative corrections to a career's
// language-agnostic attributes. Careers are otherwise immutable after
// migration.
type UpdateCareerRequest struct {
	ID             uuid.UUID
	Category       *string
	Level          *domain.CareerLevel
	SalaryMin      *int
	SalaryMax      *int
	RemoteFriendly *bool
}

// UpsertTranslationRequest creates or replaces the translation row for one
// (career, locale) pair.
type UpsertTranslationRequest struct {
	CareerID    uuid.UUID
	Locale      string
	Title       string
	Summary     *string
	Description string
	Skills      []string
	Source      domain.TranslationSource
}

// SetTrendRequest attaches or refreshes market trend data for a career.
// Insights carry localized narrative keyed by locale code.
type SetTrendRequest struct {
	CareerID   uuid.UUID
	Score      float64
	Direction  domain.TrendDirection
	GrowthRate float64
	Insights   map[string]string
}

var (
	ErrSlugRequired       = errors.New("careers: slug is required")
	ErrSlugInvalid        = errors.New("careers: slug contains invalid characters")
	ErrSlugExists         = errors.New("careers: slug already exists")
	ErrCategoryRequired   = errors.New("careers: category is required")
	ErrLevelInvalid       = errors.New("careers: unknown career level")
	ErrSalaryRangeInvalid = errors.New("careers: salary_min must not exceed salary_max")
	ErrCareerIDRequired   = errors.New("careers: career id required")
	ErrUnknownLocale      = errors.New("careers: unknown locale")
	ErrDuplicateLocale    = errors.New("careers: duplicate locale provided")
	ErrTitleRequired      = errors.New("careers: translation title is required")
	ErrTrendsDisabled     = errors.New("careers: trends feature disabled")
)

// CareerRepository abstracts storage operations for career entities.
type CareerRepository interface {
	Create(ctx context.Context, record *Career) (*Career, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Career, error)
	GetBySlug(ctx context.Context, slug string) (*Career, error)
	List(ctx context.Context, filter Filter) ([]*Career, error)
	Update(ctx context.Context, record *Career) (*Career, error)
	ListTranslations(ctx context.Context, careerID uuid.UUID) ([]*CareerTranslation, error)
	UpsertTranslation(ctx context.Context, record *CareerTranslation) (*CareerTranslation, error)
	DeleteTranslation(ctx context.Context, careerID, localeID uuid.UUID) error
}

// TrendRepository abstracts storage for trend annotations and their insights.
type TrendRepository interface {
	GetByCareer(ctx context.Context, careerID uuid.UUID) (*TrendAnnotation, error)
	Upsert(ctx context.Context, record *TrendAnnotation) (*TrendAnnotation, error)
	ListInsights(ctx context.Context, trendID uuid.UUID) ([]*TrendInsight, error)
	UpsertInsight(ctx context.Context, record *TrendInsight) (*TrendInsight, error)
}

// LocaleRepository resolves locales by code.
type LocaleRepository interface {
	GetByCode(ctx context.Context, code string) (*Locale, error)
	List(ctx context.Context) ([]*Locale, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = clock
	}
}

type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithTrendsEnabled toggles the trend annotation workflow for the service.
func WithTrendsEnabled(enabled bool) ServiceOption {
	return func(s *service) {
		s.trendsEnabled = enabled
	}
}

// WithLogger injects the module logger used for operational entries.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	careers       CareerRepository
	trends        TrendRepository
	locales       LocaleRepository
	now           func() time.Time
	id            IDGenerator
	trendsEnabled bool
	logger        interfaces.Logger
}

// NewService constructs a careers service with the required dependencies.
func NewService(careerRepo CareerRepository, trendRepo TrendRepository, localeRepo LocaleRepository, opts ...ServiceOption) Service {
	s := &service{
		careers:       careerRepo,
		trends:        trendRepo,
		locales:       localeRepo,
		now:           time.Now,
		id:            uuid.New,
		trendsEnabled: true,
		logger:        logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create orchestrates creation of a new career entry with translations.
func (s *service) Create(ctx context.Context, req CreateCareerRequest) (*Career, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	if !catalogcareers.IsValidSlug(slug) {
		return nil, ErrSlugInvalid
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, ErrCategoryRequired
	}
	level := req.Level
	if level == "" {
		level = domain.LevelEntry
	}
	if !domain.ValidCareerLevel(string(level)) {
		return nil, ErrLevelInvalid
	}
	if req.SalaryMin < 0 || (req.SalaryMax > 0 && req.SalaryMin > req.SalaryMax) {
		return nil, ErrSalaryRangeInvalid
	}

	if existing, err := s.careers.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, ErrSlugExists
	} else if err != nil && !catalogcareers.IsNotFound(err) {
		return nil, err
	}

	now := s.now()
	record := &Career{
		ID:             identity.CareerUUID(slug),
		Slug:           slug,
		Category:       strings.ToLower(strings.TrimSpace(req.Category)),
		Level:          level,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		RemoteFriendly: req.RemoteFriendly,
		Metadata:       req.Metadata,
		CreatedAt:      now,
		UpdatedAt:      now,
		Translations:   []*CareerTranslation{},
	}

	seenLocales := map[string]struct{}{}
	for _, tr := range req.Translations {
		code := catalogcareers.NormalizeLocaleCode(tr.Locale)
		if code == "" {
			return nil, ErrUnknownLocale
		}
		if _, ok := seenLocales[code]; ok {
			return nil, ErrDuplicateLocale
		}
		if strings.TrimSpace(tr.Title) == "" {
			return nil, ErrTitleRequired
		}

		loc, err := s.locales.GetByCode(ctx, code)
		if err != nil {
			return nil, ErrUnknownLocale
		}

		record.Translations = append(record.Translations, &CareerTranslation{
			ID:          identity.TranslationUUID(record.ID, loc.ID),
			CareerID:    record.ID,
			LocaleID:    loc.ID,
			Title:       tr.Title,
			Summary:     tr.Summary,
			Description: tr.Description,
			Skills:      append([]string(nil), tr.Skills...),
			Source:      domain.NormalizeTranslationSource(string(tr.Source)),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		seenLocales[code] = struct{}{}
	}

	created, err := s.careers.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("careers.create", "career_slug", created.Slug, "translations", len(created.Translations))
	return created, nil
}

// Get fetches a career by identifier.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Career, error) {
	if id == uuid.Nil {
		return nil, ErrCareerIDRequired
	}
	return s.careers.GetByID(ctx, id)
}

// GetBySlug fetches a career by slug.
func (s *service) GetBySlug(ctx context.Context, slug string) (*Career, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	return s.careers.GetBySlug(ctx, slug)
}

// List returns careers matching the structured filter.
func (s *service) List(ctx context.Context, filter Filter) ([]*Career, error) {
	return s.careers.List(ctx, filter)
}

// Update applies administrative corrections to language-agnostic attributes.
func (s *service) Update(ctx context.Context, req UpdateCareerRequest) (*Career, error) {
	if req.ID == uuid.Nil {
		return nil, ErrCareerIDRequired
	}

	record, err := s.careers.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return nil, ErrCategoryRequired
		}
		record.Category = strings.ToLower(category)
	}
	if req.Level != nil {
		if !domain.ValidCareerLevel(string(*req.Level)) {
			return nil, ErrLevelInvalid
		}
		record.Level = *req.Level
	}
	if req.SalaryMin != nil {
		record.SalaryMin = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		record.SalaryMax = *req.SalaryMax
	}
	if record.SalaryMin < 0 || (record.SalaryMax > 0 && record.SalaryMin > record.SalaryMax) {
		return nil, ErrSalaryRangeInvalid
	}
	if req.RemoteFriendly != nil {
		record.RemoteFriendly = *req.RemoteFriendly
	}
	record.UpdatedAt = s.now()

	return s.careers.Update(ctx, record)
}

// UpsertTranslation creates or replaces the localized row for one locale.
func (s *service) UpsertTranslation(ctx context.Context, req UpsertTranslationRequest) (*CareerTranslation, error) {
	if req.CareerID == uuid.Nil {
		return nil, ErrCareerIDRequired
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	code := catalogcareers.NormalizeLocaleCode(req.Locale)
	if code == "" {
		return nil, ErrUnknownLocale
	}

	if _, err := s.careers.GetByID(ctx, req.CareerID); err != nil {
		return nil, err
	}

	loc, err := s.locales.GetByCode(ctx, code)
	if err != nil {
		return nil, ErrUnknownLocale
	}

	now := s.now()
	record := &CareerTranslation{
		ID:          identity.TranslationUUID(req.CareerID, loc.ID),
		CareerID:    req.CareerID,
		LocaleID:    loc.ID,
		Title:       req.Title,
		Summary:     req.Summary,
		Description: req.Description,
		Skills:      append([]string(nil), req.Skills...),
		Source:      domain.NormalizeTranslationSource(string(req.Source)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	saved, err := s.careers.UpsertTranslation(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("careers.translation.upsert", "career_id", req.CareerID, "locale", code, "source", string(record.Source))
	return saved, nil
}

// DeleteTranslation removes the localized row for one locale.
func (s *service) DeleteTranslation(ctx context.Context, careerID uuid.UUID, locale string) error {
	if careerID == uuid.Nil {
		return ErrCareerIDRequired
	}
	loc, err := s.locales.GetByCode(ctx, catalogcareers.NormalizeLocaleCode(locale))
	if err != nil {
		return ErrUnknownLocale
	}
	return s.careers.DeleteTranslation(ctx, careerID, loc.ID)
}

// AvailableLocales reports which locales carry a translation for the career.
func (s *service) AvailableLocales(ctx context.Context, id uuid.UUID) ([]string, error) {
	if id == uuid.Nil {
		return nil, ErrCareerIDRequired
	}
	if _, err := s.careers.GetByID(ctx, id); err != nil {
		return nil, err
	}

	translations, err := s.careers.ListTranslations(ctx, id)
	if err != nil {
		return nil, err
	}

	index, err := s.localeCodesByID(ctx)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(translations))
	seen := map[string]struct{}{}
	for _, tr := range translations {
		if tr == nil {
			continue
		}
		code := index[tr.LocaleID]
		if code == "" {
			code = tr.LocaleID.String()
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}

// SetTrend attaches or refreshes the trend annotation for a career.
func (s *service) SetTrend(ctx context.Context, req SetTrendRequest) (*TrendAnnotation, error) {
	if !s.trendsEnabled {
		return nil, ErrTrendsDisabled
	}
	if req.CareerID == uuid.Nil {
		return nil, ErrCareerIDRequired
	}
	if _, err := s.careers.GetByID(ctx, req.CareerID); err != nil {
		return nil, err
	}

	direction := req.Direction
	if direction == "" {
		direction = domain.TrendStable
	}

	now := s.now()
	record := &TrendAnnotation{
		ID:         identity.TrendUUID(req.CareerID),
		CareerID:   req.CareerID,
		Score:      req.Score,
		Direction:  direction,
		GrowthRate: req.GrowthRate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	saved, err := s.trends.Upsert(ctx, record)
	if err != nil {
		return nil, err
	}

	for code, text := range req.Insights {
		normalized := catalogcareers.NormalizeLocaleCode(code)
		if normalized == "" || strings.TrimSpace(text) == "" {
			continue
		}
		loc, err := s.locales.GetByCode(ctx, normalized)
		if err != nil {
			return nil, ErrUnknownLocale
		}
		if _, err := s.trends.UpsertInsight(ctx, &TrendInsight{
			ID:        identity.TrendInsightUUID(saved.ID, loc.ID),
			TrendID:   saved.ID,
			LocaleID:  loc.ID,
			Insight:   text,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return nil, err
		}
	}

	return saved, nil
}

func (s *service) localeCodesByID(ctx context.Context) (map[uuid.UUID]string, error) {
	locales, err := s.locales.List(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[uuid.UUID]string, len(locales))
	for _, loc := range locales {
		if loc != nil {
			index[loc.ID] = loc.Code
		}
	}
	return index, nil
}
