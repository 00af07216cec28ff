package careers

import (
	"context"
	"fmt"

	catalogcareers "github.com/goliatone/go-catalog/careers"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunCareerRepository struct {
	db           *bun.DB
	repo         repository.Repository[*Career]
	translations repository.Repository[*CareerTranslation]
}

func NewBunCareerRepository(db *bun.DB) *BunCareerRepository {
	return NewBunCareerRepositoryWithCache(db, nil, nil)
}

func NewBunCareerRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCareerRepository {
	base := NewCareerRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunCareerRepository{
		db:           db,
		repo:         wrapped,
		translations: NewCareerTranslationRepository(db),
	}
}

func (r *BunCareerRepository) Create(ctx context.Context, record *Career) (*Career, error) {
	if len(record.Translations) == 0 {
		created, err := r.repo.Create(ctx, record)
		if err != nil {
			return nil, mapRepositoryError(err, "career", record.Slug)
		}
		return created, nil
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return fmt.Errorf("insert career: %w", err)
		}
		for _, tr := range record.Translations {
			if _, err := tx.NewInsert().Model(tr).Exec(ctx); err != nil {
				return fmt.Errorf("insert career translation: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, catalogcareers.WrapTransient(err, "create career")
	}
	return record, nil
}

func (r *BunCareerRepository) GetByID(ctx context.Context, id uuid.UUID) (*Career, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "career", id.String())
	}
	return result, nil
}

func (r *BunCareerRepository) GetBySlug(ctx context.Context, slug string) (*Career, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "career", slug)
	}
	return result, nil
}

// List pushes the structured filter down to SQL and orders by slug so
// downstream ranking is deterministic before text matching applies.
func (r *BunCareerRepository) List(ctx context.Context, filter Filter) ([]*Career, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if filter.Category != "" {
				q = q.Where("?TableAlias.category = ?", filter.Category)
			}
			if filter.Level != "" {
				q = q.Where("?TableAlias.level = ?", string(filter.Level))
			}
			if filter.SalaryMin != nil {
				q = q.Where("?TableAlias.salary_max >= ?", *filter.SalaryMin)
			}
			if filter.SalaryMax != nil {
				q = q.Where("?TableAlias.salary_min <= ?", *filter.SalaryMax)
			}
			if filter.RemoteFriendly != nil {
				q = q.Where("?TableAlias.remote_friendly = ?", *filter.RemoteFriendly)
			}
			return q.OrderExpr("?TableAlias.slug ASC")
		}),
	)
	if err != nil {
		return nil, catalogcareers.WrapTransient(err, "list careers")
	}
	return records, nil
}

func (r *BunCareerRepository) Update(ctx context.Context, record *Career) (*Career, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateColumns("category", "level", "salary_min", "salary_max", "remote_friendly", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "career", record.Slug)
	}
	return updated, nil
}

func (r *BunCareerRepository) ListTranslations(ctx context.Context, careerID uuid.UUID) ([]*CareerTranslation, error) {
	records, _, err := r.translations.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.career_id = ?", careerID)
		}),
	)
	if err != nil {
		return nil, catalogcareers.WrapTransient(err, "list career translations")
	}
	return records, nil
}

// UpsertTranslation replaces the row for one (career, locale) pair. The
// delete-then-insert runs in a transaction so readers never observe a gap.
func (r *BunCareerRepository) UpsertTranslation(ctx context.Context, record *CareerTranslation) (*CareerTranslation, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*CareerTranslation)(nil)).
			Where("?TableAlias.career_id = ?", record.CareerID).
			Where("?TableAlias.locale_id = ?", record.LocaleID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete career translation: %w", err)
		}
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return fmt.Errorf("insert career translation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, catalogcareers.WrapTransient(err, "upsert career translation")
	}
	return record, nil
}

func (r *BunCareerRepository) DeleteTranslation(ctx context.Context, careerID, localeID uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*CareerTranslation)(nil)).
		Where("?TableAlias.career_id = ?", careerID).
		Where("?TableAlias.locale_id = ?", localeID).
		Exec(ctx)
	if err != nil {
		return catalogcareers.WrapTransient(err, "delete career translation")
	}
	return nil
}

type BunTrendRepository struct {
	db       *bun.DB
	repo     repository.Repository[*TrendAnnotation]
	insights repository.Repository[*TrendInsight]
}

func NewBunTrendRepository(db *bun.DB) *BunTrendRepository {
	return NewBunTrendRepositoryWithCache(db, nil, nil)
}

func NewBunTrendRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunTrendRepository {
	base := NewTrendRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunTrendRepository{
		db:       db,
		repo:     wrapped,
		insights: NewTrendInsightRepository(db),
	}
}

func (r *BunTrendRepository) GetByCareer(ctx context.Context, careerID uuid.UUID) (*TrendAnnotation, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.career_id = ?", careerID)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, catalogcareers.WrapTransient(err, "get trend annotation")
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "trend_annotation", Key: careerID.String()}
	}
	return records[0], nil
}

func (r *BunTrendRepository) Upsert(ctx context.Context, record *TrendAnnotation) (*TrendAnnotation, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*TrendAnnotation)(nil)).
			Where("?TableAlias.career_id = ?", record.CareerID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete trend annotation: %w", err)
		}
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return fmt.Errorf("insert trend annotation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, catalogcareers.WrapTransient(err, "upsert trend annotation")
	}
	return record, nil
}

func (r *BunTrendRepository) ListInsights(ctx context.Context, trendID uuid.UUID) ([]*TrendInsight, error) {
	records, _, err := r.insights.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.trend_id = ?", trendID)
		}),
	)
	if err != nil {
		return nil, catalogcareers.WrapTransient(err, "list trend insights")
	}
	return records, nil
}

func (r *BunTrendRepository) UpsertInsight(ctx context.Context, record *TrendInsight) (*TrendInsight, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*TrendInsight)(nil)).
			Where("?TableAlias.trend_id = ?", record.TrendID).
			Where("?TableAlias.locale_id = ?", record.LocaleID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete trend insight: %w", err)
		}
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return fmt.Errorf("insert trend insight: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, catalogcareers.WrapTransient(err, "upsert trend insight")
	}
	return record, nil
}

type BunLocaleRepository struct {
	repo repository.Repository[*Locale]
}

func NewBunLocaleRepository(db *bun.DB) *BunLocaleRepository {
	return NewBunLocaleRepositoryWithCache(db, nil, nil)
}

// NewBunLocaleRepositoryWithCache constructs a LocaleRepository with optional caching.
func NewBunLocaleRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunLocaleRepository {
	base := NewLocaleRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunLocaleRepository{repo: wrapped}
}

func (r *BunLocaleRepository) GetByCode(ctx context.Context, code string) (*Locale, error) {
	result, err := r.repo.GetByIdentifier(ctx, code)
	if err != nil {
		return nil, mapRepositoryError(err, "locale", code)
	}
	return result, nil
}

func (r *BunLocaleRepository) List(ctx context.Context) ([]*Locale, error) {
	records, _, err := r.repo.List(ctx)
	if err != nil {
		return nil, catalogcareers.WrapTransient(err, "list locales")
	}
	return records, nil
}

func (r *BunLocaleRepository) Create(ctx context.Context, record *Locale) (*Locale, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, catalogcareers.WrapTransient(err, "create locale")
	}
	return created, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return catalogcareers.WrapTransient(err, fmt.Sprintf("%s repository error", resource))
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
