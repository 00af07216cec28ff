package careers

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewLocaleRepository(db *bun.DB) repository.Repository[*Locale] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Locale]{
		NewRecord: func() *Locale { return &Locale{} },
		GetID: func(l *Locale) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Locale, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(l *Locale) string {
			return l.Code
		},
	})
}

func NewCareerRepository(db *bun.DB) repository.Repository[*Career] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Career]{
		NewRecord: func() *Career { return &Career{} },
		GetID: func(c *Career) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Career, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(c *Career) string {
			return c.Slug
		},
	})
}

func NewCareerTranslationRepository(db *bun.DB) repository.Repository[*CareerTranslation] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*CareerTranslation]{
		NewRecord: func() *CareerTranslation { return &CareerTranslation{} },
		GetID: func(ct *CareerTranslation) uuid.UUID {
			return ct.ID
		},
		SetID: func(ct *CareerTranslation, id uuid.UUID) {
			ct.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(ct *CareerTranslation) string {
			if ct == nil {
				return ""
			}
			return ct.ID.String()
		},
	})
}

func NewTrendRepository(db *bun.DB) repository.Repository[*TrendAnnotation] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*TrendAnnotation]{
		NewRecord: func() *TrendAnnotation { return &TrendAnnotation{} },
		GetID: func(t *TrendAnnotation) uuid.UUID {
			return t.ID
		},
		SetID: func(t *TrendAnnotation, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(t *TrendAnnotation) string {
			if t == nil {
				return ""
			}
			return t.ID.String()
		},
	})
}

func NewTrendInsightRepository(db *bun.DB) repository.Repository[*TrendInsight] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*TrendInsight]{
		NewRecord: func() *TrendInsight { return &TrendInsight{} },
		GetID: func(ti *TrendInsight) uuid.UUID {
			return ti.ID
		},
		SetID: func(ti *TrendInsight, id uuid.UUID) {
			ti.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(ti *TrendInsight) string {
			if ti == nil {
				return ""
			}
			return ti.ID.String()
		},
	})
}
