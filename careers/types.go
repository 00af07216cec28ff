package careers

import (
	"time"

	"github.com/goliatone/go-catalog/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Locale represents a supported catalog language.
type Locale struct {
	bun.BaseModel `bun:"table:locales,alias:l"`

	ID         uuid.UUID      `bun:",pk,type:uuid"         json:"id"`
	Code       string         `bun:"code,notnull"          json:"code"`
	Display    string         `bun:"display_name,notnull"  json:"display_name"`
	NativeName *string        `bun:"native_name"           json:"native_name,omitempty"`
	IsActive   bool           `bun:"is_active,notnull,default:true"   json:"is_active"`
	IsDefault  bool           `bun:"is_default,notnull,default:false" json:"is_default"`
	Metadata   map[string]any `bun:"metadata,type:jsonb"   json:"metadata,omitempty"`
	DeletedAt  *time.Time     `bun:"deleted_at,nullzero"   json:"deleted_at,omitempty"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Career is the language-agnostic record for a catalog entry. It is created
// at migration time and only touched afterwards for administrative
// corrections; localized text lives in CareerTranslation rows.
type Career struct {
	bun.BaseModel `bun:"table:careers,alias:c"`

	ID             uuid.UUID            `bun:",pk,type:uuid" json:"id"`
	Slug           string               `bun:"slug,notnull" json:"slug"`
	Category       string               `bun:"category,notnull" json:"category"`
	Level          domain.CareerLevel   `bun:"level,notnull,default:'entry'" json:"level"`
	SalaryMin      int                  `bun:"salary_min,notnull,default:0" json:"salary_min"`
	SalaryMax      int                  `bun:"salary_max,notnull,default:0" json:"salary_max"`
	RemoteFriendly bool                 `bun:"remote_friendly,notnull,default:false" json:"remote_friendly"`
	Metadata       map[string]any       `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	DeletedAt      *time.Time           `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt      time.Time            `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time            `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
	Translations   []*CareerTranslation `bun:"rel:has-many,join:id=career_id" json:"translations,omitempty"`
	Trend          *TrendAnnotation     `bun:"rel:has-one,join:id=career_id"  json:"trend,omitempty"`
}

// CareerTranslation stores the localized variant of a career. At most one
// row exists per (career_id, locale_id); missing translations are absent
// rows, never empty ones.
type CareerTranslation struct {
	bun.BaseModel `bun:"table:career_translations,alias:ctr"`

	ID          uuid.UUID                `bun:",pk,type:uuid" json:"id"`
	CareerID    uuid.UUID                `bun:"career_id,notnull,type:uuid" json:"career_id"`
	LocaleID    uuid.UUID                `bun:"locale_id,notnull,type:uuid" json:"locale_id"`
	Title       string                   `bun:"title,notnull" json:"title"`
	Summary     *string                  `bun:"summary" json:"summary,omitempty"`
	Description string                   `bun:"description,notnull,default:''" json:"description"`
	Skills      []string                 `bun:"skills,type:jsonb" json:"skills,omitempty"`
	Source      domain.TranslationSource `bun:"source,notnull,default:'import'" json:"source"`
	DeletedAt   *time.Time               `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt   time.Time                `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time                `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Locale *Locale `bun:"rel:belongs-to,join:locale_id=id" json:"locale,omitempty"`
}

// TrendAnnotation carries market trend numbers for a career. Numeric fields
// are language-agnostic and shared across locales; the narrative insight is
// localized through TrendInsight rows.
type TrendAnnotation struct {
	bun.BaseModel `bun:"table:trend_annotations,alias:ta"`

	ID         uuid.UUID             `bun:",pk,type:uuid" json:"id"`
	CareerID   uuid.UUID             `bun:"career_id,notnull,type:uuid" json:"career_id"`
	Score      float64               `bun:"score,notnull,default:0" json:"score"`
	Direction  domain.TrendDirection `bun:"direction,notnull,default:'stable'" json:"direction"`
	GrowthRate float64               `bun:"growth_rate,notnull,default:0" json:"growth_rate"`
	CreatedAt  time.Time             `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time             `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Insights []*TrendInsight `bun:"rel:has-many,join:id=trend_id" json:"insights,omitempty"`
}

// TrendInsight is the localized narrative attached to a trend annotation.
type TrendInsight struct {
	bun.BaseModel `bun:"table:trend_insights,alias:ti"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	TrendID   uuid.UUID `bun:"trend_id,notnull,type:uuid" json:"trend_id"`
	LocaleID  uuid.UUID `bun:"locale_id,notnull,type:uuid" json:"locale_id"`
	Insight   string    `bun:"insight,notnull" json:"insight"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Locale *Locale `bun:"rel:belongs-to,join:locale_id=id" json:"locale,omitempty"`
}
