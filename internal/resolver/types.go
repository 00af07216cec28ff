package resolver

import (
	"strings"

	"github.com/goliatone/go-catalog/domain"
)

// Field names accepted by resolution requests.
const (
	FieldTitle       = "title"
	FieldSummary     = "summary"
	FieldDescription = "description"
	FieldSkills      = "skills"
)

// DefaultFields is the field set used when a request names none.
var DefaultFields = []string{FieldTitle, FieldSummary, FieldDescription, FieldSkills}

// Request asks for a career rendered in one locale. Fields defaults to
// DefaultFields when empty; unknown field names are ignored.
type Request struct {
	Slug   string
	Locale string
	Fields []string
}

// FieldValue is one resolved field together with where its text came from.
// Values carries list fields (skills); Value carries scalar fields.
type FieldValue struct {
	Value      string            `json:"value,omitempty"`
	Values     []string          `json:"values,omitempty"`
	Provenance domain.Provenance `json:"provenance"`
	Locale     string            `json:"locale,omitempty"`
}

// ResolvedView is the per-field resolution of one career for one locale.
type ResolvedView struct {
	Slug   string                `json:"slug"`
	Locale string                `json:"locale"`
	Fields map[string]FieldValue `json:"fields"`
	Trend  *ResolvedTrend        `json:"trend,omitempty"`
}

// ResolvedTrend carries the language-agnostic trend numbers plus the
// localized narrative, resolved through the same fallback chain as the
// translation fields. Insight is nil when no narrative exists in any locale.
type ResolvedTrend struct {
	Score      float64               `json:"score"`
	Direction  domain.TrendDirection `json:"direction"`
	GrowthRate float64               `json:"growth_rate"`
	Insight    *FieldValue           `json:"insight,omitempty"`
}

func (v *ResolvedView) clone() *ResolvedView {
	if v == nil {
		return nil
	}
	out := &ResolvedView{
		Slug:   v.Slug,
		Locale: v.Locale,
		Fields: make(map[string]FieldValue, len(v.Fields)),
	}
	for name, value := range v.Fields {
		if value.Values != nil {
			value.Values = append([]string{}, value.Values...)
		}
		out.Fields[name] = value
	}
	if v.Trend != nil {
		trend := *v.Trend
		if v.Trend.Insight != nil {
			insight := *v.Trend.Insight
			insight.Values = append([]string(nil), v.Trend.Insight.Values...)
			trend.Insight = &insight
		}
		out.Trend = &trend
	}
	return out
}

func normalizeFields(fields []string) []string {
	if len(fields) == 0 {
		out := make([]string, len(DefaultFields))
		copy(out, DefaultFields)
		return out
	}

	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		name := strings.ToLower(strings.TrimSpace(field))
		switch name {
		case FieldTitle, FieldSummary, FieldDescription, FieldSkills:
		default:
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	if len(out) == 0 {
		out = append(out, DefaultFields...)
	}
	return out
}
