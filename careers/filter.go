package careers

import (
	"strings"

	"github.com/goliatone/go-catalog/domain"
)

// Filter captures structured, language-agnostic search criteria. Every field
// is optional; zero values mean "no constraint".
type Filter struct {
	Category       string
	Level          domain.CareerLevel
	SalaryMin      *int
	SalaryMax      *int
	RemoteFriendly *bool
}

// IsZero reports whether the filter applies no constraint at all.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Category) == "" &&
		f.Level == "" &&
		f.SalaryMin == nil &&
		f.SalaryMax == nil &&
		f.RemoteFriendly == nil
}

// Matches evaluates the filter against a career's language-agnostic
// attributes. Salary bounds match when the career's advertised range
// overlaps the requested one.
func (f Filter) Matches(c *Career) bool {
	if c == nil {
		return false
	}
	if category := strings.TrimSpace(f.Category); category != "" && !strings.EqualFold(category, c.Category) {
		return false
	}
	if f.Level != "" && f.Level != c.Level {
		return false
	}
	if f.SalaryMin != nil && c.SalaryMax < *f.SalaryMin {
		return false
	}
	if f.SalaryMax != nil && c.SalaryMin > *f.SalaryMax {
		return false
	}
	if f.RemoteFriendly != nil && c.RemoteFriendly != *f.RemoteFriendly {
		return false
	}
	return true
}
