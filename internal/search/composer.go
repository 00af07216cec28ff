package search

import (
	"context"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	catalogcareers "github.com/goliatone/go-catalog/careers"
	"github.com/goliatone/go-catalog/internal/careers"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/internal/resolver"
	"github.com/goliatone/go-catalog/pkg/interfaces"
)

// Default pagination bounds applied when a request leaves them unset.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Request combines free-text search with structured filters. Text matches
// against resolved titles and descriptions, so a Spanish query finds
// careers whose Spanish title matches even when that title fell back from
// English.
type Request struct {
	Query    string
	Locale   string
	Filter   careers.Filter
	Page     int
	PageSize int
}

// Item is one search result: the career's language-agnostic attributes plus
// its resolved title.
type Item struct {
	Slug           string              `json:"slug"`
	Title          resolver.FieldValue `json:"title"`
	Category       string              `json:"category"`
	Level          string              `json:"level"`
	SalaryMin      int                 `json:"salary_min"`
	SalaryMax      int                 `json:"salary_max"`
	RemoteFriendly bool                `json:"remote_friendly"`
}

// Result is one page of matches with pagination metadata. Total counts all
// matches before paging; HasMore reports whether later pages exist.
type Result struct {
	Items    []Item `json:"items"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	HasMore  bool   `json:"has_more"`
}

// CareerLister is the slice of career storage the composer needs.
type CareerLister interface {
	List(ctx context.Context, filter careers.Filter) ([]*careers.Career, error)
}

// TitleResolver renders a career's title for one locale.
type TitleResolver interface {
	Resolve(ctx context.Context, req resolver.Request) (*resolver.ResolvedView, error)
}

// Composer runs catalog searches: structured filters narrow the candidate
// set in storage, titles and descriptions are resolved through the locale
// fallback chain, and free text ranks title-prefix matches ahead of title
// substrings, with description-only hits last.
type Composer struct {
	lister          CareerLister
	titles          TitleResolver
	defaultPageSize int
	maxPageSize     int
	retryBackoff    time.Duration
	logger          interfaces.Logger
}

// Option configures the composer at construction time.
type Option func(*Composer)

// WithPageSizes overrides the default and maximum page sizes.
func WithPageSizes(defaultSize, maxSize int) Option {
	return func(c *Composer) {
		if defaultSize > 0 {
			c.defaultPageSize = defaultSize
		}
		if maxSize > 0 {
			c.maxPageSize = maxSize
		}
	}
}

// WithRetryBackoff overrides the pause before the single retry of a
// transient store failure.
func WithRetryBackoff(backoff time.Duration) Option {
	return func(c *Composer) {
		if backoff > 0 {
			c.retryBackoff = backoff
		}
	}
}

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a search composer.
func New(lister CareerLister, titles TitleResolver, opts ...Option) *Composer {
	c := &Composer{
		lister:          lister,
		titles:          titles,
		defaultPageSize: DefaultPageSize,
		maxPageSize:     MaxPageSize,
		retryBackoff:    resolver.DefaultRetryBackoff,
		logger:          logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type rankedItem struct {
	item Item
	rank int
}

// Search executes the request. An empty query with a zero filter returns
// the whole catalog, paginated, in slug order.
func (c *Composer) Search(ctx context.Context, req Request) (*Result, error) {
	req = c.applyDefaults(req)
	if err := c.validate(req); err != nil {
		return nil, err
	}

	candidates, err := resolver.RetryTransient(ctx, c.retryBackoff, func() ([]*careers.Career, error) {
		return c.lister.List(ctx, req.Filter)
	})
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	locale := catalogcareers.NormalizeLocaleCode(req.Locale)
	if locale == "" {
		locale = catalogcareers.DefaultLocaleCode
	}

	ranked := make([]rankedItem, 0, len(candidates))
	for _, career := range candidates {
		if career == nil {
			continue
		}

		view, err := c.titles.Resolve(ctx, resolver.Request{
			Slug:   career.Slug,
			Locale: locale,
			Fields: []string{resolver.FieldTitle, resolver.FieldDescription},
		})
		if err != nil {
			return nil, err
		}
		title := view.Fields[resolver.FieldTitle]
		description := view.Fields[resolver.FieldDescription]

		rank, ok := rankMatch(query, title.Value, description.Value)
		if !ok {
			continue
		}

		ranked = append(ranked, rankedItem{
			rank: rank,
			item: Item{
				Slug:           career.Slug,
				Title:          title,
				Category:       career.Category,
				Level:          string(career.Level),
				SalaryMin:      career.SalaryMin,
				SalaryMax:      career.SalaryMax,
				RemoteFriendly: career.RemoteFriendly,
			},
		})
	}

	// prefix matches first, ties broken by slug so pages are stable
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].rank != ranked[j].rank {
			return ranked[i].rank < ranked[j].rank
		}
		return ranked[i].item.Slug < ranked[j].item.Slug
	})

	total := len(ranked)
	start := (req.Page - 1) * req.PageSize
	if start > total {
		start = total
	}
	end := start + req.PageSize
	if end > total {
		end = total
	}

	items := make([]Item, 0, end-start)
	for _, entry := range ranked[start:end] {
		items = append(items, entry.item)
	}

	c.logger.Trace("search.composed", "query", query, "locale", locale, "total", total, "page", req.Page)

	return &Result{
		Items:    items,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		HasMore:  req.Page*req.PageSize < total,
	}, nil
}

func (c *Composer) applyDefaults(req Request) Request {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = c.defaultPageSize
	}
	return req
}

func (c *Composer) validate(req Request) error {
	return validation.Errors{
		"page":      validation.Validate(req.Page, validation.Min(1)),
		"page_size": validation.Validate(req.PageSize, validation.Min(1), validation.Max(c.maxPageSize)),
	}.Filter()
}

// rankMatch scores resolved text against the query: 0 for a title prefix
// match, 1 for a title substring elsewhere, 2 for a description-only hit.
// Empty queries match everything at the prefix tier.
func rankMatch(query, title, description string) (int, bool) {
	if query == "" {
		return 0, true
	}
	loweredTitle := strings.ToLower(title)
	if strings.HasPrefix(loweredTitle, query) {
		return 0, true
	}
	if strings.Contains(loweredTitle, query) {
		return 1, true
	}
	if strings.Contains(strings.ToLower(description), query) {
		return 2, true
	}
	return 0, false
}
