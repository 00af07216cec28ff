package catalog

import (
	"context"

	publiccareers "github.com/goliatone/go-catalog/careers"
	"github.com/goliatone/go-catalog/internal/careers"
	auditcmd "github.com/goliatone/go-catalog/internal/commands/audit"
	cachecmd "github.com/goliatone/go-catalog/internal/commands/cache"
	"github.com/goliatone/go-catalog/internal/di"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/internal/resolver"
	"github.com/goliatone/go-catalog/internal/search"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	"github.com/google/uuid"
)

// CareersService exports the careers service contract for consumers of the
// catalog package.
type CareersService = careers.Service

// Storage and service DTOs re-exported for host applications.
type (
	Career                    = publiccareers.Career
	CareerTranslation         = publiccareers.CareerTranslation
	Locale                    = publiccareers.Locale
	TrendAnnotation           = publiccareers.TrendAnnotation
	TrendInsight              = publiccareers.TrendInsight
	Filter                    = publiccareers.Filter
	CreateCareerRequest       = careers.CreateCareerRequest
	UpdateCareerRequest       = careers.UpdateCareerRequest
	TranslationInput          = careers.TranslationInput
	UpsertTranslationRequest  = careers.UpsertTranslationRequest
	SetTrendRequest           = careers.SetTrendRequest
	ResolveRequest            = resolver.Request
	ResolvedView              = resolver.ResolvedView
	ResolvedTrend             = resolver.ResolvedTrend
	FieldValue                = resolver.FieldValue
	SearchRequest             = search.Request
	SearchResult              = search.Result
	SearchItem                = search.Item
	TranslationAuditOptions   = interfaces.TranslationAuditOptions
	TranslationGap            = interfaces.TranslationGap
	CheckTranslationsCommand  = auditcmd.CheckTranslationsCommand
	ClearResolutionsCommand   = cachecmd.ClearCacheCommand
	CheckTranslationsHandler  = auditcmd.CheckTranslationsHandler
	ClearResolutionsHandler   = cachecmd.ClearCacheHandler
)

// IsNotFound reports whether err represents a missing catalog record.
func IsNotFound(err error) bool { return publiccareers.IsNotFound(err) }

// IsTransient reports whether err represents a transient store failure.
func IsTransient(err error) bool { return publiccareers.IsTransient(err) }

// Module is the top level catalog runtime facade. Translation writes made
// through the module keep the resolution cache coherent.
type Module struct {
	container *di.Container
}

// New constructs a catalog module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Careers returns the configured careers service. Translation writes made
// directly against the service bypass resolution-cache invalidation; prefer
// the module-level UpsertTranslation and DeleteTranslation helpers.
func (m *Module) Careers() CareersService {
	return m.container.CareersService()
}

// Resolve renders one career in the requested locale with per-field
// fallback and provenance.
func (m *Module) Resolve(ctx context.Context, req ResolveRequest) (*ResolvedView, error) {
	return m.container.Resolver().Resolve(ctx, req)
}

// Search runs a combined text and structured-filter query over the catalog.
func (m *Module) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	return m.container.SearchComposer().Search(ctx, req)
}

// UpsertTranslation writes one localized row and drops the career's cached
// resolutions so readers see the new text immediately.
func (m *Module) UpsertTranslation(ctx context.Context, req UpsertTranslationRequest) (*CareerTranslation, error) {
	record, err := m.container.CareersService().UpsertTranslation(ctx, req)
	if err != nil {
		return nil, err
	}
	m.invalidateCareer(ctx, req.CareerID)
	return record, nil
}

// DeleteTranslation removes one localized row and drops the career's cached
// resolutions.
func (m *Module) DeleteTranslation(ctx context.Context, careerID uuid.UUID, locale string) error {
	if err := m.container.CareersService().DeleteTranslation(ctx, careerID, locale); err != nil {
		return err
	}
	m.invalidateCareer(ctx, careerID)
	return nil
}

// InvalidateResolutions drops every cached resolution for one career slug.
func (m *Module) InvalidateResolutions(slug string) {
	m.container.Resolver().Invalidate(slug)
}

// ClearResolutions empties the resolution cache.
func (m *Module) ClearResolutions() {
	m.container.Resolver().ClearCache()
}

// TranslationCheckHandler returns the command handler that audits
// translation coverage, or nil when commands are disabled.
func (m *Module) TranslationCheckHandler() *CheckTranslationsHandler {
	if !m.container.Config.Commands.Enabled {
		return nil
	}
	opts := []auditcmd.CheckHandlerOption{}
	if cron := m.container.Config.Commands.AuditCron; cron != "" {
		opts = append(opts, auditcmd.CheckWithCronExpression(cron))
	}
	return auditcmd.NewCheckTranslationsHandler(
		m.container.CareersService(),
		logging.CommandsLogger(m.container.LoggerProvider()),
		opts...,
	)
}

// CacheClearHandler returns the command handler that clears resolved views,
// or nil when commands are disabled.
func (m *Module) CacheClearHandler() *ClearResolutionsHandler {
	if !m.container.Config.Commands.Enabled {
		return nil
	}
	return cachecmd.NewClearCacheHandler(
		m.container.Resolver(),
		logging.CommandsLogger(m.container.LoggerProvider()),
	)
}

func (m *Module) invalidateCareer(ctx context.Context, careerID uuid.UUID) {
	record, err := m.container.CareersService().Get(ctx, careerID)
	if err != nil || record == nil {
		m.container.Resolver().ClearCache()
		return
	}
	m.container.Resolver().Invalidate(record.Slug)
}
