package di

import (
	"database/sql"
	"strings"
	"time"

	catalogcareers "github.com/goliatone/go-catalog/careers"
	"github.com/goliatone/go-catalog/internal/careers"
	"github.com/goliatone/go-catalog/internal/identity"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/internal/logging/console"
	"github.com/goliatone/go-catalog/internal/logging/gologger"
	"github.com/goliatone/go-catalog/internal/resolver"
	"github.com/goliatone/go-catalog/internal/runtimeconfig"
	"github.com/goliatone/go-catalog/internal/search"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires module dependencies: repositories, the careers service,
// the resolver, and the search composer. Memory-backed repositories are the
// default; WithBunDB swaps in bun storage with optional repository caching.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	sqlDB         *sql.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider

	careerRepo careers.CareerRepository
	trendRepo  careers.TrendRepository
	localeRepo careers.LocaleRepository

	memoryLocaleRepo *careers.MemoryLocaleRepository

	careerSvc careers.Service
	resolver  *resolver.Resolver
	composer  *search.Composer
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds bun-backed repositories over the supplied database.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository-level cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider built from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithCareersService overrides the default careers service binding.
func WithCareersService(svc careers.Service) Option {
	return func(c *Container) {
		c.careerSvc = svc
	}
}

// WithCareerRepository overrides the default career repository binding.
func WithCareerRepository(repo careers.CareerRepository) Option {
	return func(c *Container) {
		c.careerRepo = repo
	}
}

// WithTrendRepository overrides the default trend repository binding.
func WithTrendRepository(repo careers.TrendRepository) Option {
	return func(c *Container) {
		c.trendRepo = repo
	}
}

// WithLocaleRepository overrides the default locale repository binding.
func WithLocaleRepository(repo careers.LocaleRepository) Option {
	return func(c *Container) {
		c.localeRepo = repo
		c.memoryLocaleRepo = nil
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	memoryCareerRepo := careers.NewMemoryCareerRepository()
	memoryTrendRepo := careers.NewMemoryTrendRepository()
	memoryLocaleRepo := careers.NewMemoryLocaleRepository()

	c := &Container{
		Config:           cfg,
		cacheTTL:         cacheTTL,
		careerRepo:       memoryCareerRepo,
		trendRepo:        memoryTrendRepo,
		localeRepo:       memoryLocaleRepo,
		memoryLocaleRepo: memoryLocaleRepo,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.seedLocales()
	c.configureCacheDefaults()
	c.configureRepositories()

	if err := c.configureLogging(); err != nil {
		return nil, err
	}

	if c.careerSvc == nil {
		c.careerSvc = careers.NewService(
			c.careerRepo,
			c.trendRepo,
			c.localeRepo,
			careers.WithTrendsEnabled(cfg.Features.Trends),
			careers.WithLogger(logging.CareersLogger(c.loggerProvider)),
		)
	}

	resolutionCache := resolver.NewCache(cfg.Resolver.CacheTTL)
	c.resolver = resolver.New(
		c.careerRepo,
		c.trendRepo,
		c.localeRepo,
		resolver.WithCache(resolutionCache),
		resolver.WithRetryBackoff(cfg.Resolver.RetryBackoff),
		resolver.WithTrends(cfg.Features.Trends),
		resolver.WithLogger(logging.ResolverLogger(c.loggerProvider)),
	)

	c.composer = search.New(
		c.careerRepo,
		c.resolver,
		search.WithPageSizes(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize),
		search.WithRetryBackoff(cfg.Resolver.RetryBackoff),
		search.WithLogger(logging.SearchLogger(c.loggerProvider)),
	)

	return c, nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil && c.sqlDB != nil {
		c.bunDB = NewBunDB(c.sqlDB, c.Config.Storage.Provider)
	}
	if c.bunDB != nil {
		c.careerRepo = careers.NewBunCareerRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.trendRepo = careers.NewBunTrendRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.localeRepo = careers.NewBunLocaleRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.memoryLocaleRepo = nil
	}
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		minLevel := console.ParseLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{
			MinLevel: &minLevel,
		})
	}
	return nil
}

func (c *Container) seedLocales() {
	if c.memoryLocaleRepo == nil {
		return
	}

	locales := c.Config.I18N.Locales
	if len(locales) == 0 {
		locales = []string{c.Config.DefaultLocale}
	}

	seen := map[string]struct{}{}
	for _, code := range locales {
		lower := catalogcareers.NormalizeLocaleCode(code)
		if lower == "" {
			continue
		}
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}

		display := catalogcareers.LocaleDisplayNames[lower]
		if display == "" {
			display = lower
		}
		c.memoryLocaleRepo.Put(&careers.Locale{
			ID:        identity.LocaleUUID(lower),
			Code:      lower,
			Display:   display,
			IsActive:  true,
			IsDefault: lower == catalogcareers.NormalizeLocaleCode(c.Config.DefaultLocale),
		})
	}
}

// CareersService returns the configured careers service.
func (c *Container) CareersService() careers.Service {
	return c.careerSvc
}

// Resolver returns the configured content resolver.
func (c *Container) Resolver() *resolver.Resolver {
	return c.resolver
}

// SearchComposer returns the configured search composer.
func (c *Container) SearchComposer() *search.Composer {
	return c.composer
}

// CareerRepository exposes the configured career repository.
func (c *Container) CareerRepository() careers.CareerRepository {
	return c.careerRepo
}

// TrendRepository exposes the configured trend repository.
func (c *Container) TrendRepository() careers.TrendRepository {
	return c.trendRepo
}

// LocaleRepository exposes the configured locale repository.
func (c *Container) LocaleRepository() careers.LocaleRepository {
	return c.localeRepo
}

// LoggerProvider exposes the configured logger provider, which may be nil
// when the logging feature is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}
