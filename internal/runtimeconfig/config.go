package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-catalog/careers"
)

// ErrDefaultLocaleUnsupported indicates the default locale falls outside the closed locale set.
var ErrDefaultLocaleUnsupported = errors.New("catalog config: default locale is not a supported locale")

// ErrLocaleUnsupported indicates a configured locale falls outside the closed locale set.
var ErrLocaleUnsupported = errors.New("catalog config: locale is not a supported locale")

// ErrResolverCacheTTLInvalid ensures the resolution cache TTL stays non-negative.
var ErrResolverCacheTTLInvalid = errors.New("catalog config: resolver cache ttl must be zero or positive")

// ErrSearchPageSizeInvalid ensures search pagination bounds stay sane.
var ErrSearchPageSizeInvalid = errors.New("catalog config: search page size bounds are invalid")

// ErrCommandsCronRequiresCommands ensures cron auto-registration only runs with commands enabled.
var ErrCommandsCronRequiresCommands = errors.New("catalog config: command cron auto-registration requires commands to be enabled")

var ErrLoggingProviderRequired = errors.New("catalog config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("catalog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("catalog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("catalog config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the catalog module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled       bool
	DefaultLocale string
	I18N          I18NConfig
	Storage       StorageConfig
	Cache         CacheConfig
	Resolver      ResolverConfig
	Search        SearchConfig
	Features      Features
	Commands      CommandsConfig
	Logging       LoggingConfig
}

// I18NConfig lists the locales the catalog serves.
type I18NConfig struct {
	Enabled bool
	Locales []string
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures repository-level cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// ResolverConfig captures behaviour of the content resolution layer.
type ResolverConfig struct {
	// CacheTTL bounds how long resolved views stay memoized. A single
	// explicit value covers every cached resolution result.
	CacheTTL time.Duration
	// RetryBackoff is the fixed pause before the single retry applied to
	// transient store failures.
	RetryBackoff time.Duration
}

// SearchConfig bounds pagination for the search composer.
type SearchConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Features toggles module functionality.
type Features struct {
	Trends bool
	Logger bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled          bool
	AutoRegisterCron bool
	AuditCron        string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for the catalog runtime.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		DefaultLocale: careers.DefaultLocaleCode,
		I18N: I18NConfig{
			Enabled: true,
			Locales: append([]string(nil), careers.SupportedLocaleCodes...),
		},
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Resolver: ResolverConfig{
			CacheTTL:     30 * time.Minute,
			RetryBackoff: 150 * time.Millisecond,
		},
		Search: SearchConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Features: Features{
			Trends: true,
		},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if !careers.IsSupportedLocale(cfg.DefaultLocale) {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleUnsupported, cfg.DefaultLocale)
	}
	for _, code := range cfg.I18N.Locales {
		if !careers.IsSupportedLocale(code) {
			return fmt.Errorf("%w: %s", ErrLocaleUnsupported, code)
		}
	}
	if cfg.Resolver.CacheTTL < 0 {
		return ErrResolverCacheTTLInvalid
	}
	if cfg.Search.DefaultPageSize < 0 || cfg.Search.MaxPageSize < 0 {
		return ErrSearchPageSizeInvalid
	}
	if cfg.Search.MaxPageSize > 0 && cfg.Search.DefaultPageSize > cfg.Search.MaxPageSize {
		return ErrSearchPageSizeInvalid
	}
	if cfg.Commands.AutoRegisterCron && !cfg.Commands.Enabled {
		return ErrCommandsCronRequiresCommands
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
