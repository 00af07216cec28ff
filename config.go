package catalog

import "github.com/goliatone/go-catalog/internal/runtimeconfig"

var (
	ErrDefaultLocaleUnsupported     = runtimeconfig.ErrDefaultLocaleUnsupported
	ErrLocaleUnsupported            = runtimeconfig.ErrLocaleUnsupported
	ErrResolverCacheTTLInvalid      = runtimeconfig.ErrResolverCacheTTLInvalid
	ErrSearchPageSizeInvalid        = runtimeconfig.ErrSearchPageSizeInvalid
	ErrCommandsCronRequiresCommands = runtimeconfig.ErrCommandsCronRequiresCommands
	ErrLoggingProviderRequired      = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown       = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid          = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid         = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	I18NConfig     = runtimeconfig.I18NConfig
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	ResolverConfig = runtimeconfig.ResolverConfig
	SearchConfig   = runtimeconfig.SearchConfig
	Features       = runtimeconfig.Features
	CommandsConfig = runtimeconfig.CommandsConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
