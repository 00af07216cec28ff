package cachecmd

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-catalog/internal/commands"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const clearCacheMessageType = "catalog.cache.clear"

// ResolutionCache is the slice of the resolver the cache commands need.
type ResolutionCache interface {
	Invalidate(slug string)
	ClearCache()
}

// ClearCacheCommand empties the resolution cache, or drops a single
// career's variants when Slug is set.
type ClearCacheCommand struct {
	Slug string `json:"slug,omitempty"`
}

// Type implements command.Message.
func (ClearCacheCommand) Type() string { return clearCacheMessageType }

// Validate satisfies command.Message.
func (c ClearCacheCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Slug, validation.Length(0, 255)),
	)
}

// ClearCacheHandler executes cache clears against the resolver.
type ClearCacheHandler struct {
	cache   ResolutionCache
	logger  interfaces.Logger
	timeout time.Duration
}

// NewClearCacheHandler constructs the handler.
func NewClearCacheHandler(cache ResolutionCache, logger interfaces.Logger) *ClearCacheHandler {
	return &ClearCacheHandler{
		cache:   cache,
		logger:  commands.EnsureLogger(logger),
		timeout: commands.DefaultCommandTimeout,
	}
}

// Execute satisfies command.Commander[ClearCacheCommand].
func (h *ClearCacheHandler) Execute(ctx context.Context, msg ClearCacheCommand) error {
	if err := commands.WrapValidationError(command.ValidateMessage(msg)); err != nil {
		return err
	}
	ctx = commands.EnsureContext(ctx)
	ctx, cancel := commands.WithCommandTimeout(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return commands.WrapContextError(err)
	}

	logger := logging.WithFields(h.logger, map[string]any{
		"operation": "cache.clear",
	})

	if slug := strings.TrimSpace(msg.Slug); slug != "" {
		h.cache.Invalidate(slug)
		logging.WithFields(logger, map[string]any{
			"career_slug": slug,
		}).Debug("catalog.command.cache.invalidated")
		return nil
	}

	h.cache.ClearCache()
	logger.Info("catalog.command.cache.cleared")
	return nil
}

// CLIHandler exposes the handler to CLI integrations.
func (h *ClearCacheHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for cache clearing.
func (h *ClearCacheHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"cache", "clear"},
		Group:       "cache",
		Description: "Clear resolved views; optionally scope to one career slug",
	}
}
