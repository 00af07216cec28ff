package auditcmd

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	catalogcareers "github.com/goliatone/go-catalog/careers"
	"github.com/goliatone/go-catalog/internal/commands"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const checkTranslationsMessageType = "catalog.translations.check"

// TranslationAuditor reports locale coverage gaps across the catalog.
type TranslationAuditor interface {
	AuditTranslations(ctx context.Context, required []string, opts interfaces.TranslationAuditOptions) ([]interfaces.TranslationGap, error)
}

// CheckTranslationsCommand audits translation coverage for the given
// locales. An empty Locales list audits the whole supported set.
type CheckTranslationsCommand struct {
	Locales       []string `json:"locales,omitempty"`
	IncludeTrends bool     `json:"include_trends,omitempty"`
}

// Type implements command.Message.
func (CheckTranslationsCommand) Type() string { return checkTranslationsMessageType }

// Validate satisfies command.Message.
func (c CheckTranslationsCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Locales, validation.Each(validation.By(func(value any) error {
			code, _ := value.(string)
			if !catalogcareers.IsSupportedLocale(code) {
				return validation.NewError("validation_locale", "unsupported locale code")
			}
			return nil
		}))),
	)
}

type checkHandlerConfig struct {
	cronConfig command.HandlerConfig
	timeout    time.Duration
}

// CheckHandlerOption customises the translation check handler.
type CheckHandlerOption func(*checkHandlerConfig)

// CheckWithCronConfig overrides the cron registration options.
func CheckWithCronConfig(config command.HandlerConfig) CheckHandlerOption {
	return func(cfg *checkHandlerConfig) {
		cfg.cronConfig = config
	}
}

// CheckWithCronExpression overrides the cron expression.
func CheckWithCronExpression(expression string) CheckHandlerOption {
	return func(cfg *checkHandlerConfig) {
		if trimmed := strings.TrimSpace(expression); trimmed != "" {
			cfg.cronConfig.Expression = trimmed
		}
	}
}

// CheckWithTimeout overrides the default execution timeout.
func CheckWithTimeout(timeout time.Duration) CheckHandlerOption {
	return func(cfg *checkHandlerConfig) {
		cfg.timeout = timeout
	}
}

// CheckTranslationsHandler runs catalog-wide translation audits and logs
// each gap so operators can schedule translation work.
type CheckTranslationsHandler struct {
	auditor    TranslationAuditor
	logger     interfaces.Logger
	cronConfig command.HandlerConfig
	timeout    time.Duration
}

// NewCheckTranslationsHandler constructs a handler over the supplied auditor.
func NewCheckTranslationsHandler(auditor TranslationAuditor, logger interfaces.Logger, opts ...CheckHandlerOption) *CheckTranslationsHandler {
	cfg := checkHandlerConfig{
		cronConfig: command.HandlerConfig{
			Expression: "@daily",
		},
		timeout: commands.DefaultCommandTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &CheckTranslationsHandler{
		auditor:    auditor,
		logger:     commands.EnsureLogger(logger),
		cronConfig: cfg.cronConfig,
		timeout:    cfg.timeout,
	}
}

// Execute satisfies command.Commander[CheckTranslationsCommand].
func (h *CheckTranslationsHandler) Execute(ctx context.Context, msg CheckTranslationsCommand) error {
	if err := commands.WrapValidationError(command.ValidateMessage(msg)); err != nil {
		return err
	}
	ctx = commands.EnsureContext(ctx)
	ctx, cancel := commands.WithCommandTimeout(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return commands.WrapContextError(err)
	}

	locales := msg.Locales
	if len(locales) == 0 {
		locales = catalogcareers.SupportedLocaleCodes
	}

	gaps, err := h.auditor.AuditTranslations(ctx, locales, interfaces.TranslationAuditOptions{
		IncludeTrendInsights: msg.IncludeTrends,
	})
	if err != nil {
		return commands.WrapExecuteError(err)
	}

	logger := logging.WithFields(h.logger, map[string]any{
		"operation": "translations.check",
		"locales":   len(locales),
	})

	if len(gaps) == 0 {
		logger.Info("catalog.command.translations.complete")
		return nil
	}

	for _, gap := range gaps {
		logging.WithFields(logger, map[string]any{
			"career_slug":     gap.Slug,
			"locale":          gap.Locale,
			"missing_fields":  strings.Join(gap.MissingFields, ","),
			"missing_insight": gap.MissingInsight,
		}).Warn("catalog.command.translations.gap")
	}
	logging.WithFields(logger, map[string]any{
		"gap_count": len(gaps),
	}).Info("catalog.command.translations.gaps_found")
	return nil
}

// CronHandler satisfies command.CronCommand by binding the audit to a cron runner.
func (h *CheckTranslationsHandler) CronHandler() func() error {
	return func() error {
		return h.Execute(context.Background(), CheckTranslationsCommand{})
	}
}

// CronOptions satisfies command.CronCommand by returning the configured cron metadata.
func (h *CheckTranslationsHandler) CronOptions() command.HandlerConfig {
	return h.cronConfig
}

// CLIHandler exposes the audit to CLI integrations.
func (h *CheckTranslationsHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for the translation audit.
func (h *CheckTranslationsHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"translations", "check"},
		Group:       "translations",
		Description: "Audit translation coverage across supported locales",
	}
}
