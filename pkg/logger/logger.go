package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the handler and level of a logger.
type Config struct {
	Level             string `env:"LOG_LEVEL" yaml:"level"`
	Format            string `env:"LOG_FORMAT" yaml:"format"`
	SentryDSN         string `env:"SENTRY_DSN" yaml:"sentry_dsn"`
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" yaml:"sentry_environment"`

	// Output defaults to os.Stderr.
	Output io.Writer `yaml:"-"`
}

// New creates a logger from cfg with optional context extractors.
// Format "text" selects slog's text handler, anything else JSON.
// When SentryDSN is set, warnings and errors are also forwarded to Sentry.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(out, opts)
	} else {
		h = slog.NewJSONHandler(out, opts)
	}

	if cfg.SentryDSN != "" {
		sh, err := newSentryHandler(cfg)
		if err != nil {
			// Keep logging locally when Sentry cannot start.
			slog.New(h).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		} else {
			h = fanout(h, sh)
		}
	}

	return slog.New(NewContextHandler(h, extractors...))
}

// NewNope creates a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug, info, warn and error to slog levels.
// Unknown or empty values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
