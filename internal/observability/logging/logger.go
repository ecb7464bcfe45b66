// Package logging builds the service's slog loggers and carries them through
// request contexts.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"drupal-news/internal/handler/http/requestid"
	"drupal-news/pkg/config"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Options selects the handler, level and destination of a logger.
type Options struct {
	Level  slog.Level
	Format string
	Output io.Writer
}

// LoadOptionsFromEnv reads LOG_LEVEL (debug, info, warn, error; default info)
// and LOG_FORMAT (json or text; default json). Output is stdout.
func LoadOptionsFromEnv() Options {
	return Options{
		Level:  ParseLevel(config.GetEnvString("LOG_LEVEL", "info")),
		Format: strings.ToLower(config.GetEnvString("LOG_FORMAT", FormatJSON)),
		Output: os.Stdout,
	}
}

// ParseLevel maps a level name to a slog.Level. Unknown names are info.
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

// New creates a logger from opts. Source locations are attached at debug level.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	hopts := &slog.HandlerOptions{
		Level:     opts.Level,
		AddSource: opts.Level <= slog.LevelDebug,
	}

	var h slog.Handler
	if opts.Format == FormatText {
		h = slog.NewTextHandler(out, hopts)
	} else {
		h = slog.NewJSONHandler(out, hopts)
	}
	return slog.New(h)
}

// WithRequestID returns logger with the request id from ctx attached.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With(slog.String("request_id", reqID))
}

type contextKey struct{}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}
