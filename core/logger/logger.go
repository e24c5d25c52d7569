package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ContextExtractor returns an attribute derived from ctx, if any.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type config struct {
	level      slog.Level
	json       bool
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// Option configures New.
type Option func(*config)

// New creates a logger. Without options it writes text at info level to stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var h slog.Handler
	if cfg.json {
		h = slog.NewJSONHandler(cfg.output, handlerOpts)
	} else {
		h = slog.NewTextHandler(cfg.output, handlerOpts)
	}

	if len(cfg.attrs) > 0 {
		h = h.WithAttrs(cfg.attrs)
	}
	if len(cfg.extractors) > 0 {
		h = &contextHandler{Handler: h, extractors: cfg.extractors}
	}

	return slog.New(h)
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithLevelString sets the level from its name (debug, info, warn, error).
// Unknown names leave the level unchanged.
func WithLevelString(level string) Option {
	return func(c *config) {
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err == nil {
			c.level = l
		}
	}
}

// WithJSONFormatter switches output to JSON.
func WithJSONFormatter() Option {
	return func(c *config) { c.json = true }
}

// WithTextFormatter switches output to text.
func WithTextFormatter() Option {
	return func(c *config) { c.json = false }
}

// WithOutput sets the destination writer.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

// WithContextExtractors adds extractors evaluated for every record.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) { c.extractors = append(c.extractors, extractors...) }
}

// WithDevelopment configures text output at debug level.
func WithDevelopment(service string) Option {
	return preset(service, "development", slog.LevelDebug, false)
}

// WithStaging configures JSON output at info level.
func WithStaging(service string) Option {
	return preset(service, "staging", slog.LevelInfo, true)
}

// WithProduction configures JSON output at info level.
func WithProduction(service string) Option {
	return preset(service, "production", slog.LevelInfo, true)
}

// WithEnvironment picks a preset by name and falls back to development.
func WithEnvironment(service, env string) Option {
	switch strings.ToLower(env) {
	case "production", "prod":
		return WithProduction(service)
	case "staging", "stage":
		return WithStaging(service)
	default:
		return WithDevelopment(service)
	}
}

func preset(service, env string, level slog.Level, json bool) Option {
	return func(c *config) {
		c.level = level
		c.json = json
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", env))
	}
}

// contextHandler adds extractor attributes to each record.
type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		for _, extract := range h.extractors {
			if attr, ok := extract(ctx); ok {
				r.AddAttrs(attr)
			}
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
