package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/logger"
	"github.com/dmitrymomot/relay/core/router"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	Skip func(ctx handler.Context) bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// LogLevel for successful requests. Defaults to slog.LevelInfo.
	LogLevel slog.Level

	// LogHeaders adds request headers to the entry with SensitiveHeaders redacted.
	LogHeaders bool

	// SensitiveHeaders are written as "[REDACTED]". Cookie is always among them.
	SensitiveHeaders []string

	// SlowRequestThreshold raises the level to warn. Defaults to 5s.
	SlowRequestThreshold time.Duration

	Component string
}

var defaultSensitiveHeaders = []string{
	"Authorization",
	"Cookie",
	"Set-Cookie",
	"X-Api-Key",
	"X-Auth-Token",
	"X-Csrf-Token",
}

// Logging logs one entry per request with default settings.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig logs method, path, status, size and latency once the
// response has been written. 5xx responses are logged at error level and 4xx
// or slow responses at warn.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}
	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = defaultSensitiveHeaders
	}
	if !slices.Contains(cfg.SensitiveHeaders, "Cookie") {
		cfg.SensitiveHeaders = append(slices.Clone(cfg.SensitiveHeaders), "Cookie")
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			resp := next(ctx)
			if resp == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
				err := resp(rw, r)
				latency := time.Since(start)

				// The error handler writes errored responses after this returns.
				status := rw.statusCode
				if err != nil && !rw.headerWritten {
					status = router.StatusCodeOf(err)
				}

				requestID, _ := GetRequestID(ctx)
				attrs := []slog.Attr{
					logger.Component(cfg.Component),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.Query(r.URL.RawQuery),
					logger.RequestID(requestID),
					logger.StatusCode(status),
					logger.BytesOut(int64(rw.size)),
					logger.Latency(latency),
					logger.CookiePresent(r.Header.Get("Cookie") != ""),
				}
				if cfg.LogHeaders {
					attrs = append(attrs, slog.Any("headers", redact(r.Header, cfg.SensitiveHeaders)))
				}

				level := cfg.LogLevel
				switch {
				case status >= http.StatusInternalServerError:
					level = slog.LevelError
					attrs = append(attrs, logger.Error(err))
				case status >= http.StatusBadRequest:
					level = slog.LevelWarn
					attrs = append(attrs, logger.Error(err))
				case latency > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow_request", true))
				}

				cfg.Logger.LogAttrs(r.Context(), level, "HTTP request completed", attrs...)
				return err
			}
		}
	}
}

func redact(h http.Header, sensitive []string) map[string]any {
	out := make(map[string]any, len(h))
	for key, values := range h {
		switch {
		case slices.Contains(sensitive, key):
			out[key] = "[REDACTED]"
		case len(values) == 1:
			out[key] = values[0]
		default:
			out[key] = values
		}
	}
	return out
}

// responseWriter records the status code and body size.
type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	size          int
	headerWritten bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if rw.headerWritten {
		return
	}
	rw.statusCode = statusCode
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
