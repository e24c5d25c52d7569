package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/relay/core/handler"
)

type requestIDContextKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	Skip func(ctx handler.Context) bool
	// Generator creates new IDs. Defaults to UUID v4.
	Generator func() string
	// HeaderName defaults to "X-Request-ID".
	HeaderName string
	// UseExisting keeps an incoming ID instead of generating one.
	UseExisting bool
}

// RequestID assigns a UUID to every request and echoes it in the response.
func RequestID[C handler.Context]() handler.Middleware[C] {
	return RequestIDWithConfig[C](RequestIDConfig{})
}

func RequestIDWithConfig[C handler.Context](cfg RequestIDConfig) handler.Middleware[C] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}
	if cfg.Generator == nil {
		cfg.Generator = uuid.NewString
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			var id string
			if cfg.UseExisting {
				id = ctx.Request().Header.Get(cfg.HeaderName)
			}
			if id == "" {
				id = cfg.Generator()
			}

			ctx.SetValue(requestIDContextKey{}, id)

			resp := next(ctx)
			if resp == nil {
				return nil
			}
			return func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set(cfg.HeaderName, id)
				return resp(w, r)
			}
		}
	}
}

// GetRequestID returns the request ID stored by RequestID.
func GetRequestID(ctx handler.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok
}
