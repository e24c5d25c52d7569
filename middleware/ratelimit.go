package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/response"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	Skip func(ctx handler.Context) bool
	// RequestLimit is the number of requests allowed per WindowSize.
	RequestLimit int
	WindowSize   time.Duration
	// KeyFunc defaults to the client IP.
	KeyFunc func(r *http.Request) (string, error)
}

// RateLimit limits every client IP to requests per window.
func RateLimit[C handler.Context](requests int, window time.Duration) handler.Middleware[C] {
	return RateLimitWithConfig[C](RateLimitConfig{RequestLimit: requests, WindowSize: window})
}

// RateLimitWithConfig counts requests with a sliding window. Limited requests
// get response.ErrTooManyRequests with a Retry-After header and never reach
// the wrapped handler.
func RateLimitWithConfig[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.RequestLimit <= 0 {
		cfg.RequestLimit = 60
	}
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = time.Minute
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = httprate.KeyByIP
	}

	retryAfter := strconv.Itoa(int(cfg.WindowSize.Seconds()))
	limited := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", retryAfter)
	})
	limit := httprate.Limit(
		cfg.RequestLimit,
		cfg.WindowSize,
		httprate.WithKeyFuncs(cfg.KeyFunc),
		httprate.WithLimitHandler(limited),
	)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			allowed := false
			limit(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				allowed = true
			})).ServeHTTP(ctx.ResponseWriter(), ctx.Request())

			if !allowed {
				return response.Error(response.ErrTooManyRequests)
			}
			return next(ctx)
		}
	}
}
