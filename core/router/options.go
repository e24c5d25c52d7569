package router

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/relay/core/handler"
)

// Option configures a Router during creation.
type Option[C handler.Context] func(*mux[C])

// WithErrorHandler sets the error handler. A nil handler is ignored.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithMiddleware adds middleware to the router.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.middlewares = append(m.middlewares, middlewares...)
	}
}

// WithContextFactory sets the factory used to build the request context.
func WithContextFactory[C handler.Context](f func(http.ResponseWriter, *http.Request, map[string]string) C) Option[C] {
	return func(m *mux[C]) {
		m.newContext = f
	}
}

// WithLogger sets the logger used for failures that cannot reach the error handler.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if logger != nil {
			m.logger = logger
		}
	}
}
