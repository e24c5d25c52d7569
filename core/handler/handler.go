package handler

import "net/http"

// Response writes an HTTP response.
// A returned error is handled by the router's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc handles a request with a typed context.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler handles errors raised while processing a request.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps a HandlerFunc with cross-cutting behaviour.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// Chain wraps h with middlewares so that the first middleware is the outermost.
func Chain[C Context](h HandlerFunc[C], middlewares ...Middleware[C]) HandlerFunc[C] {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
