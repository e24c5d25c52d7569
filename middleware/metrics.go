package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/router"
)

// RequestObserver receives one observation per finished request.
// *metrics.Metrics implements it.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// Metrics reports every request to obs, labelled by its route pattern rather
// than the raw path.
func Metrics[C handler.Context](obs RequestObserver) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			start := time.Now()
			resp := next(ctx)
			if resp == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
				err := resp(rw, r)

				status := rw.statusCode
				if err != nil && !rw.headerWritten {
					// The error handler writes the final status after we return.
					status = router.StatusCodeOf(err)
				}
				obs.ObserveRequest(r.Method, routePattern(r), status, time.Since(start))
				return err
			}
		}
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
