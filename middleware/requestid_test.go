package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/response"
	"github.com/dmitrymomot/relay/core/router"
	"github.com/dmitrymomot/relay/middleware"
)

func echoRequestID(ctx *router.Context) handler.Response {
	id, _ := middleware.GetRequestID(ctx)
	return response.String(id)
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.RequestID[*router.Context]())
	r.Get("/", echoRequestID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	id := w.Header().Get("X-Request-ID")
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())
}

func TestRequestIDWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("existing", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Use(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
			HeaderName:  "X-Trace-ID",
			UseExisting: true,
		}))
		r.Get("/", echoRequestID)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace-ID", "trace-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "trace-1", w.Header().Get("X-Trace-ID"))
		assert.Equal(t, "trace-1", w.Body.String())
	})

	t.Run("generator", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Use(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
			Generator: func() string { return "fixed" },
		}))
		r.Get("/", echoRequestID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "fixed", w.Body.String())
	})

	t.Run("skip", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Use(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
			Skip: func(handler.Context) bool { return true },
		}))
		r.Get("/", echoRequestID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Empty(t, w.Header().Get("X-Request-ID"))
		assert.Empty(t, w.Body.String())
	})
}
