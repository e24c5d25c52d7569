package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/app"
	"github.com/dmitrymomot/relay/core/forward"
	"github.com/dmitrymomot/relay/core/server"
	"github.com/dmitrymomot/relay/integration/database/redis"
	"github.com/dmitrymomot/relay/integration/upstream"
	"github.com/dmitrymomot/relay/pkg/optional"
)

type fakeUpstream struct {
	lastCookie optional.Option[forward.CookieConfig]
	calls      int
	err        error
	pingErr    error
}

func (f *fakeUpstream) Get(_ context.Context, path string, cookie optional.Option[forward.CookieConfig], out any) error {
	f.calls++
	f.lastCookie = cookie
	if f.err != nil {
		return f.err
	}
	if path != "/me" {
		return &upstream.StatusError{Status: http.StatusNotFound}
	}
	return json.Unmarshal([]byte(`{"name":"Ada","email":"ada@example.com"}`), out)
}

func (f *fakeUpstream) Ping(context.Context) error { return f.pingErr }

func testConfig() app.Config {
	return app.Config{
		AppName:  "relay",
		Env:      "test",
		LogLevel: "error",
		Server:   server.Config{Addr: "127.0.0.1:0"},
		Upstream: upstream.Config{BaseURL: "http://upstream.invalid"},
	}
}

func newApp(t *testing.T, up app.Upstream) *app.App {
	t.Helper()

	a, err := app.New(context.Background(), testConfig(),
		app.WithUpstream(up),
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	return a
}

func get(h http.Handler, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHomeForwardsCookie(t *testing.T) {
	t.Parallel()

	up := &fakeUpstream{}
	w := get(newApp(t, up).Handler(), "/", "session=abc123")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<div><h1>Ada</h1><p>ada@example.com</p></div>")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	c, ok := up.lastCookie.Get()
	require.True(t, ok)
	assert.Equal(t, "session=abc123", c.Cookie)
}

func TestHomeWithoutCookie(t *testing.T) {
	t.Parallel()

	up := &fakeUpstream{}
	w := get(newApp(t, up).Handler(), "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Not signed in.")
	assert.Zero(t, up.calls)
}

func TestHomeUpstreamErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "unauthorized", err: &upstream.StatusError{Status: http.StatusUnauthorized}, status: http.StatusUnauthorized},
		{name: "upstream 500", err: &upstream.StatusError{Status: http.StatusInternalServerError}, status: http.StatusBadGateway},
		{name: "transport", err: errors.New("dial tcp: refused"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := get(newApp(t, &fakeUpstream{err: tt.err}).Handler(), "/", "session=x")
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), "<title>")
			assert.NotContains(t, w.Body.String(), "dial tcp")
		})
	}
}

func TestHealthRoutes(t *testing.T) {
	t.Parallel()

	h := newApp(t, &fakeUpstream{}).Handler()
	assert.Equal(t, "ALIVE", get(h, "/live", "").Body.String())
	assert.Equal(t, "READY", get(h, "/ready", "").Body.String())

	h = newApp(t, &fakeUpstream{pingErr: errors.New("down")}).Handler()
	assert.Equal(t, http.StatusServiceUnavailable, get(h, "/ready", "").Code)
}

func TestNotFoundRendersErrorPage(t *testing.T) {
	t.Parallel()

	w := get(newApp(t, &fakeUpstream{}).Handler(), "/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "<div><h1>404</h1><p>Not Found</p></div>")
}

func TestNewWithRedisCache(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		default:
			_, _ = io.WriteString(w, `{"name":"Grace","email":"grace@example.com"}`)
		}
	}))
	t.Cleanup(api.Close)

	cfg := testConfig()
	cfg.Upstream = upstream.Config{BaseURL: api.URL, CacheTTL: time.Minute, HealthPath: "/health"}
	cfg.Redis = redis.Config{ConnectionURL: "redis://" + mr.Addr() + "/0", RetryAttempts: 1, ConnectTimeout: time.Second}

	a, err := app.New(context.Background(), cfg, app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	w := get(a.Handler(), "/", "session=abc123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Grace")
	assert.Len(t, mr.Keys(), 1)

	assert.Equal(t, "READY", get(a.Handler(), "/ready", "").Body.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, a.Run(ctx))
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Upstream.BaseURL = ""
	_, err := app.New(context.Background(), cfg)
	assert.ErrorIs(t, err, upstream.ErrInvalidBaseURL)

	cfg = testConfig()
	cfg.Server.Addr = ""
	_, err = app.New(context.Background(), cfg)
	assert.ErrorIs(t, err, server.ErrMissingAddress)

	cfg = testConfig()
	cfg.Upstream.CacheTTL = time.Minute
	cfg.Redis = redis.Config{ConnectionURL: "http://nope"}
	_, err = app.New(context.Background(), cfg)
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)

	_, err = app.New(context.Background(), testConfig(), app.WithUpstream(nil))
	assert.Error(t, err)
}

func TestNewClosesOwnedRedisOnError(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	redisCfg := redis.Config{ConnectionURL: "redis://" + mr.Addr() + "/0", RetryAttempts: 1, ConnectTimeout: time.Second}

	cfg := testConfig()
	cfg.Upstream = upstream.Config{CacheTTL: time.Minute}
	cfg.Redis = redisCfg
	_, err := app.New(context.Background(), cfg)
	require.ErrorIs(t, err, upstream.ErrInvalidBaseURL)
	assert.Eventually(t, func() bool { return mr.CurrentConnectionCount() == 0 }, time.Second, 10*time.Millisecond)

	cfg = testConfig()
	cfg.Upstream.CacheTTL = time.Minute
	cfg.Redis = redisCfg
	cfg.Server.Addr = ""
	_, err = app.New(context.Background(), cfg)
	require.ErrorIs(t, err, server.ErrMissingAddress)
	assert.Eventually(t, func() bool { return mr.CurrentConnectionCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestNewKeepsSuppliedRedisOnError(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := testConfig()
	cfg.Upstream.BaseURL = ""
	_, err := app.New(context.Background(), cfg, app.WithRedis(client))
	require.ErrorIs(t, err, upstream.ErrInvalidBaseURL)
	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewWithMemoryCache(t *testing.T) {
	t.Parallel()

	var calls int
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_, _ = io.WriteString(w, `{"name":"Linus","email":"linus@example.com"}`)
	}))
	t.Cleanup(api.Close)

	cfg := testConfig()
	cfg.Upstream = upstream.Config{BaseURL: api.URL, CacheTTL: time.Minute}
	cfg.MemoryCacheSize = 8

	a, err := app.New(context.Background(), cfg, app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	for range 2 {
		w := get(a.Handler(), "/", "session=abc123")
		assert.Contains(t, w.Body.String(), "Linus")
	}
	assert.Equal(t, 1, calls)
}

func TestMetricsAndRateLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MetricsEnabled = true
	cfg.RateLimitRequests = 1
	cfg.RateLimitWindow = time.Minute

	a, err := app.New(context.Background(), cfg,
		app.WithUpstream(&fakeUpstream{}),
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	h := a.Handler()

	assert.Equal(t, http.StatusOK, get(h, "/", "session=x").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(h, "/", "session=x").Code)

	// Health routes are not rate limited.
	assert.Equal(t, http.StatusOK, get(h, "/live", "").Code)
	assert.Equal(t, http.StatusOK, get(h, "/live", "").Code)

	body := get(h, "/metrics", "").Body.String()
	assert.Contains(t, body, `relay_http_requests_total{method="GET",route="/",status="200"} 1`)
	assert.Contains(t, body, `relay_http_requests_total{method="GET",route="/",status="429"} 1`)
	assert.Contains(t, body, `relay_http_requests_total{method="GET",route="/live",status="200"} 2`)
}
