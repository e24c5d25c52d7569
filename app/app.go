// Package app wires relay's router, upstream client and server together.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/relay/core/forward"
	"github.com/dmitrymomot/relay/core/health"
	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/logger"
	"github.com/dmitrymomot/relay/core/metrics"
	"github.com/dmitrymomot/relay/core/response"
	"github.com/dmitrymomot/relay/core/router"
	"github.com/dmitrymomot/relay/core/server"
	"github.com/dmitrymomot/relay/integration/database/redis"
	"github.com/dmitrymomot/relay/integration/upstream"
	"github.com/dmitrymomot/relay/middleware"
	"github.com/dmitrymomot/relay/pkg/optional"
)

// Upstream is the subset of *upstream.Client the app needs.
type Upstream interface {
	Get(ctx context.Context, path string, cookie optional.Option[forward.CookieConfig], out any) error
	Ping(ctx context.Context) error
}

type App struct {
	config   Config
	router   router.Router[*router.Context]
	server   *server.Server
	upstream Upstream
	redis    goredis.UniversalClient
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

type AppOption func(*App) error

// New builds the application from cfg. Redis is connected only when the
// upstream cache is enabled, REDIS_URL is set and no client was supplied with
// WithRedis.
func New(ctx context.Context, cfg Config, opts ...AppOption) (_ *App, err error) {
	a := &App{
		config: cfg,
		logger: logger.New(logger.WithEnvironment(cfg.AppName, cfg.Env), logger.WithLevelString(cfg.LogLevel)),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if cfg.MetricsEnabled {
		a.metrics = metrics.New("relay")
	}

	if a.redis == nil && cfg.Upstream.CacheTTL > 0 && cfg.Redis.ConnectionURL != "" {
		client, connErr := redis.Connect(ctx, cfg.Redis)
		if connErr != nil {
			return nil, connErr
		}
		a.redis = client
		// Only the client created here is owned by New.
		defer func() {
			if err != nil {
				_ = client.Close()
			}
		}()
	}

	if a.upstream == nil {
		upOpts := []upstream.Option{upstream.WithLogger(a.logger)}
		if a.metrics != nil {
			upOpts = append(upOpts, upstream.WithCacheObserver(a.metrics))
		}
		switch {
		case a.redis != nil:
			upOpts = append(upOpts, upstream.WithCache(upstream.NewRedisCache(a.redis, "")))
		case cfg.Upstream.CacheTTL > 0:
			upOpts = append(upOpts, upstream.WithCache(upstream.NewMemoryCache(cfg.MemoryCacheSize)))
		}
		client, err := upstream.New(cfg.Upstream, upOpts...)
		if err != nil {
			return nil, err
		}
		a.upstream = client
	}

	if a.server == nil {
		s, err := server.NewFromConfig(cfg.Server, server.WithLogger(a.logger.With(logger.Component("server"))))
		if err != nil {
			return nil, err
		}
		a.server = s
	}

	a.router = a.routes()
	return a, nil
}

func (a *App) routes() router.Router[*router.Context] {
	mws := []handler.Middleware[*router.Context]{
		middleware.RequestID[*router.Context](),
		middleware.RequestHeaders[*router.Context](),
		middleware.LoggingWithLogger[*router.Context](a.logger.With(logger.Component("http.request"))),
	}
	if a.metrics != nil {
		mws = append(mws, middleware.Metrics[*router.Context](a.metrics))
	}

	r := router.New[*router.Context](
		router.WithErrorHandler(response.TemplErrorHandler[*router.Context](errorPage)),
		router.WithLogger[*router.Context](a.logger),
		router.WithMiddleware(mws...),
	)

	checks := []health.Check{{Name: "upstream", Fn: a.upstream.Ping}}
	if a.redis != nil {
		checks = append(checks, health.Check{Name: "redis", Fn: redis.Healthcheck(a.redis)})
	}

	home := r
	if a.config.RateLimitRequests > 0 {
		home = r.With(middleware.RateLimit[*router.Context](a.config.RateLimitRequests, a.config.RateLimitWindow))
	}
	home.Get("/", homeHandler(a.upstream))
	r.Get("/live", health.Liveness[*router.Context])
	r.Get("/ready", health.Readiness[*router.Context](a.logger, checks...))
	if a.metrics != nil {
		r.Get("/metrics", httpHandler(a.metrics.Handler()))
	}

	return r
}

// Handler returns the application's root http.Handler.
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run serves until ctx is cancelled, then releases the redis connection.
func (a *App) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(a.server.Run(ctx, a.router))

	err := eg.Wait()
	if a.redis != nil {
		err = errors.Join(err, a.redis.Close())
	}
	return err
}

func WithLogger(log *slog.Logger) AppOption {
	return func(a *App) error {
		if log == nil {
			return errors.New("logger cannot be nil")
		}
		a.logger = log
		return nil
	}
}

func WithServer(s *server.Server) AppOption {
	return func(a *App) error {
		if s == nil {
			return errors.New("server cannot be nil")
		}
		a.server = s
		return nil
	}
}

func WithUpstream(u Upstream) AppOption {
	return func(a *App) error {
		if u == nil {
			return errors.New("upstream cannot be nil")
		}
		a.upstream = u
		return nil
	}
}

func WithRedis(client goredis.UniversalClient) AppOption {
	return func(a *App) error {
		if client == nil {
			return errors.New("redis client cannot be nil")
		}
		a.redis = client
		return nil
	}
}
