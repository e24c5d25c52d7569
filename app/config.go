package app

import (
	"time"

	"github.com/dmitrymomot/relay/core/server"
	"github.com/dmitrymomot/relay/integration/database/redis"
	"github.com/dmitrymomot/relay/integration/upstream"
)

// Config aggregates every setting relay reads from the environment.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"relay"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Server   server.Config
	Upstream upstream.Config
	// Redis backs the upstream cache when Upstream.CacheTTL is positive and
	// REDIS_URL is set. Without a URL an in-process LRU is used instead.
	Redis redis.Config

	MemoryCacheSize int `env:"MEMORY_CACHE_SIZE" envDefault:"1024"`

	// RateLimitRequests per RateLimitWindow and client IP on the home route.
	// Zero disables rate limiting.
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"60"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}
