package upstream

import "time"

// Config holds the upstream API settings.
type Config struct {
	BaseURL    string        `env:"UPSTREAM_URL" envDefault:"http://localhost:9000"`
	Timeout    time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
	CacheTTL   time.Duration `env:"UPSTREAM_CACHE_TTL" envDefault:"0s"`
	HealthPath string        `env:"UPSTREAM_HEALTH_PATH" envDefault:"/health"`
}
