// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/relay/core/config"
//
//	type UpstreamConfig struct {
//		BaseURL string        `env:"UPSTREAM_URL,required"`
//		Timeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
//	}
//
//	func main() {
//		var up UpstreamConfig
//
//		// Load with error handling
//		if err := config.Load(&up); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&up)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 UpstreamConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 UpstreamConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently. Reset clears the cache in tests:
//
//	type ServerConfig struct {
//		Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	}
//
//	type RedisConfig struct {
//		URL string `env:"REDIS_URL,required"`
//	}
//
//	// Each type has its own cache entry
//	config.MustLoad(&ServerConfig{})
//	config.MustLoad(&RedisConfig{})
package config
