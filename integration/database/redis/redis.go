package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the Redis connection settings.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Connect opens a client for cfg and waits until it answers PING.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(cfg.ConnectionURL, "redis://") && !strings.HasPrefix(cfg.ConnectionURL, "rediss://") {
		return nil, fmt.Errorf("%w: unsupported scheme", ErrFailedToParseRedisConnString)
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 1
	}
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client := redis.NewClient(opts)

	var pingErr error
	for attempt := 1; attempt <= cfg.RetryAttempts; attempt++ {
		if pingErr = client.Ping(ctx).Err(); pingErr == nil {
			return client, nil
		}
		if attempt == cfg.RetryAttempts {
			break
		}

		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, errors.Join(ErrRedisNotReady, ctx.Err(), pingErr)
		case <-time.After(cfg.RetryInterval * time.Duration(attempt)):
		}
	}

	_ = client.Close()
	return nil, errors.Join(ErrRedisNotReady, pingErr)
}

// Healthcheck returns a probe that pings client.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
