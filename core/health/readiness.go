package health

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/logger"
	"github.com/dmitrymomot/relay/core/response"
	"github.com/dmitrymomot/relay/pkg/async"
)

// DefaultCheckTimeout bounds a single readiness probe.
const DefaultCheckTimeout = 3 * time.Second

// Check is a named dependency probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Readiness returns "READY" when every check passes and 503 otherwise.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return ReadinessWithTimeout[C](log, DefaultCheckTimeout, checks...)
}

// ReadinessWithTimeout is Readiness with a custom per-probe timeout.
func ReadinessWithTimeout[C handler.Context](log *slog.Logger, timeout time.Duration, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		if len(checks) == 0 {
			return response.String("READY")
		}

		cctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		futures := make([]*async.ExecFuture, 0, len(checks))
		for _, c := range checks {
			futures = append(futures, async.Exec(cctx, c, run))
		}

		if err := async.ExecAll(futures...); err != nil {
			log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
			return response.Error(response.ErrServiceUnavailable)
		}

		return response.String("READY")
	}
}

func run(ctx context.Context, c Check) error {
	if c.Fn == nil {
		return nil
	}
	if err := c.Fn(ctx); err != nil {
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	return nil
}
