package async

import (
	"context"
	"time"
)

// ExecFuture represents an asynchronous computation that only returns an error.
type ExecFuture struct {
	f *Future[struct{}]
}

// Await waits for the function to complete and returns its error.
func (e *ExecFuture) Await() error {
	_, err := e.f.Await()
	return err
}

// AwaitWithTimeout waits for the function at most timeout.
func (e *ExecFuture) AwaitWithTimeout(timeout time.Duration) error {
	_, err := e.f.AwaitWithTimeout(timeout)
	return err
}

// IsComplete reports whether the function has completed without blocking.
func (e *ExecFuture) IsComplete() bool {
	return e.f.IsComplete()
}

// Exec runs fn(ctx, param) asynchronously.
func Exec[P any](ctx context.Context, param P, fn func(context.Context, P) error) *ExecFuture {
	return &ExecFuture{
		f: Async(ctx, param, func(ctx context.Context, p P) (struct{}, error) {
			return struct{}{}, fn(ctx, p)
		}),
	}
}

// ExecAll waits for all futures and returns the first error in argument order.
func ExecAll(futures ...*ExecFuture) error {
	var firstErr error
	for _, e := range futures {
		if err := e.Await(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ExecAny waits for the first future to complete and returns its index and error.
func ExecAny(futures ...*ExecFuture) (int, error) {
	inner := make([]*Future[struct{}], len(futures))
	for i, e := range futures {
		inner[i] = e.f
	}
	i, _, err := WaitAny(inner...)
	return i, err
}
