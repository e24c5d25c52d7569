package async

import (
	"context"
	"time"
)

// Future represents the result of an asynchronous computation.
type Future[T any] struct {
	value T
	err   error
	done  chan struct{}
}

// Await blocks until the computation finishes and returns its result.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout waits for the computation at most timeout.
// Returns ErrTimeout if the computation is still running when it expires.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C:
		var zero T
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the computation has finished without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the computation finishes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Async runs fn(ctx, param) in a new goroutine and returns its Future.
func Async[P, T any](ctx context.Context, param P, fn func(context.Context, P) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Skip the call entirely when the caller has already given up.
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.value, f.err = fn(ctx, param)
	}()

	return f
}

// Resolved returns a Future that is already complete with value and err.
func Resolved[T any](value T, err error) *Future[T] {
	f := &Future[T]{value: value, err: err, done: make(chan struct{})}
	close(f.done)
	return f
}

// WaitAll waits for every future and returns their values in argument order.
// The first error in argument order is returned together with the values
// collected so far.
func WaitAll[T any](futures ...*Future[T]) ([]T, error) {
	results := make([]T, 0, len(futures))
	for _, f := range futures {
		v, err := f.Await()
		if err != nil {
			return results, err
		}
		results = append(results, v)
	}
	return results, nil
}

// WaitAny waits for the first future to complete and returns its index and result.
func WaitAny[T any](futures ...*Future[T]) (int, T, error) {
	if len(futures) == 0 {
		var zero T
		return -1, zero, ErrNoFutures
	}

	type result struct {
		index int
		value T
		err   error
	}

	// Buffered so goroutines of slower futures never block after the winner is read.
	done := make(chan result, len(futures))
	for i, f := range futures {
		go func(index int, f *Future[T]) {
			v, err := f.Await()
			done <- result{index: index, value: v, err: err}
		}(i, f)
	}

	res := <-done
	return res.index, res.value, res.err
}
