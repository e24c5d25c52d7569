package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/pkg/async"
)

func TestExec(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	f := async.Exec(context.Background(), 42, func(_ context.Context, n int) error {
		calls.Add(1)
		if n != 42 {
			return errors.New("unexpected number")
		}
		return nil
	})

	require.NoError(t, f.Await())
	assert.True(t, f.IsComplete())
	assert.Equal(t, int32(1), calls.Load())
}

func TestExecContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	f := async.Exec(ctx, 0, func(ctx context.Context, _ int) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.ErrorIs(t, f.Await(), context.DeadlineExceeded)
}

func TestExecAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	f := async.Exec(context.Background(), 0, func(context.Context, int) error {
		<-release
		return nil
	})

	assert.ErrorIs(t, f.AwaitWithTimeout(10*time.Millisecond), async.ErrTimeout)
}

func TestExecAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ok := func(context.Context, int) error { return nil }

	require.NoError(t, async.ExecAll(
		async.Exec(ctx, 1, ok),
		async.Exec(ctx, 2, ok),
	))

	expected := errors.New("failed")
	err := async.ExecAll(
		async.Exec(ctx, 1, ok),
		async.Exec(ctx, 2, func(context.Context, int) error { return expected }),
	)
	assert.ErrorIs(t, err, expected)
}

func TestExecAny(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	ctx := context.Background()
	slow := async.Exec(ctx, 0, func(context.Context, int) error {
		<-release
		return nil
	})
	expected := errors.New("fast failure")
	fast := async.Exec(ctx, 0, func(context.Context, int) error { return expected })

	i, err := async.ExecAny(slow, fast)
	assert.Equal(t, 1, i)
	assert.ErrorIs(t, err, expected)

	i, err = async.ExecAny()
	assert.Equal(t, -1, i)
	assert.ErrorIs(t, err, async.ErrNoFutures)
}
