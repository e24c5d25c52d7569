package reqctx_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/core/reqctx"
)

func TestHeadersLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	h.Set("Cookie", "session=abc123")

	for _, name := range []string{"cookie", "Cookie", "COOKIE", "cOoKiE"} {
		v, ok := reqctx.Headers(h).Header(name)
		assert.True(t, ok, name)
		assert.Equal(t, "session=abc123", v, name)
	}
}

func TestHeadersMissing(t *testing.T) {
	t.Parallel()

	v, ok := reqctx.Headers(http.Header{}).Header("cookie")
	assert.False(t, ok)
	assert.Empty(t, v)

	v, ok = reqctx.Headers(nil).Header("cookie")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestHeadersJoinsRepeatedValues(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	h.Add("Cookie", "a=1")
	h.Add("Cookie", "b=2")
	h.Add("Accept", "text/html")
	h.Add("Accept", "application/json")

	v, ok := reqctx.Headers(h).Header("cookie")
	require.True(t, ok)
	assert.Equal(t, "a=1; b=2", v)

	v, ok = reqctx.Headers(h).Header("accept")
	require.True(t, ok)
	assert.Equal(t, "text/html, application/json", v)
}

func TestStaticProvider(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	h.Set("X-Test", "1")

	r, err := reqctx.Static(h).Headers(context.Background())
	require.NoError(t, err)
	v, ok := r.Header("x-test")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, err = reqctx.Static(nil).Headers(context.Background())
	assert.ErrorIs(t, err, reqctx.ErrNoRequestContext)
}

func TestContextProvider(t *testing.T) {
	t.Parallel()

	t.Run("installed", func(t *testing.T) {
		t.Parallel()

		h := http.Header{}
		h.Set("Cookie", "session=abc123")
		ctx := reqctx.WithHeaders(context.Background(), h)

		// Mutations after installation are not observed.
		h.Set("Cookie", "changed")

		r, err := reqctx.ContextProvider.Headers(ctx)
		require.NoError(t, err)
		v, ok := r.Header("cookie")
		assert.True(t, ok)
		assert.Equal(t, "session=abc123", v)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		_, err := reqctx.ContextProvider.Headers(context.Background())
		assert.ErrorIs(t, err, reqctx.ErrNoRequestContext)
	})

	t.Run("nil_headers", func(t *testing.T) {
		t.Parallel()

		ctx := reqctx.WithHeaders(context.Background(), nil)
		r, err := reqctx.FromContext(ctx)
		require.NoError(t, err)
		_, ok := r.Header("cookie")
		assert.False(t, ok)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(reqctx.WithHeaders(context.Background(), http.Header{}))
		cancel()

		_, err := reqctx.FromContext(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

type valueCtx struct {
	context.Context
}

func (c *valueCtx) SetValue(key, val any) {
	c.Context = context.WithValue(c.Context, key, val)
}

func TestSet(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	h.Set("Cookie", "session=abc123")

	ctx := &valueCtx{Context: context.Background()}
	reqctx.Set(ctx, h)
	h.Set("Cookie", "mutated")

	r, err := reqctx.ContextProvider.Headers(ctx)
	require.NoError(t, err)
	v, ok := r.Header("cookie")
	assert.True(t, ok)
	assert.Equal(t, "session=abc123", v)
}
