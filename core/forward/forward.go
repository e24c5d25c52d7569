package forward

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/relay/core/reqctx"
	"github.com/dmitrymomot/relay/pkg/async"
	"github.com/dmitrymomot/relay/pkg/optional"
)

// HeaderName is the request header carried by CookieConfig.
const HeaderName = "cookie"

// CookieConfig carries the raw cookie header of an incoming request.
// Cookie is never empty in a CookieConfig returned by this package.
type CookieConfig struct {
	Cookie string
}

// FromHeaders returns the cookie configuration for h.
// A missing or empty cookie header yields None.
func FromHeaders(h reqctx.HeaderReader) optional.Option[CookieConfig] {
	if h == nil {
		return optional.None[CookieConfig]()
	}
	v, ok := h.Header(HeaderName)
	if !ok || v == "" {
		return optional.None[CookieConfig]()
	}
	return optional.Some(CookieConfig{Cookie: v})
}

// Extract asynchronously reads the cookie header through p.
// The future resolves once p has made the headers available. Provider errors,
// including reqctx.ErrNoRequestContext, are returned unchanged.
func Extract(ctx context.Context, p reqctx.Provider) *async.Future[optional.Option[CookieConfig]] {
	return async.Async(ctx, p, extract)
}

func extract(ctx context.Context, p reqctx.Provider) (optional.Option[CookieConfig], error) {
	if p == nil {
		return optional.None[CookieConfig](), reqctx.ErrNoRequestContext
	}
	h, err := p.Headers(ctx)
	if err != nil {
		return optional.None[CookieConfig](), err
	}
	return FromHeaders(h), nil
}

// Apply sets the cookie header of req from cfg.
// When cfg is None any cookie header already on req is left untouched.
func Apply(req *http.Request, cfg optional.Option[CookieConfig]) {
	if req == nil {
		return
	}
	if c, ok := cfg.Get(); ok {
		req.Header.Set(HeaderName, c.Cookie)
	}
}
