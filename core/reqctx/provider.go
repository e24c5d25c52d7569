package reqctx

import (
	"context"
	"net/http"
)

// Provider yields the header collection of the current request.
// Implementations may block until the headers become available and must
// honour ctx cancellation while doing so.
type Provider interface {
	Headers(ctx context.Context) (HeaderReader, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (HeaderReader, error)

// Headers implements Provider.
func (fn ProviderFunc) Headers(ctx context.Context) (HeaderReader, error) {
	return fn(ctx)
}

// Static returns a Provider that always yields h.
// A nil header yields ErrNoRequestContext.
func Static(h http.Header) Provider {
	return ProviderFunc(func(context.Context) (HeaderReader, error) {
		if h == nil {
			return nil, ErrNoRequestContext
		}
		return Headers(h), nil
	})
}

// ContextProvider reads headers installed with WithHeaders.
var ContextProvider Provider = ProviderFunc(FromContext)

type headersContextKey struct{}

// WithHeaders returns a copy of ctx carrying a clone of h.
// The clone keeps later mutations of the request from leaking into readers.
func WithHeaders(ctx context.Context, h http.Header) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if h == nil {
		h = http.Header{}
	}
	return context.WithValue(ctx, headersContextKey{}, Headers(h.Clone()))
}

// FromContext returns the headers installed with WithHeaders.
// Returns ErrNoRequestContext when none are present.
func FromContext(ctx context.Context) (HeaderReader, error) {
	if ctx == nil {
		return nil, ErrNoRequestContext
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, ok := ctx.Value(headersContextKey{}).(Headers)
	if !ok {
		return nil, ErrNoRequestContext
	}
	return h, nil
}

// ValueSetter stores request-scoped values. handler.Context satisfies it.
type ValueSetter interface {
	SetValue(key, val any)
}

// Set installs a clone of h on s so that FromContext can read it back.
func Set(s ValueSetter, h http.Header) {
	if h == nil {
		h = http.Header{}
	}
	s.SetValue(headersContextKey{}, Headers(h.Clone()))
}
