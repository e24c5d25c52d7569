// Package reqctx gives explicit, read-only access to the headers of the
// current incoming request.
//
// Code that needs a header receives a Provider (or a HeaderReader) as a
// parameter instead of reaching for global state. Two providers ship with the
// package:
//
//   - Static wraps an http.Header the caller already holds.
//   - ContextProvider reads headers installed in the request context with
//     WithHeaders, usually by middleware.RequestHeaders.
//
// Lookups are case-insensitive. When headers are requested outside of a
// request lifecycle, ErrNoRequestContext is returned and callers are expected
// to propagate it.
package reqctx
