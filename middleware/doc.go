// Package middleware provides the typed middleware used by relay's router.
//
//	r := router.New[*router.Context](
//		router.WithMiddleware(
//			middleware.RequestID[*router.Context](),
//			middleware.RequestHeaders[*router.Context](),
//			middleware.LoggingWithLogger[*router.Context](log),
//			middleware.Metrics[*router.Context](m),
//		),
//	)
//
//	r.With(middleware.RateLimit[*router.Context](60, time.Minute)).Get("/", home)
//
// RequestHeaders makes the incoming headers available to reqctx.ContextProvider,
// which is how handlers reach the cookie to forward without touching the
// request directly.
//
// Logging never writes cookie values. It records only whether a cookie header
// was present.
package middleware
