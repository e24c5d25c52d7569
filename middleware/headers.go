package middleware

import (
	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/reqctx"
)

// RequestHeaders installs the incoming request headers for reqctx.ContextProvider.
func RequestHeaders[C handler.Context]() handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			reqctx.Set(ctx, ctx.Request().Header)
			return next(ctx)
		}
	}
}
