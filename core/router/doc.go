// Package router adapts go-chi/chi to the typed handler model of package
// handler.
//
// Routes are registered with handler.HandlerFunc values that receive a custom
// request context C. The context is built for every request by a factory
// supplied with WithContextFactory; the built-in *Context is used when no
// factory is configured:
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler[*router.Context](handleError),
//		router.WithMiddleware(middleware.RequestID[*router.Context]()),
//	)
//	r.Get("/users/{id}", func(ctx *router.Context) handler.Response {
//		return response.String("user " + ctx.Param("id"))
//	})
//
// Middleware registered with Use applies to every route of the router and of
// routers mounted below it. With and Group create inline routers that add
// middleware to a subset of routes.
//
// Panics raised by handlers are recovered and passed to the error handler as
// a PanicError. Unknown paths and unsupported methods are reported as
// ErrNotFound and ErrMethodNotAllowed.
package router
