package router

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/relay/core/handler"
)

// mux implements Router on top of a chi router.
//
// Middleware is resolved per request by walking the parent chain, so routes
// of inline and mounted routers see every ancestor's middleware, outermost
// first.
type mux[C handler.Context] struct {
	chi          chi.Router
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger
	parent       *mux[C]
	inline       bool
	hasRoutes    bool
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		chi:          chi.NewRouter(),
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = defaultContextFactory[C]
	}

	m.chi.NotFound(m.errorEndpoint(ErrNotFound))
	m.chi.MethodNotAllowed(m.errorEndpoint(ErrMethodNotAllowed))

	return m
}

// defaultContextFactory builds *Context and panics for any other context type.
func defaultContextFactory[C handler.Context](w http.ResponseWriter, r *http.Request, params map[string]string) C {
	c, ok := any(NewContext(w, r, params)).(C)
	if !ok {
		panic(ErrNoContextFactory)
	}
	return c
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.chi.ServeHTTP(w, r)
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPatch, pattern, h)
}

func (m *mux[C]) Head(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodHead, pattern, h)
}

func (m *mux[C]) Options(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodOptions, pattern, h)
}

func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle("", pattern, h)
}

func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}

	seen := make(map[string]bool, len(methods))
	for _, method := range methods {
		method = strings.ToUpper(method)
		if !isSupportedMethod(method) {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if seen[method] {
			continue
		}
		seen[method] = true
		m.handle(method, pattern, h)
	}
}

// Use appends middleware. It panics once routes have been registered.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.hasRoutes {
		panic("relay: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With returns an inline router sharing this router's routes with extra middleware.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return &mux[C]{
		chi:          m.chi,
		middlewares:  middlewares,
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
		parent:       m,
		inline:       true,
	}
}

func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilSubrouter, pattern))
	}
	sub := newMux(
		WithErrorHandler(m.errorHandler),
		WithContextFactory(m.newContext),
		WithLogger[C](m.logger),
	)
	fn(sub)
	m.Mount(pattern, sub)
	return sub
}

// Mount attaches sub below pattern. The sub-router inherits this router's
// error handler, context factory, logger and middleware.
func (m *mux[C]) Mount(pattern string, sub Router[C]) {
	if sub == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilRouter, pattern))
	}
	subMux, ok := sub.(*mux[C])
	if !ok {
		panic("relay: can only mount routers created by router.New")
	}

	subMux.parent = m
	subMux.errorHandler = m.errorHandler
	subMux.newContext = m.newContext
	subMux.logger = m.logger
	subMux.chi.NotFound(subMux.errorEndpoint(ErrNotFound))
	subMux.chi.MethodNotAllowed(subMux.errorEndpoint(ErrMethodNotAllowed))

	m.markRoutes()
	m.chi.Mount(pattern, subMux.chi)
}

// Routes returns every registered route, including mounted ones.
func (m *mux[C]) Routes() []Route {
	var routes []Route
	_ = chi.Walk(m.chi, func(method, pattern string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, Route{Method: method, Pattern: pattern})
		return nil
	})
	return routes
}

func (m *mux[C]) handle(method, pattern string, h handler.HandlerFunc[C]) {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
	m.markRoutes()

	endpoint := m.endpoint(h)
	if method == "" {
		m.chi.Handle(pattern, endpoint)
		return
	}
	m.chi.Method(method, pattern, endpoint)
}

func (m *mux[C]) markRoutes() {
	root := m
	for root.inline && root.parent != nil {
		root = root.parent
	}
	root.hasRoutes = true
}

// chain returns the middleware of m and all of its ancestors, outermost first.
func (m *mux[C]) chain() []handler.Middleware[C] {
	var all []handler.Middleware[C]
	for curr := m; curr != nil; curr = curr.parent {
		all = append(append([]handler.Middleware[C]{}, curr.middlewares...), all...)
	}
	return all
}

// endpoint adapts a typed handler to http.Handler.
func (m *mux[C]) endpoint(h handler.HandlerFunc[C]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := newResponseWriter(w)
		ctx := m.newContext(ww, r, urlParams(r))

		defer m.recoverPanic(ctx, ww, r)

		fn := handler.Chain(h, m.chain()...)
		resp := fn(ctx)
		if resp == nil {
			m.errorHandler(ctx, ErrNilResponse)
			return
		}

		// Middleware may have replaced the request through SetValue.
		if err := resp(ww, ctx.Request()); err != nil {
			m.errorHandler(ctx, err)
		}
	})
}

// errorEndpoint reports err through the error handler after running the
// middleware chain, so unmatched requests are observed like routed ones.
func (m *mux[C]) errorEndpoint(err error) http.HandlerFunc {
	return m.endpoint(func(C) handler.Response {
		return func(http.ResponseWriter, *http.Request) error { return err }
	}).ServeHTTP
}

func (m *mux[C]) recoverPanic(ctx C, ww *responseWriter, r *http.Request) {
	p := recover()
	if p == nil {
		return
	}
	if err, ok := p.(error); ok && errors.Is(err, http.ErrAbortHandler) {
		panic(p)
	}

	perr := &panicError{value: p, stack: debug.Stack()}
	if ww.Written() {
		m.logger.Error("panic after response written",
			slog.Any("value", perr.value),
			slog.String("stack", string(perr.stack)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
		)
		return
	}
	m.errorHandler(ctx, perr)
}

func urlParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}

func isSupportedMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
