// Package forward extracts the visitor's cookie header from the current
// request so it can be forwarded to internal API calls.
//
// The result is an optional.Option[CookieConfig]. It is Some only when the
// request carried a non-empty cookie header:
//
//	opt, err := forward.Extract(ctx, reqctx.ContextProvider).Await()
//	if err != nil {
//		return err // no request context
//	}
//	if cfg, ok := opt.Get(); ok {
//		log.Debug("forwarding cookies", "bytes", len(cfg.Cookie))
//	}
//
// Apply copies the extracted cookie onto an outbound request.
package forward
