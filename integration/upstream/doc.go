// Package upstream is the JSON client relay uses to call the internal API on
// behalf of a browser request.
//
// The caller's cookie header, as extracted by core/forward, is attached to
// every outgoing request:
//
//	cookie, err := forward.Extract(ctx, reqctx.ContextProvider).Await()
//	if err != nil {
//		return err
//	}
//	var me Profile
//	err = client.Get(ctx, "/me", cookie, &me)
//
// Responses can be cached with WithCache. Cache keys are derived from a SHA-256
// of the cookie so that raw cookie values never reach the cache.
package upstream
