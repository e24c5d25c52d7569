package app

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/relay/core/forward"
	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/reqctx"
	"github.com/dmitrymomot/relay/core/response"
	"github.com/dmitrymomot/relay/core/router"
	"github.com/dmitrymomot/relay/view/pages"
)

// profile is the upstream /me payload.
type profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// homeHandler forwards the caller's cookie to the upstream /me endpoint and
// renders the result. Requests without a cookie skip the upstream call.
func homeHandler(up Upstream) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		cookie, err := forward.Extract(ctx, reqctx.ContextProvider).Await()
		if err != nil {
			return response.Error(err)
		}
		if cookie.IsNone() {
			return response.Templ(pages.Home(pages.HomeData{}))
		}

		var me profile
		if err := up.Get(ctx, "/me", cookie, &me); err != nil {
			return response.Error(err)
		}

		return response.Templ(pages.Home(pages.HomeData{
			Name:     me.Name,
			Email:    me.Email,
			SignedIn: true,
		}))
	}
}

func errorPage(e response.HTTPError) templ.Component {
	return pages.Error(e.Status, e.Message)
}

// httpHandler mounts a plain http.Handler as a typed route.
func httpHandler(h http.Handler) handler.HandlerFunc[*router.Context] {
	return func(*router.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			h.ServeHTTP(w, r)
			return nil
		}
	}
}
