package response

import (
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/relay/core/handler"
)

// Templ renders component as text/html with 200 OK status.
// The component is rendered with the request context so it can read
// request-scoped values.
func Templ(component templ.Component) handler.Response {
	return TemplWithStatus(component, http.StatusOK)
}

// TemplWithStatus renders component as text/html with a custom status code.
// Returns nil for a nil component, which the router reports as ErrNilResponse.
func TemplWithStatus(component templ.Component, status int) handler.Response {
	if component == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)

		if err := component.Render(r.Context(), w); err != nil {
			return fmt.Errorf("templ component render error: %w", err)
		}
		return nil
	}
}
