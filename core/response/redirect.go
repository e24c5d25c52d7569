package response

import (
	"net/http"

	"github.com/dmitrymomot/relay/core/handler"
)

// Redirect creates a 302 Found response.
func Redirect(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusFound)
}

// RedirectSeeOther creates a 303 See Other response, used after a POST.
func RedirectSeeOther(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusSeeOther)
}

// RedirectWithStatus creates a redirect with the given 3xx status.
func RedirectWithStatus(url string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		http.Redirect(w, r, url, status)
		return nil
	}
}
