package response

import (
	"io"
	"net/http"

	"github.com/dmitrymomot/relay/core/handler"
)

// writeTracker is implemented by response writers that know whether the
// response has already been started, such as the router's writer.
type writeTracker interface {
	Written() bool
}

// Render writes resp for ctx and falls back to a plain 500 when it fails.
// Nothing is written when the response has already been started.
func Render(ctx handler.Context, resp handler.Response) {
	if resp == nil {
		return
	}
	if wt, ok := ctx.ResponseWriter().(writeTracker); ok && wt.Written() {
		return
	}
	if err := resp(ctx.ResponseWriter(), ctx.Request()); err != nil {
		if wt, ok := ctx.ResponseWriter().(writeTracker); ok && wt.Written() {
			return
		}
		http.Error(ctx.ResponseWriter(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// String creates a text/plain response with 200 OK status.
func String(content string) handler.Response {
	return StringWithStatus(content, http.StatusOK)
}

// StringWithStatus creates a text/plain response with a custom status code.
func StringWithStatus(content string, status int) handler.Response {
	return body("text/plain; charset=utf-8", content, status)
}

// HTML creates a text/html response with 200 OK status.
func HTML(content string) handler.Response {
	return HTMLWithStatus(content, http.StatusOK)
}

// HTMLWithStatus creates a text/html response with a custom status code.
func HTMLWithStatus(content string, status int) handler.Response {
	return body("text/html; charset=utf-8", content, status)
}

// NoContent creates a 204 No Content response.
func NoContent() handler.Response {
	return Status(http.StatusNoContent)
}

// Status creates an empty response with the given status code.
func Status(code int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if code == 0 {
			code = http.StatusOK
		}
		w.WriteHeader(code)
		return nil
	}
}

func body(contentType, content string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", contentType)
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if content == "" {
			return nil
		}
		_, err := io.WriteString(w, content)
		return err
	}
}
