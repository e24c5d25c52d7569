package router

import "net/http"

// responseWriter records whether the response has been started.
type responseWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	if ww, ok := w.(*responseWriter); ok {
		return ww
	}
	return &responseWriter{ResponseWriter: w}
}

func (w *responseWriter) WriteHeader(status int) {
	if w.written {
		return
	}
	w.status = status
	w.written = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Written reports whether WriteHeader has been called.
func (w *responseWriter) Written() bool {
	return w.written
}

// Status returns the written status code, or 0.
func (w *responseWriter) Status() int {
	return w.status
}

// Flush implements http.Flusher when the underlying writer does.
func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
