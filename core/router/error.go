package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/relay/core/handler"
)

var (
	ErrNoContextFactory = errors.New("no context factory provided")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrNotFound         = errors.New("not found")
	ErrNilResponse      = errors.New("nil response")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrNilRouter        = errors.New("nil router")
	ErrNilSubrouter     = errors.New("nil subrouter")
	ErrInvalidPattern   = errors.New("invalid route path pattern")
)

// statusCode is implemented by errors that carry an HTTP status.
type statusCode interface {
	StatusCode() int
}

// StatusCodeOf returns the HTTP status for err.
// Router errors map to 404/405, errors implementing StatusCode() int use
// their own status, everything else is 500.
func StatusCodeOf(err error) int {
	var sc statusCode
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.As(err, &sc):
		return sc.StatusCode()
	default:
		return http.StatusInternalServerError
	}
}

func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := StatusCodeOf(err)
	msg := http.StatusText(status)
	if status < http.StatusInternalServerError {
		msg = err.Error()
	}
	http.Error(w, msg, status)
}

// PanicError is passed to the error handler when a handler panics.
type PanicError interface {
	error
	// Value returns the recovered panic value.
	Value() any
	// Stack returns the stack trace captured at recovery.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
