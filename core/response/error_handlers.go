package response

import (
	"errors"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/router"
)

// AsHTTPError converts err to an HTTPError.
// HTTPError values are returned as-is. Other errors are mapped by status
// (router.StatusCodeOf) to a predefined HTTPError with the cause attached;
// unknown statuses become ErrInternalServerError.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	base, ok := httpErrorsByStatus[router.StatusCodeOf(err)]
	if !ok {
		base = ErrInternalServerError
	}
	return base.WithError(err)
}

// ErrorHandler renders errors as plain text.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := AsHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Message, httpErr.Status))
}

// JSONErrorHandler renders errors as JSON.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := AsHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}

// TemplErrorHandler returns an error handler that renders page(err) as HTML.
func TemplErrorHandler[C handler.Context](page func(HTTPError) templ.Component) handler.ErrorHandler[C] {
	return func(ctx C, err error) {
		httpErr := AsHTTPError(err)
		Render(ctx, TemplWithStatus(page(httpErr), httpErr.Status))
	}
}
