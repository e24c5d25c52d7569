// Package response builds handler.Response values for common content types:
// plain text, HTML, JSON, templ components and redirects.
//
// Errors are returned from a response as values and rendered by the router's
// error handler. HTTPError carries a status, a machine-readable code and a
// message; ErrorHandler, JSONErrorHandler and TemplErrorHandler render any
// error through it.
package response
