package handler

import (
	"context"
	"net/http"
)

// Context is the per-request context passed to handlers.
// It is a context.Context bound to the request lifetime.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
