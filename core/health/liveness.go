package health

import (
	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/response"
)

// Liveness always returns "ALIVE" with 200 OK. No dependency checks.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// NoContent returns 204 without a body.
func NoContent[C handler.Context](C) handler.Response {
	return response.NoContent()
}
