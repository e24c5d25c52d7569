package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidBaseURL = errors.New("upstream: invalid base URL")
	ErrRequestFailed  = errors.New("upstream: request failed")
	ErrDecodeResponse = errors.New("upstream: failed to decode response")
	ErrUnhealthy      = errors.New("upstream: health check failed")
)

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("upstream: unexpected status %d: %s", e.Status, e.Body)
}

// StatusCode maps upstream failures to the status relay answers with.
// Auth failures pass through; everything else is a bad gateway.
func (e *StatusError) StatusCode() int {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return e.Status
	default:
		return http.StatusBadGateway
	}
}
