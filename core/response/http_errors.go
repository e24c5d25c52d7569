package response

import "net/http"

// HTTPError is an error with an HTTP status, a machine-readable code and a
// human-readable message.
type HTTPError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status of the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of e with message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithError returns a copy of e with the cause recorded in Details.
func (e HTTPError) WithError(err error) HTTPError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

func newHTTPError(status int, code string) HTTPError {
	return HTTPError{Status: status, Code: code, Message: http.StatusText(status)}
}

var (
	ErrBadRequest          = newHTTPError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized        = newHTTPError(http.StatusUnauthorized, "unauthorized")
	ErrForbidden           = newHTTPError(http.StatusForbidden, "forbidden")
	ErrNotFound            = newHTTPError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed    = newHTTPError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrTooManyRequests     = newHTTPError(http.StatusTooManyRequests, "too_many_requests")
	ErrInternalServerError = newHTTPError(http.StatusInternalServerError, "internal_server_error")
	ErrBadGateway          = newHTTPError(http.StatusBadGateway, "bad_gateway")
	ErrServiceUnavailable  = newHTTPError(http.StatusServiceUnavailable, "service_unavailable")
	ErrGatewayTimeout      = newHTTPError(http.StatusGatewayTimeout, "gateway_timeout")
)

var httpErrorsByStatus = map[int]HTTPError{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusMethodNotAllowed:    ErrMethodNotAllowed,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
	http.StatusServiceUnavailable:  ErrServiceUnavailable,
	http.StatusGatewayTimeout:      ErrGatewayTimeout,
}
