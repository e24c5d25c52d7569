package reqctx

import "errors"

// ErrNoRequestContext is returned when request headers are requested outside
// of a request lifecycle.
var ErrNoRequestContext = errors.New("reqctx: no request context available")
