package reqctx

import (
	"net/http"
	"net/textproto"
	"strings"
)

// HeaderReader reads a single header by name.
// Name matching is case-insensitive. The boolean is false when the header is
// not present at all.
type HeaderReader interface {
	Header(name string) (string, bool)
}

// Headers adapts an http.Header to HeaderReader.
type Headers http.Header

// Header implements HeaderReader.
// Repeated values are joined the way a user agent would have sent them on a
// single line: "; " for Cookie and ", " for everything else.
func (h Headers) Header(name string) (string, bool) {
	values, ok := h[textproto.CanonicalMIMEHeaderKey(name)]
	if !ok || len(values) == 0 {
		return "", false
	}
	if len(values) == 1 {
		return values[0], true
	}
	sep := ", "
	if strings.EqualFold(name, "Cookie") {
		sep = "; "
	}
	return strings.Join(values, sep), true
}
