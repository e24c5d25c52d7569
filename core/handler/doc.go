// Package handler defines the request-processing contract shared by the
// router, middleware and application handlers.
//
// A HandlerFunc receives a request Context and returns a Response. The
// Response is a function that writes headers, status and body. Keeping the two
// steps separate lets middleware inspect or decorate a response before it is
// written:
//
//	func hello(ctx handler.Context) handler.Response {
//		return func(w http.ResponseWriter, r *http.Request) error {
//			_, err := io.WriteString(w, "hello")
//			return err
//		}
//	}
//
// Errors returned by a Response are passed to the router's ErrorHandler.
package handler
