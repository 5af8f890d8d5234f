// Package middleware implements the transport-boundary middleware chain:
// request id propagation, request/response logging with bounded body capture
// and sensitive-field redaction, and panic recovery.
//
// Middleware wraps plain http.Handler so it observes the raw byte streams,
// below any framework abstraction: body sizes are bounded while the body is
// being read, not after.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middleware. The first in the list is the outermost
// (runs first on a request, last on a response).
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}
