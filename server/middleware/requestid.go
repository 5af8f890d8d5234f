package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID is the request id header on requests and responses.
const HeaderRequestID = "X-Request-Id"

// RequestID assigns a fresh random id to every request and echoes it on the
// response, including paths the request logger skips. Incoming values are
// replaced so the id is never client-controlled.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.New().String()
			r.Header.Set(HeaderRequestID, id)
			w.Header().Set(HeaderRequestID, id)
			next.ServeHTTP(w, r)
		})
	}
}
