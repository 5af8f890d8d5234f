package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/wihlarkop/authkit/logger"
)

// Recovery returns middleware that converts panics into a generic internal
// error response. The real panic value and stack are logged server-side and
// never leak to the caller. Place it outermost so it also catches panics
// re-raised by the request logger.
func Recovery(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					log.Error("Panic recovered", map[string]interface{}{
						"error":  fmt.Sprintf("%v", p),
						"stack":  string(debug.Stack()),
						"method": r.Method,
						"path":   r.URL.Path,
					})

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"data":        nil,
						"message":     "An unexpected error occurred",
						"success":     false,
						"status_code": http.StatusInternalServerError,
						"error_code":  "INTERNAL_ERROR",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
