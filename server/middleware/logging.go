package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/wihlarkop/authkit/logger"
)

// notCapturedNote marks payloads that exceeded the capture ceiling.
const notCapturedNote = "payload too large, not captured"

// LoggingConfig configures the request logger.
type LoggingConfig struct {
	// MaxBodySize is the byte ceiling for request/response body capture
	// (default: 100 KiB). Bodies above it are never buffered.
	MaxBodySize int64

	// ExcludePaths are path prefixes skipped entirely: no capture, no log
	// line (default: /health, /metrics).
	ExcludePaths []string
}

// ApplyDefaults fills in zero-value fields.
func (c *LoggingConfig) ApplyDefaults() {
	if c.MaxBodySize == 0 {
		c.MaxBodySize = 100 * 1024
	}
	if c.ExcludePaths == nil {
		c.ExcludePaths = []string{"/health", "/metrics"}
	}
}

// RequestLogger returns middleware emitting one structured log line per
// request with timing, status, and sanitized bounded payload summaries.
// Panics are logged with elapsed time and re-raised, never swallowed.
func RequestLogger(log *logger.Logger, cfg LoggingConfig) Middleware {
	cfg.ApplyDefaults()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			for _, excluded := range cfg.ExcludePaths {
				if strings.HasPrefix(path, excluded) {
					next.ServeHTTP(w, r)
					return
				}
			}

			requestID := r.Header.Get(HeaderRequestID)
			start := time.Now()

			// A declared length above the ceiling means the request body is
			// never buffered at all.
			captureRequest := true
			if cl := r.Header.Get("Content-Length"); cl != "" {
				if n, err := strconv.ParseInt(cl, 10, 64); err == nil && n > cfg.MaxBodySize {
					captureRequest = false
				}
			}

			reqBody := newCaptureReader(r.Body, cfg.MaxBodySize, captureRequest)
			r.Body = reqBody
			respWriter := newCaptureWriter(w, cfg.MaxBodySize)

			defer func() {
				if p := recover(); p != nil {
					log.Error("HTTP request failed", map[string]interface{}{
						"request_id":  requestID,
						"method":      r.Method,
						"path":        path,
						"duration_ms": time.Since(start).Milliseconds(),
						"error":       fmt.Sprintf("%v", p),
						"error_type":  fmt.Sprintf("%T", p),
					})
					panic(p)
				}
			}()

			next.ServeHTTP(respWriter, r)

			fields := map[string]interface{}{
				"request_id":  requestID,
				"method":      r.Method,
				"path":        path,
				"client_ip":   clientIP(r),
				"user_agent":  r.UserAgent(),
				"status":      respWriter.status,
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if q := r.URL.RawQuery; q != "" {
				fields["query"] = q
			}

			if payload := payloadField(reqBody.body(), reqBody.capturing, r.Header.Get("Content-Type")); payload != nil {
				fields["request_payload"] = payload
			}
			respCT := respWriter.Header().Get("Content-Type")
			if payload := payloadField(respWriter.body(), respWriter.capturing, respCT); payload != nil {
				fields["response_payload"] = payload
			}

			logByStatus(log, fields, respWriter.status)
		})
	}
}

// payloadField builds the logged payload summary for one direction, or nil
// when there is nothing to log.
func payloadField(body []byte, captured bool, contentType string) any {
	if !captured {
		return map[string]any{"note": notCapturedNote}
	}
	return summarizePayload(body, contentType)
}

// logByStatus logs request fields at a level matching the status class.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("HTTP request completed", fields)
	case status >= 400:
		log.Warn("HTTP request completed", fields)
	default:
		log.Info("HTTP request completed", fields)
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx != -1 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// No port component, e.g. a bare address or a unix socket peer.
		return r.RemoteAddr
	}
	return host
}
