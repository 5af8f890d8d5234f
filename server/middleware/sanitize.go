package middleware

import (
	"encoding/json"
	"strings"
)

// RedactedMarker replaces values of sensitive keys in logged payloads.
const RedactedMarker = "[REDACTED]"

// maxTextLength bounds logged text payloads.
const maxTextLength = 1000

// sensitiveKeywords flag a mapping key as sensitive when its lower-cased
// form contains any of them, at any nesting depth.
var sensitiveKeywords = []string{
	"password", "token", "secret", "key", "auth",
	"credential", "api_key", "apikey", "private",
}

// summarizePayload turns a captured body into a loggable summary.
// Rules, first match wins: empty bodies yield nil; multipart forms are never
// parsed; JSON is parsed and recursively redacted; text and XML are decoded
// permissively and truncated; everything else is summarized as binary.
func summarizePayload(body []byte, contentType string) any {
	if len(body) == 0 {
		return nil
	}

	ct := strings.ToLower(contentType)

	if strings.Contains(ct, "multipart/form-data") {
		return map[string]any{
			"type":       "multipart_form_data",
			"size_bytes": len(body),
		}
	}

	if strings.Contains(ct, "application/json") {
		var payload any
		if err := json.Unmarshal(body, &payload); err != nil {
			return map[string]any{"type": "invalid_json", "error": err.Error()}
		}
		return sanitizePayload(payload)
	}

	if strings.Contains(ct, "text/") || strings.Contains(ct, "application/xml") {
		decoded := strings.ToValidUTF8(string(body), "�")
		if len(decoded) > maxTextLength {
			decoded = decoded[:maxTextLength] + "... [truncated]"
		}
		return map[string]any{"type": "text", "content": decoded}
	}

	return map[string]any{
		"type":         "binary",
		"size_bytes":   len(body),
		"content_type": contentType,
	}
}

// sanitizePayload walks a parsed JSON value and replaces every value whose
// mapping key is sensitive with RedactedMarker, at any depth. Sequences are
// walked element-wise; scalars pass through unchanged.
func sanitizePayload(payload any) any {
	switch v := payload.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			if isSensitiveKey(key) {
				out[key] = RedactedMarker
			} else {
				out[key] = sanitizePayload(value)
			}
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = sanitizePayload(item)
		}
		return out
	default:
		return payload
	}
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
