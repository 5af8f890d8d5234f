package middleware

import (
	"strings"
	"testing"
)

func TestSummarizeEmptyBody(t *testing.T) {
	if got := summarizePayload(nil, "application/json"); got != nil {
		t.Errorf("expected nil for empty body, got: %v", got)
	}
	if got := summarizePayload([]byte{}, "text/plain"); got != nil {
		t.Errorf("expected nil for empty body, got: %v", got)
	}
}

func TestSummarizeJSONRedaction(t *testing.T) {
	body := []byte(`{
		"email": "a@example.com",
		"password": "hunter2",
		"api_key": "k-123",
		"profile": {
			"auth_token": "tok",
			"nickname": "al",
			"extras": [{"private_note": "x", "city": "Berlin"}]
		}
	}`)

	got, ok := summarizePayload(body, "application/json; charset=utf-8").(map[string]any)
	if !ok {
		t.Fatalf("expected map summary, got: %T", got)
	}

	if got["email"] != "a@example.com" {
		t.Errorf("expected email preserved, got: %v", got["email"])
	}
	if got["password"] != RedactedMarker {
		t.Errorf("expected password redacted, got: %v", got["password"])
	}
	if got["api_key"] != RedactedMarker {
		t.Errorf("expected api_key redacted, got: %v", got["api_key"])
	}

	profile := got["profile"].(map[string]any)
	if profile["auth_token"] != RedactedMarker {
		t.Errorf("expected nested auth_token redacted, got: %v", profile["auth_token"])
	}
	if profile["nickname"] != "al" {
		t.Errorf("expected nickname preserved, got: %v", profile["nickname"])
	}

	extras := profile["extras"].([]any)
	item := extras[0].(map[string]any)
	if item["private_note"] != RedactedMarker {
		t.Errorf("expected key inside array element redacted, got: %v", item["private_note"])
	}
	if item["city"] != "Berlin" {
		t.Errorf("expected city preserved, got: %v", item["city"])
	}
}

func TestSummarizeSensitiveKeyMatching(t *testing.T) {
	body := []byte(`{"MySecretValue": 1, "authorization": "x", "monkey": "ok"}`)
	got := summarizePayload(body, "application/json").(map[string]any)

	if got["MySecretValue"] != RedactedMarker {
		t.Errorf("expected case-insensitive substring match to redact, got: %v", got["MySecretValue"])
	}
	if got["authorization"] != RedactedMarker {
		t.Errorf("expected authorization redacted, got: %v", got["authorization"])
	}
	// "monkey" contains "key" so the substring rule redacts it too.
	if got["monkey"] != RedactedMarker {
		t.Errorf("expected monkey redacted by substring rule, got: %v", got["monkey"])
	}
}

func TestSummarizeInvalidJSON(t *testing.T) {
	got, ok := summarizePayload([]byte(`{"broken`), "application/json").(map[string]any)
	if !ok {
		t.Fatal("expected map summary for invalid JSON")
	}
	if got["type"] != "invalid_json" {
		t.Errorf("expected invalid_json type, got: %v", got["type"])
	}
	if got["error"] == "" {
		t.Error("expected parse error to be included")
	}
}

func TestSummarizeMultipart(t *testing.T) {
	body := []byte("--boundary\r\ncontent\r\n--boundary--")
	got := summarizePayload(body, "multipart/form-data; boundary=boundary").(map[string]any)

	if got["type"] != "multipart_form_data" {
		t.Errorf("expected multipart_form_data, got: %v", got["type"])
	}
	if got["size_bytes"] != len(body) {
		t.Errorf("expected size %d, got: %v", len(body), got["size_bytes"])
	}
}

func TestSummarizeTextTruncation(t *testing.T) {
	long := strings.Repeat("x", maxTextLength+50)
	got := summarizePayload([]byte(long), "text/plain").(map[string]any)

	content := got["content"].(string)
	if !strings.HasSuffix(content, "... [truncated]") {
		t.Errorf("expected truncation marker, got tail: %s", content[len(content)-30:])
	}
	if len(content) != maxTextLength+len("... [truncated]") {
		t.Errorf("unexpected truncated length: %d", len(content))
	}
}

func TestSummarizeTextInvalidUTF8(t *testing.T) {
	got := summarizePayload([]byte{'h', 'i', 0xff, 0xfe}, "text/plain").(map[string]any)
	content := got["content"].(string)
	if !strings.HasPrefix(content, "hi") || !strings.Contains(content, "�") {
		t.Errorf("expected permissive decoding with replacement runes, got: %q", content)
	}
}

func TestSummarizeBinary(t *testing.T) {
	body := []byte{0x89, 'P', 'N', 'G'}
	got := summarizePayload(body, "image/png").(map[string]any)

	if got["type"] != "binary" {
		t.Errorf("expected binary summary, got: %v", got["type"])
	}
	if got["size_bytes"] != 4 || got["content_type"] != "image/png" {
		t.Errorf("unexpected binary summary: %v", got)
	}
}
