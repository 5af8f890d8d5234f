package validation

import (
	"strings"
	"testing"

	apperrors "github.com/wihlarkop/authkit/errors"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidatePasses(t *testing.T) {
	err := Validate(sampleRequest{
		Email:    "a@example.com",
		Username: "alice",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("expected valid struct, got: %v", err)
	}
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	err := Validate(sampleRequest{Email: "bad", Username: "al", Password: "short"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got: %v", err)
	}
	if appErr.Code != apperrors.ErrCodeRequestValidation {
		t.Errorf("expected REQUEST_VALIDATION, got: %s", appErr.Code)
	}
	if len(appErr.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got: %v", appErr.Fields)
	}

	all := strings.Join(appErr.Fields, "; ")
	for _, want := range []string{
		"email: must be a valid email address",
		"username: must be at least 3 characters",
		"password: must be at least 8 characters",
	} {
		if !strings.Contains(all, want) {
			t.Errorf("expected %q, got: %s", want, all)
		}
	}
}

func TestValidateRequired(t *testing.T) {
	err := Validate(sampleRequest{})
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got: %v", err)
	}
	for _, field := range appErr.Fields {
		if !strings.HasSuffix(field, ": is required") {
			t.Errorf("expected required message, got: %s", field)
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"FullName":   "full_name",
		"Email":      "email",
		"UserID":     "user_id",
		"HTTPStatus": "http_status",
		"APIKeyV2":   "api_key_v2",
		"lowercase":  "lowercase",
	}
	for in, want := range cases {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q): expected %q, got %q", in, want, got)
		}
	}
}
