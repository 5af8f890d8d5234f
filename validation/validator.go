// Package validation validates request structs via `validate` tags and
// reports failures as a list of "field: message" strings keyed by the json
// field name.
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/wihlarkop/authkit/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report json tag names instead of Go field names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})
	})
	return validate
}

// Validate validates a struct using `validate` tags. On failure it returns an
// AppError carrying one "field: message" entry per offending field.
func Validate(s any) error {
	v := getValidator()
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Validation([]string{"request: invalid body"})
	}

	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, e.Field()+": "+formatValidationError(e))
	}
	return apperrors.Validation(fields)
}

// formatValidationError creates a human-readable message for one violation.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	default:
		return "is invalid"
	}
}

// toSnakeCase converts a field name to snake_case. Runs of capitals are kept
// together so initialisms survive: "UserID" becomes "user_id", "HTTPStatus"
// becomes "http_status".
func toSnakeCase(s string) string {
	runes := []rune(s)
	var result strings.Builder
	for i, r := range runes {
		if r < 'A' || r > 'Z' {
			result.WriteRune(r)
			continue
		}
		if i > 0 && (isLowerOrDigit(runes[i-1]) ||
			(i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z')) {
			result.WriteRune('_')
		}
		result.WriteRune(r + 32)
	}
	return result.String()
}

func isLowerOrDigit(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
