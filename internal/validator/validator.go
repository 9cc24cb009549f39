// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// DateLayouts lists the accepted date formats, most specific last.
var DateLayouts = []string{time.DateOnly, time.RFC3339, time.RFC3339Nano}

// ParseDate parses s using the first layout in DateLayouts that matches.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("flexible_date", validateFlexibleDate)
	_ = v.RegisterValidation("not_blank", validateNotBlank)
}

func validateFlexibleDate(fl validator.FieldLevel) bool {
	_, ok := ParseDate(fl.Field().String())
	return ok
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Messages converts validation failures into a map of JSON field name to
// a readable message. It returns nil if err is not a validation error.
func Messages(err error) map[string]string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}

	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[jsonName(fe.Field())] = message(fe)
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "not_blank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "flexible_date":
		return "must be a date in YYYY-MM-DD or RFC 3339 format"
	}
	return "is invalid"
}

// jsonName lowercases the first letter of a Go field name.
func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
