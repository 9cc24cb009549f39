package validator

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Product string `validate:"required,not_blank"`
	Date    string `validate:"required,flexible_date"`
	Email   string `validate:"omitempty,email"`
}

func newValidate() *validator.Validate {
	v := validator.New()
	RegisterOn(v)
	return v
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{" 2024-01-15 ", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"2024-01-15T10:30:00.250Z", time.Date(2024, 1, 15, 10, 30, 0, int(250*time.Millisecond), time.UTC), true},
		{"15/01/2024", time.Time{}, false},
		{"2024-13-01", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCustomValidators(t *testing.T) {
	v := newValidate()

	if err := v.Struct(sample{Product: "Tea", Date: "2024-01-15"}); err != nil {
		t.Errorf("expected valid sample, got %v", err)
	}

	err := v.Struct(sample{Product: "   ", Date: "yesterday", Email: "nope"})
	if err == nil {
		t.Fatal("expected validation errors")
	}

	fields := Messages(err)
	want := map[string]string{
		"product": "is required",
		"date":    "must be a date in YYYY-MM-DD or RFC 3339 format",
		"email":   "must be a valid email address",
	}
	for field, msg := range want {
		if fields[field] != msg {
			t.Errorf("fields[%q] = %q, want %q", field, fields[field], msg)
		}
	}
}

func TestMessages_nonValidationError(t *testing.T) {
	if got := Messages(nil); got != nil {
		t.Errorf("expected nil for nil error, got %v", got)
	}
}
