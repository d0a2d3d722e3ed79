package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestValidatePassword(t *testing.T) {
	v := NewValidator()

	type subject struct {
		Password string `validate:"password"`
	}

	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"valid password", "Pass123!@#", true},
		{"too short", "Pa1!", false},
		{"too long", "Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!Aa", false},
		{"missing upper case", "pass123!@#", false},
		{"missing lower case", "PASS123!@#", false},
		{"missing digit", "Password!@#", false},
		{"missing special character", "Password123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(subject{Password: tt.password})

			if tt.wantOK && err != nil {
				t.Errorf("expected %q to be valid, got %v", tt.password, err)
			}
			if !tt.wantOK && err == nil {
				t.Errorf("expected %q to be rejected", tt.password)
			}
		})
	}
}

func TestMessageFor(t *testing.T) {
	v := NewValidator()

	type subject struct {
		Email   string   `validate:"required,email"`
		SeatIds []int    `validate:"omitempty,unique"`
		Sort    string   `validate:"omitempty,oneof=id title"`
		Genres  []string `validate:"omitempty,min=2"`
	}

	tests := []struct {
		name  string
		input subject
		want  string
	}{
		{"required", subject{}, "is required"},
		{"email", subject{Email: "nope"}, "must be a valid email address"},
		{"unique", subject{Email: "a@b.com", SeatIds: []int{1, 1}}, "must not contain duplicate values"},
		{"oneof", subject{Email: "a@b.com", Sort: "rating"}, "must be one of: id title"},
		{"min", subject{Email: "a@b.com", Genres: []string{"Drama"}}, "must be at least 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if err == nil {
				t.Fatal("expected a validation error")
			}

			var fieldErrors validator.ValidationErrors
			if !errors.As(err, &fieldErrors) {
				t.Fatalf("unexpected error type: %T", err)
			}

			got := MessageFor(fieldErrors[0])
			if got != tt.want {
				t.Errorf("MessageFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
