package validator

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired = "is required"
	ErrEmail    = "must be a valid email address"
	ErrMinValue = "must be at least %s"
	ErrMaxValue = "must be at most %s"
	ErrUnique   = "must not contain duplicate values"
	ErrOneOf    = "must be one of: %s"
	ErrUrl      = "must be a valid URL"
	ErrLen      = "must be exactly %s characters long"
	ErrPassword = "must be 8-25 characters and contain upper case, lower case, digit and special characters"
	ErrInvalid  = "is invalid"
)

var hasSpecialRgx = regexp.MustCompile(`[!@#$%^&*]`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("password", validatePassword)

	return validator
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 || len(password) > 25 {
		return false
	}

	containsUpper, containsLower, containsDigit := false, false, false

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			containsUpper = true
		case unicode.IsLower(char):
			containsLower = true
		case unicode.IsDigit(char):
			containsDigit = true
		}
	}

	return containsUpper && containsLower && containsDigit && hasSpecialRgx.MatchString(password)
}

// MessageFor maps a field error to the user-facing issue text.
func MessageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return ErrRequired
	case "email":
		return ErrEmail
	case "min":
		return fmt.Sprintf(ErrMinValue, fe.Param())
	case "max":
		return fmt.Sprintf(ErrMaxValue, fe.Param())
	case "unique":
		return ErrUnique
	case "oneof":
		return fmt.Sprintf(ErrOneOf, fe.Param())
	case "url":
		return ErrUrl
	case "len":
		return fmt.Sprintf(ErrLen, fe.Param())
	case "password":
		return ErrPassword
	default:
		return ErrInvalid
	}
}
