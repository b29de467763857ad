// Package validation provides custom validation rules for the application.
package validation

import (
	"net/url"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/jameskabz/mpesa/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// PhoneNumber validates that a string carries at least one digit, the
// minimum the gateway client needs before normalization. Format errors
// beyond that are left to the gateway, which rejects malformed MSISDNs.
var PhoneNumber = validation.NewStringRuleWithError(
	func(s string) bool {
		for _, r := range s {
			if unicode.IsDigit(r) {
				return true
			}
		}
		return false
	},
	validation.NewError("validation_phone", "must contain at least one digit"),
)

// AbsoluteURL validates that a string is an absolute http(s) URL.
var AbsoluteURL = validation.NewStringRuleWithError(
	func(s string) bool {
		u, err := url.Parse(s)
		if err != nil {
			return false
		}
		return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	},
	validation.NewError("validation_url", "must be a valid absolute URL"),
)
