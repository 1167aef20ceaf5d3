// Package validation holds the jellydator/validation rules shared by the drink domain.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/coffeeshop/internal/errors"
)

// WrapValidationError reports a failed validation as ErrInvalidInput, keeping
// the field messages in the error text.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank rejects strings made only of whitespace. The empty string passes,
// leaving it to validation.Required.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool { return strings.TrimSpace(s) != "" },
	validation.NewError("validation_not_blank", "must not be blank"),
)
