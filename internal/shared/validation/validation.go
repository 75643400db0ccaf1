// Package validation holds the struct validator shared by the DTO clients
// plus the signup form rules. Validation here is UX only; every rule is
// also enforced server-side.
package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the validator over tagged struct fields.
func Struct(s any) error {
	return validate.Struct(s)
}

// Fields unwraps the per-field failures from a Struct error, or nil when
// the error is not a validation error.
func Fields(err error) validator.ValidationErrors {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		return fieldErrors
	}
	return nil
}
