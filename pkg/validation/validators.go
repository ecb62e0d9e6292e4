package validation

import (
	"github.com/go-playground/validator/v10"
)

// New returns the validator used for contact forms. Only the built-in
// required and email rules are used, which match what the browser checks.
func New() *validator.Validate {
	return validator.New()
}
