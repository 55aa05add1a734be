package validation

import (
	"github.com/go-playground/validator/v10"
)

// New returns a validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_role", ValidRole)
}

// ValidRole accepts the two registration roles, matched exactly.
func ValidRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Employer", "Job Seeker":
		return true
	}
	return false
}
