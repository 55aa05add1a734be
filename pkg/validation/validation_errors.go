package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages maps "Struct.Field.tag" to the message shown to clients.
var Messages = map[string]string{
	"User.Name.required":     "Please enter your Name!",
	"User.Name.min":          "Name must contain at least 3 Characters!",
	"User.Name.max":          "Name cannot exceed 30 Characters!",
	"User.Email.required":    "Please enter your Email!",
	"User.Email.email":       "Please provide a valid Email!",
	"User.Phone.required":    "Please enter your Phone Number!",
	"User.Password.required": "Please provide a Password!",
	"User.Password.min":      "Password must contain at least 8 characters!",
	"User.Password.max":      "Password cannot exceed 32 characters!",
	"User.Role.required":     "Please select a role",
	"User.Role.valid_role":   "Role must be either Job Seeker or Employer",

	"Job.Title.required":       "Please provide job title!",
	"Job.Title.min":            "job title must contain at least 3 characters!",
	"Job.Title.max":            "job title cannot exceed 50 characters!",
	"Job.Description.required": "Please provide job description!",
	"Job.Description.min":      "job description must contain atleast 3 characters!",
	"Job.Description.max":      "job description cannot exceed 350 characters!",
	"Job.Category.required":    "job category is required!",
	"Job.Country.required":     "job country is required!",
	"Job.City.required":        "job city is required!",
	"Job.Location.required":    "Please provide exact location!",
	"Job.Location.min":         "job location must contain at least 50 characters!",

	"Application.Name.required":        "Please provide your name!",
	"Application.Name.min":             "Name must contain atleast 3 characters!",
	"Application.Name.max":             "Name cannot exceed 30 characters!",
	"Application.Email.required":       "Please Provide Your Email!",
	"Application.CoverLetter.required": "Please Provide Your CoverLetter!",
	"Application.Phone.required":       "Please Provide Your Phone Number!",
	"Application.Address.required":     "Please provide Your Address!",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// Message joins all field messages into one line.
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), ", ")
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	key := e.StructNamespace() + "." + e.Tag()
	if msg, ok := Messages[key]; ok {
		return msg
	}

	label := formatCamelCase(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s must contain at least %s characters", label, e.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, e.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", label)
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
