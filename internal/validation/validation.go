// Package validation wires go-playground/validator with the custom rules
// used by the account subsystem: the minimal email shape the app accepts and
// the username character set.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/melodica-app/melodica/internal/common"
)

var (
	// emailShape is deliberately minimal: local@domain.tld, no RFC parsing.
	emailShape    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	usernameChars = regexp.MustCompile(`^[a-zA-Z0-9 -]+$`)
)

// ValidEmail reports whether email matches the minimal local@domain.tld shape.
func ValidEmail(email string) bool { return emailShape.MatchString(email) }

// ValidUsername reports whether username is non-empty and consists only of
// letters, digits, spaces and dashes.
func ValidUsername(username string) bool { return usernameChars.MatchString(username) }

// Validator validates service input structs via `validate` tags.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the email_shape and username_chars tags
// registered in addition to the built-in rules.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// registration only errors on an empty tag name
	_ = v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("username_chars", func(fl validator.FieldLevel) bool {
		return ValidUsername(fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct validates i and converts any failure into common.ErrValidation with
// a readable field summary.
func (va *Validator) Struct(i any) error {
	err := va.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("%w: %v", common.ErrValidation, err)
}

// fieldError converts a single validation failure into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email_shape":
		return field + " must be a valid email"
	case "username_chars":
		return field + " may only contain letters, digits, spaces and dashes"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "eqfield":
		return "passwords do not match"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
