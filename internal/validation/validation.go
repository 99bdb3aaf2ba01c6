// Package validation provides input validation utilities. Error messages
// omit the field name; callers prefix the capitalized field when composing
// user-facing error lists.
package validation

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate      = validator.New()
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	// 5-digit ZIP or ZIP+4.
	zipCodeRegex = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// ValidateUsername checks if a username meets requirements.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("must be at least 3 characters long")
	}
	if len(username) > 30 {
		return fmt.Errorf("must not exceed 30 characters")
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("can only contain letters, numbers, underscores, and hyphens")
	}
	if username[0] == '_' || username[0] == '-' || username[len(username)-1] == '_' || username[len(username)-1] == '-' {
		return fmt.Errorf("cannot start or end with underscore or hyphen")
	}
	return nil
}

// ValidateEmail checks basic email format.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("can't be blank")
	}
	if len(email) > 254 {
		return fmt.Errorf("must not exceed 254 characters")
	}
	if err := validate.Var(email, "email"); err != nil {
		return fmt.Errorf("format is invalid")
	}
	return nil
}

// ValidatePassword checks password length bounds. The bcrypt input limit caps
// the maximum.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("must be at least 6 characters long")
	}
	if len(password) > 72 {
		return fmt.Errorf("must not exceed 72 characters")
	}
	return nil
}

// ValidateZipCode checks for a 5-digit or ZIP+4 US postal code.
func ValidateZipCode(zip string) error {
	if !zipCodeRegex.MatchString(zip) {
		return fmt.Errorf("zip code must be a 5-digit or ZIP+4 code")
	}
	return nil
}
